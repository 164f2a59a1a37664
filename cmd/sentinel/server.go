package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

const appVersion = "1.0.0"

// Server ties together the HTTP surface of the service.
type Server struct {
	router    *mux.Router
	pipeline  *FactCheckPipeline
	webhook   *WebhookHandler
	debates   *DebateAPI
	stream    *DebateStream
	analyzer  *ContextAnalyzer
	detector  *DeepfakeDetector
	video     *VideoAnalyzer
	store     DebateStore
	startTime time.Time
	http      *http.Server
}

// ServerOptions carries the optional handler groups. Nil fields leave
// their endpoints unregistered.
type ServerOptions struct {
	Webhook  *WebhookHandler
	Debates  *DebateAPI
	Stream   *DebateStream
	Analyzer *ContextAnalyzer
	Detector *DeepfakeDetector
	Video    *VideoAnalyzer
	Store    DebateStore
}

// NewServer builds the router with every configured endpoint.
func NewServer(pipeline *FactCheckPipeline, opts ServerOptions) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		pipeline:  pipeline,
		webhook:   opts.Webhook,
		debates:   opts.Debates,
		stream:    opts.Stream,
		analyzer:  opts.Analyzer,
		detector:  opts.Detector,
		video:     opts.Video,
		store:     opts.Store,
		startTime: time.Now(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/healthcheck", s.handleHealthcheck).Methods(http.MethodGet)
	r.HandleFunc("/api/check", s.handleCheck).Methods(http.MethodPost)
	r.HandleFunc("/api/check-single", s.handleCheckSingle).Methods(http.MethodPost)

	if s.analyzer != nil {
		r.HandleFunc("/api/analyze", s.analyzer.HandleAnalyze).Methods(http.MethodPost)
	}
	if s.webhook != nil {
		r.HandleFunc("/webhook", s.webhook.ServeHTTP).Methods(http.MethodPost)
		r.HandleFunc("/send-welcome", s.webhook.SendWelcome).Methods(http.MethodPost)
	}
	if s.video != nil {
		r.HandleFunc("/transcribe", s.handleVideo).Methods(http.MethodPost)
	}
	if s.detector != nil {
		r.HandleFunc("/api/deepfake", s.detector.HandleImage).Methods(http.MethodPost)
		r.HandleFunc("/api/deepfake/audio", s.detector.HandleAudio).Methods(http.MethodPost)
	}
	if s.debates != nil {
		r.HandleFunc("/api/debates", s.debates.CreateDebate).Methods(http.MethodPost)
		r.HandleFunc("/api/debates/{id}", s.debates.Status).Methods(http.MethodGet)
		r.HandleFunc("/api/debates/{id}", s.debates.DeleteDebate).Methods(http.MethodDelete)
		r.HandleFunc("/api/debates/{id}/next", s.debates.NextStep).Methods(http.MethodGet)
		r.HandleFunc("/api/debates/{id}/input", s.debates.SubmitInput).Methods(http.MethodPost)
		r.HandleFunc("/api/debates/{id}/messages", s.debates.Messages).Methods(http.MethodGet)
		r.HandleFunc("/api/debates/{id}/summary", s.debates.Summary).Methods(http.MethodGet)
	}
	if s.stream != nil {
		r.HandleFunc("/api/debates/{id}/ws", s.stream.ServeHTTP).Methods(http.MethodGet)
	}
}

// Router exposes the configured handler tree.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until the listener fails.
func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	Logger().Info("HTTP server listening on port %s", port)
	return s.http.ListenAndServe()
}

// Shutdown stops the HTTP server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// handleCheck runs the full fact-check pipeline over a message.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := decodeJSONBody(r, &payload); err != nil || payload.Text == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'text' field in request")
		return
	}

	report := s.pipeline.Report(r.Context(), payload.Text)
	warnings := DetectMisinformationPatterns(payload.Text)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"verified_claims":  report.Verdicts,
		"trust_score":      report.TrustScore,
		"recommendation":   report.Recommendation,
		"pattern_warnings": warnings,
	})
}

// handleCheckSingle verifies one claim without extraction.
func (s *Server) handleCheckSingle(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Claim string `json:"claim"`
	}
	if err := decodeJSONBody(r, &payload); err != nil || payload.Claim == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'claim' field in request")
		return
	}

	verdict := s.pipeline.synthesizer.Verify(r.Context(), Claim{Text: payload.Claim})
	respondWithJSON(w, http.StatusOK, flattenVerdict(verdict))
}

// handleVideo fact-checks the transcript of a YouTube video.
func (s *Server) handleVideo(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		URL string `json:"video_url"`
	}
	if err := decodeJSONBody(r, &payload); err != nil || payload.URL == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'video_url' field in request")
		return
	}

	if _, ok := ExtractVideoID(payload.URL); !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid YouTube URL")
		return
	}

	analysis, err := s.video.Analyze(r.Context(), payload.URL)
	if err != nil {
		Logger().Error("Video analysis failed for %s: %v", payload.URL, err)
		respondWithError(w, http.StatusBadGateway, "Failed to analyze video")
		return
	}
	respondWithJSON(w, http.StatusOK, analysis)
}

// handleHealthcheck reports liveness and basic runtime stats.
func (s *Server) handleHealthcheck(w http.ResponseWriter, r *http.Request) {
	activeDebates := 0
	if s.store != nil {
		activeDebates = s.store.Count()
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":         "healthy",
		"version":        appVersion,
		"uptime":         time.Since(s.startTime).Round(time.Second).String(),
		"active_debates": activeDebates,
	})
}

// decodeJSONBody parses a JSON request body into v.
func decodeJSONBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Failed to marshal JSON response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
