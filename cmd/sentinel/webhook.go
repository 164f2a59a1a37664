package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"
)

const (
	welcomeMessage = "👋 Welcome to Sentinel! Send me any message, forward, or voice note and I'll fact-check the claims in it for you."

	emptyMessageReply     = "Please send me a message to fact-check."
	imageVideoReply       = "I currently only fact-check text and audio messages. Please send the claim as text or a voice note."
	unsupportedMediaReply = "I received your media but can't process this type. Please send text or audio."
	transcribeFailReply   = "I couldn't transcribe this audio. Please try sending clearer audio or text directly."
	downloadFailReply     = "I had trouble accessing this audio file. Please try sending it again."
	audioProcessedReply   = "I've processed your audio and sent the results."

	// Room for prefixes within Twilio's 1600-char TwiML message cap
	twimlBodyLimit = 1450
)

var greetingWords = map[string]bool{
	"join":  true,
	"hello": true,
	"hi":    true,
	"hey":   true,
	"start": true,
}

// WebhookHandler processes inbound Twilio WhatsApp messages.
type WebhookHandler struct {
	pipeline    *FactCheckPipeline
	messenger   Messenger
	transcriber Transcriber
	downloader  MediaDownloader
	chunkLimit  int
}

// MediaDownloader fetches remote media to a local temp file.
type MediaDownloader interface {
	DownloadMedia(ctx context.Context, mediaURL, contentType string) (string, error)
}

// NewWebhookHandler wires the WhatsApp webhook. transcriber and downloader
// may be nil when transcription is disabled.
func NewWebhookHandler(pipeline *FactCheckPipeline, messenger Messenger, transcriber Transcriber, downloader MediaDownloader, chunkLimit int) *WebhookHandler {
	if chunkLimit < 1 {
		chunkLimit = 1500
	}
	return &WebhookHandler{
		pipeline:    pipeline,
		messenger:   messenger,
		transcriber: transcriber,
		downloader:  downloader,
		chunkLimit:  chunkLimit,
	}
}

// ServeHTTP handles POST /webhook from Twilio.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithTwiML(w, emptyMessageReply)
		return
	}

	body := strings.TrimSpace(r.FormValue("Body"))
	from := r.FormValue("From")
	numMedia, _ := strconv.Atoi(r.FormValue("NumMedia"))

	Logger().Info("Webhook message from %s: %d media, %d chars", from, numMedia, len(body))

	if numMedia > 0 {
		h.handleMedia(w, r, from)
		return
	}

	if body == "" {
		respondWithTwiML(w, emptyMessageReply)
		return
	}

	if greetingWords[strings.ToLower(body)] {
		respondWithTwiML(w, welcomeMessage)
		return
	}

	h.handleText(r.Context(), w, from, body)
}

// handleText runs the fact-check pipeline on a text message and delivers
// the report, chunked over the messaging API when one is configured.
func (h *WebhookHandler) handleText(ctx context.Context, w http.ResponseWriter, from, body string) {
	report := h.pipeline.Report(ctx, body)
	formatted := FormatFactCheckReport(report.Verdicts)
	formatted += "\n📈 *Trust Score:* " + strconv.FormatFloat(report.TrustScore, 'f', 1, 64) + "/10\n" + report.Recommendation
	formatted = EnhanceWithPatternWarnings(formatted, body)

	if h.messenger != nil && from != "" {
		if err := h.sendChunked(ctx, from, formatted); err != nil {
			Logger().Error("Failed to send fact-check results to %s: %v", from, err)
			respondWithTwiML(w, truncateForTwiML(formatted))
			return
		}
		respondWithTwiML(w)
		return
	}

	respondWithTwiML(w, truncateForTwiML(formatted))
}

// handleMedia processes a message carrying media attachments.
func (h *WebhookHandler) handleMedia(w http.ResponseWriter, r *http.Request, from string) {
	contentType := r.FormValue("MediaContentType0")
	mediaURL := r.FormValue("MediaUrl0")

	switch {
	case strings.HasPrefix(contentType, "audio/") || strings.Contains(contentType, "voice"):
		h.handleAudio(r.Context(), w, from, mediaURL, contentType)
	case strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/"):
		respondWithTwiML(w, imageVideoReply)
	default:
		respondWithTwiML(w, unsupportedMediaReply)
	}
}

// handleAudio downloads a voice note, transcribes it, and fact-checks the
// transcript.
func (h *WebhookHandler) handleAudio(ctx context.Context, w http.ResponseWriter, from, mediaURL, contentType string) {
	if h.transcriber == nil || h.downloader == nil {
		respondWithTwiML(w, unsupportedMediaReply)
		return
	}

	path, err := h.downloader.DownloadMedia(ctx, mediaURL, contentType)
	if err != nil {
		Logger().Error("Media download failed: %v", err)
		respondWithTwiML(w, downloadFailReply)
		return
	}
	defer os.Remove(path)

	transcript, err := h.transcriber.Transcribe(ctx, path)
	if err != nil || strings.TrimSpace(transcript) == "" {
		if err != nil && !errors.Is(err, ErrTranscriptionFailed) {
			Logger().Error("Transcription error: %v", err)
		}
		respondWithTwiML(w, transcribeFailReply)
		return
	}

	if h.messenger != nil && from != "" {
		notice := "📝 *Transcription:*\n" + truncateForTwiML(transcript)
		if _, err := h.messenger.Send(ctx, from, notice); err != nil {
			Logger().Error("Failed to send transcription to %s: %v", from, err)
		}

		report := h.pipeline.Report(ctx, transcript)
		formatted := FormatFactCheckReport(report.Verdicts)
		formatted += "\n📈 *Trust Score:* " + strconv.FormatFloat(report.TrustScore, 'f', 1, 64) + "/10\n" + report.Recommendation
		if err := h.sendChunked(ctx, from, formatted); err != nil {
			Logger().Error("Failed to send audio fact-check results to %s: %v", from, err)
		}
		respondWithTwiML(w, audioProcessedReply)
		return
	}

	report := h.pipeline.Report(ctx, transcript)
	formatted := FormatFactCheckReport(report.Verdicts)
	respondWithTwiML(w, truncateForTwiML(formatted))
}

// sendChunked delivers a long message in order, one chunk at a time.
func (h *WebhookHandler) sendChunked(ctx context.Context, to, body string) error {
	for _, chunk := range SplitMessage(body, h.chunkLimit) {
		if _, err := h.messenger.Send(ctx, to, chunk); err != nil {
			return err
		}
	}
	return nil
}

// SendWelcome handles POST /send-welcome and pushes the welcome message
// to a number out of band.
func (h *WebhookHandler) SendWelcome(w http.ResponseWriter, r *http.Request) {
	if h.messenger == nil {
		respondWithError(w, http.StatusServiceUnavailable, "Messaging is not configured")
		return
	}

	var payload struct {
		To string `json:"to"`
	}
	if err := decodeJSONBody(r, &payload); err != nil || payload.To == "" {
		respondWithError(w, http.StatusBadRequest, "Missing 'to' field in request")
		return
	}

	sid, err := h.messenger.Send(r.Context(), payload.To, welcomeMessage)
	if err != nil {
		Logger().Error("Failed to send welcome message to %s: %v", payload.To, err)
		respondWithError(w, http.StatusInternalServerError, "Failed to send welcome message")
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message_sid": sid})
}

// truncateForTwiML clips a message so the TwiML reply stays within
// Twilio's size limit.
func truncateForTwiML(text string) string {
	if len(text) <= twimlBodyLimit {
		return text
	}
	return text[:twimlBodyLimit] + "... (results truncated for length)"
}

// respondWithTwiML writes a TwiML document containing the given messages.
func respondWithTwiML(w http.ResponseWriter, messages ...string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(RenderTwiML(messages...)))
}
