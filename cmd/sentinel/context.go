package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// TavilyResult is one search hit from the Tavily API.
type TavilyResult struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// TavilyClient fetches background sources from the Tavily search API.
type TavilyClient struct {
	apiKey     string
	endpoint   string
	maxResults int
	client     *http.Client
}

// NewTavilyClient creates a Tavily search client.
func NewTavilyClient(apiKey string) *TavilyClient {
	return &TavilyClient{
		apiKey:     apiKey,
		endpoint:   tavilyEndpoint,
		maxResults: 5,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Search runs a Tavily query and returns its results.
func (t *TavilyClient) Search(ctx context.Context, query string) ([]TavilyResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"api_key":     t.apiKey,
		"query":       query,
		"max_results": t.maxResults,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: tavily request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: tavily returned status %d: %s", ErrUpstream, resp.StatusCode, string(body))
	}

	var decoded struct {
		Results []TavilyResult `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: failed to decode tavily response: %v", ErrUpstream, err)
	}
	return decoded.Results, nil
}

// ContextAnalysis is the response payload for article context analysis.
type ContextAnalysis struct {
	Summary           string      `json:"summary"`
	KeyPoints         []string    `json:"key_points"`
	BackgroundContext string      `json:"background_context"`
	RelevantSources   []SourceRef `json:"relevant_sources"`
}

// ContextAnalyzer generates article summaries with background context
// and supporting sources.
type ContextAnalyzer struct {
	llm    Completer
	tavily *TavilyClient
}

// NewContextAnalyzer creates an analyzer. tavily may be nil, in which
// case no external sources are attached.
func NewContextAnalyzer(llm Completer, tavily *TavilyClient) *ContextAnalyzer {
	return &ContextAnalyzer{llm: llm, tavily: tavily}
}

// Analyze summarizes the text and enriches it with background sources.
func (ca *ContextAnalyzer) Analyze(ctx context.Context, text string) (*ContextAnalysis, error) {
	out, err := ca.llm.Complete(ctx, contextAnalysisPrompt, text)
	if err != nil {
		return nil, err
	}

	var analysis ContextAnalysis
	if err := ParseObject(out, &analysis); err != nil {
		return nil, err
	}
	if analysis.KeyPoints == nil {
		analysis.KeyPoints = []string{}
	}
	analysis.RelevantSources = []SourceRef{}

	if ca.tavily != nil {
		results, err := ca.tavily.Search(ctx, text)
		if err != nil {
			Logger().Warning("Background source lookup failed: %v", err)
		} else {
			for _, r := range results {
				analysis.RelevantSources = append(analysis.RelevantSources, SourceRef{
					Name: r.Title,
					URL:  r.URL,
				})
			}
		}
	}

	return &analysis, nil
}

// HandleAnalyze handles POST /api/analyze. The request carries either
// raw text or a URL to fetch and analyze.
func (ca *ContextAnalyzer) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text string `json:"text"`
		URL  string `json:"url"`
	}
	if err := decodeJSONBody(r, &payload); err != nil || (payload.Text == "" && payload.URL == "") {
		respondWithError(w, http.StatusBadRequest, "Missing 'text' field in request")
		return
	}

	text := payload.Text
	if text == "" {
		fetched, err := FetchArticleText(r.Context(), payload.URL)
		if err != nil {
			Logger().Error("Article fetch failed for %s: %v", payload.URL, err)
			respondWithError(w, http.StatusBadGateway, "Failed to fetch article from URL")
			return
		}
		text = fetched
	}

	analysis, err := ca.Analyze(r.Context(), text)
	if err != nil {
		Logger().Error("Context analysis failed: %v", err)
		respondWithError(w, http.StatusInternalServerError, "Failed to parse LLM response as JSON")
		return
	}
	respondWithJSON(w, http.StatusOK, analysis)
}
