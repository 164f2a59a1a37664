package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const serperEndpoint = "https://google.serper.dev/search"

// Searcher returns evidence snippets for a query. An empty slice with a nil
// error is the normal "no results" outcome; errors indicate transport or
// provider failures and callers treat them like empty evidence.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Evidence, error)
}

// SerperClient queries the Serper web-search API.
type SerperClient struct {
	apiKey     string
	endpoint   string
	maxResults int
	client     *http.Client
}

// NewSerperClient creates a search client returning up to maxResults
// organic results per query.
func NewSerperClient(apiKey string, maxResults int) *SerperClient {
	if maxResults < 1 {
		maxResults = 5
	}
	return &SerperClient{
		apiKey:     apiKey,
		endpoint:   serperEndpoint,
		maxResults: maxResults,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Search issues the query and maps organic results to Evidence.
func (s *SerperClient) Search(ctx context.Context, query string) ([]Evidence, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"q":   query,
		"num": s.maxResults,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: serper: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: serper returned status %s", ErrUpstream, resp.Status)
	}

	var result struct {
		Organic []Evidence `json:"organic"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: serper response decode: %v", ErrUpstream, err)
	}

	if len(result.Organic) > s.maxResults {
		result.Organic = result.Organic[:s.maxResults]
	}
	return result.Organic, nil
}
