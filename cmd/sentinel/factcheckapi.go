package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const factCheckEndpoint = "https://factchecktools.googleapis.com/v1alpha1/claims:search"

// FactCheckMatch is one published fact check returned by the Google Fact
// Check Tools API.
type FactCheckMatch struct {
	Text          string `json:"text"`
	ClaimReviewed string `json:"claimReviewed"`
	ClaimRating   struct {
		TextualRating string  `json:"textualRating"`
		RatingValue   float64 `json:"ratingValue"`
	} `json:"claimRating"`
	ClaimReviewers []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"claimReviewers"`
}

// FactCheckClient looks claims up in the Google Fact Check Tools index.
// The lookup is advisory: the verdict pipeline records how many published
// fact checks exist but still reasons from live search evidence.
type FactCheckClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewFactCheckClient creates a claims:search client.
func NewFactCheckClient(apiKey string) *FactCheckClient {
	return &FactCheckClient{
		apiKey:   apiKey,
		endpoint: factCheckEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup returns the published fact checks matching the claim, or an empty
// slice when the index has nothing.
func (f *FactCheckClient) Lookup(ctx context.Context, claim string) ([]FactCheckMatch, error) {
	params := url.Values{}
	params.Set("key", f.apiKey)
	params.Set("query", claim)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fact check API: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fact check API returned status %s", ErrUpstream, resp.Status)
	}

	var result struct {
		Claims []FactCheckMatch `json:"claims"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: fact check API decode: %v", ErrUpstream, err)
	}
	return result.Claims, nil
}
