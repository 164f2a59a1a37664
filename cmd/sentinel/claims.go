package main

import (
	"context"
	"strings"
)

// Inputs shorter than this many words are treated as a single claim without
// consulting the LLM.
const shortClaimWordThreshold = 15

// ClaimExtractor turns free text into verifiable claims. It never returns
// an empty slice for non-empty input and never propagates an error; every
// failure path synthesizes a fallback claim.
type ClaimExtractor struct {
	llm       Completer
	maxClaims int
}

// NewClaimExtractor creates an extractor capped at maxClaims per input.
func NewClaimExtractor(llm Completer, maxClaims int) *ClaimExtractor {
	if maxClaims < 1 {
		maxClaims = 3
	}
	return &ClaimExtractor{llm: llm, maxClaims: maxClaims}
}

// Extract returns between one and maxClaims claims for the text.
func (e *ClaimExtractor) Extract(ctx context.Context, text string) []Claim {
	if len(strings.Fields(text)) < shortClaimWordThreshold {
		return []Claim{{
			Text:        text,
			SearchQuery: "fact check " + text,
		}}
	}

	content, err := e.llm.Complete(ctx, extractClaimsPrompt, text)
	if err != nil {
		Logger().Warning("claim extraction completion failed: %v", err)
		return []Claim{fallbackClaim(text)}
	}

	var claims []Claim
	if err := ParseArray(content, &claims); err != nil {
		Logger().Warning("claim extraction parse failed: %v", err)
		return []Claim{fallbackClaim(text)}
	}

	valid := claims[:0]
	for _, c := range claims {
		if strings.TrimSpace(c.Text) != "" {
			valid = append(valid, c)
		}
	}
	if len(valid) == 0 {
		return []Claim{fallbackClaim(text)}
	}
	if len(valid) > e.maxClaims {
		valid = valid[:e.maxClaims]
	}
	return valid
}

// fallbackClaim builds a claim from the first sentence of the text, or its
// first 100 characters when no sentence boundary exists.
func fallbackClaim(text string) Claim {
	claim := text
	if idx := strings.Index(text, "."); idx > 0 {
		claim = text[:idx]
	} else if len(text) > 100 {
		claim = text[:100]
	}
	return Claim{
		Text:        claim,
		SearchQuery: "fact check " + claim,
	}
}
