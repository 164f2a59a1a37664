package main

import "strings"

// VerdictResult classifies the outcome of checking one claim.
type VerdictResult string

const (
	VerdictTrue       VerdictResult = "TRUE"
	VerdictFalse      VerdictResult = "FALSE"
	VerdictUnverified VerdictResult = "UNVERIFIED"
)

// CoerceVerdictResult maps any string to one of the three verdict values.
// Anything the LLM invents outside the vocabulary becomes UNVERIFIED.
func CoerceVerdictResult(s string) VerdictResult {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(VerdictTrue):
		return VerdictTrue
	case string(VerdictFalse):
		return VerdictFalse
	default:
		return VerdictUnverified
	}
}

// Claim is a single verifiable factual statement extracted from user text.
type Claim struct {
	Text        string `json:"claim"`
	Context     string `json:"context,omitempty"`
	SearchQuery string `json:"search_query,omitempty"`
}

// Query returns the search query for the claim, deriving one when the
// extractor did not supply it.
func (c Claim) Query() string {
	if c.SearchQuery != "" {
		return c.SearchQuery
	}
	return "fact check " + c.Text
}

// Evidence is one search result snippet used as grounding for a verdict.
type Evidence struct {
	Title   string `json:"title"`
	URL     string `json:"link"`
	Snippet string `json:"snippet"`
}

// SourceRef is a named link cited by a verdict.
type SourceRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Verdict is the outcome of checking one claim against evidence.
// Sources is never nil, only empty or populated.
type Verdict struct {
	Claim            string        `json:"claim"`
	Result           VerdictResult `json:"result"`
	Summary          string        `json:"summary"`
	DetailedAnalysis string        `json:"detailed_analysis"`
	Sources          []SourceRef   `json:"sources"`
	Context          string        `json:"context,omitempty"`
	FactCheckMatches int           `json:"fact_check_matches,omitempty"`
}

// Report aggregates the verdicts for one piece of content.
type Report struct {
	Verdicts       []Verdict `json:"verified_claims"`
	TrustScore     float64   `json:"trust_score"`
	Recommendation string    `json:"recommendation"`
}

// Source is one monitored feed from sources.yml.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
	Enabled  bool   `yaml:"enabled"`
}
