package main

import (
	"context"
	"encoding/json"
	"strings"
)

// Canned verdict texts used on the guaranteed fallback paths.
const (
	noEvidenceSummary    = "Insufficient evidence available to verify this claim."
	noEvidenceAnalysis   = "No reliable sources were found to verify this specific claim."
	parseFailureSummary  = "Technical issues prevented proper verification."
	parseFailureAnalysis = "While search results were found, the analysis could not be processed correctly to determine the claim's accuracy."
	llmFailureSummary    = "Technical difficulties interrupted the verification process."
	llmFailureAnalysis   = "An error occurred during the analysis of search results. Without complete verification, the claim's accuracy cannot be determined."
)

// VerdictSynthesizer combines a claim and its search evidence into exactly
// one verdict. It never returns an error: any failure at any step produces
// an UNVERIFIED verdict with an explanatory message.
type VerdictSynthesizer struct {
	llm         Completer
	search      Searcher
	factCheck   *FactCheckClient
	maxEvidence int
}

// NewVerdictSynthesizer creates a synthesizer. factCheck may be nil when
// the advisory Google Fact Check lookup is disabled.
func NewVerdictSynthesizer(llm Completer, search Searcher, factCheck *FactCheckClient, maxEvidence int) *VerdictSynthesizer {
	if maxEvidence < 1 {
		maxEvidence = 5
	}
	return &VerdictSynthesizer{
		llm:         llm,
		search:      search,
		factCheck:   factCheck,
		maxEvidence: maxEvidence,
	}
}

// Verify checks one claim and always returns a well-formed verdict.
func (vs *VerdictSynthesizer) Verify(ctx context.Context, claim Claim) Verdict {
	evidence, err := vs.search.Search(ctx, claim.Query())
	if err != nil {
		Logger().Warning("evidence search failed for %q: %v", claim.Text, err)
		evidence = nil
	}
	if len(evidence) == 0 {
		return vs.fallback(claim, noEvidenceSummary, noEvidenceAnalysis)
	}

	matches := vs.lookupPublishedChecks(ctx, claim.Text)

	verdict, ok := vs.analyze(ctx, claim, evidence)
	if !ok {
		verdict = vs.fallback(claim, llmFailureSummary, llmFailureAnalysis)
	}
	verdict.FactCheckMatches = matches
	return verdict
}

// analyze runs the LLM over the evidence and parses its JSON verdict.
func (vs *VerdictSynthesizer) analyze(ctx context.Context, claim Claim, evidence []Evidence) (Verdict, bool) {
	if len(evidence) > vs.maxEvidence {
		evidence = evidence[:vs.maxEvidence]
	}
	serialized, err := json.MarshalIndent(evidence, "", "  ")
	if err != nil {
		return Verdict{}, false
	}

	prompt := strings.ReplaceAll(verificationPrompt, "{{claim}}", claim.Text)
	prompt = strings.ReplaceAll(prompt, "{{search_results}}", string(serialized))
	if claim.Context != "" {
		prompt += "\n\nAdditional Context: " + claim.Context
	}

	content, err := vs.llm.Complete(ctx, prompt, "")
	if err != nil {
		Logger().Warning("verdict completion failed for %q: %v", claim.Text, err)
		return Verdict{}, false
	}

	var raw struct {
		Claim            string      `json:"claim"`
		Result           string      `json:"result"`
		Summary          string      `json:"summary"`
		DetailedAnalysis string      `json:"detailed_analysis"`
		Sources          []SourceRef `json:"sources"`
	}
	if err := ParseObject(content, &raw); err != nil {
		Logger().Warning("verdict parse failed for %q: %v", claim.Text, err)
		return vs.fallback(claim, parseFailureSummary, parseFailureAnalysis), true
	}

	verdict := Verdict{
		Claim:            raw.Claim,
		Result:           CoerceVerdictResult(raw.Result),
		Summary:          raw.Summary,
		DetailedAnalysis: raw.DetailedAnalysis,
		Sources:          filterSources(raw.Sources),
		Context:          claim.Context,
	}
	if verdict.Claim == "" {
		verdict.Claim = claim.Text
	}
	return verdict, true
}

// lookupPublishedChecks records how many fact checks already exist for the
// claim. Failures are logged and counted as zero.
func (vs *VerdictSynthesizer) lookupPublishedChecks(ctx context.Context, claim string) int {
	if vs.factCheck == nil {
		return 0
	}
	matches, err := vs.factCheck.Lookup(ctx, claim)
	if err != nil {
		Logger().Debug("fact check lookup failed for %q: %v", claim, err)
		return 0
	}
	return len(matches)
}

func (vs *VerdictSynthesizer) fallback(claim Claim, summary, analysis string) Verdict {
	return Verdict{
		Claim:            claim.Text,
		Result:           VerdictUnverified,
		Summary:          summary,
		DetailedAnalysis: analysis,
		Sources:          []SourceRef{},
		Context:          claim.Context,
	}
}

// filterSources keeps only entries that carry both a name and a URL. The
// result is never nil.
func filterSources(sources []SourceRef) []SourceRef {
	filtered := make([]SourceRef, 0, len(sources))
	for _, s := range sources {
		if s.Name != "" && s.URL != "" {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
