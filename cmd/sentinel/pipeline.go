package main

import "context"

// FactCheckPipeline is the end-to-end path from raw text to verdicts:
// claim extraction, per-claim verification, trust scoring. Each claim is
// verified sequentially; a started check runs to completion or to a caught
// failure.
type FactCheckPipeline struct {
	extractor   *ClaimExtractor
	synthesizer *VerdictSynthesizer
	maxVerified int
}

// NewFactCheckPipeline creates a pipeline verifying at most maxVerified
// claims per input to keep transport-bound replies manageable.
func NewFactCheckPipeline(extractor *ClaimExtractor, synthesizer *VerdictSynthesizer, maxVerified int) *FactCheckPipeline {
	if maxVerified < 1 {
		maxVerified = 3
	}
	return &FactCheckPipeline{
		extractor:   extractor,
		synthesizer: synthesizer,
		maxVerified: maxVerified,
	}
}

// Check extracts claims from the text and verifies each. The result is
// never empty for non-empty input.
func (p *FactCheckPipeline) Check(ctx context.Context, text string) []Verdict {
	claims := p.extractor.Extract(ctx, text)
	if len(claims) > p.maxVerified {
		claims = claims[:p.maxVerified]
	}

	verdicts := make([]Verdict, 0, len(claims))
	for _, claim := range claims {
		verdicts = append(verdicts, p.synthesizer.Verify(ctx, claim))
	}
	return verdicts
}

// Report runs Check and aggregates the verdicts into a scored report.
func (p *FactCheckPipeline) Report(ctx context.Context, text string) Report {
	verdicts := p.Check(ctx, text)
	score := GenerateTrustScore(verdicts)
	return Report{
		Verdicts:       verdicts,
		TrustScore:     score,
		Recommendation: Recommendation(score),
	}
}
