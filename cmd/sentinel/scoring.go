package main

import "math"

// Per-verdict weights for the aggregate trust score. Unknown values have
// already been coerced to UNVERIFIED by the parse boundary.
var verdictWeights = map[VerdictResult]float64{
	VerdictTrue:       10.0,
	VerdictFalse:      0.0,
	VerdictUnverified: 5.0,
}

// GenerateTrustScore aggregates verdicts into a single score in [0,10],
// rounded to one decimal place. No verdicts means a neutral 5.0.
func GenerateTrustScore(verdicts []Verdict) float64 {
	if len(verdicts) == 0 {
		return 5.0
	}
	total := 0.0
	for _, v := range verdicts {
		weight, ok := verdictWeights[v.Result]
		if !ok {
			weight = 5.0
		}
		total += weight
	}
	return math.Round(total/float64(len(verdicts))*10) / 10
}

// Recommendation maps a trust score to advice for the reader.
func Recommendation(score float64) string {
	switch {
	case score >= 8.0:
		return "This content appears highly reliable and factually accurate."
	case score >= 6.0:
		return "This content contains a mix of accurate and unverified information. Exercise some caution."
	case score >= 4.0:
		return "This content contains significant unverified information. Verify important claims with additional sources."
	default:
		return "This content contains multiple false or misleading claims. Approach with significant skepticism."
	}
}
