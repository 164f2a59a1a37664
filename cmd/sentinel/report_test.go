package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatFactCheckReportEmpty(t *testing.T) {
	out := FormatFactCheckReport(nil)
	require.Contains(t, out, "No verifiable claims")
}

func TestFormatFactCheckReport(t *testing.T) {
	verdicts := []Verdict{
		{
			Claim:   "the earth is flat",
			Result:  VerdictFalse,
			Summary: "Contradicted by every measurement.",
			Sources: []SourceRef{{Name: "Reuters", URL: "https://reuters.com"}},
		},
		{
			Claim:   "water boils at 100C at sea level",
			Result:  VerdictTrue,
			Summary: "Standard physics.",
		},
	}

	out := FormatFactCheckReport(verdicts)
	require.Contains(t, out, "FACT CHECK RESULTS")
	require.Contains(t, out, "❌")
	require.Contains(t, out, "✅")
	require.Contains(t, out, "the earth is flat")
	require.Contains(t, out, "Reuters")
}

func TestEnhanceWithPatternWarnings(t *testing.T) {
	report := "base report"
	enhanced := EnhanceWithPatternWarnings(report, "Forward this to everyone! Miracle cure inside!")
	require.True(t, strings.HasPrefix(enhanced, report))
	require.Contains(t, enhanced, "MISINFORMATION RED FLAGS")
	require.Contains(t, enhanced, "forwarding")
}

func TestEnhanceWithPatternWarningsCleanInput(t *testing.T) {
	report := "base report"
	require.Equal(t, report, EnhanceWithPatternWarnings(report, "Nothing suspicious here."))
}
