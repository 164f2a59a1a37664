package main

import (
	"fmt"
	"strings"
)

const forwardingWarning = "⚠️ *Beware of messages asking you to forward to others!*\nForward more content to check its accuracy."

// verdictEmoji renders the result with its messenger-friendly marker.
func verdictEmoji(result VerdictResult) string {
	switch result {
	case VerdictTrue:
		return "✅ TRUE"
	case VerdictFalse:
		return "❌ FALSE"
	default:
		return "❓ UNVERIFIED"
	}
}

// FormatFactCheckReport renders verdicts as a WhatsApp/Discord markdown
// report. At most two source names are listed per claim for readability.
func FormatFactCheckReport(verdicts []Verdict) string {
	if len(verdicts) == 0 {
		return "⚠️ No verifiable claims were identified in this message."
	}

	var b strings.Builder
	b.WriteString("📊 *FACT CHECK RESULTS*\n\n")
	for _, v := range verdicts {
		b.WriteString(FormatVerdict(v))
		b.WriteString("\n")
	}
	b.WriteString(forwardingWarning)
	return b.String()
}

// FormatVerdict renders a single verdict block.
func FormatVerdict(v Verdict) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Claim:* %s\n*Result:* %s\n", v.Claim, verdictEmoji(v.Result))
	if v.Summary != "" {
		fmt.Fprintf(&b, "*Summary:* %s\n", v.Summary)
	}
	if v.DetailedAnalysis != "" {
		fmt.Fprintf(&b, "*Analysis:* %s\n", v.DetailedAnalysis)
	}
	if len(v.Sources) > 0 {
		b.WriteString("*Sources:*\n")
		for i, source := range v.Sources {
			if i >= 2 {
				break
			}
			fmt.Fprintf(&b, "- %s\n", source.Name)
		}
	}
	return b.String()
}

// EnhanceWithPatternWarnings appends misinformation red flags detected in
// the original text to an already formatted report.
func EnhanceWithPatternWarnings(report, original string) string {
	warnings := DetectMisinformationPatterns(original)
	if len(warnings) == 0 {
		return report
	}
	report += "\n\n*MISINFORMATION RED FLAGS:*\n"
	for _, w := range warnings {
		report += w + "\n"
	}
	return report
}
