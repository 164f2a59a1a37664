package main

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DetectMisinformationPatterns scans text for phrasing common in viral
// misinformation and returns the matching warning labels. Pure function of
// the input, no external calls.
func DetectMisinformationPatterns(text string) []string {
	text = strings.ToLower(norm.NFC.String(text))
	var warnings []string

	if strings.Contains(text, "forward this to") || strings.Contains(text, "share with") || strings.Contains(text, "send to") {
		warnings = append(warnings, "⚠️ Message asks for forwarding - common in misinformation campaigns")
	}

	if strings.Contains(text, "big pharma") || strings.Contains(text, "doctors don't want you to know") || strings.Contains(text, "they don't want you to know") {
		warnings = append(warnings, "⚠️ Claims about information suppression often lack evidence")
	}

	if strings.Contains(text, "miracle cure") || strings.Contains(text, "kills 99%") || strings.Contains(text, "cures all") {
		warnings = append(warnings, "⚠️ Claims about miracle cures or perfect effectiveness are typically exaggerated")
	}

	if strings.Contains(text, "scientists have discovered") &&
		!(strings.Contains(text, "published in") || strings.Contains(text, "journal") || strings.Contains(text, "study link")) {
		warnings = append(warnings, "⚠️ Vague references to 'scientists' without specific sources")
	}

	if strings.Contains(text, "breaking news") && (strings.Contains(text, "forward") || strings.Contains(text, "share")) {
		warnings = append(warnings, "⚠️ Urgent 'breaking news' asking for shares is a red flag")
	}

	return warnings
}
