package main

import (
	"encoding/json"
	"regexp"
	"strings"
)

// LLM output frequently wraps JSON in prose or drops commas between
// properties. The salvage parser slices out the JSON region, tries a strict
// parse, and escalates through targeted repairs before giving up.

var (
	// Two string-valued properties separated only by whitespace/newline.
	missingCommaStrings = regexp.MustCompile(`(".*?":\s*".*?")\s*\n\s*(".*?")`)
	// A non-string-valued property followed by a quoted key with no comma.
	missingCommaValues = regexp.MustCompile(`(".*?":\s*[^",\s{\[].*?[^,\s{\[])(\s*\n\s*)(".*?")`)
	// A quoted property name followed by a colon, used when rebuilding.
	propertyKey = regexp.MustCompile(`^"[^"]+"\s*:`)
)

// ParseObject locates the outermost {...} region in text and parses it into
// v, applying repairs on failure. Returns a *ParseFailure when nothing can
// be recovered.
func ParseObject(text string, v interface{}) error {
	return salvage(text, '{', '}', v)
}

// ParseArray is the array variant of ParseObject, scanning for [...].
func ParseArray(text string, v interface{}) error {
	return salvage(text, '[', ']', v)
}

func salvage(text string, open, close byte, v interface{}) error {
	start := strings.IndexByte(text, open)
	end := strings.LastIndexByte(text, close)
	if start == -1 || end <= start {
		return &ParseFailure{Reason: "no JSON value found", Raw: text, Err: ErrNoJSONFound}
	}
	raw := text[start : end+1]

	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}

	fixed := missingCommaStrings.ReplaceAllString(raw, "${1},\n  ${2}")
	if err := json.Unmarshal([]byte(fixed), v); err == nil {
		return nil
	}

	fixed = missingCommaValues.ReplaceAllString(fixed, "${1},${2}${3}")
	if err := json.Unmarshal([]byte(fixed), v); err == nil {
		return nil
	}

	if open == '{' {
		if rebuilt, ok := rebuildObject(raw); ok {
			if err := json.Unmarshal([]byte(rebuilt), v); err == nil {
				return nil
			}
		}
	}

	return &ParseFailure{Reason: "repair attempts exhausted", Raw: text, Err: ErrJSONRepairFailed}
}

// rebuildObject reassembles an object property by property: scan the body
// tracking quote state, split on `"key":` boundaries outside strings, drop
// fragments without a colon, and rejoin with commas.
func rebuildObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if start == -1 || end <= start {
		return "", false
	}
	content := strings.TrimSpace(raw[start+1 : end])

	var props []string
	var current strings.Builder
	inQuotes := false
	for i := 0; i < len(content); i++ {
		ch := content[i]
		if ch == '"' && (i == 0 || content[i-1] != '\\') {
			if inQuotes {
				inQuotes = false
			} else {
				if current.Len() > 0 && propertyKey.MatchString(content[i:]) {
					props = append(props, current.String())
					current.Reset()
				}
				inQuotes = true
			}
		}
		current.WriteByte(ch)
	}
	if current.Len() > 0 {
		props = append(props, current.String())
	}

	var valid []string
	for _, prop := range props {
		prop = strings.TrimSpace(prop)
		prop = strings.TrimSuffix(prop, ",")
		if strings.Contains(prop, ":") {
			valid = append(valid, prop)
		}
	}
	if len(valid) == 0 {
		return "", false
	}
	return "{\n  " + strings.Join(valid, ",\n  ") + "\n}", true
}
