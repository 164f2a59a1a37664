package main

import "errors"

// Failure categories for the fact-checking pipeline. Every one of these is
// caught at a component boundary and converted into a fallback value; none
// may reach the transport layer as an unhandled fault.
var (
	ErrNoJSONFound         = errors.New("no JSON value found in text")
	ErrJSONRepairFailed    = errors.New("JSON repair failed")
	ErrNoEvidence          = errors.New("no search evidence available")
	ErrTranscriptionFailed = errors.New("audio transcription failed")
	ErrMediaDownload       = errors.New("media download failed")
	ErrUnsupportedMedia    = errors.New("unsupported media type")
	ErrUpstream            = errors.New("upstream provider error")
)

// ParseFailure reports an unrecoverable salvage-parse attempt. The raw text
// is kept for diagnostics only and is never sent back to callers.
type ParseFailure struct {
	Reason string
	Raw    string
	Err    error
}

func (p *ParseFailure) Error() string {
	return "salvage parse: " + p.Reason
}

func (p *ParseFailure) Unwrap() error {
	return p.Err
}
