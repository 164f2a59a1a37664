package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestMain(m *testing.M) {
	logPath := filepath.Join(os.TempDir(), "sentinel-test", "test.log")
	if err := InitLogger(logPath, LogError); err != nil {
		panic(err)
	}
	code := m.Run()
	os.RemoveAll(filepath.Dir(logPath))
	os.Exit(code)
}

// stubCompleter returns canned LLM output and records calls.
type stubCompleter struct {
	reply string
	err   error
	calls int
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

// stubSearcher returns canned evidence and records queries.
type stubSearcher struct {
	evidence []Evidence
	err      error
	queries  []string
}

func (s *stubSearcher) Search(ctx context.Context, query string) ([]Evidence, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	return s.evidence, nil
}

// stubMessenger records sent messages.
type stubMessenger struct {
	sent []string
	to   []string
	err  error
}

func (s *stubMessenger) Send(ctx context.Context, to, body string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.to = append(s.to, to)
	s.sent = append(s.sent, body)
	return "SM123", nil
}

// stubTranscriber returns a canned transcript.
type stubTranscriber struct {
	transcript string
	err        error
}

func (s *stubTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.transcript, nil
}

// stubDownloader writes a canned file and returns its path.
type stubDownloader struct {
	err error
}

func (s *stubDownloader) DownloadMedia(ctx context.Context, mediaURL, contentType string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	f, err := os.CreateTemp("", "stub-media-*.mp3")
	if err != nil {
		return "", err
	}
	f.WriteString("audio")
	f.Close()
	return f.Name(), nil
}

// stubClassifier returns scores keyed by model name.
type stubClassifier struct {
	scores map[string][]LabelScore
	err    error
}

func (s *stubClassifier) Classify(ctx context.Context, model string, data []byte) ([]LabelScore, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.scores[model], nil
}
