package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractShortInputSkipsLLM(t *testing.T) {
	llm := &stubCompleter{reply: "should never be used"}
	extractor := NewClaimExtractor(llm, 3)

	claims := extractor.Extract(context.Background(), "The moon landing was faked")

	require.Len(t, claims, 1)
	require.Equal(t, "The moon landing was faked", claims[0].Text)
	require.Equal(t, "fact check The moon landing was faked", claims[0].Query())
	require.Zero(t, llm.calls)
}

func longInput() string {
	return strings.Repeat("word ", 20) + "the vaccine contains microchips and the earth is flat according to many posts."
}

func TestExtractParsesClaimArray(t *testing.T) {
	llm := &stubCompleter{reply: `[
		{"claim": "the vaccine contains microchips", "search_query": "vaccine microchip claim fact check"},
		{"claim": "the earth is flat"},
		{"claim": "   "}
	]`}
	extractor := NewClaimExtractor(llm, 3)

	claims := extractor.Extract(context.Background(), longInput())

	require.Len(t, claims, 2)
	require.Equal(t, "vaccine microchip claim fact check", claims[0].Query())
	require.Equal(t, "fact check the earth is flat", claims[1].Query())
}

func TestExtractCapsClaimCount(t *testing.T) {
	llm := &stubCompleter{reply: `[{"claim":"a"},{"claim":"b"},{"claim":"c"},{"claim":"d"},{"claim":"e"}]`}
	extractor := NewClaimExtractor(llm, 3)

	claims := extractor.Extract(context.Background(), longInput())
	require.Len(t, claims, 3)
}

func TestExtractFallsBackOnLLMError(t *testing.T) {
	llm := &stubCompleter{err: errors.New("rate limited")}
	extractor := NewClaimExtractor(llm, 3)

	text := "First sentence here. Second sentence follows with many more words to pass the short claim threshold easily."
	claims := extractor.Extract(context.Background(), text)

	require.Len(t, claims, 1)
	require.Equal(t, "First sentence here", claims[0].Text)
}

func TestExtractFallsBackOnGarbageOutput(t *testing.T) {
	llm := &stubCompleter{reply: "I cannot find any claims in this message, sorry!"}
	extractor := NewClaimExtractor(llm, 3)

	claims := extractor.Extract(context.Background(), longInput())
	require.Len(t, claims, 1)
	require.NotEmpty(t, claims[0].Text)
}
