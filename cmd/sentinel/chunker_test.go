package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitMessageShortTextUntouched(t *testing.T) {
	chunks := SplitMessage("hello world", 1500)
	require.Equal(t, []string{"hello world"}, chunks)
}

func TestSplitMessageZeroLimit(t *testing.T) {
	chunks := SplitMessage("hello", 0)
	require.Equal(t, []string{"hello"}, chunks)
}

func TestSplitMessageRespectsLimit(t *testing.T) {
	text := strings.Repeat("All claims require verification. ", 200)
	chunks := SplitMessage(text, 1500)
	require.Greater(t, len(chunks), 1)
	for i, c := range chunks {
		require.LessOrEqual(t, len(c), 1500, "chunk %d exceeds limit", i)
		require.NotEmpty(t, c)
	}
}

func TestSplitMessagePrefersParagraphBreaks(t *testing.T) {
	para := strings.Repeat("x", 800)
	text := para + "\n\n" + para
	chunks := SplitMessage(text, 1000)
	require.Equal(t, []string{para, para}, chunks)
}

func TestSplitMessageSentencePacking(t *testing.T) {
	text := strings.TrimSuffix(strings.Repeat("This sentence has some words in it. ", 100), " ")
	chunks := SplitMessage(text, 200)
	for _, c := range chunks {
		require.LessOrEqual(t, len(c), 200)
	}
	// Sentence splitting keeps separators, so rejoining loses nothing
	require.Equal(t, text, strings.Join(chunks, ""))
}

func TestSplitMessageHardSliceOversizedSentence(t *testing.T) {
	text := strings.Repeat("a", 3000)
	chunks := SplitMessage(text, 1500)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		require.LessOrEqual(t, len(c), 1500)
	}
	for i, c := range chunks[:len(chunks)-1] {
		require.True(t, strings.HasSuffix(c, "..."), "chunk %d missing truncation marker", i)
	}
	require.False(t, strings.HasSuffix(chunks[len(chunks)-1], "..."))
}

func TestSplitMessageTinyLimit(t *testing.T) {
	chunks := SplitMessage("abcdef", 2)
	for _, c := range chunks {
		require.LessOrEqual(t, len(c), 2)
	}
	require.Equal(t, "abcdef", strings.Join(chunks, ""))
}
