package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/shorts/abcDEF12345", "abcDEF12345", true},
		{"https://www.youtube.com/embed/abcDEF12345", "abcDEF12345", true},
		{"youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://vimeo.com/12345", "", false},
		{"not a url at all", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.url, func(t *testing.T) {
			got, ok := ExtractVideoID(tc.url)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTruncateTranscript(t *testing.T) {
	short := "brief transcript"
	require.Equal(t, short, truncateTranscript(short))

	long := make([]byte, 1500)
	for i := range long {
		long[i] = 'a'
	}
	out := truncateTranscript(string(long))
	require.Len(t, out, transcriptPreviewLimit+3)
	require.Equal(t, "...", out[len(out)-3:])
}
