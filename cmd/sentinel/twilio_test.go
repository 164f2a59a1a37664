package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderTwiML(t *testing.T) {
	doc := RenderTwiML("hello", "world")
	require.Contains(t, doc, "<Response>")
	require.Contains(t, doc, "<Message>hello</Message>")
	require.Contains(t, doc, "<Message>world</Message>")
}

func TestRenderTwiMLEscapesMarkup(t *testing.T) {
	doc := RenderTwiML("a < b & c")
	require.Contains(t, doc, "a &lt; b &amp; c")
}

func TestRenderTwiMLEmpty(t *testing.T) {
	doc := RenderTwiML()
	require.Contains(t, doc, "<Response>")
	require.NotContains(t, doc, "<Message>")
}

func TestExtensionForContentType(t *testing.T) {
	require.Equal(t, ".mp3", extensionForContentType("audio/mpeg"))
	require.Equal(t, ".ogg", extensionForContentType("audio/ogg; codecs=opus"))
	require.Equal(t, ".wav", extensionForContentType("audio/wav"))
	require.Equal(t, ".audio", extensionForContentType("application/octet-stream"))
}

func TestTwilioSend(t *testing.T) {
	var gotPath, gotBody, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		user, pass, _ := r.BasicAuth()
		gotAuth = user + ":" + pass
		r.ParseForm()
		gotBody = r.FormValue("Body")
		json.NewEncoder(w).Encode(map[string]string{"sid": "SM42"})
	}))
	defer srv.Close()

	client := NewTwilioClient("AC123", "token", "whatsapp:+14155238886")
	client.baseURL = srv.URL

	sid, err := client.Send(context.Background(), "whatsapp:+10000000000", "hi there")
	require.NoError(t, err)
	require.Equal(t, "SM42", sid)
	require.Equal(t, "/Accounts/AC123/Messages.json", gotPath)
	require.Equal(t, "AC123:token", gotAuth)
	require.Equal(t, "hi there", gotBody)
}

func TestTwilioSendUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"bad number"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewTwilioClient("AC123", "token", "whatsapp:+1")
	client.baseURL = srv.URL

	_, err := client.Send(context.Background(), "whatsapp:+2", "hi")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestTwilioDownloadMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.False(t, strings.HasSuffix(r.URL.Path, ".json"))
		w.Header().Set("Content-Type", "audio/ogg")
		w.Write([]byte("voice-note-bytes"))
	}))
	defer srv.Close()

	client := NewTwilioClient("AC123", "token", "whatsapp:+1")

	path, err := client.DownloadMedia(context.Background(), srv.URL+"/media/ME1.json", "")
	require.NoError(t, err)
	defer os.Remove(path)

	require.True(t, strings.HasSuffix(path, ".ogg"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "voice-note-bytes", string(data))
}

func TestTwilioDownloadMediaNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewTwilioClient("AC123", "token", "whatsapp:+1")

	_, err := client.DownloadMedia(context.Background(), srv.URL+"/media/ME404", "")
	require.ErrorIs(t, err, ErrMediaDownload)
}
