package main

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testDetector(classifier Classifier) *DeepfakeDetector {
	return NewDeepfakeDetector(classifier, "primary-model", "second-model", "audio-model", 0.7)
}

func TestCheckImageBlendsScores(t *testing.T) {
	classifier := &stubClassifier{scores: map[string][]LabelScore{
		"primary-model": {{Label: "Realism", Score: 0.9}, {Label: "Deepfake", Score: 0.1}},
		"second-model":  {{Label: "real", Score: 0.5}, {Label: "fake", Score: 0.5}},
	}}
	detector := testDetector(classifier)

	result, err := detector.CheckImage(context.Background(), []byte("img"))
	require.NoError(t, err)

	// 0.9*0.7 + 0.5*0.3 = 0.78 real; 0.1*0.7 + 0.5*0.3 = 0.22 fake
	require.Equal(t, "Real", result.Result)
	require.InDelta(t, 0.78, result.Scores["Real"], 1e-9)
	require.InDelta(t, 0.22, result.Scores["Deepfake"], 1e-9)
}

func TestCheckImageDeepfakeMajority(t *testing.T) {
	classifier := &stubClassifier{scores: map[string][]LabelScore{
		"primary-model": {{Label: "Real", Score: 0.2}, {Label: "Fake", Score: 0.8}},
		"second-model":  {{Label: "Real", Score: 0.4}, {Label: "Deepfake", Score: 0.6}},
	}}
	detector := testDetector(classifier)

	result, err := detector.CheckImage(context.Background(), []byte("img"))
	require.NoError(t, err)
	require.Equal(t, "Deepfake", result.Result)
}

func TestCheckAudio(t *testing.T) {
	classifier := &stubClassifier{scores: map[string][]LabelScore{
		"audio-model": {{Label: "spoof", Score: 0.9325}, {Label: "bonafide", Score: 0.0675}},
	}}
	detector := testDetector(classifier)

	result, err := detector.CheckAudio(context.Background(), []byte("wav"))
	require.NoError(t, err)
	require.Equal(t, "Deepfake", result.Result)
	require.Equal(t, "93.25%", result.Confidence)
}

func multipartBody(t *testing.T, field, filename string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	part.Write([]byte("payload"))
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestHandleImageMissingFile(t *testing.T) {
	detector := testDetector(&stubClassifier{})
	req := httptest.NewRequest(http.MethodPost, "/api/deepfake", nil)
	rec := httptest.NewRecorder()

	detector.HandleImage(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "No file part in the request", resp["error"])
}

func TestHandleImageBadExtension(t *testing.T) {
	detector := testDetector(&stubClassifier{})
	body, contentType := multipartBody(t, "file", "document.pdf")
	req := httptest.NewRequest(http.MethodPost, "/api/deepfake", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	detector.HandleImage(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "JPEG or PNG")
}

func TestHandleImageSuccess(t *testing.T) {
	classifier := &stubClassifier{scores: map[string][]LabelScore{
		"primary-model": {{Label: "Real", Score: 1.0}},
		"second-model":  {{Label: "Real", Score: 1.0}},
	}}
	detector := testDetector(classifier)

	body, contentType := multipartBody(t, "file", "photo.jpg")
	req := httptest.NewRequest(http.MethodPost, "/api/deepfake", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	detector.HandleImage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "success", resp["status"])
	require.Equal(t, "Real", resp["result"])
}

func TestHandleAudioBadExtension(t *testing.T) {
	detector := testDetector(&stubClassifier{})
	body, contentType := multipartBody(t, "audio", "clip.flac")
	req := httptest.NewRequest(http.MethodPost, "/api/deepfake/audio", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	detector.HandleAudio(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "WAV or MP3")
}
