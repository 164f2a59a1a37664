package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"
)

const huggingFaceInferenceBase = "https://api-inference.huggingface.co/models"

// LabelScore is a single classifier label with its confidence.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier scores raw media bytes against a hosted model.
type Classifier interface {
	Classify(ctx context.Context, model string, data []byte) ([]LabelScore, error)
}

// HFClassifier calls the HuggingFace Inference API.
type HFClassifier struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewHFClassifier creates a HuggingFace inference client.
func NewHFClassifier(apiKey string) *HFClassifier {
	return &HFClassifier{
		apiKey:  apiKey,
		baseURL: huggingFaceInferenceBase,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Classify posts raw bytes to a model endpoint and returns label scores.
func (h *HFClassifier) Classify(ctx context.Context, model string, data []byte) ([]LabelScore, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+model, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: inference request failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: inference returned status %d: %s", ErrUpstream, resp.StatusCode, string(payload))
	}

	var scores []LabelScore
	if err := json.NewDecoder(resp.Body).Decode(&scores); err != nil {
		return nil, fmt.Errorf("%w: failed to decode inference response: %v", ErrUpstream, err)
	}
	return scores, nil
}

// DeepfakeDetector blends two image models and runs a dedicated audio
// model for synthetic media detection.
type DeepfakeDetector struct {
	classifier    Classifier
	primaryModel  string
	secondModel   string
	audioModel    string
	primaryWeight float64
}

// NewDeepfakeDetector creates a detector. primaryWeight is the blend
// weight of the primary image model, in [0, 1].
func NewDeepfakeDetector(classifier Classifier, primaryModel, secondModel, audioModel string, primaryWeight float64) *DeepfakeDetector {
	if primaryWeight < 0 || primaryWeight > 1 {
		primaryWeight = 0.7
	}
	return &DeepfakeDetector{
		classifier:    classifier,
		primaryModel:  primaryModel,
		secondModel:   secondModel,
		audioModel:    audioModel,
		primaryWeight: primaryWeight,
	}
}

// normalizeImageScores maps model-specific labels onto Real/Deepfake.
func normalizeImageScores(scores []LabelScore) (real, fake float64) {
	for _, s := range scores {
		label := strings.ToLower(s.Label)
		switch {
		case strings.Contains(label, "real"), strings.Contains(label, "genuine"):
			real = s.Score
		case strings.Contains(label, "fake"), strings.Contains(label, "deepfake"), strings.Contains(label, "spoof"):
			fake = s.Score
		}
	}
	return real, fake
}

// ImageResult is the blended verdict for an image.
type ImageResult struct {
	Result string             `json:"result"`
	Scores map[string]float64 `json:"scores"`
}

// CheckImage classifies an image with both models and blends the scores.
func (d *DeepfakeDetector) CheckImage(ctx context.Context, data []byte) (*ImageResult, error) {
	primary, err := d.classifier.Classify(ctx, d.primaryModel, data)
	if err != nil {
		return nil, err
	}
	secondary, err := d.classifier.Classify(ctx, d.secondModel, data)
	if err != nil {
		return nil, err
	}

	pReal, pFake := normalizeImageScores(primary)
	sReal, sFake := normalizeImageScores(secondary)

	w := d.primaryWeight
	real := pReal*w + sReal*(1-w)
	fake := pFake*w + sFake*(1-w)

	result := "Real"
	if fake > real {
		result = "Deepfake"
	}

	return &ImageResult{
		Result: result,
		Scores: map[string]float64{"Real": real, "Deepfake": fake},
	}, nil
}

// AudioResult is the verdict for an audio clip.
type AudioResult struct {
	Result     string `json:"result"`
	Confidence string `json:"confidence"`
}

// CheckAudio classifies an audio clip as genuine or synthetic.
func (d *DeepfakeDetector) CheckAudio(ctx context.Context, data []byte) (*AudioResult, error) {
	scores, err := d.classifier.Classify(ctx, d.audioModel, data)
	if err != nil {
		return nil, err
	}

	var best LabelScore
	for _, s := range scores {
		if s.Score > best.Score {
			best = s
		}
	}

	result := "Genuine"
	label := strings.ToLower(best.Label)
	if strings.Contains(label, "fake") || strings.Contains(label, "spoof") {
		result = "Deepfake"
	}

	return &AudioResult{
		Result:     result,
		Confidence: fmt.Sprintf("%.2f%%", best.Score*100),
	}, nil
}

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

var allowedAudioExtensions = map[string]bool{
	".wav": true,
	".mp3": true,
}

// HandleImage handles POST /api/deepfake with a multipart "file" field.
func (d *DeepfakeDetector) HandleImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondWithError(w, http.StatusBadRequest, "No selected file")
		return
	}
	if !allowedImageExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		respondWithError(w, http.StatusBadRequest, "File type not allowed. Please upload a JPEG or PNG image.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	result, err := d.CheckImage(r.Context(), data)
	if err != nil {
		Logger().Error("Image deepfake check failed: %v", err)
		respondWithError(w, http.StatusBadGateway, "Deepfake analysis failed")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"result": result.Result,
		"scores": result.Scores,
	})
}

// HandleAudio handles POST /api/deepfake/audio with a multipart "audio"
// field.
func (d *DeepfakeDetector) HandleAudio(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		respondWithError(w, http.StatusBadRequest, "No selected file")
		return
	}
	if !allowedAudioExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		respondWithError(w, http.StatusBadRequest, "File type not allowed. Please upload a WAV or MP3 file.")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	result, err := d.CheckAudio(r.Context(), data)
	if err != nil {
		Logger().Error("Audio deepfake check failed: %v", err)
		respondWithError(w, http.StatusBadGateway, "Deepfake analysis failed")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}
