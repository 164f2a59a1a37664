package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`(?:https?:\/\/)?(?:www\.)?(?:youtube\.com\/(?:watch\?v=|shorts\/|embed\/)|youtu\.be\/)([a-zA-Z0-9_-]{11})`)

// ExtractVideoID pulls the 11-character video ID out of a YouTube URL.
func ExtractVideoID(url string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// VideoInfo holds metadata fetched for a video.
type VideoInfo struct {
	Title      string `json:"title"`
	UploadDate string `json:"upload_date"`
	Duration   string `json:"duration"`
	ViewCount  string `json:"view_count"`
	LikeCount  string `json:"like_count"`
}

// VideoAnalyzer downloads video audio, transcribes it, and fact-checks
// the transcript.
type VideoAnalyzer struct {
	transcriber Transcriber
	pipeline    *FactCheckPipeline
	binary      string
}

// NewVideoAnalyzer creates a video analyzer backed by the yt-dlp binary.
func NewVideoAnalyzer(transcriber Transcriber, pipeline *FactCheckPipeline) *VideoAnalyzer {
	return &VideoAnalyzer{
		transcriber: transcriber,
		pipeline:    pipeline,
		binary:      "yt-dlp",
	}
}

// fetchInfo queries video metadata without downloading the media.
func (va *VideoAnalyzer) fetchInfo(ctx context.Context, url string) (VideoInfo, error) {
	cmd := exec.CommandContext(ctx, va.binary,
		"--skip-download",
		"--print", "title",
		"--print", "upload_date",
		"--print", "duration_string",
		"--print", "view_count",
		"--print", "like_count",
		url)
	out, err := cmd.Output()
	if err != nil {
		return VideoInfo{}, fmt.Errorf("%w: metadata fetch failed: %v", ErrMediaDownload, err)
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	info := VideoInfo{}
	if len(lines) > 0 {
		info.Title = lines[0]
	}
	if len(lines) > 1 {
		info.UploadDate = lines[1]
	}
	if len(lines) > 2 {
		info.Duration = lines[2]
	}
	if len(lines) > 3 {
		info.ViewCount = lines[3]
	}
	if len(lines) > 4 {
		info.LikeCount = lines[4]
	}
	return info, nil
}

// downloadAudio extracts the audio track to a temp mp3 file.
func (va *VideoAnalyzer) downloadAudio(ctx context.Context, url, videoID string) (string, error) {
	dir, err := os.MkdirTemp("", "sentinel-video-")
	if err != nil {
		return "", err
	}

	target := filepath.Join(dir, videoID+".mp3")
	cmd := exec.CommandContext(ctx, va.binary,
		"-x", "--audio-format", "mp3",
		"-o", target,
		url)
	if err := cmd.Run(); err != nil {
		os.RemoveAll(dir)
		return "", fmt.Errorf("%w: audio download failed: %v", ErrMediaDownload, err)
	}
	return target, nil
}

// VideoAnalysis is the full result for an analyzed video.
type VideoAnalysis struct {
	VerifiedClaims  []VideoVerdict  `json:"verified_claims"`
	VideoInfo       VideoInfoScored `json:"video_info"`
	AnalysisSummary VideoSummary    `json:"analysis_summary"`
}

// VideoVerdict is a verdict flattened for the video analysis response.
type VideoVerdict struct {
	Claim            string   `json:"claim"`
	Result           string   `json:"result"`
	Summary          string   `json:"summary"`
	DetailedAnalysis string   `json:"detailed_analysis"`
	SourceNames      []string `json:"source_names"`
	SourceLinks      []string `json:"source_links"`
}

func flattenVerdict(v Verdict) VideoVerdict {
	names := make([]string, 0, len(v.Sources))
	links := make([]string, 0, len(v.Sources))
	for _, s := range v.Sources {
		names = append(names, s.Name)
		links = append(links, s.URL)
	}
	return VideoVerdict{
		Claim:            v.Claim,
		Result:           string(v.Result),
		Summary:          v.Summary,
		DetailedAnalysis: v.DetailedAnalysis,
		SourceNames:      names,
		SourceLinks:      links,
	}
}

// VideoInfoScored is video metadata plus the computed trust score.
type VideoInfoScored struct {
	VideoInfo
	TrustScore float64 `json:"trust_score"`
}

// VideoSummary aggregates verdict counts for a video.
type VideoSummary struct {
	TotalClaims    int    `json:"total_claims"`
	VerifiedTrue   int    `json:"verified_true"`
	VerifiedFalse  int    `json:"verified_false"`
	Unverified     int    `json:"unverified"`
	Recommendation string `json:"recommendation"`
	Transcript     string `json:"transcript"`
}

const transcriptPreviewLimit = 1000

// Analyze runs the full video pipeline: metadata, audio, transcript,
// claim verification.
func (va *VideoAnalyzer) Analyze(ctx context.Context, url string) (*VideoAnalysis, error) {
	videoID, ok := ExtractVideoID(url)
	if !ok {
		return nil, fmt.Errorf("invalid YouTube URL")
	}

	info, err := va.fetchInfo(ctx, url)
	if err != nil {
		Logger().Warning("Video metadata unavailable for %s: %v", videoID, err)
	}

	audioPath, err := va.downloadAudio(ctx, url, videoID)
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(filepath.Dir(audioPath))

	transcript, err := va.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(transcript) == "" {
		return nil, ErrTranscriptionFailed
	}

	verdicts := va.pipeline.Check(ctx, transcript)
	score := GenerateTrustScore(verdicts)

	analysis := &VideoAnalysis{
		VerifiedClaims: make([]VideoVerdict, 0, len(verdicts)),
		VideoInfo:      VideoInfoScored{VideoInfo: info, TrustScore: score},
		AnalysisSummary: VideoSummary{
			TotalClaims:    len(verdicts),
			Recommendation: Recommendation(score),
			Transcript:     truncateTranscript(transcript),
		},
	}

	for _, v := range verdicts {
		analysis.VerifiedClaims = append(analysis.VerifiedClaims, flattenVerdict(v))

		switch v.Result {
		case VerdictTrue:
			analysis.AnalysisSummary.VerifiedTrue++
		case VerdictFalse:
			analysis.AnalysisSummary.VerifiedFalse++
		default:
			analysis.AnalysisSummary.Unverified++
		}
	}

	return analysis, nil
}

func truncateTranscript(transcript string) string {
	if len(transcript) <= transcriptPreviewLimit {
		return transcript
	}
	return transcript[:transcriptPreviewLimit] + "..."
}
