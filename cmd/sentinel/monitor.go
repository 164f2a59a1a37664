package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/robfig/cron/v3"
)

const lowTrustAlertThreshold = 4.0

// Notifier delivers a monitoring alert to an external channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// FeedMonitor periodically scans configured feeds and fact-checks fresh
// headlines, alerting when something looks unreliable.
type FeedMonitor struct {
	pipeline    *FactCheckPipeline
	notifier    Notifier
	sourcesPath string
	schedule    string
	maxPosts    int

	parser *gofeed.Parser
	client *http.Client
	cron   *cron.Cron

	mu   sync.Mutex
	seen map[string]bool
}

// NewFeedMonitor creates a feed monitor. notifier may be nil, in which
// case findings are only logged.
func NewFeedMonitor(pipeline *FactCheckPipeline, notifier Notifier, sourcesPath, schedule string, maxPosts int) *FeedMonitor {
	if maxPosts < 1 {
		maxPosts = 3
	}
	return &FeedMonitor{
		pipeline:    pipeline,
		notifier:    notifier,
		sourcesPath: sourcesPath,
		schedule:    schedule,
		maxPosts:    maxPosts,
		parser:      gofeed.NewParser(),
		client:      &http.Client{Timeout: 30 * time.Second},
		seen:        make(map[string]bool),
	}
}

// Start schedules the periodic scan and returns immediately.
func (m *FeedMonitor) Start() error {
	m.cron = cron.New()
	_, err := m.cron.AddFunc(m.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := m.Run(ctx); err != nil {
			Logger().Error("Feed monitor run failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule feed monitor: %v", err)
	}
	m.cron.Start()
	Logger().Info("Feed monitor started with schedule %q", m.schedule)
	return nil
}

// Stop halts the scheduler.
func (m *FeedMonitor) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

// Run performs one scan over all enabled sources.
func (m *FeedMonitor) Run(ctx context.Context) error {
	sources, err := LoadSources(m.sourcesPath)
	if err != nil {
		return err
	}

	for _, source := range sources {
		if err := m.scanSource(ctx, source); err != nil {
			Logger().Warning("Failed to scan source %s: %v", source.Name, err)
		}
	}
	return nil
}

// scanSource fetches one feed and fact-checks its newest items.
func (m *FeedMonitor) scanSource(ctx context.Context, source Source) error {
	feed, err := m.fetchFeed(ctx, source.URL)
	if err != nil {
		return err
	}

	checked := 0
	for _, item := range feed.Items {
		if checked >= m.maxPosts {
			break
		}
		if item == nil || item.Title == "" {
			continue
		}

		key := source.Name + "|" + item.Link
		if item.Link == "" {
			key = source.Name + "|" + item.Title
		}
		m.mu.Lock()
		if m.seen[key] {
			m.mu.Unlock()
			continue
		}
		m.seen[key] = true
		m.mu.Unlock()

		checked++
		m.checkItem(ctx, source, item)
	}
	return nil
}

// fetchFeed downloads and parses an RSS/Atom feed.
func (m *FeedMonitor) fetchFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Sentinel/1.0 Feed Monitor")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: feed fetch failed: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed fetch returned status %d", ErrUpstream, resp.StatusCode)
	}
	return m.parser.Parse(resp.Body)
}

// checkItem fact-checks a headline and raises an alert when the trust
// score is low or the text trips misinformation heuristics.
func (m *FeedMonitor) checkItem(ctx context.Context, source Source, item *gofeed.Item) {
	text := item.Title
	if item.Description != "" {
		text += ". " + item.Description
	}

	report := m.pipeline.Report(ctx, text)
	warnings := DetectMisinformationPatterns(text)

	Logger().Info("Checked %q from %s: trust score %.1f, %d pattern warnings",
		item.Title, source.Name, report.TrustScore, len(warnings))

	if report.TrustScore >= lowTrustAlertThreshold && len(warnings) == 0 {
		return
	}

	if m.notifier == nil {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🚨 *Low-trust content detected*\nSource: %s\nItem: %s\n", source.Name, item.Title)
	if item.Link != "" {
		fmt.Fprintf(&b, "Link: %s\n", item.Link)
	}
	fmt.Fprintf(&b, "Trust score: %.1f/10\n%s\n", report.TrustScore, report.Recommendation)
	for _, w := range warnings {
		b.WriteString(w + "\n")
	}

	if err := m.notifier.Notify(ctx, b.String()); err != nil {
		Logger().Error("Failed to send monitor alert: %v", err)
	}
}
