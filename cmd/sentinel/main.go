package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

var cfg *Config

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		fmt.Println("Loaded configuration from .env file")
	}

	cfg = LoadEnvConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := InitLogger(cfg.LogPath, ParseLogLevel(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	Logger().Info("Starting Sentinel v%s", appVersion)

	// Core fact-checking pipeline
	llm := NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)
	search := NewSerperClient(cfg.SerperAPIKey, cfg.MaxSearchResults)

	var factCheck *FactCheckClient
	if cfg.EnableFactCheckAPI {
		factCheck = NewFactCheckClient(cfg.GoogleFactCheckKey)
	}

	extractor := NewClaimExtractor(llm, cfg.MaxVerifiedClaims)
	synthesizer := NewVerdictSynthesizer(llm, search, factCheck, cfg.MaxSearchResults)
	pipeline := NewFactCheckPipeline(extractor, synthesizer, cfg.MaxVerifiedClaims)

	opts := ServerOptions{}

	// Debate engine
	store := NewMemoryDebateStore()
	engine := NewDebateEngine(llm, factCheck, store)
	stream := NewDebateStream(store)
	engine.SetBroadcast(stream.Broadcast)
	opts.Debates = NewDebateAPI(engine, store)
	opts.Stream = stream
	opts.Store = store

	// Article context analysis
	var tavily *TavilyClient
	if cfg.TavilyAPIKey != "" {
		tavily = NewTavilyClient(cfg.TavilyAPIKey)
	}
	opts.Analyzer = NewContextAnalyzer(llm, tavily)

	// Audio transcription
	var transcriber Transcriber
	if cfg.EnableTranscription {
		transcriber = NewWhisperTranscriber(cfg.OpenAIAPIKey)
		opts.Video = NewVideoAnalyzer(transcriber, pipeline)
	}

	// WhatsApp messaging
	var twilio *TwilioClient
	if cfg.EnableMessaging {
		twilio = NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioWhatsAppNumber)
		opts.Webhook = NewWebhookHandler(pipeline, twilio, transcriber, twilio, cfg.MessageChunkLimit)
	} else {
		// Webhook still answers with TwiML when no outbound sender exists
		opts.Webhook = NewWebhookHandler(pipeline, nil, transcriber, nil, cfg.MessageChunkLimit)
	}

	// Deepfake detection
	if cfg.HuggingFaceAPIKey != "" {
		classifier := NewHFClassifier(cfg.HuggingFaceAPIKey)
		opts.Detector = NewDeepfakeDetector(classifier,
			cfg.DeepfakePrimaryModel, cfg.DeepfakeSecondModel, cfg.DeepfakeAudioModel,
			cfg.DeepfakePrimaryWeight)
	}

	// Feed monitoring
	var monitor *FeedMonitor
	if cfg.EnableMonitor {
		var notifier Notifier
		if cfg.EnableDiscord {
			discord, err := NewDiscordNotifier(cfg.DiscordToken, cfg.DiscordChannel)
			if err != nil {
				Logger().Error("Failed to start Discord notifier: %v", err)
			} else {
				notifier = discord
				defer discord.Close()
			}
		}
		monitor = NewFeedMonitor(pipeline, notifier, cfg.SourcesPath, cfg.MonitorSchedule, cfg.MaxPostsPerRun)
		if err := monitor.Start(); err != nil {
			Logger().Error("Failed to start feed monitor: %v", err)
		}
	}

	server := NewServer(pipeline, opts)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start(cfg.Port)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		Logger().Error("HTTP server stopped: %v", err)
	case sig := <-sigCh:
		Logger().Info("Received signal %v, shutting down", sig)
	}

	if monitor != nil {
		monitor.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		Logger().Error("Graceful shutdown failed: %v", err)
	}
	Logger().Info("Shutdown complete")
}
