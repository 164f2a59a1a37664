package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all runtime configuration. Values come from environment
// variables, optionally seeded from a .env file at startup.
type Config struct {
	// Server
	Port     string
	LogPath  string
	LogLevel string

	// LLM
	GroqAPIKey   string
	GroqBaseURL  string
	GroqModel    string
	OpenAIAPIKey string

	// Search and fact-check lookups
	SerperAPIKey       string
	GoogleFactCheckKey string
	TavilyAPIKey       string
	MaxSearchResults   int
	MaxVerifiedClaims  int
	EnableFactCheckAPI bool
	MessageChunkLimit  int

	// WhatsApp messaging
	EnableMessaging      bool
	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string

	// Transcription
	EnableTranscription bool

	// Deepfake detection
	HuggingFaceAPIKey     string
	DeepfakePrimaryModel  string
	DeepfakeSecondModel   string
	DeepfakeAudioModel    string
	DeepfakePrimaryWeight float64

	// Feed monitoring and alerting
	EnableMonitor   bool
	SourcesPath     string
	MonitorSchedule string
	MaxPostsPerRun  int
	EnableDiscord   bool
	DiscordToken    string
	DiscordChannel  string
}

// GetEnvString returns the environment variable or a default value
func GetEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns the environment variable as an int or a default value
func GetEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvBool returns the environment variable as a bool or a default value
func GetEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// GetEnvFloat returns the environment variable as a float64 or a default value
func GetEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// LoadEnvConfig builds a Config from environment variables.
func LoadEnvConfig() *Config {
	return &Config{
		Port:     GetEnvString("PORT", "8080"),
		LogPath:  GetEnvString("LOG_PATH", "logs/sentinel.log"),
		LogLevel: GetEnvString("LOG_LEVEL", "info"),

		GroqAPIKey:   os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:  GetEnvString("GROQ_BASE_URL", defaultGroqBaseURL),
		GroqModel:    GetEnvString("GROQ_MODEL", defaultChatModel),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),

		SerperAPIKey:       os.Getenv("SERPER_API_KEY"),
		GoogleFactCheckKey: os.Getenv("GOOGLE_FACT_CHECK_API_KEY"),
		TavilyAPIKey:       os.Getenv("TAVILY_API_KEY"),
		MaxSearchResults:   GetEnvInt("MAX_SEARCH_RESULTS", 5),
		MaxVerifiedClaims:  GetEnvInt("MAX_VERIFIED_CLAIMS", 3),
		EnableFactCheckAPI: GetEnvBool("ENABLE_FACT_CHECK_API", false),
		MessageChunkLimit:  GetEnvInt("MESSAGE_CHUNK_LIMIT", 1500),

		EnableMessaging:      GetEnvBool("ENABLE_MESSAGING", false),
		TwilioAccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioWhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),

		EnableTranscription: GetEnvBool("ENABLE_TRANSCRIPTION", false),

		HuggingFaceAPIKey:     os.Getenv("HUGGINGFACE_API_KEY"),
		DeepfakePrimaryModel:  GetEnvString("DEEPFAKE_PRIMARY_MODEL", "prithivMLmods/Deep-Fake-Detector-v2-Model"),
		DeepfakeSecondModel:   GetEnvString("DEEPFAKE_SECOND_MODEL", "dima806/deepfake_vs_real_image_detection"),
		DeepfakeAudioModel:    GetEnvString("DEEPFAKE_AUDIO_MODEL", "MelodyMachine/Deepfake-audio-detection-V2"),
		DeepfakePrimaryWeight: GetEnvFloat("DEEPFAKE_PRIMARY_WEIGHT", 0.7),

		EnableMonitor:   GetEnvBool("ENABLE_MONITOR", false),
		SourcesPath:     GetEnvString("SOURCES_PATH", "sources.yml"),
		MonitorSchedule: GetEnvString("MONITOR_SCHEDULE", "@every 30m"),
		MaxPostsPerRun:  GetEnvInt("MAX_POSTS_PER_RUN", 3),
		EnableDiscord:   GetEnvBool("ENABLE_DISCORD", false),
		DiscordToken:    os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordChannel:  os.Getenv("DISCORD_CHANNEL_ID"),
	}
}

// Validate checks that every key required by the enabled feature set is
// present, and reports all missing keys at once.
func (c *Config) Validate() error {
	var missing []string

	if c.GroqAPIKey == "" {
		missing = append(missing, "GROQ_API_KEY")
	}
	if c.SerperAPIKey == "" {
		missing = append(missing, "SERPER_API_KEY")
	}
	if c.EnableMessaging {
		if c.TwilioAccountSID == "" {
			missing = append(missing, "TWILIO_ACCOUNT_SID")
		}
		if c.TwilioAuthToken == "" {
			missing = append(missing, "TWILIO_AUTH_TOKEN")
		}
		if c.TwilioWhatsAppNumber == "" {
			missing = append(missing, "TWILIO_WHATSAPP_NUMBER")
		}
	}
	if c.EnableTranscription && c.OpenAIAPIKey == "" {
		missing = append(missing, "OPENAI_API_KEY")
	}
	if c.EnableFactCheckAPI && c.GoogleFactCheckKey == "" {
		missing = append(missing, "GOOGLE_FACT_CHECK_API_KEY")
	}
	if c.EnableDiscord {
		if c.DiscordToken == "" {
			missing = append(missing, "DISCORD_BOT_TOKEN")
		}
		if c.DiscordChannel == "" {
			missing = append(missing, "DISCORD_CHANNEL_ID")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	if c.DeepfakePrimaryWeight < 0 || c.DeepfakePrimaryWeight > 1 {
		return fmt.Errorf("DEEPFAKE_PRIMARY_WEIGHT must be between 0 and 1, got %v", c.DeepfakePrimaryWeight)
	}
	if c.MessageChunkLimit < 1 {
		return fmt.Errorf("MESSAGE_CHUNK_LIMIT must be positive, got %d", c.MessageChunkLimit)
	}

	return nil
}

// ParseLogLevel converts a level name to its LogLevel value.
func ParseLogLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "debug":
		return LogDebug
	case "warn", "warning":
		return LogWarning
	case "error":
		return LogError
	default:
		return LogInfo
	}
}
