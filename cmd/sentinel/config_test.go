package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		GroqAPIKey:            "gk",
		SerperAPIKey:          "sk",
		DeepfakePrimaryWeight: 0.7,
		MessageChunkLimit:     1500,
	}
}

func TestValidateMinimalConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateReportsAllMissingKeys(t *testing.T) {
	cfg := &Config{
		EnableMessaging:       true,
		DeepfakePrimaryWeight: 0.7,
		MessageChunkLimit:     1500,
	}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "GROQ_API_KEY")
	require.Contains(t, err.Error(), "SERPER_API_KEY")
	require.Contains(t, err.Error(), "TWILIO_ACCOUNT_SID")
	require.Contains(t, err.Error(), "TWILIO_AUTH_TOKEN")
	require.Contains(t, err.Error(), "TWILIO_WHATSAPP_NUMBER")
}

func TestValidateTranscriptionRequiresOpenAIKey(t *testing.T) {
	cfg := validConfig()
	cfg.EnableTranscription = true
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestValidateDeepfakeWeightBounds(t *testing.T) {
	cfg := validConfig()
	cfg.DeepfakePrimaryWeight = 1.5
	require.Error(t, cfg.Validate())

	cfg.DeepfakePrimaryWeight = -0.1
	require.Error(t, cfg.Validate())

	cfg.DeepfakePrimaryWeight = 0.0
	require.NoError(t, cfg.Validate())
}

func TestValidateChunkLimit(t *testing.T) {
	cfg := validConfig()
	cfg.MessageChunkLimit = 0
	require.Error(t, cfg.Validate())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("SENTINEL_TEST_STR", "value")
	t.Setenv("SENTINEL_TEST_INT", "42")
	t.Setenv("SENTINEL_TEST_BOOL", "true")
	t.Setenv("SENTINEL_TEST_FLOAT", "0.3")

	require.Equal(t, "value", GetEnvString("SENTINEL_TEST_STR", "d"))
	require.Equal(t, "d", GetEnvString("SENTINEL_TEST_ABSENT", "d"))
	require.Equal(t, 42, GetEnvInt("SENTINEL_TEST_INT", 1))
	require.Equal(t, 1, GetEnvInt("SENTINEL_TEST_ABSENT", 1))
	require.True(t, GetEnvBool("SENTINEL_TEST_BOOL", false))
	require.Equal(t, 0.3, GetEnvFloat("SENTINEL_TEST_FLOAT", 0.7))
}

func TestParseLogLevel(t *testing.T) {
	require.Equal(t, LogDebug, ParseLogLevel("debug"))
	require.Equal(t, LogWarning, ParseLogLevel("warn"))
	require.Equal(t, LogError, ParseLogLevel("ERROR"))
	require.Equal(t, LogInfo, ParseLogLevel("anything else"))
}
