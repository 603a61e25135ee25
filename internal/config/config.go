package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	OpenAI   OpenAIConfig
	Twilio   TwilioConfig
	Dispatch DispatchConfig
	Server   ServerConfig
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey          string
	TranscribeModel string
	ChatModel       string
}

// TwilioConfig holds telephony provider credentials, used to authenticate
// recording downloads
type TwilioConfig struct {
	AccountSID string
	AuthToken  string
}

// DispatchConfig holds the downstream automation webhook settings
type DispatchConfig struct {
	BookingWebhookURL string
	QueueSize         int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	ExternalTimeout time.Duration
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.OpenAI.APIKey, err = requireEnv("OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.OpenAI.TranscribeModel = getEnvWithDefault("TRANSCRIBE_MODEL", "whisper-1")
	cfg.OpenAI.ChatModel = getEnvWithDefault("CHAT_MODEL", "gpt-4.1-mini")

	if cfg.Twilio.AccountSID, err = requireEnv("TWILIO_ACCOUNT_SID"); err != nil {
		return nil, err
	}
	if cfg.Twilio.AuthToken, err = requireEnv("TWILIO_AUTH_TOKEN"); err != nil {
		return nil, err
	}

	if cfg.Dispatch.BookingWebhookURL, err = requireEnv("BOOKING_WEBHOOK_URL"); err != nil {
		return nil, err
	}
	queueSize := getEnvWithDefault("DISPATCH_QUEUE_SIZE", "64")
	cfg.Dispatch.QueueSize, err = strconv.Atoi(queueSize)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DISPATCH_QUEUE_SIZE: %w", err)
	}

	serverPort := getEnvWithDefault("SERVER_PORT", "10000")
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	timeoutSeconds := getEnvWithDefault("EXTERNAL_CALL_TIMEOUT_SECONDS", "30")
	seconds, err := strconv.Atoi(timeoutSeconds)
	if err != nil {
		return nil, fmt.Errorf("failed to parse EXTERNAL_CALL_TIMEOUT_SECONDS: %w", err)
	}
	cfg.Server.ExternalTimeout = time.Duration(seconds) * time.Second

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
