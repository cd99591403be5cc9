package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	// LLM providers. Keys are optional at load time; a missing key for the
	// selected provider surfaces as a server error when generation is
	// attempted, not as a startup failure.
	LLMProvider  string // "groq" (default) or "gemini"
	GroqAPIKey   string
	GeminiAPIKey string

	// Local persistence.
	StorePath     string
	MetricsDBPath string

	// HTTP server.
	ListenAddr string
	LogMode    string

	// Ghost publishing (optional).
	GhostURL      string
	GhostAdminKey string

	// Telegram bot (optional for the API server, required for the bot).
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	cfg := &Config{
		LLMProvider:        envOr("LLM_PROVIDER", "groq"),
		GroqAPIKey:         os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		StorePath:          envOr("STORE_PATH", "data/store"),
		MetricsDBPath:      envOr("METRICS_DB_PATH", "data/metrics.db"),
		ListenAddr:         envOr("LISTEN_ADDR", ":8080"),
		LogMode:            envOr("LOG_MODE", "dev"),
		GhostURL:           os.Getenv("GHOST_API_URL"),
		GhostAdminKey:      os.Getenv("GHOST_ADMIN_API_KEY"),
		TelegramBotToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL: os.Getenv("TELEGRAM_WEBHOOK_URL"),
	}

	switch cfg.LLMProvider {
	case "groq", "gemini":
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (want groq or gemini)", cfg.LLMProvider)
	}

	ids, err := parseUserIDs(os.Getenv("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, err
	}
	cfg.TelegramAllowedUserIDs = ids

	if adminStr := os.Getenv("TELEGRAM_ADMIN_ID"); adminStr != "" {
		admin, err := strconv.ParseInt(adminStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ADMIN_ID %q: %w", adminStr, err)
		}
		cfg.AdminTelegramID = admin
	}

	return cfg, nil
}

// ProviderKey returns the API key for the selected LLM provider.
func (c *Config) ProviderKey() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.GroqAPIKey
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseUserIDs parses a comma-separated list of Telegram user IDs.
func parseUserIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS entry %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
