package config

import "testing"

func TestNewFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"LLM_PROVIDER", "GROQ_API_KEY", "GEMINI_API_KEY", "STORE_PATH",
		"METRICS_DB_PATH", "LISTEN_ADDR", "LOG_MODE",
		"TELEGRAM_ALLOWED_USER_IDS", "TELEGRAM_ADMIN_ID",
	} {
		t.Setenv(key, "")
	}

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}

	if cfg.LLMProvider != "groq" {
		t.Errorf("LLMProvider = %q, want groq default", cfg.LLMProvider)
	}
	if cfg.StorePath != "data/store" {
		t.Errorf("StorePath = %q", cfg.StorePath)
	}
	if cfg.MetricsDBPath != "data/metrics.db" {
		t.Errorf("MetricsDBPath = %q", cfg.MetricsDBPath)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.LogMode != "dev" {
		t.Errorf("LogMode = %q", cfg.LogMode)
	}
	if len(cfg.TelegramAllowedUserIDs) != 0 {
		t.Errorf("expected no allowed users, got %v", cfg.TelegramAllowedUserIDs)
	}
}

func TestNewFromEnvProviderValidation(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("expected error for unknown provider")
	}

	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GROQ_API_KEY", "q-key")
	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if cfg.ProviderKey() != "g-key" {
		t.Errorf("ProviderKey = %q, want gemini key", cfg.ProviderKey())
	}

	t.Setenv("LLM_PROVIDER", "groq")
	cfg, err = NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if cfg.ProviderKey() != "q-key" {
		t.Errorf("ProviderKey = %q, want groq key", cfg.ProviderKey())
	}
}

func TestNewFromEnvTelegramParsing(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "123, 456 ,789,")
	t.Setenv("TELEGRAM_ADMIN_ID", "123")

	cfg, err := NewFromEnv()
	if err != nil {
		t.Fatalf("NewFromEnv failed: %v", err)
	}
	if len(cfg.TelegramAllowedUserIDs) != 3 || cfg.TelegramAllowedUserIDs[1] != 456 {
		t.Errorf("allowed users = %v", cfg.TelegramAllowedUserIDs)
	}
	if cfg.AdminTelegramID != 123 {
		t.Errorf("admin id = %d", cfg.AdminTelegramID)
	}

	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "abc")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("expected error for non-numeric user id")
	}

	t.Setenv("TELEGRAM_ALLOWED_USER_IDS", "")
	t.Setenv("TELEGRAM_ADMIN_ID", "not-a-number")
	if _, err := NewFromEnv(); err == nil {
		t.Fatal("expected error for invalid admin id")
	}
}
