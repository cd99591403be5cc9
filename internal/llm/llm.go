package llm

import (
	"context"
	"fmt"

	"ai-growth-planner/internal/config"
	"ai-growth-planner/internal/shared"
)

// ContentResponse contains the generated text and metadata like token usage.
type ContentResponse struct {
	Content string
	Usage   shared.TokenUsage
}

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (ContentResponse, error)
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// NewClient constructs the TextGenerator selected by the configuration. It
// fails when the provider's API key is missing so callers can decide whether
// that is fatal (CLI) or a deferred runtime error (server).
func NewClient(ctx context.Context, cfg *config.Config) (TextGenerator, error) {
	if cfg.ProviderKey() == "" {
		return nil, fmt.Errorf("missing API key for provider %q", cfg.LLMProvider)
	}
	if cfg.LLMProvider == "gemini" {
		return NewGeminiClient(ctx, cfg)
	}
	return NewGroqClient(cfg), nil
}
