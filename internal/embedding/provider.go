package embedding

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sashabaranov/go-openai"

	"github.com/similigh/transcript-triage/internal/config"
	"github.com/similigh/transcript-triage/internal/retry"
)

// Provider defines the interface for embedding generation
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Close() error
}

// NewProvider creates a provider based on config
func NewProvider(cfg *config.ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini":
		return NewGeminiProvider(cfg.APIKey, cfg.Model, cfg.Dimensions)
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.Dimensions)
	case "voyage":
		return NewVoyageProvider(cfg.APIKey, cfg.Model, cfg.Dimensions)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

// New builds the configured provider chain: primary with optional fallback,
// wrapped in the retry policy
func New(cfg *config.EmbeddingConfig, policy retry.Policy) (Provider, error) {
	fallback, err := NewFallbackProvider(cfg)
	if err != nil {
		return nil, err
	}
	return NewRetryProvider(fallback, policy), nil
}

// TruncateText truncates text to at most maxLen bytes without splitting a
// UTF-8 sequence
func TruncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// classifyOpenAIError marks client-side failures as permanent
func classifyOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && retry.PermanentStatus(apiErr.HTTPStatusCode) {
		return retry.Permanent(err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && retry.PermanentStatus(reqErr.HTTPStatusCode) {
		return retry.Permanent(err)
	}
	return err
}
