package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/similigh/transcript-triage/internal/config"
	"github.com/similigh/transcript-triage/internal/retry"
)

// Provider defines the interface for LLM chat completion
type Provider interface {
	CompleteWithSystem(ctx context.Context, system, prompt string) (string, error)
	Close() error
}

// maxOutputTokens bounds every completion
const maxOutputTokens = 1024

// NewProvider creates a chat provider from config
func NewProvider(cfg *config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProvider(cfg.APIKey, cfg.Model, cfg.Temperature)
	case "gemini":
		return NewGeminiProvider(cfg.APIKey, cfg.Model, cfg.Temperature)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// classifyError marks failures that a retry cannot fix
func classifyError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && retry.PermanentStatus(apiErr.HTTPStatusCode) {
		return retry.Permanent(err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && retry.PermanentStatus(reqErr.HTTPStatusCode) {
		return retry.Permanent(err)
	}
	var clientErr genai.ClientError
	if errors.As(err, &clientErr) && clientErr.Code != http.StatusTooManyRequests {
		return retry.Permanent(err)
	}
	return err
}
