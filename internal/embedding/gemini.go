package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/similigh/transcript-triage/internal/retry"
)

// GeminiProvider implements Provider using Google's Gemini API
type GeminiProvider struct {
	client     *genai.Client
	model      string
	dimensions int
}

// NewGeminiProvider creates a new Gemini embedding provider
func NewGeminiProvider(apiKey, model string, dimensions int) (*GeminiProvider, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if model == "" {
		model = "gemini-embedding-001"
	}

	return &GeminiProvider{
		client:     client,
		model:      model,
		dimensions: dimensions,
	}, nil
}

// Embed generates an embedding for a single text
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	contents := []*genai.Content{
		{Parts: []*genai.Part{{Text: text}}},
	}

	cfg := &genai.EmbedContentConfig{}
	if p.dimensions > 0 {
		dims := int32(p.dimensions)
		cfg.OutputDimensionality = &dims
	}

	result, err := p.client.Models.EmbedContent(ctx, p.model, contents, cfg)
	if err != nil {
		return nil, classifyGeminiError(fmt.Errorf("failed to generate embedding: %w", err))
	}
	if len(result.Embeddings) == 0 {
		return nil, errors.New("no embedding returned")
	}

	return result.Embeddings[0].Values, nil
}

// Close releases resources
func (p *GeminiProvider) Close() error {
	return nil
}

// classifyGeminiError marks 4xx responses other than rate limiting as permanent
func classifyGeminiError(err error) error {
	var clientErr genai.ClientError
	if errors.As(err, &clientErr) && clientErr.Code != http.StatusTooManyRequests {
		return retry.Permanent(err)
	}
	return err
}
