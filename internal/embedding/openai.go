package embedding

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// maxInputChars keeps single inputs well under the 8191 token limit
const maxInputChars = 24000

// OpenAIProvider implements Provider using OpenAI's API
type OpenAIProvider struct {
	client     *openai.Client
	model      openai.EmbeddingModel
	dimensions int
}

// NewOpenAIProvider creates a new OpenAI embedding provider
func NewOpenAIProvider(apiKey, model string, dimensions int) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	client := openai.NewClient(apiKey)

	embModel := openai.AdaEmbeddingV2
	if model != "" {
		embModel = openai.EmbeddingModel(model)
	}

	return &OpenAIProvider{
		client:     client,
		model:      embModel,
		dimensions: dimensions,
	}, nil
}

// Embed generates an embedding for a single text
func (p *OpenAIProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	req := openai.EmbeddingRequest{
		Input:      []string{TruncateText(text, maxInputChars)},
		Model:      p.model,
		Dimensions: p.dimensions, // zero keeps the model's native size
	}

	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, classifyOpenAIError(fmt.Errorf("failed to generate embedding: %w", err))
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding returned")
	}

	return resp.Data[0].Embedding, nil
}

// Close releases resources
func (p *OpenAIProvider) Close() error {
	return nil
}
