package embedding

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/austinfhunter/voyageai"

	"github.com/similigh/transcript-triage/internal/retry"
)

const defaultVoyageModel = "voyage-3.5-lite"

// The voyage client reports HTTP failures as plain errors, one message per
// status. These are the ones it gives up on without retrying.
var voyagePermanentErrors = []string{
	"voyage: bad request",
	"voyage: unauthorized",
	"voyage: Malformed Request",
}

// VoyageProvider implements Provider using the Voyage AI API
type VoyageProvider struct {
	client     *voyageai.VoyageClient
	model      string
	dimensions int
}

// NewVoyageProvider creates a new Voyage embedding provider
func NewVoyageProvider(apiKey, model string, dimensions int) (*VoyageProvider, error) {
	if apiKey == "" {
		return nil, errors.New("Voyage API key is required")
	}
	if model == "" {
		model = defaultVoyageModel
	}

	return &VoyageProvider{
		client:     voyageai.NewClient(&voyageai.VoyageClientOpts{Key: apiKey}),
		model:      model,
		dimensions: dimensions,
	}, nil
}

// Embed generates an embedding for a single text
func (p *VoyageProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	opts := &voyageai.EmbeddingRequestOpts{}
	if p.dimensions > 0 {
		dims := p.dimensions
		opts.OutputDimension = &dims
	}

	resp, err := p.client.Embed([]string{text}, p.model, opts)
	if err != nil {
		return nil, classifyVoyageError(fmt.Errorf("could not get embedding: %w", err))
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding returned")
	}

	return resp.Data[0].Embedding, nil
}

// Close releases resources
func (p *VoyageProvider) Close() error {
	return nil
}

// classifyVoyageError marks 400, 401 and 422 responses as permanent
func classifyVoyageError(err error) error {
	msg := err.Error()
	for _, prefix := range voyagePermanentErrors {
		if strings.Contains(msg, prefix) {
			return retry.Permanent(err)
		}
	}
	return err
}
