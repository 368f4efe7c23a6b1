package embedding

import (
	"context"

	"github.com/similigh/transcript-triage/internal/retry"
)

// RetryProvider applies the retry policy to every embedding request
type RetryProvider struct {
	inner  Provider
	policy retry.Policy
}

// NewRetryProvider wraps inner with the given policy
func NewRetryProvider(inner Provider, policy retry.Policy) *RetryProvider {
	return &RetryProvider{inner: inner, policy: policy}
}

// Embed generates an embedding, retrying transient failures
func (p *RetryProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return retry.Do(ctx, p.policy, "embedding", func(ctx context.Context) ([]float32, error) {
		return p.inner.Embed(ctx, text)
	})
}

// Close releases resources
func (p *RetryProvider) Close() error {
	return p.inner.Close()
}
