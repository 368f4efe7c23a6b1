package tracker

import (
	"context"

	"github.com/similigh/transcript-triage/internal/retry"
	"github.com/similigh/transcript-triage/pkg/models"
)

const serviceName = "tracker"

type retryGateway struct {
	inner  Gateway
	policy retry.Policy
}

// WithRetry applies the retry policy to every gateway call
func WithRetry(gw Gateway, policy retry.Policy) Gateway {
	return &retryGateway{inner: gw, policy: policy}
}

func (g *retryGateway) ListIssues(ctx context.Context) ([]models.Issue, error) {
	return retry.Do(ctx, g.policy, serviceName, g.inner.ListIssues)
}

func (g *retryGateway) CreateIssue(ctx context.Context, category models.Category, title, description string) (models.Issue, error) {
	return retry.Do(ctx, g.policy, serviceName, func(ctx context.Context) (models.Issue, error) {
		return g.inner.CreateIssue(ctx, category, title, description)
	})
}

func (g *retryGateway) Comment(ctx context.Context, issueID, body string) error {
	return retry.Run(ctx, g.policy, serviceName, func(ctx context.Context) error {
		return g.inner.Comment(ctx, issueID, body)
	})
}
