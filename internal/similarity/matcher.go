// Package similarity decides whether a classified candidate duplicates an
// existing tracker issue of the same category.
package similarity

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/similigh/transcript-triage/pkg/models"
)

// Embedder generates an embedding for a single text
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Matcher compares a candidate against existing issues using embeddings
type Matcher struct {
	embedder Embedder
}

// NewMatcher creates a new matcher
func NewMatcher(embedder Embedder) *Matcher {
	return &Matcher{embedder: embedder}
}

// FindBestMatch returns the existing issue most similar to the candidate.
// Only scores strictly above threshold count; equal best scores keep the
// earliest issue. The bool result is false when nothing qualified.
func (m *Matcher) FindBestMatch(ctx context.Context, candidate models.Candidate, existing []models.Issue, threshold float64) (models.Match, bool, error) {
	if threshold <= 0 || threshold > 1 {
		return models.Match{}, false, fmt.Errorf("similarity threshold must be in (0, 1], got %v", threshold)
	}
	if len(existing) == 0 {
		return models.Match{}, false, nil
	}

	// Embeddings live only for this call.
	cache := make(map[string][]float32)
	embed := func(text string) ([]float32, error) {
		if v, ok := cache[text]; ok {
			return v, nil
		}
		v, err := m.embedder.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		cache[text] = v
		return v, nil
	}

	candName, err := embed(candidate.Name)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("failed to embed candidate name: %w", err)
	}
	candDesc, err := embed(candidate.Description)
	if err != nil {
		return models.Match{}, false, fmt.Errorf("failed to embed candidate description: %w", err)
	}

	var best models.Match
	found := false

	for _, issue := range existing {
		if strings.TrimSpace(issue.Title) == "" || strings.TrimSpace(issue.Description) == "" {
			slog.Debug("skipping issue without title or description", "issue", issue.DisplayID())
			continue
		}

		nameVec, err := embed(issue.Title)
		if err != nil {
			return models.Match{}, false, fmt.Errorf("failed to embed title of %s: %w", issue.DisplayID(), err)
		}
		descVec, err := embed(issue.Description)
		if err != nil {
			return models.Match{}, false, fmt.Errorf("failed to embed description of %s: %w", issue.DisplayID(), err)
		}

		score, err := Combined(nameVec, candName, descVec, candDesc)
		if err != nil {
			return models.Match{}, false, fmt.Errorf("failed to score %s: %w", issue.DisplayID(), err)
		}
		slog.Debug("scored issue", "issue", issue.DisplayID(), "similarity", score)

		if score <= threshold {
			continue
		}
		if !found || score > best.Similarity {
			best = models.Match{Issue: issue, Similarity: score}
			found = true
		}
	}

	return best, found, nil
}
