// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"context"
	"log/slog"

	"github.com/similigh/transcript-triage/internal/pipeline/core"
	"github.com/similigh/transcript-triage/pkg/models"
)

// Matcher defines the interface for duplicate detection
type Matcher interface {
	FindBestMatch(ctx context.Context, candidate models.Candidate, existing []models.Issue, threshold float64) (models.Match, bool, error)
}

// Match looks for an existing issue the candidate duplicates.
type Match struct {
	matcher Matcher
}

// NewMatch creates a new match step
func NewMatch(matcher Matcher) *Match {
	return &Match{matcher: matcher}
}

func (s *Match) Name() string {
	return "match"
}

func (s *Match) Run(ctx *core.Context) error {
	match, found, err := s.matcher.FindBestMatch(ctx.Ctx, ctx.Classification.Candidate(), ctx.Existing, ctx.Threshold)
	if err != nil {
		return err
	}

	if !found {
		slog.Info("no similar issue found", "compared", len(ctx.Existing), "threshold", ctx.Threshold)
		return nil
	}

	ctx.Match = &match
	ctx.Result.Match = &match
	slog.Info("found similar issue", "issue", match.Issue.DisplayID(), "similarity", match.Similarity)
	return nil
}
