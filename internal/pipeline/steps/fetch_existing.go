// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/similigh/transcript-triage/internal/pipeline/core"
	"github.com/similigh/transcript-triage/pkg/models"
)

// IssueLister defines the interface for reading open tracker issues
type IssueLister interface {
	ListIssues(ctx context.Context) ([]models.Issue, error)
}

// FetchExisting loads the open issues sharing the transcript's category.
type FetchExisting struct {
	lister IssueLister
}

// NewFetchExisting creates a new fetch step
func NewFetchExisting(lister IssueLister) *FetchExisting {
	return &FetchExisting{lister: lister}
}

func (s *FetchExisting) Name() string {
	return "fetch_existing"
}

func (s *FetchExisting) Run(ctx *core.Context) error {
	issues, err := s.lister.ListIssues(ctx.Ctx)
	if err != nil {
		return fmt.Errorf("failed to list issues: %w", err)
	}

	ctx.Existing = models.FilterByCategory(issues, ctx.Classification.Category)
	ctx.Result.Compared = len(ctx.Existing)

	slog.Debug("fetched existing issues",
		"total", len(issues),
		"category", ctx.Classification.Category,
		"same_category", len(ctx.Existing))
	return nil
}
