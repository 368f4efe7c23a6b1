// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package steps

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/similigh/transcript-triage/internal/pipeline/core"
	"github.com/similigh/transcript-triage/pkg/models"
)

const commentFooter = "<sub>🤖 Reported again by transcript-triage from a customer conversation</sub>"

// IssueWriter defines the interface for tracker writes
type IssueWriter interface {
	CreateIssue(ctx context.Context, category models.Category, title, description string) (models.Issue, error)
	Comment(ctx context.Context, issueID, body string) error
}

// Write comments on the matched issue or files a new one.
type Write struct {
	writer IssueWriter
	dryRun bool
}

// NewWrite creates a new write step
func NewWrite(writer IssueWriter, dryRun bool) *Write {
	return &Write{writer: writer, dryRun: dryRun}
}

func (s *Write) Name() string {
	return "write"
}

func (s *Write) Run(ctx *core.Context) error {
	if ctx.Match != nil {
		return s.comment(ctx)
	}
	return s.create(ctx)
}

func (s *Write) comment(ctx *core.Context) error {
	issue := ctx.Match.Issue
	body := FormatComment(ctx.Classification.Description)

	if s.dryRun {
		slog.Info("[DRY RUN] would comment on issue", "issue", issue.DisplayID())
		slog.Debug("comment body", "body", body)
		return nil
	}

	if err := s.writer.Comment(ctx.Ctx, issue.ID, body); err != nil {
		return fmt.Errorf("failed to comment on %s: %w", issue.DisplayID(), err)
	}

	ctx.Result.CommentPosted = true
	slog.Info("commented on existing issue", "issue", issue.DisplayID())
	return nil
}

func (s *Write) create(ctx *core.Context) error {
	c := ctx.Classification

	if s.dryRun {
		slog.Info("[DRY RUN] would create issue", "category", c.Category, "title", c.Name)
		return nil
	}

	issue, err := s.writer.CreateIssue(ctx.Ctx, c.Category, c.Name, c.Description)
	if err != nil {
		return fmt.Errorf("failed to create issue: %w", err)
	}

	ctx.Result.CreatedIssue = &issue
	slog.Info("created issue", "issue", issue.DisplayID(), "category", c.Category)
	return nil
}

// FormatComment builds the comment appended to a matched issue
func FormatComment(description string) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(description))
	b.WriteString("\n\n---\n")
	b.WriteString(commentFooter)
	return b.String()
}
