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

// Classifier defines the interface for transcript classification
type Classifier interface {
	Classify(ctx context.Context, transcript string) (models.Classification, error)
}

// Classify asks the model what the transcript is about.
type Classify struct {
	classifier Classifier
}

// NewClassify creates a new classify step
func NewClassify(classifier Classifier) *Classify {
	return &Classify{classifier: classifier}
}

func (s *Classify) Name() string {
	return "classify"
}

func (s *Classify) Run(ctx *core.Context) error {
	c, err := s.classifier.Classify(ctx.Ctx, ctx.Transcript)
	if err != nil {
		return err
	}

	ctx.Classification = c
	ctx.Result.Category = c.Category
	slog.Info("transcript classified", "transcript_id", ctx.Result.TranscriptID, "category", c.Category)

	if !c.Category.Trackable() {
		ctx.SkipReason = "transcript is neither a bug nor a feature request"
		return core.ErrSkipPipeline
	}

	ctx.Result.Name = c.Name
	ctx.Result.Description = c.Description
	slog.Debug("classification details", "name", c.Name, "description", c.Description)
	return nil
}
