// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-19

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/similigh/transcript-triage/internal/pipeline/core"
	"github.com/similigh/transcript-triage/pkg/models"
)

// Processor runs transcripts through the pipeline one at a time
type Processor struct {
	pipeline  []core.Step
	threshold float64
	dryRun    bool
}

// NewProcessor creates a processor over the given steps
func NewProcessor(pipe []core.Step, threshold float64, dryRun bool) *Processor {
	return &Processor{
		pipeline:  pipe,
		threshold: threshold,
		dryRun:    dryRun,
	}
}

// Process classifies a transcript and files or comments on an issue.
// An error aborts this transcript only.
func (p *Processor) Process(ctx context.Context, transcript string) (*models.ProcessResult, error) {
	start := time.Now()

	pCtx := &core.Context{
		Ctx:        ctx,
		Transcript: transcript,
		Threshold:  p.threshold,
		Result: &models.ProcessResult{
			TranscriptID: uuid.NewString(),
			DryRun:       p.dryRun,
		},
	}

	for _, step := range p.pipeline {
		if err := step.Run(pCtx); err != nil {
			if errors.Is(err, core.ErrSkipPipeline) {
				pCtx.Result.Skipped = true
				pCtx.Result.SkipReason = pCtx.SkipReason
				slog.Info("pipeline skipped", "transcript_id", pCtx.Result.TranscriptID, "reason", pCtx.SkipReason)
				break
			}
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
	}

	pCtx.Result.DurationMs = time.Since(start).Milliseconds()
	return pCtx.Result, nil
}
