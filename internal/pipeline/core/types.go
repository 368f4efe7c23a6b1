// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-19

package core

import (
	"context"
	"errors"

	"github.com/similigh/transcript-triage/pkg/models"
)

// ErrSkipPipeline indicates that the rest of the pipeline should be skipped purely for logic reasons
// (e.g. the transcript is neither a bug nor a feature). It is not an error condition.
var ErrSkipPipeline = errors.New("skip pipeline")

// Context carries state through the pipeline steps for one transcript.
type Context struct {
	// Base Inputs
	Ctx        context.Context
	Transcript string
	Threshold  float64

	// Classification is set by the classify step
	Classification models.Classification

	// Existing holds open tracker issues of the classified category
	Existing []models.Issue

	// Match is the selected duplicate, nil when none qualified
	Match *models.Match

	// Result accumulates the final output structure
	Result *models.ProcessResult

	// SkipReason is set when ErrSkipPipeline is returned to explain why
	SkipReason string
}

// Step defines a single unit of work in the pipeline.
type Step interface {
	// Name returns the unique identifier for this step (used in logs)
	Name() string
	// Run executes the step logic.
	// Returning ErrSkipPipeline gracefully stops execution.
	// Returning any other error halts execution and is treated as a failure.
	Run(ctx *Context) error
}
