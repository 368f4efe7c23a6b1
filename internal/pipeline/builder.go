// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-01-28
// Last Modified: 2026-10-19

package pipeline

import (
	"fmt"

	"github.com/similigh/transcript-triage/internal/pipeline/core"
	"github.com/similigh/transcript-triage/internal/pipeline/steps"
	"github.com/similigh/transcript-triage/internal/tracker"
)

// DefaultSteps is the step order used when none is given
var DefaultSteps = []string{"classify", "fetch_existing", "match", "write"}

// Builder constructs a pipeline of steps.
type Builder struct {
	classifier steps.Classifier
	gateway    tracker.Gateway
	matcher    steps.Matcher
	dryRun     bool
}

// NewBuilder creates a new pipeline builder
func NewBuilder(classifier steps.Classifier, gateway tracker.Gateway, matcher steps.Matcher, dryRun bool) *Builder {
	return &Builder{
		classifier: classifier,
		gateway:    gateway,
		matcher:    matcher,
		dryRun:     dryRun,
	}
}

// BuildDefault creates the standard pipeline
func (b *Builder) BuildDefault() []core.Step {
	pipe, _ := b.Build(DefaultSteps)
	return pipe
}

// Build creates a pipeline from step names in order
func (b *Builder) Build(names []string) ([]core.Step, error) {
	var pipe []core.Step
	for _, name := range names {
		step, err := b.createStep(name)
		if err != nil {
			return nil, err
		}
		pipe = append(pipe, step)
	}
	return pipe, nil
}

func (b *Builder) createStep(name string) (core.Step, error) {
	switch name {
	case "classify":
		return steps.NewClassify(b.classifier), nil
	case "fetch_existing":
		return steps.NewFetchExisting(b.gateway), nil
	case "match":
		return steps.NewMatch(b.matcher), nil
	case "write":
		return steps.NewWrite(b.gateway, b.dryRun), nil
	default:
		return nil, fmt.Errorf("unknown step: %s", name)
	}
}
