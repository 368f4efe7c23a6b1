// Package tracker defines the issue repository boundary used by the
// pipeline and the label mapping shared by every tracker implementation.
package tracker

import (
	"context"

	"github.com/similigh/transcript-triage/internal/config"
	"github.com/similigh/transcript-triage/pkg/models"
)

// Gateway reads and writes issues in an external tracker
type Gateway interface {
	// ListIssues returns the open issues with their category resolved
	ListIssues(ctx context.Context) ([]models.Issue, error)
	CreateIssue(ctx context.Context, category models.Category, title, description string) (models.Issue, error)
	Comment(ctx context.Context, issueID, body string) error
}

// LabelMap maps categories to tracker label identifiers and back
type LabelMap struct {
	Bug     string
	Feature string
}

// NewLabelMap builds a label map from config
func NewLabelMap(cfg config.LabelsConfig) LabelMap {
	return LabelMap{Bug: cfg.Bug, Feature: cfg.Feature}
}

// Label returns the label for a trackable category
func (m LabelMap) Label(category models.Category) (string, bool) {
	switch category {
	case models.CategoryBug:
		return m.Bug, m.Bug != ""
	case models.CategoryFeature:
		return m.Feature, m.Feature != ""
	default:
		return "", false
	}
}

// Category returns the category of the first label that maps to one
func (m LabelMap) Category(labels ...string) (models.Category, bool) {
	for _, l := range labels {
		switch {
		case l == "":
			continue
		case l == m.Bug:
			return models.CategoryBug, true
		case l == m.Feature:
			return models.CategoryFeature, true
		}
	}
	return "", false
}
