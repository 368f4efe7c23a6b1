package models

import (
	"fmt"
	"strings"
)

// Category is the kind of request a transcript describes
type Category string

const (
	CategoryBug     Category = "bug"
	CategoryFeature Category = "feature"
	CategoryNeither Category = "neither"
)

// Wire values exchanged with the language model
const (
	wireBug     = "bug fix"
	wireFeature = "feature request"
	wireNeither = "neither"
)

// ParseCategory accepts either the canonical or the model-facing spelling
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CategoryBug), wireBug:
		return CategoryBug, nil
	case string(CategoryFeature), wireFeature:
		return CategoryFeature, nil
	case string(CategoryNeither):
		return CategoryNeither, nil
	default:
		return "", fmt.Errorf("unknown category: %q", s)
	}
}

// WireValue returns the spelling used in model prompts
func (c Category) WireValue() string {
	switch c {
	case CategoryBug:
		return wireBug
	case CategoryFeature:
		return wireFeature
	default:
		return wireNeither
	}
}

// Trackable reports whether issues of this category are filed in the tracker
func (c Category) Trackable() bool {
	return c == CategoryBug || c == CategoryFeature
}

// Classification is the model's verdict for one transcript
type Classification struct {
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// Candidate returns the issue candidate described by the classification
func (c Classification) Candidate() Candidate {
	return Candidate{Name: c.Name, Description: c.Description}
}

// Candidate is a newly classified issue that may duplicate an existing one
type Candidate struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Issue represents an issue owned by the tracker
type Issue struct {
	ID          string   `json:"id"`
	Identifier  string   `json:"identifier,omitempty"` // human-facing key, e.g. ENG-42 or #42
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    Category `json:"category,omitempty"`
	State       string   `json:"state,omitempty"`
	URL         string   `json:"url,omitempty"`
}

// DisplayID returns the identifier when known, otherwise the opaque ID
func (i *Issue) DisplayID() string {
	if i.Identifier != "" {
		return i.Identifier
	}
	return i.ID
}

// FilterByCategory returns the issues carrying the given category, preserving order
func FilterByCategory(issues []Issue, category Category) []Issue {
	filtered := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.Category == category {
			filtered = append(filtered, issue)
		}
	}
	return filtered
}
