// Package classifier turns customer conversation transcripts into a
// structured bug / feature / neither classification using a chat model.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/similigh/transcript-triage/internal/llm"
	"github.com/similigh/transcript-triage/internal/retry"
	"github.com/similigh/transcript-triage/pkg/models"
)

const (
	// MaxNameWords bounds the issue name
	MaxNameWords = 10
	// MaxDescriptionWords bounds the issue description
	MaxDescriptionWords = 100
)

// ErrClassification is matched by every ClassificationError
var ErrClassification = errors.New("classification failed")

// ClassificationError reports a model response that could not be used
type ClassificationError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *ClassificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classification failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("classification failed: %s", e.Reason)
}

// Unwrap returns the decoding error, if any
func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrClassification
func (e *ClassificationError) Is(target error) bool {
	return target == ErrClassification
}

const classifySystemPrompt = `You read conversation transcripts between a customer and a customer support agent.
Decide the issue type:
- "bug fix": the customer is experiencing a problem with the product.
- "feature request": the customer is asking for new functionality.
- "neither": the customer has no problem and is not asking for anything new.

Also write a name for the issue in 10 words or less and a description in 100 words or less.

Respond with a single JSON object and nothing else:
{"issue_type": "bug fix" | "feature request" | "neither", "issue_name": "...", "issue_description": "..."}`

const generateSystemPrompt = `You write realistic conversation transcripts between a customer and a customer support agent.
If asked for "bug fix", the customer describes a bug they need fixed.
If asked for "feature request", the customer asks for a new feature.
If asked for "neither", the customer has no problem and requests nothing new.
Return only the transcript text.`

// Classifier classifies transcripts through an LLM provider
type Classifier struct {
	llm    llm.Provider
	policy retry.Policy
}

// New creates a classifier; the policy applies to the model call only
func New(provider llm.Provider, policy retry.Policy) *Classifier {
	return &Classifier{
		llm:    provider,
		policy: policy,
	}
}

// response is the JSON shape requested from the model
type response struct {
	IssueType        string `json:"issue_type"`
	IssueName        string `json:"issue_name"`
	IssueDescription string `json:"issue_description"`
}

// Classify asks the model for the category, name and description of a transcript
func (c *Classifier) Classify(ctx context.Context, transcript string) (models.Classification, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return models.Classification{}, &ClassificationError{Reason: "empty transcript"}
	}

	raw, err := retry.Do(ctx, c.policy, "classification", func(ctx context.Context) (string, error) {
		return c.llm.CompleteWithSystem(ctx, classifySystemPrompt, transcript)
	})
	if err != nil {
		return models.Classification{}, fmt.Errorf("failed to classify transcript: %w", err)
	}

	slog.Debug("classification response", "raw", raw)
	return parseResponse(raw)
}

// parseResponse decodes and validates the model output
func parseResponse(raw string) (models.Classification, error) {
	body := extractObject(raw)

	var resp response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		return models.Classification{}, &ClassificationError{Reason: "malformed response", Raw: raw, Err: err}
	}

	category, err := models.ParseCategory(resp.IssueType)
	if err != nil {
		return models.Classification{}, &ClassificationError{Reason: fmt.Sprintf("unexpected issue type %q", resp.IssueType), Raw: raw}
	}

	if category == models.CategoryNeither {
		return models.Classification{Category: category}, nil
	}

	name := strings.TrimSpace(resp.IssueName)
	description := strings.TrimSpace(resp.IssueDescription)
	if name == "" || description == "" {
		return models.Classification{}, &ClassificationError{Reason: "missing issue name or description", Raw: raw}
	}

	if n := len(strings.Fields(name)); n > MaxNameWords {
		slog.Warn("issue name too long, truncating", "words", n, "limit", MaxNameWords)
		name = truncateWords(name, MaxNameWords)
	}
	if n := len(strings.Fields(description)); n > MaxDescriptionWords {
		slog.Warn("issue description too long, truncating", "words", n, "limit", MaxDescriptionWords)
		description = truncateWords(description, MaxDescriptionWords)
	}

	return models.Classification{
		Category:    category,
		Name:        name,
		Description: description,
	}, nil
}

// GenerateTranscript asks the model for a synthetic transcript of the given category
func (c *Classifier) GenerateTranscript(ctx context.Context, category models.Category) (string, error) {
	transcript, err := retry.Do(ctx, c.policy, "generation", func(ctx context.Context) (string, error) {
		return c.llm.CompleteWithSystem(ctx, generateSystemPrompt, category.WireValue())
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate transcript: %w", err)
	}

	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return "", fmt.Errorf("model returned an empty transcript")
	}

	slog.Debug("generated transcript", "category", category, "transcript", transcript)
	return transcript, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// extractObject returns the outermost {...} span of a model reply, dropping
// code fences and any prose around it
func extractObject(s string) string {
	s = stripCodeFence(s)
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

// truncateWords keeps the first n whitespace-separated words
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ")
}
