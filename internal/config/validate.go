package config

import (
	"fmt"
	"strings"

	"github.com/similigh/transcript-triage/internal/retry"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var embeddingProviders = map[string]bool{"openai": true, "gemini": true, "voyage": true}

// Validate checks the configuration for errors
func Validate(cfg *Config) []error {
	var errs []error

	// LLM
	if cfg.LLM.Provider != "gemini" && cfg.LLM.Provider != "openai" {
		errs = append(errs, ValidationError{"llm.provider", "must be 'gemini' or 'openai'"})
	}
	if cfg.LLM.APIKey == "" {
		errs = append(errs, ValidationError{"llm.api_key", "required"})
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		errs = append(errs, ValidationError{"llm.temperature", "must be between 0 and 2"})
	}

	// Embedding
	if !embeddingProviders[cfg.Embedding.Primary.Provider] {
		errs = append(errs, ValidationError{"embedding.primary.provider", "must be 'openai', 'gemini' or 'voyage'"})
	}
	if cfg.Embedding.Primary.APIKey == "" {
		errs = append(errs, ValidationError{"embedding.primary.api_key", "required"})
	}
	if cfg.Embedding.Fallback.Provider != "" && !embeddingProviders[cfg.Embedding.Fallback.Provider] {
		errs = append(errs, ValidationError{"embedding.fallback.provider", "must be 'openai', 'gemini' or 'voyage'"})
	}
	if cfg.Embedding.Primary.Dimensions < 0 || cfg.Embedding.Fallback.Dimensions < 0 {
		errs = append(errs, ValidationError{"embedding.dimensions", "must not be negative"})
	}

	// Tracker
	switch cfg.Tracker.Provider {
	case "linear":
		if cfg.Tracker.APIKey == "" {
			errs = append(errs, ValidationError{"tracker.api_key", "required for linear"})
		}
	case "github":
		if cfg.Tracker.Repo == "" {
			errs = append(errs, ValidationError{"tracker.repo", "required for github"})
		} else if !strings.Contains(cfg.Tracker.Repo, "/") {
			errs = append(errs, ValidationError{"tracker.repo", "must be in format 'owner/repo'"})
		}
	default:
		errs = append(errs, ValidationError{"tracker.provider", "must be 'linear' or 'github'"})
	}
	if cfg.Tracker.Labels.Bug == "" {
		errs = append(errs, ValidationError{"tracker.labels.bug", "required"})
	}
	if cfg.Tracker.Labels.Feature == "" {
		errs = append(errs, ValidationError{"tracker.labels.feature", "required"})
	}
	if cfg.Tracker.Labels.Bug != "" && cfg.Tracker.Labels.Bug == cfg.Tracker.Labels.Feature {
		errs = append(errs, ValidationError{"tracker.labels", "bug and feature labels must differ"})
	}

	// Matching
	if cfg.Matching.SimilarityThreshold <= 0 || cfg.Matching.SimilarityThreshold > 1 {
		errs = append(errs, ValidationError{"matching.similarity_threshold", "must be greater than 0 and at most 1"})
	}

	// Retry
	if cfg.Retry.Attempts < 1 {
		errs = append(errs, ValidationError{"retry.attempts", "must be at least 1"})
	}
	if cfg.Retry.Delay < 0 {
		errs = append(errs, ValidationError{"retry.delay", "must not be negative"})
	}

	return errs
}

// RetryPolicy returns the retry policy described by the config
func (cfg *Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		Attempts: cfg.Retry.Attempts,
		Delay:    cfg.Retry.Delay,
	}
}
