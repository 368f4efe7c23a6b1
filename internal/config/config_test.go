package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/similigh/transcript-triage/internal/retry"
)

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "test-value")

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "expands env var",
			input:  "${TEST_VAR}",
			expect: "test-value",
		},
		{
			name:   "keeps unset var",
			input:  "${UNSET_TRIAGE_VAR}",
			expect: "${UNSET_TRIAGE_VAR}",
		},
		{
			name:   "expands in string",
			input:  "https://${TEST_VAR}.example.com",
			expect: "https://test-value.example.com",
		},
		{
			name:   "no vars",
			input:  "plain string",
			expect: "plain string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandEnvVars(tt.input)
			if result != tt.expect {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.input, result, tt.expect)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TRIAGE_LINEAR_KEY", "lin_api_123")

	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")

	content := `
llm:
  provider: "openai"
  model: "gpt-4"
  api_key: "sk-test"

embedding:
  primary:
    provider: "gemini"
    model: "gemini-embedding-001"
    api_key: "test-key"
    dimensions: 768

tracker:
  provider: "linear"
  api_key: "${TRIAGE_LINEAR_KEY}"
  team: "ENG"
  labels:
    bug: "label-bug"
    feature: "label-feature"

retry:
  delay: 500ms
`

	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Embedding.Primary.Provider != "gemini" {
		t.Errorf("Embedding.Primary.Provider = %v, want gemini", cfg.Embedding.Primary.Provider)
	}
	if cfg.Embedding.Primary.Dimensions != 768 {
		t.Errorf("Embedding.Primary.Dimensions = %d, want 768", cfg.Embedding.Primary.Dimensions)
	}
	if cfg.Tracker.APIKey != "lin_api_123" {
		t.Errorf("Tracker.APIKey = %q, want expanded env value", cfg.Tracker.APIKey)
	}
	if cfg.Tracker.URL != "https://api.linear.app/graphql" {
		t.Errorf("Tracker.URL = %q, want linear default", cfg.Tracker.URL)
	}
	if cfg.Retry.Delay != 500*time.Millisecond {
		t.Errorf("Retry.Delay = %v, want 500ms", cfg.Retry.Delay)
	}
	if cfg.Retry.Attempts != 3 {
		t.Errorf("Retry.Attempts = %d, want 3", cfg.Retry.Attempts)
	}

	if errs := Validate(cfg); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Matching.SimilarityThreshold != 0.81 {
		t.Errorf("SimilarityThreshold = %v, want 0.81", cfg.Matching.SimilarityThreshold)
	}
	if cfg.Retry.Attempts != retry.DefaultAttempts {
		t.Errorf("Retry.Attempts = %v, want %d", cfg.Retry.Attempts, retry.DefaultAttempts)
	}
	if cfg.Retry.Delay != retry.DefaultDelay {
		t.Errorf("Retry.Delay = %v, want %v", cfg.Retry.Delay, retry.DefaultDelay)
	}
	if cfg.LLM.Temperature != 0.1 {
		t.Errorf("LLM.Temperature = %v, want 0.1", cfg.LLM.Temperature)
	}
	if cfg.Embedding.Primary.Model != "text-embedding-ada-002" {
		t.Errorf("Embedding.Primary.Model = %v, want text-embedding-ada-002", cfg.Embedding.Primary.Model)
	}
	if cfg.Tracker.Provider != "linear" {
		t.Errorf("Tracker.Provider = %v, want linear", cfg.Tracker.Provider)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %v, want info", cfg.Logging.Level)
	}
}

func validConfig() *Config {
	cfg := &Config{
		LLM:       LLMConfig{APIKey: "sk"},
		Embedding: EmbeddingConfig{Primary: ProviderConfig{APIKey: "sk"}},
		Tracker: TrackerConfig{
			APIKey: "lin",
			Labels: LabelsConfig{Bug: "b", Feature: "f"},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"negative threshold", func(c *Config) { c.Matching.SimilarityThreshold = -0.5 }, "matching.similarity_threshold"},
		{"threshold above one", func(c *Config) { c.Matching.SimilarityThreshold = 1.2 }, "matching.similarity_threshold"},
		{"threshold of one", func(c *Config) { c.Matching.SimilarityThreshold = 1 }, ""},
		{"unknown llm", func(c *Config) { c.LLM.Provider = "claude" }, "llm.provider"},
		{"missing llm key", func(c *Config) { c.LLM.APIKey = "" }, "llm.api_key"},
		{"unknown embedding", func(c *Config) { c.Embedding.Primary.Provider = "cohere" }, "embedding.primary.provider"},
		{"unknown fallback", func(c *Config) { c.Embedding.Fallback.Provider = "cohere" }, "embedding.fallback.provider"},
		{"unknown tracker", func(c *Config) { c.Tracker.Provider = "jira" }, "tracker.provider"},
		{"linear without key", func(c *Config) { c.Tracker.APIKey = "" }, "tracker.api_key"},
		{"github without repo", func(c *Config) { c.Tracker.Provider = "github" }, "tracker.repo"},
		{"github bad repo", func(c *Config) { c.Tracker.Provider = "github"; c.Tracker.Repo = "nope" }, "tracker.repo"},
		{"github ok", func(c *Config) { c.Tracker.Provider = "github"; c.Tracker.Repo = "o/r" }, ""},
		{"missing bug label", func(c *Config) { c.Tracker.Labels.Bug = "" }, "tracker.labels.bug"},
		{"same labels", func(c *Config) { c.Tracker.Labels.Feature = "b" }, "tracker.labels"},
		{"negative delay", func(c *Config) { c.Retry.Delay = -time.Second }, "retry.delay"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			errs := Validate(cfg)

			if tt.field == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}

			found := false
			for _, err := range errs {
				var ve ValidationError
				if errors.As(err, &ve) && ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("Validate() = %v, want error on %s", errs, tt.field)
			}
		})
	}
}

func TestRetryPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.Retry.Attempts = 5
	cfg.Retry.Delay = time.Second

	p := cfg.RetryPolicy()
	if p.Attempts != 5 || p.Delay != time.Second {
		t.Errorf("RetryPolicy() = %+v", p)
	}
}

func TestRetryPolicy_Defaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	got := cfg.RetryPolicy()
	want := retry.DefaultPolicy()
	if got.Attempts != want.Attempts || got.Delay != want.Delay {
		t.Errorf("RetryPolicy() = %+v, want %+v", got, want)
	}
}

func TestFindConfigPath_Explicit(t *testing.T) {
	if got := FindConfigPath("custom.yaml"); got != "custom.yaml" {
		t.Errorf("FindConfigPath() = %q, want custom.yaml", got)
	}
}
