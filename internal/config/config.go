package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/similigh/transcript-triage/internal/retry"
)

// Config represents the full application configuration
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Tracker   TrackerConfig   `yaml:"tracker"`
	Matching  MatchingConfig  `yaml:"matching"`
	Retry     RetryConfig     `yaml:"retry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LLMConfig contains the classification model settings
type LLMConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	Temperature float32 `yaml:"temperature"`
}

// EmbeddingConfig contains embedding provider settings
type EmbeddingConfig struct {
	Primary  ProviderConfig `yaml:"primary"`
	Fallback ProviderConfig `yaml:"fallback"`
}

// ProviderConfig contains settings for an embedding provider
type ProviderConfig struct {
	Provider   string `yaml:"provider"`
	Model      string `yaml:"model"`
	APIKey     string `yaml:"api_key"`
	Dimensions int    `yaml:"dimensions"` // 0 keeps the model default
}

// TrackerConfig contains issue tracker settings
type TrackerConfig struct {
	Provider string       `yaml:"provider"` // "linear" or "github"
	APIKey   string       `yaml:"api_key"`
	URL      string       `yaml:"url,omitempty"`
	Team     string       `yaml:"team,omitempty"` // Linear team key or name; first team when empty
	Repo     string       `yaml:"repo,omitempty"` // GitHub owner/repo
	Labels   LabelsConfig `yaml:"labels"`
}

// LabelsConfig maps categories to tracker label identifiers
type LabelsConfig struct {
	Bug     string `yaml:"bug"`
	Feature string `yaml:"feature"`
}

// MatchingConfig contains duplicate detection settings
type MatchingConfig struct {
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// RetryConfig contains the retry policy for external calls
type RetryConfig struct {
	Attempts int           `yaml:"attempts"`
	Delay    time.Duration `yaml:"delay"`
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses config from the given path.
// A .env file in the working directory is loaded first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	expandConfigEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// FindConfigPath looks for config in common locations
func FindConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	paths := []string{
		"transcript-triage.yaml",
		"transcript-triage.yml",
		".github/transcript-triage.yaml",
		".github/transcript-triage.yml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		homePath := filepath.Join(home, ".config", "transcript-triage", "config.yaml")
		if _, err := os.Stat(homePath); err == nil {
			return homePath
		}
	}

	return ""
}

// applyDefaults sets default values for unset fields
func applyDefaults(cfg *Config) {
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.1
	}
	if cfg.Embedding.Primary.Provider == "" {
		cfg.Embedding.Primary.Provider = "openai"
	}
	if cfg.Embedding.Primary.Provider == "openai" && cfg.Embedding.Primary.Model == "" {
		cfg.Embedding.Primary.Model = "text-embedding-ada-002"
	}
	if cfg.Tracker.Provider == "" {
		cfg.Tracker.Provider = "linear"
	}
	if cfg.Tracker.Provider == "linear" && cfg.Tracker.URL == "" {
		cfg.Tracker.URL = "https://api.linear.app/graphql"
	}
	if cfg.Matching.SimilarityThreshold == 0 {
		cfg.Matching.SimilarityThreshold = 0.81
	}
	if cfg.Retry.Attempts == 0 {
		cfg.Retry.Attempts = retry.DefaultAttempts
	}
	if cfg.Retry.Delay == 0 {
		cfg.Retry.Delay = retry.DefaultDelay
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
