package config

import (
	"os"
	"regexp"
)

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match // Keep original if env var not set
	})
}

// expandConfigEnvVars expands environment variables in config string fields
func expandConfigEnvVars(cfg *Config) {
	cfg.LLM.APIKey = expandEnvVars(cfg.LLM.APIKey)
	cfg.Embedding.Primary.APIKey = expandEnvVars(cfg.Embedding.Primary.APIKey)
	cfg.Embedding.Fallback.APIKey = expandEnvVars(cfg.Embedding.Fallback.APIKey)
	cfg.Tracker.APIKey = expandEnvVars(cfg.Tracker.APIKey)
	cfg.Tracker.URL = expandEnvVars(cfg.Tracker.URL)
	cfg.Tracker.Team = expandEnvVars(cfg.Tracker.Team)
	cfg.Tracker.Repo = expandEnvVars(cfg.Tracker.Repo)
	cfg.Tracker.Labels.Bug = expandEnvVars(cfg.Tracker.Labels.Bug)
	cfg.Tracker.Labels.Feature = expandEnvVars(cfg.Tracker.Labels.Feature)
}
