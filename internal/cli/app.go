package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/similigh/transcript-triage/internal/classifier"
	"github.com/similigh/transcript-triage/internal/config"
	"github.com/similigh/transcript-triage/internal/embedding"
	"github.com/similigh/transcript-triage/internal/llm"
	"github.com/similigh/transcript-triage/internal/logging"
	"github.com/similigh/transcript-triage/internal/pipeline"
	"github.com/similigh/transcript-triage/internal/retry"
	"github.com/similigh/transcript-triage/internal/similarity"
	"github.com/similigh/transcript-triage/internal/tracker"
	"github.com/similigh/transcript-triage/internal/tracker/github"
	"github.com/similigh/transcript-triage/internal/tracker/linear"
	"github.com/similigh/transcript-triage/pkg/models"
)

// loadConfig finds, loads and validates the configuration
func loadConfig() (*config.Config, error) {
	cfgPath := config.FindConfigPath(cfgFile)
	if cfgPath == "" {
		return nil, fmt.Errorf("config file not found")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if errs := config.Validate(cfg); len(errs) > 0 {
		for _, e := range errs {
			slog.Error("config error", "error", e)
		}
		return nil, fmt.Errorf("invalid configuration")
	}

	if logLevel == "" {
		logging.Init(logging.ParseLevel(cfg.Logging.Level))
	}
	slog.Debug("loaded config", "path", cfgPath)

	return cfg, nil
}

// app holds the collaborators built from config
type app struct {
	cfg        *config.Config
	llm        llm.Provider
	embedder   embedding.Provider
	classifier *classifier.Classifier
	gateway    tracker.Gateway
	matcher    *similarity.Matcher
	processor  *pipeline.Processor
}

// newApp wires every collaborator; the tracker team is resolved here once
func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	policy := cfg.RetryPolicy()

	chat, err := llm.NewProvider(&cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM provider: %w", err)
	}

	embedder, err := embedding.New(&cfg.Embedding, policy)
	if err != nil {
		chat.Close()
		return nil, fmt.Errorf("failed to create embedding provider: %w", err)
	}

	gw, err := newGateway(ctx, &cfg.Tracker, policy)
	if err != nil {
		chat.Close()
		embedder.Close()
		return nil, fmt.Errorf("failed to create tracker client: %w", err)
	}

	a := &app{
		cfg:        cfg,
		llm:        chat,
		embedder:   embedder,
		classifier: classifier.New(chat, policy),
		gateway:    gw,
		matcher:    similarity.NewMatcher(embedder),
	}

	builder := pipeline.NewBuilder(a.classifier, a.gateway, a.matcher, dryRun)
	a.processor = pipeline.NewProcessor(builder.BuildDefault(), cfg.Matching.SimilarityThreshold, dryRun)

	return a, nil
}

// newGateway creates the configured tracker wrapped in the retry policy
func newGateway(ctx context.Context, cfg *config.TrackerConfig, policy retry.Policy) (tracker.Gateway, error) {
	labels := tracker.NewLabelMap(cfg.Labels)

	var gw tracker.Gateway
	switch cfg.Provider {
	case "linear":
		c, err := linear.New(ctx, linear.Options{
			URL:    cfg.URL,
			APIKey: cfg.APIKey,
			Team:   cfg.Team,
			Labels: labels,
			Policy: policy,
		})
		if err != nil {
			return nil, err
		}
		gw = c
	case "github":
		c, err := github.New(github.Options{
			Repo:   cfg.Repo,
			Token:  cfg.APIKey,
			Labels: labels,
		})
		if err != nil {
			return nil, err
		}
		gw = c
	default:
		return nil, fmt.Errorf("unknown tracker provider: %s", cfg.Provider)
	}

	return tracker.WithRetry(gw, policy), nil
}

// Process runs one transcript through the pipeline
func (a *app) Process(ctx context.Context, transcript string) (*models.ProcessResult, error) {
	return a.processor.Process(ctx, transcript)
}

// GenerateTranscript synthesises a transcript of the given category
func (a *app) GenerateTranscript(ctx context.Context, category models.Category) (string, error) {
	return a.classifier.GenerateTranscript(ctx, category)
}

// Close releases all resources
func (a *app) Close() error {
	var errs []error
	if err := a.llm.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := a.embedder.Close(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing resources: %v", errs)
	}
	return nil
}
