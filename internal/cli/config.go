package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/similigh/transcript-triage/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
	}

	cmd.AddCommand(newConfigValidateCmd())
	return cmd
}

func newConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfgPath := config.FindConfigPath(cfgFile)
			if cfgPath == "" {
				return fmt.Errorf("config file not found")
			}

			fmt.Fprintf(out, "Validating config: %s\n", cfgPath)

			cfg, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			errs := config.Validate(cfg)
			if len(errs) > 0 {
				fmt.Fprintln(out, "\nValidation errors:")
				for _, e := range errs {
					fmt.Fprintf(out, "  - %v\n", e)
				}
				return fmt.Errorf("configuration is invalid")
			}

			fmt.Fprintln(out, "\nConfiguration is valid!")
			fmt.Fprintf(out, "  - LLM: %s (%s)\n", cfg.LLM.Provider, cfg.LLM.Model)
			fmt.Fprintf(out, "  - Primary embedding: %s (%s)\n", cfg.Embedding.Primary.Provider, cfg.Embedding.Primary.Model)
			if cfg.Embedding.Fallback.Provider != "" {
				fmt.Fprintf(out, "  - Fallback embedding: %s (%s)\n", cfg.Embedding.Fallback.Provider, cfg.Embedding.Fallback.Model)
			}
			fmt.Fprintf(out, "  - Tracker: %s\n", cfg.Tracker.Provider)
			fmt.Fprintf(out, "  - Similarity threshold: %.2f\n", cfg.Matching.SimilarityThreshold)
			fmt.Fprintf(out, "  - Retry: %d attempts, %s apart\n", cfg.Retry.Attempts, cfg.Retry.Delay)

			return nil
		},
	}
}
