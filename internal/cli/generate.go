package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/similigh/transcript-triage/internal/classifier"
	"github.com/similigh/transcript-triage/internal/llm"
	"github.com/similigh/transcript-triage/pkg/models"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "generate <bug|feature|neither>",
		Short:     "Print a synthetic transcript for testing",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bug", "feature", "neither"},
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(args[0])
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			chat, err := llm.NewProvider(&cfg.LLM)
			if err != nil {
				return fmt.Errorf("failed to create LLM provider: %w", err)
			}
			defer chat.Close()

			transcript, err := classifier.New(chat, cfg.RetryPolicy()).GenerateTranscript(cmd.Context(), category)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), transcript)
			return nil
		},
	}
}
