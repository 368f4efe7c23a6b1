package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newProcessCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "process [transcript]",
		Short: "Process a single transcript",
		Long:  `Classify one transcript and file or comment on an issue. The transcript is read from the argument or from --file.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			transcript, err := readTranscript(args, file)
			if err != nil {
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.Process(ctx, transcript)
			if err != nil {
				return fmt.Errorf("processing failed: %w", err)
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read the transcript from a file")

	return cmd
}

func readTranscript(args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", fmt.Errorf("pass a transcript or --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read transcript: %w", err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return "", fmt.Errorf("transcript file %s is empty", file)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("a transcript argument or --file is required")
	}
}
