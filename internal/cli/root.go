package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/similigh/transcript-triage/internal/logging"
)

var (
	cfgFile  string
	dryRun   bool
	logLevel string
	version  = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "transcript-triage",
	Short: "Customer transcript triage bot",
	Long: `transcript-triage classifies customer conversation transcripts as bug
reports, feature requests or neither, then files a new issue in the tracker
or comments on the most similar existing issue of the same category.

Similarity is the product of the cosine similarity of the issue names and
of the issue descriptions.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Init(logging.ParseLevel(logLevel))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "skip all tracker writes")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newIssuesCmd())
	rootCmd.AddCommand(newMatchCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "transcript-triage version %s\n", version)
		},
	}
}
