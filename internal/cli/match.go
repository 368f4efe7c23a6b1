package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/similigh/transcript-triage/internal/embedding"
	"github.com/similigh/transcript-triage/internal/similarity"
	"github.com/similigh/transcript-triage/pkg/models"
)

func newMatchCmd() *cobra.Command {
	var (
		category    string
		name        string
		description string
		threshold   float64
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Find the existing issue a candidate would match (debugging/testing)",
		Long:  `Run duplicate detection for a candidate issue against current tracker issues without writing anything.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cat, err := models.ParseCategory(category)
			if err != nil {
				return err
			}
			if !cat.Trackable() {
				return fmt.Errorf("category must be bug or feature")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if threshold == 0 {
				threshold = cfg.Matching.SimilarityThreshold
			}

			policy := cfg.RetryPolicy()
			embedder, err := embedding.New(&cfg.Embedding, policy)
			if err != nil {
				return fmt.Errorf("failed to create embedding provider: %w", err)
			}
			defer embedder.Close()

			gw, err := newGateway(ctx, &cfg.Tracker, policy)
			if err != nil {
				return fmt.Errorf("failed to create tracker client: %w", err)
			}

			issues, err := gw.ListIssues(ctx)
			if err != nil {
				return err
			}
			existing := models.FilterByCategory(issues, cat)

			candidate := models.Candidate{Name: name, Description: description}
			match, found, err := similarity.NewMatcher(embedder).FindBestMatch(ctx, candidate, existing, threshold)
			if err != nil {
				return fmt.Errorf("match failed: %w", err)
			}

			printMatch(cmd.OutOrStdout(), len(existing), threshold, match, found)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "candidate category (bug or feature)")
	cmd.Flags().StringVar(&name, "name", "", "candidate issue name")
	cmd.Flags().StringVar(&description, "description", "", "candidate issue description")
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "similarity threshold (defaults to config)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func printMatch(w io.Writer, compared int, threshold float64, match models.Match, found bool) {
	fmt.Fprintf(w, "Compared %d issues (threshold %.2f)\n", compared, threshold)
	if !found {
		fmt.Fprintln(w, "No similar issue found")
		return
	}
	fmt.Fprintf(w, "Best match: %s - %s\n", match.Issue.DisplayID(), match.Issue.Title)
	fmt.Fprintf(w, "   Similarity: %.1f%%\n", match.Similarity*100)
	if match.Issue.URL != "" {
		fmt.Fprintf(w, "   %s\n", match.Issue.URL)
	}
}
