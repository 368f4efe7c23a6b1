package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/similigh/transcript-triage/pkg/models"
)

func newIssuesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "issues",
		Short: "List open tracker issues with their category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			gw, err := newGateway(ctx, &cfg.Tracker, cfg.RetryPolicy())
			if err != nil {
				return fmt.Errorf("failed to create tracker client: %w", err)
			}

			issues, err := gw.ListIssues(ctx)
			if err != nil {
				return err
			}

			if category != "" {
				c, err := models.ParseCategory(category)
				if err != nil {
					return err
				}
				issues = models.FilterByCategory(issues, c)
			}

			printIssues(cmd.OutOrStdout(), issues)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only show issues of this category (bug or feature)")

	return cmd
}

func printIssues(w io.Writer, issues []models.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "No open issues found")
		return
	}

	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		category := string(issue.Category)
		if category == "" {
			category = "-"
		}
		rows = append(rows, []string{issue.DisplayID(), category, issue.State, issue.Title})
	}

	fmt.Fprintln(w, renderTable([]string{"ID", "Category", "State", "Title"}, rows))
}
