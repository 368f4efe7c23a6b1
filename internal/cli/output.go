package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/similigh/transcript-triage/pkg/models"
)

// printResult writes a short human summary of a processed transcript
func printResult(w io.Writer, result *models.ProcessResult) {
	fmt.Fprintln(w, "\n=== Transcript Result ===")
	fmt.Fprintf(w, "Transcript: %s\n", result.TranscriptID)
	if result.Category != "" {
		fmt.Fprintf(w, "Category: %s\n", result.Category)
	}

	if result.Skipped {
		fmt.Fprintf(w, "Skipped: %s\n", result.SkipReason)
		return
	}

	fmt.Fprintf(w, "Name: %s\n", result.Name)
	fmt.Fprintf(w, "Compared: %d existing issues\n", result.Compared)

	if result.Match != nil {
		fmt.Fprintf(w, "Match: %s %q (%.1f%% similar)\n",
			result.Match.Issue.DisplayID(), result.Match.Issue.Title, result.Match.Similarity*100)
	}

	switch {
	case result.DryRun && result.Match != nil:
		fmt.Fprintln(w, "Comment: skipped (dry run)")
	case result.DryRun:
		fmt.Fprintln(w, "Issue: not created (dry run)")
	case result.CommentPosted:
		fmt.Fprintln(w, "Comment: posted")
	case result.CreatedIssue != nil:
		fmt.Fprintf(w, "Issue: created %s\n", result.CreatedIssue.DisplayID())
		if result.CreatedIssue.URL != "" {
			fmt.Fprintf(w, "  %s\n", result.CreatedIssue.URL)
		}
	}
}

func renderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i, h := range headers {
		header[i] = h
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       text.AlignLeft,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(configs)

	return tw.Render()
}
