package models

// Match is the existing issue selected as a duplicate of a candidate
type Match struct {
	Issue      Issue   `json:"issue"`
	Similarity float64 `json:"similarity"` // product of name and description cosine similarity
}

// ProcessResult contains the result of processing a single transcript
type ProcessResult struct {
	TranscriptID  string   `json:"transcript_id"`
	Category      Category `json:"category,omitempty"`
	Name          string   `json:"name,omitempty"`
	Description   string   `json:"description,omitempty"`
	Compared      int      `json:"compared"`
	Match         *Match   `json:"match,omitempty"`
	CreatedIssue  *Issue   `json:"created_issue,omitempty"`
	CommentPosted bool     `json:"comment_posted"`
	DryRun        bool     `json:"dry_run,omitempty"`
	Skipped       bool     `json:"skipped"`
	SkipReason    string   `json:"skip_reason,omitempty"`
	DurationMs    int64    `json:"duration_ms"`
}
