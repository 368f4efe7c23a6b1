// Package linear implements the tracker gateway on Linear's GraphQL API.
package linear

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	graphql "github.com/cli/shurcooL-graphql"

	"github.com/similigh/transcript-triage/internal/retry"
	"github.com/similigh/transcript-triage/internal/tracker"
	"github.com/similigh/transcript-triage/pkg/models"
)

// DefaultURL is Linear's public GraphQL endpoint
const DefaultURL = "https://api.linear.app/graphql"

const pageSize = 100

// Options configures the Linear client
type Options struct {
	URL    string
	APIKey string
	Team   string // team key, name or id; first team when empty
	Labels tracker.LabelMap
	Policy retry.Policy

	// HTTPClient overrides the transport base
	HTTPClient *http.Client
}

// Client talks to a single Linear team
type Client struct {
	gql       *graphql.Client
	transport *authTransport
	labels    tracker.LabelMap
	teamID    string
}

// New creates a client and resolves the team once
func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("Linear API key is required")
	}
	if opts.URL == "" {
		opts.URL = DefaultURL
	}

	base := http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		base = opts.HTTPClient.Transport
	}
	transport := &authTransport{apiKey: opts.APIKey, base: base}

	c := &Client{
		gql:       graphql.NewClient(opts.URL, &http.Client{Transport: transport}),
		transport: transport,
		labels:    opts.Labels,
	}

	teamID, err := retry.Do(ctx, opts.Policy, "tracker", func(ctx context.Context) (string, error) {
		return c.resolveTeam(ctx, opts.Team)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Linear team: %w", err)
	}
	c.teamID = teamID

	return c, nil
}

// TeamID returns the team resolved at construction
func (c *Client) TeamID() string {
	return c.teamID
}

func (c *Client) resolveTeam(ctx context.Context, want string) (string, error) {
	var q struct {
		Teams struct {
			Nodes []struct {
				ID   string `graphql:"id"`
				Key  string `graphql:"key"`
				Name string `graphql:"name"`
			} `graphql:"nodes"`
		} `graphql:"teams"`
	}

	if err := c.gql.Query(ctx, &q, nil); err != nil {
		return "", c.classify(fmt.Errorf("failed to query teams: %w", err))
	}

	teams := q.Teams.Nodes
	if len(teams) == 0 {
		return "", retry.Permanent(fmt.Errorf("no teams visible to this API key"))
	}

	if want == "" {
		slog.Info("using first Linear team", "team", teams[0].Key)
		return teams[0].ID, nil
	}

	for _, t := range teams {
		if t.ID == want || strings.EqualFold(t.Key, want) || strings.EqualFold(t.Name, want) {
			slog.Debug("resolved Linear team", "team", t.Key, "id", t.ID)
			return t.ID, nil
		}
	}

	return "", retry.Permanent(fmt.Errorf("team %q not found", want))
}

type issueNode struct {
	ID          string   `graphql:"id"`
	Identifier  string   `graphql:"identifier"`
	Title       string   `graphql:"title"`
	Description *string  `graphql:"description"`
	URL         string   `graphql:"url"`
	LabelIDs    []string `graphql:"labelIds"`
	State       struct {
		Name string `graphql:"name"`
		Type string `graphql:"type"`
	} `graphql:"state"`
}

func (n issueNode) open() bool {
	return n.State.Type != "completed" && n.State.Type != "canceled"
}

func (n issueNode) toModel(labels tracker.LabelMap) models.Issue {
	issue := models.Issue{
		ID:         n.ID,
		Identifier: n.Identifier,
		Title:      n.Title,
		State:      n.State.Name,
		URL:        n.URL,
	}
	if n.Description != nil {
		issue.Description = *n.Description
	}
	if cat, ok := labels.Category(n.LabelIDs...); ok {
		issue.Category = cat
	}
	return issue
}

type issuesQuery struct {
	Team struct {
		Issues struct {
			Nodes    []issueNode `graphql:"nodes"`
			PageInfo struct {
				HasNextPage bool    `graphql:"hasNextPage"`
				EndCursor   *string `graphql:"endCursor"`
			} `graphql:"pageInfo"`
		} `graphql:"issues(first: $first, after: $after)"`
	} `graphql:"team(id: $teamId)"`
}

// ListIssues returns the team's open issues
func (c *Client) ListIssues(ctx context.Context) ([]models.Issue, error) {
	vars := map[string]interface{}{
		"teamId": graphql.String(c.teamID),
		"first":  graphql.Int(pageSize),
		"after":  (*graphql.String)(nil),
	}

	var issues []models.Issue
	for {
		var q issuesQuery
		if err := c.gql.Query(ctx, &q, vars); err != nil {
			return nil, c.classify(fmt.Errorf("failed to list issues: %w", err))
		}

		for _, n := range q.Team.Issues.Nodes {
			if !n.open() {
				continue
			}
			issues = append(issues, n.toModel(c.labels))
		}

		page := q.Team.Issues.PageInfo
		if !page.HasNextPage || page.EndCursor == nil {
			break
		}
		vars["after"] = graphql.NewString(graphql.String(*page.EndCursor))
	}

	slog.Debug("listed Linear issues", "count", len(issues))
	return issues, nil
}

// IssueCreateInput mirrors Linear's input type of the same name
type IssueCreateInput struct {
	TeamID      string   `json:"teamId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	LabelIDs    []string `json:"labelIds,omitempty"`
}

// CreateIssue files a new issue labelled with the category
func (c *Client) CreateIssue(ctx context.Context, category models.Category, title, description string) (models.Issue, error) {
	label, ok := c.labels.Label(category)
	if !ok {
		return models.Issue{}, retry.Permanent(fmt.Errorf("no label configured for category %q", category))
	}

	var m struct {
		IssueCreate struct {
			Success bool      `graphql:"success"`
			Issue   issueNode `graphql:"issue"`
		} `graphql:"issueCreate(input: $input)"`
	}

	vars := map[string]interface{}{
		"input": IssueCreateInput{
			TeamID:      c.teamID,
			Title:       title,
			Description: description,
			LabelIDs:    []string{label},
		},
	}

	if err := c.gql.Mutate(ctx, &m, vars); err != nil {
		return models.Issue{}, c.classify(fmt.Errorf("failed to create issue: %w", err))
	}
	if !m.IssueCreate.Success {
		return models.Issue{}, fmt.Errorf("issueCreate reported failure")
	}

	issue := m.IssueCreate.Issue.toModel(c.labels)
	issue.Category = category
	return issue, nil
}

// CommentCreateInput mirrors Linear's input type of the same name
type CommentCreateInput struct {
	IssueID string `json:"issueId"`
	Body    string `json:"body"`
}

// Comment appends a comment to an issue
func (c *Client) Comment(ctx context.Context, issueID, body string) error {
	var m struct {
		CommentCreate struct {
			Success bool `graphql:"success"`
		} `graphql:"commentCreate(input: $input)"`
	}

	vars := map[string]interface{}{
		"input": CommentCreateInput{IssueID: issueID, Body: body},
	}

	if err := c.gql.Mutate(ctx, &m, vars); err != nil {
		return c.classify(fmt.Errorf("failed to create comment: %w", err))
	}
	if !m.CommentCreate.Success {
		return fmt.Errorf("commentCreate reported failure")
	}
	return nil
}

// classify marks the error permanent when the last response was a client error
func (c *Client) classify(err error) error {
	if retry.PermanentStatus(c.transport.lastStatus) {
		return retry.Permanent(err)
	}
	return err
}
