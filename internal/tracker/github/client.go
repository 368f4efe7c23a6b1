// Package github implements the tracker gateway on GitHub issues.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"

	"github.com/similigh/transcript-triage/internal/retry"
	"github.com/similigh/transcript-triage/internal/tracker"
	"github.com/similigh/transcript-triage/pkg/models"
)

const perPage = 100

// Options configures the GitHub client
type Options struct {
	Repo   string // owner/repo
	Token  string // falls back to gh auth when empty
	Labels tracker.LabelMap

	// Transport overrides the HTTP transport
	Transport http.RoundTripper
}

// Client wraps GitHub issue operations for one repository
type Client struct {
	rest   *api.RESTClient
	owner  string
	repo   string
	labels tracker.LabelMap
}

// New creates a new GitHub client
func New(opts Options) (*Client, error) {
	owner, repo, err := ParseRepo(opts.Repo)
	if err != nil {
		return nil, err
	}

	var rest *api.RESTClient
	if opts.Token == "" && opts.Transport == nil {
		rest, err = api.DefaultRESTClient()
	} else {
		rest, err = api.NewRESTClient(api.ClientOptions{
			AuthToken: opts.Token,
			Host:      "github.com",
			Transport: opts.Transport,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create REST client: %w", err)
	}

	return &Client{
		rest:   rest,
		owner:  owner,
		repo:   repo,
		labels: opts.Labels,
	}, nil
}

// ParseRepo splits "owner/repo" into owner and repo
func ParseRepo(fullRepo string) (string, string, error) {
	parts := strings.Split(fullRepo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repo format: %s (expected owner/repo)", fullRepo)
	}
	return parts[0], parts[1], nil
}

// Issue represents a GitHub issue from the API
type Issue struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	State       string    `json:"state"`
	HTMLURL     string    `json:"html_url"`
	Labels      []Label   `json:"labels"`
	PullRequest *struct{} `json:"pull_request,omitempty"`
}

// Label represents a GitHub label
type Label struct {
	Name string `json:"name"`
}

// ToModel converts an API issue to models.Issue
func (i *Issue) ToModel(labels tracker.LabelMap) models.Issue {
	names := make([]string, len(i.Labels))
	for j, l := range i.Labels {
		names[j] = l.Name
	}

	issue := models.Issue{
		ID:          strconv.Itoa(i.Number),
		Identifier:  "#" + strconv.Itoa(i.Number),
		Title:       i.Title,
		Description: i.Body,
		State:       i.State,
		URL:         i.HTMLURL,
	}
	if cat, ok := labels.Category(names...); ok {
		issue.Category = cat
	}
	return issue
}

// isPullRequest reports whether the /issues entry is a pull request
func (i *Issue) isPullRequest() bool {
	return i.PullRequest != nil
}

// ListIssues fetches all open issues, skipping pull requests
func (c *Client) ListIssues(ctx context.Context) ([]models.Issue, error) {
	var issues []models.Issue
	page := 1

	for {
		params := url.Values{}
		params.Set("state", "open")
		params.Set("per_page", strconv.Itoa(perPage))
		params.Set("page", strconv.Itoa(page))
		params.Set("sort", "created")
		params.Set("direction", "asc")

		endpoint := fmt.Sprintf("repos/%s/%s/issues?%s", c.owner, c.repo, params.Encode())

		var apiIssues []Issue
		if err := c.rest.DoWithContext(ctx, http.MethodGet, endpoint, nil, &apiIssues); err != nil {
			return nil, classify(fmt.Errorf("failed to list issues: %w", err))
		}

		for _, ai := range apiIssues {
			if ai.isPullRequest() {
				continue
			}
			issues = append(issues, ai.ToModel(c.labels))
		}

		if len(apiIssues) < perPage {
			break
		}
		page++
	}

	slog.Debug("listed GitHub issues", "repo", c.owner+"/"+c.repo, "count", len(issues))
	return issues, nil
}

// CreateIssue opens a new issue with the category label
func (c *Client) CreateIssue(ctx context.Context, category models.Category, title, description string) (models.Issue, error) {
	label, ok := c.labels.Label(category)
	if !ok {
		return models.Issue{}, retry.Permanent(fmt.Errorf("no label configured for category %q", category))
	}

	payload := map[string]interface{}{
		"title":  title,
		"body":   description,
		"labels": []string{label},
	}
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return models.Issue{}, err
	}

	endpoint := fmt.Sprintf("repos/%s/%s/issues", c.owner, c.repo)

	var created Issue
	if err := c.rest.DoWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody), &created); err != nil {
		return models.Issue{}, classify(fmt.Errorf("failed to create issue: %w", err))
	}

	issue := created.ToModel(c.labels)
	issue.Category = category
	return issue, nil
}

// Comment adds a comment to the issue with the given number
func (c *Client) Comment(ctx context.Context, issueID, body string) error {
	number, err := strconv.Atoi(strings.TrimPrefix(issueID, "#"))
	if err != nil {
		return retry.Permanent(fmt.Errorf("invalid issue number %q", issueID))
	}

	jsonBody, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("repos/%s/%s/issues/%d/comments", c.owner, c.repo, number)
	if err := c.rest.DoWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonBody), nil); err != nil {
		return classify(fmt.Errorf("failed to post comment: %w", err))
	}

	return nil
}

// classify marks client errors other than rate limiting as permanent
func classify(err error) error {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) && retry.PermanentStatus(httpErr.StatusCode) {
		return retry.Permanent(err)
	}
	return err
}
