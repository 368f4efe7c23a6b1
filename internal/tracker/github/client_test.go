package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/similigh/transcript-triage/internal/retry"
	"github.com/similigh/transcript-triage/internal/tracker"
	"github.com/similigh/transcript-triage/pkg/models"
)

// redirectTransport sends every request to the test server
type redirectTransport struct {
	target *url.URL
}

func (t *redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	target, _ := url.Parse(srv.URL)
	c, err := New(Options{
		Repo:      "acme/app",
		Token:     "ghp_test",
		Labels:    tracker.LabelMap{Bug: "bug", Feature: "enhancement"},
		Transport: &redirectTransport{target: target},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestParseRepo(t *testing.T) {
	tests := []struct {
		in      string
		owner   string
		repo    string
		wantErr bool
	}{
		{"acme/app", "acme", "app", false},
		{"acme", "", "", true},
		{"acme/app/extra", "", "", true},
		{"/app", "", "", true},
	}

	for _, tt := range tests {
		owner, repo, err := ParseRepo(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRepo(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if owner != tt.owner || repo != tt.repo {
			t.Errorf("ParseRepo(%q) = %q, %q", tt.in, owner, repo)
		}
	}
}

func TestListIssues(t *testing.T) {
	var pages []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/app/issues" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("state") != "open" {
			t.Errorf("state = %s, want open", r.URL.Query().Get("state"))
		}
		pages = append(pages, r.URL.Query().Get("page"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"number": 1, "title": "Crash", "body": "App crashes", "state": "open", "labels": [{"name": "bug"}]},
			{"number": 2, "title": "Fix crash", "body": "PR", "state": "open", "labels": [{"name": "bug"}], "pull_request": {"url": "x"}},
			{"number": 3, "title": "Dark mode", "body": "Please", "state": "open", "labels": [{"name": "ui"}, {"name": "enhancement"}]},
			{"number": 4, "title": "Question", "body": "How?", "state": "open", "labels": []}
		]`)
	}))

	issues, err := c.ListIssues(context.Background())
	if err != nil {
		t.Fatalf("ListIssues() error = %v", err)
	}
	if len(pages) != 1 {
		t.Errorf("pages fetched = %v, want 1", pages)
	}
	if len(issues) != 3 {
		t.Fatalf("len(issues) = %d, want 3 (pull request skipped)", len(issues))
	}
	if issues[0].ID != "1" || issues[0].Category != models.CategoryBug || issues[0].DisplayID() != "#1" {
		t.Errorf("issues[0] = %+v", issues[0])
	}
	if issues[1].Category != models.CategoryFeature {
		t.Errorf("issues[1].Category = %q, want feature", issues[1].Category)
	}
	if issues[2].Category != "" {
		t.Errorf("unlabelled issue has category %q", issues[2].Category)
	}
}

func TestCreateIssue(t *testing.T) {
	var payload map[string]interface{}
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/repos/acme/app/issues" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"number": 42, "title": "Dark mode", "body": "Please", "state": "open", "html_url": "https://github.com/acme/app/issues/42", "labels": [{"name": "enhancement"}]}`)
	}))

	issue, err := c.CreateIssue(context.Background(), models.CategoryFeature, "Dark mode", "Please")
	if err != nil {
		t.Fatalf("CreateIssue() error = %v", err)
	}
	if issue.ID != "42" || issue.Category != models.CategoryFeature {
		t.Errorf("issue = %+v", issue)
	}
	labels, _ := payload["labels"].([]interface{})
	if len(labels) != 1 || labels[0] != "enhancement" {
		t.Errorf("labels = %v", payload["labels"])
	}
}

func TestComment(t *testing.T) {
	var body map[string]string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/acme/app/issues/7/comments" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{}`)
	}))

	if err := c.Comment(context.Background(), "7", "me too"); err != nil {
		t.Fatalf("Comment() error = %v", err)
	}
	if body["body"] != "me too" {
		t.Errorf("body = %v", body)
	}
}

func TestComment_InvalidNumber(t *testing.T) {
	c := newTestClient(t, http.NotFoundHandler())

	if err := c.Comment(context.Background(), "abc", "x"); !retry.IsPermanent(err) {
		t.Errorf("error = %v, want permanent", err)
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status    int
		permanent bool
	}{
		{http.StatusNotFound, true},
		{http.StatusUnprocessableEntity, true},
		{http.StatusTooManyRequests, false},
		{http.StatusBadGateway, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"message": "nope"}`)
			}))

			err := c.Comment(context.Background(), "1", "x")
			if err == nil {
				t.Fatal("expected error")
			}
			if retry.IsPermanent(err) != tt.permanent {
				t.Errorf("permanent = %v, want %v (%v)", retry.IsPermanent(err), tt.permanent, err)
			}
		})
	}
}
