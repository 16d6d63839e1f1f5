package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/config"
)

func testClient(t *testing.T, h http.Handler) *Client {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	config.JiraAPIVersion = "3"
	return NewClient(zerolog.Nop()).WithBaseURL(srv.URL)
}

func TestListProjects(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/project" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if _, _, ok := r.BasicAuth(); !ok {
			t.Fatal("expected basic auth")
		}
		json.NewEncoder(w).Encode([]Project{{Key: "PROJ", Name: "Project"}})
	}))

	projects, err := c.ListProjects(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 1 || projects[0].Key != "PROJ" {
		t.Fatalf("unexpected projects: %+v", projects)
	}
}

func TestCreateIssueSendsADFDescription(t *testing.T) {
	var payload map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/3/issue" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"key": "PROJ-7"})
	}))

	key, err := c.CreateIssue(context.Background(), "PROJ", "Login page", "build it")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if key != "PROJ-7" {
		t.Fatalf("expected PROJ-7, got %s", key)
	}

	fields := payload["fields"].(map[string]any)
	if fields["summary"] != "Login page" {
		t.Fatalf("unexpected summary: %v", fields["summary"])
	}
	if fields["issuetype"].(map[string]any)["name"] != "Task" {
		t.Fatalf("expected Task issue type, got %v", fields["issuetype"])
	}
	desc, ok := fields["description"].(map[string]any)
	if !ok || desc["type"] != "doc" {
		t.Fatalf("v3 description should be ADF, got %v", fields["description"])
	}
}

func TestCreateIssueV2PlainDescription(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/rest/api/2/") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&payload)
		json.NewEncoder(w).Encode(map[string]string{"key": "OLD-1"})
	}))
	t.Cleanup(srv.Close)
	config.JiraAPIVersion = "2"
	t.Cleanup(func() { config.JiraAPIVersion = "3" })
	c := NewClient(zerolog.Nop()).WithBaseURL(srv.URL)

	if _, err := c.CreateIssue(context.Background(), "OLD", "t", "plain text"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if payload["fields"].(map[string]any)["description"] != "plain text" {
		t.Fatal("v2 description should be a plain string")
	}
}

func TestRetriesServerErrors(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]Project{})
	}))

	if _, err := c.ListProjects(context.Background()); err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	calls := 0
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))

	if _, err := c.ListProjects(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Fatalf("400 must not be retried, got %d calls", calls)
	}
}

func TestCreateIssueRequiresProjectKey(t *testing.T) {
	config.JiraAPIVersion = "3"
	c := NewClient(zerolog.Nop())
	if _, err := c.CreateIssue(context.Background(), "", "t", "d"); err == nil {
		t.Fatal("expected error for empty project key")
	}
}
