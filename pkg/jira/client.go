package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/config"
)

// Client is a minimal Jira Cloud REST client covering what the push flow
// needs: listing projects and creating Task issues.
type Client struct {
	baseURL string
	email   string
	token   string
	apiVer  string
	http    *http.Client
	log     zerolog.Logger
}

type Project struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: config.JiraBaseURL,
		email:   config.JiraEmail,
		token:   config.JiraAPIToken,
		apiVer:  config.JiraAPIVersion,
		http:    &http.Client{Timeout: config.HTTPTimeout},
		log:     log,
	}
}

func (c *Client) apiURL(path string) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + "/rest/api/" + c.apiVer + path
}

func (c *Client) do(ctx context.Context, method, u string, body any, out any) error {
	if c.baseURL == "" {
		return errors.New("jira: empty baseURL")
	}
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		payload = b
	}
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var r io.Reader
		if payload != nil {
			r = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, r)
		if err != nil {
			return err
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.SetBasicAuth(c.email, c.token)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
		} else {
			b, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				return readErr
			}
			if resp.StatusCode >= 300 {
				apiErr := fmt.Errorf("jira api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
				// retry on 429/5xx only
				if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
					lastErr = apiErr
				} else {
					return apiErr
				}
			} else {
				if out == nil {
					return nil
				}
				return json.Unmarshal(b, out)
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(300*(1<<attempt)) * time.Millisecond):
		}
	}
	return lastErr
}

// ListProjects returns all projects visible to the configured credential.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	if err := c.do(ctx, http.MethodGet, c.apiURL("/project"), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateIssue creates a Task in the given project and returns its key.
func (c *Client) CreateIssue(ctx context.Context, projectKey, summary, description string) (string, error) {
	if projectKey == "" {
		return "", errors.New("jira: empty project key")
	}
	body := map[string]any{
		"fields": map[string]any{
			"project":     map[string]string{"key": projectKey},
			"summary":     summary,
			"description": c.descriptionField(description),
			"issuetype":   map[string]string{"name": "Task"},
		},
	}
	var out struct {
		Key string `json:"key"`
	}
	if err := c.do(ctx, http.MethodPost, c.apiURL("/issue"), body, &out); err != nil {
		return "", err
	}
	c.log.Debug().Str("key", out.Key).Msg("jira: issue created")
	return out.Key, nil
}

// API v3 wants Atlassian Document Format for rich-text fields; v2 takes a
// plain string.
func (c *Client) descriptionField(text string) any {
	if c.apiVer == "2" {
		return text
	}
	return map[string]any{
		"type":    "doc",
		"version": 1,
		"content": []any{
			map[string]any{
				"type": "paragraph",
				"content": []any{
					map[string]any{"type": "text", "text": text},
				},
			},
		},
	}
}

// WithBaseURL is a test hook for pointing the client at a local server.
func (c *Client) WithBaseURL(raw string) *Client {
	c.baseURL = raw
	return c
}
