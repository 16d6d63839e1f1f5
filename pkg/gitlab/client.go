package gitlab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/config"
)

// Client talks to the GitLab v4 REST API: project listing for the selector
// dropdown and issue creation during a push.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

type Project struct {
	ID                int    `json:"id"`
	PathWithNamespace string `json:"path_with_namespace"`
}

type Issue struct {
	IID   int    `json:"iid"`
	Title string `json:"title"`
}

func NewClient(log zerolog.Logger) *Client {
	return &Client{
		baseURL: config.GitLabBaseURL,
		token:   config.GitLabToken,
		http:    &http.Client{Timeout: config.HTTPTimeout},
		log:     log,
	}
}

func (c *Client) apiURL(path string, q url.Values) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := base + "/api/v4" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) do(ctx context.Context, method, u string, body any, out any) error {
	if c.baseURL == "" {
		return errors.New("gitlab: empty baseURL")
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
		req.Header.Set("PRIVATE-TOKEN", c.token)

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
				apiErr := fmt.Errorf("gitlab api status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(b)))
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

// ListProjects returns projects the token's user is a member of.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	q := url.Values{}
	q.Set("membership", "true")
	q.Set("per_page", "100")
	var projects []Project
	if err := c.do(ctx, http.MethodGet, c.apiURL("/projects", q), nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// CreateIssue opens an issue in the given project. labels is a comma-joined
// GitLab label list.
func (c *Client) CreateIssue(ctx context.Context, projectID, title, description, labels string) (*Issue, error) {
	if projectID == "" {
		return nil, errors.New("gitlab: empty project id")
	}
	body := map[string]any{
		"title":       title,
		"description": description,
	}
	if labels != "" {
		body["labels"] = labels
	}
	var issue Issue
	path := "/projects/" + url.PathEscape(projectID) + "/issues"
	if err := c.do(ctx, http.MethodPost, c.apiURL(path, nil), body, &issue); err != nil {
		return nil, err
	}
	c.log.Debug().Int("iid", issue.IID).Msg("gitlab: issue created")
	return &issue, nil
}

// WithBaseURL is a test hook for pointing the client at a local server.
func (c *Client) WithBaseURL(raw string) *Client {
	c.baseURL = raw
	return c
}
