// Package client is the Go consumer of the ticketflow REST API: the listing
// browser, the per-document review view with its field editor and the
// two-destination push flow. All mutation goes through the server; after
// every write the owning document is re-fetched in full, so the caller never
// holds state that has drifted from the server's.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"

	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/response"
)

// Client is a bearer-credentialed HTTP client for the API. The zero value is
// not usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// SetToken installs a bearer credential for subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Logout drops the credential; the client is anonymous again.
func (c *Client) Logout() {
	c.SetToken("")
}

// Authenticated reports whether a credential is installed. Validity is the
// server's call; this only tracks presence.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Login exchanges credentials for a token and installs it.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	var out response.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return err
	}
	c.SetToken(out.Token)
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.mu.RUnlock()
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, out any) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}
	req, err := c.newRequest(ctx, method, path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return apiError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(resp *http.Response) error {
	var e response.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return fmt.Errorf("api status=%d: %s", resp.StatusCode, e.Error)
	}
	return fmt.Errorf("api status=%d", resp.StatusCode)
}

// ListDocuments fetches every document with its embedded tickets.
func (c *Client) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doJSON(ctx, http.MethodGet, "/documents/", nil, &docs); err != nil {
		return nil, err
	}
	for i := range docs {
		if !docs[i].JiraStatus.Valid() {
			return nil, fmt.Errorf("document %d has unknown status %q", docs[i].ID, docs[i].JiraStatus)
		}
	}
	return docs, nil
}

// GetDocument fetches one document with its embedded tickets.
func (c *Client) GetDocument(ctx context.Context, id uint) (*models.Document, error) {
	var doc models.Document
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/documents/%d/", id), nil, &doc); err != nil {
		return nil, err
	}
	if !doc.JiraStatus.Valid() {
		return nil, fmt.Errorf("document %d has unknown status %q", doc.ID, doc.JiraStatus)
	}
	return &doc, nil
}

// PatchTicket writes a subset of a ticket's editable fields.
func (c *Client) PatchTicket(ctx context.Context, id uint, fields map[string]string) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("/tickets/%d/", id), fields, nil)
}

// PushDocument triggers the combined Jira/GitLab push.
func (c *Client) PushDocument(ctx context.Context, id uint, sel ProjectSelection, idempotencyKey string) error {
	body := map[string]string{
		"project_key":       sel.ProjectKey,
		"gitlab_project_id": sel.GitLabProjectID,
	}
	if idempotencyKey != "" {
		body["idempotency_key"] = idempotencyKey
	}
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/documents/%d/push-to-jira/", id), body, nil)
}

// JiraProjects fetches the tracker project selector options.
func (c *Client) JiraProjects(ctx context.Context) ([]response.ProjectOption, error) {
	var options []response.ProjectOption
	err := c.doJSON(ctx, http.MethodGet, "/documents/jira-projects/", nil, &options)
	return options, err
}

// GitLabProjects fetches the source-control project selector options.
func (c *Client) GitLabProjects(ctx context.Context) ([]response.ProjectOption, error) {
	var options []response.ProjectOption
	err := c.doJSON(ctx, http.MethodGet, "/documents/gitlab-projects/", nil, &options)
	return options, err
}

// Upload sends a file and returns the new document's id. The document is
// UNPROCESSED at return; ingestion completes server-side.
func (c *Client) Upload(ctx context.Context, fileName string, content io.Reader) (uint, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return 0, err
	}
	if _, err := io.Copy(part, content); err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/documents/upload/", &buf)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, apiError(resp)
	}

	var out response.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, err
	}
	return out.ID, nil
}
