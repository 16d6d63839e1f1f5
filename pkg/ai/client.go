package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/config"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

// DraftTicket is one extracted ticket before persistence.
type DraftTicket struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// Client generates draft tickets, a scope summary and clarifying questions
// from extracted document text via the OpenAI chat completions API.
type Client struct {
	key     string
	model   string
	url     string
	prompts Prompts
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(log zerolog.Logger) (*Client, error) {
	prompts, err := LoadPrompts(config.PromptsFile)
	if err != nil {
		return nil, fmt.Errorf("ai: loading prompts: %w", err)
	}
	return &Client{
		key:     config.OpenAIKey,
		model:   config.OpenAIModel,
		url:     completionsURL,
		prompts: prompts,
		http:    &http.Client{Timeout: config.OpenAITimeout},
		log:     log,
	}, nil
}

func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	if strings.TrimSpace(c.key) == "" {
		return "", errors.New("openai: missing key")
	}
	body := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.2,
	}
	b, _ := json.Marshal(body)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai status=%d", resp.StatusCode)
	}
	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("openai: no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// GenerateTickets extracts draft tickets from document text.
func (c *Client) GenerateTickets(ctx context.Context, content string) ([]DraftTicket, error) {
	raw, err := c.complete(ctx, c.prompts.Tickets, content)
	if err != nil {
		return nil, err
	}
	raw = stripFences(raw)
	var tickets []DraftTicket
	if err := json.Unmarshal([]byte(raw), &tickets); err != nil {
		return nil, fmt.Errorf("openai: malformed ticket payload: %w", err)
	}
	return tickets, nil
}

// GenerateSummary produces the scope summary for a document.
func (c *Client) GenerateSummary(ctx context.Context, content string) (string, error) {
	return c.complete(ctx, c.prompts.Summary, content)
}

// GenerateQuestions produces clarifying questions for a document.
func (c *Client) GenerateQuestions(ctx context.Context, content string) (string, error) {
	return c.complete(ctx, c.prompts.Questions, content)
}

// Models sometimes wrap JSON answers in markdown code fences despite the
// prompt saying not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// WithURL is a test hook for pointing the client at a local server.
func (c *Client) WithURL(u string) *Client {
	c.url = u
	return c
}
