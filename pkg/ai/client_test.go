package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func completionServer(t *testing.T, reply string) *Client {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Fatal("expected bearer key")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": reply}},
			},
		})
	}))
	t.Cleanup(srv.Close)

	return (&Client{
		key:     "test-key",
		model:   "gpt-4o-mini",
		prompts: DefaultPrompts(),
		http:    srv.Client(),
		log:     zerolog.Nop(),
	}).WithURL(srv.URL)
}

func TestGenerateTickets(t *testing.T) {
	c := completionServer(t, `[{"title":"Login page","description":"UI","priority":"HIGH","estimated_hours":8}]`)

	tickets, err := c.GenerateTickets(context.Background(), "build a login page")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(tickets) != 1 || tickets[0].Title != "Login page" || tickets[0].EstimatedHours != 8 {
		t.Fatalf("unexpected tickets: %+v", tickets)
	}
}

func TestGenerateTicketsStripsCodeFences(t *testing.T) {
	c := completionServer(t, "```json\n[{\"title\":\"t\",\"priority\":\"LOW\"}]\n```")

	tickets, err := c.GenerateTickets(context.Background(), "doc")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(tickets) != 1 || tickets[0].Title != "t" {
		t.Fatalf("unexpected tickets: %+v", tickets)
	}
}

func TestGenerateTicketsMalformedPayload(t *testing.T) {
	c := completionServer(t, "I could not find any tickets, sorry.")

	if _, err := c.GenerateTickets(context.Background(), "doc"); err == nil {
		t.Fatal("expected error for non-JSON reply")
	}
}

func TestGenerateSummaryPassesTextThrough(t *testing.T) {
	c := completionServer(t, "An auth system for the support team.")

	summary, err := c.GenerateSummary(context.Background(), "doc")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if summary != "An auth system for the support team." {
		t.Fatalf("unexpected summary: %q", summary)
	}
}

func TestCompleteRequiresKey(t *testing.T) {
	c := &Client{prompts: DefaultPrompts(), http: http.DefaultClient, log: zerolog.Nop()}
	if _, err := c.GenerateSummary(context.Background(), "doc"); err == nil {
		t.Fatal("expected error without an API key")
	}
}

func TestLoadPromptsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	if err := os.WriteFile(path, []byte("summary: Custom summary prompt.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPrompts(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Summary != "Custom summary prompt." {
		t.Fatalf("expected override applied, got %q", p.Summary)
	}
	if p.Tickets != DefaultPrompts().Tickets {
		t.Fatal("expected unset prompts to keep defaults")
	}
}

func TestLoadPromptsEmptyPathUsesDefaults(t *testing.T) {
	p, err := LoadPrompts("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p != DefaultPrompts() {
		t.Fatal("expected defaults")
	}
}
