package client

import (
	"context"
	"sync"

	"github.com/ticketflowai/ticketflow/models"
)

// BrowserState distinguishes the four renderable situations of the listing
// view. Empty is first-class: zero documents gets an upload prompt, not a
// bare table.
type BrowserState int

const (
	BrowserIdle BrowserState = iota
	BrowserLoading
	BrowserReady
	BrowserEmpty
	BrowserError
)

// DocumentBrowser is the listing view model: an eager, fetched-once-per-
// activation collection of documents, plus pure view-state expansion
// toggles that never touch the network.
type DocumentBrowser struct {
	client *Client

	mu         sync.Mutex
	state      BrowserState
	docs       []models.Document
	err        error
	expanded   map[uint]bool
	generation uint64
}

func NewDocumentBrowser(c *Client) *DocumentBrowser {
	return &DocumentBrowser{
		client:   c,
		expanded: make(map[uint]bool),
	}
}

// Load fetches the full document list. A Load started after this one
// supersedes it: the earlier response is discarded when it arrives late, so
// a view that navigated away never shows stale rows.
func (b *DocumentBrowser) Load(ctx context.Context) error {
	b.mu.Lock()
	b.state = BrowserLoading
	b.generation++
	gen := b.generation
	b.mu.Unlock()

	docs, err := b.client.ListDocuments(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.generation {
		// superseded; the newer load owns the view now
		return nil
	}
	if err != nil {
		b.state = BrowserError
		b.err = &LoadFailure{Err: err}
		return b.err
	}
	b.docs = docs
	b.err = nil
	if len(docs) == 0 {
		b.state = BrowserEmpty
	} else {
		b.state = BrowserReady
	}
	return nil
}

// Reset abandons any in-flight load and clears the view, for navigation
// away from the listing.
func (b *DocumentBrowser) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.generation++
	b.state = BrowserIdle
	b.docs = nil
	b.err = nil
	b.expanded = make(map[uint]bool)
}

func (b *DocumentBrowser) State() BrowserState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *DocumentBrowser) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Documents returns the loaded rows.
func (b *DocumentBrowser) Documents() []models.Document {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Document, len(b.docs))
	copy(out, b.docs)
	return out
}

// Expand marks a document's row as expanded. View state only.
func (b *DocumentBrowser) Expand(id uint) {
	b.mu.Lock()
	b.expanded[id] = true
	b.mu.Unlock()
}

// Collapse folds a document's row.
func (b *DocumentBrowser) Collapse(id uint) {
	b.mu.Lock()
	delete(b.expanded, id)
	b.mu.Unlock()
}

func (b *DocumentBrowser) IsExpanded(id uint) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.expanded[id]
}
