package client

import (
	"context"

	"github.com/google/uuid"
)

// Pushing reports whether a push is outstanding for this view. Views use it
// to disable the submit control; it is the only re-entrancy guard.
func (v *DocumentView) Pushing() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pushing
}

// Push runs the two-destination push as one opaque operation. Preconditions
// are checked before any network call: the document must be in a pushable
// state and both selection halves must be set. Whatever the outcome, the
// document is re-fetched afterwards so the view shows the authoritative
// post-push status, and the pushing flag is cleared.
//
// Each call is one logical attempt and carries a fresh idempotency key; the
// server uses it to de-duplicate a resubmitted attempt.
func (v *DocumentView) Push(ctx context.Context, sel ProjectSelection) error {
	if !sel.Complete() {
		return ErrSelectionIncomplete
	}

	v.mu.Lock()
	if v.doc == nil {
		v.mu.Unlock()
		return ErrNotLoaded
	}
	if v.pushing {
		v.mu.Unlock()
		return ErrPushInFlight
	}
	if !AllowedActions(v.doc.JiraStatus).CanPush {
		v.mu.Unlock()
		return ErrPushNotAllowed
	}
	v.pushing = true
	docID := v.id
	v.mu.Unlock()

	key := uuid.NewString()
	pushErr := v.client.PushDocument(ctx, docID, sel, key)

	// Re-fetch even on failure: the server may have moved the document to
	// FAILED while the call itself surfaced as an error.
	refreshErr := v.refresh(ctx)

	v.mu.Lock()
	v.pushing = false
	v.mu.Unlock()

	if pushErr != nil {
		return &PushFailure{DocumentID: docID, Err: pushErr}
	}
	return refreshErr
}
