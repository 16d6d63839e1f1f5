package client

import "errors"

var (
	// ErrPushInFlight: a push for this document is already outstanding.
	ErrPushInFlight = errors.New("push already in progress")
	// ErrSelectionIncomplete: one or both project selections are empty.
	ErrSelectionIncomplete = errors.New("both project selections are required")
	// ErrPushNotAllowed: the document is not in a pushable state.
	ErrPushNotAllowed = errors.New("document is not in a pushable state")
	// ErrUnknownField: the field is not one of the editable four.
	ErrUnknownField = errors.New("field is not editable")
	// ErrUnknownTicket: the ticket is not part of the loaded document.
	ErrUnknownTicket = errors.New("ticket does not belong to the loaded document")
	// ErrNotLoaded: the view has no document yet.
	ErrNotLoaded = errors.New("document not loaded")
)

// LoadFailure: a listing or detail fetch failed. Page-level, recoverable by
// reloading.
type LoadFailure struct{ Err error }

func (e *LoadFailure) Error() string { return "load failed: " + e.Err.Error() }
func (e *LoadFailure) Unwrap() error { return e.Err }

// UpdateFailure: a field patch failed. The displayed value is unchanged and
// no reload happened.
type UpdateFailure struct {
	TicketID uint
	Field    string
	Err      error
}

func (e *UpdateFailure) Error() string { return "update failed: " + e.Err.Error() }
func (e *UpdateFailure) Unwrap() error { return e.Err }

// PushFailure: the push call failed or returned non-success. The document
// has been re-fetched, so the view already shows the authoritative
// post-failure state.
type PushFailure struct {
	DocumentID uint
	Err        error
}

func (e *PushFailure) Error() string { return "push failed: " + e.Err.Error() }
func (e *PushFailure) Unwrap() error { return e.Err }
