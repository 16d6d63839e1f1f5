package client

import "github.com/ticketflowai/ticketflow/models"

// Actions says which affordances a view may offer for a document in a given
// lifecycle state. The state itself is single-sourced at the server; this
// only interprets it.
type Actions struct {
	// CanEditTickets: ticket fields may be edited. Only while the document
	// is PROCESSED; a pushed document's tickets are frozen here.
	CanEditTickets bool
	// CanPush: a push may be attempted, given a complete project selection.
	CanPush bool
	// CanViewAsPushed: render the terminal success treatment.
	CanViewAsPushed bool
}

// AllowedActions gates UI affordances by document status. FAILED and ERROR
// are distinct server-reported causes but carry identical affordances.
func AllowedActions(status models.DocumentStatus) Actions {
	switch status {
	case models.DocumentStatusProcessed:
		return Actions{CanEditTickets: true, CanPush: true}
	case models.DocumentStatusPushed:
		return Actions{CanViewAsPushed: true}
	default:
		// UNPROCESSED, FAILED, ERROR: nothing but watching.
		return Actions{}
	}
}
