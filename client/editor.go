package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/ticketflowai/ticketflow/models"
)

// The four fields a reviewer may edit. Ticket status is server-owned and
// absent on purpose.
const (
	FieldTitle          = "title"
	FieldDescription    = "description"
	FieldPriority       = "priority"
	FieldEstimatedHours = "estimated_hours"
)

func editableField(name string) bool {
	switch name {
	case FieldTitle, FieldDescription, FieldPriority, FieldEstimatedHours:
		return true
	}
	return false
}

// UpdateField is the edit buffer: it writes exactly one field of one ticket,
// then re-fetches the whole document so every derived value (including the
// server-owned ticket status) is consistent again. If the write fails, no
// reload happens and the view keeps showing the pre-edit value.
func (v *DocumentView) UpdateField(ctx context.Context, ticketID uint, field, value string) error {
	if !editableField(field) {
		return &UpdateFailure{TicketID: ticketID, Field: field, Err: ErrUnknownField}
	}

	v.mu.Lock()
	if v.doc == nil {
		v.mu.Unlock()
		return &UpdateFailure{TicketID: ticketID, Field: field, Err: ErrNotLoaded}
	}
	if !v.ticketLoaded(ticketID) {
		v.mu.Unlock()
		return &UpdateFailure{TicketID: ticketID, Field: field, Err: ErrUnknownTicket}
	}
	if !AllowedActions(v.doc.JiraStatus).CanEditTickets {
		v.mu.Unlock()
		return &UpdateFailure{TicketID: ticketID, Field: field, Err: fmt.Errorf("editing not allowed in state %s", v.doc.JiraStatus)}
	}
	v.mu.Unlock()

	if err := validateFieldValue(field, value); err != nil {
		return &UpdateFailure{TicketID: ticketID, Field: field, Err: err}
	}

	if err := v.client.PatchTicket(ctx, ticketID, map[string]string{field: value}); err != nil {
		return &UpdateFailure{TicketID: ticketID, Field: field, Err: err}
	}

	// Write succeeded; the reload observes a server state at least as new
	// as the patch because both run on this call, strictly sequenced.
	return v.refresh(ctx)
}

// caller holds v.mu
func (v *DocumentView) ticketLoaded(ticketID uint) bool {
	for _, t := range v.doc.Tickets {
		if t.ID == ticketID {
			return true
		}
	}
	return false
}

// validateFieldValue rejects bad input before it costs a round trip.
// Estimated hours must be numeric here, not just at the server.
func validateFieldValue(field, value string) error {
	switch field {
	case FieldTitle:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("title must not be empty")
		}
	case FieldPriority:
		if !models.TicketPriority(strings.ToUpper(value)).Valid() {
			return fmt.Errorf("invalid priority %q", value)
		}
	case FieldEstimatedHours:
		if _, err := models.ParseHours(value); err != nil {
			return err
		}
	}
	return nil
}
