package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/ticketflowai/ticketflow/models"
)

func loadedView(t *testing.T, api *fakeAPI, id uint) *DocumentView {
	v := NewDocumentView(serve(t, api), id)
	if err := v.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return v
}

func TestUpdateFieldPatchThenRefetch(t *testing.T) {
	api := newFakeAPI(reviewableDoc(1))
	v := loadedView(t, api, 1)
	_, getBefore, _, _ := api.counts()

	if err := v.UpdateField(context.Background(), 1, FieldTitle, "Login page v2"); err != nil {
		t.Fatalf("update: %v", err)
	}

	_, getAfter, patches, _ := api.counts()
	if patches != 1 {
		t.Fatalf("expected one patch, got %d", patches)
	}
	if getAfter != getBefore+1 {
		t.Fatalf("expected exactly one re-fetch after patch, got %d", getAfter-getBefore)
	}

	doc := v.Document()
	if doc.Tickets[0].Title != "Login page v2" {
		t.Fatalf("expected new title shown, got %q", doc.Tickets[0].Title)
	}
	if len(doc.Tickets) != 2 || doc.Tickets[1].Title != "Session store" {
		t.Fatalf("expected the other ticket untouched, got %+v", doc.Tickets)
	}
}

func TestUpdateFieldRejectsUnknownField(t *testing.T) {
	api := newFakeAPI(reviewableDoc(1))
	v := loadedView(t, api, 1)

	err := v.UpdateField(context.Background(), 1, "status", "COMPLETED")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if _, _, patches, _ := api.counts(); patches != 0 {
		t.Fatal("unknown field must not reach the server")
	}
}

func TestUpdateFieldRejectsUnknownTicket(t *testing.T) {
	api := newFakeAPI(reviewableDoc(1))
	v := loadedView(t, api, 1)

	err := v.UpdateField(context.Background(), 999, FieldTitle, "x")
	if !errors.Is(err, ErrUnknownTicket) {
		t.Fatalf("expected ErrUnknownTicket, got %v", err)
	}
}

func TestUpdateFieldValidatesBeforeNetwork(t *testing.T) {
	api := newFakeAPI(reviewableDoc(1))
	v := loadedView(t, api, 1)

	for field, value := range map[string]string{
		FieldTitle:          "   ",
		FieldPriority:       "URGENT",
		FieldEstimatedHours: "soon",
	} {
		err := v.UpdateField(context.Background(), 1, field, value)
		var uf *UpdateFailure
		if !errors.As(err, &uf) {
			t.Fatalf("field %s: expected UpdateFailure, got %v", field, err)
		}
		if uf.Field != field {
			t.Fatalf("failure names field %s, want %s", uf.Field, field)
		}
	}
	if _, _, patches, _ := api.counts(); patches != 0 {
		t.Fatal("invalid values must not reach the server")
	}
}

func TestUpdateFieldBlockedOncePushed(t *testing.T) {
	doc := reviewableDoc(1)
	doc.JiraStatus = models.DocumentStatusPushed
	api := newFakeAPI(doc)
	v := loadedView(t, api, 1)

	err := v.UpdateField(context.Background(), 1, FieldTitle, "late edit")
	var uf *UpdateFailure
	if !errors.As(err, &uf) {
		t.Fatalf("expected UpdateFailure, got %v", err)
	}
	if _, _, patches, _ := api.counts(); patches != 0 {
		t.Fatal("edits on a pushed document must not reach the server")
	}
}

func TestUpdateFieldServerRejectionKeepsOldValue(t *testing.T) {
	api := newFakeAPI(reviewableDoc(1))
	v := loadedView(t, api, 1)
	api.mu.Lock()
	api.patchStatus = http.StatusBadRequest
	api.mu.Unlock()
	_, getBefore, _, _ := api.counts()

	err := v.UpdateField(context.Background(), 1, FieldTitle, "Rejected title")
	var uf *UpdateFailure
	if !errors.As(err, &uf) {
		t.Fatalf("expected UpdateFailure, got %v", err)
	}
	if uf.TicketID != 1 || uf.Field != FieldTitle {
		t.Fatalf("failure must name the ticket and field, got %+v", uf)
	}

	if v.Document().Tickets[0].Title != "Login page" {
		t.Fatalf("expected pre-edit value kept, got %q", v.Document().Tickets[0].Title)
	}
	if _, getAfter, _, _ := api.counts(); getAfter != getBefore {
		t.Fatal("failed write must not trigger a reload")
	}
}
