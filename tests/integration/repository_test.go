package integration

import (
	"errors"
	"testing"

	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/repositories"
)

// The status transition guard is what makes concurrent pushes and the
// reconcile sweep safe, so it gets exercised against the real database.
func TestTransitionStatusGuard(t *testing.T) {
	repos := repositories.NewRepos()

	doc := &models.Document{
		FileName:   "guard.txt",
		ObjectKey:  "guard-object",
		JiraStatus: models.DocumentStatusUnprocessed,
	}
	if err := repos.Document.Create(doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := repos.Document.TransitionStatus(doc.ID,
		models.DocumentStatusUnprocessed, models.DocumentStatusProcessed)
	if err != nil {
		t.Fatalf("first transition: %v", err)
	}

	// same from-state again: the row moved on, so the guard refuses
	err = repos.Document.TransitionStatus(doc.ID,
		models.DocumentStatusUnprocessed, models.DocumentStatusError)
	if !errors.Is(err, repositories.ErrStatusConflict) {
		t.Fatalf("expected ErrStatusConflict, got %v", err)
	}

	got, err := repos.Document.FindByID(doc.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.JiraStatus != models.DocumentStatusProcessed {
		t.Fatalf("expected PROCESSED kept, got %s", got.JiraStatus)
	}
}

func TestDocumentsOrderedNewestFirst(t *testing.T) {
	repos := repositories.NewRepos()

	a := &models.Document{FileName: "a.txt", ObjectKey: "order-a", JiraStatus: models.DocumentStatusUnprocessed}
	b := &models.Document{FileName: "b.txt", ObjectKey: "order-b", JiraStatus: models.DocumentStatusUnprocessed}
	if err := repos.Document.Create(a); err != nil {
		t.Fatal(err)
	}
	if err := repos.Document.Create(b); err != nil {
		t.Fatal(err)
	}

	docs, err := repos.Document.FindAll()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	pos := map[uint]int{}
	for i, d := range docs {
		pos[d.ID] = i
	}
	if pos[b.ID] > pos[a.ID] {
		t.Fatal("expected the later upload listed before the earlier one")
	}
}
