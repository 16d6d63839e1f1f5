package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/pkg/ai"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/repositories/mock_repositories"
	"github.com/ticketflowai/ticketflow/services"
	"github.com/ticketflowai/ticketflow/utils"
)

type fakeGenerator struct {
	drafts    []ai.DraftTicket
	summary   string
	questions string
	err       error
}

func (f *fakeGenerator) GenerateTickets(ctx context.Context, content string) ([]ai.DraftTicket, error) {
	return f.drafts, f.err
}

func (f *fakeGenerator) GenerateSummary(ctx context.Context, content string) (string, error) {
	return f.summary, f.err
}

func (f *fakeGenerator) GenerateQuestions(ctx context.Context, content string) (string, error) {
	return f.questions, f.err
}

func setupIngestMocks(t *testing.T, gen *fakeGenerator) (*services.IngestService,
	*mock_repositories.MockDocumentRepo,
	*mock_repositories.MockTicketRepo,
	*fakeNotifier) {

	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockDoc := mock_repositories.NewMockDocumentRepo(ctrl)
	mockTicket := mock_repositories.NewMockTicketRepo(ctrl)

	repos := &repositories.Repos{
		Document: mockDoc,
		Ticket:   mockTicket,
	}
	notifier := &fakeNotifier{}
	svc := services.NewIngestService(repos, gen, notifier, zerolog.Nop())
	return svc, mockDoc, mockTicket, notifier
}

func stubDownload(t *testing.T, data []byte, err error) {
	orig := utils.DownloadObject
	t.Cleanup(func() { utils.DownloadObject = orig })
	utils.DownloadObject = func(ctx context.Context, objectName string) ([]byte, error) {
		return data, err
	}
}

func TestIngestHappyPath(t *testing.T) {
	stubDownload(t, []byte("build a login page and a session store"), nil)
	gen := &fakeGenerator{
		drafts: []ai.DraftTicket{
			{Title: "Login page", Description: "UI", Priority: "high", EstimatedHours: 8},
			{Title: "Session store", Description: "server", Priority: "nonsense", EstimatedHours: -3},
			{Title: "   ", Description: "dropped"},
		},
		summary:   "auth work",
		questions: "1. Which IdP?",
	}
	svc, mockDoc, mockTicket, notifier := setupIngestMocks(t, gen)

	doc := &models.Document{ID: 4, FileName: "req.txt", ObjectKey: "k", JiraStatus: models.DocumentStatusUnprocessed}
	mockDoc.EXPECT().FindByID(uint(4)).Return(doc, nil)
	mockDoc.EXPECT().Update(gomock.Any()).DoAndReturn(func(d *models.Document) error {
		if d.ScopeSummary != "auth work" || d.ClarifyingQuestions != "1. Which IdP?" {
			t.Fatalf("expected AI output persisted, got %+v", d)
		}
		return nil
	})
	mockTicket.EXPECT().CreateBatch(gomock.Any()).DoAndReturn(func(tickets []models.Ticket) error {
		if len(tickets) != 2 {
			t.Fatalf("expected blank-title draft dropped, got %d tickets", len(tickets))
		}
		if tickets[0].Priority != models.TicketPriorityHigh {
			t.Fatalf("expected priority upper-cased, got %s", tickets[0].Priority)
		}
		if tickets[1].Priority != models.TicketPriorityMedium {
			t.Fatalf("expected unknown priority defaulted to MEDIUM, got %s", tickets[1].Priority)
		}
		if tickets[1].EstimatedHours != 0 {
			t.Fatalf("expected out-of-range hours zeroed, got %v", tickets[1].EstimatedHours)
		}
		if tickets[0].Status != models.TicketStatusPending {
			t.Fatalf("expected tickets created PENDING, got %s", tickets[0].Status)
		}
		return nil
	})
	mockDoc.EXPECT().TransitionStatus(uint(4),
		models.DocumentStatusUnprocessed, models.DocumentStatusProcessed).Return(nil)

	svc.Run(context.Background(), 4)

	events := notifier.Events()
	if len(events) != 1 || events[0].JiraStatus != models.DocumentStatusProcessed {
		t.Fatalf("expected one PROCESSED broadcast, got %+v", events)
	}
}

func TestIngestBlankContentMarksError(t *testing.T) {
	stubDownload(t, []byte("   \n\t  "), nil)
	svc, mockDoc, _, notifier := setupIngestMocks(t, &fakeGenerator{})

	doc := &models.Document{ID: 5, FileName: "empty.txt", ObjectKey: "k", JiraStatus: models.DocumentStatusUnprocessed}
	mockDoc.EXPECT().FindByID(uint(5)).Return(doc, nil)
	mockDoc.EXPECT().TransitionStatus(uint(5),
		models.DocumentStatusUnprocessed, models.DocumentStatusError).Return(nil)

	svc.Run(context.Background(), 5)

	events := notifier.Events()
	if len(events) != 1 || events[0].JiraStatus != models.DocumentStatusError {
		t.Fatalf("expected one ERROR broadcast, got %+v", events)
	}
}

func TestIngestGeneratorFailureMarksError(t *testing.T) {
	stubDownload(t, []byte("some requirements"), nil)
	svc, mockDoc, _, notifier := setupIngestMocks(t, &fakeGenerator{err: errors.New("model unavailable")})

	doc := &models.Document{ID: 6, FileName: "req.txt", ObjectKey: "k", JiraStatus: models.DocumentStatusUnprocessed}
	mockDoc.EXPECT().FindByID(uint(6)).Return(doc, nil)
	mockDoc.EXPECT().TransitionStatus(uint(6),
		models.DocumentStatusUnprocessed, models.DocumentStatusError).Return(nil)

	svc.Run(context.Background(), 6)

	events := notifier.Events()
	if len(events) != 1 || events[0].JiraStatus != models.DocumentStatusError {
		t.Fatalf("expected one ERROR broadcast, got %+v", events)
	}
}

func TestIngestSkipsNonUnprocessedDocument(t *testing.T) {
	svc, mockDoc, _, notifier := setupIngestMocks(t, &fakeGenerator{})

	doc := &models.Document{ID: 7, JiraStatus: models.DocumentStatusProcessed}
	mockDoc.EXPECT().FindByID(uint(7)).Return(doc, nil)

	svc.Run(context.Background(), 7)

	if len(notifier.Events()) != 0 {
		t.Fatal("expected no broadcast for already-processed document")
	}
}
