package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/pkg/ai"
	"github.com/ticketflowai/ticketflow/pkg/gitlab"
	"github.com/ticketflowai/ticketflow/pkg/jira"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/websocket"
)

// TicketGenerator is the ingestion-side AI boundary.
type TicketGenerator interface {
	GenerateTickets(ctx context.Context, content string) ([]ai.DraftTicket, error)
	GenerateSummary(ctx context.Context, content string) (string, error)
	GenerateQuestions(ctx context.Context, content string) (string, error)
}

// JiraGateway is the issue-tracker half of a push.
type JiraGateway interface {
	ListProjects(ctx context.Context) ([]jira.Project, error)
	CreateIssue(ctx context.Context, projectKey, summary, description string) (string, error)
}

// GitLabGateway is the source-control half of a push.
type GitLabGateway interface {
	ListProjects(ctx context.Context) ([]gitlab.Project, error)
	CreateIssue(ctx context.Context, projectID, title, description, labels string) (*gitlab.Issue, error)
}

// StatusNotifier fans document lifecycle changes out to connected clients.
type StatusNotifier interface {
	Broadcast(event websocket.StatusEvent)
}

type Services struct {
	Document *DocumentService
	Ingest   *IngestService
	Ticket   *TicketService
	Push     *PushService
	Catalog  *CatalogService
	User     *UserService
}

func NewServices(repos *repositories.Repos, gen TicketGenerator, jiraGW JiraGateway, gitlabGW GitLabGateway, notify StatusNotifier, log zerolog.Logger) *Services {
	ingest := NewIngestService(repos, gen, notify, log)
	return &Services{
		Document: NewDocumentService(repos, ingest, log),
		Ingest:   ingest,
		Ticket:   NewTicketService(repos),
		Push:     NewPushService(repos, jiraGW, gitlabGW, notify, log),
		Catalog:  NewCatalogService(jiraGW, gitlabGW),
		User:     NewUserService(repos),
	}
}
