package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/pkg/ai"
	"github.com/ticketflowai/ticketflow/pkg/extract"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/utils"
	"github.com/ticketflowai/ticketflow/websocket"
)

var ErrNoTextContent = errors.New("no text content extracted")

// IngestService runs the post-upload pipeline: extract text, generate draft
// tickets plus scope summary and clarifying questions, persist everything,
// and flip the document from UNPROCESSED to PROCESSED (or ERROR).
type IngestService struct {
	repos  *repositories.Repos
	gen    TicketGenerator
	notify StatusNotifier
	log    zerolog.Logger
}

func NewIngestService(repos *repositories.Repos, gen TicketGenerator, notify StatusNotifier, log zerolog.Logger) *IngestService {
	return &IngestService{repos: repos, gen: gen, notify: notify, log: log}
}

// Run processes one uploaded document. Safe to call on a document in any
// state: only UNPROCESSED documents are touched.
func (s *IngestService) Run(ctx context.Context, docID uint) {
	doc, err := s.repos.Document.FindByID(docID)
	if err != nil {
		s.log.Error().Err(err).Uint("document_id", docID).Msg("ingest: document lookup failed")
		return
	}
	if doc.JiraStatus != models.DocumentStatusUnprocessed {
		return
	}

	if err := s.process(ctx, doc); err != nil {
		s.log.Error().Err(err).Uint("document_id", docID).Msg("ingest: failed")
		s.markError(docID)
		return
	}

	s.log.Info().Uint("document_id", docID).Msg("ingest: document processed")
	s.notify.Broadcast(websocket.StatusEvent{DocumentID: docID, JiraStatus: models.DocumentStatusProcessed})
}

func (s *IngestService) process(ctx context.Context, doc *models.Document) error {
	data, err := utils.DownloadObject(ctx, doc.ObjectKey)
	if err != nil {
		return err
	}

	content, err := extract.Text(doc.FileName, data)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return ErrNoTextContent
	}

	drafts, err := s.gen.GenerateTickets(ctx, content)
	if err != nil {
		return err
	}
	summary, err := s.gen.GenerateSummary(ctx, content)
	if err != nil {
		return err
	}
	questions, err := s.gen.GenerateQuestions(ctx, content)
	if err != nil {
		return err
	}

	doc.Content = content
	doc.ScopeSummary = summary
	doc.ClarifyingQuestions = questions
	if err := s.repos.Document.Update(doc); err != nil {
		return err
	}

	if err := s.repos.Ticket.CreateBatch(draftsToTickets(doc.ID, drafts)); err != nil {
		return err
	}

	return s.repos.Document.TransitionStatus(doc.ID,
		models.DocumentStatusUnprocessed, models.DocumentStatusProcessed)
}

func (s *IngestService) markError(docID uint) {
	err := s.repos.Document.TransitionStatus(docID,
		models.DocumentStatusUnprocessed, models.DocumentStatusError)
	if err != nil {
		s.log.Error().Err(err).Uint("document_id", docID).Msg("ingest: could not mark document ERROR")
		return
	}
	s.notify.Broadcast(websocket.StatusEvent{DocumentID: docID, JiraStatus: models.DocumentStatusError})
}

func draftsToTickets(docID uint, drafts []ai.DraftTicket) []models.Ticket {
	tickets := make([]models.Ticket, 0, len(drafts))
	for _, d := range drafts {
		if strings.TrimSpace(d.Title) == "" {
			continue
		}
		priority := models.TicketPriority(strings.ToUpper(d.Priority))
		if !priority.Valid() {
			priority = models.TicketPriorityMedium
		}
		hours := models.Hours(d.EstimatedHours)
		if hours <= 0 || hours > models.MaxEstimateHours {
			hours = 0
		}
		tickets = append(tickets, models.Ticket{
			DocumentID:     docID,
			Title:          d.Title,
			Description:    d.Description,
			Priority:       priority,
			Status:         models.TicketStatusPending,
			EstimatedHours: hours,
		})
	}
	return tickets
}
