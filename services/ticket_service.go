package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ticketflowai/ticketflow/dto"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/repositories"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrInvalidField   = errors.New("invalid field value")
	ErrNoFields       = errors.New("no editable fields in request")
	ErrEditNotAllowed = errors.New("tickets can only be edited while the document is PROCESSED")
)

type TicketService struct {
	repos *repositories.Repos
}

func NewTicketService(repos *repositories.Repos) *TicketService {
	return &TicketService{repos: repos}
}

// UpdateFields applies a partial update to one ticket. Only title,
// description, priority and estimated_hours are writable; everything is
// validated before any column is touched, so a bad patch changes nothing.
func (s *TicketService) UpdateFields(id uint, input dto.UpdateTicketDTO) (*models.Ticket, error) {
	if input.Empty() {
		return nil, ErrNoFields
	}

	ticket, err := s.repos.Ticket.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}

	doc, err := s.repos.Document.FindByID(ticket.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.JiraStatus != models.DocumentStatusProcessed {
		return nil, ErrEditNotAllowed
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidField)
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Priority != nil {
		priority := models.TicketPriority(strings.ToUpper(*input.Priority))
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: priority %q", ErrInvalidField, *input.Priority)
		}
		fields["priority"] = priority
	}
	if input.EstimatedHours != nil {
		hours, err := models.ParseHours(*input.EstimatedHours)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidField, err)
		}
		fields["estimated_hours"] = float64(hours)
	}

	if err := s.repos.Ticket.UpdateFields(id, fields); err != nil {
		return nil, err
	}

	return s.repos.Ticket.FindByID(id)
}
