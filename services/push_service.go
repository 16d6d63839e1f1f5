package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/dto"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/websocket"
	"gorm.io/datatypes"
)

var (
	ErrSelectionIncomplete  = errors.New("both a Jira project and a GitLab project must be selected")
	ErrPushNotAllowed       = errors.New("document must be PROCESSED before pushing")
	ErrPushPreviouslyFailed = errors.New("a push with this idempotency key already failed")
)

// PushService runs the two-destination push: every ticket becomes one Jira
// issue and one GitLab issue. Progress is persisted on a PushAttempt after
// each half so an operator can see how far a failed push got; the document
// itself only ever ends up PUSHED or FAILED.
type PushService struct {
	repos  *repositories.Repos
	jira   JiraGateway
	gitlab GitLabGateway
	notify StatusNotifier
	log    zerolog.Logger
}

func NewPushService(repos *repositories.Repos, jiraGW JiraGateway, gitlabGW GitLabGateway, notify StatusNotifier, log zerolog.Logger) *PushService {
	return &PushService{repos: repos, jira: jiraGW, gitlab: gitlabGW, notify: notify, log: log}
}

// Push pushes all tickets of a PROCESSED document. A repeated call with the
// same idempotency key replays the recorded outcome instead of creating
// duplicate external issues.
func (s *PushService) Push(ctx context.Context, docID uint, input dto.PushDTO) (*models.PushAttempt, error) {
	if strings.TrimSpace(input.ProjectKey) == "" || strings.TrimSpace(input.GitLabProjectID) == "" {
		return nil, ErrSelectionIncomplete
	}

	doc, err := s.repos.Document.FindByID(docID)
	if err != nil {
		return nil, ErrDocumentNotFound
	}

	// Replay has to win over the status gate: after a real attempt the
	// document is PUSHED or FAILED, and a client retrying a lost response
	// must still get the recorded outcome back.
	if input.IdempotencyKey != "" {
		if prior, err := s.repos.Push.FindByKey(input.IdempotencyKey); err == nil && prior.DocumentID == docID {
			return s.replay(prior)
		}
	}

	if doc.JiraStatus != models.DocumentStatusProcessed {
		return nil, ErrPushNotAllowed
	}

	attempt := &models.PushAttempt{
		DocumentID:      docID,
		JiraProjectKey:  input.ProjectKey,
		GitLabProjectID: input.GitLabProjectID,
		State:           models.PushStatePending,
	}
	if input.IdempotencyKey != "" {
		attempt.IdempotencyKey = &input.IdempotencyKey
	}
	if err := s.repos.Push.Create(attempt); err != nil {
		return nil, err
	}

	detail := models.PushDetail{}

	// First half: one Jira Task per ticket.
	for _, ticket := range doc.Tickets {
		key, err := s.jira.CreateIssue(ctx, input.ProjectKey, ticket.Title, ticket.Description)
		if err != nil {
			return s.fail(attempt, doc, detail, fmt.Errorf("jira: %w", err))
		}
		detail.JiraIssues = append(detail.JiraIssues, key)
	}
	s.record(attempt, models.PushStateJiraDone, detail)

	// Second half: matching GitLab issues, cross-referencing the Jira keys.
	for i, ticket := range doc.Tickets {
		description := ticket.Description
		if i < len(detail.JiraIssues) {
			description = fmt.Sprintf("%s\n\nJira Reference: %s", ticket.Description, detail.JiraIssues[i])
		}
		issue, err := s.gitlab.CreateIssue(ctx, input.GitLabProjectID, ticket.Title, description, strings.ToLower(string(ticket.Priority)))
		if err != nil {
			return s.fail(attempt, doc, detail, fmt.Errorf("gitlab: %w", err))
		}
		detail.GitLabIssues = append(detail.GitLabIssues, issue.IID)
	}
	s.record(attempt, models.PushStateCompleted, detail)

	if err := s.repos.Document.TransitionStatus(docID,
		models.DocumentStatusProcessed, models.DocumentStatusPushed); err != nil {
		s.log.Error().Err(err).Uint("document_id", docID).Msg("push: status transition failed after push")
		return attempt, err
	}
	s.notify.Broadcast(websocket.StatusEvent{DocumentID: docID, JiraStatus: models.DocumentStatusPushed})
	s.log.Info().
		Uint("document_id", docID).
		Int("tickets", len(doc.Tickets)).
		Str("jira_project", input.ProjectKey).
		Str("gitlab_project", input.GitLabProjectID).
		Msg("push: completed")

	return attempt, nil
}

func (s *PushService) replay(prior *models.PushAttempt) (*models.PushAttempt, error) {
	if prior.State == models.PushStateCompleted {
		return prior, nil
	}
	return prior, ErrPushPreviouslyFailed
}

func (s *PushService) record(attempt *models.PushAttempt, state models.PushState, detail models.PushDetail) {
	attempt.State = state
	if raw, err := json.Marshal(detail); err == nil {
		attempt.Detail = datatypes.JSON(raw)
	}
	if err := s.repos.Push.Update(attempt); err != nil {
		s.log.Error().Err(err).Uint("attempt_id", attempt.ID).Msg("push: could not persist attempt state")
	}
}

func (s *PushService) fail(attempt *models.PushAttempt, doc *models.Document, detail models.PushDetail, cause error) (*models.PushAttempt, error) {
	detail.Error = cause.Error()
	s.record(attempt, models.PushStateFailed, detail)

	if err := s.repos.Document.TransitionStatus(doc.ID,
		models.DocumentStatusProcessed, models.DocumentStatusFailed); err != nil {
		s.log.Error().Err(err).Uint("document_id", doc.ID).Msg("push: could not mark document FAILED")
	} else {
		s.notify.Broadcast(websocket.StatusEvent{DocumentID: doc.ID, JiraStatus: models.DocumentStatusFailed})
	}

	s.log.Error().Err(cause).
		Uint("document_id", doc.ID).
		Int("jira_created", len(detail.JiraIssues)).
		Int("gitlab_created", len(detail.GitLabIssues)).
		Msg("push: failed")

	return attempt, cause
}
