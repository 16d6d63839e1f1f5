package jobs

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/config"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/websocket"
)

type notifier interface {
	Broadcast(event websocket.StatusEvent)
}

// Cron sweeps for documents whose ingestion never finished. A document that
// sits UNPROCESSED past the ingest timeout had its pipeline die mid-run
// (process restart, crash), so it is marked ERROR and clients are told.
type Cron struct {
	repos  *repositories.Repos
	notify notifier
	log    zerolog.Logger
	c      *cron.Cron
}

func NewCron(repos *repositories.Repos, notify notifier, log zerolog.Logger) (*Cron, error) {
	c := cron.New()
	cr := &Cron{repos: repos, notify: notify, log: log, c: c}
	if _, err := c.AddFunc(config.ReconcileCron, cr.reconcile); err != nil {
		return nil, fmt.Errorf("reconcile schedule %q: %w", config.ReconcileCron, err)
	}
	return cr, nil
}

func (cr *Cron) Start() { cr.c.Start() }
func (cr *Cron) Stop()  { cr.c.Stop() }

func (cr *Cron) reconcile() {
	cutoff := time.Now().Add(-config.IngestTimeout)
	docs, err := cr.repos.Document.FindStaleUnprocessed(cutoff)
	if err != nil {
		cr.log.Error().Err(err).Msg("reconcile: query failed")
		return
	}
	for _, doc := range docs {
		err := cr.repos.Document.TransitionStatus(doc.ID,
			models.DocumentStatusUnprocessed, models.DocumentStatusError)
		if err != nil {
			// someone else finished it first, nothing to do
			continue
		}
		cr.log.Warn().Uint("document_id", doc.ID).Msg("reconcile: stale ingestion marked ERROR")
		cr.notify.Broadcast(websocket.StatusEvent{DocumentID: doc.ID, JiraStatus: models.DocumentStatusError})
	}
}
