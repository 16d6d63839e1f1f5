package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/utils"
	"gorm.io/gorm"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentService struct {
	repos  *repositories.Repos
	ingest *IngestService
	log    zerolog.Logger
}

func NewDocumentService(repos *repositories.Repos, ingest *IngestService, log zerolog.Logger) *DocumentService {
	return &DocumentService{repos: repos, ingest: ingest, log: log}
}

func (s *DocumentService) List() ([]models.Document, error) {
	return s.repos.Document.FindAll()
}

func (s *DocumentService) Get(id uint) (*models.Document, error) {
	doc, err := s.repos.Document.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Upload stores the raw file, creates the UNPROCESSED document row and kicks
// off ingestion in the background. The caller gets the row back immediately;
// the PROCESSED/ERROR outcome arrives later via re-fetch or the status
// websocket.
func (s *DocumentService) Upload(ctx context.Context, fileName, contentType string, data []byte) (*models.Document, error) {
	objectKey := uuid.NewString() + filepath.Ext(fileName)

	if err := utils.UploadObject(ctx, objectKey, contentType, bytes.NewReader(data), int64(len(data))); err != nil {
		return nil, err
	}

	doc := &models.Document{
		FileName:    fileName,
		ObjectKey:   objectKey,
		ContentType: contentType,
		JiraStatus:  models.DocumentStatusUnprocessed,
	}
	if err := s.repos.Document.Create(doc); err != nil {
		_ = utils.DeleteObject(ctx, objectKey)
		return nil, err
	}

	s.log.Info().Uint("document_id", doc.ID).Str("file", fileName).Msg("document uploaded")
	go s.ingest.Run(context.Background(), doc.ID)

	return doc, nil
}

// View streams the stored blob for display.
func (s *DocumentService) View(ctx context.Context, id uint) (io.ReadCloser, int64, string, error) {
	doc, err := s.Get(id)
	if err != nil {
		return nil, 0, "", err
	}
	reader, size, err := utils.OpenObject(ctx, doc.ObjectKey)
	if err != nil {
		return nil, 0, "", err
	}
	return reader, size, doc.ContentType, nil
}
