package services_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/repositories"
	"github.com/ticketflowai/ticketflow/repositories/mock_repositories"
	"github.com/ticketflowai/ticketflow/services"
	"github.com/ticketflowai/ticketflow/utils"
	"gorm.io/gorm"
)

func setupDocumentMocks(t *testing.T) (*services.DocumentService, *mock_repositories.MockDocumentRepo) {
	ctrl := gomock.NewController(t)
	t.Cleanup(func() { ctrl.Finish() })

	mockDoc := mock_repositories.NewMockDocumentRepo(ctrl)
	repos := &repositories.Repos{Document: mockDoc}

	ingest := services.NewIngestService(repos, &fakeGenerator{}, &fakeNotifier{}, zerolog.Nop())
	svc := services.NewDocumentService(repos, ingest, zerolog.Nop())
	return svc, mockDoc
}

func TestGetMapsMissingRow(t *testing.T) {
	svc, mockDoc := setupDocumentMocks(t)

	mockDoc.EXPECT().FindByID(uint(99)).Return(nil, gorm.ErrRecordNotFound)
	if _, err := svc.Get(99); !errors.Is(err, services.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestUploadStoresObjectAndCreatesUnprocessedRow(t *testing.T) {
	svc, mockDoc := setupDocumentMocks(t)

	var storedKey string
	origUpload := utils.UploadObject
	t.Cleanup(func() { utils.UploadObject = origUpload })
	utils.UploadObject = func(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error {
		storedKey = objectName
		if size != 5 {
			t.Fatalf("expected size 5, got %d", size)
		}
		return nil
	}

	ingested := make(chan uint, 1)
	mockDoc.EXPECT().Create(gomock.Any()).DoAndReturn(func(doc *models.Document) error {
		if doc.JiraStatus != models.DocumentStatusUnprocessed {
			t.Fatalf("expected UNPROCESSED row, got %s", doc.JiraStatus)
		}
		doc.ID = 11
		return nil
	})
	// Background ingestion looks the row up; report it done via the channel.
	mockDoc.EXPECT().FindByID(uint(11)).DoAndReturn(func(id uint) (*models.Document, error) {
		ingested <- id
		return &models.Document{ID: id, JiraStatus: models.DocumentStatusProcessed}, nil
	})

	doc, err := svc.Upload(context.Background(), "spec.pdf", "application/pdf", []byte("%PDF-"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != 11 {
		t.Fatalf("expected row ID back, got %d", doc.ID)
	}
	if filepath.Ext(storedKey) != ".pdf" {
		t.Fatalf("expected object key to keep the extension, got %s", storedKey)
	}
	if doc.ObjectKey != storedKey {
		t.Fatalf("row object key %s does not match stored object %s", doc.ObjectKey, storedKey)
	}
	<-ingested
}

func TestUploadCleansUpObjectOnRowFailure(t *testing.T) {
	svc, mockDoc := setupDocumentMocks(t)

	origUpload, origDelete := utils.UploadObject, utils.DeleteObject
	t.Cleanup(func() {
		utils.UploadObject = origUpload
		utils.DeleteObject = origDelete
	})
	utils.UploadObject = func(ctx context.Context, objectName, contentType string, r io.Reader, size int64) error {
		return nil
	}
	deleted := ""
	utils.DeleteObject = func(ctx context.Context, objectName string) error {
		deleted = objectName
		return nil
	}

	mockDoc.EXPECT().Create(gomock.Any()).Return(errors.New("db down"))

	if _, err := svc.Upload(context.Background(), "spec.txt", "text/plain", []byte("hello")); err == nil {
		t.Fatal("expected error, got nil")
	}
	if deleted == "" {
		t.Fatal("expected orphaned object to be deleted")
	}
}
