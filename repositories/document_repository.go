package repositories

import (
	"errors"
	"time"

	"github.com/ticketflowai/ticketflow/db"
	"github.com/ticketflowai/ticketflow/models"
	"gorm.io/gorm"
)

// ErrStatusConflict is returned when a guarded status transition finds the
// document no longer in the expected state.
var ErrStatusConflict = errors.New("document status changed concurrently")

type DocumentRepo interface {
	Create(doc *models.Document) error
	FindAll() ([]models.Document, error)
	FindByID(id uint) (*models.Document, error)
	Update(doc *models.Document) error
	TransitionStatus(id uint, from, to models.DocumentStatus) error
	FindStaleUnprocessed(olderThan time.Time) ([]models.Document, error)
}

type DocumentRepository struct{}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) Create(doc *models.Document) error {
	return db.DB.Create(doc).Error
}

func (r *DocumentRepository) FindAll() ([]models.Document, error) {
	var docs []models.Document
	err := db.DB.Preload("Tickets", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("tickets.id asc")
	}).Order("uploaded_at desc").Find(&docs).Error
	return docs, err
}

func (r *DocumentRepository) FindByID(id uint) (*models.Document, error) {
	var doc models.Document
	err := db.DB.Preload("Tickets", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("tickets.id asc")
	}).First(&doc, id).Error
	return &doc, err
}

func (r *DocumentRepository) Update(doc *models.Document) error {
	return db.DB.Save(doc).Error
}

// TransitionStatus moves a document between lifecycle states with a guarded
// update, so a concurrent transition cannot be overwritten.
func (r *DocumentRepository) TransitionStatus(id uint, from, to models.DocumentStatus) error {
	res := db.DB.Model(&models.Document{}).
		Where("id = ? AND jira_status = ?", id, from).
		Update("jira_status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (r *DocumentRepository) FindStaleUnprocessed(olderThan time.Time) ([]models.Document, error) {
	var docs []models.Document
	err := db.DB.
		Where("jira_status = ? AND uploaded_at < ?", models.DocumentStatusUnprocessed, olderThan).
		Find(&docs).Error
	return docs, err
}
