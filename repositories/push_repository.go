package repositories

import (
	"github.com/ticketflowai/ticketflow/db"
	"github.com/ticketflowai/ticketflow/models"
)

type PushRepo interface {
	Create(attempt *models.PushAttempt) error
	FindByKey(key string) (*models.PushAttempt, error)
	Update(attempt *models.PushAttempt) error
}

type PushRepository struct{}

func NewPushRepository() *PushRepository {
	return &PushRepository{}
}

func (r *PushRepository) Create(attempt *models.PushAttempt) error {
	return db.DB.Create(attempt).Error
}

func (r *PushRepository) FindByKey(key string) (*models.PushAttempt, error) {
	var attempt models.PushAttempt
	err := db.DB.Where("idempotency_key = ?", key).First(&attempt).Error
	return &attempt, err
}

func (r *PushRepository) Update(attempt *models.PushAttempt) error {
	return db.DB.Save(attempt).Error
}
