package repositories

import (
	"github.com/ticketflowai/ticketflow/db"
	"github.com/ticketflowai/ticketflow/models"
)

type TicketRepo interface {
	CreateBatch(tickets []models.Ticket) error
	FindByID(id uint) (*models.Ticket, error)
	UpdateFields(id uint, fields map[string]interface{}) error
}

type TicketRepository struct{}

func NewTicketRepository() *TicketRepository {
	return &TicketRepository{}
}

func (r *TicketRepository) CreateBatch(tickets []models.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	return db.DB.Create(&tickets).Error
}

func (r *TicketRepository) FindByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := db.DB.First(&ticket, id).Error
	return &ticket, err
}

// UpdateFields writes only the given columns; a single-field patch touches
// exactly that field at the database.
func (r *TicketRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	return db.DB.Model(&models.Ticket{}).Where("id = ?", id).Updates(fields).Error
}
