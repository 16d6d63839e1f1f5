package repositories

import (
	"github.com/ticketflowai/ticketflow/db"
	"github.com/ticketflowai/ticketflow/models"
)

type UserRepo interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
}

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(user *models.User) error {
	return db.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}
