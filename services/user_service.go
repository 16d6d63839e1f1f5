package services

import (
	"errors"
	"time"

	"github.com/ticketflowai/ticketflow/dto"
	"github.com/ticketflowai/ticketflow/middleware"
	"github.com/ticketflowai/ticketflow/models"
	"github.com/ticketflowai/ticketflow/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken     = errors.New("username already taken")
	ErrInvalidCredential = errors.New("invalid username or password")
)

const tokenLifetime = 24 * time.Hour

type UserService struct {
	repos *repositories.Repos
}

func NewUserService(repos *repositories.Repos) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) Register(input dto.CreateUserInput) error {
	if _, err := s.repos.User.FindByUsername(input.Username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.repos.User.Create(&models.User{
		Username: input.Username,
		Password: string(hash),
		Email:    input.Email,
	})
}

func (s *UserService) Login(username, password string) (*models.User, string, error) {
	user, err := s.repos.User.FindByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredential
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredential
	}

	token, err := middleware.GenerateToken(user.UID, user.Username, tokenLifetime)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
