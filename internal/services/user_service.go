package services

import (
	"errors"
	"fmt"

	"github.com/matrixgesnet/proyecto-cursos/internal/metrics"
	"github.com/matrixgesnet/proyecto-cursos/internal/models"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when registering with an email that already exists.
var ErrEmailTaken = errors.New("email_taken")

type UserService interface {
	// Register creates a regular (non-admin) account. The admin flag is never
	// settable through this path.
	Register(email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	// ChangePassword rehashes and stores a new credential for the user.
	ChangePassword(userID uint, newPassword string) error
	// BootstrapAdmin creates the initial admin account directly. It is the
	// only operation that produces an admin principal and is meant for
	// privileged seeding, not the request path. Idempotent per email.
	BootstrapAdmin(email, password string) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) Register(email, password string) (*models.User, error) {
	user := models.User{Email: email, IsAdmin: false}
	if err := user.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	return &user, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) ChangePassword(userID uint, newPassword string) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.db.Model(&user).Update("password_hash", user.PasswordHash).Error
}

func (s *userService) BootstrapAdmin(email, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return &existing, nil
	}

	admin := models.User{Email: email, IsAdmin: true}
	if err := admin.SetPassword(password); err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
