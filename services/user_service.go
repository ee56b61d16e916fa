// services/user_service.go
package services

import (
	"errors"
	"net/mail"
	"strings"

	"basketball-league/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPasswords are the initial credentials handed to registered
// accounts. They are expected to be reset out of band.
var DefaultPasswords = map[string]string{
	models.RoleCoach:  "coach@123",
	models.RolePlayer: "player@123",
}

type UserService struct {
	DB       *gorm.DB
	HashCost int
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db, HashCost: bcrypt.DefaultCost}
}

// RegisterUser creates a coach or player account with the role's default
// password.
func (s *UserService) RegisterUser(role, email, username string) (*models.User, error) {
	password, ok := DefaultPasswords[role]
	if !ok {
		return nil, validationError("Role must be one of: coach, player.")
	}
	return s.createUser(role, email, username, password)
}

// EnsureAdmin creates the bootstrap admin unless an account with that
// username already exists.
func (s *UserService) EnsureAdmin(email, username, password string) (*models.User, error) {
	var existing models.User
	err := s.DB.Where("username = ?", strings.TrimSpace(username)).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storeError("Admin lookup", err)
	}
	if password == "" {
		return nil, validationError("Admin password is required.")
	}
	user, err := s.createUser(models.RoleAdmin, email, username, password)
	if err != nil {
		return nil, err
	}
	log.Info().Str("username", user.Username).Msg("created bootstrap admin")
	return user, nil
}

func (s *UserService) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeError("User lookup", err)
	}
	return &user, nil
}

// CheckPassword returns the user owning username when password matches.
func (s *UserService) CheckPassword(username, password string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("User lookup", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *UserService) createUser(role, email, username, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if email == "" || username == "" {
		return nil, validationError("Email and username are required.")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, validationError("Enter a valid email address.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost())
	if err != nil {
		return nil, storeError("Password hashing", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := checkIdentityFree(tx, email, username); err != nil {
			return err
		}
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent registration. Report which field.
		if identityErr := checkIdentityFree(s.DB, email, username); identityErr != nil {
			return nil, identityErr
		}
		return nil, ErrDuplicateUsername
	}
	if err != nil {
		return nil, storeError("Registration", err)
	}
	return user, nil
}

// checkIdentityFree reports a taken email before a taken username.
func checkIdentityFree(db *gorm.DB, email, username string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateEmail
	}
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateUsername
	}
	return nil
}

func (s *UserService) hashCost() int {
	if s.HashCost < bcrypt.MinCost {
		return bcrypt.DefaultCost
	}
	return s.HashCost
}
