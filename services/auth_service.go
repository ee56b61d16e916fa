// services/auth_service.go
package services

import (
	"context"
	"errors"
	"strings"

	"basketball-league/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authenticator resolves a bearer token into the caller's account.
type Authenticator interface {
	Authenticate(ctx context.Context, key string) (*models.User, error)
}

// TokenService issues the opaque tokens handed out at login. A user keeps
// one token until logout.
type TokenService struct {
	DB       *gorm.DB
	Users    *UserService
	Sessions *SessionService
}

func NewTokenService(db *gorm.DB, users *UserService, sessions *SessionService) *TokenService {
	return &TokenService{DB: db, Users: users, Sessions: sessions}
}

// Login checks the credentials, reuses or creates the user's token and
// records the login.
func (s *TokenService) Login(username, password string) (*models.AuthToken, *models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, nil, validationError("Must include \"username\" and \"password\".")
	}
	user, err := s.Users.CheckPassword(username, password)
	if err != nil {
		return nil, nil, err
	}

	var token models.AuthToken
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", user.ID).First(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			token = models.AuthToken{Key: newTokenKey(), UserID: user.ID}
			err = tx.Create(&token).Error
		}
		if err != nil {
			return err
		}
		_, err = s.Sessions.WithTx(tx).RecordLogin(user)
		return err
	})
	if err != nil {
		return nil, nil, storeError("Login", err)
	}
	return &token, user, nil
}

// Authenticate implements Authenticator against the local token table.
func (s *TokenService) Authenticate(_ context.Context, key string) (*models.User, error) {
	if key == "" {
		return nil, ErrUnauthorized
	}
	var token models.AuthToken
	err := s.DB.Preload("User").Where(&models.AuthToken{Key: key}).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && token.User == nil) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, storeError("Token lookup", err)
	}
	return token.User, nil
}

// Logout drops the user's token and closes the open session, if any.
func (s *TokenService) Logout(user *models.User) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		_, err := s.Sessions.WithTx(tx).RecordLogout(user)
		return err
	})
	return storeError("Logout", err)
}

// Remember binds a token validated elsewhere to user. The first time a
// key is seen it counts as a login.
func (s *TokenService) Remember(user *models.User, key string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.AuthToken
		err := tx.Where(&models.AuthToken{Key: key}).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.AuthToken{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.AuthToken{Key: key, UserID: user.ID}).Error; err != nil {
			return err
		}
		_, err = s.Sessions.WithTx(tx).RecordLogin(user)
		return err
	})
	return storeError("Token bookkeeping", err)
}

func newTokenKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "") + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
