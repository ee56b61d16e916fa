// services/session_service.go
package services

import (
	"errors"
	"time"

	"basketball-league/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"
)

// SessionService keeps the login counters, login activities and
// time-spent totals behind the site statistics.
type SessionService struct {
	DB    *gorm.DB
	Clock clockwork.Clock
}

func NewSessionService(db *gorm.DB, clock clockwork.Clock) *SessionService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SessionService{DB: db, Clock: clock}
}

// WithTx returns a copy bound to tx so bookkeeping joins the caller's
// transaction.
func (s *SessionService) WithTx(tx *gorm.DB) *SessionService {
	return &SessionService{DB: tx, Clock: s.Clock}
}

// RecordLogin bumps the login counter and opens a new activity. It always
// appends, even if an older activity is still open.
func (s *SessionService) RecordLogin(user *models.User) (*models.LoginActivity, error) {
	activity := &models.LoginActivity{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		LoginTime: s.Clock.Now().UTC(),
	}
	err := s.transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", user.ID).
			UpdateColumn("login_count", gorm.Expr("login_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Create(activity).Error
	})
	if err != nil {
		return nil, storeError("Login bookkeeping", err)
	}
	user.LoginCount++
	return activity, nil
}

// RecordLogout closes the most recent open activity and adds its length to
// the user's total. Without an open activity it does nothing and returns
// nil, nil.
func (s *SessionService) RecordLogout(user *models.User) (*models.LoginActivity, error) {
	var (
		activity models.LoginActivity
		elapsed  time.Duration
	)
	err := s.transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND logout_time IS NULL", user.ID).
			Order("login_time DESC").
			First(&activity).Error
		if err != nil {
			return err
		}

		now := s.Clock.Now().UTC()
		activity.LogoutTime = &now
		elapsed = now.Sub(activity.LoginTime)
		if elapsed < 0 {
			elapsed = 0
		}

		if err := tx.Model(&activity).UpdateColumn("logout_time", now).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			UpdateColumn("total_time_spent", gorm.Expr("total_time_spent + ?", int64(elapsed))).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("Logout bookkeeping", err)
	}
	user.TotalTimeSpent += elapsed
	return &activity, nil
}

// UserStatistics is one row of the site statistics.
type UserStatistics struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	LoginCount     int64         `json:"login_count"`
	TotalTimeSpent time.Duration `json:"total_time_spent"`
	IsOnline       bool          `json:"is_online"`
}

// SiteStatistics lists every user with their counters. A user is online
// when their latest activity is still open.
func (s *SessionService) SiteStatistics() ([]UserStatistics, error) {
	var users []models.User
	if err := s.DB.Order("created_at ASC").Order("username ASC").Find(&users).Error; err != nil {
		return nil, storeError("Statistics", err)
	}

	stats := make([]UserStatistics, 0, len(users))
	for _, u := range users {
		online, err := s.IsOnline(u.ID)
		if err != nil {
			return nil, err
		}
		stats = append(stats, UserStatistics{
			ID:             u.ID,
			Username:       u.Username,
			LoginCount:     u.LoginCount,
			TotalTimeSpent: u.TotalTimeSpent,
			IsOnline:       online,
		})
	}
	return stats, nil
}

// IsOnline reports whether the user's most recent activity has no logout.
func (s *SessionService) IsOnline(userID string) (bool, error) {
	var last models.LoginActivity
	err := s.DB.Where("user_id = ?", userID).Order("login_time DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, storeError("Statistics", err)
	}
	return last.Open(), nil
}

func (s *SessionService) transaction(fn func(tx *gorm.DB) error) error {
	return s.DB.Transaction(fn)
}
