// models/login_activity.go
package models

import (
	"time"
)

// LoginActivity records one session: opened at login, closed at logout.
// A nil LogoutTime marks the session as still open.
type LoginActivity struct {
	ID         string     `gorm:"primaryKey" json:"id"`
	UserID     string     `gorm:"index;not null" json:"user_id"`
	User       *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	LoginTime  time.Time  `gorm:"not null;index" json:"login_time"`
	LogoutTime *time.Time `json:"logout_time,omitempty"`
}

// Open reports whether the session has not been closed yet.
func (a *LoginActivity) Open() bool {
	return a.LogoutTime == nil
}
