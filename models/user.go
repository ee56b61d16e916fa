// models/user.go
package models

import (
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleCoach  = "coach"
	RolePlayer = "player"
)

// User is a league account. Role decides which operations it may run.
type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"type:varchar(10);not null;index" json:"role"`

	// Session statistics, maintained on login/logout
	LoginCount     int64         `gorm:"not null;default:0" json:"login_count"`
	TotalTimeSpent time.Duration `gorm:"not null;default:0" json:"total_time_spent"`

	Timestamps
}

// AuthToken is the opaque bearer token handed out at login.
// One live token per user; logout deletes it.
type AuthToken struct {
	Key       string    `gorm:"primaryKey" json:"token"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
