// models/team.go
package models

// MaxPlayersPerTeam caps a roster.
const MaxPlayersPerTeam = 10

type Team struct {
	ID           string  `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null"`
	Slug         string  `json:"slug" gorm:"index"`
	CoachID      string  `json:"coach_id" gorm:"uniqueIndex;not null"` // one team per coach
	Coach        User    `json:"coach" gorm:"foreignKey:CoachID;constraint:OnDelete:CASCADE"`
	AverageScore float64 `json:"average_score" gorm:"not null;default:0"`

	// 🔗 Roster, removed together with the team
	Players []Player `json:"players" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`

	Timestamps
}

// Player is a roster entry. UserID is set when a player account joined the
// team itself; a user backs at most one player.
type Player struct {
	ID           string  `json:"id" gorm:"primaryKey"`
	Name         string  `json:"name" gorm:"not null"`
	UserID       *string `json:"user_id,omitempty" gorm:"uniqueIndex"`
	User         *User   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Height       float64 `json:"height" gorm:"not null"`
	AverageScore float64 `json:"average_score" gorm:"not null;default:0"`
	GamesPlayed  int64   `json:"games_played" gorm:"not null;default:0;check:games_played >= 0"`
	TeamID       string  `json:"team" gorm:"not null;index"`

	Timestamps
}
