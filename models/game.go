// models/game.go
package models

import (
	"time"
)

type Game struct {
	ID string `json:"id" gorm:"primaryKey"`

	Team1ID string `json:"team1_id" gorm:"not null;index"`
	Team1   Team   `json:"team1" gorm:"foreignKey:Team1ID;constraint:OnDelete:CASCADE"`
	Team2ID string `json:"team2_id" gorm:"not null;index"`
	Team2   Team   `json:"team2" gorm:"foreignKey:Team2ID;constraint:OnDelete:CASCADE"`

	Team1Score int64     `json:"team1_score" gorm:"not null;default:0;check:team1_score >= 0"`
	Team2Score int64     `json:"team2_score" gorm:"not null;default:0;check:team2_score >= 0"`
	Date       time.Time `json:"date" gorm:"not null;index"`

	// nil until an admin records the result; never derived from the scores
	WinnerID *string `json:"winner_id,omitempty" gorm:"index"`
	Winner   *Team   `json:"winner,omitempty" gorm:"foreignKey:WinnerID;constraint:OnDelete:CASCADE"`

	Timestamps
}

// HasTeam reports whether teamID plays in this game.
func (g *Game) HasTeam(teamID string) bool {
	return teamID != "" && (teamID == g.Team1ID || teamID == g.Team2ID)
}
