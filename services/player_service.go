// services/player_service.go
package services

import (
	"errors"

	"basketball-league/events"
	"basketball-league/models"
	"basketball-league/utils"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PlayerService struct {
	DB     *gorm.DB
	Events events.Publisher
}

func NewPlayerService(db *gorm.DB, pub events.Publisher) *PlayerService {
	return &PlayerService{DB: db, Events: pub}
}

// GetPlayer returns a player to the coach of the player's team.
func (s *PlayerService) GetPlayer(actor *models.User, id string) (*models.Player, error) {
	if err := Authorize(actor, RequireCoach); err != nil {
		return nil, err
	}
	player, team, err := findPlayerWithTeam(s.DB, id)
	if err != nil {
		return nil, storeError("Player lookup", err)
	}
	if err := Authorize(actor, RequireTeamOwner(team)); err != nil {
		return nil, err
	}
	return player, nil
}

// RemovePlayer deletes a player. Only the coach of the player's team may
// do it.
func (s *PlayerService) RemovePlayer(actor *models.User, id string) error {
	if err := Authorize(actor, RequireCoach); err != nil {
		return err
	}
	var removed *models.Player
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		player, team, err := findPlayerWithTeam(tx, id)
		if err != nil {
			return err
		}
		if err := Authorize(actor, RequireTeamOwner(team)); err != nil {
			return err
		}
		removed = player
		return tx.Delete(&models.Player{}, "id = ?", player.ID).Error
	})
	if err != nil {
		return storeError("Player removal", err)
	}

	log.Info().Str("player_id", removed.ID).Str("team_id", removed.TeamID).Msg("🗑️ player removed")
	publish(s.Events, events.PlayerRemoved, map[string]any{
		"player_id":  removed.ID,
		"team_id":    removed.TeamID,
		"removed_by": actor.ID,
	})
	return nil
}

// UpdateCountPlayedGames adds exactly one game to the player's count.
func (s *PlayerService) UpdateCountPlayedGames(id string) (*models.Player, error) {
	var player *models.Player
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if player, err = findPlayer(tx, id); err != nil {
			return err
		}
		if err := tx.Model(player).UpdateColumn("games_played", gorm.Expr("games_played + ?", 1)).Error; err != nil {
			return err
		}
		return tx.First(player, "id = ?", id).Error
	})
	if err != nil {
		return nil, storeError("Games played update", err)
	}
	return player, nil
}

// UpdatePlayerAverageScore sets the player average. A falsy value leaves it
// unchanged.
func (s *PlayerService) UpdatePlayerAverageScore(id string, value any) (*models.Player, error) {
	var player *models.Player
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if player, err = findPlayer(tx, id); err != nil {
			return err
		}
		if !utils.Truthy(value) {
			return nil
		}
		avg, err := averageScore(value)
		if err != nil {
			return err
		}
		player.AverageScore = avg
		return tx.Model(player).UpdateColumn("average_score", avg).Error
	})
	if err != nil {
		return nil, storeError("Player average update", err)
	}
	return player, nil
}

func findPlayer(db *gorm.DB, id string) (*models.Player, error) {
	if id == "" {
		return nil, ErrPlayerNotFound
	}
	var player models.Player
	err := db.First(&player, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func findPlayerWithTeam(db *gorm.DB, id string) (*models.Player, *models.Team, error) {
	player, err := findPlayer(db, id)
	if err != nil {
		return nil, nil, err
	}
	team, err := findTeam(db, player.TeamID)
	if err != nil {
		return nil, nil, err
	}
	return player, team, nil
}
