package services

import (
	"errors"

	"basketball-league/events"
	"basketball-league/models"
	"basketball-league/utils"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameService struct {
	DB     *gorm.DB
	Events events.Publisher
	Clock  clockwork.Clock
}

func NewGameService(db *gorm.DB, pub events.Publisher, clock clockwork.Clock) *GameService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &GameService{DB: db, Events: pub, Clock: clock}
}

// ListGames returns the scoreboard: every game with both teams, their
// coaches and rosters.
func (s *GameService) ListGames() ([]models.Game, error) {
	var games []models.Game
	if err := withGameDetails(s.DB).Order("date ASC").Find(&games).Error; err != nil {
		return nil, storeError("Scoreboard", err)
	}
	return games, nil
}

// CreateGame schedules a game between two different teams with zero
// scores and no winner.
func (s *GameService) CreateGame(team1ID, team2ID string) (*models.Game, error) {
	if team1ID != "" && team1ID == team2ID {
		return nil, validationError("A team cannot play against itself.")
	}

	game := &models.Game{
		ID:      uuid.NewString(),
		Team1ID: team1ID,
		Team2ID: team2ID,
		Date:    s.Clock.Now().UTC(),
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := findTeam(tx, team1ID); err != nil {
			return err
		}
		if _, err := findTeam(tx, team2ID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(game).Error
	})
	if err != nil {
		return nil, storeError("Game creation", err)
	}

	log.Info().Str("game_id", game.ID).Str("team1", team1ID).Str("team2", team2ID).Msg("📅 game created")
	publish(s.Events, events.GameCreated, map[string]any{
		"game_id":  game.ID,
		"team1_id": game.Team1ID,
		"team2_id": game.Team2ID,
		"date":     game.Date,
	})
	return s.GetGame(game.ID)
}

func (s *GameService) GetGame(id string) (*models.Game, error) {
	game, err := findGame(withGameDetails(s.DB), id)
	if err != nil {
		return nil, storeError("Game lookup", err)
	}
	return game, nil
}

// UpdateTeamScore overwrites each side's score only when its value is
// truthy. Zero, empty and missing values leave that side untouched.
func (s *GameService) UpdateTeamScore(gameID string, team1Score, team2Score any) (*models.Game, error) {
	var parseErr error
	updates := map[string]any{}
	sides := []struct {
		column string
		value  any
	}{{"team1_score", team1Score}, {"team2_score", team2Score}}
	for _, side := range sides {
		if !utils.Truthy(side.value) {
			continue
		}
		score, err := utils.ToInt(side.value)
		if err != nil || score < 0 {
			parseErr = validationError("%s must be a non-negative integer.", side.column)
			break
		}
		updates[side.column] = score
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, gameID)
		if err != nil {
			return err
		}
		if parseErr != nil {
			return parseErr
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(game).UpdateColumns(updates).Error
	})
	if err != nil {
		return nil, storeError("Score update", err)
	}

	game, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		publish(s.Events, events.GameScoreUpdated, map[string]any{
			"game_id":     game.ID,
			"team1_score": game.Team1Score,
			"team2_score": game.Team2Score,
		})
	}
	return game, nil
}

// SetGameWinner records one of the two teams as the winner. A falsy
// winner clears it.
func (s *GameService) SetGameWinner(gameID string, winner any) (*models.Game, error) {
	var winnerID *string
	if utils.Truthy(winner) {
		id := utils.ToString(winner)
		winnerID = &id
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		game, err := findGame(tx, gameID)
		if err != nil {
			return err
		}
		if winnerID != nil && !game.HasTeam(*winnerID) {
			return validationError("Winner must be one of the teams playing the game.")
		}
		return tx.Model(game).UpdateColumn("winner_id", winnerID).Error
	})
	if err != nil {
		return nil, storeError("Winner update", err)
	}

	game, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	publish(s.Events, events.GameWinnerSet, map[string]any{
		"game_id":   game.ID,
		"winner_id": game.WinnerID,
	})
	return game, nil
}

func withGameDetails(db *gorm.DB) *gorm.DB {
	byJoin := func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }
	return db.
		Preload("Team1.Coach").Preload("Team1.Players", byJoin).
		Preload("Team2.Coach").Preload("Team2.Players", byJoin).
		Preload("Winner")
}

func findGame(db *gorm.DB, id string) (*models.Game, error) {
	if id == "" {
		return nil, ErrGameNotFound
	}
	var game models.Game
	err := db.First(&game, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}
