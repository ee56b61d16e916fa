// services/team_service.go
package services

import (
	"errors"
	"math"
	"strings"

	"basketball-league/events"
	"basketball-league/models"
	"basketball-league/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type TeamService struct {
	DB     *gorm.DB
	Events events.Publisher
}

func NewTeamService(db *gorm.DB, pub events.Publisher) *TeamService {
	return &TeamService{DB: db, Events: pub}
}

// CreateTeam creates the only team coach may own.
func (s *TeamService) CreateTeam(coach *models.User, name string) (*models.Team, error) {
	if err := Authorize(coach, RequireCoach); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError("Team name is required.")
	}

	team := &models.Team{
		ID:      uuid.NewString(),
		Name:    name,
		Slug:    slug.Make(name),
		CoachID: coach.ID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Team{}).Where("coach_id = ?", coach.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCoachAlreadyHasTeam
		}
		return tx.Omit("Coach", "Players").Create(team).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrCoachAlreadyHasTeam
	}
	if err != nil {
		return nil, storeError("Team creation", err)
	}

	team.Coach = *coach
	team.Players = []models.Player{}
	log.Info().Str("team_id", team.ID).Str("coach", coach.Username).Msg("🏀 team created")
	publish(s.Events, events.TeamCreated, map[string]any{
		"team_id":  team.ID,
		"name":     team.Name,
		"coach_id": team.CoachID,
	})
	return team, nil
}

// JoinTeam adds the player account to a team roster.
func (s *TeamService) JoinTeam(user *models.User, teamID, playerName string, height any) (*models.Player, error) {
	if err := Authorize(user, RequirePlayer); err != nil {
		return nil, err
	}
	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, validationError("Player name is required.")
	}
	h, err := utils.ToFloat(height)
	if err != nil || h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return nil, validationError("Height must be a positive number.")
	}

	userID := user.ID
	player := &models.Player{
		ID:     uuid.NewString(),
		Name:   playerName,
		UserID: &userID,
		Height: h,
		TeamID: teamID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := findTeam(tx, teamID); err != nil {
			return err
		}

		var roster int64
		if err := tx.Model(&models.Player{}).Where("team_id = ?", teamID).Count(&roster).Error; err != nil {
			return err
		}
		if roster >= models.MaxPlayersPerTeam {
			return ErrTeamFull
		}

		var assigned int64
		if err := tx.Model(&models.Player{}).Where("user_id = ?", user.ID).Count(&assigned).Error; err != nil {
			return err
		}
		if assigned > 0 {
			return ErrPlayerAlreadyAssigned
		}

		return tx.Omit("User").Create(player).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrPlayerAlreadyAssigned
	}
	if err != nil {
		return nil, storeError("Join team", err)
	}

	publish(s.Events, events.PlayerJoined, map[string]any{
		"player_id": player.ID,
		"team_id":   player.TeamID,
		"user_id":   user.ID,
	})
	return player, nil
}

// ListTeams returns every team with coach and roster.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	var teams []models.Team
	err := s.DB.Preload("Coach").
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Order("created_at ASC").
		Find(&teams).Error
	if err != nil {
		return nil, storeError("Team listing", err)
	}
	return teams, nil
}

// GetTeam returns a team to its own coach.
func (s *TeamService) GetTeam(actor *models.User, id string) (*models.Team, error) {
	if err := Authorize(actor, RequireCoach); err != nil {
		return nil, err
	}
	var team models.Team
	err := s.DB.Preload("Coach").
		Preload("Players", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, storeError("Team lookup", err)
	}
	if err := Authorize(actor, RequireTeamOwner(&team)); err != nil {
		return nil, err
	}
	return &team, nil
}

// ListPlayers returns the roster of the actor's team. With topPercentile
// only players at or above the 90th percentile average score are kept.
func (s *TeamService) ListPlayers(actor *models.User, teamID string, topPercentile bool) ([]models.Player, error) {
	if err := Authorize(actor, RequireCoach); err != nil {
		return nil, err
	}
	team, err := findTeam(s.DB, teamID)
	if err != nil {
		return nil, storeError("Team lookup", err)
	}
	if err := Authorize(actor, RequireTeamOwner(team)); err != nil {
		return nil, err
	}

	var players []models.Player
	if err := s.DB.Where("team_id = ?", teamID).Order("created_at ASC").Find(&players).Error; err != nil {
		return nil, storeError("Roster", err)
	}
	if !topPercentile {
		return players, nil
	}

	scores := make([]float64, len(players))
	for i, p := range players {
		scores[i] = p.AverageScore
	}
	threshold, ok := Percentile90(scores)
	if !ok {
		return players, nil
	}

	filtered := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.AverageScore >= threshold {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// UpdateTeamAverageScore sets the team average. A falsy value leaves it
// unchanged.
func (s *TeamService) UpdateTeamAverageScore(teamID string, value any) (*models.Team, error) {
	var team *models.Team
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		if team, err = findTeam(tx, teamID); err != nil {
			return err
		}
		if !utils.Truthy(value) {
			return nil
		}
		avg, err := averageScore(value)
		if err != nil {
			return err
		}
		team.AverageScore = avg
		return tx.Model(team).UpdateColumn("average_score", avg).Error
	})
	if err != nil {
		return nil, storeError("Team average update", err)
	}
	return team, nil
}

func findTeam(db *gorm.DB, id string) (*models.Team, error) {
	if id == "" {
		return nil, ErrTeamNotFound
	}
	var team models.Team
	err := db.First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func averageScore(v any) (float64, error) {
	avg, err := utils.ToFloat(v)
	if err != nil || avg < 0 || math.IsNaN(avg) || math.IsInf(avg, 0) {
		return 0, validationError("Average score must be a non-negative number.")
	}
	return avg, nil
}
