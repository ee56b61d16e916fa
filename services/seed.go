// services/seed.go
package services

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"basketball-league/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SeedOptions struct {
	AdminEmail    string
	AdminUsername string
	AdminPassword string
	Coaches       int
	PlayersPer    int
	Games         int
}

func DefaultSeedOptions() SeedOptions {
	return SeedOptions{
		AdminEmail:    "admin@basketball.league.com",
		AdminUsername: "admin",
		AdminPassword: "admin@123",
		Coaches:       4,
		PlayersPer:    models.MaxPlayersPerTeam,
		Games:         10,
	}
}

type SeedResult struct {
	Teams   int
	Players int
	Games   int
}

// Seeder fills an empty league with fake coaches, teams, players and
// played games.
type Seeder struct {
	DB    *gorm.DB
	Users *UserService
	Teams *TeamService
	Clock clockwork.Clock
	Rand  *rand.Rand
}

func NewSeeder(db *gorm.DB, users *UserService, teams *TeamService, clock clockwork.Clock) *Seeder {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Seeder{
		DB:    db,
		Users: users,
		Teams: teams,
		Clock: clock,
		Rand:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *Seeder) Seed(opts SeedOptions) (*SeedResult, error) {
	if opts.Coaches < 2 && opts.Games > 0 {
		return nil, validationError("At least two teams are needed to seed games.")
	}
	if opts.PlayersPer > models.MaxPlayersPerTeam {
		return nil, validationError("A team holds at most %d players.", models.MaxPlayersPerTeam)
	}

	var existing int64
	if err := s.DB.Model(&models.Team{}).Count(&existing).Error; err != nil {
		return nil, storeError("Seed", err)
	}
	if existing > 0 {
		return nil, validationError("League already has teams; refusing to seed.")
	}

	if _, err := s.Users.EnsureAdmin(opts.AdminEmail, opts.AdminUsername, opts.AdminPassword); err != nil {
		return nil, err
	}

	result := &SeedResult{}
	teams := make([]*models.Team, 0, opts.Coaches)
	for i := 1; i <= opts.Coaches; i++ {
		coach, err := s.Users.RegisterUser(models.RoleCoach,
			fmt.Sprintf("coach%d@basketball.league.com", i), fmt.Sprintf("coach%d", i))
		if err != nil {
			return nil, err
		}
		team, err := s.Teams.CreateTeam(coach, fmt.Sprintf("Team%d", i))
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
		result.Teams++
	}

	for _, team := range teams {
		for i := 0; i < opts.PlayersPer; i++ {
			name := fmt.Sprintf("player%d_%s", i, team.Name)
			handle := fmt.Sprintf("%s%d", strings.ToLower(name), i)
			user, err := s.Users.RegisterUser(models.RolePlayer, handle+"@basketball.league.com", handle)
			if err != nil {
				return nil, err
			}
			player := &models.Player{
				ID:           uuid.NewString(),
				Name:         name,
				UserID:       &user.ID,
				Height:       5.5 + s.Rand.Float64()*1.5,
				AverageScore: 10 + s.Rand.Float64()*20,
				GamesPlayed:  1 + s.Rand.Int64N(20),
				TeamID:       team.ID,
			}
			if err := s.DB.Omit(clause.Associations).Create(player).Error; err != nil {
				return nil, storeError("Seed", err)
			}
			result.Players++
		}
	}

	for i := 0; i < opts.Games; i++ {
		pick := s.Rand.Perm(len(teams))
		team1, team2 := teams[pick[0]], teams[pick[1]]
		winner := team1.ID
		if s.Rand.IntN(2) == 1 {
			winner = team2.ID
		}
		game := &models.Game{
			ID:         uuid.NewString(),
			Team1ID:    team1.ID,
			Team2ID:    team2.ID,
			Team1Score: 50 + s.Rand.Int64N(51),
			Team2Score: 50 + s.Rand.Int64N(51),
			Date:       s.Clock.Now().UTC(),
			WinnerID:   &winner,
		}
		if err := s.DB.Omit(clause.Associations).Create(game).Error; err != nil {
			return nil, storeError("Seed", err)
		}
		result.Games++
	}

	log.Info().Int("teams", result.Teams).Int("players", result.Players).Int("games", result.Games).
		Msg("✅ fake league data generated")
	return result, nil
}
