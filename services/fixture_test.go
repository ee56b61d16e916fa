package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"basketball-league/database"
	"basketball-league/models"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordedEvent struct {
	Type    string
	Payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Type: eventType, Payload: payload})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	clock    *clockwork.FakeClock
	pub      *recordingPublisher
	users    *UserService
	sessions *SessionService
	tokens   *TokenService
	teams    *TeamService
	players  *PlayerService
	games    *GameService
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open("sqlite", ":memory:", "silent")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	pub := &recordingPublisher{}

	users := NewUserService(db)
	users.HashCost = bcrypt.MinCost
	sessions := NewSessionService(db, clock)
	return &fixture{
		db:       db,
		clock:    clock,
		pub:      pub,
		users:    users,
		sessions: sessions,
		tokens:   NewTokenService(db, users, sessions),
		teams:    NewTeamService(db, pub),
		players:  NewPlayerService(db, pub),
		games:    NewGameService(db, pub, clock),
	}
}

func (f *fixture) admin(t *testing.T) *models.User {
	t.Helper()
	u, err := f.users.EnsureAdmin("admin@basketball.league.com", "admin", "admin@123")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	return u
}

func (f *fixture) coach(t *testing.T, n int) *models.User {
	t.Helper()
	u, err := f.users.RegisterUser(models.RoleCoach, fmt.Sprintf("coach%d@basketball.league.com", n), fmt.Sprintf("coach%d", n))
	if err != nil {
		t.Fatalf("register coach %d: %v", n, err)
	}
	return u
}

func (f *fixture) player(t *testing.T, n int) *models.User {
	t.Helper()
	u, err := f.users.RegisterUser(models.RolePlayer, fmt.Sprintf("player%d@basketball.league.com", n), fmt.Sprintf("player%d", n))
	if err != nil {
		t.Fatalf("register player %d: %v", n, err)
	}
	return u
}

func (f *fixture) team(t *testing.T, coach *models.User) *models.Team {
	t.Helper()
	team, err := f.teams.CreateTeam(coach, "Team "+coach.Username)
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	return team
}

// rosterEntry inserts a player without a backing account.
func (f *fixture) rosterEntry(t *testing.T, team *models.Team, name string, avg float64) *models.Player {
	t.Helper()
	p := &models.Player{ID: uuid.NewString(), Name: name, Height: 6.1, AverageScore: avg, TeamID: team.ID}
	if err := f.db.Omit(clause.Associations).Create(p).Error; err != nil {
		t.Fatalf("create player %s: %v", name, err)
	}
	return p
}

func (f *fixture) game(t *testing.T, team1, team2 *models.Team) *models.Game {
	t.Helper()
	g, err := f.games.CreateGame(team1.ID, team2.ID)
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	return g
}

func assertErrorIs(t *testing.T, err, want error) {
	t.Helper()
	if !errors.Is(err, want) {
		t.Fatalf("err = %v, want %v", err, want)
	}
}
