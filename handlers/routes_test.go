package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"basketball-league/database"
	"basketball-league/events"
	"basketball-league/models"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	app   *fiber.App
	deps  Deps
	clock *clockwork.FakeClock
}

func newTestServer(t *testing.T) *testServer {
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

	clock := clockwork.NewFakeClockAt(time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))
	users := services.NewUserService(db)
	users.HashCost = bcrypt.MinCost
	sessions := services.NewSessionService(db, clock)
	tokens := services.NewTokenService(db, users, sessions)
	pub := events.Nop{}

	deps := Deps{
		DB:       db,
		Auth:     tokens,
		Tokens:   tokens,
		Users:    users,
		Sessions: sessions,
		Teams:    services.NewTeamService(db, pub),
		Players:  services.NewPlayerService(db, pub),
		Games:    services.NewGameService(db, pub, clock),
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, deps)
	return &testServer{app: app, deps: deps, clock: clock}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	resp, err := s.app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, out
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/api-token-auth/", "", map[string]any{"username": username, "password": password})
	if status != http.StatusOK {
		t.Fatalf("login %s: %d %s", username, status, body)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, body, &out)
	return out.Token
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	if _, err := s.deps.Users.EnsureAdmin("admin@basketball.league.com", "admin", "admin@123"); err != nil {
		t.Fatalf("admin: %v", err)
	}
	return s.login(t, "admin", "admin@123")
}

// register creates an account through the admin API and logs it in.
func (s *testServer) register(t *testing.T, adminToken, role, username string) (string, *models.User) {
	t.Helper()
	status, body := s.do(t, http.MethodPost, "/register/"+role+"/", adminToken, map[string]any{
		"email":    username + "@basketball.league.com",
		"username": username,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: %d %s", username, status, body)
	}
	var user models.User
	decode(t, body, &user)
	return s.login(t, username, services.DefaultPasswords[role]), &user
}

func decode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", body, err)
	}
}

func detailOf(t *testing.T, body []byte) string {
	t.Helper()
	var out struct {
		Detail string `json:"detail"`
	}
	decode(t, body, &out)
	return out.Detail
}
