// handlers/routes.go
package handlers

import (
	"basketball-league/middleware"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps is everything the HTTP layer dispatches into.
type Deps struct {
	DB       *gorm.DB
	Auth     services.Authenticator
	Tokens   *services.TokenService
	Users    *services.UserService
	Sessions *services.SessionService
	Teams    *services.TeamService
	Players  *services.PlayerService
	Games    *services.GameService
}

// SetupRoutes mounts the public routes first and everything else behind
// a single authenticated group.
func SetupRoutes(app *fiber.App, d Deps) {
	// 🔓 Public
	setupHealthRoutes(app, d.DB)
	SetupAuthRoutes(app, d.Tokens)

	// 🔐 Everything below needs a valid token
	secured := app.Group("/", middleware.RequireUser(d.Auth))

	SetupAccountRoutes(secured, d.Tokens)
	SetupRegistrationRoutes(secured, d.Users)
	SetupTeamRoutes(secured, d.Teams)
	SetupPlayerRoutes(secured, d.Players)
	SetupGameRoutes(secured, d.Games)
	SetupStatisticsRoutes(secured, d.Sessions)
}

func setupHealthRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
}
