// handlers/player_routes.go
package handlers

import (
	"basketball-league/middleware"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
)

func SetupPlayerRoutes(secured fiber.Router, players *services.PlayerService) {
	admin := middleware.Require(services.RequireAdmin)
	coach := middleware.Require(services.RequireCoach)

	secured.Put("/players/games-played/", coach, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		p, err := players.UpdateCountPlayedGames(body.String("player_id"))
		if err != nil {
			return err
		}
		return c.JSON(newPlayerView(p))
	})

	secured.Put("/players/average-score/", admin, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		p, err := players.UpdatePlayerAverageScore(body.String("player_id"), body["average_score"])
		if err != nil {
			return err
		}
		return c.JSON(newPlayerView(p))
	})

	secured.Get("/players/:id/", coach, func(c *fiber.Ctx) error {
		p, err := players.GetPlayer(middleware.CurrentUser(c), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(newPlayerView(p))
	})

	secured.Delete("/players/:id/remove/", coach, func(c *fiber.Ctx) error {
		if err := players.RemovePlayer(middleware.CurrentUser(c), c.Params("id")); err != nil {
			return err
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
