// handlers/game_routes.go
package handlers

import (
	"basketball-league/middleware"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
)

func SetupGameRoutes(secured fiber.Router, games *services.GameService) {
	admin := middleware.Require(services.RequireAdmin)

	// any authenticated user
	secured.Get("/scoreboard/", func(c *fiber.Ctx) error {
		list, err := games.ListGames()
		if err != nil {
			return err
		}
		return c.JSON(newGameViews(list))
	})

	secured.Post("/games/create/", admin, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		game, err := games.CreateGame(body.String("team1_id"), body.String("team2_id"))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(newGameView(game))
	})

	secured.Put("/games/score/", admin, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		game, err := games.UpdateTeamScore(body.String("game_id"), body["team1_score"], body["team2_score"])
		if err != nil {
			return err
		}
		return c.JSON(newGameView(game))
	})

	secured.Put("/games/winner/", admin, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		game, err := games.SetGameWinner(body.String("game_id"), body["winner_id"])
		if err != nil {
			return err
		}
		return c.JSON(newGameView(game))
	})
}
