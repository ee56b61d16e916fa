// handlers/team_routes.go
package handlers

import (
	"basketball-league/middleware"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
)

func SetupTeamRoutes(secured fiber.Router, teams *services.TeamService) {
	admin := middleware.Require(services.RequireAdmin)
	coach := middleware.Require(services.RequireCoach)
	player := middleware.Require(services.RequirePlayer)

	secured.Get("/teams/", admin, func(c *fiber.Ctx) error {
		list, err := teams.ListTeams()
		if err != nil {
			return err
		}
		return c.JSON(newTeamViews(list))
	})

	secured.Post("/teams/create/", coach, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		team, err := teams.CreateTeam(middleware.CurrentUser(c), body.String("team_name"))
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(newTeamView(team))
	})

	secured.Post("/teams/join/", player, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		p, err := teams.JoinTeam(middleware.CurrentUser(c), body.String("team_id"), body.String("player_name"), body["height"])
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(newPlayerView(p))
	})

	secured.Put("/teams/average-score/", admin, func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		team, err := teams.UpdateTeamAverageScore(body.String("team_id"), body["average_score"])
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"id": team.ID, "name": team.Name, "average_score": team.AverageScore})
	})

	secured.Get("/teams/:id/", coach, func(c *fiber.Ctx) error {
		team, err := teams.GetTeam(middleware.CurrentUser(c), c.Params("id"))
		if err != nil {
			return err
		}
		return c.JSON(newTeamView(team))
	})

	secured.Get("/teams/:id/players/", coach, func(c *fiber.Ctx) error {
		top, err := percentileFilter(c.Query("percentile"))
		if err != nil {
			return err
		}
		players, err := teams.ListPlayers(middleware.CurrentUser(c), c.Params("id"), top)
		if err != nil {
			return err
		}
		return c.JSON(newPlayerViews(players))
	})
}

// percentileFilter accepts only the 90th percentile.
func percentileFilter(q string) (bool, error) {
	switch q {
	case "":
		return false, nil
	case "90":
		return true, nil
	}
	return false, &services.Error{Kind: services.KindValidation, Detail: "Only percentile=90 is supported."}
}
