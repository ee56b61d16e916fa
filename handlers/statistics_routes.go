// handlers/statistics_routes.go
package handlers

import (
	"bytes"
	"fmt"

	"basketball-league/middleware"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStatisticsRoutes(secured fiber.Router, sessions *services.SessionService) {
	admin := middleware.Require(services.RequireAdmin)

	secured.Get("/statistics/", admin, func(c *fiber.Ctx) error {
		stats, err := sessions.SiteStatistics()
		if err != nil {
			return err
		}
		return c.JSON(newStatisticsViews(stats))
	})

	secured.Get("/statistics/export.xlsx", admin, func(c *fiber.Ctx) error {
		stats, err := sessions.SiteStatistics()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := services.WriteStatisticsXLSX(&buf, stats); err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=\"statistics_%s.xlsx\"",
			sessions.Clock.Now().Format("20060102")))
		return c.Send(buf.Bytes())
	})
}
