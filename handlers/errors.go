// handlers/errors.go
package handlers

import (
	"errors"

	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var kindStatus = map[services.ErrorKind]int{
	services.KindUnauthorized:          fiber.StatusUnauthorized,
	services.KindForbidden:             fiber.StatusForbidden,
	services.KindNotFound:              fiber.StatusNotFound,
	services.KindDuplicateEmail:        fiber.StatusBadRequest,
	services.KindDuplicateUsername:     fiber.StatusBadRequest,
	services.KindCoachAlreadyHasTeam:   fiber.StatusBadRequest,
	services.KindTeamFull:              fiber.StatusBadRequest,
	services.KindPlayerAlreadyAssigned: fiber.StatusBadRequest,
	services.KindValidation:            fiber.StatusBadRequest,
}

// ErrorHandler renders every failure as {"detail": ..., "code": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var domainErr *services.Error
	if errors.As(err, &domainErr) {
		status, ok := kindStatus[domainErr.Kind]
		if !ok {
			status = fiber.StatusBadRequest
		}
		detail := domainErr.Detail
		if detail == "" {
			detail = "Invalid request."
		}
		return c.Status(status).JSON(fiber.Map{
			"detail": detail,
			"code":   domainErr.Kind,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{
			"detail": fiberErr.Message,
			"code":   "http_error",
		})
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("❌ unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"detail": "Internal server error.",
		"code":   "server_error",
	})
}
