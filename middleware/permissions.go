// middleware/permissions.go
package middleware

import (
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
)

// Require rejects the request unless the current user passes every policy.
func Require(policies ...services.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := services.Authorize(CurrentUser(c), policies...); err != nil {
			return err
		}
		return c.Next()
	}
}
