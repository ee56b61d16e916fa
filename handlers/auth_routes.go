// handlers/auth_routes.go
package handlers

import (
	"basketball-league/middleware"
	"basketball-league/models"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes mounts the login endpoint. It must stay outside the
// authenticated group.
func SetupAuthRoutes(app fiber.Router, tokens *services.TokenService) {
	app.Post("/api-token-auth/", func(c *fiber.Ctx) error {
		body, err := parseBody(c)
		if err != nil {
			return err
		}
		password, _ := body["password"].(string)
		token, _, err := tokens.Login(body.String("username"), password)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"token": token.Key})
	})
}

// SetupAccountRoutes mounts the routes about the caller's own account.
func SetupAccountRoutes(secured fiber.Router, tokens *services.TokenService) {
	secured.Get("/me/", func(c *fiber.Ctx) error {
		return c.JSON(newUserView(middleware.CurrentUser(c)))
	})

	secured.Post("/logout/", func(c *fiber.Ctx) error {
		if err := tokens.Logout(middleware.CurrentUser(c)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"detail": "Successfully logged out."})
	})
}

// SetupRegistrationRoutes lets admins create coach and player accounts.
func SetupRegistrationRoutes(secured fiber.Router, users *services.UserService) {
	admin := middleware.Require(services.RequireAdmin)

	register := func(role string) fiber.Handler {
		return func(c *fiber.Ctx) error {
			body, err := parseBody(c)
			if err != nil {
				return err
			}
			user, err := users.RegisterUser(role, body.String("email"), body.String("username"))
			if err != nil {
				return err
			}
			return c.Status(fiber.StatusCreated).JSON(newRegisteredView(user))
		}
	}

	secured.Post("/register/coach/", admin, register(models.RoleCoach))
	secured.Post("/register/player/", admin, register(models.RolePlayer))
}
