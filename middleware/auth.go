// middleware/auth.go
package middleware

import (
	"strings"

	"basketball-league/models"
	"basketball-league/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	userLocalKey  = "user"
	tokenLocalKey = "token"
)

// RequireUser resolves the Authorization header into the current user.
// Both "Token <key>" and "Bearer <key>" are accepted.
func RequireUser(auth services.Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key, err := tokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if err != nil {
			return err
		}

		user, err := auth.Authenticate(c.UserContext(), key)
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("🚫 authentication failed")
			return err
		}

		c.Locals(userLocalKey, user)
		c.Locals(tokenLocalKey, key)
		return c.Next()
	}
}

// CurrentUser returns the user attached by RequireUser, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}

func tokenFromHeader(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", services.ErrUnauthorized
	}
	scheme, key, ok := strings.Cut(header, " ")
	if !ok {
		return "", services.ErrInvalidToken
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
	default:
		return "", services.ErrUnauthorized
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, " ") {
		return "", services.ErrInvalidToken
	}
	return key, nil
}
