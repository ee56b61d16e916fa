// handlers/request.go
package handlers

import (
	"bytes"

	"basketball-league/services"
	"basketball-league/utils"

	"github.com/gofiber/fiber/v2"
)

type requestBody map[string]any

// parseBody decodes a JSON object body. An empty body is an empty object.
func parseBody(c *fiber.Ctx) (requestBody, error) {
	body := requestBody{}
	if len(bytes.TrimSpace(c.Body())) == 0 {
		return body, nil
	}
	if err := c.BodyParser(&body); err != nil {
		return nil, &services.Error{Kind: services.KindValidation, Detail: "Malformed request body.", Err: err}
	}
	return body, nil
}

func (b requestBody) String(key string) string {
	return utils.ToString(b[key])
}
