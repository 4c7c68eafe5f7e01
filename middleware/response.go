package middleware

import (
	"github.com/gofiber/fiber/v2"

	"resto/config"
)

// JsonError writes a failure response in the shape the mobile client
// expects. detail is only exposed outside production.
func JsonError(c *fiber.Ctx, statusCode int, message string, detail error) error {
	body := fiber.Map{
		"success": false,
		"error":   message,
	}
	if detail != nil && config.AppConfig != nil && config.AppConfig.Env != "production" {
		body["message"] = detail.Error()
	}
	return c.Status(statusCode).JSON(body)
}

// ValidationErrorResponse rejects a malformed request before any service
// is invoked.
func ValidationErrorResponse(c *fiber.Ctx, message string) error {
	return JsonError(c, fiber.StatusBadRequest, message, nil)
}
