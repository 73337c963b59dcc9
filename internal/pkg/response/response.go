package response

import (
	"github.com/gofiber/fiber/v2"
)

// Error sends the API error shape: a status code and {"error": message}.
// All errors on this surface are client input errors or not-found; there is
// no distinct server-fault envelope.
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{"error": message})
}
