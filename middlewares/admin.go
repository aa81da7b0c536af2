package middlewares

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminAuth guards the admin routes with the pre-shared X-Admin-Key.
func AdminAuth(expectedKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-Admin-Key")
		if expectedKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expectedKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid admin credentials",
			})
		}
		return c.Next()
	}
}
