package middlewares

import (
	"errors"

	"coinboard/store"

	"github.com/gofiber/fiber/v2"
)

// UserAuth resolves the caller's identity from the X-User-ID header.
// Token issuance and verification live in the fronting auth service;
// this layer only checks the account exists and is active.
func UserAuth(ledger *store.Ledger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Get("X-User-ID")
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing user identity",
			})
		}

		user, err := ledger.GetUser(c.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "unknown user",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to resolve user",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}
