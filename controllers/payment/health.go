package payment

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func (h *Controller) Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":                  "OK",
		"timestamp":               time.Now().UTC().Format(time.RFC3339),
		"apiKeyConfigured":        h.Gateway.APIKey != "",
		"webhookSecretConfigured": h.WebhookSecretConfigured,
	})
}
