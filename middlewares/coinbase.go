package middlewares

import (
	"log"

	"coinboard/providers/coinbase"

	"github.com/gofiber/fiber/v2"
)

// VerifyCoinbaseWebhook authenticates the raw request body against the
// gateway signature header before anything downstream parses it. An
// unset secret rejects every delivery; it never degrades to a pass.
func VerifyCoinbaseWebhook(secret string) fiber.Handler {
	if secret == "" {
		log.Println("❌ COINBASE_WEBHOOK_SECRET is not set. Webhook processing will fail.")
	}

	return func(c *fiber.Ctx) error {
		if secret == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "webhook secret not configured",
			})
		}

		signature := c.Get(coinbase.SignatureHeader)
		if !coinbase.VerifySignature(secret, c.Body(), signature) {
			log.Printf("❌ invalid webhook signature (received %q)", signature)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid webhook signature",
			})
		}

		return c.Next()
	}
}
