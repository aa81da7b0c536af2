package payment

import (
	"encoding/json"
	"errors"
	"log"

	"coinboard/helpers"
	"coinboard/providers/coinbase"
	"coinboard/services"

	"github.com/gofiber/fiber/v2"
)

// Webhook consumes one gateway delivery. The signature middleware has
// already verified the raw body; only now is it parsed.
func (h *Controller) Webhook(c *fiber.Ctx) error {
	var ev coinbase.WebhookEvent
	if err := json.Unmarshal(c.Body(), &ev); err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusBadRequest,
			"invalid_payload", "Webhook body is not valid JSON.")
	}

	log.Printf("webhook received: type=%s event=%s charge=%s", ev.Type, ev.ID, ev.Data.ID)

	if err := h.Reconciler.HandleEvent(c.Context(), &ev); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			return helpers.JSONErrorStatus(c, fiber.StatusBadRequest, "invalid_metadata", verr.Error())
		}
		log.Printf("❌ webhook processing failed: %v", err)
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError,
			"reconciliation_failed", "Failed to update ledger after multiple attempts.")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Webhook received and processed",
	})
}
