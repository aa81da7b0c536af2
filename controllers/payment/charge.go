package payment

import (
	"log"

	"coinboard/helpers"

	"github.com/gofiber/fiber/v2"
)

// GetCharge is a read-through status query against the gateway. It
// never mutates local transaction state; that is the reconciler's job.
func (h *Controller) GetCharge(c *fiber.Ctx) error {
	chargeID := c.Params("id")
	if chargeID == "" {
		return helpers.JSONErrorStatus(c, fiber.StatusBadRequest,
			"missing_charge_id", "Charge id is required.")
	}

	charge, err := h.Gateway.GetCharge(c.Context(), chargeID)
	if err != nil {
		log.Printf("❌ failed to fetch charge %s: %v", chargeID, err)
		return gatewayError(c, err)
	}

	return c.JSON(charge)
}
