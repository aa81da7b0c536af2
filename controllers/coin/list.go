package coin

import (
	"errors"

	"coinboard/models"
	"coinboard/store"

	"github.com/gofiber/fiber/v2"
)

func (h *Controller) List(c *fiber.Ctx) error {
	status := c.Query("status", models.CoinStatusApproved)
	coins, err := h.Ledger.ListCoins(c.Context(), status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(coins)
}

func (h *Controller) Get(c *fiber.Ctx) error {
	coin, err := h.Ledger.GetCoin(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrCoinNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Coin not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(coin)
}
