package coin

import (
	"errors"
	"log"

	"coinboard/helpers"
	"coinboard/models"
	"coinboard/store"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Ledger *store.Ledger
}

func New(ledger *store.Ledger) *Controller {
	return &Controller{Ledger: ledger}
}

type BoostRequest struct {
	Coins int64 `json:"coins"`
}

// Boost spends the authenticated user's boost balance onto a coin.
func (h *Controller) Boost(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "missing user identity",
		})
	}

	var req BoostRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Coins <= 0 {
		return helpers.JSONError(c, "BOOST_AMOUNT_MUST_BE_POSITIVE")
	}

	coinID := c.Params("id")
	updatedUser, updatedCoin, err := h.Ledger.SpendCoins(c.Context(), user.UserID, coinID, req.Coins)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrCoinNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Coin not found"})
		case errors.Is(err, store.ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		case errors.Is(err, store.ErrInsufficientBalance):
			return helpers.JSONError(c, "INSUFFICIENT_COINS")
		default:
			log.Printf("❌ boost failed for user %s on coin %s: %v", user.UserID, coinID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
		}
	}

	log.Printf("✅ coin %s boosted by %d (user %s, remaining %d)", coinID, req.Coins, user.UserID, updatedUser.CoinCount)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":        "Coin boosted successfully",
		"remainingCoins": updatedUser.CoinCount,
		"newBoostCount":  updatedCoin.Boosts,
	})
}
