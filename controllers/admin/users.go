package admin

import (
	"errors"
	"log"

	"coinboard/helpers"
	"coinboard/store"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Ledger *store.Ledger
}

func New(ledger *store.Ledger) *Controller {
	return &Controller{Ledger: ledger}
}

func (h *Controller) ListUsers(c *fiber.Ctx) error {
	users, err := h.Ledger.ListUsers(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}
	return c.JSON(users)
}

type AddCoinsRequest struct {
	Coins int64  `json:"coins"`
	Note  string `json:"note"`
}

// AddCoins applies an administrative credit to a user's boost balance.
func (h *Controller) AddCoins(c *fiber.Ctx) error {
	var req AddCoinsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Coins <= 0 {
		return helpers.JSONError(c, "COIN_AMOUNT_MUST_BE_POSITIVE")
	}

	note := req.Note
	if note == "" {
		note = "Administrative credit"
	}

	userID := c.Params("id")
	user, err := h.Ledger.CreditUser(c.Context(), userID, req.Coins, note)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
		}
		log.Printf("❌ admin credit failed for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server error"})
	}

	log.Printf("✅ credited %d coins to user %s (admin)", req.Coins, userID)
	return helpers.JSONSuccess(c, "Coins added successfully", fiber.Map{
		"id":        user.UserID,
		"coinCount": user.CoinCount,
	})
}
