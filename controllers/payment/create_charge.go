package payment

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"coinboard/helpers"
	"coinboard/models"
	"coinboard/providers/coinbase"
	"coinboard/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateChargeRequest struct {
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Amount      models.FlexibleString `json:"amount"`
	Currency    string                `json:"currency"`
	Metadata    struct {
		Crypto    string                `json:"crypto"`
		UserID    string                `json:"userId"`
		CoinCount models.FlexibleString `json:"coinCount"`
	} `json:"metadata"`
}

// CreateCharge opens a payment intent with the gateway. The local
// transaction row is written before the outbound call so a fast webhook
// can never arrive ahead of its idempotency witness.
func (h *Controller) CreateCharge(c *fiber.Ctx) error {
	var req CreateChargeRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONErrorStatus(c, fiber.StatusBadRequest,
			"invalid_json", "Request body is not valid JSON.")
	}

	if req.Name == "" || req.Description == "" || req.Amount == "" || req.Currency == "" ||
		req.Metadata.Crypto == "" || req.Metadata.UserID == "" || req.Metadata.CoinCount == "" {
		return helpers.JSONErrorStatus(c, fiber.StatusBadRequest, "missing_fields",
			"Missing required fields: name, description, amount, currency, crypto, userId, or coinCount in metadata.")
	}

	coinCount, err := req.Metadata.CoinCount.ToInt64()
	if err != nil || coinCount <= 0 {
		return helpers.JSONErrorStatus(c, fiber.StatusBadRequest,
			"invalid_coin_count", "coinCount must be a positive integer.")
	}

	amount, err := decimal.NewFromString(string(req.Amount))
	if err != nil || !amount.IsPositive() {
		return helpers.JSONErrorStatus(c, fiber.StatusBadRequest,
			"invalid_amount", "amount must be a positive number.")
	}

	if _, err := h.Ledger.GetUser(c.Context(), req.Metadata.UserID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return helpers.JSONErrorStatus(c, fiber.StatusBadRequest,
				"user_not_found", "User with ID "+req.Metadata.UserID+" not found.")
		}
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError,
			"storage_error", "Failed to look up user.")
	}

	transactionID := uuid.New().String()

	trx := &models.Transaction{
		TransactionID: transactionID,
		UserID:        req.Metadata.UserID,
		CoinCount:     coinCount,
		Status:        models.TxStatusPending,
	}
	if err := h.Ledger.CreateTransaction(c.Context(), trx); err != nil {
		log.Printf("❌ failed to persist transaction %s: %v", transactionID, err)
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError,
			"storage_error", "Failed to persist payment intent.")
	}

	charge, err := h.Gateway.CreateCharge(c.Context(), &coinbase.CreateChargeRequest{
		Name:        req.Name,
		Description: req.Description,
		LocalPrice: coinbase.Price{
			Amount:   amount.String(),
			Currency: req.Currency,
		},
		PricingType:       "fixed_price",
		SupportedNetworks: []string{strings.ToUpper(req.Metadata.Crypto)},
		Metadata: coinbase.ChargeMetadata{
			UserID:        req.Metadata.UserID,
			CoinCount:     models.FlexibleString(strconv.FormatInt(coinCount, 10)),
			TransactionID: transactionID,
		},
		RedirectURL: h.BaseURL + "/boost/success",
		CancelURL:   h.BaseURL + "/boost/cancel",
	})
	if err != nil {
		log.Printf("❌ charge creation failed for transaction %s: %v", transactionID, err)
		if _, serr := h.Ledger.SetTransactionStatus(c.Context(), transactionID, models.TxStatusFailed); serr != nil {
			log.Printf("❌ failed to mark transaction %s failed: %v", transactionID, serr)
		}
		return gatewayError(c, err)
	}

	if err := h.Ledger.AttachCharge(c.Context(), transactionID, charge.ID, charge.Pricing); err != nil {
		log.Printf("⚠️ failed to attach charge %s to transaction %s: %v", charge.ID, transactionID, err)
	}

	log.Printf("✅ charge %s created for user %s (transaction %s)", charge.ID, req.Metadata.UserID, transactionID)
	return c.JSON(charge)
}
