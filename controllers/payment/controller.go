package payment

import (
	"errors"

	"coinboard/helpers"
	"coinboard/providers/coinbase"
	"coinboard/services"
	"coinboard/store"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Ledger     *store.Ledger
	Gateway    *coinbase.Client
	Reconciler *services.Reconciler

	// BaseURL is where the gateway sends the shopper back after checkout.
	BaseURL string

	WebhookSecretConfigured bool
}

func New(ledger *store.Ledger, gateway *coinbase.Client, reconciler *services.Reconciler, baseURL string, webhookSecretConfigured bool) *Controller {
	return &Controller{
		Ledger:                  ledger,
		Gateway:                 gateway,
		Reconciler:              reconciler,
		BaseURL:                 baseURL,
		WebhookSecretConfigured: webhookSecretConfigured,
	}
}

// gatewayError maps the outbound client's error taxonomy onto the HTTP
// statuses the charge endpoints surface.
func gatewayError(c *fiber.Ctx, err error) error {
	var apiErr *coinbase.APIError
	switch {
	case errors.Is(err, coinbase.ErrAuth):
		return helpers.JSONErrorStatus(c, fiber.StatusUnauthorized,
			"invalid_api_key", "The payment gateway rejected the configured API key.")
	case errors.Is(err, coinbase.ErrForbidden):
		return helpers.JSONErrorStatus(c, fiber.StatusForbidden,
			"access_forbidden", "The payment gateway refused the request. Check IP whitelisting.")
	case errors.Is(err, coinbase.ErrTimeout):
		return helpers.JSONErrorStatus(c, fiber.StatusGatewayTimeout,
			"gateway_timeout", "The payment gateway did not respond in time.")
	case errors.Is(err, coinbase.ErrUnavailable):
		return helpers.JSONErrorStatus(c, fiber.StatusServiceUnavailable,
			"gateway_unavailable", "No response from the payment gateway.")
	case errors.As(err, &apiErr):
		status := fiber.StatusBadGateway
		if apiErr.StatusCode >= 400 {
			status = apiErr.StatusCode
		}
		return helpers.JSONErrorStatus(c, status, "gateway_error", apiErr.Error())
	default:
		return helpers.JSONErrorStatus(c, fiber.StatusInternalServerError,
			"internal_error", err.Error())
	}
}
