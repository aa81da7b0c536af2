package routes

import (
	"coinboard/config"
	"coinboard/controllers/admin"
	"coinboard/controllers/coin"
	"coinboard/controllers/payment"
	"coinboard/middlewares"
	"coinboard/store"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, cfg *config.Config, ledger *store.Ledger,
	payments *payment.Controller, coins *coin.Controller, admins *admin.Controller) {

	pay := app.Group("/payments")
	pay.Post("/create-charge", payments.CreateCharge)
	pay.Post("/webhook", middlewares.VerifyCoinbaseWebhook(cfg.CoinbaseWebhookSecret), payments.Webhook)
	pay.Get("/charge/:id", payments.GetCharge)
	pay.Get("/health", payments.Health)

	coinroutes := app.Group("/coins")
	coinroutes.Get("/", coins.List)
	coinroutes.Get("/:id", coins.Get)
	coinroutes.Post("/:id/boost", middlewares.UserAuth(ledger), coins.Boost)

	adminroutes := app.Group("/admin", middlewares.AdminAuth(cfg.AdminAPIKey))
	adminroutes.Get("/users", admins.ListUsers)
	adminroutes.Post("/users/:id/coins", admins.AddCoins)
}
