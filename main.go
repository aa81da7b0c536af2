package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"coinboard/config"
	"coinboard/controllers/admin"
	"coinboard/controllers/coin"
	"coinboard/controllers/payment"
	"coinboard/database"
	"coinboard/jobs"
	"coinboard/providers/coinbase"
	"coinboard/routes"
	"coinboard/services"
	"coinboard/store"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()

	if cfg.CoinbaseAPIKey == "" {
		log.Println("❌ COINBASE_API_KEY is not set. Payment processing will fail.")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	ledger := store.NewLedger(db)
	gateway := coinbase.NewClient(cfg.CoinbaseAPIURL, cfg.CoinbaseAPIKey)
	reconciler := services.NewReconciler(ledger)

	payments := payment.New(ledger, gateway, reconciler, cfg.AppBaseURL, cfg.CoinbaseWebhookSecret != "")
	coins := coin.New(ledger)
	admins := admin.New(ledger)

	app := fiber.New()
	routes.Setup(app, cfg, ledger, payments, coins, admins)
	jobs.StartSchedulers(ledger, gateway)

	addr := fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
	log.Println("Server running at", addr)

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Panicf("Failed to start server: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Gracefully shutting down...")
	if err := app.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited cleanly")
}
