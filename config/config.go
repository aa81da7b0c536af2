package config

import (
	"os"
	"strconv"
)

type Config struct {
	Host string
	Port string

	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string
	AutoMigrate bool

	CoinbaseAPIKey        string
	CoinbaseWebhookSecret string
	CoinbaseAPIURL        string

	AppBaseURL  string
	AdminAPIKey string
}

func Load() *Config {
	autoMigrate, _ := strconv.ParseBool(os.Getenv("DB_AUTO_MIGRATE"))

	return &Config{
		Host: getenv("HOST", "127.0.0.1"),
		Port: getenv("PORT", "3000"),

		DBHost:      os.Getenv("DB_HOST"),
		DBPort:      os.Getenv("DB_PORT"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBSSLMode:   os.Getenv("DB_SSLMODE"),
		AutoMigrate: autoMigrate,

		CoinbaseAPIKey:        os.Getenv("COINBASE_API_KEY"),
		CoinbaseWebhookSecret: os.Getenv("COINBASE_WEBHOOK_SECRET"),
		CoinbaseAPIURL:        os.Getenv("COINBASE_API_URL"),

		AppBaseURL:  getenv("APP_BASE_URL", "http://localhost:3000"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
