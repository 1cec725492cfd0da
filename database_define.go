package main

import (
	"os"

	"my-expenses-backend/config"
)

// LoadConfig loads configuration from environment variables
func LoadConfig() *config.Config {

	config := &config.Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		Port:                   getEnv("PORT", "3001"),
		LogLevel:               getEnv("LOG_LEVEL", "info"),
		DatabaseURL:            getEnv("DATABASE_URL", "mongodb://localhost:27017"),
		DatabaseName:           getEnv("DATABASE_NAME", "MyExpenses_Dev"),
		JWTSecret:              getEnv("JWT_SECRET", "your-dev-secret-key"),
		CollectionUserName:     "users",
		CollectionExpensesName: "expenses",
		CollectionWalletsName:  "wallets",
	}

	return config
}

// getEnv gets environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
