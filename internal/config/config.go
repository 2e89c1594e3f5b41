package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LogLevel string
	Env      string

	JWTSecret string
}

func Load() (*Config, error) {
	// A missing .env is fine; env vars and defaults cover everything.
	_ = godotenv.Load()

	return &Config{
		Port:      GetEnv("PORT", "8081"),
		Env:       GetEnv("ENV", "development"),
		LogLevel:  GetEnv("LOG_LEVEL", "info"),
		JWTSecret: GetEnv("JWT_SECRET", "luma-dev-secret"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
