package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the dashboard API.
type Config struct {
	Port         string
	Environment  string
	Debug        bool
	JWTSecret    string
	TickInterval time.Duration
}

// Load reads configuration from an optional .env file and the environment.
// Missing values fall back to development defaults.
func Load() Config {
	// A missing .env file is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENV", "development"),
		Debug:        os.Getenv("DEBUG") == "true",
		JWTSecret:    getEnv("JWT_SECRET", "open-orders-secret-key"),
		TickInterval: 3 * time.Second,
	}

	if v := os.Getenv("TICK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TickInterval = d
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
