package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Steam   SteamConfig
	Pricing PricingConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// SteamConfig contains options for the Steam community market API.
type SteamConfig struct {
	BaseURL  string
	AppID    string
	Currency string
}

// PricingConfig holds price-refresh scheduling settings.
type PricingConfig struct {
	CronSchedule string
	RequestDelay time.Duration
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	delayText := getenvWithDefault("PRICE_REQUEST_DELAY", "4500ms")
	delay, err := time.ParseDuration(delayText)
	if err != nil {
		return nil, fmt.Errorf("invalid PRICE_REQUEST_DELAY %q: %w", delayText, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "skinledger"),
		},
		Steam: SteamConfig{
			BaseURL:  getenvWithDefault("STEAM_BASE_URL", "https://steamcommunity.com"),
			AppID:    getenvWithDefault("STEAM_APP_ID", "730"),
			Currency: getenvWithDefault("STEAM_CURRENCY", "1"),
		},
		Pricing: PricingConfig{
			CronSchedule: getenvWithDefault("PRICE_REFRESH_SCHEDULE", "0 */2 * * *"),
			RequestDelay: delay,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.MongoDB.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.MongoDB.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	switch {
	case c.Steam.BaseURL == "":
		return errors.New("STEAM_BASE_URL must not be empty")
	case c.Steam.AppID == "":
		return errors.New("STEAM_APP_ID must not be empty")
	case c.Steam.Currency == "":
		return errors.New("STEAM_CURRENCY must not be empty")
	}

	if c.Pricing.CronSchedule == "" {
		return errors.New("PRICE_REFRESH_SCHEDULE must be provided")
	}

	if c.Pricing.RequestDelay < 0 {
		return errors.New("PRICE_REQUEST_DELAY must not be negative")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
