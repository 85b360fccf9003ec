// Package config provides application configuration.
//
// Values come from the environment; main loads a .env file first (godotenv).
//
// Environment variables:
//   PORT            listen port (5175)
//   LOG_LEVEL       zerolog level (info)
//   APP_ENV         "production" enables Secure/SameSite=None cookies (development)
//   CLIENT_ORIGIN   CORS origin (http://localhost:5173)
//   PUBLIC_URL      base URL used in share links (http://localhost:5175)
//   SESSION_SECRET  HMAC key for the session cookie (dev default, required in production)
//   SESSION_COOKIE  cookie name (clue_session)
//   SESSION_DAYS    cookie lifetime in days (180)
//   STORE           "memory" | "sqlite" (memory)
//   DB_PATH         SQLite file when STORE=sqlite (./data/clue.db)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const devSecret = "dev_secret_change_me"

// maxSessionDays bounds SESSION_DAYS well below time.Duration overflow.
const maxSessionDays = 3650

// Config holds all application configuration.
type Config struct {
	Port          string
	LogLevel      string
	Env           string
	ClientOrigin  string
	PublicURL     string
	SessionSecret string
	SessionCookie string
	SessionTTL    time.Duration
	Store         string
	DBPath        string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	days := getEnvInt("SESSION_DAYS", 180)
	if days > maxSessionDays {
		return nil, fmt.Errorf("invalid configuration: SESSION_DAYS must be <= %d, got %d", maxSessionDays, days)
	}
	cfg := &Config{
		Port:          getEnv("PORT", "5175"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Env:           getEnv("APP_ENV", "development"),
		ClientOrigin:  getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		PublicURL:     strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:5175"), "/"),
		SessionSecret: getEnv("SESSION_SECRET", devSecret),
		SessionCookie: getEnv("SESSION_COOKIE", "clue_session"),
		SessionTTL:    time.Duration(days) * 24 * time.Hour,
		Store:         strings.ToLower(getEnv("STORE", "memory")),
		DBPath:        getEnv("DB_PATH", "./data/clue.db"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks field values and combinations.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.SessionCookie == "" {
		return fmt.Errorf("SESSION_COOKIE cannot be empty")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_DAYS must be > 0")
	}
	if c.SessionTTL > maxSessionDays*24*time.Hour {
		return fmt.Errorf("SESSION_DAYS must be <= %d", maxSessionDays)
	}
	switch c.Store {
	case "memory":
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH cannot be empty when STORE=sqlite")
		}
	default:
		return fmt.Errorf("STORE must be memory or sqlite, got %q", c.Store)
	}
	if c.IsProduction() && (c.SessionSecret == "" || c.SessionSecret == devSecret) {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool { return c.Env == "production" }

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
