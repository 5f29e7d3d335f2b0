// Package config reads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config is the full service configuration.
type Config struct {
	Port     string
	LogLevel string

	DBDriver string
	DBDSN    string

	DepositsURL     string
	DepositsUser    string
	DepositsPass    string
	DepositsToken   string
	DepositsTimeout time.Duration

	CustomerKey     string
	DefaultCurrency string
	DealDebounce    time.Duration
	WizardTTL       time.Duration

	AuthUser string
	AuthPass string
}

// Load returns the configuration from environment variables, falling back to
// development defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DBDriver:        getEnv("DB_DRIVER", "duckdb"),
		DBDSN:           os.Getenv("DB_DSN"),
		DepositsURL:     getEnv("DEPOSITS_API_URL", "http://localhost:9090/api/v1"),
		DepositsUser:    os.Getenv("DEPOSITS_API_USER"),
		DepositsPass:    os.Getenv("DEPOSITS_API_PASS"),
		DepositsToken:   os.Getenv("DEPOSITS_API_TOKEN"),
		CustomerKey:     getEnv("DEFAULT_CUSTOMER_KEY", "CUSTKEY001"),
		DefaultCurrency: strings.ToUpper(getEnv("DEFAULT_CURRENCY", "AED")),
		AuthUser:        os.Getenv("AUTH_USER"),
		AuthPass:        os.Getenv("AUTH_PASS"),
	}

	var err error
	if cfg.DepositsTimeout, err = getDuration("DEPOSITS_API_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.DealDebounce, err = getDuration("DEAL_DEBOUNCE", 500*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.WizardTTL, err = getDuration("WIZARD_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SlogLevel maps LogLevel onto a slog level. Unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}
