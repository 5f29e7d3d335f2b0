package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allKeys = []string{
	"PORT", "LOG_LEVEL", "DB_DRIVER", "DB_DSN",
	"DEPOSITS_API_URL", "DEPOSITS_API_USER", "DEPOSITS_API_PASS", "DEPOSITS_API_TOKEN", "DEPOSITS_API_TIMEOUT",
	"DEFAULT_CUSTOMER_KEY", "DEFAULT_CURRENCY", "DEAL_DEBOUNCE", "WIZARD_TTL",
	"AUTH_USER", "AUTH_PASS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "duckdb", cfg.DBDriver)
	assert.Empty(t, cfg.DBDSN)
	assert.Equal(t, "http://localhost:9090/api/v1", cfg.DepositsURL)
	assert.Equal(t, 30*time.Second, cfg.DepositsTimeout)
	assert.Equal(t, "CUSTKEY001", cfg.CustomerKey)
	assert.Equal(t, "AED", cfg.DefaultCurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.DealDebounce)
	assert.Equal(t, 30*time.Minute, cfg.WizardTTL)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_DRIVER", "pgx")
	t.Setenv("DB_DSN", "postgres://localhost/deposits")
	t.Setenv("DEFAULT_CURRENCY", "usd")
	t.Setenv("DEAL_DEBOUNCE", "250ms")
	t.Setenv("DEPOSITS_API_TOKEN", "tok")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "postgres://localhost/deposits", cfg.DBDSN)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, 250*time.Millisecond, cfg.DealDebounce)
	assert.Equal(t, "tok", cfg.DepositsToken)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoad_InvalidDuration(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEPOSITS_API_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEPOSITS_API_TIMEOUT")

	t.Setenv("DEPOSITS_API_TIMEOUT", "")
	t.Setenv("WIZARD_TTL", "-5m")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}
