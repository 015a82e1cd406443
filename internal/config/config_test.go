package config_test

import (
	"testing"
	"time"

	"velour/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GO_ENV", "LOG_LEVEL", "STORAGE_DRIVER", "DATABASE_URL",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_SSLMODE",
		"FE_URL", "CART_STORAGE_KEY", "THEME_STORAGE_KEY", "ADMIN_PRODUCTS_KEY",
		"FORM_RELAY_URL", "FORM_RELAY_TIMEOUT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "dev", cfg.GoEnv)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, config.DriverMemory, cfg.StorageDriver)
	assert.Equal(t, 5432, cfg.PostgresPort)
	assert.Equal(t, "VELOUR-cart-storage", cfg.CartStorageKey)
	assert.Equal(t, "VELOUR-theme-storage", cfg.ThemeStorageKey)
	assert.Equal(t, "admin-products", cfg.AdminProductsKey)
	assert.Equal(t, 10*time.Second, cfg.FormRelayTimeout)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("GO_ENV", "prod")
	t.Setenv("STORAGE_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/velour")
	t.Setenv("CART_STORAGE_KEY", "cart")
	t.Setenv("FORM_RELAY_TIMEOUT", "3s")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.False(t, cfg.IsDev())
	assert.Equal(t, config.DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "cart", cfg.CartStorageKey)
	assert.Equal(t, 3*time.Second, cfg.FormRelayTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"port not number":        {"PORT": "http"},
		"pg port not number":     {"POSTGRES_PORT": "abc"},
		"bad timeout":            {"FORM_RELAY_TIMEOUT": "soon"},
		"negative shutdown":      {"SHUTDOWN_TIMEOUT": "-1s"},
		"unknown driver":         {"STORAGE_DRIVER": "redis"},
		"postgres without creds": {"STORAGE_DRIVER": "postgres"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
