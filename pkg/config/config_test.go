package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.App.Storage)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 60*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, "10", cfg.Inventory.FallbackUnitPrice.String())
	assert.Equal(t, ":9091", cfg.Worker.MetricsAddr)
	assert.Equal(t, "demo-password", cfg.App.DemoPassword)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE", "POSTGRES")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("CACHE_TTL_SECONDS", "5")
	t.Setenv("INVENTORY_FALLBACK_UNIT_PRICE", "12.5")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/sc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.App.Storage)
	assert.Equal(t, 9000, cfg.HTTP.Port)
	assert.Equal(t, 5*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, "12.5", cfg.Inventory.FallbackUnitPrice.String())
	assert.Equal(t, "postgres://u:p@db:5432/sc", cfg.DB.ConnectionString())
}

func TestLoad_PuertoInvalidoUsaDefault(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("HTTP_PORT", "abc")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("STORAGE", "sqlite")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_FallbackInvalido(t *testing.T) {
	t.Setenv("STORAGE", "memory")
	t.Setenv("INVENTORY_FALLBACK_UNIT_PRICE", "diez")

	_, err := Load()
	assert.Error(t, err)
}
