package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepulse/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 0.001, cfg.Trading.FeeRate)
	assert.Equal(t, int64(50), cfg.Trading.XPPerTrade)
	assert.Equal(t, 50000.0, cfg.Trading.StartingCash)
	assert.Len(t, cfg.Market.Symbols, 5)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  port: "9090"
trading:
  fee_rate: 0.002
  starting_cash: 25000
market:
  tick_ms: 1000
  symbols:
    - symbol: BTC
      name: Bitcoin
      price: 65000
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 0.002, cfg.Trading.FeeRate)
	assert.Equal(t, 25000.0, cfg.Trading.StartingCash)
	assert.Equal(t, 1000, cfg.Market.TickMs)
	require.Len(t, cfg.Market.Symbols, 1)
	assert.Equal(t, "BTC", cfg.Market.Symbols[0].Symbol)
	// Untouched sections keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, int64(50), cfg.Trading.XPPerTrade)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
}
