package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/bookwatch/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "viewer:\n  trading_pair: ETH-USDT\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ETH-USDT", cfg.Viewer.TradingPair)
	assert.Equal(t, 10, cfg.Viewer.Lines)
	assert.Equal(t, time.Second, cfg.TickInterval())
	assert.Equal(t, "https://api.binance.com", cfg.Exchange.RESTBase)
	assert.Equal(t, 20, cfg.Exchange.Depth)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Storage.DSN, "recorder off by default")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BINANCE_API_KEY", "k")
	t.Setenv("BINANCE_API_SECRET", "s")

	path := writeConfig(t, "log:\n  level: warn\n")
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "k", cfg.Exchange.APIKey)
	assert.Equal(t, "s", cfg.Exchange.APISecret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "viewer: [not a map")
	_, err := config.Load(path)
	assert.Error(t, err)
}
