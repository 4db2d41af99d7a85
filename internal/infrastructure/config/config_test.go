package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(writeConfig(t, "logging:\n  level: debug\n"))

	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 3, cfg.Simulation.SalesCycleMonths)
	assert.Equal(t, "competitive", cfg.Simulation.AllocationStrategy)
	assert.Equal(t, 6, cfg.Simulation.Liquidation.MinAgeMonths)
	assert.InDelta(t, 0.3, cfg.Simulation.Liquidation.WriteDownRate, 1e-9)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 1, cfg.Autoplay.Burst)
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
simulation:
  seed: 99
  sales_cycle_months: 1
  allocation_strategy: price_order
  liquidation:
    min_age_months: 4
    aggressive_threshold: 0.7
    conservative_threshold: 0.5
    write_down_rate: 0.25
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.Simulation.Seed)
	assert.Equal(t, 1, cfg.Simulation.SalesCycleMonths)
	assert.Equal(t, "price_order", cfg.Simulation.AllocationStrategy)
	assert.Equal(t, 4, cfg.Simulation.Liquidation.MinAgeMonths)
	assert.InDelta(t, 0.7, cfg.Simulation.Liquidation.AggressiveThreshold, 1e-9)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  allocation_strategy: competitive\n")
	t.Setenv("BIKESIM_SIMULATION_ALLOCATION_STRATEGY", "price_order")
	t.Setenv("DATABASE_URL", "postgres://bikesim@db/bikesim")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "price_order", cfg.Simulation.AllocationStrategy)
	assert.Equal(t, "postgres://bikesim@db/bikesim", cfg.Database.URL)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown strategy", "simulation:\n  allocation_strategy: lottery\n"},
		{"cycle too long", "simulation:\n  sales_cycle_months: 13\n"},
		{"conservative above aggressive", "simulation:\n  liquidation:\n    aggressive_threshold: 0.3\n    conservative_threshold: 0.5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestUserConfigHandler_DefaultSession(t *testing.T) {
	handler := config.NewUserConfigHandlerAt(filepath.Join(t.TempDir(), "nested", "config.json"))

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Empty(t, empty.DefaultSessionID)

	require.NoError(t, handler.SetDefaultSession("session-1"))

	loaded, err := handler.Load()
	require.NoError(t, err)
	assert.Equal(t, "session-1", loaded.DefaultSessionID)
}
