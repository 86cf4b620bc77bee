package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 25, cfg.Table.SmallBlind)
	assert.Equal(t, 50, cfg.Table.BigBlind)
	assert.Equal(t, 2000, cfg.Table.StartingChips)
	require.Len(t, cfg.Seats, 3)
	assert.Equal(t, "You", cfg.Seats[0].Name)
	assert.False(t, cfg.Seats[0].Bot)
	assert.True(t, cfg.Seats[1].Bot)
	assert.True(t, cfg.Seats[2].Bot)

	require.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileFallsBackToDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesHCL(t *testing.T) {
	path := writeConfig(t, `
table {
  small_blind    = 10
  big_blind      = 20
  starting_chips = 1000
}

seat "Hero" {}

seat "Villain" {
  bot = true
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Table.SmallBlind)
	assert.Equal(t, 20, cfg.Table.BigBlind)
	assert.Equal(t, 1000, cfg.Table.StartingChips)
	require.Len(t, cfg.Seats, 2)
	assert.Equal(t, "Hero", cfg.Seats[0].Name)
	assert.False(t, cfg.Seats[0].Bot)
	assert.Equal(t, "Villain", cfg.Seats[1].Name)
	assert.True(t, cfg.Seats[1].Bot)

	// Unset fields pick up defaults
	assert.Equal(t, Default().Table.EquitySamples, cfg.Table.EquitySamples)
	assert.Equal(t, "info", cfg.Table.LogLevel)
}

func TestLoad_InvalidHCL(t *testing.T) {
	path := writeConfig(t, `table { small_blind = `)
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero small blind", func(c *Config) { c.Table.SmallBlind = 0 }},
		{"big blind below small", func(c *Config) { c.Table.BigBlind = 10 }},
		{"chips below big blind", func(c *Config) { c.Table.StartingChips = 10 }},
		{"one seat", func(c *Config) { c.Seats = c.Seats[:1] }},
		{"empty seat name", func(c *Config) { c.Seats[0].Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Default()
	ec := cfg.EngineConfig()

	assert.Equal(t, 25, ec.SmallBlind)
	assert.Equal(t, 50, ec.BigBlind)
	assert.Equal(t, 2000, ec.StartingChips)
	require.Len(t, ec.Players, 3)
	assert.Equal(t, "player-1", ec.Players[0].ID)
	assert.Equal(t, "You", ec.Players[0].Name)
	assert.False(t, ec.Players[0].IsBot)
	assert.True(t, ec.Players[2].IsBot)
}
