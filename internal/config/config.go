// Package config loads table and seat configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-engine/internal/engine"
)

// Config represents the complete simulator configuration
type Config struct {
	Table TableConfig  `hcl:"table,block"`
	Seats []SeatConfig `hcl:"seat,block"`
}

// TableConfig defines the table stakes
type TableConfig struct {
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	EquitySamples int    `hcl:"equity_samples,optional"`
	LogLevel      string `hcl:"log_level,optional"`
}

// SeatConfig defines a single seat at the table
type SeatConfig struct {
	Name string `hcl:"name,label"`
	Bot  bool   `hcl:"bot,optional"`
}

// Default returns the default three-handed configuration: one human seat
// and two bots at 25/50 blinds.
func Default() *Config {
	return &Config{
		Table: TableConfig{
			SmallBlind:    25,
			BigBlind:      50,
			StartingChips: 2000,
			EquitySamples: 1000,
			LogLevel:      "info",
		},
		Seats: []SeatConfig{
			{Name: "You", Bot: false},
			{Name: "Bot 1", Bot: true},
			{Name: "Bot 2", Bot: true},
		},
	}
}

// Load loads configuration from an HCL file, falling back to Default when
// the file does not exist
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	def := Default()
	if config.Table.SmallBlind == 0 {
		config.Table.SmallBlind = def.Table.SmallBlind
	}
	if config.Table.BigBlind == 0 {
		config.Table.BigBlind = def.Table.BigBlind
	}
	if config.Table.StartingChips == 0 {
		config.Table.StartingChips = def.Table.StartingChips
	}
	if config.Table.EquitySamples == 0 {
		config.Table.EquitySamples = def.Table.EquitySamples
	}
	if config.Table.LogLevel == "" {
		config.Table.LogLevel = def.Table.LogLevel
	}
	if len(config.Seats) == 0 {
		config.Seats = def.Seats
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Table.StartingChips < c.Table.BigBlind {
		return fmt.Errorf("starting chips must cover the big blind")
	}
	if len(c.Seats) < 2 {
		return fmt.Errorf("at least two seats must be configured")
	}
	if len(c.Seats) > 10 {
		return fmt.Errorf("at most ten seats may be configured")
	}
	for i, seat := range c.Seats {
		if seat.Name == "" {
			return fmt.Errorf("seat %d: name must not be empty", i)
		}
	}
	return nil
}

// EngineConfig converts the loaded configuration into an engine.Config
func (c *Config) EngineConfig() engine.Config {
	players := make([]engine.PlayerConfig, len(c.Seats))
	for i, seat := range c.Seats {
		players[i] = engine.PlayerConfig{
			ID:    fmt.Sprintf("player-%d", i+1),
			Name:  seat.Name,
			IsBot: seat.Bot,
		}
	}
	return engine.Config{
		Players:       players,
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		StartingChips: c.Table.StartingChips,
	}
}
