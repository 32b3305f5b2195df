// Package config loads simulator configuration from HCL files.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// SimConfig is the complete simulator configuration.
type SimConfig struct {
	Table TableSettings `hcl:"table,block"`
	Seats []SeatSetting `hcl:"seat,block"`
}

// TableSettings describes the table every simulated hand is dealt on.
type TableSettings struct {
	SmallBlind      int   `hcl:"small_blind"`
	BigBlind        int   `hcl:"big_blind"`
	Seed            int64 `hcl:"seed,optional"`
	ActionTimeoutMS int   `hcl:"action_timeout_ms,optional"`
}

// SeatSetting describes one seated player.
type SeatSetting struct {
	Name     string `hcl:"name,label"`
	Chips    int    `hcl:"chips"`
	Strategy string `hcl:"strategy,optional"`
}

// Default returns the configuration used when no file is given: a 5/10
// three-handed table of calling players.
func Default() *SimConfig {
	return &SimConfig{
		Table: TableSettings{
			SmallBlind:      5,
			BigBlind:        10,
			ActionTimeoutMS: 5000,
		},
		Seats: []SeatSetting{
			{Name: "alice", Chips: 1000, Strategy: "call"},
			{Name: "bob", Chips: 1000, Strategy: "call"},
			{Name: "carol", Chips: 1000, Strategy: "rand"},
		},
	}
}

// Load reads a simulator configuration from an HCL file. A missing file
// yields the defaults.
func Load(filename string) (*SimConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg SimConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if cfg.Table.ActionTimeoutMS == 0 {
		cfg.Table.ActionTimeoutMS = 5000
	}
	for i := range cfg.Seats {
		if cfg.Seats[i].Strategy == "" {
			cfg.Seats[i].Strategy = "call"
		}
	}

	return &cfg, nil
}

// Validate checks the configuration against the table rules.
func (c *SimConfig) Validate() error {
	if c.Table.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive, got %d", c.Table.SmallBlind)
	}
	if c.Table.BigBlind <= c.Table.SmallBlind {
		return fmt.Errorf("big blind %d must exceed small blind %d", c.Table.BigBlind, c.Table.SmallBlind)
	}
	if c.Table.ActionTimeoutMS < 0 {
		return fmt.Errorf("action timeout must not be negative, got %d", c.Table.ActionTimeoutMS)
	}

	if len(c.Seats) < 2 || len(c.Seats) > 10 {
		return fmt.Errorf("a table seats 2 to 10 players, got %d", len(c.Seats))
	}

	validStrategies := map[string]bool{
		"call": true,
		"fold": true,
		"rand": true,
	}
	names := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		if seat.Name == "" {
			return fmt.Errorf("every seat needs a name")
		}
		if names[seat.Name] {
			return fmt.Errorf("duplicate seat name %s", seat.Name)
		}
		names[seat.Name] = true
		if seat.Chips <= 0 {
			return fmt.Errorf("seat %s: chips must be positive, got %d", seat.Name, seat.Chips)
		}
		if !validStrategies[seat.Strategy] {
			return fmt.Errorf("seat %s: unknown strategy %s", seat.Name, seat.Strategy)
		}
	}

	return nil
}
