// Package config loads game tuning from YAML and process settings from
// YAML plus environment variables.
package config

import "fmt"

// TicTacToeConfig tunes the tic-tac-toe variants.
type TicTacToeConfig struct {
	Supply  SupplyConfig  `yaml:"supply"`
	Fair    SupplyConfig  `yaml:"fair"`
	Display DisplayConfig `yaml:"display"`
}

// SupplyConfig sets the per-symbol mark supply.
type SupplyConfig struct {
	InitialCount int `yaml:"initial_count"`
}

// DisplayConfig toggles HUD elements.
type DisplayConfig struct {
	ShowOdds      bool `yaml:"show_odds"`      // next-draw probability line
	ShowRemaining bool `yaml:"show_remaining"` // remaining X/O counters
}

// Validate rejects configurations the engine cannot honour.
func (c TicTacToeConfig) Validate() error {
	if c.Supply.InitialCount < 0 {
		return fmt.Errorf("config: supply.initial_count must not be negative, got %d", c.Supply.InitialCount)
	}
	if c.Fair.InitialCount < 0 {
		return fmt.Errorf("config: fair.initial_count must not be negative, got %d", c.Fair.InitialCount)
	}
	return nil
}

// Variant names one way of assigning marks.
type Variant string

const (
	VariantWeighted Variant = "weighted" // supply-weighted draw, reference rules
	VariantFair     Variant = "fair"     // supply-weighted with a huge pool
	VariantClassic  Variant = "classic"  // no draw, marks follow the turn
)

// InitialCountFor returns the supply a variant starts with. Zero means the
// variant uses no supply, or that the engine default applies.
func (c TicTacToeConfig) InitialCountFor(v Variant) int {
	switch v {
	case VariantWeighted:
		return c.Supply.InitialCount
	case VariantFair:
		return c.Fair.InitialCount
	default:
		return 0
	}
}
