package config

import (
	_ "embed"
)

//go:embed defaults/tictactoe.yaml
var defaultTicTacToeYAML []byte

// DefaultTicTacToeConfig returns the built-in tuning. It matches the
// embedded defaults/tictactoe.yaml.
func DefaultTicTacToeConfig() TicTacToeConfig {
	return TicTacToeConfig{
		Supply: SupplyConfig{InitialCount: 5},
		Fair:   SupplyConfig{InitialCount: 1000},
		Display: DisplayConfig{
			ShowOdds:      true,
			ShowRemaining: true,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "tictactoe", "tictactoe_fair", "tictactoe_classic":
		return defaultTicTacToeYAML
	default:
		return nil
	}
}
