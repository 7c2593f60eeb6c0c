package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const ticTacToeFile = "tictactoe.yaml"

// LoadTicTacToe loads tic-tac-toe tuning.
// Search order: customPath -> ~/.arcade/configs/tictactoe.yaml -> ./configs/tictactoe.yaml -> embedded default
func LoadTicTacToe(customPath string) (TicTacToeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TicTacToeConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseTicTacToe(data)
		if err != nil {
			return TicTacToeConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Broken files further down the search order are skipped, not fatal.
	if userCfgPath := userConfigPath(ticTacToeFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTicTacToe(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", ticTacToeFile)); err == nil {
		if cfg, err := ParseTicTacToe(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := ParseTicTacToe(defaultTicTacToeYAML)
	if err != nil {
		return DefaultTicTacToeConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTicTacToe decodes YAML on top of the built-in defaults, so a file
// only needs the keys it changes.
func ParseTicTacToe(data []byte) (TicTacToeConfig, error) {
	cfg := DefaultTicTacToeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TicTacToeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TicTacToeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
