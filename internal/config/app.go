package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// AppConfig holds process-level settings shared by every command. Values
// come from an optional YAML file, then ARCADE_* environment variables,
// then command-line flags applied by the caller.
type AppConfig struct {
	LogLevel string    `yaml:"log-level" env:"ARCADE_LOG_LEVEL" env-default:"info"`
	LogFile  string    `yaml:"log-file" env:"ARCADE_LOG_FILE"`
	DBPath   string    `yaml:"db-path" env:"ARCADE_DB"`
	TickRate int       `yaml:"tick-rate" env:"ARCADE_FPS" env-default:"30"`
	SSH      SSHConfig `yaml:"ssh"`
}

// SSHConfig configures the serve command.
type SSHConfig struct {
	Address     string        `yaml:"address" env:"ARCADE_SSH_ADDR" env-default:":2222"`
	HostKeyPath string        `yaml:"host-key" env:"ARCADE_SSH_HOST_KEY" env-default:".ssh/arcade_ed25519"`
	IdleTimeout time.Duration `yaml:"idle-timeout" env:"ARCADE_SSH_IDLE_TIMEOUT" env-default:"30m"`
}

// LoadApp reads the process config. An empty path, or a path that does not
// exist, falls back to environment variables and defaults only.
func LoadApp(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, cfg); err != nil {
				return nil, fmt.Errorf("unable to load config file: %w", err)
			}
			return cfg.normalize()
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("unable to stat config file: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}
	return cfg.normalize()
}

// ConfigUsage renders the environment variables AppConfig understands.
func ConfigUsage() string {
	var sb strings.Builder
	header := "Environment variables:"
	cleanenv.FUsage(&sb, &AppConfig{}, &header)()
	return sb.String()
}

func (c *AppConfig) normalize() (*AppConfig, error) {
	if c.TickRate <= 0 {
		return nil, fmt.Errorf("tick-rate must be positive, got %d", c.TickRate)
	}
	if c.DBPath == "" {
		c.DBPath = DefaultDBPath()
	}
	return c, nil
}

// DefaultDBPath returns ~/.arcade/results.db, or a relative path when the
// home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "results.db"
	}
	return filepath.Join(home, ".arcade", "results.db")
}
