package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AtOnline/trayhost/tray"
)

// Config is read from config.yaml in the user config dir.
type Config struct {
	Tooltip    string        `yaml:"tooltip"`
	Icon       string        `yaml:"icon"`
	LogLevel   string        `yaml:"log_level"`
	AutoUpdate bool          `yaml:"auto_update"`
	Restart    RestartConfig `yaml:"restart"`
}

// RestartConfig decides what happens when the icon cannot be re-added after
// explorer restarted.
type RestartConfig struct {
	Attempts uint          `yaml:"attempts"`
	MaxDelay time.Duration `yaml:"max_delay"`
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Restart: RestartConfig{
			Attempts: 1,
			MaxDelay: 2 * time.Second,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

func (c Config) RestartPolicy() tray.RestartPolicy {
	return tray.RestartPolicy{
		Attempts: c.Restart.Attempts,
		MaxDelay: c.Restart.MaxDelay,
	}
}
