// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
)

const dataDirName = ".tada"

// Config holds everything the app reads from TADA_* variables.
type Config struct {
	Storage     string        `env:"TADA_STORAGE" envDefault:"file"`
	DataDir     string        `env:"TADA_DATA_DIR"`
	APIBaseURL  string        `env:"TADA_API_BASE_URL" envDefault:"https://jsonplaceholder.typicode.com"`
	APITimeout  time.Duration `env:"TADA_API_TIMEOUT" envDefault:"10s"`
	InitTimeout time.Duration `env:"TADA_INIT_TIMEOUT" envDefault:"5s"`
	LogLevel    string        `env:"TADA_LOG_LEVEL" envDefault:"info"`
	LogFile     string        `env:"TADA_LOG_FILE"`
	Theme       string        `env:"TADA_THEME" envDefault:"dark"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and fills derived defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("home: %w", err)
		}
		cfg.DataDir = filepath.Join(home, dataDirName)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Level parses LogLevel.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
