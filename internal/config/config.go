// Package config loads ResearchHub settings.
//
// Precedence, lowest first: built-in defaults, the YAML config file,
// RESEARCHHUB_* environment variables, command-line flags (applied by the
// caller after Load).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/researchhub/internal/chart"
	"github.com/roach88/researchhub/internal/codec"
	"github.com/roach88/researchhub/internal/stats"
	"github.com/roach88/researchhub/internal/store"
)

// Environment variable names.
const (
	EnvDatabase = "RESEARCHHUB_DB"
	EnvDriver   = "RESEARCHHUB_DRIVER"
)

const (
	appDir       = "researchhub"
	fileName     = "config.yaml"
	databaseName = "researchhub.db"
)

// Config holds resolved settings.
type Config struct {
	Database      string `yaml:"database"`
	Driver        string `yaml:"driver"`
	Chart         Chart  `yaml:"chart"`
	UpcomingLimit int    `yaml:"upcoming_limit"`
	ExportFile    string `yaml:"export_file"`
}

// Chart sets the SVG canvas size.
type Chart struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Default returns the built-in settings. Database is empty when the user
// config directory cannot be determined; Load fills it in or fails.
func Default() Config {
	cfg := Config{
		Driver:        store.DriverCGO,
		Chart:         Chart{Width: chart.DefaultWidth, Height: chart.DefaultHeight},
		UpcomingLimit: stats.DefaultUpcomingLimit,
		ExportFile:    codec.DefaultExportFile,
	}
	if dir, err := os.UserConfigDir(); err == nil {
		cfg.Database = filepath.Join(dir, appDir, databaseName)
	}
	return cfg
}

// DefaultPath returns <user config dir>/researchhub/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, appDir, fileName), nil
}

// Load resolves settings from path and the environment. An empty path means
// DefaultPath, which may be absent. An explicit path must exist.
// getenv is os.Getenv in production.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if getenv != nil {
		if v := getenv(EnvDatabase); v != "" {
			cfg.Database = v
		}
		if v := getenv(EnvDriver); v != "" {
			cfg.Driver = v
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// parse decodes YAML over the defaults without consulting the environment.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func decode(data []byte, cfg *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// Validate checks resolved settings.
func (c Config) Validate() error {
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	switch c.Driver {
	case store.DriverCGO, store.DriverPureGo:
	default:
		return fmt.Errorf("unknown driver %q (want %s or %s)", c.Driver, store.DriverCGO, store.DriverPureGo)
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart size must be positive, got %gx%g", c.Chart.Width, c.Chart.Height)
	}
	if c.UpcomingLimit <= 0 {
		return fmt.Errorf("upcoming_limit must be positive, got %d", c.UpcomingLimit)
	}
	if c.ExportFile == "" {
		return fmt.Errorf("export_file is required")
	}
	return nil
}
