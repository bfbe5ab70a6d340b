// Package config loads ttsedit settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user settings. Zero values are replaced by defaults.
type Config struct {
	DBPath          string        `yaml:"db_path"`
	LogFile         string        `yaml:"log_file"`
	DuplicateCutoff int           `yaml:"duplicate_cutoff"`
	DuplicateLimit  int           `yaml:"duplicate_limit"`
	RegexTimeout    time.Duration `yaml:"regex_timeout"`
	RecentLimit     int           `yaml:"recent_limit"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:          defaultDBPath(),
		DuplicateCutoff: 95,
		DuplicateLimit:  3,
		RegexTimeout:    2 * time.Second,
		RecentLimit:     10,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/ttsedit/config.yaml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ttsedit", "config.yaml")
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ttsedit", "ttsedit.sqlite")
}

// Load reads path (DefaultPath when empty), then applies TTSEDIT_DB,
// TTSEDIT_LOG and TTSEDIT_DUP_CUTOFF. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.DBPath = envOrDefault("TTSEDIT_DB", cfg.DBPath)
	cfg.LogFile = envOrDefault("TTSEDIT_LOG", cfg.LogFile)
	cutoff, err := parseIntEnv("TTSEDIT_DUP_CUTOFF", int64(cfg.DuplicateCutoff))
	if err != nil {
		return Config{}, fmt.Errorf("parse TTSEDIT_DUP_CUTOFF: %w", err)
	}
	cfg.DuplicateCutoff = int(cutoff)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects out-of-range values.
func (c Config) Validate() error {
	if c.DuplicateCutoff < 0 || c.DuplicateCutoff > 100 {
		return fmt.Errorf("duplicate_cutoff %d: must be between 0 and 100", c.DuplicateCutoff)
	}
	if c.DuplicateLimit < 2 {
		return fmt.Errorf("duplicate_limit %d: must be at least 2", c.DuplicateLimit)
	}
	if c.RegexTimeout <= 0 {
		return fmt.Errorf("regex_timeout %s: must be positive", c.RegexTimeout)
	}
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent_limit %d: must not be negative", c.RecentLimit)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func parseIntEnv(key string, fallback int64) (int64, error) {
	value := envOrDefault(key, "")
	if value == "" {
		return fallback, nil
	}

	num, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return num, nil
}
