package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	// ConfigDir is the default config directory name.
	ConfigDir = ".kitz"
	// ConfigFile is the default config file name.
	ConfigFile = "config.json"
	// EnvPrefix namespaces environment overrides, e.g. KITZ_LEDGER_BACKEND.
	EnvPrefix = "kitz"
)

// ConfigPath returns the path to the config file, honoring KITZ_CONFIG.
func ConfigPath() (string, error) {
	if explicit := strings.TrimSpace(os.Getenv("KITZ_CONFIG")); explicit != "" {
		return explicit, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ConfigDir, ConfigFile), nil
}

// Load reads configuration in layers: built-in defaults, then the JSON file
// (if present), then KITZ_* environment overrides.
func Load() (Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return cfg, fmt.Errorf("apply env overrides: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Ledger.Backend {
	case "file", "sqlite", "remote":
	default:
		return fmt.Errorf("unknown ledger backend: %s", c.Ledger.Backend)
	}
	if c.WarRoom.Threshold < 0 {
		return fmt.Errorf("war room threshold must be >= 0")
	}
	return nil
}
