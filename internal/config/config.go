// Package config stores mk2ctl's user settings in ~/.config/mk2ctl/config.json.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/microkorg2editor/mk2ctl/sdk/catalog"
)

// Config is the main configuration structure.
type Config struct {
	Catalog  string `json:"catalog,omitempty"`  // path or URL of the parameter list
	Driver   string `json:"driver,omitempty"`   // output backend; empty picks the platform default
	Port     string `json:"port,omitempty"`     // output port selected at startup
	Channel  int    `json:"channel"`            // MIDI channel, 0-15
	LogLevel string `json:"logLevel,omitempty"` // debug, info, warn, error
	LogFile  string `json:"logFile,omitempty"`  // log to this file instead of stderr
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog:  catalog.DefaultLocation,
		LogLevel: "info",
	}
}

// ConfigDir returns the config directory path.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mk2ctl"), nil
}

// ConfigPath returns the full path to config.json.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config at the default path, or returns defaults if there is none.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields defaults; fields absent from the
// file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating the directory if needed.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
