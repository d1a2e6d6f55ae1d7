// Package config provides configuration management for ovpn-profile.
// It handles loading, saving, and managing application settings.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/yllada/ovpn-profile/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// SingleUse marks imported profiles to be removed after one session.
	SingleUse bool `yaml:"single_use"`
	// Persistent asks the configuration manager to keep imported profiles
	// across reboots.
	Persistent bool `yaml:"persistent"`
	// MaxIncludeDepth bounds nested --config inclusion.
	MaxIncludeDepth int `yaml:"max_include_depth"`
	// RememberPassphrase caches PKCS#12 passphrases in the system keyring.
	RememberPassphrase bool `yaml:"remember_passphrase"`
	// HistoryEnabled records every import in the local history database.
	HistoryEnabled bool `yaml:"history_enabled"`
	// LogToFile additionally writes logs to the rotated log file.
	LogToFile bool `yaml:"log_to_file"`
	// LogLevel is one of "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the default configuration.
// These are sensible defaults for most users.
func DefaultConfig() *Config {
	return &Config{
		SingleUse:          false,
		Persistent:         true,
		MaxIncludeDepth:    common.DefaultMaxIncludeDepth,
		RememberPassphrase: false,
		HistoryEnabled:     true,
		LogToFile:          false,
		LogLevel:           "info",
	}
}

// Load loads the configuration from the default config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating the file with
// default values when it doesn't exist.
func LoadFrom(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(configPath); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("error opening configuration: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	config := DefaultConfig()
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: error parsing %s: %v", common.ErrConfigLoad, configPath, err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validate verifies that configuration values are valid, falling back to
// defaults for values out of range.
func (c *Config) validate() error {
	if c.MaxIncludeDepth <= 0 {
		c.MaxIncludeDepth = common.DefaultMaxIncludeDepth
	}
	if c.MaxIncludeDepth > common.MaxIncludeDepthLimit {
		c.MaxIncludeDepth = common.MaxIncludeDepthLimit
	}
	if _, err := common.ParseLogLevel(c.LogLevel); err != nil {
		c.LogLevel = "info"
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() common.LogLevel {
	level, _ := common.ParseLogLevel(c.LogLevel)
	return level
}

// SaveTo saves the configuration to path.
func (c *Config) SaveTo(configPath string) error {
	// Create directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error serializing configuration: %w", err)
	}

	if err := common.WriteFileAtomic(configPath, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", common.ErrConfigSave, err)
	}

	return nil
}

// DefaultPath returns ~/.config/ovpn-profile/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
