// Package config holds the tool's user configuration, stored as JSON in
// the data directory. This is the single source of truth for model
// selection, UI theme, and logging behavior. The generation credential is
// deliberately NOT here - it lives in the key-value store so its absence
// can be handled as a recoverable precondition at generation time.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig holds all reportcraft configuration from config.json.
type UserConfig struct {
	// Optional Gemini model override (default: gemini-2.5-flash).
	Model string `json:"model,omitempty"`

	// Theme for the TUI ("light" or "dark").
	Theme string `json:"theme,omitempty"`

	// Logging configuration.
	Logging *LoggingConfig `json:"logging,omitempty"`
}

// LoggingConfig controls the categorized file logger.
type LoggingConfig struct {
	DebugMode  bool            `json:"debug_mode"`
	Categories map[string]bool `json:"categories,omitempty"`
	Level      string          `json:"level,omitempty"`
}

// envDataDir overrides the data directory location, mainly for tests.
const envDataDir = "REPORTCRAFT_HOME"

// DataDir returns the directory holding config, state, and logs:
// $REPORTCRAFT_HOME if set, else ~/.reportcraft.
func DataDir() string {
	if dir := os.Getenv(envDataDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".reportcraft"
	}
	return filepath.Join(home, ".reportcraft")
}

// DefaultConfigPath returns the default path to config.json.
func DefaultConfigPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// DefaultStorePath returns the default path to the key-value database.
func DefaultStorePath() string {
	return filepath.Join(DataDir(), "state.db")
}

// DefaultRegistryPath returns the default path to the identity registry.
func DefaultRegistryPath() string {
	return filepath.Join(DataDir(), "users.yaml")
}

// LoadUserConfig loads configuration from the given path. A missing file
// yields an empty config, not an error.
func LoadUserConfig(path string) (*UserConfig, error) {
	cfg := &UserConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given path, creating the parent
// directory as needed.
func (c *UserConfig) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// GetModel returns the configured model, or the empty string to let the
// generation client apply its default.
func (c *UserConfig) GetModel() string {
	return c.Model
}

// GetTheme returns the configured theme with a default.
func (c *UserConfig) GetTheme() string {
	if c.Theme == "" {
		return "dark"
	}
	return c.Theme
}

// GetLogging returns the logging config with defaults applied.
func (c *UserConfig) GetLogging() LoggingConfig {
	if c.Logging != nil {
		cfg := *c.Logging
		if cfg.Level == "" {
			cfg.Level = "info"
		}
		return cfg
	}
	return LoggingConfig{Level: "info"}
}
