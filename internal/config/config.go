// Package config loads and saves tally configuration from a TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all tally configuration.
type Config struct {
	Appearance AppearanceConfig `toml:"appearance"`
	Popup      PopupConfig      `toml:"popup"`
	Demo       DemoConfig       `toml:"demo"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// PopupConfig holds stats popup settings.
type PopupConfig struct {
	// MaxRows caps how many list rows the popup shows at once.
	MaxRows int `toml:"max_rows"`
}

// DemoConfig holds settings for the simulated demo session.
type DemoConfig struct {
	TickMs int `toml:"tick_ms"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Popup: PopupConfig{
			MaxRows: 8,
		},
		Demo: DemoConfig{
			TickMs: 250,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tally")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tally")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyBounds()
	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// applyBounds clamps nonsense values back to usable defaults.
func (c *Config) applyBounds() {
	if c.Popup.MaxRows <= 0 {
		c.Popup.MaxRows = DefaultConfig().Popup.MaxRows
	}
	if c.Demo.TickMs < 50 {
		c.Demo.TickMs = DefaultConfig().Demo.TickMs
	}
}
