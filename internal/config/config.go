// Package config handles global mystuff configuration and data directory
// resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvDataDir is the environment variable overriding the data directory.
const EnvDataDir = "MYSTUFF_HOME"

// DefaultDirName is the data directory created under $HOME when nothing else
// is configured.
const DefaultDirName = ".mystuff"

// Config represents the global mystuff configuration
// (~/.config/mystuff/config.toml).
type Config struct {
	// DataDir is the mystuff data directory. Overridden by the --dir flag
	// and the MYSTUFF_HOME environment variable.
	DataDir string `toml:"data_dir"`

	// Editor is the editor for opening files (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output: an ANSI color code
	// ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Load loads the configuration from the default location.
// Returns an empty config if the file doesn't exist.
func Load() (*Config, error) {
	path := DefaultPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultPath returns the default config file path, preferring
// ~/.config/mystuff/config.toml and falling back to the OS config dir.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "mystuff", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "mystuff", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// GetEditor returns the editor to use: config value, then $EDITOR, then vim.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if ed := os.Getenv("EDITOR"); ed != "" {
		return ed
	}
	return "vim"
}

// ResolveDataDir resolves the data directory from, in priority order: the
// explicit flag value, MYSTUFF_HOME, the global config, and ~/.mystuff.
func ResolveDataDir(flagValue string, cfg *Config) (string, error) {
	if flagValue != "" {
		return expand(flagValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return expand(env)
	}
	if cfg != nil && cfg.DataDir != "" {
		return expand(cfg.DataDir)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

func expand(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot expand %q: %w", path, err)
		}
		path = filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve %q: %w", path, err)
	}
	return abs, nil
}
