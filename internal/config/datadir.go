package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DataConfigName is the per-data-directory configuration file.
const DataConfigName = "config.yaml"

// DataConfig is the configuration stored inside the data directory itself.
// It travels with the data (and any sync of it), unlike the global TOML
// config which is per machine.
type DataConfig struct {
	DataDirectory string         `yaml:"data_directory"`
	Editor        string         `yaml:"editor,omitempty"`
	Pager         string         `yaml:"pager,omitempty"`
	Settings      Settings       `yaml:"settings"`
	Sync          SyncConfig     `yaml:"sync"`
	Generate      GenerateConfig `yaml:"generate,omitempty"`
}

// Settings holds formatting defaults applied across stores.
type Settings struct {
	DefaultTags []string `yaml:"default_tags"`
	DateFormat  string   `yaml:"date_format"`
	TimeFormat  string   `yaml:"time_format"`
}

// SyncConfig lists the shell commands run by `mystuff sync run`.
type SyncConfig struct {
	Commands []string `yaml:"commands"`
}

// GenerateConfig holds static-site generation settings.
type GenerateConfig struct {
	Web WebConfig `yaml:"web,omitempty"`
}

// WebConfig configures the generated website.
type WebConfig struct {
	Title          string     `yaml:"title,omitempty"`
	Description    string     `yaml:"description,omitempty"`
	Author         string     `yaml:"author,omitempty"`
	Output         string     `yaml:"output,omitempty"`
	MenuItems      []MenuItem `yaml:"menu_items,omitempty"`
	GithubUsername string     `yaml:"github_username,omitempty"`
	Repositories   []string   `yaml:"repositories,omitempty"`
}

// MenuItem is one sidebar entry on the generated site.
type MenuItem struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// LoadDataConfig reads config.yaml from the data directory. A missing file is
// not an error; defaults are returned so commands keep working on data
// directories created by hand.
func LoadDataConfig(dataDir string) (*DataConfig, error) {
	path := filepath.Join(dataDir, DataConfigName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultDataConfig(dataDir), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg DataConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DataDirectory == "" {
		cfg.DataDirectory = dataDir
	}
	return &cfg, nil
}

// SaveDataConfig writes config.yaml into the data directory.
func SaveDataConfig(dataDir string, cfg *DataConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serialize %s: %w", DataConfigName, err)
	}

	path := filepath.Join(dataDir, DataConfigName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DefaultDataConfig returns the configuration written by `mystuff init`.
func DefaultDataConfig(dataDir string) *DataConfig {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = "less"
	}

	return &DataConfig{
		DataDirectory: dataDir,
		Editor:        editor,
		Pager:         pager,
		Settings: Settings{
			DefaultTags: []string{},
			DateFormat:  "2006-01-02",
			TimeFormat:  "15:04:05",
		},
		Sync: SyncConfig{
			Commands: []string{`echo "Sync data"`},
		},
	}
}
