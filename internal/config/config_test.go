package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `data_dir = "/srv/stuff"
editor = "nvim"

[ui]
accent = "39"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.DataDir != "/srv/stuff" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Editor != "nvim" {
		t.Errorf("Editor = %q", cfg.Editor)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("Accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("data_dir = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestResolveDataDirPriority(t *testing.T) {
	t.Setenv(EnvDataDir, "")

	flagDir := t.TempDir()
	envDir := t.TempDir()
	cfgDir := t.TempDir()

	// Flag wins over everything.
	t.Setenv(EnvDataDir, envDir)
	got, err := ResolveDataDir(flagDir, &Config{DataDir: cfgDir})
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if got != flagDir {
		t.Errorf("flag priority: got %q, want %q", got, flagDir)
	}

	// Env wins over config.
	got, err = ResolveDataDir("", &Config{DataDir: cfgDir})
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if got != envDir {
		t.Errorf("env priority: got %q, want %q", got, envDir)
	}

	// Config wins over home fallback.
	t.Setenv(EnvDataDir, "")
	got, err = ResolveDataDir("", &Config{DataDir: cfgDir})
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	if got != cfgDir {
		t.Errorf("config priority: got %q, want %q", got, cfgDir)
	}

	// Home fallback.
	got, err = ResolveDataDir("", &Config{})
	if err != nil {
		t.Fatalf("ResolveDataDir: %v", err)
	}
	home, _ := os.UserHomeDir()
	if got != filepath.Join(home, DefaultDirName) {
		t.Errorf("fallback: got %q", got)
	}
}

func TestDataConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cfg := DefaultDataConfig(dir)
	cfg.Sync.Commands = []string{"git add -A", "git commit -m sync"}
	cfg.Generate.Web.Title = "My Knowledge Base"

	if err := SaveDataConfig(dir, cfg); err != nil {
		t.Fatalf("SaveDataConfig: %v", err)
	}

	loaded, err := LoadDataConfig(dir)
	if err != nil {
		t.Fatalf("LoadDataConfig: %v", err)
	}
	if loaded.DataDirectory != dir {
		t.Errorf("DataDirectory = %q, want %q", loaded.DataDirectory, dir)
	}
	if len(loaded.Sync.Commands) != 2 || loaded.Sync.Commands[0] != "git add -A" {
		t.Errorf("Sync.Commands = %v", loaded.Sync.Commands)
	}
	if loaded.Generate.Web.Title != "My Knowledge Base" {
		t.Errorf("Web.Title = %q", loaded.Generate.Web.Title)
	}
}

func TestLoadDataConfigMissingFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadDataConfig(dir)
	if err != nil {
		t.Fatalf("LoadDataConfig: %v", err)
	}
	if cfg.DataDirectory != dir {
		t.Errorf("DataDirectory = %q, want %q", cfg.DataDirectory, dir)
	}
	if len(cfg.Sync.Commands) == 0 {
		t.Error("expected default sync command")
	}
}
