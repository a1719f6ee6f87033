// Package config resolves the i18nkit workspace and loads its configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MarkerDir is the directory that marks an initialized workspace root and
// holds the config, plan and history files.
const MarkerDir = ".i18n"

// Config describes one translation workspace.
type Config struct {
	SourceDir    string `yaml:"source_dir"`
	TargetDir    string `yaml:"target_dir"`
	SourceLocale string `yaml:"source_locale"`
	TargetLocale string `yaml:"target_locale"`
	PlanFile     string `yaml:"plan_file"`
	HistoryDB    string `yaml:"history_db"`
}

// Default returns a config with the conventional locations filled in.
func Default() *Config {
	return &Config{
		SourceDir:    "docs/en",
		TargetDir:    "docs/zh",
		SourceLocale: "en",
		TargetLocale: "zh",
		PlanFile:     filepath.Join(MarkerDir, "plan.yaml"),
		HistoryDB:    filepath.Join(MarkerDir, "history.db"),
	}
}

// Resolve locates the workspace root: the override wins when non-empty,
// otherwise the directories from cwd upward are searched for the marker.
// This is an explicit function rather than ambient process state so callers
// always know which workspace they operate on.
func Resolve(cwd, override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(filepath.Join(override, MarkerDir)); err != nil {
			return "", fmt.Errorf("no %s directory in %s: %w", MarkerDir, override, err)
		}
		return override, nil
	}

	dir := cwd
	for {
		if info, err := os.Stat(filepath.Join(dir, MarkerDir)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s directory found in %s or any parent; run 'i18nkit init' first", MarkerDir, cwd)
		}
		dir = parent
	}
}

// Load reads the workspace config and applies .env plus I18NKIT_* overrides.
func Load(root string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(filepath.Join(root, MarkerDir, "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if v := os.Getenv("I18NKIT_SOURCE_LOCALE"); v != "" {
		cfg.SourceLocale = v
	}
	if v := os.Getenv("I18NKIT_TARGET_LOCALE"); v != "" {
		cfg.TargetLocale = v
	}

	return cfg, nil
}

// Init creates the marker directory and writes the given config. It refuses
// to clobber an existing workspace.
func Init(root string, cfg *Config) error {
	markerPath := filepath.Join(root, MarkerDir)
	configPath := filepath.Join(markerPath, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("workspace already initialized: %s exists", configPath)
	}
	if err := os.MkdirAll(markerPath, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", markerPath, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
