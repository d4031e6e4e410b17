// Package config loads autoclaude's settings from .env, an optional
// config.yaml in the app home, and the process environment, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	homeDirName    = ".auto-claude-app"
	configFileName = "config.yaml"
)

// Config holds resolved settings.
type Config struct {
	// Home holds config.yaml, the registry and the preferences store.
	Home string `yaml:"-"`

	// SourcePath is the default framework source tree.
	SourcePath string `yaml:"source,omitempty"`

	// Debug enables branch-level trace output on stderr.
	Debug bool `yaml:"debug,omitempty"`

	// RegistryPath is the SQLite project registry.
	RegistryPath string `yaml:"registry_path,omitempty"`

	// PreferencesPath is the BadgerDB directory for durable preferences.
	PreferencesPath string `yaml:"preferences_path,omitempty"`
}

// Load resolves the configuration. A missing .env or config.yaml is not an
// error; a malformed config.yaml is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	home := strings.TrimSpace(os.Getenv("AUTO_CLAUDE_HOME"))
	if home == "" {
		home = defaultHome()
	}

	cfg, err := loadFile(filepath.Join(home, configFileName))
	if err != nil {
		return nil, err
	}
	cfg.Home = home

	if source := strings.TrimSpace(os.Getenv("AUTO_CLAUDE_SOURCE")); source != "" {
		cfg.SourcePath = source
	}
	if debugEnabled(os.Getenv("DEBUG")) || debugEnabled(os.Getenv("AUTO_CLAUDE_DEBUG")) {
		cfg.Debug = true
	}

	cfg.applyDefaults()
	return cfg, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RegistryPath == "" {
		c.RegistryPath = filepath.Join(c.Home, "projects.db")
	}
	if c.PreferencesPath == "" {
		c.PreferencesPath = filepath.Join(c.Home, "prefs")
	}
}

func defaultHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return homeDirName
	}
	return filepath.Join(userHome, homeDirName)
}

// debugEnabled accepts "true", "1" and friends; anything else is off.
func debugEnabled(raw string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	return err == nil && v
}
