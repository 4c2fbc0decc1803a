// Package config handles the XDG configuration directory and the TOML
// configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	// AppName is the application directory name.
	AppName = "todoterm"

	// FileName is the configuration filename inside the config dir.
	FileName = "config.toml"

	// StateFileName is the default sqlite state filename.
	StateFileName = "state.db"

	// DefaultBaseURL is the default address of the ToDoList service.
	DefaultBaseURL = "http://localhost:3333/api/v1"

	// DefaultPageSize is the default number of tasks fetched per page.
	DefaultPageSize = 10
)

// Config holds configuration paths and settings.
type Config struct {
	// BaseURL is the root of the remote ToDoList REST service.
	BaseURL string `toml:"base_url"`

	// PageSize is the page limit supplied on every list request.
	PageSize int `toml:"page_size"`

	// StatePath is the sqlite file holding the session credential and
	// the last-fetched snapshot.
	StatePath string `toml:"state_path"`

	// Dir is the configuration directory path. Not serialized.
	Dir string `toml:"-"`

	// Quiet suppresses informational output. Not serialized.
	Quiet bool `toml:"-"`

	// Debug enables debug logging. Not serialized.
	Debug bool `toml:"-"`
}

// Load reads the config file from configDir, creating it with defaults
// if it does not exist. If configDir is empty the default XDG directory
// is used.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := defaultConfig(dir)
	path := filepath.Join(dir, FileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.StatePath == "" {
		cfg.StatePath = filepath.Join(dir, StateFileName)
	}
	return cfg, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

func defaultConfig(dir string) *Config {
	return &Config{
		BaseURL:   DefaultBaseURL,
		PageSize:  DefaultPageSize,
		StatePath: filepath.Join(dir, StateFileName),
		Dir:       dir,
	}
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
