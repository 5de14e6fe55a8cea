// Package config loads and persists the console's configuration under
// ~/.opsdeck: a TOML config file for settings and a separate 0600 credentials
// file for the admin token.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	configDirName       = ".opsdeck"
	configFileName      = "config.toml"
	credentialsFileName = "credentials.json"

	defaultServerURL = "http://localhost:8080"
	defaultPageSize  = 20
)

// Config holds console settings. Zero-value fields fall back to defaults at
// load time.
type Config struct {
	ServerURL string `toml:"server_url"`
	PageSize  int    `toml:"page_size"`
	Theme     string `toml:"theme"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerURL: defaultServerURL,
		PageSize:  defaultPageSize,
		Theme:     "slate",
		LogLevel:  "info",
		LogFormat: "auto",
	}
}

// Dir returns the console configuration directory (~/.opsdeck).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. An empty path means the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, err
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var raw Config
	if err := toml.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if s := strings.TrimSpace(raw.ServerURL); s != "" {
		cfg.ServerURL = s
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if s := strings.TrimSpace(raw.Theme); s != "" {
		cfg.Theme = s
	}
	if s := strings.TrimSpace(raw.LogLevel); s != "" {
		cfg.LogLevel = s
	}
	if s := strings.TrimSpace(raw.LogFormat); s != "" {
		cfg.LogFormat = s
	}

	// OPSDECK_SERVER wins over the file for one-off overrides.
	if s := os.Getenv("OPSDECK_SERVER"); s != "" {
		cfg.ServerURL = s
	}

	return cfg, nil
}

// Save writes cfg to path, creating the directory as needed. An empty path
// means the default location.
func Save(cfg Config, path string) error {
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
		path = filepath.Join(dir, configFileName)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

type credentials struct {
	Token string `json:"token"`
}

func credentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, credentialsFileName), nil
}

// SaveToken persists the admin token with owner-only permissions.
func SaveToken(token string) error {
	p, err := credentialsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(credentials{Token: token}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// LoadToken reads the stored admin token, returning empty string if not found.
func LoadToken() string {
	p, err := credentialsPath()
	if err != nil {
		return ""
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return ""
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return ""
	}
	return creds.Token
}
