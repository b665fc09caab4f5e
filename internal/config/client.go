package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ModeLocal   = "local"
	ModeBackend = "backend"
)

// ClientConfig configures the terminal client.
type ClientConfig struct {
	Mode           string        `yaml:"mode"`
	DataPath       string        `yaml:"data_path"`
	BackendURL     string        `yaml:"backend_url"`
	BackendTimeout time.Duration `yaml:"backend_timeout"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultClientConfig keeps everything on this machine.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Mode:     ModeLocal,
		DataPath: defaultDataPath(),
		LogLevel: "warn",
	}
}

func defaultDataPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".trackback", "trackback.db")
	}
	return filepath.Join(dir, "trackback", "trackback.db")
}

// DefaultClientConfigPath is where LoadClient looks when no path is given.
func DefaultClientConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(".trackback", "config.yaml")
	}
	return filepath.Join(dir, "trackback", "config.yaml")
}

// LoadClient reads the YAML file at path, then applies TRACKBACK_* env
// overrides. A missing file is not an error.
func LoadClient(path string) (ClientConfig, error) {
	cfg := DefaultClientConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read client config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse client config %s: %w", path, err)
			}
		}
	}

	if v := os.Getenv("TRACKBACK_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("TRACKBACK_DATA"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("TRACKBACK_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("TRACKBACK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Validate checks a fully merged client config.
func (c ClientConfig) Validate() error {
	switch c.Mode {
	case ModeLocal:
	case ModeBackend:
		if c.BackendURL == "" {
			return fmt.Errorf("mode %q requires backend_url", ModeBackend)
		}
	default:
		return fmt.Errorf("mode must be %q or %q, got %q", ModeLocal, ModeBackend, c.Mode)
	}
	if c.BackendTimeout < 0 {
		return fmt.Errorf("backend_timeout must not be negative")
	}
	return nil
}
