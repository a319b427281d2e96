// ABOUTME: Session configuration for the vishing console
// ABOUTME: Handles the backend URL default, config file storage, and env overrides
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

const (
	// DefaultBackendURL is the baked-in simulation backend.
	DefaultBackendURL = "https://dominant-usually-oyster.ngrok-free.app"

	// AppName is used for XDG config paths.
	AppName = "vishnet"

	// ConfigFileName is where we store local config.
	ConfigFileName = "config.json"

	// EnvBackendURL overrides the backend URL when set.
	EnvBackendURL = "VISHNET_BACKEND_URL"
)

// Config holds session settings. Only the backend URL is configurable; all
// call state lives on the backend.
type Config struct {
	BackendURL string `json:"backend_url,omitempty"`
}

// DefaultConfig returns a new config pointing at the default backend.
func DefaultConfig() *Config {
	return &Config{BackendURL: DefaultBackendURL}
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dataDir, ConfigFileName), nil
}

// Load reads config from disk, falling back to defaults when the file is
// missing or unreadable. A .env file and the VISHNET_BACKEND_URL environment
// variable override the stored value.
func Load() (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	cfg := loadFile()
	if url := strings.TrimSpace(os.Getenv(EnvBackendURL)); url != "" {
		cfg.BackendURL = url
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = DefaultBackendURL
	}
	return cfg, nil
}

func loadFile() *Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig()
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		// Invalid config, use defaults
		return DefaultConfig()
	}
	return &cfg
}

// Save persists the config to disk.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
