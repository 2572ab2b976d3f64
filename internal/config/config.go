// Package config loads client configuration from an optional TOML file with
// environment variable overrides. Precedence: environment, then file, then
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// BackendURL is the base URL of the SmartSight inference backend.
	BackendURL string `toml:"backend_url"`
	// SessionID names the server-side conversation memory bucket.
	SessionID string `toml:"session_id"`
	// CameraDevice is the capture device identifier (e.g. /dev/video0).
	CameraDevice string `toml:"camera_device"`
	// CameraSingleShot releases the camera after each capture.
	CameraSingleShot bool `toml:"camera_single_shot"`
	// Theme selects the UI palette ("dark" or "light"). It is handed to the
	// presentation layer at startup and never mutated at runtime.
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

func defaults() *Config {
	return &Config{
		BackendURL:   "http://localhost:8000",
		SessionID:    "default",
		CameraDevice: "/dev/video0",
		Theme:        "dark",
		LogLevel:     "info",
	}
}

// Load builds the effective configuration. A missing config file is fine; a
// malformed one is an error.
func Load() (*Config, error) {
	cfg := defaults()

	path := configPath()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.BackendURL = getEnv("SIGHTCHAT_BACKEND_URL", cfg.BackendURL)
	cfg.SessionID = getEnv("SIGHTCHAT_SESSION_ID", cfg.SessionID)
	cfg.CameraDevice = getEnv("SIGHTCHAT_CAMERA_DEVICE", cfg.CameraDevice)
	cfg.Theme = getEnv("SIGHTCHAT_THEME", cfg.Theme)
	cfg.LogLevel = getEnv("SIGHTCHAT_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getEnv("SIGHTCHAT_LOG_FILE", cfg.LogFile)
	if os.Getenv("SIGHTCHAT_CAMERA_SINGLE_SHOT") == "1" {
		cfg.CameraSingleShot = true
	}

	return cfg, nil
}

// configPath returns the config file location: $SIGHTCHAT_CONFIG if set,
// otherwise ~/.config/sightchat/config.toml.
func configPath() string {
	if p := os.Getenv("SIGHTCHAT_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "sightchat", "config.toml")
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
