// Package config loads toastctl settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "TOASTNOTIFY_"

// Backends
const (
	BackendDBus = "dbus"
	BackendPush = "push"
)

// Configuration holds everything toastctl needs to build a representer.
type Configuration struct {
	AppID      string  `koanf:"app_id" validate:"required,excludesall=/"`
	AppName    string  `koanf:"app_name" validate:"required"`
	IconPath   string  `koanf:"icon_path"`
	Backend    string  `koanf:"backend" validate:"oneof=dbus push"`
	RatePerSec float64 `koanf:"rate_per_sec" validate:"gte=0"`
	RateBurst  int     `koanf:"rate_burst" validate:"gte=1"`
	LogLevel   string  `koanf:"log_level" validate:"oneof=debug info warn error"`
	SkipSetup  bool    `koanf:"skip_setup"`
}

// Defaults returns the baseline values applied before any source.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"app_id":       "toastnotify",
		"app_name":     "Toast Notify",
		"icon_path":    "",
		"backend":      BackendDBus,
		"rate_per_sec": 0.0,
		"rate_burst":   1,
		"log_level":    "info",
		"skip_setup":   false,
	}
}

// DefaultPath is <user config dir>/toastnotify/config.json.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "toastnotify", "config.json")
}

// Load merges, in rising priority: defaults, the JSON file at path
// (DefaultPath when empty, skipped if that doesn't exist), and
// TOASTNOTIFY_* environment variables.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			if err := k.Load(file.Provider(path), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.IconPath = expandHomePath(cfg.IconPath)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: TOASTNOTIFY_APP_ID -> app_id
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
