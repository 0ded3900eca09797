package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.chimerc, $XDG_CONFIG_HOME/chime/config.toml, ~/.config/chime/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Dir returns the chime configuration directory, creating it if needed.
func Dir() (string, error) {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	dir := filepath.Join(xdgConfig, "chime")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".chimerc"),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "chime", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// YouTube
	if v := os.Getenv("CHIME_YOUTUBE_API_KEY"); v != "" {
		cfg.YouTube.APIKey = v
	}
	if v := os.Getenv("CHIME_YOUTUBE_REGION"); v != "" {
		cfg.YouTube.Region = v
	}

	// Playback
	if v := os.Getenv("CHIME_PLAYBACK_VOLUME"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Playback.Volume = f
		}
	}
	if v := os.Getenv("CHIME_PLAYBACK_MPV_BINARY"); v != "" {
		cfg.Playback.MpvBinary = v
	}
	if v := os.Getenv("CHIME_PLAYBACK_IPC_SOCKET"); v != "" {
		cfg.Playback.IPCSocket = v
	}

	// Storage
	if v := os.Getenv("CHIME_STORAGE_DATABASE"); v != "" {
		cfg.Storage.Database = v
	}

	// TUI
	if v := os.Getenv("CHIME_TUI_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("CHIME_TUI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.TUI.RefreshInterval = i
		}
	}

	// Log
	if v := os.Getenv("CHIME_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CHIME_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
