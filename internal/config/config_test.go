package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Playback.Volume != 0.7 {
		t.Errorf("Volume = %v, want 0.7", cfg.Playback.Volume)
	}
	if cfg.Playback.PollIntervalMS != 1000 {
		t.Errorf("PollIntervalMS = %d, want 1000", cfg.Playback.PollIntervalMS)
	}
	if cfg.TUI.Theme != "mocha" {
		t.Errorf("Theme = %q, want mocha", cfg.TUI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestApplyDefaultsFillsZeroValues(t *testing.T) {
	cfg := &Config{}
	cfg.YouTube.Region = "DE"

	cfg.ApplyDefaults()

	if cfg.YouTube.Region != "DE" {
		t.Errorf("Region = %q, want DE preserved", cfg.YouTube.Region)
	}
	if cfg.YouTube.MaxResults != 20 {
		t.Errorf("MaxResults = %d, want default 20", cfg.YouTube.MaxResults)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Level = %q, want info", cfg.Log.Level)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[youtube]
  api_key = "test-key"
  region = "GB"

[playback]
  volume = 0.5

[tui]
  theme = "latte"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.YouTube.APIKey != "test-key" {
		t.Errorf("APIKey = %q, want test-key", cfg.YouTube.APIKey)
	}
	if cfg.YouTube.Region != "GB" {
		t.Errorf("Region = %q, want GB", cfg.YouTube.Region)
	}
	if cfg.Playback.Volume != 0.5 {
		t.Errorf("Volume = %v, want 0.5", cfg.Playback.Volume)
	}
	if cfg.TUI.Theme != "latte" {
		t.Errorf("Theme = %q, want latte", cfg.TUI.Theme)
	}
	// Unset values still pick up defaults.
	if cfg.Playback.PollIntervalMS != 1000 {
		t.Errorf("PollIntervalMS = %d, want default 1000", cfg.Playback.PollIntervalMS)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CHIME_YOUTUBE_API_KEY", "env-key")
	t.Setenv("CHIME_TUI_THEME", "frappe")
	t.Setenv("CHIME_PLAYBACK_VOLUME", "0.25")

	cfg := Default()
	applyEnvOverrides(cfg)

	if cfg.YouTube.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.YouTube.APIKey)
	}
	if cfg.TUI.Theme != "frappe" {
		t.Errorf("Theme = %q, want frappe", cfg.TUI.Theme)
	}
	if cfg.Playback.Volume != 0.25 {
		t.Errorf("Volume = %v, want 0.25", cfg.Playback.Volume)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"volume above one", func(c *Config) { c.Playback.Volume = 1.5 }},
		{"negative volume", func(c *Config) { c.Playback.Volume = -0.1 }},
		{"tiny poll interval", func(c *Config) { c.Playback.PollIntervalMS = 10 }},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "dracula" }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		{"max results too high", func(c *Config) { c.YouTube.MaxResults = 100 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate should fail")
			}
		})
	}
}
