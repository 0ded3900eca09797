package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.YouTube.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("youtube: %w", err))
	}
	if err := c.Playback.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playback: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks YouTube settings.
func (c *YouTubeConfig) Validate() error {
	if c.MaxResults < 1 || c.MaxResults > 50 {
		return fmt.Errorf("max_results must be between 1 and 50, got %d", c.MaxResults)
	}
	return nil
}

// Validate checks playback settings.
func (c *PlaybackConfig) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return fmt.Errorf("volume must be between 0 and 1, got %g", c.Volume)
	}
	if c.PollIntervalMS < 100 {
		return fmt.Errorf("poll_interval must be at least 100ms, got %d", c.PollIntervalMS)
	}
	return nil
}

// Validate checks TUI settings.
func (c *TUIConfig) Validate() error {
	switch c.Theme {
	case "mocha", "latte", "frappe", "macchiato", "auto":
		return nil
	}
	return fmt.Errorf("unknown theme %q", c.Theme)
}

// Validate checks log settings.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
		return nil
	}
	return fmt.Errorf("unknown level %q", c.Level)
}
