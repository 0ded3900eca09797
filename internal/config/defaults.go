package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		YouTube: YouTubeConfig{
			Region:     "US",
			MaxResults: 20,
		},
		Playback: PlaybackConfig{
			Volume:         0.7,
			PollIntervalMS: 1000,
			MpvBinary:      "mpv",
		},
		TUI: TUIConfig{
			Theme:           "mocha",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	if c.YouTube.Region == "" {
		c.YouTube.Region = d.YouTube.Region
	}
	if c.YouTube.MaxResults == 0 {
		c.YouTube.MaxResults = d.YouTube.MaxResults
	}

	if c.Playback.Volume == 0 {
		c.Playback.Volume = d.Playback.Volume
	}
	if c.Playback.PollIntervalMS == 0 {
		c.Playback.PollIntervalMS = d.Playback.PollIntervalMS
	}
	if c.Playback.MpvBinary == "" {
		c.Playback.MpvBinary = d.Playback.MpvBinary
	}

	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
