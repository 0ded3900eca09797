package config

// Config is the root configuration structure.
type Config struct {
	YouTube  YouTubeConfig  `toml:"youtube"`
	Playback PlaybackConfig `toml:"playback"`
	Storage  StorageConfig  `toml:"storage"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// YouTubeConfig holds YouTube Data API settings.
type YouTubeConfig struct {
	APIKey     string `toml:"api_key"`
	Region     string `toml:"region"`
	MaxResults int    `toml:"max_results"`
}

// PlaybackConfig holds playback engine settings.
type PlaybackConfig struct {
	Volume         float64 `toml:"volume"`
	PollIntervalMS int     `toml:"poll_interval"`
	MpvBinary      string  `toml:"mpv_binary"`
	IPCSocket      string  `toml:"ipc_socket"`
}

// StorageConfig holds local database settings.
type StorageConfig struct {
	Database string `toml:"database"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
