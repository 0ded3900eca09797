package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pgale/chime/internal/auth"
	"github.com/pgale/chime/internal/config"
	"github.com/pgale/chime/internal/store"
	"github.com/pgale/chime/internal/youtube"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg    *config.Config
	logger *log.Logger
)

var rootCmd = &cobra.Command{
	Use:   "chime",
	Short: "Stream music from YouTube in your terminal",
	Long:  `Chime is a terminal music player that searches YouTube, manages playlists and liked songs, and keeps a persistent play queue.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.chimerc)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger = newLogger()
	return nil
}

// newLogger builds the application logger from the log config section.
func newLogger() *log.Logger {
	w := os.Stderr
	if cfg.Log.File != "" {
		if f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = f
		}
	}

	l := log.NewWithOptions(w, log.Options{ReportTimestamp: true})
	switch cfg.Log.Level {
	case "debug":
		l.SetLevel(log.DebugLevel)
	case "warn":
		l.SetLevel(log.WarnLevel)
	case "error":
		l.SetLevel(log.ErrorLevel)
	default:
		l.SetLevel(log.InfoLevel)
	}
	if verbose {
		l.SetLevel(log.DebugLevel)
	}
	return l
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// openStore opens the local database at the configured path.
func openStore() (*store.Store, error) {
	path := cfg.Storage.Database
	if path == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "chime.db")
	}
	return store.Open(path)
}

// newAuthService restores the persisted session over the given store.
func newAuthService(st *store.Store) (*auth.Service, error) {
	storage, err := auth.NewSessionStorage("")
	if err != nil {
		return nil, err
	}
	return auth.NewService(st, storage)
}

// newYouTubeClient builds the metadata client from config.
func newYouTubeClient() (*youtube.Client, error) {
	if cfg.YouTube.APIKey == "" {
		return nil, fmt.Errorf("youtube api key not configured. Run 'chime config set youtube.api_key <key>'")
	}
	return youtube.New(cfg.YouTube.APIKey, cfg.YouTube.Region, logger), nil
}
