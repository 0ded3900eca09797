package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/tui"
)

var (
	playVideoID string
	playFirst   bool
)

var playCmd = &cobra.Command{
	Use:   "play [query]",
	Short: "Search and play music",
	Long: `Search YouTube and start a playback session. With multiple results a
picker is shown unless --first is set. Without arguments, opens the
player with an empty queue.

Examples:
  chime play "bohemian rhapsody"
  chime play "lofi beats" --first
  chime play --id dQw4w9WgXcQ`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&playVideoID, "id", "", "Play a specific video id")
	playCmd.Flags().BoolVar(&playFirst, "first", false, "Play the first search result without asking")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	yt, err := newYouTubeClient()
	if err != nil {
		return err
	}

	var seed []core.Track

	switch {
	case playVideoID != "":
		track, err := yt.VideoDetails(ctx, playVideoID)
		if err != nil {
			return fmt.Errorf("failed to resolve video: %w", err)
		}
		seed = append(seed, *track)

	case len(args) > 0:
		query := joinArgs(args)
		results := yt.Search(ctx, query, cfg.YouTube.MaxResults)
		if len(results) == 0 {
			fmt.Println("No results")
			return nil
		}

		choice := results[0]
		if !playFirst && len(results) > 1 {
			picked, err := pickResult(results)
			if err != nil {
				return err
			}
			choice = picked
		}

		track, err := yt.VideoDetails(ctx, choice.VideoID)
		if err != nil {
			return fmt.Errorf("failed to resolve video: %w", err)
		}
		seed = append(seed, *track)
	}

	return startSession(seed)
}

// pickResult shows an interactive picker over search results.
func pickResult(results []core.SearchResult) (core.SearchResult, error) {
	options := make([]huh.Option[int], len(results))
	for i, r := range results {
		options[i] = huh.NewOption(fmt.Sprintf("%s — %s", r.Title, r.Channel), i)
	}

	var idx int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Pick a track").
			Options(options...).
			Value(&idx),
	))
	if err := form.Run(); err != nil {
		return core.SearchResult{}, err
	}
	return results[idx], nil
}

// startSession wires the collaborators and runs the player TUI.
func startSession(seed []core.Track) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer st.Close()

	authSvc, err := newAuthService(st)
	if err != nil {
		return err
	}

	yt, err := newYouTubeClient()
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		Config:  cfg,
		Logger:  logger,
		Store:   st,
		Auth:    authSvc,
		YouTube: yt,
		Seed:    seed,
	})
}
