package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgale/chime/internal/auth"
	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
	"github.com/pgale/chime/internal/store"
)

var playlistDescription string

var playlistCmd = &cobra.Command{
	Use:   "playlist",
	Short: "Manage playlists",
	Long:  `Create, inspect and modify your playlists. All subcommands require being signed in.`,
}

var playlistCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistCreate,
}

var playlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List playlists",
	RunE:  runPlaylistList,
}

var playlistShowCmd = &cobra.Command{
	Use:   "show <playlist-id>",
	Short: "Show a playlist's tracks",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistShow,
}

var playlistDeleteCmd = &cobra.Command{
	Use:   "delete <playlist-id>",
	Short: "Delete a playlist",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistDelete,
}

var playlistAddCmd = &cobra.Command{
	Use:   "add <playlist-id> <video-id>...",
	Short: "Add tracks to a playlist",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPlaylistAdd,
}

var playlistRemoveCmd = &cobra.Command{
	Use:   "remove <playlist-id> <track-id>",
	Short: "Remove a track from a playlist",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlaylistRemove,
}

func init() {
	playlistCreateCmd.Flags().StringVarP(&playlistDescription, "description", "d", "", "Playlist description")

	playlistCmd.AddCommand(playlistCreateCmd)
	playlistCmd.AddCommand(playlistListCmd)
	playlistCmd.AddCommand(playlistShowCmd)
	playlistCmd.AddCommand(playlistDeleteCmd)
	playlistCmd.AddCommand(playlistAddCmd)
	playlistCmd.AddCommand(playlistRemoveCmd)
	rootCmd.AddCommand(playlistCmd)
}

// requireUser opens the store and resolves the signed-in user.
func requireUser() (*store.Store, *auth.Service, *core.User, error) {
	st, err := openStore()
	if err != nil {
		return nil, nil, nil, err
	}

	authSvc, err := newAuthService(st)
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	if !authSvc.Authenticated() {
		st.Close()
		return nil, nil, nil, errors.ErrLoginRequired
	}
	return st, authSvc, authSvc.CurrentUser(), nil
}

func runPlaylistCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, _, user, err := requireUser()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.CreatePlaylist(ctx, user.ID, args[0], playlistDescription)
	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	if JSONOutput() {
		return printJSON(p)
	}
	fmt.Printf("Created playlist %q (%s)\n", p.Name, p.ID)
	return nil
}

func runPlaylistList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, _, user, err := requireUser()
	if err != nil {
		return err
	}
	defer st.Close()

	playlists, err := st.ListPlaylists(ctx, user.ID)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(playlists)
	}

	if len(playlists) == 0 {
		fmt.Println("No playlists yet. Create one with 'chime playlist create <name>'")
		return nil
	}
	for _, p := range playlists {
		fmt.Printf("%s  %s (%d tracks)\n", p.ID, p.Name, len(p.Tracks))
	}
	return nil
}

func runPlaylistShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, _, _, err := requireUser()
	if err != nil {
		return err
	}
	defer st.Close()

	p, err := st.GetPlaylist(ctx, args[0])
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(p)
	}

	fmt.Printf("%s — %d tracks\n", p.Name, len(p.Tracks))
	if p.Description != "" {
		fmt.Println(p.Description)
	}
	for i, t := range p.Tracks {
		fmt.Printf("%2d. %s — %s  [%s]\n", i+1, t.Title, t.Artist, formatDuration(t.Duration))
	}
	return nil
}

func runPlaylistDelete(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, _, _, err := requireUser()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeletePlaylist(ctx, args[0]); err != nil {
		return err
	}
	if !JSONOutput() {
		fmt.Println("Deleted")
	}
	return nil
}

func runPlaylistAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, _, _, err := requireUser()
	if err != nil {
		return err
	}
	defer st.Close()

	yt, err := newYouTubeClient()
	if err != nil {
		return err
	}

	playlistID := args[0]
	result := errors.PartialResult[[]core.Track]{}

	for _, videoID := range args[1:] {
		track, err := yt.VideoDetails(ctx, videoID)
		if err != nil {
			result.AddError(fmt.Errorf("%s: %w", videoID, err))
			continue
		}
		if err := st.AddTrackToPlaylist(ctx, playlistID, *track); err != nil {
			result.AddError(fmt.Errorf("%s: %w", videoID, err))
			continue
		}
		result.Data = append(result.Data, *track)
	}

	if JSONOutput() {
		return printJSON(map[string]any{
			"added":  result.Data,
			"errors": len(result.Errors),
		})
	}

	for _, t := range result.Data {
		fmt.Printf("Added %s\n", t.Title)
	}
	if result.HasErrors() {
		fmt.Println(result.ErrorSummary())
	}
	return nil
}

func runPlaylistRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, _, _, err := requireUser()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.RemoveTrackFromPlaylist(ctx, args[0], args[1]); err != nil {
		return err
	}
	if !JSONOutput() {
		fmt.Println("Removed")
	}
	return nil
}
