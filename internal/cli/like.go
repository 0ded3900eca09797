package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgale/chime/internal/errors"
)

var likeCmd = &cobra.Command{
	Use:   "like <video-id>",
	Short: "Toggle a liked song",
	Long: `Add or remove a track from your liked songs. Requires being
signed in; run 'chime auth login' first.`,
	Args: cobra.ExactArgs(1),
	RunE: runLike,
}

var likedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List liked songs",
	RunE:  runLiked,
}

func init() {
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(likedCmd)
}

func runLike(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	authSvc, err := newAuthService(st)
	if err != nil {
		return err
	}
	if !authSvc.Authenticated() {
		return errors.ErrLoginRequired
	}
	user := authSvc.CurrentUser()

	yt, err := newYouTubeClient()
	if err != nil {
		return err
	}
	track, err := yt.VideoDetails(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve video: %w", err)
	}

	liked, err := st.ToggleLike(ctx, user.ID, *track)
	if err != nil {
		return fmt.Errorf("failed to update liked songs: %w", err)
	}

	if JSONOutput() {
		return printJSON(map[string]any{"track": track, "liked": liked})
	}
	if liked {
		fmt.Printf("♥ Liked %s\n", track.Title)
	} else {
		fmt.Printf("Removed %s from liked songs\n", track.Title)
	}
	return nil
}

func runLiked(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	authSvc, err := newAuthService(st)
	if err != nil {
		return err
	}
	if !authSvc.Authenticated() {
		return errors.ErrLoginRequired
	}

	tracks, err := st.LikedSongs(ctx, authSvc.CurrentUser().ID)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(tracks)
	}

	if len(tracks) == 0 {
		fmt.Println("No liked songs yet")
		return nil
	}
	for i, t := range tracks {
		fmt.Printf("%2d. %s — %s  [%s]\n", i+1, t.Title, t.Artist, formatDuration(t.Duration))
	}
	return nil
}
