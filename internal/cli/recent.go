package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pgale/chime/internal/errors"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently played tracks",
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, args []string) error {
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

	entries, err := st.RecentlyPlayed(ctx, authSvc.CurrentUser().ID)
	if err != nil {
		return err
	}

	if JSONOutput() {
		return printJSON(entries)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing played yet")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s — %s  (%s)\n", e.Track.Title, e.Track.Artist, humanize.Time(e.PlayedAt))
	}
	return nil
}
