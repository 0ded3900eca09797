package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var browseLimit int

var browseCmd = &cobra.Command{
	Use:   "browse [category]",
	Short: "Browse popular music",
	Long: `List the most popular music videos for your region, or browse a
category (pop, rock, hiphop, electronic, jazz, classical, indie, chill,
workout, focus).

Examples:
  chime browse
  chime browse jazz`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().IntVarP(&browseLimit, "limit", "n", 0, "Maximum results (default from config)")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	yt, err := newYouTubeClient()
	if err != nil {
		return err
	}

	limit := browseLimit
	if limit == 0 {
		limit = cfg.YouTube.MaxResults
	}

	results := yt.Popular(ctx, limit)
	if len(args) == 1 {
		results = yt.ByCategory(ctx, args[0], limit)
	}

	if JSONOutput() {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No results")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%2d. %s\n    %s  (%s)\n", i+1, r.Title, r.Channel, r.VideoID)
	}
	return nil
}
