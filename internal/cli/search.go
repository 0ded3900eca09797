package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search YouTube for music",
	Long: `Search YouTube's music category for videos matching a query.

Examples:
  chime search "bohemian rhapsody"
  chime search "lofi beats" --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum results (default from config)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	yt, err := newYouTubeClient()
	if err != nil {
		return err
	}

	limit := searchLimit
	if limit == 0 {
		limit = cfg.YouTube.MaxResults
	}

	query := joinArgs(args)
	results := yt.Search(ctx, query, limit)

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

func joinArgs(args []string) string {
	query := ""
	for i, a := range args {
		if i > 0 {
			query += " "
		}
		query += a
	}
	return query
}
