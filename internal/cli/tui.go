package cli

import (
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the player interface",
	Long:  `Open the full-screen player with search, queue and history panels.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startSession(nil)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
