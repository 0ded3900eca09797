package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/pgale/chime/internal/errors"
)

// printJSON encodes v to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printError writes a formatted error with suggestion to stderr.
func printError(err error) {
	fmt.Fprintln(os.Stderr, errors.Format(err))
}

// formatDuration renders a duration as M:SS.
func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
