package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/tui/styles"
)

// History displays recently played tracks, most recent first
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(entries []core.HistoryEntry, width, height int, focused bool) string {
	title := styles.PanelTitle("History", focused)

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No history yet")
	} else {
		content = h.renderHistory(entries, width-4, height-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderHistory(entries []core.HistoryEntry, width, maxLines int) string {
	lines := make([]string, 0, maxLines)

	// icon + spacing + " — " + room for the timestamp
	const overhead = 14

	for i, entry := range entries {
		if i >= maxLines {
			break
		}

		timeAgo := formatTimeAgo(entry.PlayedAt)
		timeWidth := len(timeAgo)

		title, artist := fitColumns(entry.Track.Title, entry.Track.Artist, width-overhead-timeWidth)

		trackInfo := fmt.Sprintf("%s — %s", title, artist)
		trackInfoLen := len(title) + 3 + len(artist)

		padding := width - 2 - trackInfoLen - timeWidth
		if padding < 1 {
			padding = 1
		}

		line := fmt.Sprintf("%s %s%s%s",
			styles.Dim.Render("♪"),
			trackInfo,
			lipgloss.NewStyle().Width(padding).Render(""),
			styles.Dim.Render(timeAgo))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}
