package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/tui/styles"
)

// Queue displays the playback queue
type Queue struct {
	offset   int
	selected int
}

// NewQueue creates a new Queue component
func NewQueue() *Queue {
	return &Queue{}
}

// SelectNext moves the selection down
func (q *Queue) SelectNext(total int) {
	if q.selected < total-1 {
		q.selected++
	}
}

// SelectPrev moves the selection up
func (q *Queue) SelectPrev() {
	if q.selected > 0 {
		q.selected--
	}
}

// Selected returns the selected index
func (q *Queue) Selected() int {
	return q.selected
}

// Reset clears the selection and scroll position
func (q *Queue) Reset() {
	q.offset = 0
	q.selected = 0
}

// Render renders the queue panel. currentID marks the playing track.
func (q *Queue) Render(tracks []core.Track, currentID string, width, height int, focused bool) string {
	title := styles.PanelTitle("Queue", focused)

	var content string
	if len(tracks) == 0 {
		content = styles.Muted.Render("Queue is empty")
	} else {
		content = q.renderTracks(tracks, currentID, width-4, height-4, focused)
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

func (q *Queue) renderTracks(tracks []core.Track, currentID string, width, maxLines int, focused bool) string {
	if q.selected >= len(tracks) {
		q.selected = len(tracks) - 1
	}

	visibleCount := maxLines - 1
	if visibleCount < 1 {
		visibleCount = 1
	}

	// Keep the selection visible
	if q.selected < q.offset {
		q.offset = q.selected
	}
	if q.selected >= q.offset+visibleCount {
		q.offset = q.selected - visibleCount + 1
	}

	start := q.offset
	end := start + visibleCount
	if end > len(tracks) {
		end = len(tracks)
	}

	lines := make([]string, 0, end-start+1)

	// "XX. " + marker + " — "
	const overhead = 9

	for i := start; i < end; i++ {
		track := tracks[i]
		num := fmt.Sprintf("%2d.", i+1)

		title, artist := fitColumns(track.Title, track.Artist, width-overhead)

		var line string
		switch {
		case track.ID == currentID:
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, artist))
		case focused && i == q.selected:
			line = styles.Highlight.Render(fmt.Sprintf("%s > %s — %s", num, title, artist))
		default:
			line = fmt.Sprintf("%s   %s — %s",
				styles.Dim.Render(num),
				title,
				styles.Muted.Render(artist))
		}
		lines = append(lines, line)
	}

	if end < len(tracks) {
		lines = append(lines, styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fitColumns truncates a title/artist pair into the available width,
// reserving at least a third of the space for the artist.
func fitColumns(title, artist string, available int) (string, string) {
	if len(title)+len(artist) <= available {
		return title, artist
	}

	minArtist := available / 3
	if minArtist < 10 {
		minArtist = 10
	}
	if minArtist > available-10 {
		minArtist = available - 10
	}

	artistSpace := minArtist
	if len(artist) < artistSpace {
		artistSpace = len(artist)
	}
	titleSpace := available - artistSpace

	return truncate(title, titleSpace), truncate(artist, artistSpace)
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
