package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/tui/styles"
)

// NowPlaying displays the currently playing track
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(state core.PlaybackState, liked, muted, repeat, shuffle bool, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if !state.HasTrack() {
		content = styles.Muted.Render("Nothing playing. Press / to search.")
	} else {
		content = n.renderTrack(state, liked, muted, repeat, shuffle, width-4)
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

func (n *NowPlaying) renderTrack(state core.PlaybackState, liked, muted, repeat, shuffle bool, width int) string {
	track := state.Track

	icon := styles.StatusIcon(state.IsPlaying)
	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(track.Title)

	artist := styles.Subtitle.Render(track.Artist)

	heart := ""
	if liked {
		heart = " " + styles.Liked.Render("♥")
	}

	// Progress bar with times on either side
	progressWidth := width - 14
	if progressWidth < 10 {
		progressWidth = 10
	}
	progressBar := styles.ProgressBar(state.ProgressPercent(), progressWidth)
	currentTime := formatDuration(state.Progress)
	totalTime := formatDuration(state.Duration)
	progress := fmt.Sprintf("%s %s %s", currentTime, progressBar, totalTime)

	volume := fmt.Sprintf("🔊 %d%%", int(state.Volume*100))
	if muted {
		volume = "🔇 muted"
	}
	flags := ""
	if repeat {
		flags += "  ⟳ repeat"
	}
	if shuffle {
		flags += "  ⤭ shuffle"
	}
	controls := styles.Muted.Render(volume + flags)

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title+heart,
		"  "+artist,
		"",
		progress,
		"",
		controls,
	)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}
