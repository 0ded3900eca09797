package styles

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors, populated from the selected catppuccin flavor
var (
	Primary   lipgloss.Color
	Accent    lipgloss.Color
	Good      lipgloss.Color
	Bad       lipgloss.Color
	Border    lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	TextDim   lipgloss.Color
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Liked     lipgloss.Style
)

// Border styles
var (
	BorderStyle   lipgloss.Style
	FocusedBorder lipgloss.Style
)

func init() {
	SetTheme("mocha")
}

// flavor is the slice of the catppuccin palette the UI draws from.
type flavor interface {
	Mauve() catppuccin.Color
	Peach() catppuccin.Color
	Green() catppuccin.Color
	Red() catppuccin.Color
	Surface1() catppuccin.Color
	Text() catppuccin.Color
	Subtext0() catppuccin.Color
	Overlay0() catppuccin.Color
}

// SetTheme rebuilds the palette from a catppuccin flavor name. Unknown
// names fall back to mocha; "auto" picks by terminal background.
func SetTheme(name string) {
	var fl flavor
	switch name {
	case "latte":
		fl = catppuccin.Latte
	case "frappe":
		fl = catppuccin.Frappe
	case "macchiato":
		fl = catppuccin.Macchiato
	case "auto":
		if lipgloss.HasDarkBackground() {
			fl = catppuccin.Mocha
		} else {
			fl = catppuccin.Latte
		}
	default:
		fl = catppuccin.Mocha
	}
	apply(fl)
}

func apply(flavor flavor) {
	Primary = lipgloss.Color(flavor.Mauve().Hex)
	Accent = lipgloss.Color(flavor.Peach().Hex)
	Good = lipgloss.Color(flavor.Green().Hex)
	Bad = lipgloss.Color(flavor.Red().Hex)
	Border = lipgloss.Color(flavor.Surface1().Hex)
	Text = lipgloss.Color(flavor.Text().Hex)
	TextMuted = lipgloss.Color(flavor.Subtext0().Hex)
	TextDim = lipgloss.Color(flavor.Overlay0().Hex)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Good)
	Paused = lipgloss.NewStyle().Foreground(Accent)
	Liked = lipgloss.NewStyle().Foreground(Bad)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary)
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// ProgressBar creates a progress bar string
func ProgressBar(percent float64, width int) string {
	filled := int(percent / 100 * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	filledStyle := lipgloss.NewStyle().Foreground(Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(Border)

	return filledStyle.Render(Repeat("━", filled)) +
		emptyStyle.Render(Repeat("─", width-filled))
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}

// Repeat repeats a string n times
func Repeat(s string, n int) string {
	result := ""
	for i := 0; i < n; i++ {
		result += s
	}
	return result
}
