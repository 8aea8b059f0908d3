package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette the live view renders with.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Warning   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:      "terminal",
		Primary:   lipgloss.Color("86"),
		Secondary: lipgloss.Color("49"),
		Text:      lipgloss.Color("252"),
		Muted:     lipgloss.Color("240"),
		Warning:   lipgloss.Color("214"),
	},
	{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#00cc00"),
		Text:      lipgloss.Color("#88ff88"),
		Muted:     lipgloss.Color("#005500"),
		Warning:   lipgloss.Color("#ffff00"),
	},
	{
		Name:      "minimal",
		Primary:   lipgloss.Color("#ffffff"),
		Secondary: lipgloss.Color("#cccccc"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#888888"),
		Warning:   lipgloss.Color("#ffaa00"),
	},
}

type styles struct {
	canvas lipgloss.Style
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	graph  lipgloss.Style
	status lipgloss.Style
	paused lipgloss.Style
	help   lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas: lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 2),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(44),
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		graph:  lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		status: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		paused: lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

func (s styles) row(label, value string) string {
	return s.label.Render(label) + s.value.Render(value) + "\n"
}

// ProgressBar renders a fixed-width bar for fraction in [0, 1].
func ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	filled = min(max(filled, 0), width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
