// Package theme builds the style set for a display mode. The set is
// constructed once at startup from the persisted preference and passed
// explicitly into each view; toggling the mode rebuilds it.
package theme

import "github.com/charmbracelet/lipgloss"

// Mode is the user-chosen appearance.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode maps a stored preference string onto a Mode, defaulting
// to dark for anything unrecognized.
func ParseMode(s string) Mode {
	if s == string(Light) {
		return Light
	}
	return Dark
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Light {
		return Dark
	}
	return Light
}

// palette holds the raw colors that vary between modes.
type palette struct {
	blue   lipgloss.Color
	green  lipgloss.Color
	yellow lipgloss.Color
	red    lipgloss.Color
	gray   lipgloss.Color
	text   lipgloss.Color
	subtle lipgloss.Color
	border lipgloss.Color
}

var palettes = map[Mode]palette{
	Dark: {
		blue:   lipgloss.Color("#5B9BD5"),
		green:  lipgloss.Color("#6BCB77"),
		yellow: lipgloss.Color("#FFD93D"),
		red:    lipgloss.Color("#FF6B6B"),
		gray:   lipgloss.Color("#868E96"),
		text:   lipgloss.Color("#F8F9FA"),
		subtle: lipgloss.Color("#495057"),
		border: lipgloss.Color("#495057"),
	},
	Light: {
		blue:   lipgloss.Color("#2B6CB0"),
		green:  lipgloss.Color("#2F855A"),
		yellow: lipgloss.Color("#B7791F"),
		red:    lipgloss.Color("#C53030"),
		gray:   lipgloss.Color("#718096"),
		text:   lipgloss.Color("#1A202C"),
		subtle: lipgloss.Color("#CBD5E0"),
		border: lipgloss.Color("#E2E8F0"),
	},
}

// Styles is the full style set handed to views.
type Styles struct {
	Mode Mode

	// Raw colors for ad-hoc styling inside views.
	ColorBlue   lipgloss.Color
	ColorGreen  lipgloss.Color
	ColorYellow lipgloss.Color
	ColorRed    lipgloss.Color
	ColorGray   lipgloss.Color
	ColorText   lipgloss.Color

	Header       lipgloss.Style
	StatusBar    lipgloss.Style
	ListItem     lipgloss.Style
	SelectedItem lipgloss.Style
	Dimmed       lipgloss.Style
	Help         lipgloss.Style
	ErrorText    lipgloss.Style
	Panel        lipgloss.Style
	Deadline     lipgloss.Style
	Overdue      lipgloss.Style
	UnreadBadge  lipgloss.Style
}

// New builds the style set for mode.
func New(mode Mode) *Styles {
	p, ok := palettes[mode]
	if !ok {
		mode = Dark
		p = palettes[Dark]
	}

	return &Styles{
		Mode: mode,

		ColorBlue:   p.blue,
		ColorGreen:  p.green,
		ColorYellow: p.yellow,
		ColorRed:    p.red,
		ColorGray:   p.gray,
		ColorText:   p.text,

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.text).
			Background(p.blue).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.subtle).
			Padding(0, 1),

		ListItem: lipgloss.NewStyle().
			PaddingLeft(2),

		SelectedItem: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(p.blue).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(p.blue),

		Dimmed: lipgloss.NewStyle().
			Foreground(p.gray),

		Help: lipgloss.NewStyle().
			Foreground(p.gray).
			Italic(true),

		ErrorText: lipgloss.NewStyle().
			Foreground(p.red).
			Bold(true),

		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.border),

		Deadline: lipgloss.NewStyle().
			Foreground(p.yellow),

		Overdue: lipgloss.NewStyle().
			Foreground(p.red).
			Bold(true),

		UnreadBadge: lipgloss.NewStyle().
			Foreground(p.text).
			Background(p.red).
			Padding(0, 1).
			Bold(true),
	}
}

// StatusStyle returns a color-coded style for the given task status.
func (s *Styles) StatusStyle(status string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch status {
	case "pending":
		return base.Foreground(s.ColorYellow)
	case "done":
		return base.Foreground(s.ColorGreen)
	default:
		return base.Foreground(s.ColorGray)
	}
}

// KindStyle returns a color-coded style for a notification kind.
func (s *Styles) KindStyle(kind string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch kind {
	case "overdue":
		return base.Foreground(s.ColorRed)
	case "upcoming":
		return base.Foreground(s.ColorYellow)
	default:
		return base.Foreground(s.ColorGray)
	}
}
