package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the UI.
type Theme struct {
	Name string

	Background string
	Surface    string

	SelectionBg   string
	SelectionText string

	Border      string
	BorderFocus string

	Text    string
	Muted   string
	Accent  string
	Success string
	Warning string
	Danger  string

	StatusColors map[string]string
}

// Styles holds the derived lipgloss styles.
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Panel    lipgloss.Style
	Focused  lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Danger   lipgloss.Style
	Selected lipgloss.Style
	Title    lipgloss.Style
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(0, 1),
		Focused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderFocus)).
			Padding(0, 1),
		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),
		Title: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),
	}
}

// StatusStyle returns a style for the given entity status.
func (t Theme) StatusStyle(status string) lipgloss.Style {
	if color, ok := t.StatusColors[status]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted))
}

var themes = []Theme{
	{
		Name:          "Nightwatch",
		Background:    "#10141f",
		Surface:       "#1b2130",
		SelectionBg:   "#2d4f67",
		SelectionText: "#e6e6e6",
		Border:        "#3b4261",
		BorderFocus:   "#7aa2f7",
		Text:          "#c0caf5",
		Muted:         "#565f89",
		Accent:        "#7aa2f7",
		Success:       "#9ece6a",
		Warning:       "#e0af68",
		Danger:        "#f7768e",
		StatusColors: map[string]string{
			"FORMING":    "#565f89",
			"IN_TRANSIT": "#9ece6a",
			"HALTED":     "#e0af68",
			"DELAYED":    "#e0af68",
			"ARRIVED":    "#7aa2f7",
		},
	},
	{
		Name:          "Daylight",
		Background:    "#fafafa",
		Surface:       "#e8e8e8",
		SelectionBg:   "#c8d6e5",
		SelectionText: "#1a1a1a",
		Border:        "#c0c0c0",
		BorderFocus:   "#2a6df4",
		Text:          "#24292f",
		Muted:         "#6e7781",
		Accent:        "#2a6df4",
		Success:       "#1a7f37",
		Warning:       "#9a6700",
		Danger:        "#cf222e",
		StatusColors: map[string]string{
			"FORMING":    "#6e7781",
			"IN_TRANSIT": "#1a7f37",
			"HALTED":     "#9a6700",
			"DELAYED":    "#9a6700",
			"ARRIVED":    "#2a6df4",
		},
	},
}

// ThemeByName returns the named theme, defaulting to the first one.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
