package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHelp() string {
	rows := []struct{ key, action string }{
		{"tab", "cycle panels (convoys / routes / threats)"},
		{"↑/↓, k/j", "move cursor"},
		{"enter", "select convoy or route (shared across panels)"},
		{"esc", "clear selection for the active panel"},
		{"r", "manual refresh"},
		{"v", "fetch vehicle roster for selected convoy"},
		{"t", "cycle theme"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("VANGUARD KEYS"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(m.styles.Accent.Render(padRight(row.key, 10)))
		b.WriteString(m.styles.Text.Render(row.action))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("any key to close"))

	box := m.styles.Panel.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
