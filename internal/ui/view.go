package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	header := m.renderHeader()

	var panel string
	switch m.currentView {
	case ViewConvoys:
		panel = m.renderConvoys()
	case ViewRoutes:
		panel = m.renderRoutes()
	case ViewThreats:
		panel = m.renderThreats()
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.styles.Focused.Width(m.tableWidth()).Height(m.panelHeight()).Render(panel),
		m.styles.Panel.Width(m.detailWidth()).Height(m.panelHeight()).Render(m.detailViewport.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m Model) tableWidth() int {
	w := m.width * 3 / 5
	if w < 40 {
		w = 40
	}
	return w - 4
}

func (m Model) detailWidth() int {
	w := m.width - m.tableWidth() - 8
	if w < 24 {
		w = 24
	}
	return w
}

func (m Model) panelHeight() int {
	h := m.height - 4
	if h < 6 {
		h = 6
	}
	return h
}

func (m Model) renderFooter() string {
	return m.styles.Footer.Width(m.width).Render(
		"tab views · ↑/↓ move · enter select · esc clear · r refresh · v vehicles · t theme · ? help · q quit")
}
