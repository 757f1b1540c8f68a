package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanguard-ops/vanguard/internal/views"
)

// renderConvoys draws the tracking panel. The row matching the shared
// selection gets the selection style even when the cursor is elsewhere, so a
// pick made on another panel is visible here too.
func (m Model) renderConvoys() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("CONVOYS"))
	b.WriteString("\n")
	if m.snapshot == nil || len(m.snapshot.Convoys) == 0 {
		b.WriteString(m.styles.Muted.Render("no convoys"))
		return b.String()
	}
	cursor := m.cursor[ViewConvoys]
	for i, c := range m.snapshot.Convoys {
		route := "—"
		if c.RouteID != nil {
			if r, ok := views.RouteByID(m.snapshot, *c.RouteID); ok {
				route = r.Name
			} else {
				route = fmt.Sprintf("route %d (not found)", *c.RouteID)
			}
		}
		line := fmt.Sprintf("%-12s %-10s %-18s %5.1f km/h %s",
			truncate(c.Name, 12), c.Status, truncate(route, 18), c.SpeedKPH, truncate(c.Cargo, 14))
		b.WriteString(m.decorateRow(line, i == cursor, m.selection.ConvoyID != nil && *m.selection.ConvoyID == c.ID, c.Status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderRoutes() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("ROUTES"))
	b.WriteString("\n")
	if m.snapshot == nil || len(m.snapshot.Routes) == 0 {
		b.WriteString(m.styles.Muted.Render("no routes"))
		return b.String()
	}
	cursor := m.cursor[ViewRoutes]
	for i, r := range m.snapshot.Routes {
		onRoute := len(views.ConvoysOnRoute(m.snapshot, r.ID))
		threats := len(views.ThreatsForRoute(m.snapshot, r.ID))
		line := fmt.Sprintf("%-14s %-12s→%-12s %2d convoys %2d threats %4.1f",
			truncate(r.Name, 14), truncate(r.Origin, 12), truncate(r.Destination, 12),
			onRoute, threats, r.ThreatLevel)
		b.WriteString(m.decorateRow(line, i == cursor, m.selection.RouteID != nil && *m.selection.RouteID == r.ID, r.Status))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderThreats() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("THREATS"))
	b.WriteString("\n")
	if m.snapshot == nil || len(m.snapshot.Threats) == 0 {
		b.WriteString(m.styles.Muted.Render("no threats reported"))
		return b.String()
	}
	cursor := m.cursor[ViewThreats]
	for i, t := range m.snapshot.Threats {
		route := "off-route"
		selected := false
		if t.RouteID != nil {
			if r, ok := views.RouteByID(m.snapshot, *t.RouteID); ok {
				route = r.Name
			} else {
				route = fmt.Sprintf("route %d (not found)", *t.RouteID)
			}
			selected = m.selection.RouteID != nil && *m.selection.RouteID == *t.RouteID
		}
		line := fmt.Sprintf("%-10s sev %.2f  %-14s %s",
			truncate(t.Kind, 10), t.Severity, truncate(route, 14), truncate(t.Description, 32))
		switch {
		case i == cursor:
			b.WriteString(m.styles.Selected.Render("❯ " + line))
		case selected:
			b.WriteString(m.styles.Accent.Render("· " + line))
		default:
			b.WriteString("  " + m.severityStyle(t.Severity).Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) decorateRow(line string, atCursor, selected bool, status string) string {
	switch {
	case atCursor:
		return m.styles.Selected.Render("❯ " + line)
	case selected:
		return m.styles.Accent.Render("· " + line)
	default:
		return "  " + m.theme.StatusStyle(status).Render(line)
	}
}

func (m Model) severityStyle(severity float64) lipgloss.Style {
	switch {
	case severity >= 0.8:
		return m.styles.Danger
	case severity >= 0.5:
		return m.styles.Warning
	default:
		return m.styles.Muted
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 1 {
		return s[:max]
	}
	return s[:max-1] + "…"
}
