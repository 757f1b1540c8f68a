package ui

import (
	"fmt"
	"strings"

	"github.com/vanguard-ops/vanguard/internal/opsapi"
	"github.com/vanguard-ops/vanguard/internal/views"
)

// refreshDetail rebuilds the detail pane for the current selection. A
// selection that resolves to nothing in the current snapshot is rendered as
// "nothing found", not treated as an error: it may resolve on a later sync.
func (m *Model) refreshDetail() {
	if !m.ready {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

func (m Model) detailContent() string {
	var b strings.Builder

	if m.selection.ConvoyID == nil && m.selection.RouteID == nil {
		return m.styles.Muted.Render("nothing selected\n\nenter on a row to select")
	}

	if id := m.selection.ConvoyID; id != nil {
		b.WriteString(m.styles.Title.Render("CONVOY"))
		b.WriteString("\n")
		convoy, ok := views.ConvoyByID(m.snapshot, *id)
		if !ok {
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("nothing found for convoy %d", *id)))
			b.WriteString("\n")
		} else {
			b.WriteString(fmt.Sprintf("%s (%s)\n", convoy.Name, convoy.Callsign))
			b.WriteString(m.theme.StatusStyle(convoy.Status).Render(convoy.Status))
			b.WriteString(fmt.Sprintf("\ncargo: %s (%.1ft)\n", convoy.Cargo, convoy.CapacityTons))
			b.WriteString(fmt.Sprintf("pos: %.4f, %.4f at %.0f km/h\n", convoy.Position.Lat, convoy.Position.Lon, convoy.SpeedKPH))
			if convoy.Mission != nil {
				b.WriteString(fmt.Sprintf("mission: %s [%s]\n", convoy.Mission.Objective, convoy.Mission.Priority))
			}
			m.writeRecommendations(&b, convoy)
			m.writeVehicles(&b, convoy.ID)
		}
		b.WriteString("\n")
	}

	if id := m.selection.RouteID; id != nil {
		b.WriteString(m.styles.Title.Render("ROUTE"))
		b.WriteString("\n")
		route, ok := views.RouteByID(m.snapshot, *id)
		if !ok {
			b.WriteString(m.styles.Warning.Render(fmt.Sprintf("nothing found for route %d", *id)))
			return b.String()
		}
		b.WriteString(fmt.Sprintf("%s: %s → %s (%.0f km)\n", route.Name, route.Origin, route.Destination, route.LengthKM))

		convoys := views.ConvoysOnRoute(m.snapshot, *id)
		b.WriteString(fmt.Sprintf("convoys on route: %d\n", len(convoys)))
		for _, c := range convoys {
			b.WriteString("  " + c.Name + " " + m.theme.StatusStyle(c.Status).Render(c.Status) + "\n")
		}

		threats := views.ThreatsForRoute(m.snapshot, *id)
		if len(threats) > 0 {
			b.WriteString(m.styles.Danger.Render(fmt.Sprintf("threats: %d", len(threats))))
			b.WriteString("\n")
			for _, t := range threats {
				b.WriteString(fmt.Sprintf("  %s sev %.2f %s\n", t.Kind, t.Severity, truncate(t.Description, 40)))
			}
		}
	}

	return b.String()
}

func (m Model) writeRecommendations(b *strings.Builder, convoy opsapi.Convoy) {
	recs := views.RecommendationsForConvoy(m.snapshot, convoy)
	if len(recs) == 0 {
		return
	}
	b.WriteString(m.styles.Accent.Render("advisories"))
	b.WriteString("\n")
	for _, rec := range recs {
		b.WriteString(fmt.Sprintf("  [%s] %s\n", rec.Severity, truncate(rec.Text, 60)))
	}
}

func (m Model) writeVehicles(b *strings.Builder, convoyID int64) {
	if m.vehiclesErr != nil {
		b.WriteString(m.styles.Warning.Render("vehicles: " + m.vehiclesErr.Error()))
		b.WriteString("\n")
		return
	}
	if m.vehiclesFor != convoyID {
		b.WriteString(m.styles.Muted.Render("press v for vehicle roster"))
		b.WriteString("\n")
		return
	}
	b.WriteString(fmt.Sprintf("vehicles (%d):\n", len(m.vehicles)))
	for _, v := range m.vehicles {
		b.WriteString(fmt.Sprintf("  #%d %-10s %-10s fuel %.0f%%\n", v.ID, v.Kind, v.Status, v.FuelPct))
	}
}
