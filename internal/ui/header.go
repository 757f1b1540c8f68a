package ui

import (
	"fmt"
	"strings"

	"github.com/vanguard-ops/vanguard/internal/views"
)

// renderHeader draws the HUD line: sync identity, convoy totals, threat
// summary and the non-blocking error banner. Stale data keeps rendering
// through outages; the banner is the only hint something is wrong.
func (m Model) renderHeader() string {
	var parts []string

	title := m.styles.Title.Render("VANGUARD")
	parts = append(parts, title)

	if m.snapshot == nil {
		parts = append(parts, m.styles.Muted.Render("awaiting first sync..."))
	} else {
		parts = append(parts, m.styles.Muted.Render("sync "+m.snapshot.SyncID))

		counts := views.StatusCounts(m.snapshot)
		active := counts["IN_TRANSIT"]
		parts = append(parts, m.styles.Text.Render(
			fmt.Sprintf("convoys %d (%d in transit)", len(m.snapshot.Convoys), active)))

		if top, ok := views.HighestThreat(m.snapshot); ok {
			style := m.styles.Warning
			if top.Severity >= 0.8 {
				style = m.styles.Danger
			}
			parts = append(parts, style.Render(
				fmt.Sprintf("threats %d (max %.2f)", len(m.snapshot.Threats), top.Severity)))
		} else {
			parts = append(parts, m.styles.Success.Render("no threats"))
		}

		engine := m.snapshot.SystemStatus.EngineStatus
		if engine != "" {
			parts = append(parts, m.styles.Muted.Render("engine "+strings.ToLower(engine)))
		}
	}

	parts = append(parts, m.renderErrorBanner())

	return m.styles.Header.Width(m.width).Render(strings.Join(parts, "  │  "))
}

func (m Model) renderErrorBanner() string {
	if m.store == nil {
		return ""
	}
	err := m.store.Err()
	if err == nil {
		return m.styles.Success.Render("link ok")
	}
	return m.styles.Danger.Render(
		fmt.Sprintf("stale: %v (retry %d, press r)", err, m.store.RetryCount()))
}
