package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/panelwatch/internal/summary"
)

// Card width bounds. A zero terminal width (before the first resize) uses defaultCardWidth.
const (
	defaultCardWidth = 60
	maxCardWidth     = 80
	graphWidth       = 30
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderCard())
	b.WriteString("\n")
	if h := m.renderHistory(); h != "" {
		b.WriteString("\n")
		b.WriteString(h)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with reachability and freshness.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render(strings.TrimSpace(m.formatter.Brand() + " watch"))

	var state string
	switch {
	case m.snapshot == nil:
		state = WaitingStyle.Render("connecting")
	case m.snapshot.Reachable:
		state = OnlineStyle.Render("online")
	default:
		state = OfflineStyle.Render("offline")
	}

	stats := fmt.Sprintf(" | %s | %d nodes | last update %s", state, m.NodeCount(), m.updateText())

	line := title + LabelStyle.Render(stats)
	if m.fetching {
		line += " " + m.spinner.View()
	}
	return HeaderStyle.Render(line)
}

func (m Model) updateText() string {
	if m.lastUpdate.IsZero() {
		return "never"
	}
	secs := m.SecondsSinceUpdate()
	switch secs {
	case 0:
		return "just now"
	case 1:
		return "1s ago"
	default:
		return fmt.Sprintf("%ds ago", secs)
	}
}

// SecondsSinceUpdate returns whole seconds since the last completed fetch.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

// renderCard renders the latest payload the same way `panelwatch stats` does.
func (m Model) renderCard() string {
	if m.payload == nil {
		return WaitingStyle.Render("  " + m.spinner.View() + " querying panel...")
	}
	return summary.Render(*m.payload, m.cardWidth())
}

func (m Model) cardWidth() int {
	if m.width <= 0 {
		return defaultCardWidth
	}
	w := m.width - 2
	if w > maxCardWidth {
		w = maxCardWidth
	}
	if w < summary.MinCardWidth {
		w = summary.MinCardWidth
	}
	return w
}

// renderHistory renders availability and latency over the retained refreshes.
func (m Model) renderHistory() string {
	if m.history.Len() == 0 {
		return ""
	}

	avail := m.history.Availability()
	availText := lipgloss.NewStyle().Foreground(AvailabilityColor(avail)).Render(fmt.Sprintf("%5.1f%%", avail))
	availLine := LabelStyle.Render("availability ") + availText + " " +
		RenderAvailabilityStrip(m.history.Reachability(graphWidth), graphWidth)

	latencyLine := LabelStyle.Render("latency      ") +
		ValueStyle.Render(fmt.Sprintf("%5dms", m.lastLatency.Milliseconds())) + " " +
		RenderSparkline(m.history.Latency(graphWidth), graphWidth, ColorGraph)

	return "  " + availLine + "\n  " + latencyLine
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"? help",
		fmt.Sprintf("every %s", m.interval),
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
