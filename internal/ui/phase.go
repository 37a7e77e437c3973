package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DividerWidth is the default width for divider lines.
const DividerWidth = 64

// PhaseDisplay prints one line per startup step.
type PhaseDisplay struct {
	w io.Writer
}

// NewPhaseDisplay creates a new phase display writing to w.
func NewPhaseDisplay(w io.Writer) *PhaseDisplay {
	return &PhaseDisplay{w: w}
}

// Run times fn and prints a success or failure line named after the step.
func (pd *PhaseDisplay) Run(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	if err != nil {
		pd.RenderFailed(name, time.Since(start))
		return err
	}
	pd.RenderSuccess(name, time.Since(start))
	return nil
}

// RenderSuccess renders a completed phase.
// Shows: ● Connected to Discord (0.3s)
func (pd *PhaseDisplay) RenderSuccess(name string, duration time.Duration) {
	fmt.Fprintln(pd.w, FormatPhase(SymbolComplete, ColorSuccess, name, formatDuration(duration)))
}

// RenderFailed renders a failed phase.
func (pd *PhaseDisplay) RenderFailed(name string, duration time.Duration) {
	fmt.Fprintln(pd.w, FormatPhase(SymbolFail, ColorError, name, formatDuration(duration)))
}

// RenderSkipped renders a skipped phase with an optional reason.
// Shows: ⊘ Presence rotation (no presence entries)
func (pd *PhaseDisplay) RenderSkipped(name string, reason string) {
	if reason != "" {
		reason = "(" + reason + ")"
	}
	fmt.Fprintln(pd.w, FormatPhase(SymbolSkipped, ColorWarning, name, reason))
}

// RenderInfo renders an indented detail line under the previous phase.
func (pd *PhaseDisplay) RenderInfo(label, value string) {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	fmt.Fprintf(pd.w, "  %s %s\n", style.Render(label), value)
}

// Divider renders a horizontal line separating startup output from the log.
func (pd *PhaseDisplay) Divider() {
	fmt.Fprintf(pd.w, "\n%s\n\n", FormatDivider(DividerWidth))
}

// FormatPhase returns a formatted phase line as a string.
func FormatPhase(symbol string, symbolColor lipgloss.Color, name string, timing string) string {
	symbolStyle := lipgloss.NewStyle().Foreground(symbolColor)
	timingStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	if timing == "" {
		return fmt.Sprintf("%s %s", symbolStyle.Render(symbol), name)
	}
	return fmt.Sprintf("%s %s %s", symbolStyle.Render(symbol), name, timingStyle.Render(timing))
}

// FormatDivider returns a divider line as a string.
func FormatDivider(width int) string {
	style := lipgloss.NewStyle().Foreground(ColorMuted)
	return style.Render(strings.Repeat("━", width))
}
