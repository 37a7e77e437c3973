package monitor

import "github.com/charmbracelet/lipgloss"

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent = lipgloss.Color("#FF2E97")
	ColorGraph  = lipgloss.Color("#00FFFF")
)

// Availability thresholds, in percent.
const (
	AvailabilityWarning  = 99.0
	AvailabilityCritical = 90.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	OnlineStyle = lipgloss.NewStyle().
			Foreground(ColorHealthy).
			Bold(true)

	OfflineStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)

	WaitingStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)
)

// AvailabilityColor maps an availability percentage to a severity color.
func AvailabilityColor(percent float64) lipgloss.Color {
	switch {
	case percent < AvailabilityCritical:
		return ColorCritical
	case percent < AvailabilityWarning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}
