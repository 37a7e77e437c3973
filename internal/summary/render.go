package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette for rendered cards.
const (
	ColorBorder        = lipgloss.Color("#2A2A4A")
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")
)

// MinCardWidth keeps cards legible on narrow terminals.
const MinCardWidth = 30

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary)

	fieldNameStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			PaddingLeft(2)

	footerStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// HexColor converts a 0xRRGGBB payload color to a lipgloss color.
func HexColor(c int) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%06X", c&0xFFFFFF))
}

// Render draws a payload as a bordered card tinted with the payload color.
// width is the total card width including the border; values below MinCardWidth are raised.
func Render(p Payload, width int) string {
	if width < MinCardWidth {
		width = MinCardWidth
	}
	accent := HexColor(p.Color)
	inner := width - 4 // border + padding

	var b strings.Builder
	b.WriteString(titleStyle.Foreground(accent).Render(Plain(p.Title)))
	b.WriteString("\n")
	b.WriteString(descriptionStyle.Width(inner).Render(Plain(p.Description)))

	for _, f := range p.Fields {
		b.WriteString("\n\n")
		b.WriteString(fieldNameStyle.Render(Plain(f.Name)))
		b.WriteString("\n")
		b.WriteString(fieldValueStyle.Width(inner).Render(Plain(f.Value)))
	}

	if footer := footerLine(p); footer != "" {
		b.WriteString("\n\n")
		b.WriteString(footerStyle.Render(footer))
	}

	return cardStyle.BorderForeground(accent).Width(width - 2).Render(b.String())
}

func footerLine(p Payload) string {
	var parts []string
	if p.Footer != "" {
		parts = append(parts, p.Footer)
	}
	if !p.Timestamp.IsZero() {
		parts = append(parts, p.Timestamp.Local().Format(time.DateTime))
	}
	return strings.Join(parts, " • ")
}
