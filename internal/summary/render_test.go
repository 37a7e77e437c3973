package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestRender_Online(t *testing.T) {
	p := Payload{
		Title:       "🛡️ SnowCloud Node Stats Dashboard",
		Description: "🌐 **Panel:** 🟢 Online",
		Color:       Palette[0],
		Fields: []Field{
			{Name: "🧩 Node: `node-1` 🟢", Value: "💾 **Memory:** `2048 MB`\n📀 **Disk:** `10240 MB`"},
		},
		Footer:    "made by gg",
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	out := Render(p, 60)

	assert.Contains(t, out, "SnowCloud Node Stats Dashboard")
	assert.Contains(t, out, "Memory: 2048 MB")
	assert.Contains(t, out, "Disk: 10240 MB")
	assert.Contains(t, out, "made by gg")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "`")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 60)
	}
}

func TestRender_NarrowWidthIsRaised(t *testing.T) {
	out := Render(Payload{Title: "t", Description: "d"}, 5)
	first := strings.Split(out, "\n")[0]
	assert.Equal(t, MinCardWidth, lipgloss.Width(first))
}

func TestRender_NoFooterWithoutTimestamp(t *testing.T) {
	out := Render(Payload{Title: "t", Description: "d"}, 40)
	assert.NotContains(t, out, "•")
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#E74C3C"), HexColor(ColorAlert))
	assert.Equal(t, lipgloss.Color("#00000A"), HexColor(10))
}
