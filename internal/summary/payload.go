// Package summary turns panel snapshots into display payloads and renders them for the terminal.
package summary

import "time"

// Colors used by payloads, as 0xRRGGBB.
const (
	ColorAlert   = 0xE74C3C // red
	ColorHealthy = 0x2ECC71 // green
)

// Palette holds the cosmetic colors an online summary picks from at random.
var Palette = []int{
	0x5865F2, // blurple
	0x9B59B6, // purple
	0xE91E63, // magenta
	0x1ABC9C, // teal
	0x71368A, // dark purple
	0x3498DB, // blue
}

// Glyphs decorating titles, fields and alerts.
const (
	GlyphPanel   = "🖥️"
	GlyphNode    = "🧩"
	GlyphRAM     = "💾"
	GlyphDisk    = "📀"
	GlyphUptime  = "⏱️"
	GlyphOnline  = "🟢"
	GlyphOffline = "🔴"
	GlyphRefresh = "🔁"
	GlyphShield  = "🛡️"
	GlyphAlert   = "🚨"
	GlyphGlobe   = "🌐"
	GlyphWarning = "⚠️"
	GlyphCheck   = "✅"
)

// Field is one titled block of a payload.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Payload is a chat-agnostic rich message: Discord renders it as an embed,
// the terminal as a lipgloss card.
type Payload struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Color        int       `json:"color"`
	Fields       []Field   `json:"fields"`
	Footer       string    `json:"footer,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
}

// InPalette reports whether c is one of the online palette colors.
func InPalette(c int) bool {
	for _, p := range Palette {
		if p == c {
			return true
		}
	}
	return false
}
