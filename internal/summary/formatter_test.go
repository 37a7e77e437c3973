package summary

import (
	"fmt"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 10, 19, 8, 30, 0, 0, time.UTC)

func newTestFormatter(interval time.Duration) *Formatter {
	return NewFormatter(Options{
		Brand:         "SnowCloud",
		LogoURL:       "https://i.example.com/logo.png",
		Footer:        "made by gg",
		RetryInterval: interval,
		Now:           func() time.Time { return fixedNow },
		Rand:          rand.New(rand.NewPCG(7, 7)),
	})
}

func TestFormat_Offline(t *testing.T) {
	for _, interval := range []time.Duration{10 * time.Second, 45 * time.Second, 1500 * time.Millisecond} {
		t.Run(interval.String(), func(t *testing.T) {
			f := newTestFormatter(interval)

			p := f.Format(panel.Unreachable(assert.AnError, fixedNow))

			assert.Empty(t, p.Fields)
			assert.Equal(t, ColorAlert, p.Color)
			assert.Contains(t, p.Description, fmt.Sprintf("Retrying in %ss", Seconds(interval)))
			assert.Contains(t, p.Description, "Panel Offline")
			assert.Contains(t, p.Title, "SnowCloud Node Monitor")
			assert.Equal(t, "made by gg", p.Footer)
			assert.Equal(t, fixedNow, p.Timestamp)
			assert.Equal(t, "https://i.example.com/logo.png", p.ThumbnailURL)
		})
	}
}

func TestFormat_OfflineDescriptionCarriesInterval(t *testing.T) {
	p := newTestFormatter(10 * time.Second).Offline()
	assert.Contains(t, p.Description, "Retrying in 10s...")
}

func TestFormat_Online(t *testing.T) {
	f := newTestFormatter(10 * time.Second)
	nodes := []panel.Node{
		{Name: "node-1", MemoryMB: 2048, DiskMB: 10240, Uptime: 90 * time.Minute, UptimeKnown: true},
		{Name: "node-2", MemoryMB: 512, DiskMB: 0},
		{Name: "edge", MemoryMB: 65536, DiskMB: 1048576},
	}

	p := f.Format(panel.Snapshot{Reachable: true, Nodes: nodes})

	require.Len(t, p.Fields, len(nodes))
	for i, n := range nodes {
		assert.Contains(t, p.Fields[i].Name, n.Name)
		assert.Contains(t, p.Fields[i].Value, fmt.Sprintf("%d MB", n.MemoryMB))
		assert.Contains(t, p.Fields[i].Value, fmt.Sprintf("%d MB", n.DiskMB))
	}
	assert.Contains(t, p.Fields[0].Value, "1:30:00")
	assert.Contains(t, p.Fields[1].Value, "Uptime:** `n/a`")
	assert.True(t, InPalette(p.Color))
	assert.Contains(t, p.Title, "SnowCloud Node Stats Dashboard")
	assert.Contains(t, p.Description, "Online")
	assert.Equal(t, fixedNow, p.Timestamp)
}

func TestFormat_OnlineEmptyNodes(t *testing.T) {
	p := newTestFormatter(10 * time.Second).Format(panel.Snapshot{Reachable: true})

	assert.NotNil(t, p.Fields)
	assert.Empty(t, p.Fields)
	assert.Contains(t, p.Description, "Online")
	assert.True(t, InPalette(p.Color))
}

func TestFormat_ColorAlwaysFromPalette(t *testing.T) {
	f := NewFormatter(Options{Brand: "x", RetryInterval: time.Second})
	for i := 0; i < 50; i++ {
		assert.True(t, InPalette(f.Online(nil).Color))
	}
}

func TestNodeField(t *testing.T) {
	field := NodeField(panel.Node{Name: "node-1", MemoryMB: 2048, DiskMB: 10240})

	assert.Equal(t, "🧩 Node: `node-1` 🟢", field.Name)
	assert.Equal(t, "💾 **Memory:** `2048 MB`\n📀 **Disk:** `10240 MB`\n⏱️ **Uptime:** `n/a`", field.Value)
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00:00"},
		{time.Hour, "1:00:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{24 * time.Hour, "1 day, 0:00:00"},
		{50*time.Hour + 5*time.Second, "2 days, 2:00:05"},
		{-time.Second, "0:00:00"},
		{1500 * time.Millisecond, "0:00:01"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUptime(tt.in))
		})
	}
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, "10", Seconds(10*time.Second))
	assert.Equal(t, "1.5", Seconds(1500*time.Millisecond))
	assert.Equal(t, "60", Seconds(time.Minute))
}

func TestPlain(t *testing.T) {
	assert.Equal(t, "Memory: 2048 MB", Plain("**Memory:** `2048 MB`"))
}
