package summary

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/panel"
)

// Options configures a Formatter.
type Options struct {
	Brand         string
	LogoURL       string
	Footer        string
	RetryInterval time.Duration

	// Now and Rand default to time.Now and a randomly seeded source.
	Now  func() time.Time
	Rand *rand.Rand
}

// Formatter builds summary payloads. It is safe for concurrent use.
type Formatter struct {
	opts Options

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFormatter creates a formatter.
func NewFormatter(opts Options) *Formatter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Formatter{opts: opts, rng: rng}
}

// Brand returns the configured brand name.
func (f *Formatter) Brand() string {
	return f.opts.Brand
}

// Now returns the formatter's clock reading.
func (f *Formatter) Now() time.Time {
	return f.opts.Now()
}

// Format builds the payload for a snapshot.
func (f *Formatter) Format(snap panel.Snapshot) Payload {
	if !snap.Reachable {
		return f.Offline()
	}
	return f.Online(snap.Nodes)
}

// Offline builds the panel-unreachable payload.
func (f *Formatter) Offline() Payload {
	return Payload{
		Title: fmt.Sprintf("%s %s Node Monitor", GlyphPanel, f.opts.Brand),
		Description: fmt.Sprintf("%s **Panel Offline / API Error**\n%s Retrying in %ss...",
			GlyphOffline, GlyphRefresh, Seconds(f.opts.RetryInterval)),
		Color:        ColorAlert,
		Fields:       []Field{},
		Footer:       f.opts.Footer,
		Timestamp:    f.opts.Now(),
		ThumbnailURL: f.opts.LogoURL,
	}
}

// Online builds the dashboard payload, one field per node in the given order.
func (f *Formatter) Online(nodes []panel.Node) Payload {
	fields := make([]Field, 0, len(nodes))
	for _, n := range nodes {
		fields = append(fields, NodeField(n))
	}

	return Payload{
		Title:        fmt.Sprintf("%s %s Node Stats Dashboard", GlyphShield, f.opts.Brand),
		Description:  fmt.Sprintf("%s **Panel:** %s Online", GlyphGlobe, GlyphOnline),
		Color:        f.pickColor(),
		Fields:       fields,
		Footer:       f.opts.Footer,
		Timestamp:    f.opts.Now(),
		ThumbnailURL: f.opts.LogoURL,
	}
}

func (f *Formatter) pickColor() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Palette[f.rng.IntN(len(Palette))]
}

// NodeField renders one node as a field.
func NodeField(n panel.Node) Field {
	uptime := "n/a"
	if n.UptimeKnown {
		uptime = FormatUptime(n.Uptime)
	}
	return Field{
		Name: fmt.Sprintf("%s Node: `%s` %s", GlyphNode, n.Name, GlyphOnline),
		Value: fmt.Sprintf("%s **Memory:** `%d MB`\n%s **Disk:** `%d MB`\n%s **Uptime:** `%s`",
			GlyphRAM, n.MemoryMB, GlyphDisk, n.DiskMB, GlyphUptime, uptime),
	}
}

// FormatUptime renders a duration as H:MM:SS, prefixed with "N day(s), " past a day.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	days := total / 86400
	rem := total % 86400
	clock := fmt.Sprintf("%d:%02d:%02d", rem/3600, (rem%3600)/60, rem%60)

	switch days {
	case 0:
		return clock
	case 1:
		return "1 day, " + clock
	default:
		return fmt.Sprintf("%d days, %s", days, clock)
	}
}

// Seconds renders d in seconds without trailing zeros: 10s -> "10", 1.5s -> "1.5".
func Seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

// Plain strips the markdown emphasis used in payload text.
func Plain(s string) string {
	return strings.NewReplacer("**", "", "`", "").Replace(s)
}
