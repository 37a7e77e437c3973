package panel

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/config"
)

// UptimeSource fills in Node.Uptime for a freshly fetched snapshot.
type UptimeSource interface {
	Apply(snap *Snapshot)
}

// NewUptimeSource maps a config uptime mode to a source. Unknown modes fall back to NoUptime.
func NewUptimeSource(mode string) UptimeSource {
	switch mode {
	case config.UptimeObserved, "":
		return NewObservedUptime()
	case config.UptimePlaceholder:
		return NewPlaceholderUptime(nil)
	default:
		return NoUptime{}
	}
}

// NoUptime leaves uptime unknown.
type NoUptime struct{}

func (NoUptime) Apply(*Snapshot) {}

// ObservedUptime reports how long each node has been continuously listed while the panel
// was reachable, as seen by this process. An unreachable snapshot resets every node;
// a node missing from a listing is reset on its own.
type ObservedUptime struct {
	mu        sync.Mutex
	firstSeen map[string]time.Time
}

// NewObservedUptime creates an empty observed-uptime tracker.
func NewObservedUptime() *ObservedUptime {
	return &ObservedUptime{firstSeen: make(map[string]time.Time)}
}

func (o *ObservedUptime) Apply(snap *Snapshot) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !snap.Reachable {
		clear(o.firstSeen)
		return
	}

	present := make(map[string]struct{}, len(snap.Nodes))
	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		present[n.Name] = struct{}{}

		since, ok := o.firstSeen[n.Name]
		if !ok || since.After(snap.FetchedAt) {
			since = snap.FetchedAt
			o.firstSeen[n.Name] = since
		}
		n.Uptime = snap.FetchedAt.Sub(since)
		n.UptimeKnown = true
	}

	for name := range o.firstSeen {
		if _, ok := present[name]; !ok {
			delete(o.firstSeen, name)
		}
	}
}

// Peek fills in uptime from what has been recorded so far without recording anything.
// Nodes not seen yet report zero, and an unreachable snapshot is left alone.
func (o *ObservedUptime) Peek(snap *Snapshot) {
	if !snap.Reachable {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		if since, ok := o.firstSeen[n.Name]; ok && !since.After(snap.FetchedAt) {
			n.Uptime = snap.FetchedAt.Sub(since)
		}
		n.UptimeKnown = true
	}
}

// ReadOnly returns a view of s that never changes its recorded state. Sources that
// record nothing are returned as is.
func ReadOnly(s UptimeSource) UptimeSource {
	if o, ok := s.(*ObservedUptime); ok {
		return peekUptime{o}
	}
	return s
}

type peekUptime struct{ o *ObservedUptime }

func (p peekUptime) Apply(snap *Snapshot) { p.o.Peek(snap) }

// PlaceholderUptime reports a random value between one and two hours. The node listing
// exposes no real uptime; this exists to reproduce the classic dashboard look.
type PlaceholderUptime struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlaceholderUptime creates a placeholder source. A nil rng uses a randomly seeded one.
func NewPlaceholderUptime(rng *rand.Rand) *PlaceholderUptime {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &PlaceholderUptime{rng: rng}
}

func (p *PlaceholderUptime) Apply(snap *Snapshot) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range snap.Nodes {
		secs := 3600 + p.rng.IntN(3601)
		snap.Nodes[i].Uptime = time.Duration(secs) * time.Second
		snap.Nodes[i].UptimeKnown = true
	}
}
