// Package testing provides test doubles for the panel package.
package testing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rileyhilliard/panelwatch/internal/panel"
)

// FakeFetcher returns queued snapshots in order, repeating the last one once the
// queue runs dry.
type FakeFetcher struct {
	mu        sync.Mutex
	snapshots []panel.Snapshot
	last      panel.Snapshot

	// Calls counts Fetch invocations.
	Calls int
}

// NewFakeFetcher creates a fetcher that replays snaps.
func NewFakeFetcher(snaps ...panel.Snapshot) *FakeFetcher {
	return &FakeFetcher{snapshots: snaps, last: Down()}
}

// Push queues more snapshots.
func (f *FakeFetcher) Push(snaps ...panel.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snapshots = append(f.snapshots, snaps...)
}

func (f *FakeFetcher) Fetch(context.Context) panel.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls++
	if len(f.snapshots) > 0 {
		f.last = f.snapshots[0]
		f.snapshots = f.snapshots[1:]
	}
	return f.last
}

// CallCount returns the number of fetches so far.
func (f *FakeFetcher) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls
}

// Up is a reachable snapshot holding nodes.
func Up(nodes ...panel.Node) panel.Snapshot {
	return panel.Snapshot{Reachable: true, Nodes: nodes, FetchedAt: time.Now()}
}

// Down is an unreachable snapshot.
func Down() panel.Snapshot {
	return panel.Unreachable(errors.New("connection refused"), time.Now())
}
