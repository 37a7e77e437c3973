// Package status tracks panel reachability between polls and reports transitions.
package status

import "sync"

// State is the last observed panel reachability.
type State int

const (
	Unknown State = iota
	Online
	Offline
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Transition is a change of reachability between two observations.
type Transition int

const (
	BecameOnline Transition = iota + 1
	BecameOffline
)

// String returns a human-readable transition.
func (t Transition) String() string {
	switch t {
	case BecameOnline:
		return "became online"
	case BecameOffline:
		return "became offline"
	default:
		return "none"
	}
}

// To returns the state a transition ends in.
func (t Transition) To() State {
	if t == BecameOnline {
		return Online
	}
	return Offline
}

// Tracker holds the last observed state. The zero value starts Unknown and is ready to use.
type Tracker struct {
	mu    sync.Mutex
	state State
}

// NewTracker creates a tracker in the Unknown state.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records a new observation. It returns the transition and true when the state
// changed; Unknown differs from both concrete states, so the first call always reports one.
func (t *Tracker) Observe(reachable bool) (Transition, bool) {
	next, tr := Offline, BecameOffline
	if reachable {
		next, tr = Online, BecameOnline
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == next {
		return 0, false
	}
	t.state = next
	return tr, true
}

// State returns the last observed state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
