package monitor

import (
	"sync"
	"time"
)

// DefaultHistorySize is the number of refreshes kept for graphs.
const DefaultHistorySize = 60

// Sample is the outcome of one dashboard refresh.
type Sample struct {
	Reachable bool
	Nodes     int
	Latency   time.Duration
	At        time.Time
}

// History keeps the most recent refresh samples in ring buffers.
// It is safe for concurrent use.
type History struct {
	mu        sync.RWMutex
	latency   *ringBuffer
	reachable *ringBuffer
	nodes     *ringBuffer
	total     int
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history with room for size samples.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		latency:   newRingBuffer(size),
		reachable: newRingBuffer(size),
		nodes:     newRingBuffer(size),
	}
}

// Push records a sample.
func (h *History) Push(s Sample) {
	h.mu.Lock()
	defer h.mu.Unlock()

	reachable := 0.0
	if s.Reachable {
		reachable = 1
	}
	h.reachable.push(reachable)
	h.latency.push(float64(s.Latency.Milliseconds()))
	h.nodes.push(float64(s.Nodes))
	h.total++
}

// Len returns the number of samples currently retained.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reachable.count
}

// Total returns the number of samples ever pushed.
func (h *History) Total() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.total
}

// Latency returns up to count latencies in milliseconds, oldest first.
func (h *History) Latency(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.latency.getLast(count)
}

// Reachability returns up to count samples as 1 (reachable) or 0, oldest first.
func (h *History) Reachability(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.reachable.getLast(count)
}

// Availability returns the percentage of retained samples where the panel was
// reachable, or -1 without samples.
func (h *History) Availability() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	values := h.reachable.getLast(h.reachable.count)
	if len(values) == 0 {
		return -1
	}
	var up float64
	for _, v := range values {
		up += v
	}
	return up / float64(len(values)) * 100
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

func (r *ringBuffer) push(val float64) {
	r.data[r.head] = val
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last n values in chronological order.
func (r *ringBuffer) getLast(n int) []float64 {
	if n <= 0 || r.count == 0 {
		return nil
	}
	if n > r.count {
		n = r.count
	}

	result := make([]float64, n)
	start := (r.head - n + r.size) % r.size
	for i := 0; i < n; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
