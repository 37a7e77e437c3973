package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewHistory_DefaultSize(t *testing.T) {
	h := NewHistory(0)
	assert.Equal(t, DefaultHistorySize, h.latency.size)
}

func TestHistory_PushAndRead(t *testing.T) {
	h := NewHistory(10)

	h.Push(Sample{Reachable: true, Nodes: 2, Latency: 100 * time.Millisecond})
	h.Push(Sample{Reachable: false, Latency: 900 * time.Millisecond})
	h.Push(Sample{Reachable: true, Nodes: 2, Latency: 120 * time.Millisecond})

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []float64{100, 900, 120}, h.Latency(10))
	assert.Equal(t, []float64{900, 120}, h.Latency(2))
	assert.Equal(t, []float64{1, 0, 1}, h.Reachability(3))
	assert.InDelta(t, 66.67, h.Availability(), 0.01)
}

func TestHistory_Wraps(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Push(Sample{Reachable: i > 2, Latency: time.Duration(i) * time.Millisecond})
	}

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 5, h.Total())
	assert.Equal(t, []float64{3, 4, 5}, h.Latency(5))
	assert.Equal(t, 100.0, h.Availability())
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)

	assert.Nil(t, h.Latency(3))
	assert.Nil(t, h.Reachability(0))
	assert.Equal(t, -1.0, h.Availability())
}
