package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProfilerReportsPerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler()
	p.lastTime = now
	p.now = func() time.Time { return now }

	for range 59 {
		now = now.Add(time.Second / 60)
		_, ok := p.Tick()
		assert.False(t, ok)
	}
	// sixty steps of Second/60 fall 40ns short of the interval
	now = time.Unix(1, 0)
	s, ok := p.Tick()
	assert.True(t, ok)
	assert.InDelta(t, 60, s.FPS, 0.5)
	assert.Positive(t, s.SysMB)

	_, ok = p.Tick()
	assert.False(t, ok, "the interval restarts")
}
