package profiler

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decide feeds whole decisions of frames at a rate that divides the window exactly.
func decide(m Monitor, fps, decisions int) []Direction {
	var out []Direction
	dt := 1 / float32(fps)
	frames := decisions * sampleWindows * fps / 4
	for range frames {
		if d := m.Sample(dt); d != Steady {
			out = append(out, d)
		}
	}
	return out
}

func TestBounds(t *testing.T) {
	cfg := config.Default().Performance
	lo, hi := Bounds(60, cfg)
	assert.Equal(t, float32(45), lo)
	assert.Equal(t, float32(55), hi)

	lo, hi = Bounds(120, cfg)
	assert.Equal(t, float32(45), lo)
	assert.Equal(t, float32(80), hi)

	_, hi = Bounds(90, cfg)
	assert.Equal(t, float32(55), hi, "90 Hz is not high refresh")
}

func TestSteadyRateKeepsRatio(t *testing.T) {
	m := NewMonitor()
	assert.Empty(t, decide(m, 48, 4))
	assert.Equal(t, float32(1), m.DPR())
	assert.InDelta(t, 0.5, m.Factor(), 1e-6)
}

func TestDeclineFloors(t *testing.T) {
	var changes []float32
	m := NewMonitor(WithOnChange(func(dpr float32) { changes = append(changes, dpr) }))

	require.Equal(t, []Direction{Decline}, decide(m, 32, 1))
	assert.InDelta(t, 0.7, m.DPR(), 1e-5)

	assert.Len(t, decide(m, 32, 3), 3)
	assert.InDelta(t, 0.5, m.DPR(), 1e-5)
	assert.False(t, m.FellBack(), "one direction never flip-flops")
	assert.Len(t, changes, 2, "flooring again is not a change")
}

func TestInclineCaps(t *testing.T) {
	m := NewMonitor()
	assert.Len(t, decide(m, 128, 6), 6)
	assert.InDelta(t, 2, m.DPR(), 1e-5)
	assert.InDelta(t, 1, m.Factor(), 1e-6)
}

func TestHighRefreshBounds(t *testing.T) {
	m := NewMonitor()
	m.SetRefreshRate(144)
	assert.Empty(t, decide(m, 64, 2), "64 fps is inside [45, 80]")

	m.SetRefreshRate(60)
	assert.Equal(t, []Direction{Incline}, decide(m, 64, 1))
}

func TestFlipFlopFallsBack(t *testing.T) {
	m := NewMonitor()
	decide(m, 32, 1)
	decide(m, 128, 1)
	assert.False(t, m.FellBack())
	assert.InDelta(t, 1, m.DPR(), 1e-5)

	decide(m, 32, 1)
	require.True(t, m.FellBack())
	assert.Equal(t, float32(0.5), m.DPR())

	assert.Empty(t, decide(m, 128, 3), "monitoring stops after falling back")
	assert.Equal(t, float32(0.5), m.DPR())
}

func TestSampleIgnoresNonPositive(t *testing.T) {
	m := NewMonitor()
	for range 1000 {
		assert.Equal(t, Steady, m.Sample(0))
	}
	assert.Equal(t, float32(1), m.DPR())
}
