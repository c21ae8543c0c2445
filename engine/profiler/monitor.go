package profiler

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
)

const (
	// sampleWindows is how many averaging windows make one decision.
	sampleWindows = 10
	// factorStep is the quality factor change of one incline or decline.
	factorStep float32 = 0.1
	// initialFactor is the quality factor before the first decision.
	initialFactor float32 = 0.5
)

// Direction is the outcome of one monitor decision.
type Direction int

const (
	// Steady means the average frame rate sat inside the bounds.
	Steady Direction = iota
	// Incline means the average frame rate was above the upper bound.
	Incline
	// Decline means the average frame rate was below the lower bound.
	Decline
)

// Monitor adapts the device pixel ratio to the frame rate. Frame rates are averaged over
// windows; every sampleWindows windows the average is compared to the refresh-rate bounds.
// Inclines raise the ratio, declines lower it, and too many direction changes fall back to a
// fixed ratio for the rest of the session. Not safe for concurrent use.
type Monitor interface {
	// Sample records one frame.
	//
	// Parameters:
	//   - dt: elapsed seconds of the frame
	//
	// Returns:
	//   - Direction: the decision made on this frame, Steady if none
	Sample(dt float32) Direction

	// SetRefreshRate selects the bounds for a display refresh rate.
	SetRefreshRate(hz float32)

	// Bounds returns the lower and upper frame rate bounds.
	Bounds() (float32, float32)

	// DPR returns the current device pixel ratio.
	DPR() float32

	// Factor returns the quality factor in [0, 1].
	Factor() float32

	// FellBack reports whether the flip-flop limit was reached.
	FellBack() bool
}

type monitorImpl struct {
	cfg      config.PerformanceConfig
	onChange func(dpr float32)

	lower, upper float32

	elapsed float32
	frames  int
	windows []float32

	dpr       float32
	factor    float32
	last      Direction
	flipflops int
	fellBack  bool
}

var _ Monitor = &monitorImpl{}

// NewMonitor creates a Monitor at the configured initial ratio with bounds for a 60 Hz display.
//
// Parameters:
//   - options: functional options for the monitor
//
// Returns:
//   - Monitor: the monitor
func NewMonitor(options ...MonitorBuilderOption) Monitor {
	m := &monitorImpl{
		cfg:    config.Default().Performance,
		factor: initialFactor,
	}
	for _, opt := range options {
		opt(m)
	}
	m.dpr = m.cfg.InitialDPR
	m.windows = make([]float32, 0, sampleWindows)
	m.SetRefreshRate(60)
	return m
}

// Bounds returns the frame rate bounds for a refresh rate: displays above HighRefresh
// use the high upper bound.
//
// Parameters:
//   - hz: the display refresh rate
//   - cfg: the performance configuration
//
// Returns:
//   - float32: the lower bound
//   - float32: the upper bound
func Bounds(hz float32, cfg config.PerformanceConfig) (float32, float32) {
	if hz > cfg.HighRefresh {
		return cfg.LowerFPS, cfg.UpperFPSHigh
	}
	return cfg.LowerFPS, cfg.UpperFPSLow
}

func (m *monitorImpl) SetRefreshRate(hz float32) {
	m.lower, m.upper = Bounds(hz, m.cfg)
}

func (m *monitorImpl) Bounds() (float32, float32) {
	return m.lower, m.upper
}

func (m *monitorImpl) Sample(dt float32) Direction {
	if m.fellBack || dt <= 0 {
		return Steady
	}
	m.elapsed += dt
	m.frames++
	if m.elapsed < m.cfg.SampleSeconds {
		return Steady
	}
	m.windows = append(m.windows, float32(m.frames)/m.elapsed)
	m.elapsed, m.frames = 0, 0
	if len(m.windows) < sampleWindows {
		return Steady
	}

	var sum float32
	for _, fps := range m.windows {
		sum += fps
	}
	avg := sum / float32(len(m.windows))
	m.windows = m.windows[:0]

	dir := Steady
	switch {
	case avg < m.lower:
		dir = Decline
	case avg > m.upper:
		dir = Incline
	}
	if dir == Steady {
		return dir
	}
	m.apply(dir, avg)
	return dir
}

func (m *monitorImpl) apply(dir Direction, avg float32) {
	if m.last != Steady && dir != m.last {
		m.flipflops++
	}
	m.last = dir

	prev := m.dpr
	if dir == Incline {
		m.dpr = min(m.dpr+m.cfg.Step, m.cfg.MaxDPR)
		m.factor = min(1, m.factor+factorStep)
	} else {
		m.dpr = max(m.dpr-m.cfg.Step, m.cfg.MinDPR)
		m.factor = max(0, m.factor-factorStep)
	}

	if m.flipflops >= m.cfg.FlipFlops {
		m.fellBack = true
		m.dpr = m.cfg.FallbackDPR
		common.Logger().Warn("performance monitor fell back", "fps", avg, "dpr", m.dpr)
	} else {
		common.Logger().Debug("performance monitor", "fps", avg, "factor", m.factor, "dpr", m.dpr)
	}
	if m.dpr != prev && m.onChange != nil {
		m.onChange(m.dpr)
	}
}

func (m *monitorImpl) DPR() float32 {
	return m.dpr
}

func (m *monitorImpl) Factor() float32 {
	return m.factor
}

func (m *monitorImpl) FellBack() bool {
	return m.fellBack
}
