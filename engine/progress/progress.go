// package progress turns wheel and touch deltas into a normalized, damped progress value.
package progress

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/chewxy/math32"
)

// Tracker owns the raw and smoothed progress of one session.
// Ingest may be called from the input goroutine; every other method belongs to the frame.
type Tracker interface {
	// Ingest applies a scroll delta to the raw progress.
	// Wheel deltas scale by the wheel factor. Touch deltas scale by the touch factor and are
	// rejected entirely when the horizontal component reaches the rejection threshold.
	// The raw value is clamped to [0, 1] after every update.
	//
	// Parameters:
	//   - deltaY: vertical delta (wheel units or pixels)
	//   - deltaX: horizontal delta, only used for touch rejection
	//   - isTouch: true for touch drags
	Ingest(deltaY, deltaX float32, isTouch bool)

	// Read returns the current raw progress in [0, 1].
	Read() float32

	// Update damps the smoothed progress toward the raw value and returns it.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - float32: the smoothed progress
	Update(dt float32) float32

	// Smoothed returns the smoothed progress computed by the last Update.
	Smoothed() float32

	// Reset returns both values to 0.
	Reset()
}

type trackerImpl struct {
	raw      atomic.Uint32
	smoothed float32

	wheelScale   float32
	touchScale   float32
	touchRejectX float32
	lambda       float32
}

var _ Tracker = &trackerImpl{}

// NewTracker creates a Tracker starting at progress 0.
//
// Parameters:
//   - options: functional options overriding the default factors
//
// Returns:
//   - Tracker: the new tracker
func NewTracker(options ...TrackerBuilderOption) Tracker {
	t := &trackerImpl{
		wheelScale:   0.001,
		touchScale:   0.002,
		touchRejectX: 40,
		lambda:       1.2,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *trackerImpl) Ingest(deltaY, deltaX float32, isTouch bool) {
	var step float32
	if isTouch {
		if math32.Abs(deltaX) >= t.touchRejectX {
			return
		}
		step = deltaY * t.touchScale
	} else {
		step = deltaY * t.wheelScale
	}

	for {
		old := t.raw.Load()
		next := common.Clamp(math32.Float32frombits(old)+step, 0, 1)
		if t.raw.CompareAndSwap(old, math32.Float32bits(next)) {
			return
		}
	}
}

func (t *trackerImpl) Read() float32 {
	return math32.Float32frombits(t.raw.Load())
}

func (t *trackerImpl) Update(dt float32) float32 {
	t.smoothed = common.Damp(t.smoothed, t.Read(), t.lambda, dt)
	return t.smoothed
}

func (t *trackerImpl) Smoothed() float32 {
	return t.smoothed
}

func (t *trackerImpl) Reset() {
	t.raw.Store(0)
	t.smoothed = 0
}
