package progress

import "github.com/Carmen-Shannon/oxy-warp/config"

// TrackerBuilderOption is a functional option for configuring a Tracker.
type TrackerBuilderOption func(*trackerImpl)

// WithConfig applies every factor from a progress config section.
//
// Parameters:
//   - cfg: the progress configuration
//
// Returns:
//   - TrackerBuilderOption: a function that applies the configuration to a trackerImpl
func WithConfig(cfg config.ProgressConfig) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.wheelScale = cfg.WheelScale
		t.touchScale = cfg.TouchScale
		t.touchRejectX = cfg.TouchRejectX
		t.lambda = cfg.Lambda
	}
}

// WithLambda sets the smoothing decay rate.
func WithLambda(lambda float32) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.lambda = lambda
	}
}

// WithTouchScale sets the touch delta factor.
func WithTouchScale(scale float32) TrackerBuilderOption {
	return func(t *trackerImpl) {
		t.touchScale = scale
	}
}
