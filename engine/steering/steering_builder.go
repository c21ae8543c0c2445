package steering

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
)

// SystemBuilderOption is a functional option for configuring a System.
type SystemBuilderOption func(*systemImpl)

// WithConfig applies the steering factors and body physics properties.
//
// Parameters:
//   - cfg: the steering configuration
//
// Returns:
//   - SystemBuilderOption: a function that applies the configuration to a systemImpl
func WithConfig(cfg config.SteeringConfig) SystemBuilderOption {
	return func(s *systemImpl) {
		s.cfg = cfg
	}
}

// WithLayout sets the compact flag and the scaling factor. The default specs are derived from
// the layout scale unless WithSpecs is given.
//
// Parameters:
//   - layout: the session layout
//
// Returns:
//   - SystemBuilderOption: a function that applies the layout to a systemImpl
func WithLayout(layout config.Layout) SystemBuilderOption {
	return func(s *systemImpl) {
		s.layout = layout
	}
}

// WithSpecs replaces the reference bodies.
func WithSpecs(specs [BodyCount]BodySpec) SystemBuilderOption {
	return func(s *systemImpl) {
		s.specs = specs
		s.customSpecs = true
	}
}

// WithMaxDelta sets the frame delta clamp.
func WithMaxDelta(dt float32) SystemBuilderOption {
	return func(s *systemImpl) {
		s.maxDelta = dt
	}
}

// WithPayloads sets the initial content, keyed by body ID.
//
// Parameters:
//   - payloads: the content per body
//
// Returns:
//   - SystemBuilderOption: a function that stores the payloads once the bodies exist
func WithPayloads(payloads map[string]common.Payload) SystemBuilderOption {
	return func(s *systemImpl) {
		s.initialPayloads = payloads
	}
}
