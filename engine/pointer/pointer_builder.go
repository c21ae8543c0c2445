package pointer

import "github.com/Carmen-Shannon/oxy-warp/config"

// PointerBuilderOption is a functional option for configuring a Pointer.
type PointerBuilderOption func(*pointerImpl)

// WithConfig applies the pointer section of the configuration.
//
// Parameters:
//   - cfg: the pointer configuration
//
// Returns:
//   - PointerBuilderOption: a function that applies the configuration to a pointerImpl
func WithConfig(cfg config.PointerConfig) PointerBuilderOption {
	return func(p *pointerImpl) {
		p.cfg = cfg
	}
}
