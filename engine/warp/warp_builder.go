package warp

import "github.com/Carmen-Shannon/oxy-warp/config"

// VelocityBuilderOption is a functional option for configuring a Velocity.
type VelocityBuilderOption func(*velocityImpl)

// WithVelocityConfig applies the velocity constants of a warp config section.
//
// Parameters:
//   - cfg: the warp configuration
//
// Returns:
//   - VelocityBuilderOption: a function that applies the configuration to a velocityImpl
func WithVelocityConfig(cfg config.WarpConfig) VelocityBuilderOption {
	return func(v *velocityImpl) {
		v.cfg = cfg
	}
}

// FieldBuilderOption is a functional option for configuring a Field.
type FieldBuilderOption func(*fieldImpl)

// WithFieldConfig applies the population, bounds and motion constants of a warp config section.
//
// Parameters:
//   - cfg: the warp configuration
//
// Returns:
//   - FieldBuilderOption: a function that applies the configuration to a fieldImpl
func WithFieldConfig(cfg config.WarpConfig) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.cfg = cfg
	}
}

// WithScale sets the layout scaling factor applied to the count and the bounds.
func WithScale(scale float32) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.scale = scale
	}
}

// WithSeed overrides the random seed of the configuration.
func WithSeed(seed uint64) FieldBuilderOption {
	return func(f *fieldImpl) {
		f.cfg.Seed = seed
	}
}
