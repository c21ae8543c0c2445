package portal

import "github.com/Carmen-Shannon/oxy-warp/config"

// BlendBuilderOption is a functional option for configuring a Blend.
type BlendBuilderOption func(*blendImpl)

// WithConfig applies the portal section of the configuration.
//
// Parameters:
//   - cfg: the portal configuration
//
// Returns:
//   - BlendBuilderOption: a function that applies the configuration to a blendImpl
func WithConfig(cfg config.PortalConfig) BlendBuilderOption {
	return func(b *blendImpl) {
		b.cfg = cfg
	}
}

// BloomBuilderOption is a functional option for configuring a Bloom.
type BloomBuilderOption func(*bloomImpl)

// WithThreshold sets the value subtracted from every channel before the glow is blurred.
// Zero lets the whole scene glow.
//
// Parameters:
//   - threshold: the luminance threshold, negative values are treated as 0
//
// Returns:
//   - BloomBuilderOption: a function that applies the threshold to a bloomImpl
func WithThreshold(threshold float32) BloomBuilderOption {
	return func(b *bloomImpl) {
		b.threshold = max(threshold, 0)
	}
}
