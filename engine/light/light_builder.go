package light

import "github.com/Carmen-Shannon/oxy-warp/common"

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - position: the light position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(position common.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = position
	}
}

// WithDirectionFrom points a directional light from a world position toward the origin,
// the way a light placed at that position and aimed at the scene center would shine.
// The stored direction is the normalized position, a zero position leaves it unchanged.
//
// Parameters:
//   - position: where the light shines from
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirectionFrom(position common.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		if position.Len() > 0 {
			l.direction = position.Normalize()
		}
	}
}

// WithColor is an option builder that sets the color of the light from a 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.HexColor(hex)
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithFalloff sets the cutoff distance and decay exponent of a point light.
//
// Parameters:
//   - distance: the cutoff distance, 0 for none
//   - decay: the falloff exponent
//
// Returns:
//   - LightBuilderOption: a function that applies the falloff option to a lightImpl
func WithFalloff(distance, decay float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.distance = distance
		l.decay = decay
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}
