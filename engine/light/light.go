package light

import "github.com/Carmen-Shannon/oxy-warp/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every surface uniformly, regardless of position or normal.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// Affects all fragments uniformly with no distance attenuation.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance following its decay exponent, cut off smoothly at its distance.
	LightTypePoint
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  common.Vec3
	direction common.Vec3
	color     common.Vec3
	intensity float32
	distance  float32
	decay     float32
	enabled   bool
}

// Light defines the interface for a light source in the warp scene.
//
// Lights are owned by the scene and packed into a single GPULighting uniform each frame.
// Type-specific properties return zero values when not applicable.
type Light interface {
	// Type returns the kind of light source.
	Type() LightType

	// Position returns the world-space position of the light. Meaningless for ambient and
	// directional lights.
	Position() common.Vec3

	// Direction returns the normalized direction from a lit surface toward the light.
	// Only directional lights use it.
	Direction() common.Vec3

	// Color returns the linear RGB color of the light.
	Color() common.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	Intensity() float32

	// Distance returns the cutoff distance of a point light, or 0 for no cutoff.
	Distance() float32

	// Decay returns the distance falloff exponent of a point light.
	Decay() float32

	// Enabled returns whether this light is packed for rendering.
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - position: the new position
	SetPosition(position common.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new white Light of the specified type with intensity 1, decay 2 and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		direction: common.Vec3{0, 1, 0},
		color:     common.Vec3{1, 1, 1},
		intensity: 1,
		decay:     2,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() common.Vec3 {
	return l.direction
}

func (l *lightImpl) Color() common.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Distance() float32 {
	return l.distance
}

func (l *lightImpl) Decay() float32 {
	return l.decay
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) SetPosition(position common.Vec3) {
	l.position = position
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}
