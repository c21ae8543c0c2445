// package pointer implements the decorative pointer light: a kinematic sphere following the
// cursor on the z=0 plane, carrying a point light and a glow mesh that fade in and out.
package pointer

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/physics"
)

// CollisionGroup is the membership and filter mask of the pointer collider. It shares no bit
// with the steered bodies so the pointer never pushes them.
const CollisionGroup uint32 = 1 << 1

const (
	// LightColor is the color of the attached point light.
	LightColor uint32 = 0xfffeaa
	// GlowColor is the color of the glow mesh.
	GlowColor uint32 = 0xfffdbf
)

// Pointer is the pointer light of one session.
type Pointer interface {
	// Update moves the kinematic body under the cursor and eases scale and intensity toward
	// their visible or hidden targets. It must run before the world steps.
	//
	// Parameters:
	//   - ndcX, ndcY: cursor position in [-1, 1], +Y up
	//   - viewW, viewH: world-space size of the view at z=0
	//   - visible: whether the pointer should be shown
	Update(ndcX, ndcY, viewW, viewH float32, visible bool)

	// Position returns the body translation after the last world step.
	Position() common.Vec3

	// Target returns the translation requested by the last Update.
	Target() common.Vec3

	// Scale returns the eased glow mesh scale.
	Scale() float32

	// Intensity returns the eased light intensity.
	Intensity() float32

	// Light returns the point light, positioned and dimmed by Update.
	Light() light.Light

	// Handle returns the kinematic body handle.
	Handle() physics.Handle
}

type pointerImpl struct {
	world  physics.World
	handle physics.Handle
	light  light.Light
	cfg    config.PointerConfig

	target    common.Vec3
	scale     float32
	intensity float32
}

var _ Pointer = &pointerImpl{}

// NewPointer creates the kinematic pointer body at the origin, hidden.
//
// Parameters:
//   - world: the physics world shared with the steered bodies
//   - options: functional options for the pointer
//
// Returns:
//   - Pointer: the pointer light
func NewPointer(world physics.World, options ...PointerBuilderOption) Pointer {
	p := &pointerImpl{
		world: world,
		cfg:   config.Default().Pointer,
	}
	for _, opt := range options {
		opt(p)
	}

	p.handle = world.AddBody(
		physics.WithType(physics.BodyTypeKinematic),
		physics.WithSphereCollider(p.cfg.Radius),
		physics.WithCollisionGroups(CollisionGroup, CollisionGroup),
	)
	p.light = light.NewLight(light.LightTypePoint,
		light.WithColor(LightColor),
		light.WithFalloff(p.cfg.Distance, p.cfg.Decay),
		light.WithIntensity(0),
	)
	return p
}

func (p *pointerImpl) Update(ndcX, ndcY, viewW, viewH float32, visible bool) {
	p.target = common.Vec3{ndcX * viewW / 2, ndcY * viewH / 2, 0}
	p.world.SetNextKinematicTranslation(p.handle, p.target)

	scale, intensity, rate := float32(0), float32(0), p.cfg.DisappearRate
	if visible {
		scale, intensity, rate = p.cfg.VisibleScale, p.cfg.VisibleIntensity, p.cfg.AppearRate
	}
	p.scale = common.Lerp(p.scale, scale, rate)
	p.intensity = common.Lerp(p.intensity, intensity, rate)

	p.light.SetPosition(p.target)
	p.light.SetIntensity(p.intensity)
}

func (p *pointerImpl) Position() common.Vec3 {
	return p.world.Position(p.handle)
}

func (p *pointerImpl) Target() common.Vec3 {
	return p.target
}

func (p *pointerImpl) Scale() float32 {
	return p.scale
}

func (p *pointerImpl) Intensity() float32 {
	return p.intensity
}

func (p *pointerImpl) Light() light.Light {
	return p.light
}

func (p *pointerImpl) Handle() physics.Handle {
	return p.handle
}
