// package steering drives the four content bodies on the physics world: seek toward the
// assigned slot while the warp scene is active, return to spawn when it is not, and track
// which body sits under the pointer ray.
package steering

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/physics"
	"github.com/chewxy/math32"
)

// CollisionGroup is the membership and filter mask of every steered body.
const CollisionGroup uint32 = 1 << 0

// Ray is a world space picking ray. A zero Dir disables hover detection for the frame.
type Ray struct {
	Origin common.Vec3
	Dir    common.Vec3
}

// System owns the steered bodies for one session.
type System interface {
	// Update applies the steering impulses for one frame and refreshes hover, display scale and
	// spin. It must run before the world steps.
	//
	// Parameters:
	//   - dt: elapsed seconds, clamped to the configured maximum
	//   - activated: whether the warp scene is active
	//   - ray: the pointer picking ray
	Update(dt float32, activated bool, ray Ray)

	// Cycle rotates the slot assignment by dir steps.
	//
	// Parameters:
	//   - dir: +1 for next, -1 for previous
	Cycle(dir int)

	// Slots returns the current slot assignment.
	Slots() SlotTable

	// Bodies returns a snapshot of every body.
	Bodies() [BodyCount]Body

	// Hovered returns the index of the hovered body, or -1.
	Hovered() int

	// SetPayloads replaces the content shown by each body, keyed by body ID.
	// Bodies without an entry keep their previous payload.
	SetPayloads(payloads map[string]common.Payload)
}

type systemImpl struct {
	mu *sync.Mutex

	world  physics.World
	cfg    config.SteeringConfig
	layout config.Layout
	specs  [BodyCount]BodySpec
	bodies [BodyCount]*steeredBody
	slots  SlotTable

	customSpecs     bool
	initialPayloads map[string]common.Payload
	maxDelta        float32
	activated       bool
	hovered         int
}

var _ System = &systemImpl{}

// NewSystem creates the bodies in world at their spawn positions.
//
// Parameters:
//   - world: the physics world the bodies live in
//   - options: functional options for the system
//
// Returns:
//   - System: the steering system
func NewSystem(world physics.World, options ...SystemBuilderOption) System {
	s := &systemImpl{
		mu:       &sync.Mutex{},
		world:    world,
		cfg:      config.Default().Steering,
		layout:   config.Layout{Compact: false, Scale: 1},
		maxDelta: 0.1,
		hovered:  -1,
	}
	for _, opt := range options {
		opt(s)
	}
	if !s.customSpecs {
		s.specs = DefaultSpecs(s.layout.Scale)
	}

	for i, spec := range s.specs {
		h := world.AddBody(
			physics.WithPosition(spec.Spawn),
			physics.WithMass(s.cfg.Mass),
			physics.WithDamping(s.cfg.LinearDamping, s.cfg.AngularDamping),
			physics.WithFriction(s.cfg.Friction),
			physics.WithSphereCollider(s.cfg.ColliderRadius*s.layout.Scale),
			physics.WithCollisionGroups(CollisionGroup, CollisionGroup),
			physics.WithCanSleep(false),
		)
		s.bodies[i] = &steeredBody{
			spec:         spec,
			handle:       h,
			payload:      common.Payload{Name: spec.ID},
			displayScale: 1,
		}
	}
	s.applyPayloads(s.initialPayloads)
	s.initialPayloads = nil
	return s
}

func (s *systemImpl) Update(dt float32, activated bool, ray Ray) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dt = common.Clamp(dt, 0, s.maxDelta)
	rising := activated && !s.activated
	falling := !activated && s.activated
	s.activated = activated

	seek, ret := s.cfg.SeekWide, s.cfg.ReturnWide
	if s.layout.Compact {
		seek, ret = s.cfg.SeekCompact, s.cfg.ReturnCompact
	}
	scale := s.layout.Scale

	for i, b := range s.bodies {
		switch {
		case rising:
			b.initialized = true
			b.resetting = false
		case falling:
			b.initialized = false
			b.resetting = true
		}

		pos := s.world.Position(b.handle)
		switch {
		case b.initialized:
			target := s.specs[s.slots.Slot(i)].Slot
			s.world.ApplyImpulse(b.handle, target.Sub(pos).Scale(seek*scale))
		case b.resetting:
			toSpawn := b.spec.Spawn.Sub(pos)
			if toSpawn.Len() < s.cfg.ResetDistance {
				b.resetting = false
				break
			}
			s.world.ApplyImpulse(b.handle, toSpawn.Scale(ret*scale))
		}
	}

	s.hovered = -1
	if activated {
		s.hovered = s.pick(ray)
	}

	for i, b := range s.bodies {
		b.hovered = i == s.hovered
		target := float32(1)
		if b.hovered && b.spec.DefaultScale > 0 {
			target = b.spec.HoverScale / b.spec.DefaultScale
		}
		b.displayScale = common.Lerp(b.displayScale, target, s.cfg.HoverLerp)
		b.rotation[0] -= dt * 0.01
		b.rotation[1] -= dt * 0.1
	}
}

// pick returns the nearest body whose hover proxy the ray hits, or -1.
func (s *systemImpl) pick(ray Ray) int {
	if ray.Dir == (common.Vec3{}) {
		return -1
	}
	dir := ray.Dir.Normalize()
	radius := s.cfg.HoverRadius * s.layout.Scale
	best := -1
	var nearest float32 = math32.MaxFloat32
	for i, b := range s.bodies {
		t, ok := common.RaySphere(ray.Origin, dir, s.world.Position(b.handle), radius)
		if ok && t < nearest {
			best, nearest = i, t
		}
	}
	return best
}

func (s *systemImpl) Cycle(dir int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = s.slots.Cycle(dir)
}

func (s *systemImpl) Slots() SlotTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots
}

func (s *systemImpl) Bodies() [BodyCount]Body {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out [BodyCount]Body
	for i, b := range s.bodies {
		out[i] = Body{
			ID:           b.spec.ID,
			Handle:       b.handle,
			Spawn:        b.spec.Spawn,
			Target:       s.specs[s.slots.Slot(i)].Slot,
			Position:     s.world.Position(b.handle),
			Activated:    s.activated,
			Initialized:  b.initialized,
			Resetting:    b.resetting,
			Hovered:      b.hovered,
			DisplayScale: b.displayScale,
			Rotation:     b.rotation,
			Color:        b.spec.Color,
			Payload:      b.payload,
		}
	}
	return out
}

func (s *systemImpl) Hovered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hovered
}

func (s *systemImpl) SetPayloads(payloads map[string]common.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyPayloads(payloads)
}

func (s *systemImpl) applyPayloads(payloads map[string]common.Payload) {
	for _, b := range s.bodies {
		if p, ok := payloads[b.spec.ID]; ok {
			b.payload = p
		}
	}
}
