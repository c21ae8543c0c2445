// package physics is a small rigid-body world for spheres: impulses, damping, kinematic
// bodies and positional contact resolution with friction, enough to steer a handful of
// bodies and keep them from overlapping.
package physics

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-warp/common"
)

// GroupAll is the membership and filter mask of a body that collides with everything.
const GroupAll = ^uint32(0)

// world is the implementation of the World interface.
type world struct {
	mu *sync.Mutex

	gravity common.Vec3
	bodies  []*body
	next    Handle
}

// World defines the interface for the simulation. Bodies are added and stepped by the frame
// that owns the world.
type World interface {
	// AddBody creates a body. New bodies are dynamic, unit mass, undamped, without a collider and
	// colliding with every group.
	//
	// Parameters:
	//   - options: builder options for the body
	//
	// Returns:
	//   - Handle: the body handle
	AddBody(options ...BodyBuilderOption) Handle

	// RemoveBody deletes a body.
	//
	// Parameters:
	//   - h: the body handle
	//
	// Returns:
	//   - bool: false if the handle is unknown
	RemoveBody(h Handle) bool

	// Body returns a snapshot of a body.
	//
	// Parameters:
	//   - h: the body handle
	//
	// Returns:
	//   - BodyState: the snapshot
	//   - bool: false if the handle is unknown
	Body(h Handle) (BodyState, bool)

	// Position returns the translation of a body, or the zero vector for unknown handles.
	Position(h Handle) common.Vec3

	// ApplyImpulse changes a dynamic body's linear velocity by impulse/mass and wakes it.
	// Kinematic bodies and unknown handles ignore it.
	//
	// Parameters:
	//   - h: the body handle
	//   - impulse: the impulse
	ApplyImpulse(h Handle, impulse common.Vec3)

	// SetNextKinematicTranslation schedules where a kinematic body will be after the next
	// Step. Its velocity for that step is derived from the move.
	//
	// Parameters:
	//   - h: the body handle
	//   - position: the target translation
	SetNextKinematicTranslation(h Handle, position common.Vec3)

	// Step advances the simulation by dt seconds. Non-positive dt does nothing.
	//
	// Parameters:
	//   - dt: the step length
	Step(dt float32)

	// Len returns the number of bodies.
	Len() int
}

var _ World = &world{}

// NewWorld creates an empty World.
//
// Parameters:
//   - options: builder options for the world
//
// Returns:
//   - World: the world
func NewWorld(options ...WorldBuilderOption) World {
	w := &world{mu: &sync.Mutex{}}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *world) AddBody(options ...BodyBuilderOption) Handle {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.next++
	b := &body{
		handle:     w.next,
		mass:       1,
		membership: GroupAll,
		filter:     GroupAll,
	}
	for _, opt := range options {
		opt(b)
	}
	w.bodies = append(w.bodies, b)
	return b.handle
}

func (w *world) RemoveBody(h Handle) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	i := slices.IndexFunc(w.bodies, func(b *body) bool { return b.handle == h })
	if i < 0 {
		return false
	}
	w.bodies = slices.Delete(w.bodies, i, i+1)
	return true
}

// find returns the body for h. Caller must hold the mutex.
func (w *world) find(h Handle) *body {
	for _, b := range w.bodies {
		if b.handle == h {
			return b
		}
	}
	return nil
}

func (w *world) Body(h Handle) (BodyState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if b := w.find(h); b != nil {
		return b.state(), true
	}
	return BodyState{}, false
}

func (w *world) Position(h Handle) common.Vec3 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if b := w.find(h); b != nil {
		return b.position
	}
	return common.Vec3{}
}

func (w *world) ApplyImpulse(h Handle, impulse common.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := w.find(h)
	if b == nil || b.bodyType != BodyTypeDynamic {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(impulse.Scale(b.inverseMass()))
	b.wake()
}

func (w *world) SetNextKinematicTranslation(h Handle, position common.Vec3) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b := w.find(h)
	if b == nil || b.bodyType != BodyTypeKinematic {
		return
	}
	p := position
	b.nextTranslation = &p
}

func (w *world) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.bodies)
}

func (w *world) Step(dt float32) {
	if dt <= 0 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, b := range w.bodies {
		switch b.bodyType {
		case BodyTypeKinematic:
			w.moveKinematic(b, dt)
		case BodyTypeDynamic:
			w.integrate(b, dt)
		}
	}

	for i := range w.bodies {
		for j := i + 1; j < len(w.bodies); j++ {
			resolveContact(w.bodies[i], w.bodies[j])
		}
	}

	for _, b := range w.bodies {
		updateSleep(b, dt)
	}
}

// moveKinematic teleports a kinematic body to its scheduled translation.
func (w *world) moveKinematic(b *body, dt float32) {
	if b.nextTranslation == nil {
		b.linearVelocity = common.Vec3{}
		return
	}
	b.linearVelocity = b.nextTranslation.Sub(b.position).Scale(1 / dt)
	b.position = *b.nextTranslation
	b.nextTranslation = nil
}

// integrate applies gravity and damping, then moves the body (semi-implicit Euler).
func (w *world) integrate(b *body, dt float32) {
	if b.sleeping {
		return
	}
	b.linearVelocity = b.linearVelocity.Add(w.gravity.Scale(dt))
	b.linearVelocity = b.linearVelocity.Scale(1 / (1 + dt*b.linearDamping))
	b.angularVelocity = b.angularVelocity.Scale(1 / (1 + dt*b.angularDamping))

	b.position = b.position.Add(b.linearVelocity.Scale(dt))
	b.rotation = b.rotation.Add(b.angularVelocity.Scale(dt))
}

// updateSleep puts resting sleep-capable bodies to sleep after sleepDelay seconds.
func updateSleep(b *body, dt float32) {
	if !b.canSleep || b.bodyType != BodyTypeDynamic || b.sleeping {
		return
	}
	if b.linearVelocity.Len() >= sleepThreshold || b.angularVelocity.Len() >= sleepThreshold {
		b.sleepTimer = 0
		return
	}
	b.sleepTimer += dt
	if b.sleepTimer >= sleepDelay {
		b.sleeping = true
		b.linearVelocity = common.Vec3{}
		b.angularVelocity = common.Vec3{}
	}
}
