package physics

import "github.com/Carmen-Shannon/oxy-warp/common"

// BodyType selects how a body is moved.
type BodyType int

const (
	// BodyTypeDynamic bodies integrate impulses, damping and contacts.
	BodyTypeDynamic BodyType = iota

	// BodyTypeKinematic bodies are moved only by SetNextKinematicTranslation. They push dynamic
	// bodies but are never pushed back.
	BodyTypeKinematic
)

// Handle identifies a body inside its World. Handles are never reused.
type Handle int

// sleepDelay is how long a sleep-capable body must stay below sleepThreshold before it sleeps.
const (
	sleepDelay     = 0.5
	sleepThreshold = 0.01
)

// body is the per-body simulation record.
type body struct {
	handle   Handle
	bodyType BodyType

	position        common.Vec3
	rotation        common.Vec3
	linearVelocity  common.Vec3
	angularVelocity common.Vec3

	mass           float32
	linearDamping  float32
	angularDamping float32
	friction       float32

	radius     float32
	membership uint32
	filter     uint32

	canSleep   bool
	sleeping   bool
	sleepTimer float32

	nextTranslation *common.Vec3
}

// inverseMass returns 0 for kinematic or massless bodies.
func (b *body) inverseMass() float32 {
	if b.bodyType != BodyTypeDynamic || b.mass <= 0 {
		return 0
	}
	return 1 / b.mass
}

// wake clears the sleep state.
func (b *body) wake() {
	b.sleeping = false
	b.sleepTimer = 0
}

// BodyState is a read-only snapshot of one body.
type BodyState struct {
	Handle          Handle
	Type            BodyType
	Position        common.Vec3
	Rotation        common.Vec3
	LinearVelocity  common.Vec3
	AngularVelocity common.Vec3
	Radius          float32
	Sleeping        bool
}

func (b *body) state() BodyState {
	return BodyState{
		Handle:          b.handle,
		Type:            b.bodyType,
		Position:        b.position,
		Rotation:        b.rotation,
		LinearVelocity:  b.linearVelocity,
		AngularVelocity: b.angularVelocity,
		Radius:          b.radius,
		Sleeping:        b.sleeping,
	}
}
