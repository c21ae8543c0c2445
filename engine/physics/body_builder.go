package physics

import "github.com/Carmen-Shannon/oxy-warp/common"

// BodyBuilderOption configures a body created by World.AddBody.
type BodyBuilderOption func(*body)

// WithType sets the body type. Bodies are dynamic by default.
//
// Parameters:
//   - t: the body type
//
// Returns:
//   - BodyBuilderOption: a function that applies the type option to a body
func WithType(t BodyType) BodyBuilderOption {
	return func(b *body) {
		b.bodyType = t
	}
}

// WithPosition sets the initial world position.
//
// Parameters:
//   - position: the spawn position
//
// Returns:
//   - BodyBuilderOption: a function that applies the position option to a body
func WithPosition(position common.Vec3) BodyBuilderOption {
	return func(b *body) {
		b.position = position
	}
}

// WithMass sets the body mass. Non-positive masses make the body immovable by impulses.
//
// Parameters:
//   - mass: the mass
//
// Returns:
//   - BodyBuilderOption: a function that applies the mass option to a body
func WithMass(mass float32) BodyBuilderOption {
	return func(b *body) {
		b.mass = mass
	}
}

// WithDamping sets the linear and angular damping coefficients. Each step scales the
// velocity by 1/(1 + dt*damping).
//
// Parameters:
//   - linear: the linear damping
//   - angular: the angular damping
//
// Returns:
//   - BodyBuilderOption: a function that applies the damping option to a body
func WithDamping(linear, angular float32) BodyBuilderOption {
	return func(b *body) {
		b.linearDamping = linear
		b.angularDamping = angular
	}
}

// WithFriction sets the contact friction coefficient. The pair coefficient is the average of
// both bodies.
//
// Parameters:
//   - friction: the friction coefficient
//
// Returns:
//   - BodyBuilderOption: a function that applies the friction option to a body
func WithFriction(friction float32) BodyBuilderOption {
	return func(b *body) {
		b.friction = friction
	}
}

// WithSphereCollider attaches a sphere collider centered on the body.
// A zero radius leaves the body without collisions.
//
// Parameters:
//   - radius: the collider radius
//
// Returns:
//   - BodyBuilderOption: a function that applies the collider option to a body
func WithSphereCollider(radius float32) BodyBuilderOption {
	return func(b *body) {
		b.radius = radius
	}
}

// WithCollisionGroups sets the collision membership and filter bit masks. Two bodies collide
// only when each one's membership intersects the other's filter.
//
// Parameters:
//   - membership: the groups this body belongs to
//   - filter: the groups this body collides with
//
// Returns:
//   - BodyBuilderOption: a function that applies the groups option to a body
func WithCollisionGroups(membership, filter uint32) BodyBuilderOption {
	return func(b *body) {
		b.membership = membership
		b.filter = filter
	}
}

// WithCanSleep controls whether the body may fall asleep when at rest. Sleeping bodies skip
// integration until an impulse or contact wakes them.
//
// Parameters:
//   - canSleep: true to allow sleeping
//
// Returns:
//   - BodyBuilderOption: a function that applies the sleep option to a body
func WithCanSleep(canSleep bool) BodyBuilderOption {
	return func(b *body) {
		b.canSleep = canSleep
	}
}
