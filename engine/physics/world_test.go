package physics

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1) / 60

func TestImpulseAndDamping(t *testing.T) {
	w := NewWorld()
	h := w.AddBody(WithMass(2), WithDamping(4, 1))

	w.ApplyImpulse(h, common.Vec3{2, 0, 0})
	s, ok := w.Body(h)
	require.True(t, ok)
	assert.InDelta(t, 1, s.LinearVelocity[0], 1e-6)

	w.Step(dt)
	s, _ = w.Body(h)
	want := 1 / (1 + dt*4)
	assert.InDelta(t, want, s.LinearVelocity[0], 1e-6)
	assert.InDelta(t, want*dt, s.Position[0], 1e-6)
}

func TestStepIgnoresNonPositiveDt(t *testing.T) {
	w := NewWorld()
	h := w.AddBody()
	w.ApplyImpulse(h, common.Vec3{1, 0, 0})
	w.Step(0)
	w.Step(-1)
	assert.Equal(t, common.Vec3{}, w.Position(h))
}

func TestGravity(t *testing.T) {
	w := NewWorld(WithGravity(common.Vec3{0, -10, 0}))
	h := w.AddBody()
	w.Step(0.1)
	s, _ := w.Body(h)
	assert.InDelta(t, -1, s.LinearVelocity[1], 1e-6)
}

func TestKinematicMove(t *testing.T) {
	w := NewWorld()
	k := w.AddBody(WithType(BodyTypeKinematic))

	w.ApplyImpulse(k, common.Vec3{10, 0, 0})
	w.SetNextKinematicTranslation(k, common.Vec3{1, 2, 0})
	w.Step(0.5)

	s, _ := w.Body(k)
	assert.Equal(t, common.Vec3{1, 2, 0}, s.Position)
	assert.InDelta(t, 2, s.LinearVelocity[0], 1e-6)

	w.Step(0.5)
	s, _ = w.Body(k)
	assert.Equal(t, common.Vec3{1, 2, 0}, s.Position)
	assert.Equal(t, common.Vec3{}, s.LinearVelocity)
}

func TestContactSeparatesSpheres(t *testing.T) {
	w := NewWorld()
	a := w.AddBody(WithSphereCollider(1), WithFriction(0.1))
	b := w.AddBody(WithSphereCollider(1), WithFriction(0.1), WithPosition(common.Vec3{1, 0, 0}))
	w.ApplyImpulse(a, common.Vec3{1, 0.5, 0})

	w.Step(dt)

	pa, pb := w.Position(a), w.Position(b)
	assert.InDelta(t, 2, pb.Sub(pa).Len(), 1e-4)

	sa, _ := w.Body(a)
	sb, _ := w.Body(b)
	assert.LessOrEqual(t, sb.LinearVelocity.Sub(sa.LinearVelocity).Dot(pb.Sub(pa).Normalize()), float32(1e-5))
	assert.Greater(t, sa.AngularVelocity.Len(), float32(0), "friction spins the bodies")
}

func TestCollisionGroupsFilterContacts(t *testing.T) {
	w := NewWorld()
	const bodies, pointer = 1 << 0, 1 << 1
	a := w.AddBody(WithSphereCollider(1), WithCollisionGroups(bodies, bodies))
	p := w.AddBody(WithType(BodyTypeKinematic), WithSphereCollider(0.2), WithCollisionGroups(pointer, pointer))

	w.SetNextKinematicTranslation(p, common.Vec3{0.5, 0, 0})
	w.Step(dt)
	assert.Equal(t, common.Vec3{}, w.Position(a))
}

func TestKinematicPushesDynamic(t *testing.T) {
	w := NewWorld()
	a := w.AddBody(WithSphereCollider(1))
	k := w.AddBody(WithType(BodyTypeKinematic), WithSphereCollider(1), WithPosition(common.Vec3{3, 0, 0}))

	w.SetNextKinematicTranslation(k, common.Vec3{1.5, 0, 0})
	w.Step(dt)

	assert.Equal(t, common.Vec3{1.5, 0, 0}, w.Position(k))
	assert.InDelta(t, -0.5, w.Position(a)[0], 1e-5)
}

func TestSleep(t *testing.T) {
	w := NewWorld()
	sleepy := w.AddBody(WithCanSleep(true))
	awake := w.AddBody(WithCanSleep(false))

	for range 60 {
		w.Step(dt)
	}
	s, _ := w.Body(sleepy)
	assert.True(t, s.Sleeping)
	s, _ = w.Body(awake)
	assert.False(t, s.Sleeping)

	w.ApplyImpulse(sleepy, common.Vec3{0, 0, 1})
	s, _ = w.Body(sleepy)
	assert.False(t, s.Sleeping)
	w.Step(dt)
	assert.Greater(t, w.Position(sleepy)[2], float32(0))
}

func TestRemoveBody(t *testing.T) {
	w := NewWorld()
	a := w.AddBody()
	b := w.AddBody()
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, w.Len())

	assert.True(t, w.RemoveBody(a))
	assert.False(t, w.RemoveBody(a))
	_, ok := w.Body(a)
	assert.False(t, ok)
	assert.Equal(t, 1, w.Len())
	assert.Greater(t, w.AddBody(), b)
}
