package pointer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowsCursor(t *testing.T) {
	w := physics.NewWorld()
	p := NewPointer(w)

	p.Update(0.5, -1, 20, 10, false)
	assert.Equal(t, common.Vec3{5, -5, 0}, p.Target())
	w.Step(1.0 / 60)
	assert.Equal(t, common.Vec3{5, -5, 0}, p.Position())
	assert.Equal(t, common.Vec3{5, -5, 0}, p.Light().Position())

	s, ok := w.Body(p.Handle())
	require.True(t, ok)
	assert.Equal(t, physics.BodyTypeKinematic, s.Type)
	assert.InDelta(t, 0.2, s.Radius, 1e-6)
}

func TestFadeIsAsymmetric(t *testing.T) {
	w := physics.NewWorld()
	p := NewPointer(w)

	p.Update(0, 0, 1, 1, true)
	assert.InDelta(t, 0.2*0.01, p.Scale(), 1e-6)
	assert.InDelta(t, 100*0.01, p.Intensity(), 1e-5)

	for range 500 {
		p.Update(0, 0, 1, 1, true)
	}
	assert.InDelta(t, 0.2, p.Scale(), 0.002)
	assert.InDelta(t, 100, p.Intensity(), 1)
	assert.InDelta(t, p.Intensity(), p.Light().Intensity(), 1e-6)

	before := p.Intensity()
	p.Update(0, 0, 1, 1, false)
	assert.InDelta(t, before*0.95, p.Intensity(), 1e-4)

	for range 100 {
		p.Update(0, 0, 1, 1, false)
	}
	assert.Less(t, p.Intensity(), float32(1))
	assert.Less(t, p.Scale(), float32(0.002))
}

func TestLightProperties(t *testing.T) {
	p := NewPointer(physics.NewWorld())
	l := p.Light()
	assert.Equal(t, light.LightTypePoint, l.Type())
	assert.Equal(t, common.HexColor(LightColor), l.Color())
	assert.InDelta(t, 40, l.Distance(), 1e-6)
	assert.InDelta(t, 3, l.Decay(), 1e-6)
	assert.Zero(t, l.Intensity())
}

func TestDoesNotPushBodies(t *testing.T) {
	w := physics.NewWorld()
	const bodies uint32 = 1 << 0
	b := w.AddBody(physics.WithSphereCollider(1.4), physics.WithCollisionGroups(bodies, bodies))
	p := NewPointer(w)

	for range 10 {
		p.Update(0.01, 0, 10, 10, true)
		w.Step(1.0 / 60)
	}
	assert.Equal(t, common.Vec3{}, w.Position(b))
}
