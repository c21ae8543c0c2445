package warp

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPopulationFollowsScale(t *testing.T) {
	assert.Equal(t, 1000, NewField().Len())

	f := NewField(WithScale(0.55))
	assert.Equal(t, 550, f.Len())
	xy, z := f.Bounds()
	assert.InDelta(t, 22, xy, 1e-5)
	assert.InDelta(t, 11, z, 1e-5)

	for _, p := range f.Particles() {
		assert.LessOrEqual(t, math.Abs(float64(p.X)), float64(xy/2))
		assert.LessOrEqual(t, math.Abs(float64(p.Y)), float64(xy/2))
		assert.LessOrEqual(t, math.Abs(float64(p.Z)), float64(z/2))
	}
}

func TestFieldSeedIsDeterministic(t *testing.T) {
	a := NewField(WithSeed(7))
	b := NewField(WithSeed(7))
	c := NewField(WithSeed(8))
	assert.Equal(t, a.Particles(), b.Particles())
	assert.NotEqual(t, a.Particles(), c.Particles())
}

func TestFieldWrapInvariant(t *testing.T) {
	f := NewField()
	_, bz := f.Bounds()
	half := bz / 2
	n := f.Len()

	velocities := []float32{0.12, 0.5, 2, 0.01}
	for frame := range 3000 {
		v := velocities[frame%len(velocities)]
		f.Update(dt, v, frame%2 == 0)
		require.Equal(t, n, f.Len())
		for _, p := range f.Particles() {
			require.GreaterOrEqual(t, p.Z, -half)
			require.LessOrEqual(t, p.Z, half)
		}
	}
}

func TestFieldWrapsToFarBound(t *testing.T) {
	f := NewField()
	_, bz := f.Bounds()
	half := bz / 2

	before := append([]Particle(nil), f.Particles()...)
	step := float32(2) * config.Default().Warp.SpeedFactor
	f.Update(dt, 2, true)

	wrapped := 0
	for i, p := range f.Particles() {
		next := before[i].Z + step
		if next > half {
			assert.Equal(t, -half, p.Z)
			wrapped++
		} else {
			assert.InDelta(t, next, p.Z, 1e-5)
		}
		assert.Equal(t, before[i].X, p.X)
	}
	assert.Positive(t, wrapped)
}

func TestFieldAdvancesAtLeastDelta(t *testing.T) {
	f := NewField()
	before := append([]Particle(nil), f.Particles()...)
	f.Update(0.05, 0, false)
	_, bz := f.Bounds()
	for i, p := range f.Particles() {
		if before[i].Z+0.05 <= bz/2 {
			assert.InDelta(t, before[i].Z+0.05, p.Z, 1e-5)
		}
	}
}

func TestFieldScaleAndBrightness(t *testing.T) {
	f := NewField()
	_, bz := f.Bounds()

	f.Update(dt, 2, true)
	for _, p := range f.Particles() {
		assert.InDelta(t, 70, p.ScaleZ, 1e-4)
		if p.Z > 0 {
			assert.Equal(t, float32(1), p.Brightness)
		} else {
			assert.InDelta(t, 1-p.Z/(-bz/2), p.Brightness, 1e-5)
		}
		assert.GreaterOrEqual(t, p.Brightness, float32(0))
		assert.LessOrEqual(t, p.Brightness, float32(1))
	}

	f.Update(dt, 2, false)
	assert.Equal(t, float32(1), f.Particles()[0].ScaleZ)
	f.Update(dt, 0.01, true)
	assert.Equal(t, float32(1), f.Particles()[0].ScaleZ)

	assert.Equal(t, float32(0), brightness(-bz/2, bz))
	assert.Equal(t, float32(1), brightness(0.1, bz))
}

func TestFieldScatterKeepsPopulation(t *testing.T) {
	f := NewField()
	before := append([]Particle(nil), f.Particles()...)
	f.Scatter()
	assert.Len(t, f.Particles(), len(before))
	assert.NotEqual(t, before, f.Particles())
}

func TestFieldInstances(t *testing.T) {
	f := NewField(WithScale(0.55))
	buf := f.Instances(nil)
	require.Len(t, buf, f.Len()*GPUParticleInstanceSize)

	p := f.Particles()[1]
	at := func(i int) float32 {
		off := GPUParticleInstanceSize + i*4
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[off:]))
	}
	assert.Equal(t, p.X, at(0))
	assert.Equal(t, p.Z, at(2))
	assert.Equal(t, p.ScaleZ, at(3))
	assert.Equal(t, p.Brightness, at(4))
	assert.Equal(t, float32(1), at(7))

	again := f.Instances(buf)
	assert.Equal(t, &buf[0], &again[0], "capacity is reused")

	var inst GPUParticleInstance
	assert.Equal(t, GPUParticleInstanceSize, inst.Size())
	assert.Len(t, inst.Marshal(), GPUParticleInstanceSize)
}
