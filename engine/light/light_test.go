package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGPULightingSize(t *testing.T) {
	g := GPULighting{}
	assert.Equal(t, 96, g.Size())
	assert.Len(t, g.Marshal(), 96)
}

func TestPackLighting(t *testing.T) {
	ambient := NewLight(LightTypeAmbient, WithColor(0x8b8abd), WithIntensity(2.5))
	sun := NewLight(LightTypeDirectional, WithColor(0xb3c3f2), WithIntensity(9), WithDirectionFrom(common.Vec3{5, 5, 5}))
	pointer := NewLight(LightTypePoint, WithColor(0xfffeaa), WithFalloff(40, 3), WithPosition(common.Vec3{1, 2, 0}))
	second := NewLight(LightTypeAmbient, WithIntensity(100))

	g := PackLighting([]Light{ambient, sun, nil, pointer, second})

	assert.InDelta(t, 2.5, g.AmbientIntensity, 1e-6)
	assert.InDelta(t, float32(0x8b)/255, g.AmbientColor[0], 1e-6)
	assert.InDelta(t, 9, g.DirectionalIntensity, 1e-6)
	assert.InDelta(t, 1, g.DirectionalDirection.Len(), 1e-5)
	assert.InDelta(t, g.DirectionalDirection[0], g.DirectionalDirection[2], 1e-6)
	assert.Equal(t, common.Vec3{1, 2, 0}, g.PointPosition)
	assert.InDelta(t, 40, g.PointDistance, 1e-6)
	assert.InDelta(t, 3, g.PointDecay, 1e-6)
}

func TestPackLightingSkipsDisabled(t *testing.T) {
	p := NewLight(LightTypePoint, WithIntensity(100))
	p.SetEnabled(false)

	g := PackLighting([]Light{p})
	assert.Zero(t, g.PointIntensity)

	p.SetEnabled(true)
	p.SetIntensity(42)
	p.SetPosition(common.Vec3{0, 0, 3})
	g = PackLighting([]Light{p})
	assert.InDelta(t, 42, g.PointIntensity, 1e-6)
	assert.Equal(t, common.Vec3{0, 0, 3}, g.PointPosition)
}

func TestMarshalLayout(t *testing.T) {
	g := GPULighting{PointDecay: 3, PointIntensity: 7}
	buf := g.Marshal()
	require.Len(t, buf, 96)
	assert.Equal(t, common.Float32Bytes(nil, 7), buf[60:64])
	assert.Equal(t, common.Float32Bytes(nil, 3), buf[80:84])
}
