package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	rail := config.Default().Camera.Rail

	tests := []struct {
		name    string
		p       float32
		compact bool
		want    Mapping
	}{
		{"start wide", 0, false, Mapping{CameraY: -6, CameraZ: 5.0, TextOpacity: 1}},
		{"quarter wide", 0.25, false, Mapping{CameraY: -3.1, CameraZ: 5.0, TextOpacity: 0.5}},
		{"split wide", 0.5, false, Mapping{CameraY: -0.2, CameraZ: 5.0, TextOpacity: 0}},
		{"end wide", 1, false, Mapping{CameraY: -0.2, CameraZ: -2.5, TextOpacity: 0}},
		{"start compact", 0, true, Mapping{CameraY: -6, CameraZ: 5.9, TextOpacity: 1}},
		{"three quarters compact", 0.75, true, Mapping{CameraY: 0, CameraZ: 1.7, TextOpacity: 0}},
		{"clamped above", 1.5, false, Mapping{CameraY: -0.2, CameraZ: -2.5, TextOpacity: 0}},
		{"clamped below", -1, true, Mapping{CameraY: -6, CameraZ: 5.9, TextOpacity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Map(tt.p, tt.compact, rail)
			assert.InDelta(t, tt.want.CameraY, got.CameraY, 1e-5)
			assert.InDelta(t, tt.want.CameraZ, got.CameraZ, 1e-5)
			assert.InDelta(t, tt.want.TextOpacity, got.TextOpacity, 1e-5)
		})
	}
}

func TestMapDeterministic(t *testing.T) {
	rail := config.Default().Camera.Rail
	for i := range 101 {
		p := float32(i) / 100
		assert.Equal(t, Map(p, false, rail), Map(p, false, rail))
	}
}

func TestMapContinuousAtSplit(t *testing.T) {
	rail := config.Default().Camera.Rail
	// the wide rail climbs 11.6 units of Y per unit of progress below the split
	const step = 1e-5
	below := Map(0.5-step, false, rail)
	at := Map(0.5, false, rail)
	assert.InDelta(t, at.CameraY, below.CameraY, 12*step)
	assert.InDelta(t, at.CameraZ, below.CameraZ, 12*step)
}

func TestRailController(t *testing.T) {
	rail := config.Default().Camera.Rail
	rc := NewRailController(rail, false)
	assert.Equal(t, common.Vec3{0, -6, 5}, rc.Position())

	rc.Apply(Map(1, false, rail))
	assert.InDelta(t, -2.5, rc.Position()[2], 1e-6)
	assert.InDelta(t, -3.5, rc.Target()[2], 1e-6)
	assert.Equal(t, rc.Position()[1], rc.Target()[1])
}

func TestCameraFollowsController(t *testing.T) {
	rail := config.Default().Camera.Rail
	rc := NewRailController(rail, true)
	c := NewCamera(WithConfig(config.Default().Camera), WithController(rc))

	assert.Equal(t, common.Vec3{0, -6, 5.9}, c.Position())

	rc.Apply(Map(0.5, true, rail))
	c.Update()
	assert.Equal(t, common.Vec3{0, 0, 5.9}, c.Position())
	assert.InDelta(t, 75*math32.Pi/180, c.Fov(), 1e-6)
}

func TestViewportAt(t *testing.T) {
	c := NewCamera(WithFov(math32.Pi/2), WithAspect(2))
	w, h := c.ViewportAt(1)
	assert.InDelta(t, 2, h, 1e-5)
	assert.InDelta(t, 4, w, 1e-5)

	w, h = c.ViewportAt(-3)
	assert.InDelta(t, 6, h, 1e-4)
	assert.InDelta(t, 12, w, 1e-4)
}

func TestRay(t *testing.T) {
	c := NewCamera(WithAspect(16.0 / 9.0))

	origin, dir := c.Ray(0, 0)
	assert.Equal(t, common.Vec3{0, 0, 6}, origin)
	assert.InDelta(t, 0, dir[0], 1e-4)
	assert.InDelta(t, 0, dir[1], 1e-4)
	assert.InDelta(t, -1, dir[2], 1e-4)

	_, right := c.Ray(1, 0)
	assert.Greater(t, right[0], float32(0))
	_, up := c.Ray(0, 1)
	assert.Greater(t, up[1], float32(0))
	assert.InDelta(t, 1, up.Len(), 1e-4)
}

func TestSetAspectIgnoresNonPositive(t *testing.T) {
	c := NewCamera(WithAspect(1.5))
	c.SetAspect(0)
	assert.InDelta(t, 1.5, c.Aspect(), 1e-6)
	c.SetAspect(2)
	assert.InDelta(t, 2, c.Aspect(), 1e-6)
}

func TestGPUCameraUniform(t *testing.T) {
	c := NewCamera()
	u := c.Uniform()
	require.Equal(t, 80, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 80)
	assert.Equal(t, c.ViewProjectionMatrix(), u.ViewProj)
	assert.Contains(t, GPUCameraUniformSource, "struct CameraUniform")
}
