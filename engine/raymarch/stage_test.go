package raymarch

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texture(size uint32) *common.TextureStagingData {
	return &common.TextureStagingData{Pixels: make([]byte, size*size*4), Width: size, Height: size}
}

func newStage(t *testing.T, r *renderertest.Renderer, compact bool) Stage {
	t.Helper()
	s := NewStage(WithLayout(config.Layout{Compact: compact, Scale: 1}))
	p, err := s.Pipeline()
	require.NoError(t, err)
	require.NoError(t, r.RegisterPipelines(p))
	require.NoError(t, s.Init(r, texture(4), texture(4), 1600, 900))
	return s
}

func TestTargetSize(t *testing.T) {
	cfg := config.Default().Raymarch

	w, h := TargetSize(1600, 900, cfg, false)
	assert.Equal(t, 320, w)
	assert.Equal(t, 180, h)

	w, h = TargetSize(390, 844, cfg, true)
	assert.Equal(t, 130, w)
	assert.Equal(t, 281, h)

	w, h = TargetSize(2, 2, cfg, false)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	cfg.DivisorWide = 0
	w, _ = TargetSize(100, 100, cfg, false)
	assert.Equal(t, 100, w)
}

func TestSceneReflection(t *testing.T) {
	p, err := NewStage().Pipeline()
	require.NoError(t, err)

	desc := p.Shader(shader.ShaderTypeFragment).BindGroupLayoutDescriptor(0)
	require.Len(t, desc.Entries, 4)
	assert.Equal(t, uint64(32), desc.Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[1].Texture.SampleType)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, desc.Entries[2].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, desc.Entries[3].Sampler.Type)
}

func TestInitRequiresTextures(t *testing.T) {
	r := renderertest.New()
	s := NewStage()
	p, err := s.Pipeline()
	require.NoError(t, err)
	require.NoError(t, r.RegisterPipelines(p))

	assert.Error(t, s.Init(r, nil, texture(4), 100, 100))
	assert.Nil(t, s.Target())
}

func TestStageRendersIntoTarget(t *testing.T) {
	r := renderertest.New()
	s := newStage(t, r, false)

	require.NotNil(t, s.Target())
	assert.Equal(t, 320, s.Target().Width())
	assert.Equal(t, 2, r.TextureCount("raymarch.scene"))

	writes := s.Prepare(1.5, common.Vec3{0, -6, 5}, 0.1)
	require.Len(t, writes, 1)
	assert.Len(t, writes[0].Data, 32)
	assert.Equal(t, uint32(1), s.Frame())
	assert.True(t, s.Visible())

	require.NoError(t, s.Render(r))
	draws := r.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, ScenePipelineKey, draws[0].Pipeline)
	assert.Equal(t, TargetLabel, draws[0].Target)
	assert.Equal(t, []string{"raymarch.scene"}, draws[0].Groups)
}

func TestStageHiddenAboveThreshold(t *testing.T) {
	r := renderertest.New()
	s := newStage(t, r, false)

	s.Prepare(10, common.Vec3{}, 0.9)
	assert.False(t, s.Visible())
	require.NoError(t, s.Render(r))
	assert.Empty(t, r.Draws())

	s.Prepare(10, common.Vec3{}, 0.85)
	assert.True(t, s.Visible(), "the threshold itself still renders")
}

func TestStageResize(t *testing.T) {
	r := renderertest.New()
	s := newStage(t, r, true)
	first := r.Targets()[0]
	assert.Equal(t, 533, first.Width())

	created, err := s.Resize(r, 1601, 901)
	require.NoError(t, err)
	assert.False(t, created, "same divided size keeps the target")

	created, err = s.Resize(r, 800, 600)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.Released())
	assert.Equal(t, 266, s.Target().Width())
	assert.Equal(t, 200, s.Target().Height())
}

func TestUniformMarshal(t *testing.T) {
	g := GPURaymarchUniform{Resolution: [2]float32{320, 180}, Time: 1, Frame: 2, CameraPosition: [3]float32{0, 1, 2}, Progress: 0.5}
	assert.Equal(t, 32, g.Size())
	assert.Len(t, g.Marshal(), g.Size())

	u := GPUUpscaleUniform{}
	assert.Equal(t, 16, u.Size())
	assert.Len(t, u.Marshal(), u.Size())
}
