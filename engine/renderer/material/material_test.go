package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vs = `
//@oxy:include vertex
struct Out { @builtin(position) clip: vec4<f32>, };
@vertex fn vs_main(v: VertexInput) -> Out { var o: Out; o.clip = vec4<f32>(v.position, 1.0); return o; }
`

const fs = `
struct Params { tint: vec4<f32>, };
@group(0) @binding(0) var<uniform> params: Params;
@group(0) @binding(1) var source: texture_2d<f32>;
@group(0) @binding(2) var source_sampler: sampler;
@fragment fn fs_main() -> @location(0) vec4<f32> { return params.tint; }
`

func newFake(t *testing.T) *renderertest.Renderer {
	t.Helper()
	v, err := shader.NewShader("vs", shader.ShaderTypeVertex, vs)
	require.NoError(t, err)
	f, err := shader.NewShader("fs", shader.ShaderTypeFragment, fs)
	require.NoError(t, err)

	r := renderertest.New()
	require.NoError(t, r.RegisterPipelines(pipeline.NewPipeline("p",
		pipeline.WithVertexShader(v),
		pipeline.WithFragmentShader(f),
	)))
	return r
}

func TestInitUploadsAndBinds(t *testing.T) {
	r := newFake(t)
	m := NewMaterial(
		WithName("noise"),
		WithPipeline("p", 0),
		WithTexture(1, &common.TextureStagingData{Pixels: make([]byte, 16), Width: 2, Height: 2}),
		WithSampler(2, common.RepeatSampler(wgpu.FilterModeNearest, wgpu.MipmapFilterModeLinear)),
	)
	assert.False(t, m.Ready())

	require.NoError(t, m.Init(r))
	assert.True(t, m.Ready())
	assert.Equal(t, 1, r.TextureCount("noise"))
	assert.Equal(t, 1, r.BindCount("noise"))
	assert.Equal(t, "noise", m.BindGroupProvider().Label())
}

func TestInitErrors(t *testing.T) {
	r := newFake(t)

	m := NewMaterial(WithName("bad"), WithPipeline("missing", 0))
	assert.Error(t, m.Init(r))
	assert.Error(t, m.Init(nil))

	m = NewMaterial(WithName("short"), WithPipeline("p", 0),
		WithTexture(1, &common.TextureStagingData{Pixels: make([]byte, 3), Width: 2, Height: 2}))
	err := m.Init(r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "material short: texture 1")
	assert.False(t, m.Ready())
}

func TestRebindOnlyWhenViewChanges(t *testing.T) {
	r := newFake(t)
	first := new(wgpu.TextureView)
	m := NewMaterial(WithName("upscale"), WithPipeline("p", 0), WithTextureView(1, first))

	rebuilt, err := m.Rebind(r)
	require.NoError(t, err)
	assert.False(t, rebuilt, "rebind before init is a no-op")

	require.NoError(t, m.Init(r))
	assert.True(t, m.BindGroupProvider().Borrowed(1))

	m.SetTextureView(1, first)
	rebuilt, err = m.Rebind(r)
	require.NoError(t, err)
	assert.False(t, rebuilt)

	m.SetTextureView(1, new(wgpu.TextureView))
	assert.False(t, m.Ready())
	rebuilt, err = m.Rebind(r)
	require.NoError(t, err)
	assert.True(t, rebuilt)
	assert.True(t, m.Ready())
	assert.Equal(t, 2, r.BindCount("upscale"))
}

func TestWrite(t *testing.T) {
	m := NewMaterial(WithName("w"))
	w := m.Write(0, []byte{1, 2, 3, 4})
	assert.Equal(t, m.BindGroupProvider(), w.Provider)
	assert.Equal(t, 0, w.Binding)
	assert.Len(t, w.Data, 4)
}
