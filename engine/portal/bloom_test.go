package portal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBloom(t *testing.T, r *renderertest.Renderer, options ...BloomBuilderOption) Bloom {
	t.Helper()
	b := NewBloom(options...)
	pipelines, err := b.Pipelines()
	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	require.NoError(t, r.RegisterPipelines(pipelines...))
	return b
}

func TestBloomReflection(t *testing.T) {
	pipelines, err := NewBloom().Pipelines()
	require.NoError(t, err)
	for _, p := range pipelines {
		desc := p.Shader(shader.ShaderTypeFragment).BindGroupLayoutDescriptor(0)
		require.Len(t, desc.Entries, 3, p.PipelineKey())
		assert.Equal(t, uint64(32), desc.Entries[0].Buffer.MinBindingSize, p.PipelineKey())
	}
}

func TestBloomTargetsFollowSource(t *testing.T) {
	r := renderertest.New()
	b := newBloom(t, r)
	assert.Nil(t, b.Output())
	require.Error(t, b.Init(r, nil))

	space, _ := r.CreateRenderTarget("space", 1280, 720, true)
	require.NoError(t, b.Init(r, space))
	require.True(t, b.Ready())
	first := b.Output()
	require.NotNil(t, first)
	assert.Equal(t, BloomTargetA, first.Label())
	assert.Equal(t, 1280/BloomDivisor, first.Width())
	assert.Equal(t, 720/BloomDivisor, first.Height())

	// same downsampled size keeps the targets
	same, _ := r.CreateRenderTarget("space", 1282, 722, true)
	require.NoError(t, b.Resize(r, same))
	assert.Same(t, first, b.Output())

	bigger, _ := r.CreateRenderTarget("space", 1920, 1080, true)
	require.NoError(t, b.Resize(r, bigger))
	assert.NotSame(t, first, b.Output())
	assert.Equal(t, 480, b.Output().Width())

	released := 0
	for _, target := range r.Targets() {
		if target.Released() {
			released++
		}
	}
	assert.Equal(t, 2, released, "both old bloom targets are released")

	b.Release()
	assert.False(t, b.Ready())
	assert.Nil(t, b.Output())
}

func TestBloomPrepareWritesOncePerResize(t *testing.T) {
	r := renderertest.New()
	b := newBloom(t, r, WithThreshold(-1))

	writes, err := b.Prepare(r)
	require.NoError(t, err)
	assert.Nil(t, writes, "nothing before Init")

	space, _ := r.CreateRenderTarget("space", 400, 200, true)
	require.NoError(t, b.Init(r, space))

	writes, err = b.Prepare(r)
	require.NoError(t, err)
	require.Len(t, writes, 3)
	extract := writes[0].Data
	require.Len(t, extract, 32)
	assert.Equal(t, common.Float32Bytes(nil, 1.0/400, 1.0/200, 0, 0, 0, 0, 0, 0), extract,
		"negative thresholds clamp to 0")
	assert.Equal(t, common.Float32Bytes(nil, 1.0/100, 1.0/50, 1, 0, 0, 0, 0, 0), writes[1].Data)
	assert.Equal(t, common.Float32Bytes(nil, 1.0/100, 1.0/50, 0, 1, 0, 0, 0, 0), writes[2].Data)

	writes, err = b.Prepare(r)
	require.NoError(t, err)
	assert.Nil(t, writes)
	assert.Equal(t, 1, r.BindCount("portal.bloom.horizontal"))

	bigger, _ := r.CreateRenderTarget("space", 800, 400, true)
	require.NoError(t, b.Resize(r, bigger))
	writes, err = b.Prepare(r)
	require.NoError(t, err)
	assert.Len(t, writes, 3)
	assert.Equal(t, 2, r.BindCount("portal.bloom.extract"))
	assert.Equal(t, 2, r.BindCount("portal.bloom.horizontal"))
	assert.Equal(t, 2, r.BindCount("portal.bloom.vertical"))
}

func TestBloomRenderPingPongs(t *testing.T) {
	r := renderertest.New()
	b := newBloom(t, r)
	require.NoError(t, b.Render(r), "rendering before Init is a no-op")
	assert.Empty(t, r.Draws())

	space, _ := r.CreateRenderTarget("space", 640, 360, true)
	require.NoError(t, b.Init(r, space))
	_, err := b.Prepare(r)
	require.NoError(t, err)
	require.NoError(t, b.Render(r))

	draws := r.Draws()
	require.Len(t, draws, 3)
	assert.Equal(t, BloomExtractPipelineKey, draws[0].Pipeline)
	assert.Equal(t, BloomTargetA, draws[0].Target)
	assert.Equal(t, []string{"portal.bloom.extract"}, draws[0].Groups)
	assert.Equal(t, BloomBlurPipelineKey, draws[1].Pipeline)
	assert.Equal(t, BloomTargetB, draws[1].Target)
	assert.Equal(t, []string{"portal.bloom.horizontal"}, draws[1].Groups)
	assert.Equal(t, BloomBlurPipelineKey, draws[2].Pipeline)
	assert.Equal(t, BloomTargetA, draws[2].Target)
	assert.Equal(t, []string{"portal.bloom.vertical"}, draws[2].Groups)
	for _, d := range draws {
		assert.True(t, d.Offscreen)
		assert.Equal(t, "portal.bloom_mesh", d.Mesh)
	}
}
