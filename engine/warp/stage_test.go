package warp

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStagePipelineReflection(t *testing.T) {
	s := NewStage(NewField(), 1, 0.03)
	p, err := s.Pipeline()
	require.NoError(t, err)
	assert.Equal(t, ParticlePipelineKey, p.PipelineKey())
	assert.Equal(t, pipeline.TargetOffscreen, p.Target())

	layouts := p.Shader(shader.ShaderTypeVertex).VertexLayouts()
	require.Len(t, layouts, 2)
	assert.Equal(t, wgpu.VertexStepModeInstance, layouts[1].StepMode)
	assert.Equal(t, uint64(GPUParticleInstanceSize), layouts[1].ArrayStride)
}

func TestStageLifecycle(t *testing.T) {
	r := renderertest.New()
	f := NewField(WithScale(0.55))
	s := NewStage(f, 0.55, 0.03)

	assert.Nil(t, s.Sync(), "nothing to write before init")
	cam := bind_group_provider.NewBindGroupProvider("camera")
	require.NoError(t, s.Draw(r, cam), "unready stages skip their draw")
	assert.Empty(t, r.Draws())

	p, err := s.Pipeline()
	require.NoError(t, err)
	require.NoError(t, r.RegisterPipelines(p))
	require.NoError(t, s.Init(r))
	assert.True(t, s.Ready())
	assert.Equal(t, 1, r.BindCount("warp.particles"))

	writes := s.Sync()
	require.Len(t, writes, 2)
	assert.Equal(t, 0, writes[0].Binding)
	assert.Len(t, writes[0].Data, 96)
	assert.Equal(t, bind_group_provider.InstanceBinding, writes[1].Binding)
	assert.Len(t, writes[1].Data, f.Len()*GPUParticleInstanceSize)

	target, err := r.CreateRenderTarget("warp", 64, 36, true)
	require.NoError(t, err)
	require.NoError(t, r.BeginOffscreenPass(target, wgpu.Color{}))
	require.NoError(t, s.Draw(r, cam))
	r.EndOffscreenPass()

	draws := r.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, renderertest.Draw{
		Pipeline:  ParticlePipelineKey,
		Mesh:      "warp.particle_mesh",
		Groups:    []string{"camera", "warp.particles"},
		Offscreen: true,
		Target:    "warp",
	}, draws[0])

	require.ErrorIs(t, s.Draw(r, cam), renderertest.ErrNoPass)

	s.Release()
	assert.False(t, s.Ready())
}
