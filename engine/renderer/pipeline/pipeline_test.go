package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("portal")
	assert.Equal(t, "portal", p.PipelineKey())
	assert.Equal(t, TargetSwapchain, p.Target())
	assert.True(t, p.DepthAttachment())
	assert.True(t, p.DepthTestEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Nil(t, p.BlendState())
	assert.Nil(t, p.Pipeline())
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, p.Topology())
}

func TestPipelineOptions(t *testing.T) {
	p := NewPipeline("raymarch",
		WithTarget(TargetOffscreen),
		WithDepthAttachment(false),
		WithDepthTestEnabled(false),
		WithDepthWriteEnabled(false),
		WithBlendState(BlendAdditive),
		WithCullMode(wgpu.CullModeBack),
	)
	assert.Equal(t, TargetOffscreen, p.Target())
	assert.False(t, p.DepthAttachment())
	assert.False(t, p.DepthTestEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.True(t, p.BlendEnabled())
	assert.Same(t, BlendAdditive, p.BlendState())
	assert.Equal(t, wgpu.CullModeBack, p.CullMode())
	assert.Nil(t, p.Shader(0))
}
