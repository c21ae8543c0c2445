package bind_group_provider

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProvider(t *testing.T) {
	p := NewBindGroupProvider("warp_particles", WithIndexCount(36), WithInstanceCount(1000))
	assert.Equal(t, "warp_particles", p.Label())
	assert.Equal(t, 36, p.IndexCount())
	assert.Equal(t, 1000, p.InstanceCount())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.InstanceBuffer())
}

func TestInstanceCountDefaultsToOne(t *testing.T) {
	p := NewBindGroupProvider("quad")
	assert.Equal(t, 1, p.InstanceCount())
	p.SetInstanceCount(4)
	assert.Equal(t, 4, p.InstanceCount())
}

func TestBorrowedTextureView(t *testing.T) {
	p := NewBindGroupProvider("upscale")
	var view *wgpu.TextureView

	p.BorrowTextureView(1, view)
	assert.True(t, p.Borrowed(1))

	p.SetTextureView(1, view)
	assert.False(t, p.Borrowed(1))

	p.BorrowTextureView(2, view)
	p.Release()
	assert.False(t, p.Borrowed(2))
	assert.Nil(t, p.TextureView(2))
}
