package raymarch

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpscalerSyncsOnSizeChange(t *testing.T) {
	r := renderertest.New()
	u := NewUpscaler()
	p, err := u.Pipeline()
	require.NoError(t, err)
	require.NoError(t, r.RegisterPipelines(p))
	require.Error(t, u.Init(r, nil))

	small, _ := r.CreateRenderTarget(TargetLabel, 320, 180, false)
	require.NoError(t, u.Init(r, small))
	assert.Equal(t, 1, r.BindCount("raymarch.upscale"))

	writes, err := u.Sync(r, small)
	require.NoError(t, err)
	require.Len(t, writes, 1)
	texel := math.Float32frombits(binary.LittleEndian.Uint32(writes[0].Data[8:12]))
	assert.InDelta(t, 1.0/320, texel, 1e-9)

	writes, err = u.Sync(r, small)
	require.NoError(t, err)
	assert.Nil(t, writes, "unchanged size writes nothing")
	assert.Equal(t, 1, r.BindCount("raymarch.upscale"))

	large, _ := r.CreateRenderTarget(TargetLabel, 640, 360, false)
	writes, err = u.Sync(r, large)
	require.NoError(t, err)
	assert.Len(t, writes, 1)
	assert.Equal(t, 2, r.BindCount("raymarch.upscale"))

	require.NoError(t, r.BeginFrame())
	require.NoError(t, u.Draw(r))
	r.EndFrame()
	draws := r.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, UpscalePipelineKey, draws[0].Pipeline)
	assert.Equal(t, "raymarch.upscale_mesh", draws[0].Mesh)
	assert.False(t, draws[0].Offscreen)
}
