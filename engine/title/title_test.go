package title

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	assert.Equal(t, []string{Text}, Lines(false))
	assert.Len(t, Lines(true), 2)
}

func TestFontSize(t *testing.T) {
	assert.InDelta(t, 0.45, FontSize(config.Layout{Scale: 1}), 1e-6)
	assert.InDelta(t, 0.33, FontSize(config.Layout{Compact: true, Scale: 0.55}), 1e-6)
}

func TestRasterize(t *testing.T) {
	wide, err := Rasterize(Lines(false), 32, Color)
	require.NoError(t, err)
	tex := wide.Texture
	require.NotNil(t, tex)
	assert.Len(t, tex.Pixels, int(tex.Width*tex.Height*4))
	assert.Greater(t, tex.Width, tex.Height)

	covered := 0
	for i := 0; i < len(tex.Pixels); i += 4 {
		assert.Equal(t, Color.R, tex.Pixels[i])
		if tex.Pixels[i+3] > 0 {
			covered++
		}
	}
	assert.Positive(t, covered)

	compact, err := Rasterize(Lines(true), 32, Color)
	require.NoError(t, err)
	assert.Greater(t, compact.Texture.Height, tex.Height)
	assert.Less(t, compact.Texture.Width, tex.Width)

	_, err = Rasterize(nil, 32, Color)
	assert.Error(t, err)
}

func TestWorldSize(t *testing.T) {
	r, err := Rasterize([]string{"x"}, 64, Color)
	require.NoError(t, err)
	w, h := r.WorldSize(0.5)
	assert.InDelta(t, float32(r.Texture.Width)/128, w, 1e-6)
	assert.InDelta(t, float32(r.Texture.Height)/128, h, 1e-6)
}

func TestTitleDrawsWithOpacity(t *testing.T) {
	r := renderertest.New()
	ti := NewTitle(config.Layout{Scale: 1})
	p, err := ti.Pipeline()
	require.NoError(t, err)
	require.NoError(t, r.RegisterPipelines(p))

	assert.Nil(t, ti.Sync(1))
	require.NoError(t, ti.Init(r))
	assert.Equal(t, 1, r.TextureCount("title.text"))
	w, h := ti.Size()
	assert.Greater(t, w, h)

	cam := bind_group_provider.NewBindGroupProvider("camera")
	require.NoError(t, r.BeginFrame())
	require.Len(t, ti.Sync(0), 1)
	require.NoError(t, ti.Draw(r, cam))
	ti.Sync(0.5)
	require.NoError(t, ti.Draw(r, cam))
	r.EndFrame()

	draws := r.Draws()
	require.Len(t, draws, 1, "transparent titles draw nothing")
	assert.Equal(t, PipelineKey, draws[0].Pipeline)
	assert.Equal(t, "title.quad_mesh", draws[0].Mesh)
	assert.Equal(t, []string{"camera", "title.text"}, draws[0].Groups)
}
