package game_object

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/light"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/renderertest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelDataFollowsTransform(t *testing.T) {
	obj := NewGameObject(
		WithName("body"),
		WithPosition(common.Vec3{1, 2, 3}),
		WithScale(common.Vec3{2, 2, 2}),
		WithColor(0xff0000),
		WithEmissive(0.5),
	)
	data := obj.ModelData()
	assert.Equal(t, [4]float32{1, 0, 0, 1}, data.Color)
	assert.InDelta(t, 0.5, data.Emissive, 1e-6)
	assert.InDelta(t, 1, data.Opacity, 1e-6)
	assert.InDelta(t, 2, data.Model[0], 1e-6)
	assert.Equal(t, []float32{1, 2, 3}, data.Model[12:15])

	obj.SetOpacity(0.25)
	obj.SetColor(0x00ff00)
	data = obj.ModelData()
	assert.InDelta(t, 0.25, data.Opacity, 1e-6)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, data.Color)
}

func TestAttachedLightFollows(t *testing.T) {
	l := light.NewLight(light.LightTypePoint)
	obj := NewGameObject(WithLight(l))
	obj.SetPosition(common.Vec3{4, 5, 6})
	assert.Equal(t, common.Vec3{4, 5, 6}, l.Position())
	assert.Same(t, l, obj.Light())
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	a, b := NewGameObject(), NewGameObject()
	assert.NotEqual(t, a.ID(), b.ID())
	assert.NotEqual(t, a.Name(), b.Name())
	assert.True(t, a.Enabled())

	c := NewGameObject(WithID(42), WithEnabled(false))
	assert.Equal(t, uint64(42), c.ID())
	assert.False(t, c.Enabled())
}

func TestInitRequiresModel(t *testing.T) {
	r := renderertest.New()
	obj := NewGameObject(WithName("empty"))
	require.Error(t, obj.Init(r))
	assert.False(t, obj.Ready())
}

func TestSyncWritesModelData(t *testing.T) {
	vertices, indices := model.Quad(1, 1)
	obj := NewGameObject(
		WithName("quad"),
		WithModel(model.NewModel(model.WithName("quad"), model.WithMesh(vertices, indices))),
	)
	w := obj.Sync()
	assert.Equal(t, "quad", w.Provider.Label())
	assert.Equal(t, 0, w.Binding)
	assert.Len(t, w.Data, 96)
}
