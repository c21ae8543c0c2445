package title

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
)

//go:embed assets/title_vert.wgsl
var titleVertexSource string

//go:embed assets/title_frag.wgsl
var titleFragmentSource string

// PipelineKey is the swapchain pipeline of the title quad.
const PipelineKey = "title.text"

// EmPixels is the rasterization size of one em.
const EmPixels = 96

// FontSize is the em size in world units: 0.6·s on compact layouts and 0.45·s otherwise.
//
// Parameters:
//   - layout: the derived layout
//
// Returns:
//   - float32: the em size
func FontSize(layout config.Layout) float32 {
	if layout.Compact {
		return 0.6 * layout.Scale
	}
	return 0.45 * layout.Scale
}

// Title draws the rasterized title centered on the origin.
type Title interface {
	// Pipeline builds the title render pipeline.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline keyed PipelineKey
	//   - error: an error if a shader fails to reflect
	Pipeline() (pipeline.Pipeline, error)

	// Init rasterizes the text, uploads the quad and binds the glyph texture.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: an error if rasterization or a GPU resource fails
	Init(r renderer.Renderer) error

	// Size returns the quad extent in world units, zero before Init.
	Size() (float32, float32)

	// Sync builds the model uniform write for an opacity.
	//
	// Parameters:
	//   - opacity: the mapped title opacity
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the writes, nil before Init
	Sync(opacity float32) []bind_group_provider.BufferWrite

	// Draw issues the quad draw inside the swapchain pass. Fully transparent titles draw nothing.
	//
	// Parameters:
	//   - r: the renderer
	//   - cameraGroup: the camera bind group provider at group 0
	//
	// Returns:
	//   - error: an error if the draw fails
	Draw(r renderer.Renderer, cameraGroup bind_group_provider.BindGroupProvider) error

	// Release frees the quad and material.
	Release()
}

type titleImpl struct {
	layout config.Layout

	quad     model.Model
	material material.Material

	width, height float32
	opacity       float32
	ready         bool
}

var _ Title = &titleImpl{}

// NewTitle creates the title for a layout.
//
// Parameters:
//   - layout: the derived layout
//
// Returns:
//   - Title: the title
func NewTitle(layout config.Layout) Title {
	return &titleImpl{layout: layout}
}

func (t *titleImpl) Pipeline() (pipeline.Pipeline, error) {
	vs, err := shader.NewShader("title.text.vs", shader.ShaderTypeVertex, titleVertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader("title.text.fs", shader.ShaderTypeFragment, titleFragmentSource)
	if err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(PipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
	), nil
}

func (t *titleImpl) Init(r renderer.Renderer) error {
	raster, err := Rasterize(Lines(t.layout.Compact), EmPixels, Color)
	if err != nil {
		return err
	}
	t.width, t.height = raster.WorldSize(FontSize(t.layout))

	vertices, indices := model.Quad(t.width, t.height)
	t.quad = model.NewModel(
		model.WithName("title.quad"),
		model.WithMesh(vertices, indices),
	)
	mesh := t.quad.MeshProvider()
	if err := r.InitMeshBuffers(mesh, t.quad.VertexData(), t.quad.IndexData(), t.quad.IndexCount()); err != nil {
		return fmt.Errorf("title: mesh: %w", err)
	}
	t.material = material.NewMaterial(
		material.WithName("title.text"),
		material.WithPipeline(PipelineKey, 1),
		material.WithTexture(1, raster.Texture),
		material.WithSampler(2, common.ClampSampler()),
	)
	if err := t.material.Init(r); err != nil {
		return fmt.Errorf("title: %w", err)
	}
	t.ready = true
	return nil
}

func (t *titleImpl) Size() (float32, float32) {
	return t.width, t.height
}

func (t *titleImpl) Sync(opacity float32) []bind_group_provider.BufferWrite {
	t.opacity = common.Clamp(opacity, 0, 1)
	if !t.ready {
		return nil
	}
	var data model.GPUModelData
	common.BuildModelMatrix(data.Model[:], common.Vec3{}, common.Vec3{}, common.Vec3{1, 1, 1})
	data.Color = [4]float32{1, 1, 1, 1}
	data.Opacity = t.opacity
	return []bind_group_provider.BufferWrite{t.material.Write(0, data.Marshal())}
}

func (t *titleImpl) Draw(r renderer.Renderer, cameraGroup bind_group_provider.BindGroupProvider) error {
	if !t.ready || t.opacity <= 0 {
		return nil
	}
	return r.DrawCall(PipelineKey, t.quad.MeshProvider(), []bind_group_provider.BindGroupProvider{
		cameraGroup,
		t.material.BindGroupProvider(),
	})
}

func (t *titleImpl) Release() {
	if !t.ready {
		return
	}
	t.material.Release()
	t.quad.MeshProvider().Release()
	t.ready = false
}
