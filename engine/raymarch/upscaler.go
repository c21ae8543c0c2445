package raymarch

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
)

// UpscalePipelineKey is the swapchain pipeline of the bicubic filter.
const UpscalePipelineKey = "raymarch.upscale"

const (
	upscaleUniformBinding = 0
	upscaleTextureBinding = 1
	upscaleSamplerBinding = 2
)

// Upscaler draws a low resolution target over the full viewport with Catmull-Rom filtering.
type Upscaler interface {
	// Pipeline builds the upscale render pipeline.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline keyed UpscalePipelineKey
	//   - error: an error if a shader fails to reflect
	Pipeline() (pipeline.Pipeline, error)

	// Init uploads the triangle and binds the source. The pipeline must be registered first.
	//
	// Parameters:
	//   - r: the renderer
	//   - source: the low resolution target
	//
	// Returns:
	//   - error: an error if the source is nil or a GPU resource fails
	Init(r renderer.Renderer, source renderer.RenderTarget) error

	// Sync reassigns the sampled source every frame. A source of a new size rewrites the
	// uniform, and a new view rebuilds the bind group.
	//
	// Parameters:
	//   - r: the renderer
	//   - source: the current low resolution target
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the uniform write when the size changed, else nil
	//   - error: an error if the rebind fails
	Sync(r renderer.Renderer, source renderer.RenderTarget) ([]bind_group_provider.BufferWrite, error)

	// Draw issues the upscale draw inside the swapchain pass.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: an error if the draw fails
	Draw(r renderer.Renderer) error

	// Release frees the triangle and material. The source target is not released.
	Release()
}

type upscalerImpl struct {
	triangle model.Model
	material material.Material

	width, height int
	ready         bool
}

var _ Upscaler = &upscalerImpl{}

// NewUpscaler creates the bicubic upscale filter.
//
// Returns:
//   - Upscaler: the filter
func NewUpscaler() Upscaler {
	vertices, indices := model.FullscreenTriangle()
	return &upscalerImpl{
		triangle: model.NewModel(
			model.WithName("raymarch.upscale"),
			model.WithMesh(vertices, indices),
		),
		material: material.NewMaterial(
			material.WithName("raymarch.upscale"),
			material.WithPipeline(UpscalePipelineKey, 0),
			material.WithSampler(upscaleSamplerBinding, common.ClampSampler()),
		),
	}
}

func (u *upscalerImpl) Pipeline() (pipeline.Pipeline, error) {
	vs, err := shader.NewShader("raymarch.upscale.vs", shader.ShaderTypeVertex, fullscreenVertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader("raymarch.upscale.fs", shader.ShaderTypeFragment, upscaleFragmentSource,
		shader.WithInclude("upscale", GPUUpscaleUniformSource))
	if err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(UpscalePipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
	), nil
}

func (u *upscalerImpl) Init(r renderer.Renderer, source renderer.RenderTarget) error {
	if source == nil {
		return errors.New("upscaler: no source target")
	}
	mesh := u.triangle.MeshProvider()
	if err := r.InitMeshBuffers(mesh, u.triangle.VertexData(), u.triangle.IndexData(), u.triangle.IndexCount()); err != nil {
		return fmt.Errorf("upscaler: mesh: %w", err)
	}
	u.material.SetTextureView(upscaleTextureBinding, source.View())
	if err := u.material.Init(r); err != nil {
		return fmt.Errorf("upscaler: %w", err)
	}
	u.ready = true
	return nil
}

func (u *upscalerImpl) Sync(r renderer.Renderer, source renderer.RenderTarget) ([]bind_group_provider.BufferWrite, error) {
	if !u.ready || source == nil {
		return nil, nil
	}
	u.material.SetTextureView(upscaleTextureBinding, source.View())
	if _, err := u.material.Rebind(r); err != nil {
		return nil, fmt.Errorf("upscaler: %w", err)
	}
	if source.Width() == u.width && source.Height() == u.height {
		return nil, nil
	}
	u.width, u.height = source.Width(), source.Height()
	w, h := float32(max(1, u.width)), float32(max(1, u.height))
	uniform := GPUUpscaleUniform{
		SourceSize: [2]float32{w, h},
		TexelSize:  [2]float32{1 / w, 1 / h},
	}
	return []bind_group_provider.BufferWrite{u.material.Write(upscaleUniformBinding, uniform.Marshal())}, nil
}

func (u *upscalerImpl) Draw(r renderer.Renderer) error {
	if !u.ready || !u.material.Ready() {
		return nil
	}
	return r.DrawCall(UpscalePipelineKey, u.triangle.MeshProvider(), []bind_group_provider.BindGroupProvider{
		u.material.BindGroupProvider(),
	})
}

func (u *upscalerImpl) Release() {
	u.material.Release()
	u.triangle.MeshProvider().Release()
	u.ready = false
}
