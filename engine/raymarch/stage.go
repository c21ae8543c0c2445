// package raymarch renders the procedural cloud backdrop into a low resolution offscreen target
// and reconstructs it at full resolution with a bicubic filter.
package raymarch

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// ScenePipelineKey is the offscreen pipeline of the procedural stage.
const ScenePipelineKey = "raymarch.scene"

// TargetLabel labels the low resolution render target.
const TargetLabel = "raymarch"

const (
	uniformBinding   = 0
	noiseBinding     = 1
	blueNoiseBinding = 2
	noiseSampler     = 3
)

// Stage owns the low resolution target and the procedural draw into it.
type Stage interface {
	// Pipeline builds the procedural render pipeline.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline keyed ScenePipelineKey
	//   - error: an error if a shader fails to reflect
	Pipeline() (pipeline.Pipeline, error)

	// Init uploads the triangle and noise textures and creates the target for a viewport.
	// The pipeline must be registered first.
	//
	// Parameters:
	//   - r: the renderer
	//   - noise: the tiling value noise texture
	//   - blueNoise: the blue noise dither texture
	//   - width, height: the viewport size in pixels
	//
	// Returns:
	//   - error: an error if a texture is missing or a GPU resource fails
	Init(r renderer.Renderer, noise, blueNoise *common.TextureStagingData, width, height int) error

	// Resize recreates the target when the divided viewport size changes.
	//
	// Parameters:
	//   - r: the renderer
	//   - width, height: the viewport size in pixels
	//
	// Returns:
	//   - bool: true if a new target was created
	//   - error: an error if the target could not be created
	Resize(r renderer.Renderer, width, height int) (bool, error)

	// Target returns the low resolution target, nil before Init.
	Target() renderer.RenderTarget

	// Prepare records the frame inputs and builds the uniform write. The frame counter
	// advances once per call.
	//
	// Parameters:
	//   - elapsed: session seconds
	//   - cameraPosition: the ray origin
	//   - progress: smoothed progress
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the uniform write, nil before Init
	Prepare(elapsed float32, cameraPosition common.Vec3, progress float32) []bind_group_provider.BufferWrite

	// Visible reports whether the stage renders at the progress of the last Prepare.
	Visible() bool

	// Frame returns the frame counter.
	Frame() uint32

	// Render runs the offscreen pass. Hidden stages skip the pass and keep the last image.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: an error if the pass or draw fails
	Render(r renderer.Renderer) error

	// Release frees the target, the triangle and the material.
	Release()
}

type stageImpl struct {
	cfg    config.RaymarchConfig
	layout config.Layout

	triangle model.Model
	material material.Material
	target   renderer.RenderTarget

	uniform GPURaymarchUniform
	frame   uint32
	visible bool
	ready   bool
}

var _ Stage = &stageImpl{}

// NewStage creates the procedural stage.
//
// Parameters:
//   - options: functional options for the stage
//
// Returns:
//   - Stage: the procedural stage
func NewStage(options ...StageBuilderOption) Stage {
	vertices, indices := model.FullscreenTriangle()
	s := &stageImpl{
		cfg:     config.Default().Raymarch,
		layout:  config.Layout{Scale: 1},
		visible: true,
		triangle: model.NewModel(
			model.WithName("raymarch.triangle"),
			model.WithMesh(vertices, indices),
		),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// TargetSize divides a viewport by the layout divisor. Each side is at least one pixel.
//
// Parameters:
//   - width, height: the viewport size in pixels
//   - cfg: the raymarch configuration
//   - compact: whether the layout is compact
//
// Returns:
//   - int: the target width
//   - int: the target height
func TargetSize(width, height int, cfg config.RaymarchConfig, compact bool) (int, int) {
	div := cfg.DivisorWide
	if compact {
		div = cfg.DivisorCompact
	}
	div = max(1, div)
	return max(1, width/div), max(1, height/div)
}

func (s *stageImpl) Pipeline() (pipeline.Pipeline, error) {
	vs, err := shader.NewShader("raymarch.scene.vs", shader.ShaderTypeVertex, fullscreenVertexSource)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader("raymarch.scene.fs", shader.ShaderTypeFragment, raymarchFragmentSource,
		shader.WithInclude("raymarch", GPURaymarchUniformSource))
	if err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(ScenePipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithTarget(pipeline.TargetOffscreen),
		pipeline.WithDepthAttachment(false),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
	), nil
}

func (s *stageImpl) Init(r renderer.Renderer, noise, blueNoise *common.TextureStagingData, width, height int) error {
	if noise == nil || blueNoise == nil {
		return errors.New("raymarch stage: missing noise texture")
	}
	mesh := s.triangle.MeshProvider()
	if err := r.InitMeshBuffers(mesh, s.triangle.VertexData(), s.triangle.IndexData(), s.triangle.IndexCount()); err != nil {
		return fmt.Errorf("raymarch stage: mesh: %w", err)
	}
	s.material = material.NewMaterial(
		material.WithName("raymarch.scene"),
		material.WithPipeline(ScenePipelineKey, 0),
		material.WithTexture(noiseBinding, noise),
		material.WithTexture(blueNoiseBinding, blueNoise),
		material.WithSampler(noiseSampler, common.RepeatSampler(wgpu.FilterModeNearest, wgpu.MipmapFilterModeLinear)),
	)
	if err := s.material.Init(r); err != nil {
		return fmt.Errorf("raymarch stage: %w", err)
	}
	if _, err := s.resize(r, width, height, true); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *stageImpl) Resize(r renderer.Renderer, width, height int) (bool, error) {
	if !s.ready {
		return false, nil
	}
	return s.resize(r, width, height, false)
}

func (s *stageImpl) resize(r renderer.Renderer, width, height int, force bool) (bool, error) {
	w, h := TargetSize(width, height, s.cfg, s.layout.Compact)
	if !force && s.target != nil && s.target.Width() == w && s.target.Height() == h {
		return false, nil
	}
	target, err := r.CreateRenderTarget(TargetLabel, w, h, false)
	if err != nil {
		return false, fmt.Errorf("raymarch stage: target %dx%d: %w", w, h, err)
	}
	if s.target != nil {
		s.target.Release()
	}
	s.target = target
	s.uniform.Resolution = [2]float32{float32(w), float32(h)}
	return true, nil
}

func (s *stageImpl) Target() renderer.RenderTarget {
	return s.target
}

func (s *stageImpl) Prepare(elapsed float32, cameraPosition common.Vec3, progress float32) []bind_group_provider.BufferWrite {
	s.visible = progress <= s.cfg.HideAbove
	if !s.ready {
		return nil
	}
	s.frame++
	s.uniform.Time = elapsed
	s.uniform.Frame = float32(s.frame)
	s.uniform.CameraPosition = cameraPosition
	s.uniform.Progress = progress
	return []bind_group_provider.BufferWrite{s.material.Write(uniformBinding, s.uniform.Marshal())}
}

func (s *stageImpl) Visible() bool {
	return s.visible
}

func (s *stageImpl) Frame() uint32 {
	return s.frame
}

func (s *stageImpl) Render(r renderer.Renderer) error {
	if !s.ready || !s.visible {
		return nil
	}
	if err := r.BeginOffscreenPass(s.target, wgpu.Color{}); err != nil {
		return fmt.Errorf("raymarch stage: %w", err)
	}
	defer r.EndOffscreenPass()
	return r.OffscreenDrawCall(ScenePipelineKey, s.triangle.MeshProvider(), []bind_group_provider.BindGroupProvider{
		s.material.BindGroupProvider(),
	})
}

func (s *stageImpl) Release() {
	if s.material != nil {
		s.material.Release()
	}
	if s.target != nil {
		s.target.Release()
		s.target = nil
	}
	s.triangle.MeshProvider().Release()
	s.ready = false
}
