package portal

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

// CompositePipelineKey is the render pipeline drawing the portal onto the swapchain.
const CompositePipelineKey = "portal.composite"

const (
	paramsBinding  = 0
	textureBinding = 1
	samplerBinding = 2
	bloomBinding   = 3
)

// Stage draws the warp scene target through the portal plane, adding the bloom glow.
type Stage interface {
	// Pipeline builds the composite render pipeline.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline keyed CompositePipelineKey
	//   - error: an error if a shader fails to reflect
	Pipeline() (pipeline.Pipeline, error)

	// Init uploads the plane and binds the source and glow targets. The pipeline must be
	// registered first.
	//
	// Parameters:
	//   - r: the renderer
	//   - source: the warp scene target
	//   - glow: the bloom output
	//
	// Returns:
	//   - error: an error if a target is nil or a GPU resource fails
	Init(r renderer.Renderer, source, glow renderer.RenderTarget) error

	// Ready reports whether Init succeeded.
	Ready() bool

	// SetSource reassigns the sampled targets, for example after a resize. The bind group is
	// rebuilt by the next Prepare. Nil targets are ignored.
	SetSource(source, glow renderer.RenderTarget)

	// Prepare rebinds a changed source and builds the params write.
	//
	// Parameters:
	//   - r: the renderer
	//   - params: the composite uniform
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the writes for Renderer.WriteBuffers, nil before Init
	//   - error: an error if the rebind fails
	Prepare(r renderer.Renderer, params GPUPortalParams) ([]bind_group_provider.BufferWrite, error)

	// Draw issues the composite draw inside the swapchain pass. Hidden portals draw nothing.
	//
	// Parameters:
	//   - r: the renderer
	//   - cameraGroup: the camera bind group provider at group 0
	//   - visible: the blend visibility hint
	//
	// Returns:
	//   - error: an error if the draw fails
	Draw(r renderer.Renderer, cameraGroup bind_group_provider.BindGroupProvider, visible bool) error

	// Release frees the plane and material resources. The sampled targets are not released.
	Release()
}

type stageImpl struct {
	plane    model.Model
	material material.Material
	ready    bool
}

var _ Stage = &stageImpl{}

// NewStage creates the portal composite stage around a unit plane at the origin.
//
// Returns:
//   - Stage: the composite stage
func NewStage() Stage {
	vertices, indices := model.Quad(1, 1)
	return &stageImpl{
		plane: model.NewModel(
			model.WithName("portal.plane"),
			model.WithMesh(vertices, indices),
		),
		material: material.NewMaterial(
			material.WithName("portal.composite"),
			material.WithPipeline(CompositePipelineKey, 1),
			material.WithSampler(samplerBinding, common.ClampSampler()),
		),
	}
}

func (s *stageImpl) Pipeline() (pipeline.Pipeline, error) {
	include := shader.WithInclude("portal", GPUPortalParamsSource)
	vs, err := shader.NewShader("portal.composite.vs", shader.ShaderTypeVertex, compositeVertexSource, include)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader("portal.composite.fs", shader.ShaderTypeFragment, compositeFragmentSource, include)
	if err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(CompositePipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithDepthTestEnabled(false),
		pipeline.WithDepthWriteEnabled(false),
	), nil
}

func (s *stageImpl) Init(r renderer.Renderer, source, glow renderer.RenderTarget) error {
	if source == nil || glow == nil {
		return errors.New("portal stage: missing source target")
	}
	mesh := s.plane.MeshProvider()
	if err := r.InitMeshBuffers(mesh, s.plane.VertexData(), s.plane.IndexData(), s.plane.IndexCount()); err != nil {
		return fmt.Errorf("portal stage: mesh: %w", err)
	}
	s.SetSource(source, glow)
	if err := s.material.Init(r); err != nil {
		return fmt.Errorf("portal stage: %w", err)
	}
	s.ready = true
	return nil
}

func (s *stageImpl) Ready() bool {
	return s.ready
}

func (s *stageImpl) SetSource(source, glow renderer.RenderTarget) {
	if source != nil {
		s.material.SetTextureView(textureBinding, source.View())
	}
	if glow != nil {
		s.material.SetTextureView(bloomBinding, glow.View())
	}
}

func (s *stageImpl) Prepare(r renderer.Renderer, params GPUPortalParams) ([]bind_group_provider.BufferWrite, error) {
	if !s.ready {
		return nil, nil
	}
	if _, err := s.material.Rebind(r); err != nil {
		return nil, fmt.Errorf("portal stage: %w", err)
	}
	return []bind_group_provider.BufferWrite{s.material.Write(paramsBinding, params.Marshal())}, nil
}

func (s *stageImpl) Draw(r renderer.Renderer, cameraGroup bind_group_provider.BindGroupProvider, visible bool) error {
	if !s.ready || !visible || !s.material.Ready() {
		return nil
	}
	return r.DrawCall(CompositePipelineKey, s.plane.MeshProvider(), []bind_group_provider.BindGroupProvider{
		cameraGroup,
		s.material.BindGroupProvider(),
	})
}

func (s *stageImpl) Release() {
	s.material.Release()
	s.plane.MeshProvider().Release()
	s.ready = false
}
