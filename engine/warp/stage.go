package warp

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/model"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/shader"
)

// ParticlePipelineKey is the render pipeline of the particle field.
const ParticlePipelineKey = "warp.particles"

// ParticleColor is the untone-mapped material color multiplied into every streak.
const ParticleColor float32 = 1.5

// Stage renders a Field as one instanced draw into the warp scene target.
type Stage interface {
	// Pipeline builds the particle render pipeline for registration with the renderer.
	//
	// Returns:
	//   - pipeline.Pipeline: the pipeline keyed ParticlePipelineKey
	//   - error: an error if a shader fails to reflect
	Pipeline() (pipeline.Pipeline, error)

	// Init uploads the sphere mesh, allocates the instance buffer and binds the material.
	// The pipeline must be registered first.
	//
	// Parameters:
	//   - r: the renderer
	//
	// Returns:
	//   - error: an error if a GPU resource fails
	Init(r renderer.Renderer) error

	// Ready reports whether Init succeeded.
	Ready() bool

	// Sync builds the instance and model uniform writes of the current field state.
	// It returns nil before Init.
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: the writes for Renderer.WriteBuffers
	Sync() []bind_group_provider.BufferWrite

	// Draw issues the instanced draw inside an open offscreen pass.
	//
	// Parameters:
	//   - r: the renderer
	//   - cameraGroup: the camera bind group provider at group 0
	//
	// Returns:
	//   - error: an error if the draw fails
	Draw(r renderer.Renderer, cameraGroup bind_group_provider.BindGroupProvider) error

	// Release frees the mesh and material resources.
	Release()
}

type stageImpl struct {
	field    Field
	scale    float32
	sphere   model.Model
	material material.Material

	instances []byte
	ready     bool
}

var _ Stage = &stageImpl{}

// NewStage creates the particle stage for a field. The field is rendered scaled by the layout
// scaling factor.
//
// Parameters:
//   - field: the particle field
//   - scale: the layout scaling factor
//   - particleSize: the particle sphere radius
//
// Returns:
//   - Stage: the particle stage
func NewStage(field Field, scale, particleSize float32) Stage {
	vertices, indices := model.UVSphere(particleSize, 8, 6)
	return &stageImpl{
		field: field,
		scale: scale,
		sphere: model.NewModel(
			model.WithName("warp.particle"),
			model.WithMesh(vertices, indices),
		),
		material: material.NewMaterial(
			material.WithName("warp.particles"),
			material.WithPipeline(ParticlePipelineKey, 1),
		),
		instances: make([]byte, 0, field.Len()*GPUParticleInstanceSize),
	}
}

func (s *stageImpl) Pipeline() (pipeline.Pipeline, error) {
	include := shader.WithInclude("particle", GPUParticleInstanceSource)
	vs, err := shader.NewShader("warp.particles.vs", shader.ShaderTypeVertex, particleVertexSource, include)
	if err != nil {
		return nil, err
	}
	fs, err := shader.NewShader("warp.particles.fs", shader.ShaderTypeFragment, particleFragmentSource)
	if err != nil {
		return nil, err
	}
	return pipeline.NewPipeline(ParticlePipelineKey,
		pipeline.WithVertexShader(vs),
		pipeline.WithFragmentShader(fs),
		pipeline.WithTarget(pipeline.TargetOffscreen),
		pipeline.WithBlendState(pipeline.BlendAdditive),
	), nil
}

func (s *stageImpl) Init(r renderer.Renderer) error {
	mesh := s.sphere.MeshProvider()
	if err := r.InitMeshBuffers(mesh, s.sphere.VertexData(), s.sphere.IndexData(), s.sphere.IndexCount()); err != nil {
		return fmt.Errorf("warp stage: mesh: %w", err)
	}
	if n := s.field.Len(); n > 0 {
		if err := r.InitInstanceBuffer(mesh, uint64(n*GPUParticleInstanceSize)); err != nil {
			return fmt.Errorf("warp stage: instances: %w", err)
		}
	}
	mesh.SetInstanceCount(s.field.Len())
	if err := s.material.Init(r); err != nil {
		return fmt.Errorf("warp stage: %w", err)
	}
	s.ready = true
	return nil
}

func (s *stageImpl) Ready() bool {
	return s.ready
}

func (s *stageImpl) Sync() []bind_group_provider.BufferWrite {
	if !s.ready {
		return nil
	}
	var data model.GPUModelData
	common.BuildModelMatrix(data.Model[:], common.Vec3{}, common.Vec3{}, common.Vec3{s.scale, s.scale, s.scale})
	data.Color = [4]float32{ParticleColor, ParticleColor, ParticleColor, 1}
	data.Opacity = 1

	writes := []bind_group_provider.BufferWrite{s.material.Write(0, data.Marshal())}
	if s.field.Len() > 0 {
		s.instances = s.field.Instances(s.instances)
		writes = append(writes, bind_group_provider.BufferWrite{
			Provider: s.sphere.MeshProvider(),
			Binding:  bind_group_provider.InstanceBinding,
			Data:     s.instances,
		})
	}
	return writes
}

func (s *stageImpl) Draw(r renderer.Renderer, cameraGroup bind_group_provider.BindGroupProvider) error {
	if !s.ready || s.field.Len() == 0 {
		return nil
	}
	return r.OffscreenDrawCall(ParticlePipelineKey, s.sphere.MeshProvider(), []bind_group_provider.BindGroupProvider{
		cameraGroup,
		s.material.BindGroupProvider(),
	})
}

func (s *stageImpl) Release() {
	s.material.Release()
	s.sphere.MeshProvider().Release()
	s.ready = false
}
