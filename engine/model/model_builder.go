package model

import (
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithMesh packs vertices and indices and records the index count and bounding radius.
//
// Parameters:
//   - vertices: the mesh vertices
//   - indices: triangle list indices into vertices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh to a model
func WithMesh(vertices []GPUVertex, indices []uint32) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = MarshalVertices(vertices)
		m.indexData = MarshalIndices(indices)
		m.indexCount = len(indices)
		m.boundingRadius = ComputeBoundingRadius(vertices)
	}
}

// WithMeshProvider is an option builder that sets the mesh BindGroupProvider of the Model.
//
// Parameters:
//   - provider: the provider to fill with vertex and index buffers
//
// Returns:
//   - ModelBuilderOption: a function that applies the provider to a model
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) ModelBuilderOption {
	return func(m *model) {
		m.meshProvider = provider
	}
}
