package model

import (
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/chewxy/math32"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
}

// Model defines the interface for a GPU-ready mesh.
// A Model holds packed vertex and index data plus the BindGroupProvider the Renderer fills
// with the vertex and index buffers on InitMeshBuffers.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// MeshProvider retrieves the provider carrying the mesh buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData retrieves the packed GPUVertex bytes.
	VertexData() []byte

	// IndexData retrieves the packed uint32 index bytes.
	IndexData() []byte

	// IndexCount retrieves the number of indices.
	IndexCount() int

	// BoundingRadius retrieves the distance from the origin to the farthest vertex.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// A mesh provider labelled after the model is created when none is supplied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(
			m.name+"_mesh",
			bind_group_provider.WithIndexCount(m.indexCount),
		)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

// ComputeBoundingRadius calculates the bounding sphere radius of a vertex slice around the origin.
//
// Parameters:
//   - vertices: the vertex data to measure
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		maxDistSq = max(maxDistSq, p[0]*p[0]+p[1]*p[1]+p[2]*p[2])
	}
	return math32.Sqrt(maxDistSq)
}
