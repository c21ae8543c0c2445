package model

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-warp/common"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for mesh pipelines.
// Matches GPUVertex layout exactly (32 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is the GPU representation of a single mesh vertex.
// Matches the WGSL VertexInput struct layout exactly (see GPUVertexSource).
// Size: 32 bytes, tightly packed.
type GPUVertex struct {
	Position [3]float32 // offset  0: vertex position in model space (12 bytes)
	Normal   [3]float32 // offset 12: vertex normal for lighting (12 bytes)
	TexCoord [2]float32 // offset 24: UV texture coordinate (8 bytes)
}

// Size returns the size of the GPUVertex struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUVertex) Marshal() []byte {
	buf := make([]byte, 0, 32)
	buf = common.Float32Bytes(buf, g.Position[:]...)
	buf = common.Float32Bytes(buf, g.Normal[:]...)
	return common.Float32Bytes(buf, g.TexCoord[:]...)
}

// MarshalVertices flattens a vertex slice for upload into a vertex buffer.
func MarshalVertices(vertices []GPUVertex) []byte {
	buf := make([]byte, 0, len(vertices)*32)
	for i := range vertices {
		buf = append(buf, vertices[i].Marshal()...)
	}
	return buf
}

// MarshalIndices flattens uint32 indices (little-endian) for upload into an index buffer.
func MarshalIndices(indices []uint32) []byte {
	buf := make([]byte, 0, len(indices)*4)
	for _, i := range indices {
		buf = append(buf, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
	}
	return buf
}

// GPUModelDataSource is the canonical WGSL definition of the ModelData struct for per-object uniforms.
// Matches GPUModelData layout exactly (96 bytes).
//
//go:embed assets/model_data.wgsl
var GPUModelDataSource string

// GPUModelData is the per-object uniform used by body, pointer and title draws.
// Size: 96 bytes.
type GPUModelData struct {
	Model    [16]float32 // offset  0: model-to-world transform (mat4x4<f32>)
	Color    [4]float32  // offset 64: base color, alpha multiplies the output
	Emissive float32     // offset 80: emissive strength added to the lit color
	Opacity  float32     // offset 84: global opacity
	_pad     [2]float32  // offset 88: padding to 96 bytes
}

// Size returns the size of the GPUModelData struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (96)
func (g *GPUModelData) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelData struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUModelData) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	buf = common.Float32Bytes(buf, g.Model[:]...)
	buf = common.Float32Bytes(buf, g.Color[:]...)
	return common.Float32Bytes(buf, g.Emissive, g.Opacity, 0, 0)
}
