package warp

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-warp/common"
)

// GPUParticleInstanceSize is the byte size of one GPUParticleInstance.
const GPUParticleInstanceSize = 32

// GPUParticleInstanceSource is the canonical WGSL definition of the ParticleInstance struct.
// Matches GPUParticleInstance layout exactly (32 bytes).
//
//go:embed assets/particle_instance.wgsl
var GPUParticleInstanceSource string

//go:embed assets/particles_vert.wgsl
var particleVertexSource string

//go:embed assets/particles_frag.wgsl
var particleFragmentSource string

// GPUParticleInstance is the per-instance vertex data of one particle streak.
// Size: 32 bytes.
type GPUParticleInstance struct {
	Offset [3]float32 // offset  0: particle position in field space
	ScaleZ float32    // offset 12: streak length factor
	Color  [4]float32 // offset 16: grayscale color, alpha 1
}

// Size returns the size of the GPUParticleInstance struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (32)
func (g *GPUParticleInstance) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUParticleInstance struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUParticleInstance) Marshal() []byte {
	return g.AppendTo(make([]byte, 0, GPUParticleInstanceSize))
}

// AppendTo appends the serialized instance to dst.
func (g *GPUParticleInstance) AppendTo(dst []byte) []byte {
	dst = common.Float32Bytes(dst, g.Offset[:]...)
	dst = common.Float32Bytes(dst, g.ScaleZ)
	return common.Float32Bytes(dst, g.Color[:]...)
}
