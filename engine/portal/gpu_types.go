package portal

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-warp/common"
)

// GPUPortalParamsSource is the canonical WGSL definition of the PortalParams struct.
// Matches GPUPortalParams layout exactly (32 bytes).
//
//go:embed assets/portal_params.wgsl
var GPUPortalParamsSource string

// GPUBloomParamsSource is the canonical WGSL definition of the BloomParams struct.
// Matches GPUBloomParams layout exactly (32 bytes).
//
//go:embed assets/bloom_params.wgsl
var GPUBloomParamsSource string

//go:embed assets/composite_vert.wgsl
var compositeVertexSource string

//go:embed assets/composite_frag.wgsl
var compositeFragmentSource string

//go:embed assets/bloom_vert.wgsl
var bloomVertexSource string

//go:embed assets/bloom_extract_frag.wgsl
var bloomExtractSource string

//go:embed assets/bloom_blur_frag.wgsl
var bloomBlurSource string

// GPUPortalParams is the composite uniform.
// Size: 32 bytes.
type GPUPortalParams struct {
	Resolution [2]float32 // offset  0: swapchain size in pixels
	Blend      float32    // offset  8: damped blend, 0 shows the plane, 1 fills the screen
	Aberration float32    // offset 12: chromatic offset in UV units, 0 disables the split
	Bloom      float32    // offset 16: bloom intensity, 0 disables the glow
	_          [3]float32 // offset 20: padding
}

// Size returns the size of the GPUPortalParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (32)
func (g *GPUPortalParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUPortalParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUPortalParams) Marshal() []byte {
	buf := make([]byte, 0, 32)
	buf = common.Float32Bytes(buf, g.Resolution[:]...)
	return common.Float32Bytes(buf, g.Blend, g.Aberration, g.Bloom, 0, 0, 0)
}

// GPUBloomParams is the uniform of one bloom pass.
// Size: 32 bytes.
type GPUBloomParams struct {
	TexelSize [2]float32 // offset  0: 1/size of the sampled texture
	Direction [2]float32 // offset  8: blur axis, zero for the extract pass
	Threshold float32    // offset 16: subtracted from every channel before blurring
	_         [3]float32 // offset 20: padding
}

// Size returns the size of the GPUBloomParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (32)
func (g *GPUBloomParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUBloomParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUBloomParams) Marshal() []byte {
	buf := make([]byte, 0, 32)
	buf = common.Float32Bytes(buf, g.TexelSize[:]...)
	buf = common.Float32Bytes(buf, g.Direction[:]...)
	return common.Float32Bytes(buf, g.Threshold, 0, 0, 0)
}
