package raymarch

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-warp/common"
)

// GPURaymarchUniformSource is the canonical WGSL definition of the RaymarchUniform struct.
// Matches GPURaymarchUniform layout exactly (32 bytes).
//
//go:embed assets/raymarch_uniform.wgsl
var GPURaymarchUniformSource string

// GPUUpscaleUniformSource is the canonical WGSL definition of the UpscaleUniform struct.
// Matches GPUUpscaleUniform layout exactly (16 bytes).
//
//go:embed assets/upscale_uniform.wgsl
var GPUUpscaleUniformSource string

//go:embed assets/fullscreen_vert.wgsl
var fullscreenVertexSource string

//go:embed assets/raymarch_frag.wgsl
var raymarchFragmentSource string

//go:embed assets/upscale_frag.wgsl
var upscaleFragmentSource string

// GPURaymarchUniform is the per-frame uniform of the procedural stage.
// Size: 32 bytes.
type GPURaymarchUniform struct {
	Resolution     [2]float32 // offset  0: offscreen target size in pixels
	Time           float32    // offset  8: elapsed session seconds
	Frame          float32    // offset 12: frame counter, drives the blue noise offset
	CameraPosition [3]float32 // offset 16: ray origin (0, cameraY, cameraZ)
	Progress       float32    // offset 28: smoothed scroll progress
}

// Size returns the size of the GPURaymarchUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (32)
func (g *GPURaymarchUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPURaymarchUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPURaymarchUniform) Marshal() []byte {
	buf := make([]byte, 0, 32)
	buf = common.Float32Bytes(buf, g.Resolution[:]...)
	buf = common.Float32Bytes(buf, g.Time, g.Frame)
	buf = common.Float32Bytes(buf, g.CameraPosition[:]...)
	return common.Float32Bytes(buf, g.Progress)
}

// GPUUpscaleUniform describes the low resolution source of the upscale filter.
// Size: 16 bytes.
type GPUUpscaleUniform struct {
	SourceSize [2]float32 // offset 0: source size in pixels
	TexelSize  [2]float32 // offset 8: 1 / SourceSize
}

// Size returns the size of the GPUUpscaleUniform struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes (16)
func (g *GPUUpscaleUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUUpscaleUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 16-byte buffer ready for GPU upload.
func (g *GPUUpscaleUniform) Marshal() []byte {
	buf := make([]byte, 0, 16)
	buf = common.Float32Bytes(buf, g.SourceSize[:]...)
	return common.Float32Bytes(buf, g.TexelSize[:]...)
}
