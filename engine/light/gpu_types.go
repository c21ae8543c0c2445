package light

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-warp/common"
)

// GPULightingSource is the canonical WGSL definition of the Lighting struct and the
// shade_lambert helper. Matches GPULighting layout exactly (96 bytes).
//
//go:embed assets/lighting.wgsl
var GPULightingSource string

// GPULighting is the GPU-aligned uniform holding the scene's ambient, directional and point
// light. Matches the WGSL Lighting struct layout exactly (see GPULightingSource).
// Size: 96 bytes.
type GPULighting struct {
	AmbientColor         common.Vec3 // offset  0
	AmbientIntensity     float32     // offset 12
	DirectionalColor     common.Vec3 // offset 16
	DirectionalIntensity float32     // offset 28
	DirectionalDirection common.Vec3 // offset 32: normalized, surface toward light
	_pad0                float32     // offset 44
	PointPosition        common.Vec3 // offset 48
	PointIntensity       float32     // offset 60
	PointColor           common.Vec3 // offset 64
	PointDistance        float32     // offset 76: cutoff distance, 0 disables the window
	PointDecay           float32     // offset 80
	_pad1                [3]float32  // offset 84: padding to 96 bytes
}

// Size returns the size of the GPULighting struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (96)
func (g *GPULighting) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPULighting struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload
func (g *GPULighting) Marshal() []byte {
	buf := make([]byte, 0, g.Size())
	buf = common.Float32Bytes(buf, g.AmbientColor[:]...)
	buf = common.Float32Bytes(buf, g.AmbientIntensity)
	buf = common.Float32Bytes(buf, g.DirectionalColor[:]...)
	buf = common.Float32Bytes(buf, g.DirectionalIntensity)
	buf = common.Float32Bytes(buf, g.DirectionalDirection[:]...)
	buf = common.Float32Bytes(buf, 0)
	buf = common.Float32Bytes(buf, g.PointPosition[:]...)
	buf = common.Float32Bytes(buf, g.PointIntensity)
	buf = common.Float32Bytes(buf, g.PointColor[:]...)
	buf = common.Float32Bytes(buf, g.PointDistance, g.PointDecay)
	return common.Float32Bytes(buf, 0, 0, 0)
}

// PackLighting folds a light list into one GPULighting. The first enabled light of each type
// fills its slot; later lights of the same type are ignored. Empty slots stay zero, so they
// contribute nothing.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - GPULighting: the uniform ready to marshal
func PackLighting(lights []Light) GPULighting {
	var g GPULighting
	var seen [3]bool
	for _, l := range lights {
		if l == nil || !l.Enabled() || seen[l.Type()] {
			continue
		}
		seen[l.Type()] = true
		switch l.Type() {
		case LightTypeAmbient:
			g.AmbientColor = l.Color()
			g.AmbientIntensity = l.Intensity()
		case LightTypeDirectional:
			g.DirectionalColor = l.Color()
			g.DirectionalIntensity = l.Intensity()
			g.DirectionalDirection = l.Direction()
		case LightTypePoint:
			g.PointPosition = l.Position()
			g.PointColor = l.Color()
			g.PointIntensity = l.Intensity()
			g.PointDistance = l.Distance()
			g.PointDecay = l.Decay()
		}
	}
	return g
}
