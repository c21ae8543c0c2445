package loader

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-warp/common"
)

// NoiseSize is the edge length of generated noise textures.
const NoiseSize = 256

// noiseShift is the offset between the red and green channels of the value noise, the
// per-slice step the raymarch shader uses to fake a third dimension.
var noiseShift = [2]int{37, 17}

// GenerateNoise builds a tiling value noise texture. Red is uniform random; green is red
// shifted by noiseShift so adjacent z slices are one texture fetch.
//
// Parameters:
//   - size: the edge length in pixels
//   - seed: the generator seed
//
// Returns:
//   - *common.TextureStagingData: the RGBA pixels
func GenerateNoise(size int, seed uint64) *common.TextureStagingData {
	size = max(1, size)
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	red := make([]byte, size*size)
	for i := range red {
		red[i] = byte(rng.UintN(256))
	}

	pixels := make([]byte, size*size*4)
	for y := range size {
		for x := range size {
			sx := ((x-noiseShift[0])%size + size) % size
			sy := ((y-noiseShift[1])%size + size) % size
			o := (y*size + x) * 4
			pixels[o+0] = red[y*size+x]
			pixels[o+1] = red[sy*size+sx]
			pixels[o+2] = 0
			pixels[o+3] = 255
		}
	}
	return &common.TextureStagingData{Pixels: pixels, Width: uint32(size), Height: uint32(size)}
}

// GenerateDither builds a grayscale white noise texture used in place of blue noise.
//
// Parameters:
//   - size: the edge length in pixels
//   - seed: the generator seed
//
// Returns:
//   - *common.TextureStagingData: the RGBA pixels
func GenerateDither(size int, seed uint64) *common.TextureStagingData {
	size = max(1, size)
	rng := rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
	pixels := make([]byte, size*size*4)
	for i := 0; i < len(pixels); i += 4 {
		v := byte(rng.UintN(256))
		pixels[i], pixels[i+1], pixels[i+2], pixels[i+3] = v, v, v, 255
	}
	return &common.TextureStagingData{Pixels: pixels, Width: uint32(size), Height: uint32(size)}
}
