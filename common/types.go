// package common contains the plain data types and math helpers shared across the engine packages.
package common

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is the RGBA pixel data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	MagFilter, MinFilter                     wgpu.FilterMode
	MipmapFilter                             wgpu.MipmapFilterMode
	LodMinClamp, LodMaxClamp                 float32
	Compare                                  wgpu.CompareFunction
	MaxAnisotropy                            uint16
}

// RepeatSampler returns a sampler configuration that tiles in every direction with the given filter.
//
// Parameters:
//   - filter: magnification and minification filter
//   - mip: mipmap filter
//
// Returns:
//   - SamplerStagingData: the sampler configuration
func RepeatSampler(filter wgpu.FilterMode, mip wgpu.MipmapFilterMode) SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeRepeat,
		AddressModeV:  wgpu.AddressModeRepeat,
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     filter,
		MinFilter:     filter,
		MipmapFilter:  mip,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// ClampSampler returns a linear sampler clamped to the texture edges.
func ClampSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}

// DecodeTexture decodes an encoded image (PNG, JPEG, BMP or WebP) into RGBA staging data.
//
// Parameters:
//   - r: the encoded image stream
//
// Returns:
//   - *TextureStagingData: the decoded RGBA pixels
//   - error: error if the format is unknown or decoding fails
func DecodeTexture(r io.Reader) (*TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}, nil
}

// DecodeTextureBytes is DecodeTexture over an in-memory buffer.
func DecodeTextureBytes(data []byte) (*TextureStagingData, error) {
	return DecodeTexture(bytes.NewReader(data))
}
