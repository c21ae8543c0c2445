// package title rasterizes the landing title once and draws it as a textured quad whose
// opacity follows the camera mapping.
package title

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Text is the title copy on wide layouts.
const Text = "Scroll down to enter my universe"

// Color is the title color, #434183.
var Color = color.RGBA{R: 0x43, G: 0x41, B: 0x83, A: 0xff}

// Lines returns the title split for the layout. Compact layouts break after "Scroll down".
//
// Parameters:
//   - compact: whether the layout is compact
//
// Returns:
//   - []string: the title lines
func Lines(compact bool) []string {
	if compact {
		return []string{"Scroll down", "to enter my universe"}
	}
	return []string{Text}
}

// Raster is a rasterized block of text.
type Raster struct {
	// Texture holds straight-alpha RGBA pixels.
	Texture *common.TextureStagingData
	// EmPixels is the font size the block was rasterized at.
	EmPixels float64
}

// Rasterize renders centered lines of the built-in sans font as straight-alpha RGBA pixels in a
// single color.
//
// Parameters:
//   - lines: the text lines, top to bottom
//   - emPixels: the font size in pixels
//   - c: the text color; its alpha is ignored
//
// Returns:
//   - Raster: the pixels and the size they were rendered at
//   - error: an error if the font cannot be loaded or there is nothing to draw
func Rasterize(lines []string, emPixels float64, c color.RGBA) (Raster, error) {
	if len(lines) == 0 || emPixels <= 0 {
		return Raster{}, errors.New("title: nothing to rasterize")
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return Raster{}, fmt.Errorf("title: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    emPixels,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return Raster{}, fmt.Errorf("title: face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	pad := int(emPixels / 8)

	widths := make([]int, len(lines))
	maxWidth := 0
	for i, line := range lines {
		widths[i] = font.MeasureString(face, line).Ceil()
		maxWidth = max(maxWidth, widths[i])
	}
	width := maxWidth + 2*pad
	height := lineHeight*len(lines) + 2*pad

	mask := image.NewAlpha(image.Rect(0, 0, width, height))
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face}
	for i, line := range lines {
		x := pad + (maxWidth-widths[i])/2
		y := pad + i*lineHeight + metrics.Ascent.Ceil()
		d.Dot = fixed.P(x, y)
		d.DrawString(line)
	}

	pixels := make([]byte, width*height*4)
	for i, a := range mask.Pix {
		pixels[i*4+0] = c.R
		pixels[i*4+1] = c.G
		pixels[i*4+2] = c.B
		pixels[i*4+3] = a
	}
	return Raster{
		Texture: &common.TextureStagingData{
			Pixels: pixels,
			Width:  uint32(width),
			Height: uint32(height),
		},
		EmPixels: emPixels,
	}, nil
}

// WorldSize converts the raster extent to world units for a font size in world units.
//
// Parameters:
//   - fontSize: the em size in world units
//
// Returns:
//   - float32: the quad width
//   - float32: the quad height
func (r Raster) WorldSize(fontSize float32) (float32, float32) {
	if r.Texture == nil || r.EmPixels <= 0 {
		return 0, 0
	}
	unitsPerPixel := fontSize / float32(r.EmPixels)
	return float32(r.Texture.Width) * unitsPerPixel, float32(r.Texture.Height) * unitsPerPixel
}
