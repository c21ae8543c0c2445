package common

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTexture(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	src.Set(2, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	tex, err := DecodeTextureBytes(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(3), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)
	assert.Len(t, tex.Pixels, 3*2*4)

	off := (1*3 + 2) * 4
	assert.Equal(t, []byte{10, 20, 30, 255}, tex.Pixels[off:off+4])
}

func TestDecodeTextureInvalid(t *testing.T) {
	_, err := DecodeTextureBytes([]byte("not an image"))
	assert.Error(t, err)
}
