package renderer

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// renderTarget is the implementation of RenderTarget.
type renderTarget struct {
	label string

	texture *wgpu.Texture
	view    *wgpu.TextureView

	// depthTexture and depthView are nil for color-only targets.
	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	width, height int
}

// RenderTarget is an offscreen color texture (OffscreenFormat, single sample) that can be rendered
// into with BeginOffscreenPass and then sampled by later passes through its View.
type RenderTarget interface {
	// Label returns the debug label of the target.
	Label() string

	// View returns the color view. Bind it with BindGroupProvider.BorrowTextureView so the
	// provider never releases it.
	View() *wgpu.TextureView

	// DepthView returns the depth view, or nil for color-only targets.
	DepthView() *wgpu.TextureView

	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Release frees the textures and views of the target.
	Release()
}

var _ RenderTarget = &renderTarget{}

func (t *renderTarget) Label() string {
	return t.label
}

func (t *renderTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *renderTarget) DepthView() *wgpu.TextureView {
	return t.depthView
}

func (t *renderTarget) Width() int {
	return t.width
}

func (t *renderTarget) Height() int {
	return t.height
}

func (t *renderTarget) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
	if t.depthView != nil {
		t.depthView.Release()
		t.depthView = nil
	}
	if t.depthTexture != nil {
		t.depthTexture.Release()
		t.depthTexture = nil
	}
}
