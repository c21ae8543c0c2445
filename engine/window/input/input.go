// package input converts raw window events into the deltas and coordinates the scene consumes.
// It has no platform dependencies.
package input

import "github.com/Carmen-Shannon/oxy-warp/common"

// WheelPixels is the scroll distance of one wheel notch, in pixels.
const WheelPixels = 100

// Cycle directions reported for the arrow keys.
const (
	CyclePrevious = -1
	CycleNext     = 1
)

// pageFraction is the share of the viewport a page key scrolls.
const pageFraction = 0.9

// jumpPixels is far enough to reach either end of the progress range.
const jumpPixels = 1e6

// KeyScroll maps the page navigation keys to a scroll delta the way a document viewer does.
//
// Parameters:
//   - keyCode: the virtual key code
//   - height: the viewport height in pixels, the size of one page
//
// Returns:
//   - float32: the delta in pixels, positive moving forward
//   - bool: false if the key does not scroll
func KeyScroll(keyCode uint32, height int) (float32, bool) {
	page := float32(max(height, 0)) * pageFraction
	switch keyCode {
	case common.KeyDown:
		return WheelPixels, true
	case common.KeyUp:
		return -WheelPixels, true
	case common.KeySpace, common.KeyPageDown:
		return page, true
	case common.KeyPageUp:
		return -page, true
	case common.KeyEnd:
		return jumpPixels, true
	case common.KeyHome:
		return -jumpPixels, true
	}
	return 0, false
}

// WheelDelta converts a wheel offset to a pixel delta that grows while scrolling down.
//
// Parameters:
//   - yoff: the wheel offset, positive when scrolling up
//
// Returns:
//   - float32: the delta in pixels
func WheelDelta(yoff float64) float32 {
	return float32(-yoff * WheelPixels)
}

// CursorNDC converts a cursor position in window pixels to normalized device coordinates,
// with +Y up. A degenerate window maps to the origin.
//
// Parameters:
//   - x, y: the cursor position, origin at the top left
//   - width, height: the window size in pixels
//
// Returns:
//   - float32: NDC x in [-1, 1] inside the window
//   - float32: NDC y in [-1, 1] inside the window
func CursorNDC(x, y float64, width, height int) (float32, float32) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return float32(2*x/float64(width) - 1), float32(1 - 2*y/float64(height))
}

// Drag emulates touch scrolling with a held button. Moving up scrolls forward.
type Drag struct {
	active       bool
	lastX, lastY float64
}

// Begin starts a drag at a cursor position.
func (d *Drag) Begin(x, y float64) {
	d.active = true
	d.lastX, d.lastY = x, y
}

// End stops the drag.
func (d *Drag) End() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}

// Move advances the drag to a cursor position.
//
// Parameters:
//   - x, y: the cursor position in pixels
//
// Returns:
//   - float32: the vertical delta since the last position, positive when moving up
//   - float32: the horizontal delta since the last position
//   - bool: false when no drag is active
func (d *Drag) Move(x, y float64) (float32, float32, bool) {
	if !d.active {
		return 0, 0, false
	}
	dy := float32(d.lastY - y)
	dx := float32(x - d.lastX)
	d.lastX, d.lastY = x, y
	return dy, dx, true
}
