package camera

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
)

// Mapping is the camera rail position and title opacity for one progress value.
type Mapping struct {
	CameraY     float32
	CameraZ     float32
	TextOpacity float32
}

// Map converts smoothed progress into a camera offset and title opacity. Below the split the
// camera rises from StartY to the layout's end height while the title fades out, with depth held.
// At and above the split the height is held and the camera dollies from the start depth to EndZ.
//
// Map is pure: the same inputs always produce the same Mapping.
//
// Parameters:
//   - p: smoothed progress, clamped to [0, 1]
//   - compact: whether the compact layout constants apply
//   - rail: the rail constants
//
// Returns:
//   - Mapping: camera Y, camera Z and title opacity
func Map(p float32, compact bool, rail config.RailConfig) Mapping {
	p = common.Clamp(p, 0, 1)

	endY, startZ := rail.EndYWide, rail.StartZWide
	if compact {
		endY, startZ = rail.EndYCompact, rail.StartZCompact
	}

	split := rail.Split
	if split <= 0 || split >= 1 {
		split = 0.5
	}

	if p < split {
		t := p / split
		return Mapping{
			CameraY:     common.Lerp(rail.StartY, endY, t),
			CameraZ:     startZ,
			TextOpacity: common.Lerp(1, 0, t),
		}
	}
	t := (p - split) / (1 - split)
	return Mapping{
		CameraY:     endY,
		CameraZ:     common.Lerp(startZ, rail.EndZ, t),
		TextOpacity: 0,
	}
}
