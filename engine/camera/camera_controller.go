package camera

import "github.com/Carmen-Shannon/oxy-warp/common"

// CameraController owns the positional state (position, target) the Camera reads each Update.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: world-space camera position
	Position() common.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Vec3: world-space target position
	Target() common.Vec3
}

// RailController is a CameraController that rides the scroll rail. The camera sits on the
// X = 0 plane at the mapped height and depth and always looks down -Z.
type RailController interface {
	CameraController

	// Apply moves the controller to a mapped rail position.
	//
	// Parameters:
	//   - m: the mapping produced by Map
	Apply(m Mapping)

	// Mapping returns the most recently applied mapping.
	//
	// Returns:
	//   - Mapping: the last mapping
	Mapping() Mapping
}
