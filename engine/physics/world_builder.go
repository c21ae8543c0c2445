package physics

import "github.com/Carmen-Shannon/oxy-warp/common"

// WorldBuilderOption configures a World created by NewWorld.
type WorldBuilderOption func(*world)

// WithGravity sets the constant acceleration applied to dynamic bodies. Zero by default.
//
// Parameters:
//   - gravity: the acceleration
//
// Returns:
//   - WorldBuilderOption: a function that applies the gravity option to a world
func WithGravity(gravity common.Vec3) WorldBuilderOption {
	return func(w *world) {
		w.gravity = gravity
	}
}
