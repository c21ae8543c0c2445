package camera

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/chewxy/math32"
)

type CameraBuilderOption func(*cameraImpl)

// WithConfig applies the field of view (degrees) and clip planes from the camera config.
//
// Parameters:
//   - cfg: the camera section of the configuration
//
// Returns:
//   - CameraBuilderOption: a function that sets the perspective parameters
func WithConfig(cfg config.CameraConfig) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = cfg.FOV * math32.Pi / 180
		c.near = cfg.Near
		c.far = cfg.Far
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithPosition places a camera that has no controller.
//
// Parameters:
//   - position: world-space eye position
//   - target: world-space look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets position and target
func WithPosition(position, target common.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
		c.target = target
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrices from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}
