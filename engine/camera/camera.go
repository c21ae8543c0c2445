package camera

import (
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/renderer/bind_group_provider"
	"github.com/chewxy/math32"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	up common.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	position common.Vec3
	target   common.Vec3

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
	inverseViewProj      [16]float32

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update().
type Camera interface {
	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// Position returns the world-space position used for the last matrix update.
	//
	// Returns:
	//   - common.Vec3: the camera position
	Position() common.Vec3

	// ViewMatrix returns the current 4x4 view matrix as 16 floats (column-major).
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix as 16 floats (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the current combined view-projection matrix as 16 floats (column-major).
	ViewProjectionMatrix() [16]float32

	// ViewportAt returns the world-space width and height of the view frustum at a distance
	// in front of the camera.
	//
	// Parameters:
	//   - distance: distance along the view direction
	//
	// Returns:
	//   - width, height: visible extent in world units
	ViewportAt(distance float32) (width, height float32)

	// Ray returns a world-space ray through a point in normalized device coordinates.
	//
	// Parameters:
	//   - ndcX, ndcY: pointer position in [-1, 1], +Y up
	//
	// Returns:
	//   - origin: the camera position
	//   - dir: the normalized ray direction
	Ray(ndcX, ndcY float32) (origin, dir common.Vec3)

	// Uniform returns the GPU uniform for the current matrices.
	//
	// Returns:
	//   - GPUCameraUniform: view-projection and position
	Uniform() GPUCameraUniform

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update reads position/target from controller and recomputes matrices.
	// Should be called once per frame. If no controller is attached, this method does nothing.
	Update()

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings: 75 degree field of view,
// near 0.1, far 100, placed at (0, 0, 6) looking down -Z until a controller is attached.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		up:       common.Vec3{0, 1, 0},
		fov:      75 * math32.Pi / 180,
		aspect:   1.0,
		near:     0.1,
		far:      100.0,
		position: common.Vec3{0, 0, 6},
		target:   common.Vec3{0, 0, 0},
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Load(), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	cameraCount.Add(1)
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) ViewportAt(distance float32) (width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	height = 2 * math32.Tan(c.fov/2) * math32.Abs(distance)
	return height * c.aspect, height
}

func (c *cameraImpl) Ray(ndcX, ndcY float32) (origin, dir common.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// unproject a point on the far half of clip space and aim at it
	far := common.MulVec4(c.inverseViewProj[:], [4]float32{ndcX, ndcY, 0.5, 1})
	if far[3] == 0 {
		return c.position, c.target.Sub(c.position).Normalize()
	}
	p := common.Vec3{far[0] / far[3], far[1] / far[3], far[2] / far[3]}
	return c.position, p.Sub(c.position).Normalize()
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return GPUCameraUniform{
		ViewProj:       c.viewProjectionMatrix,
		CameraPosition: c.position,
	}
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindGroupProvider
}

// updateMatrices recalculates the view, projection, view-projection and inverse view-projection matrices.
// Position and target come from the attached controller when there is one.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller != nil {
		c.position = c.controller.Position()
		c.target = c.controller.Target()
	}

	common.LookAt(c.viewMatrix[:], c.position, c.target, c.up)
	common.Perspective(c.projectionMatrix[:], c.fov, c.aspect, c.near, c.far)
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
	common.Invert4(c.inverseViewProj[:], c.viewProjectionMatrix[:])
}
