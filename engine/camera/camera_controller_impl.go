package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
)

// railControllerImpl is the implementation of RailController.
type railControllerImpl struct {
	mu *sync.Mutex

	mapping Mapping
}

// Compile-time interface compliance check
var _ RailController = &railControllerImpl{}

// NewRailController creates a RailController placed at the p = 0 point of the rail.
//
// Parameters:
//   - rail: the rail constants
//   - compact: whether the compact layout constants apply
//
// Returns:
//   - RailController: the newly created controller
func NewRailController(rail config.RailConfig, compact bool) RailController {
	return &railControllerImpl{
		mu:      &sync.Mutex{},
		mapping: Map(0, compact, rail),
	}
}

func (rc *railControllerImpl) Position() common.Vec3 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return common.Vec3{0, rc.mapping.CameraY, rc.mapping.CameraZ}
}

func (rc *railControllerImpl) Target() common.Vec3 {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return common.Vec3{0, rc.mapping.CameraY, rc.mapping.CameraZ - 1}
}

func (rc *railControllerImpl) Apply(m Mapping) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.mapping = m
}

func (rc *railControllerImpl) Mapping() Mapping {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.mapping
}
