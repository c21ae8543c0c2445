package steering

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/engine/physics"
)

// BodyCount is the fixed number of steered bodies.
const BodyCount = 4

// BodySpec is the construction-time description of one body.
type BodySpec struct {
	ID    string
	Spawn common.Vec3
	// Slot is the target position assigned to this body before any cycling.
	Slot common.Vec3
	// HoverScale and DefaultScale are the display scales the body eases between.
	HoverScale   float32
	DefaultScale float32
	Color        uint32
}

// DefaultSpecs returns the four reference bodies for a layout scaling factor s.
//
// Parameters:
//   - s: the layout scaling factor
//
// Returns:
//   - [BodyCount]BodySpec: spawns, slots and display scales
func DefaultSpecs(s float32) [BodyCount]BodySpec {
	return [BodyCount]BodySpec{
		{ID: "about-me", Spawn: common.Vec3{-20, 20, 20}, Slot: common.Vec3{5.5 * s, 2.3 * s, -0.6 * s}, HoverScale: 2, DefaultScale: 1.4, Color: 0xd9542b},
		{ID: "interests", Spawn: common.Vec3{20, -20, -10}, Slot: common.Vec3{-5 * s, 1.2 * s, -0.7 * s}, HoverScale: 1.2, DefaultScale: 0.9, Color: 0xe0a040},
		{ID: "skills", Spawn: common.Vec3{20, 20, 20}, Slot: common.Vec3{1 * s, 0, -0.6 * s}, HoverScale: 5, DefaultScale: 3.5, Color: 0xb08d57},
		{ID: "contact", Spawn: common.Vec3{-20, -20, -5}, Slot: common.Vec3{-2, -3.2 * s, -1.1 * s}, HoverScale: 2, DefaultScale: 1.4, Color: 0x3d6fd9},
	}
}

// steeredBody is the orchestration state of one body. Position and velocity live in the
// physics world under handle.
type steeredBody struct {
	spec    BodySpec
	handle  physics.Handle
	payload common.Payload

	initialized bool
	resetting   bool
	hovered     bool

	displayScale float32
	rotation     common.Vec3
}

// Body is a read-only snapshot of one body.
type Body struct {
	ID          string
	Handle      physics.Handle
	Spawn       common.Vec3
	Target      common.Vec3
	Position    common.Vec3
	Activated   bool
	Initialized bool
	Resetting   bool
	Hovered     bool
	// DisplayScale is the eased display scale relative to DefaultScale, 1 at rest.
	DisplayScale float32
	Rotation     common.Vec3
	Color        uint32
	Payload      common.Payload
}
