// package warp implements the warp scene: the velocity state machine that drives the particle
// streaks and the "activated" signal, and the wrapping particle field itself.
package warp

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
)

// State is the phase of the warp velocity.
type State int

const (
	// StateIdle is the disabled phase: velocity rests at the baseline.
	StateIdle State = iota
	// StateAccelerating ramps velocity toward the ceiling.
	StateAccelerating
	// StateMaxReached is the single frame on which the latch trips.
	StateMaxReached
	// StateDecelerating bleeds velocity off while the latch holds.
	StateDecelerating
	// StateActivated is the resting phase after the warp: velocity is low and the latch holds.
	StateActivated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccelerating:
		return "accelerating"
	case StateMaxReached:
		return "max-reached"
	case StateDecelerating:
		return "decelerating"
	case StateActivated:
		return "activated"
	}
	return "unknown"
}

// Transition is the outcome of one Velocity.Update. ActivatedChanged is true only on the frame
// the activated signal flips, so consumers can react to edges instead of levels.
type Transition struct {
	From             State
	To               State
	ActivatedChanged bool
	Activated        bool
}

// Changed reports whether the state moved this frame.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Velocity is the warp velocity state machine.
type Velocity interface {
	// Update advances the machine by one frame.
	// Disabling resets velocity to the baseline and clears the latch on the same frame.
	//
	// Parameters:
	//   - dt: elapsed seconds, clamped to the configured maximum
	//   - enabled: whether the warp effects are enabled
	//
	// Returns:
	//   - Transition: the state change of this frame
	Update(dt float32, enabled bool) Transition

	// Value returns the current velocity.
	Value() float32

	// State returns the current phase.
	State() State

	// Latched reports whether the velocity has reached the latch threshold since enabling.
	Latched() bool

	// Activated reports whether the warp scene is active.
	Activated() bool

	// Enabled reports the enabled flag of the last Update.
	Enabled() bool

	// Aberration returns the chromatic aberration offset for the current velocity, zero while
	// disabled.
	Aberration() float32
}

type velocityImpl struct {
	cfg config.WarpConfig

	value     float32
	latched   bool
	activated bool
	enabled   bool
	state     State
}

var _ Velocity = &velocityImpl{}

// NewVelocity creates an idle machine at the baseline velocity.
//
// Parameters:
//   - options: functional options for the machine
//
// Returns:
//   - Velocity: the state machine
func NewVelocity(options ...VelocityBuilderOption) Velocity {
	v := &velocityImpl{cfg: config.Default().Warp}
	for _, opt := range options {
		opt(v)
	}
	v.value = v.cfg.Baseline
	return v
}

func (v *velocityImpl) Update(dt float32, enabled bool) Transition {
	from := v.state
	wasActivated := v.activated
	v.enabled = enabled

	if !enabled {
		v.value = v.cfg.Baseline
		v.latched = false
		v.activated = false
		v.state = StateIdle
		return v.transition(from, wasActivated)
	}

	dt = common.Clamp(dt, 0, v.cfg.MaxDelta)
	tripped := false
	if !v.latched {
		v.value = min(v.cfg.Max, v.value+dt*v.cfg.Accel)
		if v.value >= v.cfg.Latch {
			v.latched = true
			tripped = true
		}
	}

	v.activated = v.latched && v.value <= v.cfg.ActivateBelow

	if v.latched && v.value > v.cfg.DecelFloor {
		v.value = max(v.cfg.DecelFloor, v.value-v.cfg.Decel*dt)
	}

	switch {
	case !v.latched:
		v.state = StateAccelerating
	case tripped:
		v.state = StateMaxReached
	case v.activated:
		v.state = StateActivated
	default:
		v.state = StateDecelerating
	}
	return v.transition(from, wasActivated)
}

func (v *velocityImpl) transition(from State, wasActivated bool) Transition {
	return Transition{
		From:             from,
		To:               v.state,
		ActivatedChanged: wasActivated != v.activated,
		Activated:        v.activated,
	}
}

func (v *velocityImpl) Value() float32 {
	return v.value
}

func (v *velocityImpl) State() State {
	return v.state
}

func (v *velocityImpl) Latched() bool {
	return v.latched
}

func (v *velocityImpl) Activated() bool {
	return v.activated
}

func (v *velocityImpl) Enabled() bool {
	return v.enabled
}

func (v *velocityImpl) Aberration() float32 {
	if !v.enabled {
		return 0
	}
	return AberrationOffset(v.value, v.cfg)
}

// AberrationOffset maps a velocity onto the chromatic aberration offset: the velocity is
// normalized between 0.1 and the ceiling, clamped to [0, 1] and scaled by the configured
// maximum offset.
//
// Parameters:
//   - velocity: the warp velocity
//   - cfg: the warp configuration
//
// Returns:
//   - float32: the offset in UV units
func AberrationOffset(velocity float32, cfg config.WarpConfig) float32 {
	span := cfg.Max - 0.1
	if span <= 0 {
		return 0
	}
	return common.Clamp((velocity-0.1)/span, 0, 1) * cfg.Aberration
}
