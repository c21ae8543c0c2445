// package portal reveals the warp scene through a portal surface. The blend factor follows the
// scroll progress through a critically damped filter, and the composite stage morphs the portal
// plane to full screen as the blend completes.
package portal

import (
	"github.com/Carmen-Shannon/oxy-warp/common"
	"github.com/Carmen-Shannon/oxy-warp/config"
)

// Blend tracks the portal blend factor and the progress flags derived alongside it.
type Blend interface {
	// Update recomputes the target blend from progress and damps the blend toward it.
	//
	// Parameters:
	//   - p: smoothed progress
	//   - dt: elapsed seconds
	Update(p, dt float32)

	// Target returns the undamped blend of the last Update.
	Target() float32

	// Value returns the damped blend in [0, 1].
	Value() float32

	// Visible reports whether the blend is above the visibility threshold.
	Visible() bool

	// EffectsEnabled reports whether progress is past the warp effects threshold.
	EffectsEnabled() bool

	// Scattered reports whether progress is past the particle scatter threshold.
	Scattered() bool

	// ScatterRose reports whether the last Update crossed the scatter threshold upward.
	ScatterRose() bool
}

type blendImpl struct {
	cfg config.PortalConfig

	target   float32
	value    float32
	velocity float32

	effects   bool
	scattered bool
	rose      bool
}

var _ Blend = &blendImpl{}

// NewBlend creates a Blend at zero.
//
// Parameters:
//   - options: functional options for the blend
//
// Returns:
//   - Blend: the portal blend
func NewBlend(options ...BlendBuilderOption) Blend {
	b := &blendImpl{cfg: config.Default().Portal}
	for _, opt := range options {
		opt(b)
	}
	return b
}

// BlendTarget is the undamped blend for a progress value: zero below Start, one above
// Start+Range and linear between.
//
// Parameters:
//   - p: smoothed progress
//   - cfg: the portal configuration
//
// Returns:
//   - float32: the target blend in [0, 1]
func BlendTarget(p float32, cfg config.PortalConfig) float32 {
	if cfg.Range <= 0 {
		if p >= cfg.Start {
			return 1
		}
		return 0
	}
	// the end point is tested directly, the division rounds just below 1 in float32
	if p >= cfg.Start+cfg.Range {
		return 1
	}
	return common.Clamp((p-cfg.Start)/cfg.Range, 0, 1)
}

func (b *blendImpl) Update(p, dt float32) {
	b.target = BlendTarget(p, b.cfg)
	b.value = common.Clamp(common.SmoothDamp(b.value, b.target, &b.velocity, b.cfg.SmoothTime, dt, b.cfg.Epsilon), 0, 1)

	b.effects = p > b.cfg.EffectsAbove
	scattered := p > b.cfg.ScatterAbove
	b.rose = scattered && !b.scattered
	b.scattered = scattered
}

func (b *blendImpl) Target() float32 {
	return b.target
}

func (b *blendImpl) Value() float32 {
	return b.value
}

func (b *blendImpl) Visible() bool {
	return b.value > b.cfg.VisibleThreshold
}

func (b *blendImpl) EffectsEnabled() bool {
	return b.effects
}

func (b *blendImpl) Scattered() bool {
	return b.scattered
}

func (b *blendImpl) ScatterRose() bool {
	return b.rose
}
