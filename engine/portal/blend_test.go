package portal

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/stretchr/testify/assert"
)

const dt = float32(1) / 60

func TestBlendTarget(t *testing.T) {
	cfg := config.Default().Portal
	assert.Zero(t, BlendTarget(0, cfg))
	assert.Zero(t, BlendTarget(0.75, cfg))
	assert.InDelta(t, 0.5, BlendTarget(0.85, cfg), 1e-5)
	assert.Equal(t, float32(1), BlendTarget(0.95, cfg))
	assert.Equal(t, float32(1), BlendTarget(1, cfg))

	prev := float32(0)
	for p := float32(0.75); p <= 0.95; p += 0.001 {
		got := BlendTarget(p, cfg)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	cfg.Range = 0
	assert.Equal(t, float32(1), BlendTarget(0.8, cfg))
	assert.Zero(t, BlendTarget(0.7, cfg))
}

func TestBlendSettles(t *testing.T) {
	tests := []struct {
		p    float32
		want float32
	}{
		{0.5, 0},
		{0.74, 0},
		{0.85, 0.5},
		{0.96, 1},
	}
	for _, tt := range tests {
		b := NewBlend()
		for range 120 {
			b.Update(tt.p, dt)
		}
		assert.InDelta(t, tt.want, b.Value(), 1e-3, "p=%v", tt.p)
	}
}

func TestBlendReachesOneAtRangeEnd(t *testing.T) {
	b := NewBlend()
	for range 600 {
		b.Update(0.95, dt)
	}
	assert.Equal(t, float32(1), b.Target())
	assert.Equal(t, float32(1), b.Value())
}

func TestBlendIsFiltered(t *testing.T) {
	cfg := config.Default().Portal
	cfg.SmoothTime = 0.5
	b := NewBlend(WithConfig(cfg))

	b.Update(1, dt)
	assert.Equal(t, float32(1), b.Target())
	assert.Greater(t, b.Value(), float32(0))
	assert.Less(t, b.Value(), float32(0.1))
}

func TestBlendVisibility(t *testing.T) {
	b := NewBlend()
	b.Update(0.2, dt)
	assert.False(t, b.Visible())
	for range 60 {
		b.Update(1, dt)
	}
	assert.True(t, b.Visible())
}

func TestBlendFlags(t *testing.T) {
	b := NewBlend()

	b.Update(0.7, dt)
	assert.False(t, b.Scattered())
	assert.False(t, b.ScatterRose())
	assert.False(t, b.EffectsEnabled())

	b.Update(0.8, dt)
	assert.True(t, b.Scattered())
	assert.True(t, b.ScatterRose())

	b.Update(0.95, dt)
	assert.False(t, b.ScatterRose(), "the scatter edge fires once")
	assert.True(t, b.EffectsEnabled())

	b.Update(0.5, dt)
	assert.False(t, b.Scattered())
	assert.False(t, b.EffectsEnabled())
	b.Update(0.9, dt)
	assert.True(t, b.ScatterRose())
}
