package warp

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-warp/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1) / 60

func TestVelocityStartsIdle(t *testing.T) {
	v := NewVelocity()
	assert.InDelta(t, 0.12, v.Value(), 1e-6)
	assert.Equal(t, StateIdle, v.State())
	assert.False(t, v.Latched())
	assert.False(t, v.Activated())
	assert.Zero(t, v.Aberration())
}

func TestVelocityReachesMaxWithinThreeSeconds(t *testing.T) {
	v := NewVelocity()
	for range 180 {
		v.Update(dt, true)
	}
	assert.True(t, v.Latched())
}

func TestVelocityPhases(t *testing.T) {
	v := NewVelocity()
	var (
		order     []State
		edges     int
		activated bool
	)
	for range 400 {
		tr := v.Update(dt, true)
		if tr.Changed() || len(order) == 0 {
			order = append(order, tr.To)
		}
		if tr.ActivatedChanged {
			edges++
			activated = tr.Activated
		}
	}
	assert.Equal(t, []State{StateAccelerating, StateMaxReached, StateDecelerating, StateActivated}, order)
	assert.Equal(t, 1, edges, "activation notifies once")
	assert.True(t, activated)
	assert.True(t, v.Activated())
	assert.InDelta(t, 0.01, v.Value(), 1e-6, "deceleration stops at the floor")
}

func TestVelocityCeiling(t *testing.T) {
	cfg := config.Default().Warp
	cfg.Latch = 10
	v := NewVelocity(WithVelocityConfig(cfg))
	for range 600 {
		v.Update(dt, true)
	}
	assert.InDelta(t, 2, v.Value(), 1e-6)
	assert.Equal(t, StateAccelerating, v.State())
}

func TestVelocityDisableIsAHardReset(t *testing.T) {
	v := NewVelocity()
	for range 400 {
		v.Update(dt, true)
	}
	require.True(t, v.Activated())

	tr := v.Update(dt, false)
	assert.Equal(t, StateActivated, tr.From)
	assert.Equal(t, StateIdle, tr.To)
	assert.True(t, tr.ActivatedChanged)
	assert.False(t, tr.Activated)
	assert.InDelta(t, 0.12, v.Value(), 1e-6)
	assert.False(t, v.Latched())

	tr = v.Update(dt, false)
	assert.False(t, tr.ActivatedChanged)
	assert.False(t, tr.Changed())
}

func TestVelocityDisableMidAcceleration(t *testing.T) {
	v := NewVelocity()
	for range 30 {
		v.Update(dt, true)
	}
	tr := v.Update(dt, false)
	assert.False(t, tr.ActivatedChanged)
	assert.InDelta(t, 0.12, v.Value(), 1e-6)
}

func TestVelocityClampsDelta(t *testing.T) {
	v := NewVelocity()
	v.Update(5, true)
	assert.InDelta(t, 0.12+0.1*0.6, v.Value(), 1e-6)
}

func TestAberration(t *testing.T) {
	cfg := config.Default().Warp
	tests := []struct {
		name     string
		velocity float32
		want     float32
	}{
		{"below the floor", 0.05, 0},
		{"floor", 0.1, 0},
		{"half", 1.05, 0.003},
		{"ceiling", 2, 0.006},
		{"above", 3, 0.006},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AberrationOffset(tt.velocity, cfg), 1e-6)
		})
	}

	v := NewVelocity()
	v.Update(dt, true)
	assert.InDelta(t, AberrationOffset(v.Value(), cfg), v.Aberration(), 1e-9)
	v.Update(dt, false)
	assert.Zero(t, v.Aberration())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "max-reached", StateMaxReached.String())
	assert.Equal(t, "unknown", State(42).String())
}
