package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-5

func TestMul4Identity(t *testing.T) {
	var id, m, out [16]float32
	Identity(id[:])
	for i := range m {
		m[i] = float32(i + 1)
	}
	Mul4(out[:], id[:], m[:])
	assert.Equal(t, m, out)

	Mul4(out[:], m[:], id[:])
	assert.Equal(t, m, out)
}

func TestInvert4(t *testing.T) {
	var m, inv, prod, id [16]float32
	BuildModelMatrix(m[:], Vec3{1, 2, 3}, Vec3{0.3, -0.7, 0.1}, Vec3{2, 2, 2})
	require.True(t, Invert4(inv[:], m[:]))

	Mul4(prod[:], m[:], inv[:])
	Identity(id[:])
	for i := range prod {
		assert.InDelta(t, id[i], prod[i], tol)
	}

	var singular [16]float32
	assert.False(t, Invert4(inv[:], singular[:]))
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	var view [16]float32
	eye := Vec3{0, -6, 5}
	LookAt(view[:], eye, Vec3{0, -6, 4}, Vec3{0, 1, 0})

	p := MulVec4(view[:], [4]float32{eye[0], eye[1], eye[2], 1})
	assert.InDelta(t, 0, p[0], tol)
	assert.InDelta(t, 0, p[1], tol)
	assert.InDelta(t, 0, p[2], tol)

	ahead := MulVec4(view[:], [4]float32{0, -6, 0, 1})
	assert.InDelta(t, -5, ahead[2], tol)
}

func TestPerspectiveDepthRange(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math32.Pi/2, 1, 0.1, 100)

	near := MulVec4(proj[:], [4]float32{0, 0, -0.1, 1})
	far := MulVec4(proj[:], [4]float32{0, 0, -100, 1})
	assert.InDelta(t, 0, near[2]/near[3], tol)
	assert.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestClampLerp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(-1, 0, 1))
	assert.Equal(t, float32(1), Clamp(2, 0, 1))
	assert.Equal(t, float32(0.25), Clamp(0.25, 0, 1))
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
}

func TestDamp(t *testing.T) {
	assert.Equal(t, float32(3), Damp(3, 7, 1.2, 0))
	assert.InDelta(t, 7, Damp(3, 7, 1.2, 100), tol)

	got := Damp(0, 1, 1.2, 0.5)
	assert.InDelta(t, 1-math32.Exp(-0.6), got, tol)
}

func TestSmoothDamp(t *testing.T) {
	t.Run("converges without overshoot", func(t *testing.T) {
		var vel float32
		cur := float32(0)
		for range 120 {
			cur = SmoothDamp(cur, 1, &vel, 0.01, 1.0/60, 0.001)
			assert.LessOrEqual(t, cur, float32(1))
		}
		assert.Equal(t, float32(1), cur)
		assert.Equal(t, float32(0), vel)
	})

	t.Run("snaps inside epsilon", func(t *testing.T) {
		vel := float32(3)
		assert.Equal(t, float32(0.5), SmoothDamp(0.5005, 0.5, &vel, 0.25, 1.0/60, 0.001))
		assert.Equal(t, float32(0), vel)
	})

	t.Run("zero dt holds", func(t *testing.T) {
		var vel float32
		assert.Equal(t, float32(0.2), SmoothDamp(0.2, 1, &vel, 0.25, 0, 0.001))
	})

	t.Run("slow smooth time moves partially", func(t *testing.T) {
		var vel float32
		got := SmoothDamp(0, 1, &vel, 1, 1.0/60, 0.001)
		assert.Greater(t, got, float32(0))
		assert.Less(t, got, float32(0.1))
	})
}
