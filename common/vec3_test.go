package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{3, 3, 3}, b.Sub(a))
	assert.Equal(t, float32(32), a.Dot(b))
	assert.Equal(t, Vec3{0, 0, 1}, Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0}))
	assert.InDelta(t, 5, Vec3{3, 4, 0}.Len(), tol)
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.Equal(t, Vec3{2.5, 3.5, 4.5}, a.Lerp(b, 0.5))
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xff8000)
	assert.InDelta(t, 1, c[0], tol)
	assert.InDelta(t, 128.0/255, c[1], tol)
	assert.InDelta(t, 0, c[2], tol)
}

func TestRaySphere(t *testing.T) {
	tests := []struct {
		name   string
		origin Vec3
		dir    Vec3
		hit    bool
		dist   float32
	}{
		{"head on", Vec3{0, 0, 10}, Vec3{0, 0, -1}, true, 9},
		{"miss", Vec3{0, 3, 10}, Vec3{0, 0, -1}, false, 0},
		{"inside", Vec3{0, 0, 0}, Vec3{0, 0, -1}, true, 1},
		{"behind", Vec3{0, 0, 10}, Vec3{0, 0, 1}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := RaySphere(tt.origin, tt.dir, Vec3{}, 1)
			assert.Equal(t, tt.hit, ok)
			if tt.hit {
				assert.InDelta(t, tt.dist, d, tol)
			}
		})
	}
}

func TestFloat32Bytes(t *testing.T) {
	b := Float32Bytes(nil, 1, 2)
	assert.Len(t, b, 8)
	assert.Equal(t, []byte{0, 0, 0x80, 0x3f}, b[:4])
}
