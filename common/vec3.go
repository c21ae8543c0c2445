package common

import "github.com/chewxy/math32"

// Vec3 is a three-component float32 vector used for positions, velocities and colors.
type Vec3 [3]float32

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

func (v Vec3) Scale(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

func (v Vec3) Dot(o Vec3) float32 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

func (v Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length, or the zero vector if v has no length.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp interpolates each component from v toward o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{Lerp(v[0], o[0], t), Lerp(v[1], o[1], t), Lerp(v[2], o[2], t)}
}

// HexColor converts a 0xRRGGBB value to a linear-ish [0,1] RGB triple.
//
// Parameters:
//   - hex: packed color, for example 0x8b8abd
//
// Returns:
//   - Vec3: the red, green and blue channels in [0, 1]
func HexColor(hex uint32) Vec3 {
	return Vec3{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
	}
}

// RaySphere intersects a ray with a sphere.
//
// Parameters:
//   - origin: ray origin
//   - dir: normalized ray direction
//   - center: sphere center
//   - radius: sphere radius
//
// Returns:
//   - float32: distance along the ray to the nearest hit in front of origin
//   - bool: true if the ray hits the sphere
func RaySphere(origin, dir, center Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math32.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
