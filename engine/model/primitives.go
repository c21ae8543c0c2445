package model

import "github.com/chewxy/math32"

// FullscreenTriangle returns the oversized triangle that covers clip space with UV (0,0) at the
// top-left corner of the screen.
func FullscreenTriangle() ([]GPUVertex, []uint32) {
	return []GPUVertex{
		{Position: [3]float32{-1, -1, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{3, -1, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{2, 1}},
		{Position: [3]float32{-1, 3, 0}, Normal: [3]float32{0, 0, 1}, TexCoord: [2]float32{0, -1}},
	}, []uint32{0, 1, 2}
}

// Quad returns a width x height rectangle in the XY plane, centered on the origin and facing +Z.
//
// Parameters:
//   - width, height: extent in model units
//
// Returns:
//   - []GPUVertex: four corners
//   - []uint32: two counter-clockwise triangles
func Quad(width, height float32) ([]GPUVertex, []uint32) {
	hw, hh := width/2, height/2
	n := [3]float32{0, 0, 1}
	return []GPUVertex{
		{Position: [3]float32{-hw, -hh, 0}, Normal: n, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{hw, -hh, 0}, Normal: n, TexCoord: [2]float32{1, 1}},
		{Position: [3]float32{hw, hh, 0}, Normal: n, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{-hw, hh, 0}, Normal: n, TexCoord: [2]float32{0, 0}},
	}, []uint32{0, 1, 2, 0, 2, 3}
}

// UVSphere returns a latitude/longitude sphere.
//
// Parameters:
//   - radius: sphere radius
//   - segments: divisions around the Y axis (at least 3)
//   - rings: divisions from pole to pole (at least 2)
//
// Returns:
//   - []GPUVertex: (segments+1)*(rings+1) vertices
//   - []uint32: triangle list indices
func UVSphere(radius float32, segments, rings int) ([]GPUVertex, []uint32) {
	segments = max(3, segments)
	rings = max(2, rings)

	vertices := make([]GPUVertex, 0, (segments+1)*(rings+1))
	for r := 0; r <= rings; r++ {
		v := float32(r) / float32(rings)
		phi := v * math32.Pi
		for s := 0; s <= segments; s++ {
			u := float32(s) / float32(segments)
			theta := u * 2 * math32.Pi
			n := [3]float32{
				math32.Sin(phi) * math32.Sin(theta),
				math32.Cos(phi),
				math32.Sin(phi) * math32.Cos(theta),
			}
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{u, v},
			})
		}
	}

	indices := make([]uint32, 0, segments*rings*6)
	stride := uint32(segments + 1)
	for r := range uint32(rings) {
		for s := range uint32(segments) {
			a := r*stride + s
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}
	return vertices, indices
}
