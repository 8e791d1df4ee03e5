package models

import (
	"image/color"

	"github.com/taigrr/facet/pkg/math3d"
)

// Face colors of the debug cube.
var (
	Red    = color.RGBA{255, 0, 0, 255}
	Green  = color.RGBA{0, 255, 0, 255}
	Blue   = color.RGBA{0, 0, 255, 255}
	Yellow = color.RGBA{255, 255, 0, 255}
	Purple = color.RGBA{128, 0, 255, 255}
	Cyan   = color.RGBA{0, 255, 255, 255}
)

// Cube returns an axis-aligned cube centered at the origin with the given edge
// length: 8 vertices, 12 triangles, one color per face.
func Cube(size float64) *Model {
	h := size / 2
	vertices := []math3d.Vec3{
		{X: h, Y: h, Z: h},
		{X: -h, Y: h, Z: h},
		{X: -h, Y: -h, Z: h},
		{X: h, Y: -h, Z: h},
		{X: h, Y: h, Z: -h},
		{X: -h, Y: h, Z: -h},
		{X: -h, Y: -h, Z: -h},
		{X: h, Y: -h, Z: -h},
	}

	triangles := []Triangle{
		T(0, 1, 2, Red), // +Z
		T(0, 2, 3, Red),
		T(4, 0, 3, Green), // +X
		T(4, 3, 7, Green),
		T(5, 4, 7, Blue), // -Z
		T(5, 7, 6, Blue),
		T(1, 5, 6, Yellow), // -X
		T(1, 6, 2, Yellow),
		T(4, 5, 1, Purple), // +Y
		T(4, 1, 0, Purple),
		T(2, 6, 7, Cyan), // -Y
		T(2, 7, 3, Cyan),
	}

	return mustModel(NewModel("cube", vertices, triangles))
}

// Tetrahedron returns a regular tetrahedron inscribed in a sphere of the given
// radius, one color per face.
func Tetrahedron(radius float64) *Model {
	s := radius / 1.7320508075688772 // radius / sqrt(3)
	vertices := []math3d.Vec3{
		{X: s, Y: s, Z: s},
		{X: -s, Y: -s, Z: s},
		{X: -s, Y: s, Z: -s},
		{X: s, Y: -s, Z: -s},
	}

	triangles := []Triangle{
		T(0, 1, 3, Red),
		T(0, 2, 1, Green),
		T(0, 3, 2, Blue),
		T(1, 2, 3, Yellow),
	}

	return mustModel(NewModel("tetrahedron", vertices, triangles))
}

func mustModel(m *Model, err error) *Model {
	if err != nil {
		panic(err)
	}
	return m
}
