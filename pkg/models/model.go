// Package models provides the flat-shaded triangle models rendered by facet.
package models

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// ErrVertexIndex is returned when a triangle references a vertex that does not
// exist in the model.
var ErrVertexIndex = errors.New("triangle vertex index out of range")

// Triangle is three indices into Model.Vertices plus a flat fill color.
type Triangle struct {
	V     [3]int
	Color color.RGBA
}

// T creates a Triangle.
func T(v0, v1, v2 int, c color.RGBA) Triangle {
	return Triangle{V: [3]int{v0, v1, v2}, Color: c}
}

// Model is an indexed triangle list with a bounding sphere.
// A Model is never mutated after construction and may be shared by any number
// of instances and goroutines.
type Model struct {
	Name      string
	Vertices  []math3d.Vec3
	Triangles []Triangle

	// Bounding sphere (calculated on construction)
	BoundsCenter math3d.Vec4
	BoundsRadius float64
}

// NewModel validates the triangle indices and computes the bounding sphere.
func NewModel(name string, vertices []math3d.Vec3, triangles []Triangle) (*Model, error) {
	for i, tri := range triangles {
		for _, idx := range tri.V {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("model %q triangle %d: index %d of %d vertices: %w",
					name, i, idx, len(vertices), ErrVertexIndex)
			}
		}
	}

	m := &Model{
		Name:      name,
		Vertices:  vertices,
		Triangles: triangles,
	}
	m.BoundsCenter, m.BoundsRadius = boundingSphere(vertices)
	return m, nil
}

// boundingSphere returns the center of the axis-aligned bounds and the
// distance from it to the farthest vertex.
func boundingSphere(vertices []math3d.Vec3) (math3d.Vec4, float64) {
	if len(vertices) == 0 {
		return math3d.V4(0, 0, 0, 1), 0
	}

	lo, hi := vertices[0], vertices[0]
	for _, v := range vertices[1:] {
		lo = lo.Min(v)
		hi = hi.Max(v)
	}
	center := lo.Add(hi).Scale(0.5)

	var radiusSq float64
	for _, v := range vertices {
		radiusSq = max(radiusSq, v.Sub(center).LenSq())
	}

	return math3d.Point(center), math.Sqrt(radiusSq)
}

// Center returns the bounding sphere center as a Vec3.
func (m *Model) Center() math3d.Vec3 {
	return m.BoundsCenter.Vec3()
}

// TriangleCount returns the number of triangles.
func (m *Model) TriangleCount() int {
	return len(m.Triangles)
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int {
	return len(m.Vertices)
}

// Corners returns the three vertex positions of triangle i.
func (m *Model) Corners(i int) (v0, v1, v2 math3d.Vec3) {
	t := m.Triangles[i]
	return m.Vertices[t.V[0]], m.Vertices[t.V[1]], m.Vertices[t.V[2]]
}

// FaceNormal returns the unnormalized normal (v1-v0)×(v2-v0) of triangle i.
// Models built by this package wind triangles so the normal points outward.
func (m *Model) FaceNormal(i int) math3d.Vec3 {
	v0, v1, v2 := m.Corners(i)
	return v1.Sub(v0).Cross(v2.Sub(v0))
}
