package render

import (
	"fmt"
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Plane is a half-space boundary: a point p is inside when
// Normal·p + D > 0. Normals point into the frustum.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = inside, negative = outside.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Inside reports whether point is strictly on the inner side of the plane.
func (p Plane) Inside(point math3d.Vec3) bool {
	return p.DistanceToPoint(point) > 0
}

// Clip plane indices within the slice returned by ClipPlanes.
const (
	PlaneNear = iota
	PlaneLeft
	PlaneRight
	PlaneTop
	PlaneBottom
)

// ClipPlanes builds the five planes of a symmetric view pyramid with its apex
// at the camera, looking down +Z. fov is the full field of view in radians,
// applied both horizontally and vertically.
func ClipPlanes(fov, near float64) []Plane {
	half := fov / 2
	s, c := math.Sin(half), math.Cos(half)
	return []Plane{
		PlaneNear:   {Normal: math3d.V3(0, 0, 1), D: -near},
		PlaneLeft:   {Normal: math3d.V3(c, 0, s)},
		PlaneRight:  {Normal: math3d.V3(-c, 0, s)},
		PlaneTop:    {Normal: math3d.V3(0, -c, s)},
		PlaneBottom: {Normal: math3d.V3(0, c, s)},
	}
}

// SphereTest selects how a bounding sphere is compared against a clip plane.
type SphereTest int

const (
	// SphereTestSquaredRadius rejects when the signed distance is below
	// -radius² using the unscaled model radius. The comparison mixes a
	// length with an area; it culls less than SphereTestRadius for radii
	// above 1 and more for radii below 1.
	SphereTestSquaredRadius SphereTest = iota
	// SphereTestRadius rejects when the signed distance is below -radius,
	// with the radius scaled by the instance's uniform scale.
	SphereTestRadius
)

func (t SphereTest) String() string {
	switch t {
	case SphereTestSquaredRadius:
		return "squared-radius"
	case SphereTestRadius:
		return "radius"
	default:
		return "unknown"
	}
}

// ParseSphereTest parses the names produced by SphereTest.String.
func ParseSphereTest(s string) (SphereTest, bool) {
	switch s {
	case "squared-radius", "":
		return SphereTestSquaredRadius, true
	case "radius":
		return SphereTestRadius, true
	}
	return SphereTestSquaredRadius, false
}

// MarshalText implements encoding.TextMarshaler.
func (t SphereTest) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *SphereTest) UnmarshalText(text []byte) error {
	v, ok := ParseSphereTest(string(text))
	if !ok {
		return fmt.Errorf("unknown sphere test %q", text)
	}
	*t = v
	return nil
}

// Outside reports whether a sphere with the given signed center distance and
// radius lies entirely outside a plane.
func (t SphereTest) Outside(distance, radius float64) bool {
	if t == SphereTestRadius {
		return distance < -radius
	}
	return distance < -radius*radius
}

// SphereOutside reports whether a sphere lies entirely outside any plane.
func SphereOutside(planes []Plane, center math3d.Vec3, radius float64, test SphereTest) bool {
	for i := range planes {
		if test.Outside(planes[i].DistanceToPoint(center), radius) {
			return true
		}
	}
	return false
}
