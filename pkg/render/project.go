package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// minDepth bounds |z| away from zero during projection.
const minDepth = 1e-9

// Viewport describes the pinhole projection: a view window of Width x Height
// world units at Distance in front of the eye, stretched over the canvas.
type Viewport struct {
	Distance float64
	Width    float64
	Height   float64
}

// DefaultViewport returns a 1x1 viewport at distance 1, which matches the
// default 90 degree clipping frustum.
func DefaultViewport() Viewport {
	return Viewport{Distance: 1, Width: 1, Height: 1}
}

// Point is a projected vertex in centered canvas coordinates.
type Point struct {
	X, Y int
	InvZ float64 // 1/z of the camera-space vertex
}

// ProjectF maps a camera-space point to centered canvas coordinates without
// rounding. Depths closer to zero than minDepth are clamped, keeping the sign.
func (vp Viewport) ProjectF(v math3d.Vec3, canvasW, canvasH int) (x, y, z float64) {
	z = v.Z
	if math.Abs(z) < minDepth {
		z = math.Copysign(minDepth, z)
	}
	x = v.X * vp.Distance / z * float64(canvasW) / vp.Width
	y = v.Y * vp.Distance / z * float64(canvasH) / vp.Height
	return x, y, z
}

// Project maps a camera-space point to a canvas Point. Coordinates are
// truncated toward zero.
func (vp Viewport) Project(v math3d.Vec3, canvasW, canvasH int) Point {
	x, y, z := vp.ProjectF(v, canvasW, canvasH)
	return Point{X: int(x), Y: int(y), InvZ: 1 / z}
}

// Unproject recovers the x/z and y/z ratios of a camera-space point from its
// centered canvas coordinates.
func (vp Viewport) Unproject(x, y float64, canvasW, canvasH int) (xOverZ, yOverZ float64) {
	xOverZ = x * vp.Width / float64(canvasW) / vp.Distance
	yOverZ = y * vp.Height / float64(canvasH) / vp.Distance
	return xOverZ, yOverZ
}
