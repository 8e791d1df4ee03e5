package render

import (
	"image/color"

	"github.com/taigrr/facet/pkg/math3d"
)

// DrawOutline draws the three edges of a projected triangle in a darkened
// version of col. Outlines ignore the depth buffer.
func (r *Renderer) DrawOutline(c *Canvas, p0, p1, p2 Point, col color.RGBA) {
	stroke := Darken(col, r.Config.OutlineDarken)
	c.DrawLine(p0.X, p0.Y, p1.X, p1.Y, stroke)
	c.DrawLine(p1.X, p1.Y, p2.X, p2.Y, stroke)
	c.DrawLine(p2.X, p2.Y, p0.X, p0.Y, stroke)
}

// DrawLine3D draws a world-space segment. The segment is skipped unless both
// endpoints are inside every clip plane.
func (r *Renderer) DrawLine3D(c *Canvas, camera *Camera, a, b math3d.Vec3, col color.RGBA) {
	view := camera.ViewMatrix()
	va, vb := view.MulVec3(a), view.MulVec3(b)
	for _, p := range camera.Planes() {
		if !p.Inside(va) || !p.Inside(vb) {
			return
		}
	}

	vp := r.Config.Viewport
	pa := vp.Project(va, c.Width, c.Height)
	pb := vp.Project(vb, c.Width, c.Height)
	c.DrawLine(pa.X, pa.Y, pb.X, pb.Y, col)
}

// DrawAxes draws the world X, Y and Z axes from origin in red, green and blue.
func (r *Renderer) DrawAxes(c *Canvas, camera *Camera, origin math3d.Vec3, length float64) {
	r.DrawLine3D(c, camera, origin, origin.Add(math3d.V3(length, 0, 0)), ColorRed)
	r.DrawLine3D(c, camera, origin, origin.Add(math3d.V3(0, length, 0)), ColorGreen)
	r.DrawLine3D(c, camera, origin, origin.Add(math3d.V3(0, 0, length)), ColorBlue)
}
