// Package render implements a flat-shaded software rasterizer: instance
// transforms, frustum culling and clipping, pinhole projection, back-face
// culling and scan-line filling against an inverse-depth buffer.
package render

import (
	"fmt"
	"image/color"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
)

// RenderStats counts the work done by a Renderer since the last reset.
type RenderStats struct {
	InstancesTested    int // Instances tested against the frustum
	InstancesCulled    int // Instances rejected by their bounding sphere
	TrianglesClipped   int // Triangles dropped for leaving the frustum
	TrianglesBackfaced int // Triangles facing away from the camera
	TrianglesDrawn     int // Triangles scan-filled
}

// Add accumulates o into s.
func (s *RenderStats) Add(o RenderStats) {
	s.InstancesTested += o.InstancesTested
	s.InstancesCulled += o.InstancesCulled
	s.TrianglesClipped += o.TrianglesClipped
	s.TrianglesBackfaced += o.TrianglesBackfaced
	s.TrianglesDrawn += o.TrianglesDrawn
}

// Renderer rasterizes instances onto a Canvas. A Renderer keeps scratch
// buffers between calls and must not be used from more than one goroutine at
// a time; use one Renderer per goroutine.
type Renderer struct {
	Config Config
	Stats  RenderStats

	// Scratch buffers reused across triangles
	projected                    []Point
	x01, x12, x02, h01, h12, h02 []float64
	x012, h012, span             []float64
}

// NewRenderer creates a renderer with the given settings.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{Config: cfg}
}

// ResetStats clears the statistics (RenderScene does this once per frame).
func (r *Renderer) ResetStats() {
	r.Stats = RenderStats{}
}

// interpolate appends to dst the values of a linear function sampled at every
// integer from i0 to i1 inclusive, where f(i0) = d0 and f(i1) = d1. When
// i0 == i1 it appends only d0. i1 must not be less than i0.
func interpolate(i0 int, d0 float64, i1 int, d1 float64, dst []float64) []float64 {
	if i0 == i1 {
		return append(dst, d0)
	}
	a := (d1 - d0) / float64(i1-i0)
	for i := 0; i <= i1-i0; i++ {
		dst = append(dst, d0+a*float64(i))
	}
	return dst
}

// IsBackFace reports whether a camera-space triangle faces away from the
// camera at the origin. The normal is (v1-v0)×(v2-v0); a triangle is front
// facing only when that normal points back toward the eye.
func IsBackFace(v0, v1, v2 math3d.Vec3) bool {
	normal := v1.Sub(v0).Cross(v2.Sub(v0))
	return math3d.Centroid(v0, v1, v2).Dot(normal) >= 0
}

// FillTriangle scan-fills a projected triangle with a flat color. A pixel is
// written only when its interpolated 1/z is closer than the depth buffer.
func (r *Renderer) FillTriangle(c *Canvas, depth *DepthBuffer, p0, p1, p2 Point, col color.RGBA) {
	// Sort by ascending Y
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	if p2.Y < p0.Y {
		p0, p2 = p2, p0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}

	r.x01 = interpolate(p0.Y, float64(p0.X), p1.Y, float64(p1.X), r.x01[:0])
	r.h01 = interpolate(p0.Y, p0.InvZ, p1.Y, p1.InvZ, r.h01[:0])
	r.x12 = interpolate(p1.Y, float64(p1.X), p2.Y, float64(p2.X), r.x12[:0])
	r.h12 = interpolate(p1.Y, p1.InvZ, p2.Y, p2.InvZ, r.h12[:0])
	r.x02 = interpolate(p0.Y, float64(p0.X), p2.Y, float64(p2.X), r.x02[:0])
	r.h02 = interpolate(p0.Y, p0.InvZ, p2.Y, p2.InvZ, r.h02[:0])

	// The last value of the upper short edge repeats as the first of the lower.
	r.x012 = append(append(r.x012[:0], r.x01[:len(r.x01)-1]...), r.x12...)
	r.h012 = append(append(r.h012[:0], r.h01[:len(r.h01)-1]...), r.h12...)

	xLeft, xRight := r.x02, r.x012
	hLeft, hRight := r.h02, r.h012
	mid := len(r.x02) / 2
	if r.x012[mid] < r.x02[mid] {
		xLeft, xRight = xRight, xLeft
		hLeft, hRight = hRight, hLeft
	}

	for y := p0.Y; y <= p2.Y; y++ {
		row := y - p0.Y
		xl, xr := int(xLeft[row]), int(xRight[row])
		if xl > xr {
			continue
		}
		r.span = interpolate(xl, hLeft[row], xr, hRight[row], r.span[:0])
		for x := xl; x <= xr; x++ {
			px, py := c.ToBuffer(x, y)
			if depth.TestAndSet(px, py, r.span[x-xl]) {
				c.SetPixel(px, py, col)
			}
		}
	}
}

// RenderModel rasterizes a model whose vertices are already in camera space,
// as returned by TransformAndClip.
func (r *Renderer) RenderModel(c *Canvas, depth *DepthBuffer, model *models.Model) {
	vp := r.Config.Viewport
	r.projected = r.projected[:0]
	for _, v := range model.Vertices {
		r.projected = append(r.projected, vp.Project(v, c.Width, c.Height))
	}

	for i, tri := range model.Triangles {
		if !r.Config.DisableBackfaceCulling {
			v0, v1, v2 := model.Corners(i)
			if IsBackFace(v0, v1, v2) {
				r.Stats.TrianglesBackfaced++
				continue
			}
		}

		p0, p1, p2 := r.projected[tri.V[0]], r.projected[tri.V[1]], r.projected[tri.V[2]]
		r.FillTriangle(c, depth, p0, p1, p2, tri.Color)
		if r.Config.Outline {
			r.DrawOutline(c, p0, p1, p2, tri.Color)
		}
		r.Stats.TrianglesDrawn++
	}
}

// RenderInstance transforms, culls, clips and rasterizes one instance.
// It returns false when the instance was rejected by its bounding sphere.
func (r *Renderer) RenderInstance(c *Canvas, depth *DepthBuffer, camera *Camera, instance *Instance) bool {
	r.Stats.InstancesTested++

	clipped := TransformAndClip(camera.Planes(), instance.Model, CombinedTransform(camera, instance), r.Config.SphereTest)
	if clipped == nil {
		r.Stats.InstancesCulled++
		return false
	}
	r.Stats.TrianglesClipped += len(instance.Model.Triangles) - len(clipped.Triangles)

	r.RenderModel(c, depth, clipped)
	return true
}

// RenderScene draws every instance into c, resolving overlaps with depth.
// depth must match the canvas size; it is not cleared, so several passes can
// share one buffer. Statistics are reset at the start of the call.
func (r *Renderer) RenderScene(c *Canvas, camera *Camera, instances []*Instance, depth *DepthBuffer) {
	if depth.Width != c.Width || depth.Height != c.Height {
		panic(fmt.Sprintf("render: depth buffer %dx%d does not match canvas %dx%d",
			depth.Width, depth.Height, c.Width, c.Height))
	}

	r.ResetStats()
	for _, inst := range instances {
		if inst == nil || inst.Model == nil {
			continue
		}
		r.RenderInstance(c, depth, camera, inst)
	}

	Logger().Debug("frame rendered",
		"instances", r.Stats.InstancesTested,
		"culled", r.Stats.InstancesCulled,
		"clipped", r.Stats.TrianglesClipped,
		"backfaced", r.Stats.TrianglesBackfaced,
		"drawn", r.Stats.TrianglesDrawn,
	)
}

// Render draws instances into c with a fresh depth buffer.
func (r *Renderer) Render(c *Canvas, camera *Camera, instances []*Instance) {
	r.RenderScene(c, camera, instances, NewDepthBuffer(c.Width, c.Height))
}
