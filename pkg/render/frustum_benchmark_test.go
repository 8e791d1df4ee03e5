package render

import (
	"math/rand"
	"testing"

	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
)

// BenchmarkClipPlanes benchmarks building the clipping planes.
func BenchmarkClipPlanes(b *testing.B) {
	for b.Loop() {
		_ = ClipPlanes(DefaultFOV, DefaultNear)
	}
}

// BenchmarkSphereTest benchmarks the bounding sphere test against five planes.
func BenchmarkSphereTest(b *testing.B) {
	planes := ClipPlanes(DefaultFOV, DefaultNear)

	b.Run("visible", func(b *testing.B) {
		center := math3d.V3(0, 0, 10)
		for b.Loop() {
			_ = SphereOutside(planes, center, 1, SphereTestRadius)
		}
	})

	// Rejected by the first (near) plane
	b.Run("culled", func(b *testing.B) {
		center := math3d.V3(0, 0, -10)
		for b.Loop() {
			_ = SphereOutside(planes, center, 1, SphereTestRadius)
		}
	})
}

// BenchmarkTransformAndClip benchmarks moving a cube into camera space and
// clipping it.
func BenchmarkTransformAndClip(b *testing.B) {
	cam := NewCamera(math3d.V3(0, 0, -5), math3d.Identity())
	cube := models.Cube(2)
	inst := NewInstance(cube, math3d.Zero3(), math3d.RotateY(0.5), 1)
	transform := CombinedTransform(cam, inst)

	for b.Loop() {
		_ = TransformAndClip(cam.Planes(), cube, transform, SphereTestSquaredRadius)
	}
}

// BenchmarkCullingScenario renders 100 cubes, half in front of the camera and
// half behind it.
func BenchmarkCullingScenario(b *testing.B) {
	cam := NewCamera(math3d.V3(0, 5, -20), math3d.Identity())
	cam.LookAt(math3d.Zero3())
	cube := models.Cube(2)

	rng := rand.New(rand.NewSource(42))
	objectCount := 100
	instances := make([]*Instance, objectCount)

	for i := range objectCount {
		var z float64
		if i%2 == 0 {
			// Visible: in front of camera
			z = rng.Float64()*30 - 10 // Z from -10 to 20
		} else {
			// Culled: behind camera
			z = rng.Float64()*20 - 45 // Z from -45 to -25
		}
		x := rng.Float64()*20 - 10
		y := rng.Float64() * 10
		instances[i] = NewInstance(cube, math3d.V3(x, y, z), math3d.RotateY(rng.Float64()), 1)
	}

	c := NewCanvas(160, 120)
	depth := NewDepthBuffer(c.Width, c.Height)

	b.Run("radius", func(b *testing.B) {
		cfg := DefaultConfig()
		cfg.SphereTest = SphereTestRadius
		r := NewRenderer(cfg)
		for b.Loop() {
			depth.Clear()
			c.Clear(ColorBlack)
			r.RenderScene(c, cam, instances, depth)
		}
	})

	b.Run("squared_radius", func(b *testing.B) {
		r := NewRenderer(DefaultConfig())
		for b.Loop() {
			depth.Clear()
			c.Clear(ColorBlack)
			r.RenderScene(c, cam, instances, depth)
		}
	})
}

// BenchmarkFillTriangle benchmarks scan-filling a large triangle.
func BenchmarkFillTriangle(b *testing.B) {
	c := NewCanvas(320, 240)
	depth := NewDepthBuffer(c.Width, c.Height)
	r := NewRenderer(DefaultConfig())
	p0 := Point{X: -150, Y: -110, InvZ: 0.5}
	p1 := Point{X: 0, Y: 115, InvZ: 0.25}
	p2 := Point{X: 150, Y: -100, InvZ: 0.1}

	for b.Loop() {
		depth.Clear()
		r.FillTriangle(c, depth, p0, p1, p2, ColorCyan)
	}
}
