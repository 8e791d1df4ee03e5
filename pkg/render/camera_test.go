package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
)

func assertVec(t *testing.T, want, got math3d.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqual(got, 1e-9), "want %v, got %v", want, got)
}

func TestViewMatrix(t *testing.T) {
	cam := NewCamera(math3d.V3(0, 0, -5), math3d.Identity())
	assertVec(t, math3d.V3(0, 0, 5), cam.ViewMatrix().MulVec3(math3d.Zero3()))

	// Turning the camera to the right moves world points to the left.
	cam.SetOrientation(math3d.RotateY(math.Pi / 2))
	cam.SetPosition(math3d.Zero3())
	assertVec(t, math3d.V3(-1, 0, 0), cam.ViewMatrix().MulVec3(math3d.V3(0, 0, 1)))
	assertVec(t, math3d.V3(0, 0, 1), cam.ViewMatrix().MulVec3(math3d.V3(1, 0, 0)))
}

func TestCameraLookAt(t *testing.T) {
	tests := []struct {
		name     string
		position math3d.Vec3
		target   math3d.Vec3
	}{
		{"from the right", math3d.V3(5, 0, 0), math3d.Zero3()},
		{"from above and behind", math3d.V3(1, 4, -6), math3d.V3(0, 1, 0)},
		{"straight down", math3d.V3(0, 10, 0), math3d.Zero3()},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cam := NewCamera(tc.position, math3d.Identity())
			cam.LookAt(tc.target)

			dist := tc.target.Sub(tc.position).Len()
			assertVec(t, math3d.V3(0, 0, dist), cam.ViewMatrix().MulVec3(tc.target))
			assert.True(t, cam.Orientation.Transpose().Mul(cam.Orientation).ApproxEqual(math3d.Identity(), 1e-9))
			assert.InDelta(t, 1.0, cam.Orientation.Determinant(), 1e-9)
		})
	}
}

func TestCameraLookAtKeepsUp(t *testing.T) {
	cam := NewCamera(math3d.V3(3, 0, -4), math3d.Identity())
	cam.LookAt(math3d.Zero3())
	assertVec(t, math3d.Up(), cam.Up())
	assert.InDelta(t, 0, cam.Right().Y, 1e-9)
}

func TestCameraFOVUpdatesPlanes(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), math3d.Identity())
	assert.Len(t, cam.Planes(), 5)

	cam.SetFOV(math.Pi / 3)
	cam.SetNear(0.5)
	planes := cam.Planes()
	assertVec(t, math3d.V3(math.Cos(math.Pi/6), 0, 0.5), planes[PlaneLeft].Normal)
	assert.Equal(t, -0.5, planes[PlaneNear].D)
}

func TestCameraOrbit(t *testing.T) {
	cam := NewCamera(math3d.Zero3(), math3d.Identity())
	cam.Orbit(math3d.Zero3(), 5, 0, 0)
	assertVec(t, math3d.V3(0, 0, -5), cam.Position)
	assertVec(t, math3d.Forward(), cam.Forward())

	cam.MoveForward(2)
	assertVec(t, math3d.V3(0, 0, -3), cam.Position)
	cam.MoveRight(1)
	assertVec(t, math3d.V3(1, 0, -3), cam.Position)
}

func TestInstanceTransform(t *testing.T) {
	cube := models.Cube(1)

	inst := Place(cube, math3d.V3(1, 2, 3))
	assert.True(t, inst.Transform.ApproxEqual(math3d.Translate(math3d.V3(1, 2, 3)), 1e-12))

	inst = NewInstance(cube, math3d.V3(1, 0, 0), math3d.RotateY(math.Pi/2), 2)
	// Scale, then rotate, then translate
	assertVec(t, math3d.V3(3, 0, 0), inst.Transform.MulVec3(math3d.V3(0, 0, 1)))

	inst.SetPosition(math3d.V3(0, 5, 0))
	assertVec(t, math3d.V3(2, 5, 0), inst.Transform.MulVec3(math3d.V3(0, 0, 1)))

	inst.SetScale(1)
	assertVec(t, math3d.V3(1, 5, 0), inst.Transform.MulVec3(math3d.V3(0, 0, 1)))

	inst.SetOrientation(math3d.Identity())
	assertVec(t, math3d.V3(0, 5, 1), inst.Transform.MulVec3(math3d.V3(0, 0, 1)))
}

func TestInstanceRotated(t *testing.T) {
	cube := models.Cube(1)
	inst := NewInstance(cube, math3d.V3(0, 0, 4), math3d.RotateX(0.2), 1.5)
	rot := inst.Rotated(math3d.RotateY(0.4))

	assert.Same(t, inst.Model, rot.Model)
	assert.Equal(t, inst.Position, rot.Position)
	assert.True(t, rot.Orientation.ApproxEqual(math3d.RotateY(0.4).Mul(math3d.RotateX(0.2)), 1e-12))
	// The source is untouched
	assert.True(t, inst.Orientation.ApproxEqual(math3d.RotateX(0.2), 1e-12))
}
