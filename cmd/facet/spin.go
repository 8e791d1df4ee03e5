package main

import (
	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/facet/pkg/math3d"
)

// spinAxis is one rotation axis. Velocity is added to Angle every frame and
// eased back to zero by a critically damped spring.
type spinAxis struct {
	Angle    float64
	Velocity float64
	spring   harmonica.Spring
	accel    float64
}

func newSpinAxis(fps int) spinAxis {
	return spinAxis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (a *spinAxis) step() {
	a.Angle += a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
}

// spin holds the viewer's pitch and yaw applied on top of every instance.
type spin struct {
	Pitch, Yaw spinAxis
	fps        int
}

func newSpin(fps int) *spin {
	s := &spin{fps: max(fps, 1)}
	s.reset()
	return s
}

func (s *spin) step() {
	s.Pitch.step()
	s.Yaw.step()
}

func (s *spin) impulse(pitch, yaw float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
}

func (s *spin) reset() {
	s.Pitch = newSpinAxis(s.fps)
	s.Yaw = newSpinAxis(s.fps)
}

// rotation is yaw about the world Y axis followed by pitch about X.
func (s *spin) rotation() math3d.Mat4 {
	return math3d.RotateX(s.Pitch.Angle).Mul(math3d.RotateY(s.Yaw.Angle))
}
