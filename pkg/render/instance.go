package render

import (
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
)

// Instance places a shared Model in the world. Transform is derived from
// Position, Orientation and Scale; use the setters to keep it current.
type Instance struct {
	Model       *models.Model
	Position    math3d.Vec3
	Orientation math3d.Mat4
	Scale       float64

	// Transform maps model space to world space:
	// translate(Position) * Orientation * scale(Scale).
	Transform math3d.Mat4
}

// NewInstance creates an instance and computes its transform.
func NewInstance(model *models.Model, position math3d.Vec3, orientation math3d.Mat4, scale float64) *Instance {
	inst := &Instance{
		Model:       model,
		Position:    position,
		Orientation: orientation,
		Scale:       scale,
	}
	inst.update()
	return inst
}

// Place creates an unrotated, unscaled instance at position.
func Place(model *models.Model, position math3d.Vec3) *Instance {
	return NewInstance(model, position, math3d.Identity(), 1)
}

func (i *Instance) update() {
	i.Transform = math3d.Translate(i.Position).Mul(i.Orientation).Mul(math3d.ScaleUniform(i.Scale))
}

// SetPosition moves the instance.
func (i *Instance) SetPosition(p math3d.Vec3) {
	i.Position = p
	i.update()
}

// SetOrientation replaces the instance rotation.
func (i *Instance) SetOrientation(o math3d.Mat4) {
	i.Orientation = o
	i.update()
}

// SetScale sets the uniform scale.
func (i *Instance) SetScale(s float64) {
	i.Scale = s
	i.update()
}

// Rotated returns a copy of the instance with rot applied after its own
// orientation. The model is shared.
func (i *Instance) Rotated(rot math3d.Mat4) *Instance {
	return NewInstance(i.Model, i.Position, rot.Mul(i.Orientation), i.Scale)
}
