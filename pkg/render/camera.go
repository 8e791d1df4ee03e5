package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Default camera parameters.
const (
	DefaultFOV  = math.Pi / 2 // 90 degrees
	DefaultNear = 1.0
)

// Camera is a pinhole camera looking down its local +Z axis.
// Use the setters to change it so cached state stays valid.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation is a pure rotation whose columns are the camera's right,
	// up and forward axes in world space.
	Orientation math3d.Mat4

	FOV  float64 // Field of view in radians, horizontal and vertical
	Near float64 // Distance to the near clipping plane

	// Cached state (computed on demand)
	viewMatrix  math3d.Mat4
	planes      []Plane
	viewDirty   bool
	planesDirty bool
}

// NewCamera creates a camera with a 90 degree field of view and a near plane
// at distance 1.
func NewCamera(position math3d.Vec3, orientation math3d.Mat4) *Camera {
	return &Camera{
		Position:    position,
		Orientation: orientation,
		FOV:         DefaultFOV,
		Near:        DefaultNear,
		viewDirty:   true,
		planesDirty: true,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// SetOrientation sets the camera rotation.
func (c *Camera) SetOrientation(orientation math3d.Mat4) {
	c.Orientation = orientation
	c.viewDirty = true
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
	c.planesDirty = true
}

// SetNear sets the near plane distance.
func (c *Camera) SetNear(near float64) {
	c.Near = near
	c.planesDirty = true
}

// Forward returns the viewing direction in world space.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Orientation.MulVec3Dir(math3d.Forward())
}

// Right returns the right direction in world space.
func (c *Camera) Right() math3d.Vec3 {
	return c.Orientation.MulVec3Dir(math3d.Right())
}

// Up returns the up direction in world space.
func (c *Camera) Up() math3d.Vec3 {
	return c.Orientation.MulVec3Dir(math3d.Up())
}

// LookAt rotates the camera to face target, keeping world up as up.
func (c *Camera) LookAt(target math3d.Vec3) {
	forward := target.Sub(c.Position).Normalize()
	if forward.LenSq() == 0 {
		return
	}
	right := math3d.Up().Cross(forward)
	if right.LenSq() < 1e-12 {
		// Looking straight up or down
		right = math3d.Right()
	}
	right = right.Normalize()
	up := forward.Cross(right)

	c.SetOrientation(math3d.Basis(right, up, forward))
}

// ViewMatrix returns the world to camera transform:
// transpose(orientation) * translate(-position).
func (c *Camera) ViewMatrix() math3d.Mat4 {
	if c.viewDirty {
		c.viewMatrix = c.Orientation.Transpose().Mul(math3d.Translate(c.Position.Negate()))
		c.viewDirty = false
	}
	return c.viewMatrix
}

// Planes returns the camera-space clipping planes.
func (c *Camera) Planes() []Plane {
	if c.planesDirty || c.planes == nil {
		c.planes = ClipPlanes(c.FOV, c.Near)
		c.planesDirty = false
	}
	return c.planes
}

// MoveForward moves the camera forward (or backward if negative).
func (c *Camera) MoveForward(distance float64) {
	c.SetPosition(c.Position.Add(c.Forward().Scale(distance)))
}

// MoveRight moves the camera right (or left if negative).
func (c *Camera) MoveRight(distance float64) {
	c.SetPosition(c.Position.Add(c.Right().Scale(distance)))
}

// Orbit places the camera on a circle of the given radius around target at
// the given height and angle, looking at the target.
func (c *Camera) Orbit(target math3d.Vec3, radius, height, angle float64) {
	c.SetPosition(target.Add(math3d.V3(-math.Sin(angle)*radius, height, -math.Cos(angle)*radius)))
	c.LookAt(target)
}
