package math3d

import "math"

// Mat4 is a 4x4 matrix stored column by column and applied to column vectors,
// so A.Mul(B) applies B first. Elements 0-3 hold the first column, 12-14 the
// translation.
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Basis(V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1))
}

// Basis returns the matrix whose first three columns are x, y and z.
func Basis(x, y, z Vec3) Mat4 {
	var m Mat4
	m.setColumn(0, x)
	m.setColumn(1, y)
	m.setColumn(2, z)
	m[15] = 1
	return m
}

func (m *Mat4) setColumn(i int, v Vec3) {
	m[i*4], m[i*4+1], m[i*4+2] = v.X, v.Y, v.Z
}

func (m Mat4) column(i int) Vec3 {
	return Vec3{m[i*4], m[i*4+1], m[i*4+2]}
}

// Translate returns a translation by v.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m.setColumn(3, v)
	return m
}

// Scale returns a per-axis scale.
func Scale(v Vec3) Mat4 {
	return Basis(V3(v.X, 0, 0), V3(0, v.Y, 0), V3(0, 0, v.Z))
}

// ScaleUniform scales all axes by s.
func ScaleUniform(s float64) Mat4 {
	return Scale(V3(s, s, s))
}

// RotateX rotates by angle radians about X, turning +Y toward +Z.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Basis(V3(1, 0, 0), V3(0, c, s), V3(0, -s, c))
}

// RotateY rotates by angle radians about Y, turning +Z toward +X.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Basis(V3(c, 0, -s), V3(0, 1, 0), V3(s, 0, c))
}

// RotateZ rotates by angle radians about Z, turning +X toward +Y.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Basis(V3(c, s, 0), V3(-s, c, 0), V3(0, 0, 1))
}

// Rotate rotates by angle radians about an arbitrary axis (Rodrigues).
func Rotate(axis Vec3, angle float64) Mat4 {
	k := axis.Normalize()
	c, s := math.Cos(angle), math.Sin(angle)
	turn := func(v Vec3) Vec3 {
		return v.Scale(c).Add(k.Cross(v).Scale(s)).Add(k.Scale(k.Dot(v) * (1 - c)))
	}
	return Basis(turn(V3(1, 0, 0)), turn(V3(0, 1, 0)), turn(V3(0, 0, 1)))
}

// Euler builds an orientation from pitch (X), yaw (Y) and roll (Z) in
// radians. Roll is applied first, then pitch, then yaw.
func Euler(pitch, yaw, roll float64) Mat4 {
	return RotateY(yaw).Mul(RotateX(pitch)).Mul(RotateZ(roll))
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Mul returns a * b.
//
//nolint:st1016 // a*b reads like the math
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for col := range 4 {
		v := a.MulVec4(Vec4{b[col*4], b[col*4+1], b[col*4+2], b[col*4+3]})
		m[col*4], m[col*4+1], m[col*4+2], m[col*4+3] = v.X, v.Y, v.Z, v.W
	}
	return m
}

// MulVec3 transforms v as a point (w = 1) and drops the resulting w. Every
// transform built here is affine, so w stays 1.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return m.MulVec3Dir(v).Add(m.column(3))
}

// MulVec3Dir transforms v as a direction (w = 0).
func (m Mat4) MulVec3Dir(v Vec3) Vec3 {
	return m.column(0).Scale(v.X).Add(m.column(1).Scale(v.Y)).Add(m.column(2).Scale(v.Z))
}

// MulVec4 transforms a homogeneous vector.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out [4]float64
	for row := range 4 {
		out[row] = m[row]*v.X + m[4+row]*v.Y + m[8+row]*v.Z + m[12+row]*v.W
	}
	return Vec4{out[0], out[1], out[2], out[3]}
}

// Transpose swaps rows and columns.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[row*4+col] = m[col*4+row]
		}
	}
	return t
}

// Determinant of the upper 3x3 block, which is the full determinant for an
// affine matrix.
func (m Mat4) Determinant() float64 {
	return m.column(0).Dot(m.column(1).Cross(m.column(2)))
}

// Inverse inverts an affine matrix. A singular matrix yields the identity.
func (m Mat4) Inverse() Mat4 {
	x, y, z := m.column(0), m.column(1), m.column(2)
	det := x.Dot(y.Cross(z))
	if det == 0 {
		return Identity()
	}

	// Rows of the inverse linear part are the scaled reciprocal basis.
	inv := Basis(y.Cross(z).Scale(1/det), z.Cross(x).Scale(1/det), x.Cross(y).Scale(1/det)).Transpose()
	inv.setColumn(3, inv.MulVec3Dir(m.column(3)).Negate())
	return inv
}

// Translation returns the translation column.
func (m Mat4) Translation() Vec3 {
	return m.column(3)
}

// UniformScale returns the length of the first basis column. For a rigid
// transform combined with a uniform scale this is the scale factor.
func (m Mat4) UniformScale() float64 {
	return m.column(0).Len()
}

// ApproxEqual reports whether every element of a and b differs by at most eps.
//
//nolint:st1016 // a,b naming for comparisons
func (a Mat4) ApproxEqual(b Mat4, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
