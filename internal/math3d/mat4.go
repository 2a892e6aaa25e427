package math3d

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidProjection is returned when a projection is requested for a
	// degenerate or inverted frustum.
	ErrInvalidProjection = errors.New("invalid projection parameters")
	// ErrSingularMatrix is returned by Inverse for a matrix with zero determinant.
	ErrSingularMatrix = errors.New("matrix is singular")
)

// Mat4 is a 4x4 matrix stored in column-major order: the element in row r of
// column c lives at index c*4+r.
//
//	| 0  4  8  12 |
//	| 1  5  9  13 |
//	| 2  6  10 14 |
//	| 3  7  11 15 |
//
// A.Mul(B) applied to a point applies B first, then A.
type Mat4 [16]float32

// Diagonal returns a matrix with d on the diagonal and zero elsewhere.
func Diagonal(d float32) Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = d, d, d, d
	return m
}

// Identity returns the identity matrix.
func Identity() Mat4 { return Diagonal(1) }

// At returns the element at (row, col).
func (m Mat4) At(row, col int) float32 { return m[col*4+row] }

// Set sets the element at (row, col).
func (m *Mat4) Set(row, col int, v float32) { m[col*4+row] = v }

// Col returns column c.
func (m Mat4) Col(c int) Vec4 {
	return Vec4{m[c*4], m[c*4+1], m[c*4+2], m[c*4+3]}
}

// SetCol replaces column c.
func (m *Mat4) SetCol(c int, v Vec4) {
	m[c*4], m[c*4+1], m[c*4+2], m[c*4+3] = v.X, v.Y, v.Z, v.W
}

// Mul returns the product m·b.
func (m Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

// MulVec4 returns the product m·v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		W: m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// MulPoint transforms p as a point (w=1) without the perspective divide.
func (m Mat4) MulPoint(p Vec3) Vec3 { return m.MulVec4(p.Vec4(1)).XYZ() }

// MulDir transforms d as a direction (w=0).
func (m Mat4) MulDir(d Vec3) Vec3 { return m.MulVec4(d.Vec4(0)).XYZ() }

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	m := Diagonal(0)
	m[0], m[5], m[10], m[15] = v.X, v.Y, v.Z, 1
	return m
}

// Rotate creates a right-handed rotation of angle radians around axis. The
// axis is normalized first, so it need not be a unit vector.
func Rotate(angle float32, axis Vec3) Mat4 {
	a := axis.Normalized()
	s, c := sincos(angle)
	oc := 1 - c

	m := Diagonal(0)
	m[0] = c + a.X*a.X*oc
	m[1] = a.Y*a.X*oc + a.Z*s
	m[2] = a.Z*a.X*oc - a.Y*s

	m[4] = a.X*a.Y*oc - a.Z*s
	m[5] = c + a.Y*a.Y*oc
	m[6] = a.Z*a.Y*oc + a.X*s

	m[8] = a.X*a.Z*oc + a.Y*s
	m[9] = a.Y*a.Z*oc - a.X*s
	m[10] = c + a.Z*a.Z*oc

	m[15] = 1
	return m
}

// LookAt creates a right-handed view matrix looking from eye towards center.
// An up vector parallel to the view direction collapses the side axis to
// zero and yields a degenerate matrix; callers must avoid it.
func LookAt(eye, center, up Vec3) Mat4 {
	f := center.Sub(eye).Normalized()
	s := f.Cross(up).Normalized()
	u := s.Cross(f)

	m := Identity()
	m[0], m[4], m[8] = s.X, s.Y, s.Z
	m[1], m[5], m[9] = u.X, u.Y, u.Z
	m[2], m[6], m[10] = -f.X, -f.Y, -f.Z

	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	return m
}

// Perspective creates a symmetric perspective projection. fovy is the
// vertical field of view in radians and must lie in (0, π); aspect and zNear
// must be positive and zFar must exceed zNear.
func Perspective(fovy, aspect, zNear, zFar float32) (Mat4, error) {
	if !finite(fovy, aspect, zNear, zFar) ||
		aspect <= 0 || zNear <= 0 || zFar <= zNear ||
		fovy <= 0 || float64(fovy) >= math.Pi {
		return Mat4{}, fmt.Errorf("%w: perspective(fovy=%g, aspect=%g, near=%g, far=%g)",
			ErrInvalidProjection, fovy, aspect, zNear, zFar)
	}

	tanHalf := float32(math.Tan(float64(fovy) / 2))

	var m Mat4
	m[0] = 1 / (aspect * tanHalf)
	m[5] = 1 / tanHalf
	m[10] = -(zFar + zNear) / (zFar - zNear)
	m[11] = -1
	m[14] = -(2 * zFar * zNear) / (zFar - zNear)
	return m, nil
}

// Orthographic maps the box [left,right]x[bottom,top]x[-near,-far] onto the
// NDC cube.
func Orthographic(left, right, bottom, top, zNear, zFar float32) (Mat4, error) {
	if !finite(left, right, bottom, top, zNear, zFar) ||
		left == right || bottom == top || zNear == zFar {
		return Mat4{}, fmt.Errorf("%w: orthographic(%g, %g, %g, %g, %g, %g)",
			ErrInvalidProjection, left, right, bottom, top, zNear, zFar)
	}

	m := Identity()
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -2 / (zFar - zNear)
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[14] = -(zFar + zNear) / (zFar - zNear)
	return m, nil
}

// Transposed returns the transpose of m.
func (m Mat4) Transposed() Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Determinant returns the determinant of m.
func (m Mat4) Determinant() float32 {
	_, det := m.adjugate()
	return det
}

// Inverse returns the general inverse of m, or ErrSingularMatrix when the
// determinant is zero.
func (m Mat4) Inverse() (Mat4, error) {
	adj, det := m.adjugate()
	if det == 0 || !finite(det) {
		return Mat4{}, ErrSingularMatrix
	}
	inv := 1 / det
	for i := range adj {
		adj[i] *= inv
	}
	return adj, nil
}

// adjugate returns the transposed cofactor matrix together with the
// determinant obtained by expanding along the first column.
func (m Mat4) adjugate() (Mat4, float32) {
	var a Mat4
	a[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	a[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	a[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	a[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]

	a[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	a[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	a[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	a[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]

	a[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	a[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	a[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	a[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]

	a[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	a[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	a[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	a[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*a[0] + m[1]*a[4] + m[2]*a[8] + m[3]*a[12]
	return a, det
}

// Translated returns m·Translate(v): the translation is applied in m's
// local frame.
func (m Mat4) Translated(v Vec3) Mat4 { return m.Mul(Translate(v)) }

// Rotated returns m·Rotate(angle, axis).
func (m Mat4) Rotated(angle float32, axis Vec3) Mat4 { return m.Mul(Rotate(angle, axis)) }

// Scaled returns m·Scale(v).
func (m Mat4) Scaled(v Vec3) Mat4 { return m.Mul(Scale(v)) }

// ApproxEqual reports whether every element of m and o differs by at most tol.
func (m Mat4) ApproxEqual(o Mat4, tol float32) bool {
	for i := range m {
		if abs32(m[i]-o[i]) > tol {
			return false
		}
	}
	return true
}

// Ptr returns a pointer to the first of the 16 contiguous column-major
// floats, suitable for gl.UniformMatrix4fv.
func (m *Mat4) Ptr() *float32 { return &m[0] }

// MGL converts m to the mathgl representation, which shares the layout.
func (m Mat4) MGL() mgl32.Mat4 { return mgl32.Mat4(m) }

// FromMGL converts a mathgl matrix.
func FromMGL(m mgl32.Mat4) Mat4 { return Mat4(m) }

// Radians converts degrees to radians.
func Radians(degrees float32) float32 { return mgl32.DegToRad(degrees) }

func finite(vs ...float32) bool {
	for _, v := range vs {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
