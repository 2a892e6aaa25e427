// Package math3d provides the small vector and matrix algebra used to build
// camera, projection and model transforms and to generate surface meshes.
// Matrices are column-major and laid out the way OpenGL uniforms expect them.
package math3d

import (
	"fmt"
	"math"
)

// Epsilon is the float32 machine epsilon. Vectors whose length does not
// exceed it are treated as zero-length.
const Epsilon float32 = 1.1920929e-07

// Vec3 is a 3D vector or point.
type Vec3 struct {
	X, Y, Z float32
}

// V3 creates a new 3D vector with the given components
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Add returns the sum of two vectors
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the difference between two vectors
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul scales a vector by a scalar
func (v Vec3) Mul(k float32) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Neg returns the vector pointing the opposite way
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

func (v *Vec3) AddAssign(o Vec3) { v.X += o.X; v.Y += o.Y; v.Z += o.Z }

func (v *Vec3) SubAssign(o Vec3) { v.X -= o.X; v.Y -= o.Y; v.Z -= o.Z }

func (v *Vec3) MulAssign(k float32) { v.X *= k; v.Y *= k; v.Z *= k }

// Dot returns the dot product of two vectors
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product v × o. The order matters: Cross is
// anti-commutative.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// LengthSquared returns the squared magnitude
func (v Vec3) LengthSquared() float32 { return v.Dot(v) }

// Length returns the vector's magnitude (Euclidean norm)
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSquared())))
}

// Normalized returns a unit vector in the same direction, or the zero
// vector when the length is at or below Epsilon.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l <= Epsilon {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Normalize normalizes v in place with the same zero-length rule as Normalized.
func (v *Vec3) Normalize() { *v = v.Normalized() }

// Vec4 extends v with a homogeneous w component
func (v Vec3) Vec4(w float32) Vec4 { return Vec4{v.X, v.Y, v.Z, w} }

// RotateX rotates the vector around the X axis
func (v Vec3) RotateX(angle float32) Vec3 {
	s, c := sincos(angle)
	return Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// RotateY rotates the vector around the Y axis
func (v Vec3) RotateY(angle float32) Vec3 {
	s, c := sincos(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// RotateZ rotates the vector around the Z axis
func (v Vec3) RotateZ(angle float32) Vec3 {
	s, c := sincos(angle)
	return Vec3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}

// ApproxEqual reports whether every component of v and o differs by at most tol
func (v Vec3) ApproxEqual(o Vec3, tol float32) bool {
	return abs32(v.X-o.X) <= tol && abs32(v.Y-o.Y) <= tol && abs32(v.Z-o.Z) <= tol
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Dot returns a·b
func Dot(a, b Vec3) float32 { return a.Dot(b) }

// Cross returns a×b
func Cross(a, b Vec3) Vec3 { return a.Cross(b) }

// Normalize returns v scaled to unit length, or zero for a degenerate v
func Normalize(v Vec3) Vec3 { return v.Normalized() }

func sincos(angle float32) (float32, float32) {
	s, c := math.Sincos(float64(angle))
	return float32(s), float32(c)
}

func abs32(f float32) float32 {
	return float32(math.Abs(float64(f)))
}
