package math3d

// Vec4 is a homogeneous vector. It is the column type of Mat4 and the
// operand of Mat4.MulVec4; points carry w=1 and directions w=0.
type Vec4 struct {
	X, Y, Z, W float32
}

// V4 creates a new 4D vector with the given components
func V4(x, y, z, w float32) Vec4 { return Vec4{x, y, z, w} }

// XYZ drops the w component
func (v Vec4) XYZ() Vec3 { return Vec3{v.X, v.Y, v.Z} }
