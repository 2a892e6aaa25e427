package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const tol = 1e-5

var sampleVectors = []Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 2, 3},
	{-4.5, 0.25, 7},
	{0.001, -0.002, 0.003},
}

func TestNormalizeUnitVectorIsUnchanged(t *testing.T) {
	for _, v := range sampleVectors {
		u := v.Normalized()
		assert.InDelta(t, 1, u.Length(), tol, "length of %v", u)
		assert.True(t, u.Normalized().ApproxEqual(u, tol), "normalize(%v) changed it", u)
	}
}

func TestNormalizeDegenerate(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
	}{
		{"zero", Vec3{}},
		{"below epsilon", V3(Epsilon/4, 0, 0)},
		{"at epsilon", V3(Epsilon, 0, 0)},
		{"tiny diagonal", V3(1e-9, 1e-9, 1e-9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.v.Normalized()
			assert.Equal(t, Vec3{}, n)

			v := tt.v
			v.Normalize()
			assert.Equal(t, Vec3{}, v)
		})
	}
}

func TestDotCrossIdentities(t *testing.T) {
	for _, a := range sampleVectors {
		for _, b := range sampleVectors {
			assert.InDelta(t, Dot(a, b), Dot(b, a), tol)
			assert.True(t, Cross(a, b).ApproxEqual(Cross(b, a).Neg(), tol), "cross(%v, %v)", a, b)
		}
		assert.Equal(t, Vec3{}, Cross(a, a))
	}

	assert.Equal(t, V3(0, 0, 1), Cross(V3(1, 0, 0), V3(0, 1, 0)))
	assert.Equal(t, float32(32), Dot(V3(1, 2, 3), V3(4, 5, 6)))
}

func TestArithmetic(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, 5, 6)

	assert.Equal(t, V3(5, 7, 9), a.Add(b))
	assert.Equal(t, V3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, V3(2, 4, 6), a.Mul(2))
	assert.Equal(t, V3(-1, -2, -3), a.Neg())
	assert.Equal(t, float32(14), a.LengthSquared())
	assert.InDelta(t, math.Sqrt(14), a.Length(), tol)

	c := a
	c.AddAssign(b)
	assert.Equal(t, V3(5, 7, 9), c)
	c.SubAssign(b)
	assert.Equal(t, a, c)
	c.MulAssign(3)
	assert.Equal(t, V3(3, 6, 9), c)

	assert.Equal(t, Vec4{1, 2, 3, 1}, a.Vec4(1))
	assert.Equal(t, a, a.Vec4(0).XYZ())
	assert.Equal(t, "(1, 2, 3)", a.String())
}

func TestPrincipalRotations(t *testing.T) {
	quarter := float32(math.Pi / 2)

	assert.True(t, V3(0, 1, 0).RotateX(quarter).ApproxEqual(V3(0, 0, 1), tol))
	assert.True(t, V3(0, 0, 1).RotateY(quarter).ApproxEqual(V3(1, 0, 0), tol))
	assert.True(t, V3(1, 0, 0).RotateZ(quarter).ApproxEqual(V3(0, 1, 0), tol))

	// The principal-axis shortcuts agree with the general Rodrigues matrix.
	p := V3(0.3, -1.2, 2.5)
	for _, angle := range []float32{0.1, 1, 2.5, -0.7} {
		assert.True(t, p.RotateX(angle).ApproxEqual(Rotate(angle, V3(1, 0, 0)).MulPoint(p), tol))
		assert.True(t, p.RotateY(angle).ApproxEqual(Rotate(angle, V3(0, 1, 0)).MulPoint(p), tol))
		assert.True(t, p.RotateZ(angle).ApproxEqual(Rotate(angle, V3(0, 0, 1)).MulPoint(p), tol))
	}
}
