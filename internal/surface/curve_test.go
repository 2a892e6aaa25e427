package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"revolve/internal/math3d"
)

func TestProfile(t *testing.T) {
	var p Profile
	assert.Equal(t, 0, p.Len())

	p.AddPoint(0.5, -0.25)
	p.AddPoint(0.5, -0.25)
	p.Add(math3d.V3(1, 2, 0))

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, []math3d.Vec3{{X: 0.5, Y: -0.25, Z: 0}, {X: 0.5, Y: -0.25, Z: 0}, {X: 1, Y: 2, Z: 0}}, p.Points())

	p.Clear()
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Points())

	p.AddPoint(3, 4)
	assert.Equal(t, []math3d.Vec3{{X: 3, Y: 4, Z: 0}}, p.Points())
}

func TestCurvePolyline(t *testing.T) {
	control := []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}}

	for _, segments := range []int{0, 1} {
		got := Curve(control, segments)
		assert.Equal(t, control, got)
	}

	// The result does not alias the input.
	got := Curve(control, 1)
	got[0] = math3d.V3(9, 9, 9)
	assert.Equal(t, math3d.Vec3{}, control[0])

	assert.Nil(t, Curve(nil, 10))
	assert.Nil(t, Curve(control[:1], 10))
}

func TestCurveCatmullRom(t *testing.T) {
	control := []math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 2, Y: 0, Z: 0}, {X: 3, Y: 1, Z: 0}}
	const segments = 4

	got := Curve(control, segments)
	assert.Len(t, got, (len(control)-1)*segments+1)

	// Passes through every control point.
	for i, c := range control {
		assert.True(t, got[i*segments].ApproxEqual(c, tol), "control %d: got %v", i, got[i*segments])
	}

	// Collinear control points stay on the line.
	line := Curve([]math3d.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 2, Y: 2, Z: 0}}, 5)
	for _, p := range line {
		assert.InDelta(t, p.X, p.Y, tol)
	}
}
