package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revolve/internal/math3d"
)

const tol = 1e-5

func TestDefaultOrientation(t *testing.T) {
	c := NewDefault()

	assert.True(t, c.Front().ApproxEqual(math3d.V3(0, 0, -1), tol), "front %v", c.Front())
	assert.True(t, c.Right().ApproxEqual(math3d.V3(1, 0, 0), tol), "right %v", c.Right())
	assert.True(t, c.Up().ApproxEqual(math3d.V3(0, 1, 0), tol), "up %v", c.Up())
	assert.Equal(t, DefaultZoom, c.Zoom)
	assert.Equal(t, DefaultYaw, c.Yaw())
	assert.Equal(t, DefaultPitch, c.Pitch())
}

func TestBasisIsOrthonormal(t *testing.T) {
	c := NewDefault()
	c.ProcessMouseMovement(123, -250, true)

	for _, v := range []math3d.Vec3{c.Front(), c.Right(), c.Up()} {
		assert.InDelta(t, 1, v.Length(), tol)
	}
	assert.InDelta(t, 0, c.Front().Dot(c.Right()), tol)
	assert.InDelta(t, 0, c.Front().Dot(c.Up()), tol)
	assert.InDelta(t, 0, c.Right().Dot(c.Up()), tol)
}

func TestPitchClamp(t *testing.T) {
	c := NewDefault()
	c.ProcessMouseMovement(0, 5000, true)
	assert.Equal(t, MaxPitch, c.Pitch())

	c.ProcessMouseMovement(0, -10000, true)
	assert.Equal(t, -MaxPitch, c.Pitch())

	c = NewDefault()
	c.ProcessMouseMovement(0, 1000, false)
	assert.InDelta(t, 100, c.Pitch(), tol)
}

func TestMouseSensitivity(t *testing.T) {
	c := NewDefault()
	c.ProcessMouseMovement(100, 50, true)
	assert.InDelta(t, -80, c.Yaw(), tol)
	assert.InDelta(t, 5, c.Pitch(), tol)

	// Yaw 0 looks down +X.
	c = New(math3d.Vec3{}, DefaultWorldUp, 0, 0)
	assert.True(t, c.Front().ApproxEqual(math3d.V3(1, 0, 0), tol))
}

func TestScrollZoomClamp(t *testing.T) {
	tests := []struct {
		name    string
		offsets []float32
		want    float32
	}{
		{"zoom in", []float32{5}, 40},
		{"zoom out", []float32{-10}, 55},
		{"clamped low", []float32{100}, MinZoom},
		{"clamped high", []float32{-100}, MaxZoom},
		{"in then out", []float32{50, -3}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDefault()
			for _, dy := range tt.offsets {
				c.ProcessMouseScroll(dy)
			}
			assert.Equal(t, tt.want, c.Zoom)
		})
	}
}

func TestKeyboardMovement(t *testing.T) {
	tests := []struct {
		direction Movement
		want      math3d.Vec3
	}{
		{Forward, math3d.V3(0, 0, 2)},
		{Backward, math3d.V3(0, 0, 4)},
		{Left, math3d.V3(-1, 0, 3)},
		{Right, math3d.V3(1, 0, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.direction.String(), func(t *testing.T) {
			c := NewDefault()
			c.MovementSpeed = 2
			c.ProcessKeyboard(tt.direction, 0.5)
			assert.True(t, c.Position.ApproxEqual(tt.want, tol), "position %v", c.Position)
		})
	}
}

func TestKeyboardHasNoVerticalMovement(t *testing.T) {
	c := NewDefault()
	c.ProcessMouseMovement(0, 400, true) // look up steeply
	c.ProcessKeyboard(Left, 1)
	c.ProcessKeyboard(Right, 3)
	assert.InDelta(t, 0, c.Position.Y, tol)
}

func TestViewMatrix(t *testing.T) {
	c := New(math3d.V3(1, 2, 3), DefaultWorldUp, -60, 20)

	eye := mgl32.Vec3{1, 2, 3}
	f := c.Front()
	center := eye.Add(mgl32.Vec3{f.X, f.Y, f.Z})
	u := c.Up()
	want := mgl32.LookAtV(eye, center, mgl32.Vec3{u.X, u.Y, u.Z})

	assert.True(t, c.ViewMatrix().ApproxEqual(math3d.FromMGL(want), 1e-5))
	assert.True(t, c.ViewMatrix().MulPoint(c.Position).ApproxEqual(math3d.Vec3{}, 1e-5))
}

func TestProjectionUsesZoom(t *testing.T) {
	c := NewDefault()
	c.ProcessMouseScroll(15)

	m, err := c.Projection(16.0/9.0, 0.1, 100)
	require.NoError(t, err)
	want := mgl32.Perspective(mgl32.DegToRad(30), 16.0/9.0, 0.1, 100)
	assert.True(t, m.ApproxEqual(math3d.FromMGL(want), 1e-4))

	_, err = c.Projection(0, 0.1, 100)
	assert.ErrorIs(t, err, math3d.ErrInvalidProjection)
}

func TestSetWorldUp(t *testing.T) {
	c := NewDefault()
	c.SetWorldUp(math3d.V3(1, 0, 0))
	assert.Equal(t, math3d.V3(1, 0, 0), c.WorldUp())
	assert.InDelta(t, 0, c.Right().Dot(c.WorldUp()), tol)
	assert.InDelta(t, 1, c.Up().Length(), tol)
}
