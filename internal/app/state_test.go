package app

import (
	"bytes"
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revolve/internal/camera"
	"revolve/internal/config"
	"revolve/internal/math3d"
	"revolve/internal/surface"
)

const tol = 1e-5

func newState(t *testing.T) *State {
	t.Helper()
	s := config.Default()
	s.Window.Width = 800
	s.Window.Height = 400
	s.Surface.Segments = 8
	return New(s, zerolog.Nop())
}

func TestScreenToWorld(t *testing.T) {
	s := newState(t)

	assert.True(t, s.ScreenToWorld(400, 200).ApproxEqual(math3d.Vec3{}, tol))
	assert.True(t, s.ScreenToWorld(0, 0).ApproxEqual(math3d.V3(-2, 1, 0), tol))
	assert.True(t, s.ScreenToWorld(800, 400).ApproxEqual(math3d.V3(2, -1, 0), tol))
}

func TestClickBuildsProfileAndCurve(t *testing.T) {
	s := newState(t)

	s.Click(400, 200)
	assert.Equal(t, 1, s.Profile.Len())
	assert.Nil(t, s.Curve)

	s.Click(600, 200)
	assert.Equal(t, 2, s.Profile.Len())
	require.Len(t, s.Curve, 2)
	assert.True(t, s.Curve[1].ApproxEqual(math3d.V3(1, 0, 0), tol))

	s.KeyPressed(KeyClear)
	assert.Equal(t, 0, s.Profile.Len())
	assert.Nil(t, s.Curve)
}

func TestToggleNeedsTwoPoints(t *testing.T) {
	var logs bytes.Buffer
	s := New(config.Default(), zerolog.New(&logs))

	s.KeyPressed(KeyToggleMode)
	assert.Equal(t, InputPoints, s.Mode)
	assert.Contains(t, logs.String(), "add at least 2 points")

	s.Click(640, 360)
	s.Click(900, 360)
	s.Click(900, 100)
	s.KeyPressed(KeyToggleMode)
	assert.Equal(t, ViewSurface, s.Mode)

	// Clicks and clears are ignored while viewing.
	s.Click(10, 10)
	s.KeyPressed(KeyClear)
	assert.Equal(t, 3, s.Profile.Len())

	s.KeyPressed(KeyToggleMode)
	assert.Equal(t, InputPoints, s.Mode)
}

func TestInputFrame(t *testing.T) {
	s := newState(t)
	f, err := s.Frame()
	require.NoError(t, err)

	assert.Equal(t, InputPoints, f.Mode)
	assert.Equal(t, math3d.Identity(), f.View)
	assert.Equal(t, math3d.Identity(), f.Model)

	// A click maps back to the same spot in NDC.
	p := s.ScreenToWorld(200, 100)
	ndc := f.Projection.MulPoint(p)
	assert.True(t, ndc.ApproxEqual(math3d.V3(-0.5, 0.5, 0), tol), "ndc %v", ndc)
}

func TestViewFrameGeneratesSurfaceOnce(t *testing.T) {
	s := newState(t)
	s.Click(400, 300)
	s.Click(600, 300)
	s.Click(600, 100)
	s.KeyPressed(KeyToggleMode)

	f, err := s.Frame()
	require.NoError(t, err)
	assert.Equal(t, ViewSurface, f.Mode)
	assert.True(t, f.SurfaceChanged)
	assert.Len(t, s.Surface.Vertices, (8+1)*3)
	assert.Equal(t, 8*2*2, s.Surface.TriangleCount())

	want, err := s.Camera.Projection(2, 0.1, 100)
	require.NoError(t, err)
	assert.Equal(t, want, f.Projection)
	assert.Equal(t, s.Camera.ViewMatrix(), f.View)

	f, err = s.Frame()
	require.NoError(t, err)
	assert.False(t, f.SurfaceChanged)
}

func TestDegenerateViewportSkipsFrame(t *testing.T) {
	s := newState(t)
	s.Resize(800, 0)
	_, err := s.Frame()
	assert.ErrorIs(t, err, math3d.ErrInvalidProjection)

	s.Resize(0, 0)
	_, err = s.Frame()
	assert.ErrorIs(t, err, math3d.ErrInvalidProjection)
}

func TestGenerationFailureReturnsToDrawing(t *testing.T) {
	var logs bytes.Buffer
	settings := config.Default()
	settings.Surface.Segments = math.MaxUint32
	s := New(settings, zerolog.New(&logs))
	s.AddPoint(math3d.V3(0, 0, 0))
	s.AddPoint(math3d.V3(1, 0, 0))
	s.KeyPressed(KeyToggleMode)
	require.Equal(t, ViewSurface, s.Mode)

	_, err := s.Frame()
	assert.ErrorIs(t, err, surface.ErrMeshTooLarge)
	assert.Equal(t, InputPoints, s.Mode)
	assert.Contains(t, logs.String(), `"level":"error"`)

	// The failure is reported once, not on every frame.
	_, err = s.Frame()
	assert.NoError(t, err)
}

func enterView(t *testing.T) *State {
	t.Helper()
	s := newState(t)
	s.Click(400, 300)
	s.Click(600, 300)
	s.KeyPressed(KeyToggleMode)
	require.Equal(t, ViewSurface, s.Mode)
	return s
}

func TestUpdateMovesCameraAndModel(t *testing.T) {
	s := enterView(t)
	start := s.Camera.Position

	s.Update(0.5, Keys(KeyForward, KeyRotateRight, KeyRotateUp))
	moved := s.Camera.Position.Sub(start)
	assert.InDelta(t, camera.DefaultSpeed*0.5, moved.Length(), tol)
	assert.InDelta(t, 25, s.RotationY, tol)
	assert.InDelta(t, -25, s.RotationX, tol)

	s.Update(0.5, Keys(KeyRotateLeft, KeyRotateDown))
	assert.InDelta(t, 0, s.RotationY, tol)
	assert.InDelta(t, 0, s.RotationX, tol)
	assert.True(t, s.Model().ApproxEqual(math3d.Identity(), tol))

	// Nothing moves while drawing points.
	in := newState(t)
	before := in.Camera.Position
	in.Update(1, Keys(KeyForward, KeyRotateRight))
	assert.Equal(t, before, in.Camera.Position)
	assert.Equal(t, float32(0), in.RotationY)
}

func TestModelRotationOrder(t *testing.T) {
	s := newState(t)
	s.RotationX, s.RotationY = 90, 90

	// Y is applied to the point first, then X.
	got := s.Model().MulPoint(math3d.V3(1, 0, 0))
	assert.True(t, got.ApproxEqual(math3d.V3(0, 1, 0), tol), "got %v", got)
}

func TestCursorLook(t *testing.T) {
	s := enterView(t)
	yaw := s.Camera.Yaw()

	// The first event only latches.
	s.CursorMoved(100, 100)
	assert.Equal(t, yaw, s.Camera.Yaw())

	s.CursorMoved(200, 50)
	assert.InDelta(t, yaw+10, s.Camera.Yaw(), tol)
	assert.InDelta(t, 5, s.Camera.Pitch(), tol)

	s.Scroll(10)
	assert.Equal(t, float32(35), s.Camera.Zoom)
}

func TestCursorIgnoredWhileDrawing(t *testing.T) {
	s := newState(t)
	yaw := s.Camera.Yaw()
	s.CursorMoved(10, 10)
	s.CursorMoved(500, 500)
	s.Scroll(5)
	assert.Equal(t, yaw, s.Camera.Yaw())
	assert.Equal(t, camera.DefaultZoom, s.Camera.Zoom)
}

func TestAddPointUsesPlaneCoordinates(t *testing.T) {
	s := newState(t)
	s.AddPoint(math3d.V3(0.5, -1, 0))
	s.AddPoint(math3d.V3(1, 1, 0))
	require.Len(t, s.Curve, 2)
	assert.Equal(t, math3d.V3(0.5, -1, 0), s.Profile.Points()[0])
}

func TestShowSurface(t *testing.T) {
	s := newState(t)
	g, err := surface.Grid(4, 0.5, nil)
	require.NoError(t, err)

	s.ShowSurface(g.Mesh)
	assert.Equal(t, ViewSurface, s.Mode)

	f, err := s.Frame()
	require.NoError(t, err)
	assert.True(t, f.SurfaceChanged)
	assert.Equal(t, 18, s.Surface.TriangleCount())

	f, err = s.Frame()
	require.NoError(t, err)
	assert.False(t, f.SurfaceChanged)
}

func TestKeySet(t *testing.T) {
	k := Keys(KeyLeft, KeyClear)
	assert.True(t, k.Has(KeyLeft))
	assert.True(t, k.Has(KeyClear))
	assert.False(t, k.Has(KeyRight))
	assert.True(t, k.With(KeyRight).Has(KeyRight))
}
