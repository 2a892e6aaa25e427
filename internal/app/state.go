// Package app holds the interactive session: which mode the user is in, the
// profile being drawn, the camera and the generated surface. The window
// layer feeds it input events and reads back one Frame of matrices per
// render pass.
package app

import (
	"fmt"

	"github.com/rs/zerolog"

	"revolve/internal/camera"
	"revolve/internal/config"
	"revolve/internal/math3d"
	"revolve/internal/surface"
)

// Mode selects what the window shows and how input is interpreted.
type Mode int

const (
	// InputPoints shows the drawing plane; clicks add profile points.
	InputPoints Mode = iota
	// ViewSurface shows the generated surface through the free camera.
	ViewSurface
)

func (m Mode) String() string {
	if m == ViewSurface {
		return "view-surface"
	}
	return "input-points"
}

// Frame is everything the renderer needs for one pass.
type Frame struct {
	Mode       Mode
	Projection math3d.Mat4
	View       math3d.Mat4
	Model      math3d.Mat4
	// SurfaceChanged is set on the first frame after the surface was
	// regenerated; GPU buffers must be re-uploaded.
	SurfaceChanged bool
}

// State is one interactive session. It is not safe for concurrent use; the
// window loop owns it.
type State struct {
	Mode    Mode
	Camera  *camera.Camera
	Profile surface.Profile
	Curve   []math3d.Vec3
	Surface surface.Mesh

	// Model rotation in degrees.
	RotationX, RotationY float32

	settings config.Settings
	axis     surface.Axis
	log      zerolog.Logger

	width, height int
	lastX, lastY  float32
	firstMouse    bool
	regenerate    bool
	dirty         bool
}

func New(settings config.Settings, log zerolog.Logger) *State {
	return &State{
		Mode:       InputPoints,
		Camera:     settings.NewCamera(),
		settings:   settings,
		axis:       settings.Axis(),
		log:        log,
		width:      settings.Window.Width,
		height:     settings.Window.Height,
		lastX:      float32(settings.Window.Width) / 2,
		lastY:      float32(settings.Window.Height) / 2,
		firstMouse: true,
	}
}

// Resize records the new framebuffer size.
func (s *State) Resize(width, height int) {
	s.width, s.height = width, height
}

func (s *State) Size() (int, int) { return s.width, s.height }

func (s *State) Aspect() float32 {
	return float32(s.width) / float32(s.height)
}

// ScreenToWorld maps a cursor position in pixels (y down) onto the drawing
// plane z=0, whose visible extent is [-aspect, aspect]x[-1, 1].
func (s *State) ScreenToWorld(xpos, ypos float64) math3d.Vec3 {
	ndcX := float32(xpos)/float32(s.width)*2 - 1
	ndcY := 1 - float32(ypos)/float32(s.height)*2
	return math3d.V3(ndcX*s.Aspect(), ndcY, 0)
}

// Click handles a left mouse press at the cursor position.
func (s *State) Click(xpos, ypos float64) {
	if s.Mode != InputPoints {
		return
	}
	s.AddPoint(s.ScreenToWorld(xpos, ypos))
}

// AddPoint appends a profile point given in drawing-plane coordinates and
// rebuilds the curve through the profile.
func (s *State) AddPoint(p math3d.Vec3) {
	s.Profile.AddPoint(p.X, p.Y)
	s.log.Debug().Stringer("point", p).Int("points", s.Profile.Len()).Msg("added profile point")

	if s.Profile.Len() >= 2 {
		s.Curve = surface.Curve(s.Profile.Points(), s.settings.Surface.CurveSubdivisions)
	}
}

// KeyPressed handles a discrete key press.
func (s *State) KeyPressed(k Key) {
	switch k {
	case KeyToggleMode:
		s.toggleMode()
	case KeyClear:
		if s.Mode != InputPoints {
			return
		}
		s.Profile.Clear()
		s.Curve = nil
		s.log.Info().Msg("cleared all points")
	}
}

func (s *State) toggleMode() {
	if s.Mode == ViewSurface {
		s.Mode = InputPoints
		s.log.Info().Stringer("mode", s.Mode).Msg("switched mode")
		return
	}
	if s.Profile.Len() < 2 {
		s.log.Warn().Int("points", s.Profile.Len()).Msg("add at least 2 points to generate a surface")
		return
	}
	s.Mode = ViewSurface
	s.regenerate = true
	s.firstMouse = true
	s.log.Info().Stringer("mode", s.Mode).Msg("switched mode")
}

// CursorMoved turns the camera while viewing the surface. The first event
// after entering the mode only latches the position.
func (s *State) CursorMoved(xpos, ypos float64) {
	if s.Mode != ViewSurface {
		return
	}
	x, y := float32(xpos), float32(ypos)
	if s.firstMouse {
		s.lastX, s.lastY = x, y
		s.firstMouse = false
	}

	xoffset := x - s.lastX
	yoffset := s.lastY - y // window y grows downwards
	s.lastX, s.lastY = x, y

	s.Camera.ProcessMouseMovement(xoffset, yoffset, true)
}

func (s *State) Scroll(yoffset float64) {
	if s.Mode != ViewSurface {
		return
	}
	s.Camera.ProcessMouseScroll(float32(yoffset))
}

// Update applies held keys for a frame lasting deltaTime seconds.
func (s *State) Update(deltaTime float32, held KeySet) {
	if s.Mode != ViewSurface {
		return
	}
	moves := []struct {
		key Key
		dir camera.Movement
	}{
		{KeyForward, camera.Forward},
		{KeyBackward, camera.Backward},
		{KeyLeft, camera.Left},
		{KeyRight, camera.Right},
	}
	for _, m := range moves {
		if held.Has(m.key) {
			s.Camera.ProcessKeyboard(m.dir, deltaTime)
		}
	}

	step := s.settings.Surface.RotationSpeed * deltaTime
	if held.Has(KeyRotateLeft) {
		s.RotationY -= step
	}
	if held.Has(KeyRotateRight) {
		s.RotationY += step
	}
	if held.Has(KeyRotateUp) {
		s.RotationX -= step
	}
	if held.Has(KeyRotateDown) {
		s.RotationX += step
	}
}

// Model returns the surface model matrix: rotation about X, then Y, in the
// object's local frame.
func (s *State) Model() math3d.Mat4 {
	return math3d.Identity().
		Rotated(math3d.Radians(s.RotationX), math3d.V3(1, 0, 0)).
		Rotated(math3d.Radians(s.RotationY), math3d.V3(0, 1, 0))
}

// Frame produces the matrices for the current mode, regenerating the surface
// first if the mode was just entered. A degenerate viewport returns
// math3d.ErrInvalidProjection and the caller should skip drawing. If the
// surface cannot be generated the state returns to InputPoints and the
// error is returned once.
func (s *State) Frame() (Frame, error) {
	if s.Mode == InputPoints {
		aspect := s.Aspect()
		proj, err := math3d.Orthographic(-aspect, aspect, -1, 1, -1, 1)
		if err != nil {
			return Frame{}, err
		}
		return Frame{
			Mode:       InputPoints,
			Projection: proj,
			View:       math3d.Identity(),
			Model:      math3d.Identity(),
		}, nil
	}

	proj, err := s.Camera.Projection(s.Aspect(), s.settings.Projection.Near, s.settings.Projection.Far)
	if err != nil {
		return Frame{}, err
	}

	f := Frame{
		Mode:       ViewSurface,
		Projection: proj,
		View:       s.Camera.ViewMatrix(),
		Model:      s.Model(),
	}
	if s.regenerate {
		s.regenerate = false
		if err := s.generate(); err != nil {
			s.Mode = InputPoints
			s.log.Error().Err(err).Msg("surface generation failed; back to drawing")
			return Frame{}, err
		}
		s.dirty = true
	}
	f.SurfaceChanged, s.dirty = s.dirty, false
	return f, nil
}

// ShowSurface switches to view mode with a prebuilt mesh. Leaving and
// re-entering view mode regenerates from the profile as usual.
func (s *State) ShowSurface(m surface.Mesh) {
	s.Surface = m
	s.Mode = ViewSurface
	s.regenerate = false
	s.dirty = true
	s.firstMouse = true
	s.log.Info().Stringer("mode", s.Mode).Int("triangles", m.TriangleCount()).Msg("showing prebuilt surface")
}

func (s *State) generate() error {
	src := s.Curve
	if len(src) == 0 {
		src = s.Profile.Points()
	}
	mesh, err := surface.Revolve(src, s.settings.Surface.Segments, s.axis)
	if err != nil {
		return fmt.Errorf("generating surface: %w", err)
	}
	s.Surface = mesh
	s.log.Debug().
		Int("vertices", len(mesh.Vertices)).
		Int("triangles", mesh.TriangleCount()).
		Stringer("axis", s.axis).
		Msg("generated revolution surface")
	return nil
}
