package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"revolve/internal/camera"
	"revolve/internal/math3d"
	"revolve/internal/surface"
)

var ErrInvalidSettings = errors.New("invalid settings")

// MaxSegments is the largest accepted surface.segments.
const MaxSegments = 4096

// Settings is the YAML settings file. Missing keys keep their Default value.
type Settings struct {
	Window     WindowSettings     `yaml:"window"`
	Camera     CameraSettings     `yaml:"camera"`
	Projection ProjectionSettings `yaml:"projection"`
	Surface    SurfaceSettings    `yaml:"surface"`
}

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CameraSettings struct {
	Position    [3]float32 `yaml:"position"`
	Yaw         float32    `yaml:"yaw"`
	Pitch       float32    `yaml:"pitch"`
	Speed       float32    `yaml:"speed"`
	Sensitivity float32    `yaml:"sensitivity"`
	Zoom        float32    `yaml:"zoom"`
}

type ProjectionSettings struct {
	Near float32 `yaml:"near"`
	Far  float32 `yaml:"far"`
}

type SurfaceSettings struct {
	Segments int    `yaml:"segments"`
	Axis     string `yaml:"axis"`
	// RotationSpeed is how fast the arrow keys spin the model, in degrees
	// per second.
	RotationSpeed     float32 `yaml:"rotationSpeed"`
	CurveSubdivisions int     `yaml:"curveSubdivisions"`
}

func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "Revolution Surface",
		},
		Camera: CameraSettings{
			Position:    [3]float32{0, 0.5, 3},
			Yaw:         camera.DefaultYaw,
			Pitch:       camera.DefaultPitch,
			Speed:       camera.DefaultSpeed,
			Sensitivity: camera.DefaultSensitivity,
			Zoom:        camera.DefaultZoom,
		},
		Projection: ProjectionSettings{
			Near: 0.1,
			Far:  100,
		},
		Surface: SurfaceSettings{
			Segments:          32,
			Axis:              "Y",
			RotationSpeed:     50,
			CurveSubdivisions: 1,
		},
	}
}

// Load reads a YAML settings file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Settings, error) {
	s := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("parsing settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	switch {
	case s.Window.Width <= 0 || s.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidSettings, s.Window.Width, s.Window.Height)
	case !(s.Projection.Near > 0) || !(s.Projection.Far > s.Projection.Near):
		return fmt.Errorf("%w: projection planes near=%g far=%g", ErrInvalidSettings, s.Projection.Near, s.Projection.Far)
	case s.Surface.Segments < 1 || s.Surface.Segments > MaxSegments:
		return fmt.Errorf("%w: surface segments %d outside [1, %d]", ErrInvalidSettings, s.Surface.Segments, MaxSegments)
	case s.Camera.Zoom < camera.MinZoom || s.Camera.Zoom > camera.MaxZoom:
		return fmt.Errorf("%w: camera zoom %g outside [%g, %g]", ErrInvalidSettings, s.Camera.Zoom, camera.MinZoom, camera.MaxZoom)
	case s.Camera.Speed < 0 || s.Camera.Sensitivity < 0:
		return fmt.Errorf("%w: negative camera speed or sensitivity", ErrInvalidSettings)
	}
	if _, err := surface.ParseAxis(s.Surface.Axis); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	return nil
}

// Axis returns the parsed rotation axis. Settings that passed Validate
// always have one.
func (s Settings) Axis() surface.Axis {
	a, err := surface.ParseAxis(s.Surface.Axis)
	if err != nil {
		return surface.AxisY
	}
	return a
}

// NewCamera builds a camera posed and tuned by the settings.
func (s Settings) NewCamera() *camera.Camera {
	p := s.Camera.Position
	c := camera.New(math3d.V3(p[0], p[1], p[2]), camera.DefaultWorldUp, s.Camera.Yaw, s.Camera.Pitch)
	c.MovementSpeed = s.Camera.Speed
	c.MouseSensitivity = s.Camera.Sensitivity
	c.Zoom = s.Camera.Zoom
	return c
}

// Write encodes the settings as YAML.
func (s Settings) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}
