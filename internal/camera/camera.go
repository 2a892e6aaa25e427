// Package camera implements a yaw/pitch free-fly camera. Orientation is
// held as Euler angles in degrees and the orthonormal basis is re-derived
// from them after every change.
package camera

import (
	"math"

	"revolve/internal/math3d"
)

// Movement is a keyboard direction relative to where the camera faces.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

func (m Movement) String() string {
	switch m {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

const (
	DefaultYaw         float32 = -90
	DefaultPitch       float32 = 0
	DefaultSpeed       float32 = 2.5
	DefaultSensitivity float32 = 0.1
	DefaultZoom        float32 = 45

	MaxPitch float32 = 89
	MinZoom  float32 = 1
	MaxZoom  float32 = 75
)

var (
	DefaultPosition = math3d.V3(0, 0, 3)
	DefaultWorldUp  = math3d.V3(0, 1, 0)
)

// Camera is a fly camera that never rolls: yaw turns about the world up axis
// and pitch is clamped short of straight up or down.
type Camera struct {
	Position         math3d.Vec3
	MovementSpeed    float32
	MouseSensitivity float32
	// Zoom is the vertical field of view in degrees; smaller is closer.
	Zoom float32

	front   math3d.Vec3
	right   math3d.Vec3
	up      math3d.Vec3
	worldUp math3d.Vec3
	yaw     float32
	pitch   float32
}

// New creates a camera at position with the given world-up reference and
// orientation in degrees.
func New(position, worldUp math3d.Vec3, yaw, pitch float32) *Camera {
	c := &Camera{
		Position:         position,
		MovementSpeed:    DefaultSpeed,
		MouseSensitivity: DefaultSensitivity,
		Zoom:             DefaultZoom,
		front:            math3d.V3(0, 0, -1),
		worldUp:          worldUp,
		yaw:              yaw,
		pitch:            pitch,
	}
	c.updateVectors()
	return c
}

// NewDefault creates a camera at (0,0,3) looking down -Z.
func NewDefault() *Camera {
	return New(DefaultPosition, DefaultWorldUp, DefaultYaw, DefaultPitch)
}

func (c *Camera) Front() math3d.Vec3   { return c.front }
func (c *Camera) Right() math3d.Vec3   { return c.right }
func (c *Camera) Up() math3d.Vec3      { return c.up }
func (c *Camera) WorldUp() math3d.Vec3 { return c.worldUp }
func (c *Camera) Yaw() float32         { return c.yaw }
func (c *Camera) Pitch() float32       { return c.pitch }

// SetWorldUp changes the world-up reference and re-derives the basis.
func (c *Camera) SetWorldUp(up math3d.Vec3) {
	c.worldUp = up
	c.updateVectors()
}

// ViewMatrix returns the view transform for the current pose.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Position.Add(c.front), c.up)
}

// Projection returns a perspective projection using Zoom as the vertical
// field of view.
func (c *Camera) Projection(aspect, zNear, zFar float32) (math3d.Mat4, error) {
	return math3d.Perspective(math3d.Radians(c.Zoom), aspect, zNear, zFar)
}

// ProcessKeyboard moves the camera in the horizontal basis plane. There is
// no vertical movement.
func (c *Camera) ProcessKeyboard(direction Movement, deltaTime float32) {
	velocity := c.MovementSpeed * deltaTime
	switch direction {
	case Forward:
		c.Position.AddAssign(c.front.Mul(velocity))
	case Backward:
		c.Position.SubAssign(c.front.Mul(velocity))
	case Left:
		c.Position.SubAssign(c.right.Mul(velocity))
	case Right:
		c.Position.AddAssign(c.right.Mul(velocity))
	}
}

// ProcessMouseMovement turns the camera by the given cursor offsets.
func (c *Camera) ProcessMouseMovement(xoffset, yoffset float32, constrainPitch bool) {
	c.yaw += xoffset * c.MouseSensitivity
	c.pitch += yoffset * c.MouseSensitivity

	if constrainPitch {
		c.pitch = clamp(c.pitch, -MaxPitch, MaxPitch)
	}

	c.updateVectors()
}

// ProcessMouseScroll narrows the field of view for positive offsets.
func (c *Camera) ProcessMouseScroll(yoffset float32) {
	c.Zoom = clamp(c.Zoom-yoffset, MinZoom, MaxZoom)
}

// updateVectors is the only place front, right and up are derived.
func (c *Camera) updateVectors() {
	yaw := float64(math3d.Radians(c.yaw))
	pitch := float64(math3d.Radians(c.pitch))

	front := math3d.V3(
		float32(math.Cos(yaw)*math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw)*math.Cos(pitch)),
	)
	c.front = front.Normalized()
	c.right = c.front.Cross(c.worldUp).Normalized()
	c.up = c.right.Cross(c.front).Normalized()
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
