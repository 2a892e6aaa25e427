package surface

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"revolve/internal/math3d"
)

var (
	ErrInvalidSegments = errors.New("segment count must be at least 1")
	ErrInvalidAxis     = errors.New("rotation axis must be X, Y or Z")
	ErrMeshTooLarge    = errors.New("mesh exceeds 32-bit index range")
)

// Axis is one of the three principal axes a profile can be revolved about.
type Axis byte

const (
	AxisX Axis = 'X'
	AxisY Axis = 'Y'
	AxisZ Axis = 'Z'
)

// ParseAxis accepts "x", "y" or "z" in either case.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "X":
		return AxisX, nil
	case "Y":
		return AxisY, nil
	case "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAxis, s)
}

func (a Axis) String() string { return string(a) }

// Vector returns the unit direction of the axis.
func (a Axis) Vector() math3d.Vec3 {
	switch a {
	case AxisX:
		return math3d.V3(1, 0, 0)
	case AxisY:
		return math3d.V3(0, 1, 0)
	case AxisZ:
		return math3d.V3(0, 0, 1)
	}
	return math3d.Vec3{}
}

func (a Axis) valid() bool { return a == AxisX || a == AxisY || a == AxisZ }

func (a Axis) rotate(v math3d.Vec3, angle float32) math3d.Vec3 {
	switch a {
	case AxisX:
		return v.RotateX(angle)
	case AxisY:
		return v.RotateY(angle)
	default:
		return v.RotateZ(angle)
	}
}

// Revolve sweeps profile around axis in segments equal angular steps and
// returns the resulting surface. Ring k holds the profile rotated by
// k·2π/segments; ring segments is a copy of ring 0 so the seam closes
// exactly. The mesh has (segments+1)·n vertices and segments·(n-1)·2
// triangles for an n-point profile. Profiles with fewer than two points
// produce an empty mesh.
func Revolve(profile []math3d.Vec3, segments int, axis Axis) (Mesh, error) {
	if segments < 1 {
		return Mesh{}, fmt.Errorf("%w: got %d", ErrInvalidSegments, segments)
	}
	if !axis.valid() {
		return Mesh{}, fmt.Errorf("%w: %q", ErrInvalidAxis, rune(axis))
	}
	n := len(profile)
	if n < 2 {
		return Mesh{}, nil
	}
	if uint64(segments+1)*uint64(n) > math.MaxUint32 {
		return Mesh{}, fmt.Errorf("%w: %d rings of %d points", ErrMeshTooLarge, segments+1, n)
	}

	normals := profileNormals(profile, axis.Vector())

	vertices := make([]Vertex, 0, (segments+1)*n)
	step := 2 * math.Pi / float64(segments)
	for k := 0; k < segments; k++ {
		angle := float32(float64(k) * step)
		for i, p := range profile {
			vertices = append(vertices, Vertex{
				Position: axis.rotate(p, angle),
				Normal:   axis.rotate(normals[i], angle),
			})
		}
	}
	vertices = append(vertices, vertices[:n]...)

	indices := make([]uint32, 0, segments*(n-1)*6)
	for k := 0; k < segments; k++ {
		ring := uint32(k * n)
		next := uint32((k + 1) * n)
		for i := uint32(0); i < uint32(n-1); i++ {
			indices = append(indices,
				ring+i, next+i, ring+i+1,
				ring+i+1, next+i, next+i+1,
			)
		}
	}

	return Mesh{Vertices: vertices, Indices: indices}, nil
}

// profileNormals returns a unit normal for every profile point in the
// profile's own frame (ring 0). Normals are perpendicular to both the local
// profile tangent and the direction of rotation and point away from the
// axis. Points on the axis get the axis direction itself.
func profileNormals(profile []math3d.Vec3, axis math3d.Vec3) []math3d.Vec3 {
	n := len(profile)

	// Unit direction of each segment; zero for a degenerate segment so it
	// contributes nothing to its neighbours.
	dirs := make([]math3d.Vec3, n-1)
	for i := range dirs {
		dirs[i] = profile[i+1].Sub(profile[i]).Normalized()
	}

	// Direction of travel under rotation, A × p. Zero on the axis.
	swirl := make([]math3d.Vec3, n)
	for i, p := range profile {
		swirl[i] = axis.Cross(p).Normalized()
	}

	normals := make([]math3d.Vec3, n)
	for i, p := range profile {
		tangent := profileTangent(dirs, i)
		s := swirl[i]
		if s == (math3d.Vec3{}) {
			s = nearestNonZero(swirl, i)
		}
		nrm := s.Cross(tangent).Normalized()

		radial := p.Sub(axis.Mul(p.Dot(axis)))
		if radial.Length() <= math3d.Epsilon {
			if nrm.Dot(axis) < 0 {
				normals[i] = axis.Neg()
			} else {
				normals[i] = axis
			}
			continue
		}
		radial = radial.Normalized()
		switch {
		case nrm == (math3d.Vec3{}):
			nrm = radial
		case nrm.Dot(radial) < 0:
			nrm = nrm.Neg()
		}
		normals[i] = nrm
	}
	return normals
}

// profileTangent averages the unit directions of the segments meeting at
// point i. When they cancel or are both degenerate it falls back to the
// nearest usable segment.
func profileTangent(dirs []math3d.Vec3, i int) math3d.Vec3 {
	var t math3d.Vec3
	if i > 0 {
		t = t.Add(dirs[i-1])
	}
	if i < len(dirs) {
		t = t.Add(dirs[i])
	}
	if t = t.Normalized(); t != (math3d.Vec3{}) {
		return t
	}

	for d := 1; d <= len(dirs); d++ {
		if j := i + d - 1; j < len(dirs) && dirs[j] != (math3d.Vec3{}) {
			return dirs[j]
		}
		if j := i - d; j >= 0 && dirs[j] != (math3d.Vec3{}) {
			return dirs[j]
		}
	}
	return math3d.Vec3{}
}

func nearestNonZero(vs []math3d.Vec3, i int) math3d.Vec3 {
	for d := 1; d < len(vs); d++ {
		if j := i - d; j >= 0 && vs[j] != (math3d.Vec3{}) {
			return vs[j]
		}
		if j := i + d; j < len(vs) && vs[j] != (math3d.Vec3{}) {
			return vs[j]
		}
	}
	return math3d.Vec3{}
}
