package surface

import "revolve/internal/math3d"

// Profile is the ordered, append-only list of points a user clicks in the
// drawing plane. Duplicates are kept.
type Profile struct {
	points []math3d.Vec3
}

// AddPoint appends a point in the z=0 plane.
func (p *Profile) AddPoint(x, y float32) { p.points = append(p.points, math3d.V3(x, y, 0)) }

func (p *Profile) Add(v math3d.Vec3) { p.points = append(p.points, v) }

// Points returns the points in insertion order. The slice is shared with
// the profile and is only valid until the next mutation.
func (p *Profile) Points() []math3d.Vec3 { return p.points }

func (p *Profile) Len() int { return len(p.points) }

func (p *Profile) Clear() { p.points = p.points[:0] }
