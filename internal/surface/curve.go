package surface

import "revolve/internal/math3d"

// Curve builds the drawn curve through the control points. With
// segmentsPerSpan <= 1 it is the polyline through the points; otherwise each
// span is subdivided with a uniform Catmull-Rom spline, which still passes
// through every control point. Fewer than two control points give no curve.
func Curve(control []math3d.Vec3, segmentsPerSpan int) []math3d.Vec3 {
	if len(control) < 2 {
		return nil
	}
	if segmentsPerSpan <= 1 {
		return append([]math3d.Vec3(nil), control...)
	}

	n := len(control)
	out := make([]math3d.Vec3, 0, (n-1)*segmentsPerSpan+1)
	for i := 0; i < n-1; i++ {
		p0 := control[max(i-1, 0)]
		p1 := control[i]
		p2 := control[i+1]
		p3 := control[min(i+2, n-1)]
		for s := 0; s < segmentsPerSpan; s++ {
			t := float32(s) / float32(segmentsPerSpan)
			out = append(out, catmullRom(p0, p1, p2, p3, t))
		}
	}
	return append(out, control[n-1])
}

func catmullRom(p0, p1, p2, p3 math3d.Vec3, t float32) math3d.Vec3 {
	t2 := t * t
	t3 := t2 * t
	// 0.5 * (2p1 + (-p0+p2)t + (2p0-5p1+4p2-p3)t² + (-p0+3p1-3p2+p3)t³)
	a := p1.Mul(2)
	b := p2.Sub(p0).Mul(t)
	c := p0.Mul(2).Sub(p1.Mul(5)).Add(p2.Mul(4)).Sub(p3).Mul(t2)
	d := p0.Neg().Add(p1.Mul(3)).Sub(p2.Mul(3)).Add(p3).Mul(t3)
	return a.Add(b).Add(c).Add(d).Mul(0.5)
}
