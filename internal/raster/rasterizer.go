// Package raster draws meshes and curves into an image.RGBA on the CPU. It
// consumes the same MVP matrices and index buffers as the OpenGL path and
// is used for headless previews.
package raster

import (
	"image"
	"image/color"
	"math"

	"revolve/internal/math3d"
	"revolve/internal/surface"
)

var (
	Background = color.RGBA{26, 26, 26, 255}
	Yellow     = color.RGBA{255, 255, 0, 255}
	Green      = color.RGBA{0, 255, 0, 255}
	Surface    = color.RGBA{128, 179, 204, 255}
)

// NewCanvas returns a width×height image filled with Background.
func NewCanvas(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	Clear(img, Background)
	return img
}

func Clear(img *image.RGBA, col color.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = col.R
		img.Pix[i+1] = col.G
		img.Pix[i+2] = col.B
		img.Pix[i+3] = col.A
	}
}

// DrawLine draws a line on the image from (x1, y1) to (x2, y2) by stepping
// along the major axis. The line is first clipped to the image, so the cost
// is bounded by the image size however far off-screen the end points lie.
func DrawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	fx1, fy1, fx2, fy2, ok := clipToRect(float64(x1), float64(y1), float64(x2), float64(y2), img.Rect)
	if !ok {
		return
	}
	x1, y1 = int(math.Round(fx1)), int(math.Round(fy1))
	x2, y2 = int(math.Round(fx2)), int(math.Round(fy2))

	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := math.Max(math.Abs(dx), math.Abs(dy))
	if steps == 0 {
		plot(img, x1, y1, col)
		return
	}

	xInc := dx / steps
	yInc := dy / steps

	x := float64(x1)
	y := float64(y1)

	for i := 0; i <= int(steps); i++ {
		plot(img, int(math.Round(x)), int(math.Round(y)), col)
		x += xInc
		y += yInc
	}
}

// clipToRect trims a segment to the pixel centres covered by r
// (Liang-Barsky). ok is false when nothing is left.
func clipToRect(x1, y1, x2, y2 float64, r image.Rectangle) (float64, float64, float64, float64, bool) {
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	dx, dy := x2-x1, y2-y1
	edges := [4][2]float64{
		{-dx, x1 - float64(r.Min.X)},
		{dx, float64(r.Max.X-1) - x1},
		{-dy, y1 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y-1) - y1},
	}
	t0, t1 := 0.0, 1.0
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return 0, 0, 0, 0, false
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}

func plot(img *image.RGBA, x, y int, col color.RGBA) {
	if !(image.Point{x, y}).In(img.Rect) {
		return
	}
	offset := img.PixOffset(x, y)
	img.Pix[offset] = col.R
	img.Pix[offset+1] = col.G
	img.Pix[offset+2] = col.B
	img.Pix[offset+3] = col.A
}

// Project maps p through mvp to pixel coordinates of a width×height image,
// with y growing downwards. ok is false for points outside the near and far
// planes, which includes everything at or behind the eye.
func Project(mvp math3d.Mat4, p math3d.Vec3, width, height int) (x, y int, ok bool) {
	clip := mvp.MulVec4(p.Vec4(1))
	if clip.W <= math3d.Epsilon || clip.Z < -clip.W || clip.Z > clip.W {
		return 0, 0, false
	}
	fx, fy := toPixels(clip, width, height)
	return int(math.Round(fx)), int(math.Round(fy)), true
}

func toPixels(clip math3d.Vec4, width, height int) (float64, float64) {
	ndcX := float64(clip.X / clip.W)
	ndcY := float64(clip.Y / clip.W)
	return (ndcX + 1) / 2 * float64(width), (1 - ndcY) / 2 * float64(height)
}

// clipSegment trims the segment a-b to the view volume -w <= x, y, z <= w
// in homogeneous clip space, the way GL clips primitives.
func clipSegment(a, b math3d.Vec4) (math3d.Vec4, math3d.Vec4, bool) {
	planes := [6]func(v math3d.Vec4) float32{
		func(v math3d.Vec4) float32 { return v.W + v.X },
		func(v math3d.Vec4) float32 { return v.W - v.X },
		func(v math3d.Vec4) float32 { return v.W + v.Y },
		func(v math3d.Vec4) float32 { return v.W - v.Y },
		func(v math3d.Vec4) float32 { return v.W + v.Z },
		func(v math3d.Vec4) float32 { return v.W - v.Z },
	}
	t0, t1 := float32(0), float32(1)
	for _, plane := range planes {
		da, db := plane(a), plane(b)
		if da < 0 && db < 0 {
			return a, b, false
		}
		if da < 0 {
			t0 = max(t0, da/(da-db))
		} else if db < 0 {
			t1 = min(t1, da/(da-db))
		}
		if t0 > t1 {
			return a, b, false
		}
	}
	lerp := func(t float32) math3d.Vec4 {
		return math3d.Vec4{
			X: a.X + (b.X-a.X)*t,
			Y: a.Y + (b.Y-a.Y)*t,
			Z: a.Z + (b.Z-a.Z)*t,
			W: a.W + (b.W-a.W)*t,
		}
	}
	ca, cb := lerp(t0), lerp(t1)
	if ca.W <= math3d.Epsilon || cb.W <= math3d.Epsilon {
		return a, b, false
	}
	return ca, cb, true
}

// drawClipped draws the visible part of the segment between two clip-space
// points and reports whether anything was inside the view volume.
func drawClipped(img *image.RGBA, a, b math3d.Vec4, col color.RGBA) bool {
	a, b, ok := clipSegment(a, b)
	if !ok {
		return false
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x1, y1 := toPixels(a, w, h)
	x2, y2 := toPixels(b, w, h)
	DrawLine(img, int(math.Round(x1)), int(math.Round(y1)), int(math.Round(x2)), int(math.Round(y2)), col)
	return true
}

// DrawMesh draws the edges of every triangle, clipped to the view volume. A
// triangle counts as drawn when any of its edges is at least partly visible.
// It returns the number of triangles drawn.
func DrawMesh(img *image.RGBA, m surface.Mesh, mvp math3d.Mat4, col color.RGBA) int {
	drawn := 0
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		ca := mvp.MulVec4(a.Vec4(1))
		cb := mvp.MulVec4(b.Vec4(1))
		cc := mvp.MulVec4(c.Vec4(1))
		visible := drawClipped(img, ca, cb, col)
		visible = drawClipped(img, cb, cc, col) || visible
		visible = drawClipped(img, cc, ca, col) || visible
		if visible {
			drawn++
		}
	}
	return drawn
}

// DrawPolyline connects consecutive points, the way a line strip does.
func DrawPolyline(img *image.RGBA, pts []math3d.Vec3, mvp math3d.Mat4, col color.RGBA) {
	for i := 1; i < len(pts); i++ {
		drawClipped(img, mvp.MulVec4(pts[i-1].Vec4(1)), mvp.MulVec4(pts[i].Vec4(1)), col)
	}
}

// DrawPoints draws each point as a filled square of the given size.
func DrawPoints(img *image.RGBA, pts []math3d.Vec3, mvp math3d.Mat4, size int, col color.RGBA) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	r := size / 2
	for _, p := range pts {
		x, y, ok := Project(mvp, p, w, h)
		if !ok {
			continue
		}
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				plot(img, x+dx, y+dy, col)
			}
		}
	}
}
