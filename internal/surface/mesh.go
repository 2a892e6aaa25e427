// Package surface builds triangle meshes from user-drawn profile curves and
// from parametric height fields.
package surface

import (
	"unsafe"

	"revolve/internal/math3d"
)

// Vertex matches the shader input layout:
//
//	location 0: position vec3
//	location 1: normal   vec3
//
// packed tightly as float32 in this order.
type Vertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
}

// VertexStride is the size in bytes of one Vertex in a vertex buffer.
const VertexStride = int32(unsafe.Sizeof(Vertex{}))

// NormalOffset is the byte offset of Vertex.Normal.
const NormalOffset = int(unsafe.Offsetof(Vertex{}.Normal))

// Mesh is an indexed triangle list. Every three consecutive indices form one
// triangle.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

func (m Mesh) Empty() bool { return len(m.Vertices) == 0 }

func (m Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Bounds returns the axis-aligned bounding box of the vertex positions. An
// empty mesh reports zero bounds.
func (m Mesh) Bounds() (lo, hi math3d.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo, hi = m.Vertices[0].Position, m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		p := v.Position
		lo = math3d.V3(min(lo.X, p.X), min(lo.Y, p.Y), min(lo.Z, p.Z))
		hi = math3d.V3(max(hi.X, p.X), max(hi.Y, p.Y), max(hi.Z, p.Z))
	}
	return lo, hi
}

// Triangle returns the three corner positions of triangle i.
func (m Mesh) Triangle(i int) (a, b, c math3d.Vec3) {
	return m.Vertices[m.Indices[3*i]].Position,
		m.Vertices[m.Indices[3*i+1]].Position,
		m.Vertices[m.Indices[3*i+2]].Position
}
