package render

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"revolve/internal/math3d"
	"revolve/internal/surface"
)

// MeshBuffer holds a VAO with interleaved position/normal vertices and an
// element buffer.
type MeshBuffer struct {
	vao, vbo, ebo uint32
	count         int32
}

func NewMeshBuffer() *MeshBuffer {
	b := &MeshBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.GenBuffers(1, &b.ebo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, surface.VertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, surface.VertexStride, gl.PtrOffset(surface.NormalOffset))

	gl.BindVertexArray(0)
	return b
}

// Upload replaces the buffer contents with m.
func (b *MeshBuffer) Upload(m surface.Mesh) {
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(m.Vertices) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*int(surface.VertexStride), gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	if len(m.Indices) > 0 {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	} else {
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, 0, nil, gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)
	b.count = int32(len(m.Indices))
}

func (b *MeshBuffer) Draw() {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.count, gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (b *MeshBuffer) Delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteBuffers(1, &b.ebo)
}

// PointBuffer holds a dynamic list of positions drawn as points or as a
// line strip.
type PointBuffer struct {
	vao, vbo uint32
	count    int32
}

func NewPointBuffer() *PointBuffer {
	b := &PointBuffer{}
	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return b
}

func (b *PointBuffer) Upload(pts []math3d.Vec3) {
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	if len(pts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(pts)*3*4, gl.Ptr(pts), gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	b.count = int32(len(pts))
}

func (b *PointBuffer) draw(mode uint32) {
	if b.count == 0 {
		return
	}
	gl.BindVertexArray(b.vao)
	gl.DrawArrays(mode, 0, b.count)
	gl.BindVertexArray(0)
}

func (b *PointBuffer) DrawPoints()    { b.draw(gl.POINTS) }
func (b *PointBuffer) DrawLineStrip() { b.draw(gl.LINE_STRIP) }

func (b *PointBuffer) Delete() {
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteBuffers(1, &b.vbo)
}
