package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
)

// Attribute locations shared by every shader.
const (
	attribPosition = 0
	attribNormal   = 1
	attribUV       = 2
)

// buffer is a vertex array with one VBO per attribute so that positions can
// be streamed without touching the rest.
type buffer struct {
	vao       uint32
	vbos      [3]uint32
	ebo       uint32
	primitive uint32
	count     int32
	indexed   bool
}

func newBuffer(g *gpu.Geometry) (*buffer, error) {
	if len(g.Positions) == 0 {
		return nil, gpu.ErrEmptyGeometry
	}

	b := &buffer{primitive: gl.TRIANGLES}
	if g.Primitive == gpu.Points {
		b.primitive = gl.POINTS
	}

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	posUsage := uint32(gl.STATIC_DRAW)
	if g.Dynamic {
		posUsage = gl.DYNAMIC_DRAW
	}
	b.vbos[attribPosition] = uploadAttrib(attribPosition, 3, g.Positions, posUsage)
	if len(g.Normals) > 0 {
		b.vbos[attribNormal] = uploadAttrib(attribNormal, 3, g.Normals, gl.STATIC_DRAW)
	}
	if len(g.UVs) > 0 {
		b.vbos[attribUV] = uploadAttrib(attribUV, 2, g.UVs, gl.STATIC_DRAW)
	}

	if len(g.Indices) > 0 {
		gl.GenBuffers(1, &b.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, gl.Ptr(g.Indices), gl.STATIC_DRAW)
		b.indexed = true
		b.count = int32(len(g.Indices))
	} else {
		b.count = int32(g.VertexCount())
	}

	gl.BindVertexArray(0)
	return b, nil
}

func uploadAttrib(index uint32, size int32, data []float32, usage uint32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
	gl.EnableVertexAttribArray(index)
	gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, false, size*4, 0)
	return vbo
}

// Update rewrites the position buffer. The vertex count must not change.
func (b *buffer) Update(positions []float32) {
	if b.vbos[attribPosition] == 0 || len(positions) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbos[attribPosition])
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(positions)*4, gl.Ptr(positions))
}

func (b *buffer) draw() {
	gl.BindVertexArray(b.vao)
	if b.indexed {
		gl.DrawElementsWithOffset(b.primitive, b.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(b.primitive, 0, b.count)
	}
	gl.BindVertexArray(0)
}

// Release deletes the GL objects. Safe to call more than once.
func (b *buffer) Release() {
	for i := range b.vbos {
		if b.vbos[i] != 0 {
			gl.DeleteBuffers(1, &b.vbos[i])
			b.vbos[i] = 0
		}
	}
	if b.ebo != 0 {
		gl.DeleteBuffers(1, &b.ebo)
		b.ebo = 0
	}
	if b.vao != 0 {
		gl.DeleteVertexArrays(1, &b.vao)
		b.vao = 0
	}
}
