package scenegraph

import (
	"errors"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/pkg/math"
)

// ErrDisposed is returned when a disposed mesh is asked for its buffer.
var ErrDisposed = errors.New("scenegraph: mesh disposed")

// Shader selects the program a material is drawn with.
type Shader int

const (
	ShaderToon Shader = iota
	ShaderOutline
	ShaderFlame
	ShaderPoints
	ShaderTextured
)

func (s Shader) String() string {
	switch s {
	case ShaderToon:
		return "toon"
	case ShaderOutline:
		return "outline"
	case ShaderFlame:
		return "flame"
	case ShaderPoints:
		return "points"
	case ShaderTextured:
		return "textured"
	default:
		return "unknown"
	}
}

// Material describes how a mesh is shaded.
type Material struct {
	Shader Shader
	Color  math.Color
	// Color2 is the far colour of the flame gradient.
	Color2    math.Color
	Side      gpu.Side
	Blend     gpu.Blend
	Opacity   float32
	PointSize float32
	// OutlineThickness pushes vertices along their normals.
	OutlineThickness float32
	NoDepthWrite     bool

	texture  gpu.Texture
	disposed bool
}

// NewMaterial returns an opaque, front-faced material.
func NewMaterial(shader Shader, color math.Color) *Material {
	return &Material{
		Shader:  shader,
		Color:   color,
		Opacity: 1,
	}
}

// Transparent reports whether the material is drawn in the blended pass.
func (m *Material) Transparent() bool {
	return m.Blend != gpu.BlendNone
}

// Texture returns the sampled texture, nil if none.
func (m *Material) Texture() gpu.Texture {
	return m.texture
}

// SetTexture takes ownership of t, releasing the previous texture.
func (m *Material) SetTexture(t gpu.Texture) {
	if m.disposed {
		if t != nil {
			t.Release()
		}
		return
	}
	if m.texture != nil && m.texture != t {
		m.texture.Release()
	}
	m.texture = t
}

// Dispose releases the owned texture. Safe to call more than once.
func (m *Material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.texture != nil {
		m.texture.Release()
		m.texture = nil
	}
}

// Mesh pairs geometry with a material. The GPU buffer is created on first draw.
type Mesh struct {
	Geometry *Geometry
	Material *Material

	buffer   gpu.Buffer
	dirty    bool
	disposed bool
}

// Geometry is re-exported so callers building meshes need one import.
type Geometry = gpu.Geometry

// NewMesh creates a mesh.
func NewMesh(g *Geometry, m *Material) *Mesh {
	return &Mesh{Geometry: g, Material: m}
}

// MarkDirty schedules a position upload before the next draw.
func (m *Mesh) MarkDirty() {
	m.dirty = true
}

// Buffer returns the uploaded buffer, creating it or flushing dirty
// positions as needed.
func (m *Mesh) Buffer(dev gpu.Device) (gpu.Buffer, error) {
	if m.disposed {
		return nil, ErrDisposed
	}
	if m.buffer == nil {
		b, err := dev.NewBuffer(m.Geometry)
		if err != nil {
			return nil, err
		}
		m.buffer = b
		m.dirty = false
		return b, nil
	}
	if m.dirty {
		m.buffer.Update(m.Geometry.Positions)
		m.dirty = false
	}
	return m.buffer, nil
}

// Disposed reports whether Dispose ran.
func (m *Mesh) Disposed() bool {
	return m.disposed
}

// drawable reports whether m has a material and vertices to upload.
func (m *Mesh) drawable() bool {
	return m != nil && !m.disposed && m.Material != nil &&
		m.Geometry != nil && m.Geometry.VertexCount() > 0
}

// Dispose releases the buffer and material. Safe to call more than once.
func (m *Mesh) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	if m.buffer != nil {
		m.buffer.Release()
		m.buffer = nil
	}
	if m.Material != nil {
		m.Material.Dispose()
	}
}
