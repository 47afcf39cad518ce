// Package gpu defines the backend-neutral rendering resources the scene is
// built from. The OpenGL implementation lives in the renderer package; tests
// use the recording fake in gputest.
package gpu

import (
	"errors"
	"image"

	"github.com/Faultbox/launchpad/pkg/math"
)

// ErrEmptyGeometry is returned when uploading geometry without positions.
var ErrEmptyGeometry = errors.New("gpu: geometry has no positions")

// Releaser frees a GPU resource. Release must be safe to call more than once.
type Releaser interface {
	Release()
}

// Primitive selects how vertices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Points
)

// Side selects which faces are rasterised.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Blend selects the blend equation for a draw.
type Blend int

const (
	BlendNone Blend = iota
	BlendAlpha
	BlendAdditive
)

// Buffer is uploaded vertex data.
type Buffer interface {
	Releaser
	// Update replaces the positions of a dynamic buffer in place.
	Update(positions []float32)
}

// Program is a linked shader program.
type Program interface {
	Releaser
}

// Texture is a sampled 2D image.
type Texture interface {
	Releaser
	Size() (width, height int32)
}

// RenderTarget is an offscreen framebuffer whose colour output can be sampled.
type RenderTarget interface {
	Releaser
	Size() (width, height int32)
	Resize(width, height int32)
	Texture() Texture
}

// Uniforms maps uniform names to values. Supported value types are float32,
// int32, bool, mgl32.Vec2/Vec3/Vec4, mgl32.Mat4, [3]float32 and Texture.
type Uniforms map[string]any

// State is the fixed-function state applied to one draw.
type State struct {
	Side       Side
	Blend      Blend
	DepthTest  bool
	DepthWrite bool
}

// DrawCall is everything a backend needs for one draw.
type DrawCall struct {
	Program  Program
	Buffer   Buffer
	Uniforms Uniforms
	State    State
}

// Device creates resources and executes draws.
type Device interface {
	NewBuffer(g *Geometry) (Buffer, error)
	NewProgram(vertex, fragment string) (Program, error)
	NewTexture(img *image.RGBA) (Texture, error)
	NewRenderTarget(width, height int32) (RenderTarget, error)

	// SetTarget routes subsequent draws; nil selects the screen.
	SetTarget(rt RenderTarget)
	// SetViewport records the screen size used when the screen is the target.
	SetViewport(width, height int32)
	Clear(c math.Color)
	Draw(dc DrawCall)
	// ReadPixels returns the RGBA contents of the screen, bottom row first.
	ReadPixels(width, height int32) []byte
}
