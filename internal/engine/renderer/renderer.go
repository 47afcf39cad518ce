// Package renderer implements gpu.Device on OpenGL 4.1 core.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/launchpad/internal/engine/framebuffer"
	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/shader"
	"github.com/Faultbox/launchpad/internal/logger"
	"github.com/Faultbox/launchpad/pkg/math"
)

// Renderer handles all OpenGL rendering.
type Renderer struct {
	log *zap.Logger

	screenWidth  int32
	screenHeight int32
	target       *renderTarget
}

var _ gpu.Device = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(width, height int32) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		log:          logger.Named("renderer"),
		screenWidth:  width,
		screenHeight: height,
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Viewport(0, 0, width, height)

	return r, nil
}

// NewBuffer uploads geometry into a vertex array.
func (r *Renderer) NewBuffer(g *gpu.Geometry) (gpu.Buffer, error) {
	return newBuffer(g)
}

// NewProgram compiles a shader program.
func (r *Renderer) NewProgram(vertex, fragment string) (gpu.Program, error) {
	p, err := shader.New(vertex, fragment)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NewRenderTarget allocates an offscreen framebuffer.
func (r *Renderer) NewRenderTarget(width, height int32) (gpu.RenderTarget, error) {
	fb, err := framebuffer.New(width, height)
	if err != nil {
		return nil, err
	}
	return &renderTarget{fb: fb}, nil
}

// SetTarget binds rt, or the default framebuffer when rt is nil.
func (r *Renderer) SetTarget(rt gpu.RenderTarget) {
	if rt == nil {
		r.target = nil
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.Viewport(0, 0, r.screenWidth, r.screenHeight)
		return
	}
	t, ok := rt.(*renderTarget)
	if !ok {
		r.log.Warn("foreign render target ignored")
		return
	}
	r.target = t
	t.fb.Bind()
}

// SetViewport records the drawable size of the window.
func (r *Renderer) SetViewport(width, height int32) {
	r.screenWidth, r.screenHeight = width, height
	if r.target == nil {
		gl.Viewport(0, 0, width, height)
	}
	r.log.Debug("viewport resized",
		zap.Int32("width", width),
		zap.Int32("height", height),
	)
}

// Clear clears colour and depth of the current target.
func (r *Renderer) Clear(c math.Color) {
	gl.ClearColor(c.R, c.G, c.B, 1)
	gl.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw issues one draw call.
func (r *Renderer) Draw(dc gpu.DrawCall) {
	prog, ok := dc.Program.(*shader.Program)
	if !ok || prog.ID() == 0 {
		return
	}
	buf, ok := dc.Buffer.(*buffer)
	if !ok || buf.vao == 0 {
		return
	}

	applyState(dc.State)
	prog.Use()

	var unit int32
	for name, value := range dc.Uniforms {
		if tex, ok := value.(gpu.Texture); ok {
			id := textureID(tex)
			if id == 0 {
				continue
			}
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, id)
			value = unit
			unit++
		}
		if err := prog.Set(name, value); err != nil {
			r.log.Warn("uniform rejected", zap.Error(err))
		}
	}

	buf.draw()
}

// ReadPixels reads RGBA pixels from the default framebuffer, bottom row first.
func (r *Renderer) ReadPixels(width, height int32) []byte {
	pixels := make([]byte, width*height*4)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.ReadPixels(0, 0, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	if r.target != nil {
		r.target.fb.Bind()
	}
	return pixels
}

func applyState(s gpu.State) {
	switch s.Side {
	case gpu.FrontSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	case gpu.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Disable(gl.CULL_FACE)
	}

	switch s.Blend {
	case gpu.BlendAlpha:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	case gpu.BlendAdditive:
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	default:
		gl.Disable(gl.BLEND)
	}

	if s.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(s.DepthWrite)
}

// renderTarget adapts a framebuffer to gpu.RenderTarget.
type renderTarget struct {
	fb *framebuffer.Framebuffer
}

func (t *renderTarget) Size() (int32, int32)       { return t.fb.Size() }
func (t *renderTarget) Resize(width, height int32) { t.fb.Resize(width, height) }
func (t *renderTarget) Release()                   { t.fb.Release() }
func (t *renderTarget) Texture() gpu.Texture       { return targetTexture{t.fb} }

// targetTexture samples a framebuffer's colour attachment. It is owned by the
// framebuffer, so Release is a no-op.
type targetTexture struct {
	fb *framebuffer.Framebuffer
}

func (t targetTexture) Size() (int32, int32) { return t.fb.Size() }
func (t targetTexture) Release()             {}

func textureID(t gpu.Texture) uint32 {
	switch v := t.(type) {
	case *texture:
		return v.id
	case targetTexture:
		return v.fb.ColorTexture()
	}
	return 0
}
