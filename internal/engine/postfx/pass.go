// Package postfx chains full-screen shader passes over a rendered frame using
// two ping-pong render targets.
package postfx

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/launchpad/internal/engine/camera"
	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/shaders"
)

// Pass is one full-screen effect.
type Pass interface {
	// Render samples input and draws into output, or the screen when output is nil.
	Render(dev gpu.Device, input gpu.Texture, output gpu.RenderTarget, time float32)
	SetSize(width, height int32)
	Enabled() bool
	// RenderToScreen ends the chain at this pass.
	RenderToScreen() bool
	Dispose()
}

// quadPass draws a textured full-screen quad with one fragment shader.
type quadPass struct {
	program  gpu.Program
	quad     gpu.Buffer
	enabled  bool
	toScreen bool
	width    int32
	height   int32
	disposed bool
}

func newQuadPass(dev gpu.Device, fragment string) (*quadPass, error) {
	program, err := dev.NewProgram(shaders.QuadVertex, fragment)
	if err != nil {
		return nil, err
	}
	quad, err := dev.NewBuffer(gpu.Quad())
	if err != nil {
		program.Release()
		return nil, err
	}
	return &quadPass{program: program, quad: quad, enabled: true}, nil
}

func (p *quadPass) Enabled() bool           { return p.enabled && !p.disposed }
func (p *quadPass) SetEnabled(enabled bool) { p.enabled = enabled }
func (p *quadPass) RenderToScreen() bool    { return p.toScreen }

// SetRenderToScreen makes this pass the last one drawn.
func (p *quadPass) SetRenderToScreen(v bool) { p.toScreen = v }

func (p *quadPass) SetSize(width, height int32) {
	p.width, p.height = width, height
}

// Size returns the last size set.
func (p *quadPass) Size() (int32, int32) {
	return p.width, p.height
}

func (p *quadPass) draw(dev gpu.Device, input gpu.Texture, output gpu.RenderTarget, u gpu.Uniforms) {
	if p.disposed {
		return
	}
	if u == nil {
		u = gpu.Uniforms{}
	}
	u["uInput"] = input
	u["uProjection"] = camera.Ortho{}.ProjectionMatrix()
	u["uResolution"] = mgl32.Vec2{float32(p.width), float32(p.height)}

	dev.SetTarget(output)
	dev.Draw(gpu.DrawCall{
		Program:  p.program,
		Buffer:   p.quad,
		Uniforms: u,
		State:    gpu.State{Side: gpu.DoubleSide},
	})
}

// Dispose frees the program and quad. Safe to call more than once.
func (p *quadPass) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.program.Release()
	p.quad.Release()
}

// Copy blits its input unchanged.
type Copy struct {
	*quadPass
}

// NewCopy creates a copy pass.
func NewCopy(dev gpu.Device) (*Copy, error) {
	base, err := newQuadPass(dev, shaders.CopyFragment)
	if err != nil {
		return nil, err
	}
	return &Copy{base}, nil
}

// Render implements Pass.
func (p *Copy) Render(dev gpu.Device, input gpu.Texture, output gpu.RenderTarget, _ float32) {
	p.draw(dev, input, output, nil)
}
