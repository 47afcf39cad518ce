// Package gputest provides a recording gpu.Device for headless tests.
package gputest

import (
	"errors"
	"image"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/pkg/math"
)

// ErrProgram is returned by NewProgram when FailPrograms is set.
var ErrProgram = errors.New("gputest: program compile failed")

// Device records every call made to it and counts live resources.
type Device struct {
	FailPrograms bool

	Draws   []Draw
	Clears  []math.Color
	Targets []gpu.RenderTarget // SetTarget history, nil entries are the screen

	ViewportWidth, ViewportHeight int32

	created  int
	released int
}

// New creates an empty recording device.
func New() *Device {
	return &Device{}
}

// Live returns the number of resources created and not yet released.
func (d *Device) Live() int {
	return d.created - d.released
}

// Created returns the number of resources ever created.
func (d *Device) Created() int {
	return d.created
}

// ResetFrame forgets recorded draws, clears and target switches.
func (d *Device) ResetFrame() {
	d.Draws = d.Draws[:0]
	d.Clears = d.Clears[:0]
	d.Targets = d.Targets[:0]
}

// DrawsTo returns the number of draws issued while rt was bound (nil for the screen).
func (d *Device) DrawsTo(rt gpu.RenderTarget) int {
	n := 0
	for _, dr := range d.Draws {
		if dr.Target == rt {
			n++
		}
	}
	return n
}

// Draw is a recorded draw call and the target bound when it was issued.
type Draw struct {
	gpu.DrawCall
	Target gpu.RenderTarget
}

func (d *Device) track() { d.created++ }

func (d *Device) release(flag *bool) {
	if *flag {
		return
	}
	*flag = true
	d.released++
}

// NewBuffer implements gpu.Device.
func (d *Device) NewBuffer(g *gpu.Geometry) (gpu.Buffer, error) {
	if len(g.Positions) == 0 {
		return nil, gpu.ErrEmptyGeometry
	}
	d.track()
	return &Buffer{dev: d, Geometry: g}, nil
}

// NewProgram implements gpu.Device.
func (d *Device) NewProgram(vertex, fragment string) (gpu.Program, error) {
	if d.FailPrograms {
		return nil, ErrProgram
	}
	d.track()
	return &Program{dev: d, Vertex: vertex, Fragment: fragment}, nil
}

// NewTexture implements gpu.Device.
func (d *Device) NewTexture(img *image.RGBA) (gpu.Texture, error) {
	d.track()
	b := img.Bounds()
	return &Texture{dev: d, W: int32(b.Dx()), H: int32(b.Dy())}, nil
}

// NewRenderTarget implements gpu.Device.
func (d *Device) NewRenderTarget(width, height int32) (gpu.RenderTarget, error) {
	d.track()
	rt := &RenderTarget{dev: d, W: width, H: height}
	rt.tex = &Texture{W: width, H: height}
	return rt, nil
}

// SetTarget implements gpu.Device.
func (d *Device) SetTarget(rt gpu.RenderTarget) {
	d.Targets = append(d.Targets, rt)
}

// SetViewport implements gpu.Device.
func (d *Device) SetViewport(width, height int32) {
	d.ViewportWidth, d.ViewportHeight = width, height
}

// Clear implements gpu.Device.
func (d *Device) Clear(c math.Color) {
	d.Clears = append(d.Clears, c)
}

// Draw implements gpu.Device.
func (d *Device) Draw(dc gpu.DrawCall) {
	var bound gpu.RenderTarget
	if n := len(d.Targets); n > 0 {
		bound = d.Targets[n-1]
	}
	d.Draws = append(d.Draws, Draw{DrawCall: dc, Target: bound})
}

// ReadPixels implements gpu.Device with a black frame.
func (d *Device) ReadPixels(width, height int32) []byte {
	return make([]byte, int(width)*int(height)*4)
}

// Buffer is a recorded vertex buffer.
type Buffer struct {
	dev      *Device
	Geometry *gpu.Geometry
	Updates  int
	released bool
}

// Update implements gpu.Buffer.
func (b *Buffer) Update([]float32) { b.Updates++ }

// Release implements gpu.Releaser.
func (b *Buffer) Release() { b.dev.release(&b.released) }

// Released reports whether Release ran.
func (b *Buffer) Released() bool { return b.released }

// Program is a recorded shader program.
type Program struct {
	dev              *Device
	Vertex, Fragment string
	released         bool
}

// Release implements gpu.Releaser.
func (p *Program) Release() { p.dev.release(&p.released) }

// Texture is a recorded texture. Textures owned by a render target are not
// counted as separate resources.
type Texture struct {
	dev      *Device
	W, H     int32
	released bool
}

// Size implements gpu.Texture.
func (t *Texture) Size() (int32, int32) { return t.W, t.H }

// Release implements gpu.Releaser.
func (t *Texture) Release() {
	if t.dev == nil {
		return
	}
	t.dev.release(&t.released)
}

// RenderTarget is a recorded offscreen target.
type RenderTarget struct {
	dev      *Device
	W, H     int32
	Resizes  int
	tex      *Texture
	released bool
}

// Size implements gpu.RenderTarget.
func (rt *RenderTarget) Size() (int32, int32) { return rt.W, rt.H }

// Resize implements gpu.RenderTarget.
func (rt *RenderTarget) Resize(width, height int32) {
	rt.W, rt.H = width, height
	rt.tex.W, rt.tex.H = width, height
	rt.Resizes++
}

// Texture implements gpu.RenderTarget.
func (rt *RenderTarget) Texture() gpu.Texture { return rt.tex }

// Release implements gpu.Releaser.
func (rt *RenderTarget) Release() { rt.dev.release(&rt.released) }

// Released reports whether Release ran.
func (rt *RenderTarget) Released() bool { return rt.released }
