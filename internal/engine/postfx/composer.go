package postfx

import (
	"fmt"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
)

// Composer owns the ping-pong targets and runs the pass chain. The scene is
// rendered into ReadTarget before Render is called.
type Composer struct {
	// Bypass skips every pass and blits the scene straight to the screen.
	Bypass bool

	dev      gpu.Device
	read     gpu.RenderTarget
	write    gpu.RenderTarget
	copy     *Copy
	passes   []Pass
	width    int32
	height   int32
	disposed bool
}

// NewComposer allocates both targets at the given size.
func NewComposer(dev gpu.Device, width, height int32) (*Composer, error) {
	c := &Composer{dev: dev, width: width, height: height}

	var err error
	if c.read, err = dev.NewRenderTarget(width, height); err != nil {
		return nil, fmt.Errorf("read target: %w", err)
	}
	if c.write, err = dev.NewRenderTarget(width, height); err != nil {
		c.Dispose()
		return nil, fmt.Errorf("write target: %w", err)
	}
	if c.copy, err = NewCopy(dev); err != nil {
		c.Dispose()
		return nil, fmt.Errorf("copy pass: %w", err)
	}
	c.copy.SetSize(width, height)
	return c, nil
}

// AddPass appends p to the chain and sizes it to the targets.
func (c *Composer) AddPass(p Pass) {
	p.SetSize(c.width, c.height)
	c.passes = append(c.passes, p)
}

// Passes returns the chain in order.
func (c *Composer) Passes() []Pass {
	return c.passes
}

// ReadTarget is where the scene must be rendered this frame.
func (c *Composer) ReadTarget() gpu.RenderTarget {
	return c.read
}

// Size returns the target dimensions.
func (c *Composer) Size() (int32, int32) {
	return c.width, c.height
}

// Render runs enabled passes in order. Each pass reads the previous output;
// the last enabled pass, or the first flagged RenderToScreen, draws to the
// screen. With no enabled pass, or when bypassed, the scene is copied.
func (c *Composer) Render(time float32) {
	if c.disposed {
		return
	}

	active := 0
	if !c.Bypass {
		for _, p := range c.passes {
			if p.Enabled() {
				active++
			}
		}
	}
	if active == 0 {
		c.copy.Render(c.dev, c.read.Texture(), nil, time)
		return
	}

	seen := 0
	for _, p := range c.passes {
		if !p.Enabled() {
			continue
		}
		seen++
		if seen == active || p.RenderToScreen() {
			p.Render(c.dev, c.read.Texture(), nil, time)
			return
		}
		p.Render(c.dev, c.read.Texture(), c.write, time)
		c.read, c.write = c.write, c.read
	}
}

// SetSize resizes both targets and every pass.
func (c *Composer) SetSize(width, height int32) {
	if c.disposed {
		return
	}
	c.width, c.height = width, height
	c.read.Resize(width, height)
	c.write.Resize(width, height)
	c.copy.SetSize(width, height)
	for _, p := range c.passes {
		p.SetSize(width, height)
	}
}

// Dispose frees the passes and targets. Safe to call more than once.
func (c *Composer) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	for _, p := range c.passes {
		p.Dispose()
	}
	if c.copy != nil {
		c.copy.Dispose()
	}
	if c.read != nil {
		c.read.Release()
	}
	if c.write != nil {
		c.write.Release()
	}
}
