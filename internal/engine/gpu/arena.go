package gpu

import (
	"errors"
	"image"

	"github.com/Faultbox/launchpad/pkg/math"
)

// ErrReleased is returned when allocating from an arena that was released.
var ErrReleased = errors.New("gpu: arena released")

// Arena is a Device that owns every resource created through it. Releasing
// the arena frees them all, newest first, so teardown does not depend on a
// hand-maintained list.
type Arena struct {
	dev      Device
	owned    []Releaser
	released bool
}

// NewArena wraps dev.
func NewArena(dev Device) *Arena {
	return &Arena{dev: dev}
}

// Track adds an externally created resource to the arena.
// Tracking into a released arena frees the resource immediately.
func (a *Arena) Track(r Releaser) {
	if r == nil {
		return
	}
	if a.released {
		r.Release()
		return
	}
	a.owned = append(a.owned, r)
}

// Live returns the number of resources the arena currently owns.
func (a *Arena) Live() int {
	return len(a.owned)
}

// Released reports whether Release has run.
func (a *Arena) Released() bool {
	return a.released
}

// Release frees every owned resource. Subsequent calls are no-ops.
func (a *Arena) Release() {
	if a.released {
		return
	}
	a.released = true
	for i := len(a.owned) - 1; i >= 0; i-- {
		a.owned[i].Release()
	}
	a.owned = nil
}

// NewBuffer implements Device.
func (a *Arena) NewBuffer(g *Geometry) (Buffer, error) {
	if a.released {
		return nil, ErrReleased
	}
	b, err := a.dev.NewBuffer(g)
	if err != nil {
		return nil, err
	}
	a.Track(b)
	return b, nil
}

// NewProgram implements Device.
func (a *Arena) NewProgram(vertex, fragment string) (Program, error) {
	if a.released {
		return nil, ErrReleased
	}
	p, err := a.dev.NewProgram(vertex, fragment)
	if err != nil {
		return nil, err
	}
	a.Track(p)
	return p, nil
}

// NewTexture implements Device.
func (a *Arena) NewTexture(img *image.RGBA) (Texture, error) {
	if a.released {
		return nil, ErrReleased
	}
	t, err := a.dev.NewTexture(img)
	if err != nil {
		return nil, err
	}
	a.Track(t)
	return t, nil
}

// NewRenderTarget implements Device.
func (a *Arena) NewRenderTarget(width, height int32) (RenderTarget, error) {
	if a.released {
		return nil, ErrReleased
	}
	rt, err := a.dev.NewRenderTarget(width, height)
	if err != nil {
		return nil, err
	}
	a.Track(rt)
	return rt, nil
}

// SetTarget implements Device.
func (a *Arena) SetTarget(rt RenderTarget) { a.dev.SetTarget(rt) }

// SetViewport implements Device.
func (a *Arena) SetViewport(width, height int32) { a.dev.SetViewport(width, height) }

// Clear implements Device.
func (a *Arena) Clear(c math.Color) { a.dev.Clear(c) }

// Draw implements Device.
func (a *Arena) Draw(dc DrawCall) {
	if a.released {
		return
	}
	a.dev.Draw(dc)
}

// ReadPixels implements Device.
func (a *Arena) ReadPixels(width, height int32) []byte {
	return a.dev.ReadPixels(width, height)
}
