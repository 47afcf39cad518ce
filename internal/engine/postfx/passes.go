package postfx

import (
	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/shaders"
)

// Distortion warps UVs radially, darkens the edges and splits colour
// channels toward the border.
type Distortion struct {
	*quadPass
	strength   float32
	vignette   float32
	aberration float32
}

// NewDistortion creates a distortion pass.
func NewDistortion(dev gpu.Device, strength, vignette, aberration float32) (*Distortion, error) {
	base, err := newQuadPass(dev, shaders.DistortionFragment)
	if err != nil {
		return nil, err
	}
	return &Distortion{
		quadPass:   base,
		strength:   strength,
		vignette:   vignette,
		aberration: aberration,
	}, nil
}

// SetStrength sets how far UVs are pushed outward from the centre.
func (p *Distortion) SetStrength(v float32) { p.strength = v }

// SetVignette sets how much the edges are darkened.
func (p *Distortion) SetVignette(v float32) { p.vignette = v }

// SetAberration sets the colour channel split at the border.
func (p *Distortion) SetAberration(v float32) { p.aberration = v }

// Render implements Pass.
func (p *Distortion) Render(dev gpu.Device, input gpu.Texture, output gpu.RenderTarget, time float32) {
	p.draw(dev, input, output, gpu.Uniforms{
		"uTime":       time,
		"uStrength":   p.strength,
		"uVignette":   p.vignette,
		"uAberration": p.aberration,
	})
}

// Glow adds bloom from pixels brighter than a luminance threshold.
type Glow struct {
	*quadPass
	threshold float32
	intensity float32
}

// NewGlow creates a glow pass.
func NewGlow(dev gpu.Device, threshold, intensity float32) (*Glow, error) {
	base, err := newQuadPass(dev, shaders.GlowFragment)
	if err != nil {
		return nil, err
	}
	return &Glow{quadPass: base, threshold: threshold, intensity: intensity}, nil
}

// SetThreshold sets the luminance above which pixels bloom.
func (p *Glow) SetThreshold(v float32) { p.threshold = v }

// SetIntensity scales the added bloom.
func (p *Glow) SetIntensity(v float32) { p.intensity = v }

// Render implements Pass.
func (p *Glow) Render(dev gpu.Device, input gpu.Texture, output gpu.RenderTarget, _ float32) {
	p.draw(dev, input, output, gpu.Uniforms{
		"uThreshold": p.threshold,
		"uIntensity": p.intensity,
	})
}

// CRT adds scanlines, noise, vignette and a horizontal RGB split. Pixels
// whose curved UV falls outside [0, 1] are drawn black.
type CRT struct {
	*quadPass
	scanlines float32
	noise     float32
	vignette  float32
	rgbOffset float32
}

// NewCRT creates a CRT pass.
func NewCRT(dev gpu.Device, scanlines, noise, vignette, rgbOffset float32) (*CRT, error) {
	base, err := newQuadPass(dev, shaders.CRTFragment)
	if err != nil {
		return nil, err
	}
	return &CRT{
		quadPass:  base,
		scanlines: scanlines,
		noise:     noise,
		vignette:  vignette,
		rgbOffset: rgbOffset,
	}, nil
}

// SetScanlines sets the scanline darkening.
func (p *CRT) SetScanlines(v float32) { p.scanlines = v }

// SetNoise sets the per-frame grain amount.
func (p *CRT) SetNoise(v float32) { p.noise = v }

// SetVignette sets how much the corners are darkened.
func (p *CRT) SetVignette(v float32) { p.vignette = v }

// SetRGBOffset sets the horizontal red and blue offset in UV units.
func (p *CRT) SetRGBOffset(v float32) { p.rgbOffset = v }

// Render implements Pass.
func (p *CRT) Render(dev gpu.Device, input gpu.Texture, output gpu.RenderTarget, time float32) {
	p.draw(dev, input, output, gpu.Uniforms{
		"uTime":      time,
		"uScanlines": p.scanlines,
		"uNoise":     p.noise,
		"uVignette":  p.vignette,
		"uRGBOffset": p.rgbOffset,
	})
}
