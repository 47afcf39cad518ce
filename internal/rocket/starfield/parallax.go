package starfield

import (
	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
	"github.com/Faultbox/launchpad/pkg/math"
)

// Layer speed ratios relative to the requested velocity.
const (
	MidRatio  = 0.4
	NearRatio = 1.0
)

// Config sizes the three layers.
type Config struct {
	BackgroundCount int
	MidCount        int
	NearCount       int
	// BaseSpeed is the near layer's velocity at multiplier 1.
	BaseSpeed float32
	Drift     float32
	Seed      uint64
}

// Parallax stacks a background layer behind mid and near fields that move
// at different fractions of one velocity.
type Parallax struct {
	Background *BackgroundStarField
	Mid        *ParticleField
	Near       *ParticleField

	root       *scenegraph.Node
	baseSpeed  float32
	multiplier float32
	disposed   bool
}

// NewParallax builds the three layers under one root node.
func NewParallax(cfg Config) *Parallax {
	p := &Parallax{
		Background: NewBackgroundStarField(FieldConfig{
			Count:    cfg.BackgroundCount,
			RangeH:   600,
			RangeV:   400,
			RangeZ:   500,
			RecycleZ: -100,
			Speed:    0.01,
			Size:     0.8,
			Color:    math.Hex(0xc8d6ff),
			Opacity:  0.7,
			Seed:     cfg.Seed + 1,
		}, cfg.Drift),
		Mid: NewParticleField("stars-mid", FieldConfig{
			Count:    cfg.MidCount,
			RangeH:   160,
			RangeV:   100,
			RangeZ:   300,
			RecycleZ: 10,
			Speed:    cfg.BaseSpeed * MidRatio,
			Size:     1.2,
			Color:    math.White,
			Opacity:  0.85,
			Seed:     cfg.Seed + 2,
		}),
		Near: NewParticleField("stars-near", FieldConfig{
			Count:    cfg.NearCount,
			RangeH:   80,
			RangeV:   50,
			RangeZ:   200,
			RecycleZ: 20,
			Speed:    cfg.BaseSpeed,
			Size:     1.8,
			Color:    math.Hex(0xfff4d6),
			Seed:     cfg.Seed + 3,
		}),
		root:       scenegraph.NewNode("starfield"),
		baseSpeed:  cfg.BaseSpeed,
		multiplier: 1,
	}
	p.root.Add(p.Background.Node(), p.Mid.Node, p.Near.Node)
	return p
}

// Root returns the node holding all layers.
func (p *Parallax) Root() *scenegraph.Node {
	return p.root
}

// Nodes returns the layer nodes, farthest first.
func (p *Parallax) Nodes() []*scenegraph.Node {
	return []*scenegraph.Node{p.Background.Node(), p.Mid.Node, p.Near.Node}
}

// SetSpeedMultiplier scales the velocity used by Update.
func (p *Parallax) SetSpeedMultiplier(m float32) {
	p.multiplier = m
}

// SpeedMultiplier returns the current multiplier.
func (p *Parallax) SpeedMultiplier() float32 {
	return p.multiplier
}

// Update advances every layer at base speed times the multiplier.
func (p *Parallax) Update() {
	p.UpdateWithVelocity(p.baseSpeed * p.multiplier)
}

// UpdateWithVelocity advances the mid layer at 40% of v and the near layer
// at v. The background keeps its own slow pace.
func (p *Parallax) UpdateWithVelocity(v float32) {
	if p.disposed {
		return
	}
	p.Background.Update()
	p.Mid.UpdateWithVelocity(v * MidRatio)
	p.Near.UpdateWithVelocity(v * NearRatio)
}

// Dispose frees all layers. Safe to call more than once.
func (p *Parallax) Dispose() {
	if p.disposed {
		return
	}
	p.disposed = true
	p.Background.Dispose()
	p.Mid.Dispose()
	p.Near.Dispose()
}
