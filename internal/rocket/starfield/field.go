// Package starfield provides recycled point-cloud star layers and the
// three-layer parallax composition drawn behind the rocket.
package starfield

import (
	"math/rand/v2"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
	"github.com/Faultbox/launchpad/pkg/math"
)

// FieldConfig sizes a particle field. Points live in
// [-RangeH/2, RangeH/2] × [-RangeV/2, RangeV/2] × [-RangeZ, RecycleZ].
type FieldConfig struct {
	Count    int
	RangeH   float32
	RangeV   float32
	RangeZ   float32
	RecycleZ float32
	// Speed is the per-update depth step used by UpdateConstant.
	Speed   float32
	Size    float32
	Color   math.Color
	Opacity float32
	Seed    uint64
}

// ParticleField is a fixed-size point cloud flowing toward +Z. Points that
// pass RecycleZ respawn at a random (x, y) with z = -RangeZ.
type ParticleField struct {
	Node *scenegraph.Node

	cfg       FieldConfig
	positions []float32
	factors   []float32
	mesh      *scenegraph.Mesh
	rng       *rand.Rand
}

// NewParticleField allocates every point up front.
func NewParticleField(name string, cfg FieldConfig) *ParticleField {
	cfg.Count = max(cfg.Count, 0)
	if cfg.Opacity == 0 {
		cfg.Opacity = 1
	}
	f := &ParticleField{
		cfg:       cfg,
		positions: make([]float32, cfg.Count*3),
		factors:   make([]float32, cfg.Count),
		rng:       rand.New(rand.NewPCG(cfg.Seed, uint64(cfg.Count))),
	}

	for i := 0; i < cfg.Count; i++ {
		p := f.positions[i*3 : i*3+3]
		p[0] = f.spread(cfg.RangeH)
		p[1] = f.spread(cfg.RangeV)
		p[2] = -cfg.RangeZ + f.rng.Float32()*(cfg.RangeZ+cfg.RecycleZ)
		// Per-point speed in [0.5, 1.5) keeps layers from moving as a slab.
		f.factors[i] = 0.5 + f.rng.Float32()
	}

	mat := &scenegraph.Material{
		Shader:       scenegraph.ShaderPoints,
		Color:        cfg.Color,
		Side:         gpu.DoubleSide,
		Blend:        gpu.BlendAdditive,
		Opacity:      cfg.Opacity,
		PointSize:    cfg.Size,
		NoDepthWrite: true,
	}
	f.mesh = scenegraph.NewMesh(gpu.PointCloud(f.positions), mat)
	f.Node = scenegraph.NewMeshNode(name, f.mesh)
	return f
}

func (f *ParticleField) spread(extent float32) float32 {
	return (f.rng.Float32() - 0.5) * extent
}

// Config returns the field's configuration.
func (f *ParticleField) Config() FieldConfig {
	return f.cfg
}

// Positions returns the live position buffer (x, y, z per point).
func (f *ParticleField) Positions() []float32 {
	return f.positions
}

// UpdateConstant advances every point by the configured speed.
func (f *ParticleField) UpdateConstant() {
	f.advance(f.cfg.Speed)
}

// UpdateWithVelocity advances every point by v instead of the configured
// speed. Negative v runs the field backwards; points falling behind
// -RangeZ wrap to RecycleZ.
func (f *ParticleField) UpdateWithVelocity(v float32) {
	f.advance(v)
}

func (f *ParticleField) advance(step float32) {
	if step == 0 || f.cfg.Count == 0 {
		return
	}
	for i, factor := range f.factors {
		p := f.positions[i*3 : i*3+3]
		p[2] += step * factor
		switch {
		case p[2] > f.cfg.RecycleZ:
			p[0] = f.spread(f.cfg.RangeH)
			p[1] = f.spread(f.cfg.RangeV)
			p[2] = -f.cfg.RangeZ
		case p[2] < -f.cfg.RangeZ:
			p[0] = f.spread(f.cfg.RangeH)
			p[1] = f.spread(f.cfg.RangeV)
			p[2] = f.cfg.RecycleZ
		}
	}
	f.mesh.MarkDirty()
}

// Dispose frees the point buffer on the GPU. Safe to call more than once.
func (f *ParticleField) Dispose() {
	f.Node.Dispose()
}
