package starfield

import (
	gomath "math"

	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
)

// BackgroundStarField is a distant, almost static layer: its points recycle
// like any field at a very low speed, and the whole cloud may slowly roll.
type BackgroundStarField struct {
	Field *ParticleField
	// Drift is the roll applied per update, in radians.
	Drift float32
}

// NewBackgroundStarField creates the layer.
func NewBackgroundStarField(cfg FieldConfig, drift float32) *BackgroundStarField {
	return &BackgroundStarField{
		Field: NewParticleField("stars-background", cfg),
		Drift: drift,
	}
}

// Node returns the layer's scene node.
func (b *BackgroundStarField) Node() *scenegraph.Node {
	return b.Field.Node
}

// Update advances the points and the roll.
func (b *BackgroundStarField) Update() {
	b.Field.UpdateConstant()
	if b.Drift != 0 {
		z := b.Field.Node.Rotation.Z + b.Drift
		b.Field.Node.Rotation.Z = float32(gomath.Remainder(float64(z), 2*gomath.Pi))
	}
}

// Dispose frees the layer. Safe to call more than once.
func (b *BackgroundStarField) Dispose() {
	b.Field.Dispose()
}
