// Package model builds the toon rocket: a lathed hull with outline shell,
// nose cone, porthole, four fins and an additive exhaust flame.
package model

import (
	gomath "math"
	"math/rand/v2"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
	"github.com/Faultbox/launchpad/pkg/math"
)

// FireBase is the flame's resting scale on every axis.
const FireBase = 0.06

// FireElongation is how much more the flame stretches than widens.
const FireElongation = 1.5

// Fin placement: front and back fins sit closer to the hull than side fins.
const (
	FinRadiusFrontBack = 0.62
	FinRadiusSide      = 0.72
	finHeight          = -1.1
)

const (
	outlineThickness = 0.05
	segments         = 32
)

// Palette.
var (
	HullColor    = math.Hex(0xf4f1ea)
	AccentColor  = math.Hex(0xe63946)
	WindowColor  = math.Hex(0x457b9d)
	NozzleColor  = math.Hex(0x3a3a46)
	OutlineColor = math.Black

	// Idle flame: yellow core fading to orange.
	FireCore = math.Yellow
	FireTip  = math.Orange
)

// Rocket owns the node tree. Root carries position and uniform scale, Body
// the spin around Y, Fire the flame scale and colours.
type Rocket struct {
	Root *scenegraph.Node
	Body *scenegraph.Node
	Fire *scenegraph.Node
	Fins [4]*scenegraph.Node

	fireMat  *scenegraph.Material
	fireY    float32
	rng      *rand.Rand
	disposed bool
}

// New builds the rocket. seed drives the flame flicker.
func New(seed uint64) *Rocket {
	r := &Rocket{
		Root:  scenegraph.NewNode("rocket"),
		Body:  scenegraph.NewNode("body"),
		fireY: FireBase,
		rng:   rand.New(rand.NewPCG(seed, seed^0x726f636b6574)),
	}
	r.Root.Add(r.Body)

	r.Body.Add(outlined("hull", gpu.Lathe(hullProfile(), segments), HullColor))
	r.Body.Add(outlined("nose", gpu.Lathe(noseProfile(), segments), AccentColor))
	r.Body.Add(scenegraph.NewMeshNode("nozzle", toonMesh(gpu.Lathe(nozzleProfile(), segments), NozzleColor)))

	window := outlined("window", gpu.Lathe(sphereProfile(0.22, 8), 16), WindowColor)
	window.Position = math.Vec3{Y: 0.35, Z: 0.68}
	window.Scale = math.Vec3{X: 1, Y: 1, Z: 0.4}
	r.Body.Add(window)

	for i := range r.Fins {
		r.Fins[i] = fin(i)
		r.Body.Add(r.Fins[i])
	}

	r.fireMat = &scenegraph.Material{
		Shader:       scenegraph.ShaderFlame,
		Color:        FireCore,
		Color2:       FireTip,
		Side:         gpu.DoubleSide,
		Blend:        gpu.BlendAdditive,
		Opacity:      0.9,
		NoDepthWrite: true,
	}
	r.Fire = scenegraph.NewMeshNode("fire", scenegraph.NewMesh(gpu.Lathe(flameProfile(), segments), r.fireMat))
	r.Fire.Position = math.Vec3{Y: -1.85}
	r.Fire.Scale = math.Splat(FireBase)
	r.Root.Add(r.Fire)

	return r
}

// fin builds fin i of four, spaced a quarter turn apart starting at +Z.
func fin(i int) *scenegraph.Node {
	angle := float32(i) * gomath.Pi / 2
	radius := float32(FinRadiusSide)
	if i%2 == 0 {
		radius = FinRadiusFrontBack
	}

	n := outlined("fin", gpu.Box(0.08, 0.9, 0.6), AccentColor)
	n.Position = math.Vec3{
		X: radius * float32(gomath.Sin(float64(angle))),
		Y: finHeight,
		Z: radius * float32(gomath.Cos(float64(angle))),
	}
	n.Rotation.Y = angle
	return n
}

func toonMesh(g *gpu.Geometry, c math.Color) *scenegraph.Mesh {
	return scenegraph.NewMesh(g, scenegraph.NewMaterial(scenegraph.ShaderToon, c))
}

// outlined returns a toon mesh node with a back-faced outline shell child
// sharing its geometry.
func outlined(name string, g *gpu.Geometry, c math.Color) *scenegraph.Node {
	n := scenegraph.NewMeshNode(name, toonMesh(g, c))
	shell := &scenegraph.Material{
		Shader:           scenegraph.ShaderOutline,
		Color:            OutlineColor,
		Side:             gpu.BackSide,
		Opacity:          1,
		OutlineThickness: outlineThickness,
	}
	n.Add(scenegraph.NewMeshNode(name+"-outline", scenegraph.NewMesh(g, shell)))
	return n
}

// FireScale returns the flame's current scale.
func (r *Rocket) FireScale() math.Vec3 {
	return r.Fire.Scale
}

// FireColors returns the flame's core and tip colours.
func (r *Rocket) FireColors() (core, tip math.Color) {
	return r.fireMat.Color, r.fireMat.Color2
}

// SetFireColors sets the flame's core and tip colours.
func (r *Rocket) SetFireColors(core, tip math.Color) {
	r.fireMat.Color = core
	r.fireMat.Color2 = tip
}

// SetFireScale sets the flame scale directly. Negative components are
// clamped to zero.
func (r *Rocket) SetFireScale(s math.Vec3) {
	r.Fire.Scale = math.Vec3{X: max(s.X, 0), Y: max(s.Y, 0), Z: max(s.Z, 0)}
	r.fireY = r.Fire.Scale.Y
}

// SetFireIntensity scales the flame from its base: width by i, length by
// 1.5·i.
func (r *Rocket) SetFireIntensity(i float32) {
	i = max(i, 0)
	r.SetFireScale(math.Vec3{
		X: FireBase * i,
		Y: FireBase * FireElongation * i,
		Z: FireBase * i,
	})
}

// UpdateFire flickers the flame length within [0.67, 1.33] of its current
// base length.
func (r *Rocket) UpdateFire(time float32) {
	wave := 0.2 * float32(gomath.Sin(float64(time)*30))
	noise := 0.13 * (r.rng.Float32()*2 - 1)
	r.Fire.Scale.Y = r.fireY * (1 + wave + noise)
}

// Reset restores identity transforms, the resting flame and idle colours.
// Geometry is not rebuilt.
func (r *Rocket) Reset() {
	r.Root.Position = math.Vec3{}
	r.Root.Rotation = math.Vec3{}
	r.Root.Scale = math.One
	r.Body.Position = math.Vec3{}
	r.Body.Rotation = math.Vec3{}
	r.Fire.Scale = math.Splat(FireBase)
	r.fireY = FireBase
	r.SetFireColors(FireCore, FireTip)
}

// Meshes returns every mesh in the model.
func (r *Rocket) Meshes() []*scenegraph.Mesh {
	var meshes []*scenegraph.Mesh
	r.Root.Traverse(func(n *scenegraph.Node) bool {
		if n.Mesh != nil {
			meshes = append(meshes, n.Mesh)
		}
		return true
	})
	return meshes
}

// Dispose frees every mesh in the tree. Safe to call more than once.
func (r *Rocket) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true
	r.Root.Dispose()
}
