// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// MeshVertex transforms lit meshes and outline shells.
//
//go:embed mesh.vert
var MeshVertex string

// ToonFragment is banded cel shading.
//
//go:embed toon.frag
var ToonFragment string

// OutlineFragment draws a flat-coloured outline shell.
//
//go:embed outline.frag
var OutlineFragment string

// FlameFragment blends two colours along the flame's length.
//
//go:embed flame.frag
var FlameFragment string

// TexturedFragment samples an optional texture tinted by a colour.
//
//go:embed textured.frag
var TexturedFragment string

// PointsVertex renders size-attenuated point sprites.
//
//go:embed points.vert
var PointsVertex string

// PointsFragment draws round soft points.
//
//go:embed points.frag
var PointsFragment string

// QuadVertex is the full-screen pass vertex shader.
//
//go:embed quad.vert
var QuadVertex string

// CopyFragment blits its input unchanged.
//
//go:embed copy.frag
var CopyFragment string

// DistortionFragment applies radial warp, vignette and edge aberration.
//
//go:embed distortion.frag
var DistortionFragment string

// GlowFragment adds bloom from pixels above a luminance threshold.
//
//go:embed glow.frag
var GlowFragment string

//go:embed crt.frag
var CRTFragment string
