// Package camera provides the cameras the scene renders with.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/launchpad/pkg/math"
)

// Perspective is a free camera positioned and rotated by Euler angles
// (radians, applied X then Y then Z).
type Perspective struct {
	FOV    float32 // vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Rotation math.Vec3
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	return &Perspective{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// SetAspect updates the aspect ratio. Non-positive values are ignored.
func (c *Perspective) SetAspect(aspect float32) {
	if aspect > 0 {
		c.Aspect = aspect
	}
}

// WorldMatrix returns the camera's transform in world space.
func (c *Perspective) WorldMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(c.Position.X, c.Position.Y, c.Position.Z).
		Mul4(mgl32.HomogRotate3DX(c.Rotation.X)).
		Mul4(mgl32.HomogRotate3DY(c.Rotation.Y)).
		Mul4(mgl32.HomogRotate3DZ(c.Rotation.Z))
}

// ViewMatrix returns the inverse of the world matrix.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return c.WorldMatrix().Inv()
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Ortho is the fixed camera used by full-screen passes: it maps the
// [-1, 1] square straight onto the viewport.
type Ortho struct{}

// ViewMatrix returns identity.
func (Ortho) ViewMatrix() mgl32.Mat4 {
	return mgl32.Ident4()
}

// ProjectionMatrix returns an orthographic projection over [-1, 1].
func (Ortho) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Ortho(-1, 1, -1, 1, -1, 1)
}
