// Package picking provides ray casting against scene bounds.
package picking

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
	"github.com/Faultbox/launchpad/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // normalized
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// Camera is what a pick ray is unprojected through.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

// FromNDC builds the world-space ray through normalized device coordinates
// (nx, ny), both in [-1, 1] with +Y up.
func FromNDC(nx, ny float32, cam Camera) Ray {
	inv := cam.ProjectionMatrix().Mul4(cam.ViewMatrix()).Inv()

	near := unproject(inv, mgl32.Vec4{nx, ny, -1, 1})
	far := unproject(inv, mgl32.Vec4{nx, ny, 1, 1})

	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv mgl32.Mat4, p mgl32.Vec4) math.Vec3 {
	w := inv.Mul4x1(p)
	if w[3] != 0 {
		w = w.Mul(1 / w[3])
	}
	return math.Vec3{X: w[0], Y: w[1], Z: w[2]}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection and whether it occurred. A ray that
// starts inside the box reports the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	origin, dir := r.Origin.Array(), r.Direction.Array()
	lo, hi := box.Min.Array(), box.Max.Array()
	for axis := range 3 {
		if dir[axis] == 0 {
			if origin[axis] < lo[axis] || origin[axis] > hi[axis] {
				return 0, false
			}
			continue
		}
		t1 := (lo[axis] - origin[axis]) / dir[axis]
		t2 := (hi[axis] - origin[axis]) / dir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Bounds returns the world-space box around every visible mesh under root.
// ok is false when there is nothing to hit.
func Bounds(root *scenegraph.Node) (box AABB, ok bool) {
	root.Traverse(func(n *scenegraph.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Mesh == nil || n.Mesh.Disposed() || n.Mesh.Geometry == nil {
			return true
		}
		lo, hi := n.Mesh.Geometry.Bounds()
		world := n.WorldMatrix()
		for i := range 8 {
			corner := mgl32.Vec3{lo.X, lo.Y, lo.Z}
			if i&1 != 0 {
				corner[0] = hi.X
			}
			if i&2 != 0 {
				corner[1] = hi.Y
			}
			if i&4 != 0 {
				corner[2] = hi.Z
			}
			p := mgl32.TransformCoordinate(corner, world)
			v := math.Vec3{X: p[0], Y: p[1], Z: p[2]}
			if !ok {
				box = AABB{Min: v, Max: v}
				ok = true
				continue
			}
			box.Min = math.Vec3{X: min(box.Min.X, v.X), Y: min(box.Min.Y, v.Y), Z: min(box.Min.Z, v.Z)}
			box.Max = math.Vec3{X: max(box.Max.X, v.X), Y: max(box.Max.Y, v.Y), Z: max(box.Max.Z, v.Z)}
		}
		return true
	})
	return box, ok
}

// Hit reports whether the ray through (nx, ny) hits root's bounds.
func Hit(nx, ny float32, cam Camera, root *scenegraph.Node) bool {
	box, ok := Bounds(root)
	if !ok {
		return false
	}
	_, hit := FromNDC(nx, ny, cam).IntersectAABB(box)
	return hit
}
