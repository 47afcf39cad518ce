package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/launchpad/internal/engine/camera"
	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
	"github.com/Faultbox/launchpad/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func testCamera() *camera.Perspective {
	cam := camera.NewPerspective(45, 1, 0.1, 100)
	cam.Position = math.Vec3{Z: 10}
	return cam
}

func TestFromNDCCenter(t *testing.T) {
	r := FromNDC(0, 0, testCamera())
	if !near(r.Origin.X, 0) || !near(r.Origin.Y, 0) || !near(r.Origin.Z, 9.9) {
		t.Errorf("origin = %v, want (0, 0, 9.9)", r.Origin)
	}
	if !near(r.Direction.Z, -1) {
		t.Errorf("direction = %v, want -Z", r.Direction)
	}
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: math.Vec3{X: -1, Y: -1, Z: -1}, Max: math.Vec3{X: 1, Y: 1, Z: 1}}
	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float32
	}{
		{"front", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: -1}}, true, 4},
		{"inside", Ray{Origin: math.Vec3{}, Direction: math.Vec3{X: 1}}, true, 1},
		{"behind", Ray{Origin: math.Vec3{Z: 5}, Direction: math.Vec3{Z: 1}}, false, 0},
		{"beside", Ray{Origin: math.Vec3{X: 3, Z: 5}, Direction: math.Vec3{Z: -1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit || (hit && !near(dist, tt.dist)) {
				t.Errorf("IntersectAABB() = (%v, %v), want (%v, %v)", dist, hit, tt.dist, tt.hit)
			}
		})
	}
}

func TestBoundsFollowsTransforms(t *testing.T) {
	root := scenegraph.NewNode("root")
	root.Position = math.Vec3{X: 3}
	box := scenegraph.NewMeshNode("box", scenegraph.NewMesh(gpu.Box(2, 2, 2), scenegraph.NewMaterial(scenegraph.ShaderToon, math.White)))
	box.Scale = math.Splat(2)
	root.Add(box)

	got, ok := Bounds(root)
	if !ok {
		t.Fatal("Bounds() found nothing")
	}
	if !near(got.Min.X, 1) || !near(got.Max.X, 5) || !near(got.Min.Y, -2) || !near(got.Max.Y, 2) {
		t.Errorf("Bounds() = %+v, want x [1, 5] y [-2, 2]", got)
	}

	box.Visible = false
	if _, ok := Bounds(root); ok {
		t.Error("Bounds() included a hidden mesh")
	}
}

func TestHit(t *testing.T) {
	cam := testCamera()
	root := scenegraph.NewMeshNode("box", scenegraph.NewMesh(gpu.Box(2, 2, 2), scenegraph.NewMaterial(scenegraph.ShaderToon, math.White)))

	if !Hit(0, 0, cam, root) {
		t.Error("center ray missed the box")
	}
	if Hit(0.9, 0.9, cam, root) {
		t.Error("corner ray hit the box")
	}
	if Hit(0, 0, cam, scenegraph.NewNode("empty")) {
		t.Error("hit an empty node")
	}
}
