package camera

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/launchpad/pkg/math"
)

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestPerspectiveViewMatrix(t *testing.T) {
	c := NewPerspective(75, 16.0/9.0, 0.1, 1000)
	c.Position = math.Vec3{X: 0, Y: 0, Z: 20}

	got := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	want := mgl32.Vec4{0, 0, -20, 1}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("view * origin = %v, want %v", got, want)
		}
	}
}

func TestPerspectiveProjectsOriginToCenter(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	c.Position = math.Vec3{Z: 20}

	clip := c.ProjectionMatrix().Mul4(c.ViewMatrix()).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if clip[3] <= 0 {
		t.Fatalf("origin behind camera: w = %v", clip[3])
	}
	if !near(clip[0]/clip[3], 0) || !near(clip[1]/clip[3], 0) {
		t.Errorf("origin projected to (%v, %v), want center", clip[0]/clip[3], clip[1]/clip[3])
	}
}

func TestPerspectiveRollKeepsCenter(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)
	c.Position = math.Vec3{Z: 20}
	c.Rotation.Z = 0.3

	p := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !near(p[0], 0) || !near(p[1], 0) {
		t.Errorf("roll moved the view axis: %v", p)
	}
}

func TestSetAspect(t *testing.T) {
	c := NewPerspective(75, 1, 0.1, 1000)

	c.SetAspect(2)
	if c.Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", c.Aspect)
	}

	c.SetAspect(0)
	if c.Aspect != 2 {
		t.Errorf("zero aspect applied: %v", c.Aspect)
	}
}

func TestOrthoMapsUnitSquare(t *testing.T) {
	var o Ortho
	got := o.ProjectionMatrix().Mul4(o.ViewMatrix()).Mul4x1(mgl32.Vec4{1, -1, 0, 1})
	want := mgl32.Vec4{1, -1, 0, 1}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("ortho(1,-1) = %v, want %v", got, want)
		}
	}
}
