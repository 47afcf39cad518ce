package model

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/launchpad/internal/engine/camera"
	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/gpu/gputest"
	"github.com/Faultbox/launchpad/internal/engine/scenegraph"
	"github.com/Faultbox/launchpad/pkg/math"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-5
}

func TestFinsPlacement(t *testing.T) {
	r := New(1)

	for i, f := range r.Fins {
		radius := float32(gomath.Hypot(float64(f.Position.X), float64(f.Position.Z)))
		want := float32(FinRadiusSide)
		if i%2 == 0 {
			want = FinRadiusFrontBack
		}
		if !approx(radius, want) {
			t.Errorf("fin %d radius = %v, want %v", i, radius, want)
		}
		if wantAngle := float32(i) * gomath.Pi / 2; !approx(f.Rotation.Y, wantAngle) {
			t.Errorf("fin %d angle = %v, want %v", i, f.Rotation.Y, wantAngle)
		}
		if f.Parent() != r.Body {
			t.Errorf("fin %d does not spin with the body", i)
		}
		if len(f.Children()) != 1 || f.Children()[0].Mesh.Material.Side != gpu.BackSide {
			t.Errorf("fin %d has no back-faced outline", i)
		}
	}
	if FinRadiusFrontBack >= FinRadiusSide {
		t.Error("front/back fins should sit closer than side fins")
	}
}

func TestOutlinesShareGeometry(t *testing.T) {
	r := New(1)
	hull := r.Body.Find("hull")
	shell := r.Body.Find("hull-outline")
	if hull == nil || shell == nil {
		t.Fatal("hull or outline missing")
	}
	if hull.Mesh.Geometry != shell.Mesh.Geometry {
		t.Error("outline should reuse the hull geometry")
	}
	if shell.Mesh.Material.Shader != scenegraph.ShaderOutline || shell.Mesh.Material.OutlineThickness <= 0 {
		t.Error("outline material misconfigured")
	}
}

func TestFlameMaterial(t *testing.T) {
	r := New(1)
	mat := r.Fire.Mesh.Material
	if mat.Shader != scenegraph.ShaderFlame || !mat.Transparent() {
		t.Error("flame should be a blended gradient")
	}
	core, tip := r.FireColors()
	if core != FireCore || tip != FireTip {
		t.Errorf("fire colours = %v, %v", core, tip)
	}
	if r.FireScale() != math.Splat(FireBase) {
		t.Errorf("fire scale = %v, want baseline", r.FireScale())
	}
}

func TestSetFireIntensity(t *testing.T) {
	r := New(1)
	tests := []struct {
		in   float32
		want math.Vec3
	}{
		{1, math.Vec3{X: 0.06, Y: 0.09, Z: 0.06}},
		{2, math.Vec3{X: 0.12, Y: 0.18, Z: 0.12}},
		{0, math.Vec3{}},
		{-3, math.Vec3{}},
	}
	for _, tt := range tests {
		r.SetFireIntensity(tt.in)
		got := r.FireScale()
		if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) || !approx(got.Z, tt.want.Z) {
			t.Errorf("SetFireIntensity(%v) scale = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUpdateFireFlickerBand(t *testing.T) {
	r := New(42)
	for i := 0; i < 1000; i++ {
		r.UpdateFire(float32(i) * 0.016)
		y := r.Fire.Scale.Y
		if y < FireBase*0.67-1e-6 || y > FireBase*1.33+1e-6 {
			t.Fatalf("flicker %v outside band", y/FireBase)
		}
		if r.Fire.Scale.X != FireBase || r.Fire.Scale.Z != FireBase {
			t.Fatal("flicker changed flame width")
		}
	}
}

func TestReset(t *testing.T) {
	r := New(1)
	r.Root.Position = math.Vec3{X: 1, Y: 3, Z: -5}
	r.Root.Scale = math.Splat(0.01)
	r.Root.Rotation.Z = 0.2
	r.Body.Rotation.Y = 12
	r.SetFireIntensity(4)
	r.SetFireColors(math.White, math.LightBlue)

	r.Reset()

	if r.Root.Position != (math.Vec3{}) || r.Root.Scale != math.One || r.Root.Rotation != (math.Vec3{}) {
		t.Errorf("root not reset: %+v", r.Root)
	}
	if r.Body.Rotation.Y != 0 {
		t.Error("body spin not reset")
	}
	if r.FireScale() != math.Splat(FireBase) {
		t.Errorf("fire scale = %v", r.FireScale())
	}
	if core, tip := r.FireColors(); core != FireCore || tip != FireTip {
		t.Error("fire colours not reset")
	}
	// Flicker resumes around the baseline.
	r.UpdateFire(0)
	if y := r.Fire.Scale.Y; y < FireBase*0.67 || y > FireBase*1.33 {
		t.Errorf("flicker after reset = %v", y)
	}
}

func TestDisposeFreesEverything(t *testing.T) {
	dev := gputest.New()
	renderer := scenegraph.NewRenderer(dev, nil)
	r := New(1)

	renderer.Render(r.Root, camera.NewPerspective(75, 1, 0.1, 100), nil)
	meshes := r.Meshes()
	if len(dev.Draws) != len(meshes) {
		t.Fatalf("draws = %d, meshes = %d", len(dev.Draws), len(meshes))
	}

	r.Dispose()
	r.Dispose()
	renderer.Dispose()

	if dev.Live() != 0 {
		t.Errorf("live = %d after dispose", dev.Live())
	}
	for _, m := range meshes {
		if !m.Disposed() {
			t.Fatal("mesh left undisposed")
		}
	}
}
