package gpu

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/launchpad/pkg/math"
)

func TestLatheCounts(t *testing.T) {
	profile := []math.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0.5, Y: 2}, {X: 0, Y: 3}}
	g := Lathe(profile, 8)

	wantVerts := (8 + 1) * len(profile)
	if g.VertexCount() != wantVerts {
		t.Errorf("VertexCount = %d, want %d", g.VertexCount(), wantVerts)
	}
	if len(g.Normals) != len(g.Positions) {
		t.Errorf("normals %d != positions %d", len(g.Normals), len(g.Positions))
	}
	if len(g.UVs) != wantVerts*2 {
		t.Errorf("uvs = %d, want %d", len(g.UVs), wantVerts*2)
	}
	wantIdx := 8 * (len(profile) - 1) * 6
	if len(g.Indices) != wantIdx {
		t.Errorf("indices = %d, want %d", len(g.Indices), wantIdx)
	}
	for _, idx := range g.Indices {
		if int(idx) >= wantVerts {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestLatheRadiusAndNormals(t *testing.T) {
	profile := []math.Vec2{{X: 2, Y: 0}, {X: 2, Y: 4}}
	g := Lathe(profile, 16)

	for v := 0; v < g.VertexCount(); v++ {
		x, z := g.Positions[v*3], g.Positions[v*3+2]
		r := gomath.Hypot(float64(x), float64(z))
		if gomath.Abs(r-2) > 1e-4 {
			t.Fatalf("vertex %d radius %v, want 2", v, r)
		}
		// Cylinder normals point straight out.
		nx, ny, nz := g.Normals[v*3], g.Normals[v*3+1], g.Normals[v*3+2]
		if gomath.Abs(float64(ny)) > 1e-5 {
			t.Fatalf("vertex %d normal has y %v", v, ny)
		}
		if dot := nx*x + nz*z; dot <= 0 {
			t.Fatalf("vertex %d normal points inward", v)
		}
	}
}

func TestLatheDegenerate(t *testing.T) {
	g := Lathe([]math.Vec2{{X: 1, Y: 0}}, 2)
	if g.VertexCount() != 0 || len(g.Indices) != 0 {
		t.Errorf("single point profile produced geometry: %d verts", g.VertexCount())
	}
}

func TestBoxBounds(t *testing.T) {
	g := Box(2, 4, 6)
	lo, hi := g.Bounds()
	if lo != (math.Vec3{X: -1, Y: -2, Z: -3}) || hi != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Bounds = %v..%v", lo, hi)
	}
	if g.VertexCount() != 24 || len(g.Indices) != 36 {
		t.Errorf("box has %d verts, %d indices", g.VertexCount(), len(g.Indices))
	}
}

func TestQuadCoversClipSpace(t *testing.T) {
	lo, hi := Quad().Bounds()
	if lo.X != -1 || lo.Y != -1 || hi.X != 1 || hi.Y != 1 {
		t.Errorf("quad bounds %v..%v", lo, hi)
	}
}

func TestPointCloudSharesSlice(t *testing.T) {
	pos := []float32{0, 0, 0, 1, 1, 1}
	g := PointCloud(pos)
	pos[0] = 5
	if g.Positions[0] != 5 {
		t.Error("PointCloud copied the position slice")
	}
	if !g.Dynamic || g.Primitive != Points {
		t.Error("PointCloud is not a dynamic point primitive")
	}
}
