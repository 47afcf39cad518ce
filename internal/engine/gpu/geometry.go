package gpu

import (
	gomath "math"

	"github.com/Faultbox/launchpad/pkg/math"
)

// Geometry is CPU-side vertex data. Positions, normals and uvs are flat
// arrays (3, 3 and 2 floats per vertex). Indices may be empty for Points.
type Geometry struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
	Primitive Primitive
	Dynamic   bool
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Bounds returns the axis-aligned bounding box of the positions.
func (g *Geometry) Bounds() (lo, hi math.Vec3) {
	if len(g.Positions) < 3 {
		return math.Vec3{}, math.Vec3{}
	}
	lo = math.Vec3{X: g.Positions[0], Y: g.Positions[1], Z: g.Positions[2]}
	hi = lo
	for i := 3; i+2 < len(g.Positions); i += 3 {
		x, y, z := g.Positions[i], g.Positions[i+1], g.Positions[i+2]
		lo = math.Vec3{X: min(lo.X, x), Y: min(lo.Y, y), Z: min(lo.Z, z)}
		hi = math.Vec3{X: max(hi.X, x), Y: max(hi.Y, y), Z: max(hi.Z, z)}
	}
	return lo, hi
}

// Lathe revolves a profile around the Y axis. Each profile point is
// (radius, height) and the profile should run from bottom to top so the
// generated normals face outward. The seam column is duplicated so uvs wrap.
func Lathe(profile []math.Vec2, segments int) *Geometry {
	if segments < 3 {
		segments = 3
	}
	n := len(profile)
	g := &Geometry{Primitive: Triangles}
	if n < 2 {
		return g
	}

	// Profile normals from the central difference of neighbouring points.
	normals2 := make([]math.Vec2, n)
	for j := range profile {
		prev := profile[max(j-1, 0)]
		next := profile[min(j+1, n-1)]
		t := next.Sub(prev)
		nrm := math.Vec2{X: t.Y, Y: -t.X}
		if l := nrm.Length(); l > 0 {
			nrm = nrm.Scale(1 / l)
		}
		normals2[j] = nrm
	}

	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		phi := float64(u) * 2 * gomath.Pi
		sin, cos := float32(gomath.Sin(phi)), float32(gomath.Cos(phi))
		for j, p := range profile {
			g.Positions = append(g.Positions, p.X*sin, p.Y, p.X*cos)
			nrm := normals2[j]
			g.Normals = append(g.Normals, nrm.X*sin, nrm.Y, nrm.X*cos)
			g.UVs = append(g.UVs, u, float32(j)/float32(n-1))
		}
	}

	for i := 0; i < segments; i++ {
		for j := 0; j < n-1; j++ {
			a := uint32(i*n + j)
			b := uint32((i+1)*n + j)
			c := uint32((i+1)*n + j + 1)
			d := uint32(i*n + j + 1)
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}

// Box builds an axis-aligned box centred on the origin.
func Box(width, height, depth float32) *Geometry {
	hx, hy, hz := width/2, height/2, depth/2
	g := &Geometry{Primitive: Triangles}

	// Each face: normal, then four corners counter-clockwise seen from outside.
	faces := []struct {
		n       math.Vec3
		corners [4]math.Vec3
	}{
		{math.Vec3{Z: 1}, [4]math.Vec3{{X: -hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: hz}}},
		{math.Vec3{Z: -1}, [4]math.Vec3{{X: hx, Y: -hy, Z: -hz}, {X: -hx, Y: -hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}}},
		{math.Vec3{X: 1}, [4]math.Vec3{{X: hx, Y: -hy, Z: hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: hy, Z: -hz}, {X: hx, Y: hy, Z: hz}}},
		{math.Vec3{X: -1}, [4]math.Vec3{{X: -hx, Y: -hy, Z: -hz}, {X: -hx, Y: -hy, Z: hz}, {X: -hx, Y: hy, Z: hz}, {X: -hx, Y: hy, Z: -hz}}},
		{math.Vec3{Y: 1}, [4]math.Vec3{{X: -hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: hz}, {X: hx, Y: hy, Z: -hz}, {X: -hx, Y: hy, Z: -hz}}},
		{math.Vec3{Y: -1}, [4]math.Vec3{{X: -hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: -hz}, {X: hx, Y: -hy, Z: hz}, {X: -hx, Y: -hy, Z: hz}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for f, face := range faces {
		base := uint32(f * 4)
		for k, c := range face.corners {
			g.Positions = append(g.Positions, c.X, c.Y, c.Z)
			g.Normals = append(g.Normals, face.n.X, face.n.Y, face.n.Z)
			g.UVs = append(g.UVs, uvs[k][0], uvs[k][1])
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// Plane builds a quad in the XY plane facing +Z.
func Plane(width, height float32) *Geometry {
	hx, hy := width/2, height/2
	return &Geometry{
		Positions: []float32{-hx, -hy, 0, hx, -hy, 0, hx, hy, 0, -hx, hy, 0},
		Normals:   []float32{0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Indices:   []uint32{0, 1, 2, 0, 2, 3},
		Primitive: Triangles,
	}
}

// Quad is the two-triangle full-screen quad in clip space used by passes.
func Quad() *Geometry {
	return Plane(2, 2)
}

// PointCloud wraps a position buffer as a dynamic point primitive.
// The slice is shared, not copied: mutating it and re-uploading animates the cloud.
func PointCloud(positions []float32) *Geometry {
	return &Geometry{
		Positions: positions,
		Primitive: Points,
		Dynamic:   true,
	}
}
