package scenegraph

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/launchpad/internal/engine/gpu"
	"github.com/Faultbox/launchpad/internal/engine/shaders"
	"github.com/Faultbox/launchpad/pkg/math"
)

// Camera supplies the view and projection for a render.
type Camera interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
}

type shaderSource struct {
	vertex, fragment string
}

var sources = map[Shader]shaderSource{
	ShaderToon:     {shaders.MeshVertex, shaders.ToonFragment},
	ShaderOutline:  {shaders.MeshVertex, shaders.OutlineFragment},
	ShaderFlame:    {shaders.MeshVertex, shaders.FlameFragment},
	ShaderPoints:   {shaders.PointsVertex, shaders.PointsFragment},
	ShaderTextured: {shaders.MeshVertex, shaders.TexturedFragment},
}

// shaderKinds is one past the last Shader.
const shaderKinds = ShaderTextured + 1

type drawItem struct {
	mesh  *Mesh
	world mgl32.Mat4
}

// Renderer draws node trees. Programs are compiled once per shader kind.
type Renderer struct {
	ClearColor math.Color

	dev      gpu.Device
	log      *zap.Logger
	programs map[Shader]gpu.Program
	failed   map[Shader]bool

	opaque      []drawItem
	transparent []drawItem
}

// NewRenderer creates a renderer drawing through dev.
func NewRenderer(dev gpu.Device, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Renderer{
		dev:      dev,
		log:      log,
		programs: make(map[Shader]gpu.Program),
		failed:   make(map[Shader]bool),
	}
}

// Render clears target (nil for the screen) to ClearColor and draws every
// visible mesh under root: opaque meshes first, then blended ones, each in
// traversal order.
func (r *Renderer) Render(root *Node, cam Camera, target gpu.RenderTarget) {
	r.dev.SetTarget(target)
	r.dev.Clear(r.ClearColor)
	r.Draw(root, cam)
}

// Draw renders root into the current target without clearing.
func (r *Renderer) Draw(root *Node, cam Camera) {
	if root == nil {
		return
	}

	r.opaque = r.opaque[:0]
	r.transparent = r.transparent[:0]
	r.collect(root, mgl32.Ident4())

	view := cam.ViewMatrix()
	proj := cam.ProjectionMatrix()
	for _, it := range r.opaque {
		r.drawMesh(it, view, proj)
	}
	for _, it := range r.transparent {
		r.drawMesh(it, view, proj)
	}
}

func (r *Renderer) collect(n *Node, parent mgl32.Mat4) {
	if !n.Visible || n.disposed {
		return
	}
	world := parent.Mul4(n.LocalMatrix())
	if n.Mesh.drawable() {
		it := drawItem{mesh: n.Mesh, world: world}
		if n.Mesh.Material.Transparent() {
			r.transparent = append(r.transparent, it)
		} else {
			r.opaque = append(r.opaque, it)
		}
	}
	for _, c := range n.children {
		r.collect(c, world)
	}
}

func (r *Renderer) drawMesh(it drawItem, view, proj mgl32.Mat4) {
	mat := it.mesh.Material
	prog := r.program(mat.Shader)
	if prog == nil {
		return
	}
	buf, err := it.mesh.Buffer(r.dev)
	if err != nil {
		r.log.Warn("mesh upload failed", zap.Error(err))
		return
	}

	u := gpu.Uniforms{
		"uModel":      it.world,
		"uView":       view,
		"uProjection": proj,
		"uColor":      mat.Color.Array(),
		"uOpacity":    mat.Opacity,
		"uOutline":    float32(0),
	}
	switch mat.Shader {
	case ShaderOutline:
		u["uOutline"] = mat.OutlineThickness
	case ShaderFlame:
		u["uColor1"] = mat.Color.Array()
		u["uColor2"] = mat.Color2.Array()
	case ShaderPoints:
		u["uPointSize"] = mat.PointSize
	case ShaderTextured:
		u["uHasTexture"] = mat.texture != nil
		if mat.texture != nil {
			u["uTexture"] = mat.texture
		}
	}

	r.dev.Draw(gpu.DrawCall{
		Program:  prog,
		Buffer:   buf,
		Uniforms: u,
		State: gpu.State{
			Side:       mat.Side,
			Blend:      mat.Blend,
			DepthTest:  true,
			DepthWrite: !mat.NoDepthWrite,
		},
	})
}

// Compile builds the program of every shader kind and returns the first
// failure.
func (r *Renderer) Compile() error {
	for s := range shaderKinds {
		if _, err := r.compile(s); err != nil {
			return fmt.Errorf("%s shader: %w", s, err)
		}
	}
	return nil
}

// program returns the compiled program for s, compiling it on first use.
// A kind that failed to compile is not retried.
func (r *Renderer) program(s Shader) gpu.Program {
	if r.failed[s] {
		return nil
	}
	p, err := r.compile(s)
	if err != nil {
		r.log.Error("shader compile failed",
			zap.Stringer("shader", s),
			zap.Error(err),
		)
		return nil
	}
	return p
}

func (r *Renderer) compile(s Shader) (gpu.Program, error) {
	if p, ok := r.programs[s]; ok {
		return p, nil
	}
	src, ok := sources[s]
	if !ok {
		r.failed[s] = true
		return nil, fmt.Errorf("unknown shader %d", int(s))
	}
	p, err := r.dev.NewProgram(src.vertex, src.fragment)
	if err != nil {
		r.failed[s] = true
		return nil, err
	}
	r.programs[s] = p
	return p, nil
}

// Dispose releases the compiled programs. Safe to call more than once.
func (r *Renderer) Dispose() {
	for s, p := range r.programs {
		p.Release()
		delete(r.programs, s)
	}
}
