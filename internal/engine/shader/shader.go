// Package shader compiles GLSL programs and uploads uniforms to them.
package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// CompileProgram compiles vertex and fragment shaders and links them into a program.
// Returns the program ID or an error if compilation/linking fails.
func CompileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertShader, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}

	return program, nil
}

// compileShader compiles a single shader of the given type.
func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}

	return shader, nil
}

// Program is a linked program with a cache of uniform locations.
type Program struct {
	id        uint32
	locations map[string]int32
}

// New compiles and links a program.
func New(vertexSrc, fragmentSrc string) (*Program, error) {
	id, err := CompileProgram(vertexSrc, fragmentSrc)
	if err != nil {
		return nil, err
	}
	return &Program{id: id, locations: make(map[string]int32)}, nil
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Location returns the uniform location for name, -1 when the uniform is
// absent or optimised out.
func (p *Program) Location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// Set uploads a scalar, vector or matrix uniform. The program must be in use.
// Unknown names are ignored; unsupported types return an error.
func (p *Program) Set(name string, value any) error {
	loc := p.Location(name)
	if loc < 0 {
		return nil
	}
	switch v := value.(type) {
	case float32:
		gl.Uniform1f(loc, v)
	case int32:
		gl.Uniform1i(loc, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1i(loc, i)
	case mgl32.Vec2:
		gl.Uniform2f(loc, v[0], v[1])
	case mgl32.Vec3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case [3]float32:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case mgl32.Vec4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case mgl32.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		return fmt.Errorf("uniform %q: unsupported type %T", name, value)
	}
	return nil
}

// Release deletes the program. Safe to call more than once.
func (p *Program) Release() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
