package ebitengfx

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Program pairs a VertexStage running on the CPU with a compiled Kage fragment shader. It implements
// lightscene.Program and the Uniforms its stage reads.
type Program struct {
	backend *Backend
	stage   VertexStage
	shader  *ebiten.Shader
	attribs map[string]int

	ints   map[string]int32
	floats map[string]float32
	vec3s  map[string]mgl32.Vec3
	mat4s  map[string]mgl32.Mat4
}

func newProgram(backend *Backend, stage VertexStage, shader *ebiten.Shader) *Program {
	p := &Program{
		backend: backend,
		stage:   stage,
		shader:  shader,
		attribs: map[string]int{},
		ints:    map[string]int32{},
		floats:  map[string]float32{},
		vec3s:   map[string]mgl32.Vec3{},
		mat4s:   map[string]mgl32.Mat4{},
	}
	for i, name := range stage.Attributes() {
		p.attribs[name] = i
	}
	return p
}

// Name returns the stage's name.
func (p *Program) Name() string { return p.stage.Name() }

// Stage returns the program's vertex stage.
func (p *Program) Stage() VertexStage { return p.stage }

// Use makes the program the one subsequent draws go through.
func (p *Program) Use() { p.backend.current = p }

func (p *Program) AttribLocation(name string) int {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (p *Program) SetInt(name string, value int32)       { p.ints[name] = value }
func (p *Program) SetFloat(name string, value float32)   { p.floats[name] = value }
func (p *Program) SetVec3(name string, value mgl32.Vec3) { p.vec3s[name] = value }
func (p *Program) SetMat4(name string, value mgl32.Mat4) { p.mat4s[name] = value }

func (p *Program) Int(name string) int32       { return p.ints[name] }
func (p *Program) Float(name string) float32   { return p.floats[name] }
func (p *Program) Vec3(name string) mgl32.Vec3 { return p.vec3s[name] }
func (p *Program) Mat4(name string) mgl32.Mat4 { return p.mat4s[name] }
