// Package gfxtest provides a graphics backend that draws nothing and records what it's asked to do, for testing
// scenes without a window.
package gfxtest

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/solarlune/lightscene"
)

// Backend is a lightscene.Backend that records every call made through it and the objects it created.
type Backend struct {
	calls     []string
	depthTest bool
	current   *Program
	bound     map[lightscene.TextureUnit]*Texture
	// FailVertexArrays makes NewVertexArray fail, to test error paths.
	FailVertexArrays bool
}

// New returns a new recording Backend with depth testing enabled.
func New() *Backend {
	return &Backend{
		depthTest: true,
		bound:     map[lightscene.TextureUnit]*Texture{},
	}
}

func (b *Backend) record(format string, args ...any) {
	b.calls = append(b.calls, fmt.Sprintf(format, args...))
}

// Calls returns the recorded calls in order, such as "depth off", "use lamp" or "draw lamp 36".
func (b *Backend) Calls() []string {
	return append([]string(nil), b.calls...)
}

// CallsWithPrefix returns the recorded calls that start with prefix.
func (b *Backend) CallsWithPrefix(prefix string) []string {
	calls := []string{}
	for _, c := range b.calls {
		if strings.HasPrefix(c, prefix) {
			calls = append(calls, c)
		}
	}
	return calls
}

// Reset forgets the recorded calls.
func (b *Backend) Reset() {
	b.calls = b.calls[:0]
}

// DepthTest returns whether depth testing is currently enabled.
func (b *Backend) DepthTest() bool {
	return b.depthTest
}

// Bound returns the texture bound to unit, or nil.
func (b *Backend) Bound(unit lightscene.TextureUnit) *Texture {
	return b.bound[unit]
}

// NewVertexBuffer records the upload and keeps a copy of data.
func (b *Backend) NewVertexBuffer(data []float32) (lightscene.VertexBuffer, error) {
	b.record("buffer %d", len(data))
	return &VertexBuffer{Data: append([]float32(nil), data...)}, nil
}

// NewVertexArray records the layout and the attribute locations program reports for it.
func (b *Backend) NewVertexArray(buffer lightscene.VertexBuffer, layout lightscene.VertexLayout, program lightscene.Program) (lightscene.VertexArray, error) {
	if b.FailVertexArrays {
		return nil, fmt.Errorf("gfxtest: vertex arrays disabled")
	}
	vb, ok := buffer.(*VertexBuffer)
	if !ok {
		return nil, fmt.Errorf("gfxtest: foreign vertex buffer %T", buffer)
	}
	va := &VertexArray{backend: b, Buffer: vb, Layout: layout, Locations: map[string]int{}}
	for _, attr := range layout.Attributes {
		if loc := program.AttribLocation(attr.Name); loc >= 0 {
			va.Locations[attr.Name] = loc
		}
	}
	b.record("vertex array %d", len(va.Locations))
	return va, nil
}

// SetDepthTest records the change as "depth on" or "depth off".
func (b *Backend) SetDepthTest(enabled bool) {
	b.depthTest = enabled
	if enabled {
		b.record("depth on")
	} else {
		b.record("depth off")
	}
}

// UnbindTexture clears unit and records "unbind <unit>".
func (b *Backend) UnbindTexture(unit lightscene.TextureUnit) {
	delete(b.bound, unit)
	b.record("unbind %d", int(unit))
}

// NewProgram returns a new recording Program with the given vertex attributes, located in the order given.
func (b *Backend) NewProgram(name string, attributes ...string) *Program {
	p := &Program{
		backend:  b,
		Name:     name,
		attribs:  map[string]int{},
		Uniforms: map[string]any{},
	}
	for i, a := range attributes {
		p.attribs[a] = i
	}
	return p
}

// NewTexture returns a new recording Texture.
func (b *Backend) NewTexture(name string) *Texture {
	return &Texture{backend: b, Name: name}
}

// VertexBuffer is a recorded vertex upload.
type VertexBuffer struct {
	Data []float32
}

func (vb *VertexBuffer) Len() int { return len(vb.Data) }

// VertexArray is a recorded vertex array. Draw records the active program's name and the vertex count.
type VertexArray struct {
	backend   *Backend
	Buffer    *VertexBuffer
	Layout    lightscene.VertexLayout
	Locations map[string]int
	Draws     int
}

func (va *VertexArray) VertexCount() int {
	if va.Layout.Stride == 0 {
		return 0
	}
	return len(va.Buffer.Data) / va.Layout.Stride
}

func (va *VertexArray) Draw(first, count int) {
	va.Draws++
	name := "<none>"
	if va.backend.current != nil {
		name = va.backend.current.Name
	}
	va.backend.record("draw %s %d", name, count-first)
}

// Program is a recorded shader program. Uniforms holds the last value set for every uniform, and Sets counts how
// many times each was written.
type Program struct {
	backend  *Backend
	Name     string
	attribs  map[string]int
	Uniforms map[string]any
	Sets     map[string]int
	Uses     int
}

func (p *Program) Use() {
	p.Uses++
	p.backend.current = p
	p.backend.record("use %s", p.Name)
}

func (p *Program) AttribLocation(name string) int {
	if loc, ok := p.attribs[name]; ok {
		return loc
	}
	return -1
}

func (p *Program) set(name string, value any) {
	if p.Sets == nil {
		p.Sets = map[string]int{}
	}
	p.Uniforms[name] = value
	p.Sets[name]++
}

func (p *Program) SetInt(name string, value int32)       { p.set(name, value) }
func (p *Program) SetFloat(name string, value float32)   { p.set(name, value) }
func (p *Program) SetVec3(name string, value mgl32.Vec3) { p.set(name, value) }
func (p *Program) SetMat4(name string, value mgl32.Mat4) { p.set(name, value) }

// Vec3 returns the last value of a vec3 uniform.
func (p *Program) Vec3(name string) (mgl32.Vec3, bool) {
	v, ok := p.Uniforms[name].(mgl32.Vec3)
	return v, ok
}

// Mat4 returns the last value of a mat4 uniform.
func (p *Program) Mat4(name string) (mgl32.Mat4, bool) {
	v, ok := p.Uniforms[name].(mgl32.Mat4)
	return v, ok
}

// Float returns the last value of a float uniform.
func (p *Program) Float(name string) (float32, bool) {
	v, ok := p.Uniforms[name].(float32)
	return v, ok
}

// Int returns the last value of an int uniform.
func (p *Program) Int(name string) (int32, bool) {
	v, ok := p.Uniforms[name].(int32)
	return v, ok
}

// Texture is a recorded texture. Use records "bind <name> <unit>".
type Texture struct {
	backend *Backend
	Name    string
	Binds   int
}

func (t *Texture) Use(unit lightscene.TextureUnit) {
	t.Binds++
	t.backend.bound[unit] = t
	t.backend.record("bind %s %d", t.Name, int(unit))
}
