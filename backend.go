package lightscene

import "github.com/go-gl/mathgl/mgl32"

// Backend is the graphics API the scene draws through. The scene only creates vertex storage and toggles depth
// testing; programs and textures are created by the backend's own constructors and handed to shaders and materials.
type Backend interface {
	// NewVertexBuffer uploads interleaved vertex data.
	NewVertexBuffer(data []float32) (VertexBuffer, error)
	// NewVertexArray describes how buffer is laid out for program. Attributes the program doesn't use
	// (AttribLocation returns -1) are skipped.
	NewVertexArray(buffer VertexBuffer, layout VertexLayout, program Program) (VertexArray, error)
	// SetDepthTest enables or disables depth testing for subsequent draws.
	SetDepthTest(enabled bool)
	// UnbindTexture clears whatever texture is bound to unit.
	UnbindTexture(unit TextureUnit)
}

// VertexBuffer is uploaded vertex data.
type VertexBuffer interface {
	// Len returns the number of floats in the buffer.
	Len() int
}

// VertexArray is a vertex buffer bound to a layout, ready to be drawn with the currently active program.
type VertexArray interface {
	// Draw draws count vertices as a triangle list, starting at vertex first.
	Draw(first, count int)
	// VertexCount returns the number of whole vertices in the array.
	VertexCount() int
}

// Program is a compiled shader program. Uniform setters apply to the program regardless of whether it's active;
// names the program doesn't declare are ignored.
type Program interface {
	// Use makes the program the active one for subsequent draws.
	Use()
	// AttribLocation returns the location of the named vertex attribute, or -1 if the program doesn't have it.
	AttribLocation(name string) int
	SetInt(name string, value int32)
	SetFloat(name string, value float32)
	SetVec3(name string, value mgl32.Vec3)
	SetMat4(name string, value mgl32.Mat4)
}

// TextureUnit is a texture binding slot.
type TextureUnit int

const (
	TextureUnit0 TextureUnit = iota // TextureUnit0 holds diffuse maps
	TextureUnit1                    // TextureUnit1 holds specular maps
)

// Texture is an image uploaded to the graphics backend.
type Texture interface {
	// Use binds the texture to the given unit.
	Use(unit TextureUnit)
}

// nullProgram is a Program that does nothing, for objects that draw nothing.
type nullProgram struct{}

func (nullProgram) Use()                           {}
func (nullProgram) AttribLocation(name string) int { return -1 }
func (nullProgram) SetInt(string, int32)           {}
func (nullProgram) SetFloat(string, float32)       {}
func (nullProgram) SetVec3(string, mgl32.Vec3)     {}
func (nullProgram) SetMat4(string, mgl32.Mat4)     {}

// NullProgram is the shared Program that ignores every call.
var NullProgram Program = nullProgram{}
