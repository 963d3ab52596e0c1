package lightscene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Names the built-in shaders register under.
const (
	ShaderNameLit    = "cube"
	ShaderNameColor  = "lamp"
	ShaderNameSkybox = "skybox"
	ShaderNameNull   = "null"
)

// Per-object and per-scene uniform names.
const (
	UniformModel      = "model"
	UniformView       = "view"
	UniformProjection = "projection"
	UniformViewPos    = "viewPos"
)

// Shader wraps a compiled Program and knows which uniforms it needs. Use is called after the node's material has
// been used, and writes the camera, the node's model matrix and (for lit shaders) every light in the scene.
type Shader interface {
	// Name returns the name the shader is registered under in a Scene.
	Name() string
	// AttributeLocation returns the location of a vertex attribute in the shader's program, or -1.
	AttributeLocation(name string) int
	// Program returns the compiled program.
	Program() Program
	// Use activates the program and writes the uniforms needed to draw node in scene.
	Use(scene *Scene, node INode)
}

// Scaled is implemented by nodes drawn at a uniform scale. The scale is applied to the model uniform only and never
// enters the scene graph's transforms, so children aren't affected by it.
type Scaled interface {
	Scale() float32
}

// modelUniform returns the model matrix to draw node with.
func modelUniform(node INode) mgl32.Mat4 {
	model := node.ModelMatrix()
	if s, ok := node.(Scaled); ok && s.Scale() != 1 {
		model = model.Mul4(mgl32.Scale3D(s.Scale(), s.Scale(), s.Scale()))
	}
	return model
}

func bindCamera(program Program, camera *Camera) {
	program.SetMat4(UniformView, camera.ViewMatrix())
	program.SetMat4(UniformProjection, camera.Projection())
}

func newProgramShader(program Program) (programShader, error) {
	if isNil(program) {
		return programShader{}, fmt.Errorf("shader program: %w", ErrNilShader)
	}
	return programShader{program: program}, nil
}

// programShader holds what every concrete shader shares.
type programShader struct {
	program Program
}

func (ps programShader) AttributeLocation(name string) int {
	return ps.program.AttribLocation(name)
}

func (ps programShader) Program() Program {
	return ps.program
}

//---------------//

// LitShader draws textured geometry lit by the scene's directional, point and spot lights.
type LitShader struct {
	programShader
}

// NewLitShader returns a new LitShader using program.
func NewLitShader(program Program) (*LitShader, error) {
	ps, err := newProgramShader(program)
	if err != nil {
		return nil, err
	}
	return &LitShader{programShader: ps}, nil
}

func (shader *LitShader) Name() string { return ShaderNameLit }

// Use activates the program, binds the node's LitMaterial maps, then writes the camera, the model matrix and every
// light in the scene. A LitMaterial without a specular map clears TextureUnit1. Nodes without a LitMaterial are drawn
// with whatever textures are currently bound.
func (shader *LitShader) Use(scene *Scene, node INode) {
	program := shader.program
	program.Use()

	if mat, ok := node.Material().(*LitMaterial); ok {
		mat.diffuseMap.Use(TextureUnit0)
		if mat.specularMap != nil {
			mat.specularMap.Use(TextureUnit1)
		} else {
			scene.backend.UnbindTexture(TextureUnit1)
		}
	}

	camera := scene.camera
	bindCamera(program, camera)
	program.SetVec3(UniformViewPos, camera.WorldPosition())
	program.SetMat4(UniformModel, modelUniform(node))

	for _, light := range scene.lights {
		light.BindUniforms(program)
	}
}

//---------------//

// ColorShader draws geometry in the flat color of its ColorMaterial.
type ColorShader struct {
	programShader
}

// NewColorShader returns a new ColorShader using program.
func NewColorShader(program Program) (*ColorShader, error) {
	ps, err := newProgramShader(program)
	if err != nil {
		return nil, err
	}
	return &ColorShader{programShader: ps}, nil
}

func (shader *ColorShader) Name() string { return ShaderNameColor }

// Use activates the program and writes the node's color, the camera and the model matrix.
func (shader *ColorShader) Use(scene *Scene, node INode) {
	program := shader.program
	program.Use()
	if mat, ok := node.Material().(*ColorMaterial); ok {
		program.SetVec3(UniformColor, mat.Color)
	}
	bindCamera(program, scene.camera)
	program.SetMat4(UniformModel, modelUniform(node))
}

//---------------//

// SkyboxShader draws the skybox's texture with no lighting.
type SkyboxShader struct {
	programShader
}

// NewSkyboxShader returns a new SkyboxShader using program.
func NewSkyboxShader(program Program) (*SkyboxShader, error) {
	ps, err := newProgramShader(program)
	if err != nil {
		return nil, err
	}
	return &SkyboxShader{programShader: ps}, nil
}

func (shader *SkyboxShader) Name() string { return ShaderNameSkybox }

// Use activates the program, binds the skybox texture to TextureUnit0 and writes the camera and model matrix.
func (shader *SkyboxShader) Use(scene *Scene, node INode) {
	program := shader.program
	program.Use()
	if mat, ok := node.Material().(*TextureMaterial); ok {
		mat.diffuseMap.Use(TextureUnit0)
	}
	program.SetInt(UniformTexture0, int32(TextureUnit0))
	bindCamera(program, scene.camera)
	program.SetMat4(UniformModel, modelUniform(node))
}

//---------------//

// NullShader is the shader of the null material: every call is a no-op.
type NullShader struct{}

func (NullShader) Name() string                 { return ShaderNameNull }
func (NullShader) AttributeLocation(string) int { return -1 }
func (NullShader) Program() Program             { return NullProgram }
func (NullShader) Use(*Scene, INode)            {}

var nullShader Shader = NullShader{}
