package lightscene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Material uniform names.
const (
	UniformMaterialDiffuse       = "material.diffuse"
	UniformMaterialSpecular      = "material.specular"
	UniformMaterialSpecularColor = "material.specularColor"
	UniformMaterialShininess     = "material.shininess"
	UniformColor                 = "color"
	UniformTexture0              = "texture0"
)

const (
	DefaultMaterialShininess = 32
)

// DefaultMaterialSpecular is the specular tint given to new LitMaterials.
var DefaultMaterialSpecular = mgl32.Vec3{0.5, 0.5, 0.5}

// Material describes how a node's surface looks. Use binds the material's textures, activates its shader's program,
// and writes the material's own uniforms; the shader then writes everything else in Shader().Use.
type Material interface {
	// Shader returns the shader the material draws with.
	Shader() Shader
	// Use binds the material's textures and uniforms and activates its shader program.
	Use()
}

//---------------//

// LitMaterial is a textured material lit by the scene's lights. The diffuse map is bound to TextureUnit0 and the
// optional specular map to TextureUnit1.
type LitMaterial struct {
	Specular    mgl32.Vec3 // Specular is the tint of specular highlights.
	Shininess   float32    // Shininess is the specular exponent.
	diffuseMap  Texture
	specularMap Texture
	shader      Shader
}

// NewLitMaterial returns a new LitMaterial. The diffuse map and shader are required; specularMap may be nil.
func NewLitMaterial(diffuseMap, specularMap Texture, shader Shader) (*LitMaterial, error) {
	if isNil(diffuseMap) {
		return nil, fmt.Errorf("lit material diffuse map: %w", ErrNilTexture)
	}
	if isNil(shader) {
		return nil, fmt.Errorf("lit material: %w", ErrNilShader)
	}
	if isNil(specularMap) {
		specularMap = nil
	}
	return &LitMaterial{
		Specular:    DefaultMaterialSpecular,
		Shininess:   DefaultMaterialShininess,
		diffuseMap:  diffuseMap,
		specularMap: specularMap,
		shader:      shader,
	}, nil
}

// Shader returns the material's shader.
func (mat *LitMaterial) Shader() Shader { return mat.shader }

// DiffuseMap returns the material's diffuse texture.
func (mat *LitMaterial) DiffuseMap() Texture { return mat.diffuseMap }

// SpecularMap returns the material's specular texture, or nil if it has none.
func (mat *LitMaterial) SpecularMap() Texture { return mat.specularMap }

// Use binds the maps, activates the program and writes the material.* uniforms. A missing specular map leaves
// TextureUnit1 alone; LitShader.Use clears it.
func (mat *LitMaterial) Use() {
	mat.diffuseMap.Use(TextureUnit0)
	if mat.specularMap != nil {
		mat.specularMap.Use(TextureUnit1)
	}

	program := mat.shader.Program()
	program.Use()
	program.SetInt(UniformMaterialDiffuse, int32(TextureUnit0))
	program.SetInt(UniformMaterialSpecular, int32(TextureUnit1))
	program.SetVec3(UniformMaterialSpecularColor, mat.Specular)
	program.SetFloat(UniformMaterialShininess, mat.Shininess)
}

//---------------//

// ColorMaterial draws a node in a single flat color, unaffected by lights. Lamps use it.
type ColorMaterial struct {
	Color  mgl32.Vec3
	shader Shader
}

// NewColorMaterial returns a new ColorMaterial.
func NewColorMaterial(color mgl32.Vec3, shader Shader) (*ColorMaterial, error) {
	if isNil(shader) {
		return nil, fmt.Errorf("color material: %w", ErrNilShader)
	}
	return &ColorMaterial{Color: color, shader: shader}, nil
}

// Shader returns the material's shader.
func (mat *ColorMaterial) Shader() Shader { return mat.shader }

// Use activates the program and writes the color uniform.
func (mat *ColorMaterial) Use() {
	program := mat.shader.Program()
	program.Use()
	program.SetVec3(UniformColor, mat.Color)
}

//---------------//

// TextureMaterial draws a single unlit texture. The skybox uses it.
type TextureMaterial struct {
	diffuseMap Texture
	shader     Shader
}

// NewTextureMaterial returns a new TextureMaterial.
func NewTextureMaterial(diffuseMap Texture, shader Shader) (*TextureMaterial, error) {
	if isNil(diffuseMap) {
		return nil, fmt.Errorf("texture material: %w", ErrNilTexture)
	}
	if isNil(shader) {
		return nil, fmt.Errorf("texture material: %w", ErrNilShader)
	}
	return &TextureMaterial{diffuseMap: diffuseMap, shader: shader}, nil
}

// Shader returns the material's shader.
func (mat *TextureMaterial) Shader() Shader { return mat.shader }

// DiffuseMap returns the material's texture.
func (mat *TextureMaterial) DiffuseMap() Texture { return mat.diffuseMap }

// Use binds the texture to TextureUnit0, activates the program and points texture0 at it.
func (mat *TextureMaterial) Use() {
	mat.diffuseMap.Use(TextureUnit0)
	program := mat.shader.Program()
	program.Use()
	program.SetInt(UniformTexture0, int32(TextureUnit0))
}

//---------------//

// NullMaterial is the material of nodes that draw nothing.
type NullMaterial struct{}

func (NullMaterial) Shader() Shader { return nullShader }
func (NullMaterial) Use()           {}

var nullMaterial Material = NullMaterial{}
