package ebitengfx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/lightscene"
)

// stageProgram returns a program for stage with identity transforms, without compiling a fragment shader.
func stageProgram(stage VertexStage) *Program {
	p := newProgram(nil, stage, nil)
	p.SetMat4(lightscene.UniformModel, mgl32.Ident4())
	p.SetMat4(lightscene.UniformView, mgl32.Ident4())
	p.SetMat4(lightscene.UniformProjection, mgl32.Ident4())
	return p
}

func TestStageAttributeLocations(t *testing.T) {

	lit := stageProgram(NewLitStage(4))
	assert.Equal(t, 0, lit.AttribLocation(lightscene.AttribPosition))
	assert.Equal(t, 1, lit.AttribLocation(lightscene.AttribNormal))
	assert.Equal(t, 2, lit.AttribLocation(lightscene.AttribTexCoords))

	color := stageProgram(NewColorStage())
	assert.Equal(t, -1, color.AttribLocation(lightscene.AttribNormal))

	assert.Equal(t, lightscene.ShaderNameLit, lit.Name())
	assert.Equal(t, lightscene.ShaderNameColor, color.Name())
	assert.Equal(t, lightscene.ShaderNameSkybox, NewTextureStage().Name())

}

func TestColorStage(t *testing.T) {

	stage := NewColorStage()
	p := stageProgram(stage)
	p.SetMat4(lightscene.UniformModel, mgl32.Translate3D(1, 2, 3))
	p.SetVec3(lightscene.UniformColor, mgl32.Vec3{1, 0, 0})

	stage.Begin(p)
	out := stage.Vertex(VertexInput{Position: mgl32.Vec3{1, 1, 1}})

	assert.Equal(t, mgl32.Vec4{2, 3, 4, 1}, out.Clip)
	assert.Equal(t, mgl32.Vec4{1, 0, 0, 1}, out.Color)

}

func TestTextureStageComposesProjectionViewModel(t *testing.T) {

	stage := NewTextureStage()
	p := stageProgram(stage)

	projection := mgl32.Perspective(mgl32.DegToRad(45), 4.0/3.0, 0.01, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 3}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	model := mgl32.HomogRotate3DY(0.5)

	p.SetMat4(lightscene.UniformProjection, projection)
	p.SetMat4(lightscene.UniformView, view)
	p.SetMat4(lightscene.UniformModel, model)

	stage.Begin(p)

	in := VertexInput{Position: mgl32.Vec3{0.5, -0.5, 0.5}, TexCoords: mgl32.Vec2{0.25, 0.75}}
	out := stage.Vertex(in)

	expected := projection.Mul4(view).Mul4(model).Mul4x1(in.Position.Vec4(1))
	for i := range expected {
		assert.InDelta(t, expected[i], out.Clip[i], epsilon)
	}
	assert.Equal(t, in.TexCoords, out.TexCoords)

}

func TestLitStagePointLight(t *testing.T) {

	stage := NewLitStage(4)
	p := stageProgram(stage)

	light := lightscene.NewPointLight(2, mgl32.Vec3{0, 0, 1})
	light.Ambient = mgl32.Vec3{}
	light.Specular = mgl32.Vec3{}
	light.Diffuse = mgl32.Vec3{1, 0.5, 0.25}
	light.Linear, light.Quadratic = 0, 0
	light.Update(0)
	light.BindUniforms(p)

	stage.Begin(p)
	require.Len(t, stage.lights, 1, "unused slots are skipped")

	facing := stage.Vertex(VertexInput{Normal: mgl32.Vec3{0, 0, 1}})
	assert.InDelta(t, 1, facing.Color[0], epsilon)
	assert.InDelta(t, 0.5, facing.Color[1], epsilon)
	assert.InDelta(t, 0.25, facing.Color[2], epsilon)

	away := stage.Vertex(VertexInput{Normal: mgl32.Vec3{0, 0, -1}})
	assert.Equal(t, mgl32.Vec4{}, away.Color)

	// Turning the light off binds black, and the slot is skipped.
	light.On = false
	light.BindUniforms(p)
	stage.Begin(p)
	assert.Empty(t, stage.lights)

}

func TestLitStageAttenuation(t *testing.T) {

	stage := NewLitStage(1)
	p := stageProgram(stage)

	light := lightscene.NewPointLight(0, mgl32.Vec3{0, 0, 4})
	light.Ambient = mgl32.Vec3{}
	light.Specular = mgl32.Vec3{}
	light.Diffuse = mgl32.Vec3{1, 1, 1}
	light.Update(0)
	light.BindUniforms(p)

	stage.Begin(p)
	out := stage.Vertex(VertexInput{Normal: mgl32.Vec3{0, 0, 1}})

	expected := 1 / (lightscene.DefaultLightConstant + lightscene.DefaultLightLinear*4 + lightscene.DefaultLightQuadratic*16)
	assert.InDelta(t, expected, out.Color[0], epsilon)

}

func TestLitStageSpotCone(t *testing.T) {

	stage := NewLitStage(2)
	p := stageProgram(stage)

	spot := lightscene.NewSpotLight(1, mgl32.Vec3{0, 0, 2})
	spot.Ambient = mgl32.Vec3{}
	spot.Specular = mgl32.Vec3{}
	spot.Diffuse = mgl32.Vec3{1, 1, 1}
	spot.Linear, spot.Quadratic = 0, 0
	spot.Update(0)
	spot.BindUniforms(p)

	stage.Begin(p)
	require.Len(t, stage.lights, 1)
	assert.True(t, stage.lights[0].spot)

	inside := stage.Vertex(VertexInput{Normal: mgl32.Vec3{0, 0, 1}})
	assert.InDelta(t, 1, inside.Color[0], epsilon)

	// Well outside the 17.5 degree outer cone.
	outside := stage.Vertex(VertexInput{Position: mgl32.Vec3{3, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}})
	assert.InDelta(t, 0, outside.Color[0], epsilon)

	// With the cone disabled it's a plain point light.
	spot.IsSpotLight = false
	spot.BindUniforms(p)
	stage.Begin(p)
	lit := stage.Vertex(VertexInput{Position: mgl32.Vec3{3, 0, 0}, Normal: mgl32.Vec3{0, 0, 1}})
	assert.Greater(t, lit.Color[0], float32(0))

}

func TestLitStageDirectionalLightAndSpecular(t *testing.T) {

	stage := NewLitStage(1)
	p := stageProgram(stage)
	p.SetVec3(lightscene.UniformViewPos, mgl32.Vec3{0, 0, 5})
	p.SetVec3(lightscene.UniformMaterialSpecularColor, mgl32.Vec3{1, 1, 1})
	p.SetFloat(lightscene.UniformMaterialShininess, 32)

	sun := lightscene.NewDirectionalLight()
	sun.Direction = mgl32.Vec3{0, 0, -1}
	sun.Ambient = mgl32.Vec3{0.1, 0.1, 0.1}
	sun.Diffuse = mgl32.Vec3{0.5, 0.5, 0.5}
	sun.Specular = mgl32.Vec3{1, 1, 1}
	sun.BindUniforms(p)

	stage.Begin(p)
	assert.True(t, stage.hasSun)
	assert.Empty(t, stage.lights)

	// Light and viewer straight ahead of the surface: full diffuse and a full highlight.
	out := stage.Vertex(VertexInput{Normal: mgl32.Vec3{0, 0, 1}})
	assert.InDelta(t, 0.6, out.Color[0], epsilon)
	assert.InDelta(t, 1, out.Color[3], epsilon)

	// Facing away only gets the ambient term.
	back := stage.Vertex(VertexInput{Normal: mgl32.Vec3{0, 0, -1}})
	assert.InDelta(t, 0.1, back.Color[0], epsilon)
	assert.InDelta(t, 0, back.Color[3], epsilon)

}

func TestSpotIntensity(t *testing.T) {
	down := mgl32.Vec3{0, -1, 0}
	assert.Equal(t, float32(1), spotIntensity(mgl32.Vec3{0, 1, 0}, down, 0.9, 0.8))
	assert.Equal(t, float32(0), spotIntensity(mgl32.Vec3{1, 0, 0}, down, 0.9, 0.8))
	assert.InDelta(t, 0.5, spotIntensity(mgl32.Vec3{0, 0.85, 0}, down, 0.9, 0.8), epsilon)
	assert.Equal(t, float32(0), spotIntensity(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, 0.9, 0.8))
}
