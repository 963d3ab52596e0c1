package lightscene_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/lightscene"
	"github.com/solarlune/lightscene/gfxtest"
)

const epsilon = 1e-4

// fixture is a scene drawing through a recording backend, with the built-in shaders registered.
type fixture struct {
	backend *gfxtest.Backend
	scene   *lightscene.Scene
	camera  *lightscene.Camera

	litProgram    *gfxtest.Program
	lampProgram   *gfxtest.Program
	skyboxProgram *gfxtest.Program

	lit    *lightscene.LitShader
	lamp   *lightscene.ColorShader
	skybox *lightscene.SkyboxShader

	diffuse  *gfxtest.Texture
	specular *gfxtest.Texture
	sky      *gfxtest.Texture
}

func newFixture(t *testing.T, maxLights int) *fixture {
	t.Helper()

	f := &fixture{backend: gfxtest.New()}
	f.camera = lightscene.NewCamera(mgl32.Vec3{0, 0, 3}, 4.0/3.0)

	scene, err := lightscene.NewScene(f.backend, f.camera, maxLights)
	require.NoError(t, err)
	f.scene = scene

	f.litProgram = f.backend.NewProgram("cube", lightscene.AttribPosition, lightscene.AttribNormal, lightscene.AttribTexCoords)
	f.lampProgram = f.backend.NewProgram("lamp", lightscene.AttribPosition)
	f.skyboxProgram = f.backend.NewProgram("skybox", lightscene.AttribPosition, lightscene.AttribTexCoords)

	f.lit, err = lightscene.NewLitShader(f.litProgram)
	require.NoError(t, err)
	f.lamp, err = lightscene.NewColorShader(f.lampProgram)
	require.NoError(t, err)
	f.skybox, err = lightscene.NewSkyboxShader(f.skyboxProgram)
	require.NoError(t, err)

	require.NoError(t, scene.AddShader(f.lit))
	require.NoError(t, scene.AddShader(f.lamp))
	require.NoError(t, scene.AddShader(f.skybox))

	f.diffuse = f.backend.NewTexture("container")
	f.specular = f.backend.NewTexture("container_specular")
	f.sky = f.backend.NewTexture("sky")

	return f
}

func (f *fixture) litCube(t *testing.T) *lightscene.Mesh {
	t.Helper()
	mat, err := lightscene.NewLitMaterial(f.diffuse, f.specular, f.lit)
	require.NoError(t, err)
	cube, err := lightscene.NewCube(f.backend, mat)
	require.NoError(t, err)
	return cube
}

func (f *fixture) lampCube(t *testing.T, color mgl32.Vec3) *lightscene.Mesh {
	t.Helper()
	mat, err := lightscene.NewColorMaterial(color, f.lamp)
	require.NoError(t, err)
	cube, err := lightscene.NewCube(f.backend, mat)
	require.NoError(t, err)
	return cube
}

func (f *fixture) newSkybox(t *testing.T) *lightscene.Skybox {
	t.Helper()
	mat, err := lightscene.NewTextureMaterial(f.sky, f.skybox)
	require.NoError(t, err)
	skybox, err := lightscene.NewSkybox(f.backend, mat)
	require.NoError(t, err)
	return skybox
}

func assertMat4(t *testing.T, expected, actual mgl32.Mat4) {
	t.Helper()
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], epsilon, "element %d: expected\n%v\ngot\n%v", i, expected, actual) {
			return
		}
	}
}

func assertVec3(t *testing.T, expected, actual mgl32.Vec3) {
	t.Helper()
	for i := range expected {
		if !assert.InDelta(t, expected[i], actual[i], epsilon, "component %d: expected %v, got %v", i, expected, actual) {
			return
		}
	}
}
