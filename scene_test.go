package lightscene_test

import (
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solarlune/lightscene"
	"github.com/solarlune/lightscene/gfxtest"
)

func TestNewSceneRequiresCameraAndBackend(t *testing.T) {

	_, err := lightscene.NewScene(nil, lightscene.NewCamera(mgl32.Vec3{}, 1), 0)
	assert.ErrorIs(t, err, lightscene.ErrNilBackend)

	var backend *gfxtest.Backend
	_, err = lightscene.NewScene(backend, lightscene.NewCamera(mgl32.Vec3{}, 1), 0)
	assert.ErrorIs(t, err, lightscene.ErrNilBackend)

	_, err = lightscene.NewScene(gfxtest.New(), nil, 0)
	assert.ErrorIs(t, err, lightscene.ErrNilCamera)

	camera := lightscene.NewCamera(mgl32.Vec3{}, 1)
	_, err = lightscene.NewScene(gfxtest.New(), camera, 0)
	require.NoError(t, err)
	_, err = lightscene.NewScene(gfxtest.New(), camera, 0)
	assert.ErrorIs(t, err, lightscene.ErrForeignScene, "a camera views a single scene")

}

func TestUninitializedScene(t *testing.T) {

	var scene lightscene.Scene

	assert.ErrorIs(t, scene.Update(0), lightscene.ErrNotInitialized)
	assert.ErrorIs(t, scene.Render(), lightscene.ErrNotInitialized)
	assert.ErrorIs(t, scene.AddChild(lightscene.NewNode("node")), lightscene.ErrNotInitialized)
	assert.ErrorIs(t, scene.AddLight(lightscene.NewPointLight(0, mgl32.Vec3{})), lightscene.ErrNotInitialized)
	assert.ErrorIs(t, scene.AddSkybox(nil), lightscene.ErrNotInitialized)
	assert.ErrorIs(t, scene.AddShader(lightscene.NullShader{}), lightscene.ErrNotInitialized)

	_, err := scene.CreatePointLight(mgl32.Vec3{})
	assert.ErrorIs(t, err, lightscene.ErrNotInitialized)
	_, err = scene.CreateSpotLight(mgl32.Vec3{})
	assert.ErrorIs(t, err, lightscene.ErrNotInitialized)
	_, err = scene.CreateDirectionalLight()
	assert.ErrorIs(t, err, lightscene.ErrNotInitialized)

	assert.Nil(t, scene.Camera())
	assert.Nil(t, scene.Root())
	assert.Nil(t, scene.Skybox())

	_, ok := scene.Shader(lightscene.ShaderNameLit)
	assert.False(t, ok)

}

func TestSceneStartsWithRootAndCamera(t *testing.T) {

	f := newFixture(t, 0)

	assert.Equal(t, 2, f.scene.NodeCount())
	assert.Equal(t, lightscene.NodeKindScene, f.scene.Root().Kind())
	assert.Same(t, f.camera, f.scene.Camera())
	assert.Same(t, f.scene, f.camera.Scene())
	assert.Equal(t, f.scene.Root().ID(), f.camera.Parent().ID())
	assert.Empty(t, f.scene.Root().Children(), "the camera isn't one of the root's drawable children")
	assert.Nil(t, f.scene.Skybox())

}

func TestRenderWithoutLights(t *testing.T) {

	f := newFixture(t, 0)
	require.NoError(t, f.scene.AddChild(f.litCube(t)))

	f.backend.Reset()
	require.NoError(t, f.scene.Update(1.0/60))
	require.NoError(t, f.scene.Render())

	assert.Equal(t, []string{"depth on"}, f.backend.CallsWithPrefix("depth"))
	assert.Equal(t, []string{"draw cube 36"}, f.backend.CallsWithPrefix("draw"))
	assert.Empty(t, f.scene.Lights())

}

func TestSkyboxDrawsFirstWithoutDepthTest(t *testing.T) {

	f := newFixture(t, 0)

	_, err := f.scene.CreatePointLight(mgl32.Vec3{1.2, 1, 2})
	require.NoError(t, err)

	require.NoError(t, f.scene.AddChild(f.litCube(t)))
	require.NoError(t, f.scene.AddChild(f.lampCube(t, mgl32.Vec3{1, 1, 1})))
	require.NoError(t, f.scene.AddSkybox(f.newSkybox(t)))

	f.backend.Reset()
	require.NoError(t, f.scene.Update(1.0/60))
	require.NoError(t, f.scene.Render())

	calls := f.backend.Calls()
	require.NotEmpty(t, calls)
	assert.Equal(t, "depth off", calls[0])

	skyDraw := slices.Index(calls, "draw skybox 36")
	depthOn := slices.Index(calls, "depth on")
	cubeDraw := slices.Index(calls, "draw cube 36")
	lampDraw := slices.Index(calls, "draw lamp 36")

	require.NotEqual(t, -1, skyDraw)
	assert.Less(t, skyDraw, depthOn)
	assert.Less(t, depthOn, cubeDraw)
	assert.Less(t, cubeDraw, lampDraw)

	assert.Equal(t, []string{"depth off", "depth on"}, f.backend.CallsWithPrefix("depth"))
	assert.True(t, f.backend.DepthTest())

}

func TestAddSkyboxReplaces(t *testing.T) {

	f := newFixture(t, 0)

	first := f.newSkybox(t)
	require.NoError(t, f.scene.AddSkybox(first))
	require.NoError(t, f.scene.AddSkybox(first), "adding the current skybox again is a no-op")

	mat, err := lightscene.NewTextureMaterial(f.backend.NewTexture("night"), f.skybox)
	require.NoError(t, err)
	second, err := lightscene.NewSkybox(f.backend, mat)
	require.NoError(t, err)

	require.NoError(t, f.scene.AddSkybox(second))
	assert.Same(t, second, f.scene.Skybox())
	assert.Nil(t, first.Parent())

	f.backend.Reset()
	require.NoError(t, f.scene.Render())

	assert.Equal(t, []string{"draw skybox 36"}, f.backend.CallsWithPrefix("draw"))
	assert.NotEmpty(t, f.backend.CallsWithPrefix("bind night"))
	assert.Empty(t, f.backend.CallsWithPrefix("bind sky "))

	assert.ErrorIs(t, f.scene.AddSkybox(nil), lightscene.ErrNilNode)

	other := newFixture(t, 0)
	assert.ErrorIs(t, other.scene.AddSkybox(second), lightscene.ErrForeignScene)

}

func TestSkyboxFollowsCamera(t *testing.T) {

	f := newFixture(t, 0)
	skybox := f.newSkybox(t)
	require.NoError(t, f.scene.AddSkybox(skybox))

	f.camera.SetPosition(mgl32.Vec3{5, -3, 8})
	require.NoError(t, f.scene.Update(1.0/60))

	assertVec3(t, mgl32.Vec3{5, -3, 8}, skybox.Position())
	assertVec3(t, mgl32.Vec3{5, -3, 8}, skybox.WorldPosition())

}

func TestRenderOrderFollowsGraph(t *testing.T) {

	f := newFixture(t, 0)

	// Each mesh gets its own program so the draw log names it.
	newLamp := func(name string) *lightscene.Mesh {
		program := f.backend.NewProgram(name, lightscene.AttribPosition)
		shader, err := lightscene.NewColorShader(program)
		require.NoError(t, err)
		mat, err := lightscene.NewColorMaterial(mgl32.Vec3{1, 1, 1}, shader)
		require.NoError(t, err)
		lamp, err := lightscene.NewCube(f.backend, mat)
		require.NoError(t, err)
		return lamp
	}

	a, b, c, d := newLamp("a"), newLamp("b"), newLamp("c"), newLamp("d")
	group := lightscene.NewNode("group")

	require.NoError(t, f.scene.AddChild(a))
	require.NoError(t, a.AddChild(b))
	require.NoError(t, f.scene.AddChild(group))
	require.NoError(t, group.AddChild(c))
	require.NoError(t, b.AddChild(d))

	f.backend.Reset()
	require.NoError(t, f.scene.Render())

	assert.Equal(t, []string{"draw a 36", "draw b 36", "draw d 36", "draw c 36"}, f.backend.CallsWithPrefix("draw"))

}

func TestChildrenOfStandaloneLightsAreDrawn(t *testing.T) {

	f := newFixture(t, 0)

	light, err := f.scene.CreatePointLight(mgl32.Vec3{0, 2, 0})
	require.NoError(t, err)

	lamp := f.lampCube(t, mgl32.Vec3{1, 1, 1})
	lamp.SetScale(0.2)
	require.NoError(t, light.AddChild(lamp))

	require.NoError(t, f.scene.Update(0))
	assertVec3(t, mgl32.Vec3{0, 2, 0}, lamp.WorldPosition())

	f.backend.Reset()
	require.NoError(t, f.scene.Render())
	assert.Equal(t, []string{"draw lamp 36"}, f.backend.CallsWithPrefix("draw"))

}

func TestNullMaterialDrawsNothing(t *testing.T) {

	f := newFixture(t, 0)

	mesh, err := lightscene.NewMesh("empty", f.backend, lightscene.CubeVertices, lightscene.NullMaterial{})
	require.NoError(t, err)
	require.NoError(t, f.scene.AddChild(mesh))
	require.NoError(t, mesh.AddChild(f.lampCube(t, mgl32.Vec3{1, 1, 1})))

	f.backend.Reset()
	require.NoError(t, f.scene.Render())
	assert.Equal(t, []string{"draw lamp 36"}, f.backend.CallsWithPrefix("draw"))

}

func TestShaderRegistry(t *testing.T) {

	f := newFixture(t, 0)

	shader, ok := f.scene.Shader(lightscene.ShaderNameLit)
	require.True(t, ok)
	assert.Same(t, f.lit, shader)

	_, ok = f.scene.Shader("missing")
	assert.False(t, ok)

	dup, err := lightscene.NewLitShader(f.backend.NewProgram("cube2"))
	require.NoError(t, err)
	assert.ErrorIs(t, f.scene.AddShader(dup), lightscene.ErrDuplicateShader)
	assert.ErrorIs(t, f.scene.AddShader(nil), lightscene.ErrNilShader)

	var missing *lightscene.LitShader
	assert.ErrorIs(t, f.scene.AddShader(missing), lightscene.ErrNilShader)

	names := []string{}
	for _, s := range f.scene.Shaders() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{lightscene.ShaderNameLit, lightscene.ShaderNameColor, lightscene.ShaderNameSkybox}, names)

	_, err = lightscene.NewLitShader(nil)
	assert.ErrorIs(t, err, lightscene.ErrNilShader)

}

func TestCubeSetup(t *testing.T) {

	f := newFixture(t, 0)

	cube := f.litCube(t)
	assert.Equal(t, lightscene.NodeKindCube, cube.Kind())
	assert.Equal(t, 36, cube.VertexCount())
	assert.Equal(t, lightscene.LayoutPosNormTex, cube.Layout())
	assert.Contains(t, f.backend.Calls(), "vertex array 3")

	lamp := f.lampCube(t, mgl32.Vec3{1, 1, 1})
	assert.Equal(t, 36, lamp.VertexCount())
	assert.Contains(t, f.backend.Calls(), "vertex array 1", "the lamp program only reads positions")

	f.backend.FailVertexArrays = true
	_, err := lightscene.NewCube(f.backend, lightscene.NullMaterial{})
	assert.Error(t, err)

	_, err = lightscene.NewCube(f.backend, nil)
	assert.ErrorIs(t, err, lightscene.ErrNilMaterial)
	_, err = lightscene.NewCube(nil, lightscene.NullMaterial{})
	assert.ErrorIs(t, err, lightscene.ErrNilBackend)

	_, err = lightscene.NewMesh("broken", gfxtest.New(), []float32{1, 2, 3}, lightscene.NullMaterial{})
	assert.Error(t, err)

}
