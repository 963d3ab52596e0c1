package ebitengfx

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/solarlune/lightscene"
)

// Uniforms is the read side of a Program's uniform storage. Getters return the zero value for uniforms that were
// never set.
type Uniforms interface {
	Int(name string) int32
	Float(name string) float32
	Vec3(name string) mgl32.Vec3
	Mat4(name string) mgl32.Mat4
}

// VertexInput is one vertex read from a vertex array. Attributes missing from the array are zero.
type VertexInput struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoords mgl32.Vec2
}

// VertexOutput is a vertex after the vertex stage: a clip-space position, a color handed to the fragment shader as
// its color argument, and texture coordinates.
type VertexOutput struct {
	Clip      mgl32.Vec4
	Color     mgl32.Vec4
	TexCoords mgl32.Vec2
}

// VertexStage is the CPU half of a Program. Ebitengine only runs fragment shaders, so vertices are transformed (and,
// for lit programs, lit) on the CPU before being handed over.
type VertexStage interface {
	// Name is the name the program's draws are reported under.
	Name() string
	// Attributes returns the vertex attributes the stage reads; an attribute's location is its index.
	Attributes() []string
	// Samplers returns how many texture units the fragment shader samples.
	Samplers() int
	// Begin is called once per draw call, before any Vertex call, with the program's current uniforms.
	Begin(uniforms Uniforms)
	Vertex(in VertexInput) VertexOutput
}

// transform holds the matrices every stage needs for one draw call.
type transform struct {
	model mgl32.Mat4
	mvp   mgl32.Mat4
}

func (t *transform) begin(u Uniforms) {
	t.model = u.Mat4(lightscene.UniformModel)
	t.mvp = u.Mat4(lightscene.UniformProjection).Mul4(u.Mat4(lightscene.UniformView)).Mul4(t.model)
}

func (t *transform) clip(position mgl32.Vec3) mgl32.Vec4 {
	return t.mvp.Mul4x1(position.Vec4(1))
}

//---------------//

// ColorStage draws geometry in the flat color uniform.
type ColorStage struct {
	transform
	color mgl32.Vec4
}

func NewColorStage() *ColorStage { return &ColorStage{} }

func (s *ColorStage) Name() string         { return lightscene.ShaderNameColor }
func (s *ColorStage) Attributes() []string { return []string{lightscene.AttribPosition} }
func (s *ColorStage) Samplers() int        { return 0 }

func (s *ColorStage) Begin(u Uniforms) {
	s.transform.begin(u)
	s.color = u.Vec3(lightscene.UniformColor).Vec4(1)
}

func (s *ColorStage) Vertex(in VertexInput) VertexOutput {
	return VertexOutput{Clip: s.clip(in.Position), Color: s.color, TexCoords: in.TexCoords}
}

//---------------//

// TextureStage draws geometry with a single unlit texture, like the skybox.
type TextureStage struct {
	transform
}

func NewTextureStage() *TextureStage { return &TextureStage{} }

func (s *TextureStage) Name() string { return lightscene.ShaderNameSkybox }
func (s *TextureStage) Attributes() []string {
	return []string{lightscene.AttribPosition, lightscene.AttribTexCoords}
}
func (s *TextureStage) Samplers() int { return 1 }

func (s *TextureStage) Begin(u Uniforms) { s.transform.begin(u) }

func (s *TextureStage) Vertex(in VertexInput) VertexOutput {
	return VertexOutput{Clip: s.clip(in.Position), Color: mgl32.Vec4{1, 1, 1, 1}, TexCoords: in.TexCoords}
}

//---------------//

// stageLight is one light's uniforms, gathered once per draw call.
type stageLight struct {
	position    mgl32.Vec3
	direction   mgl32.Vec3 // Points away from the light; directional and spot lights only
	ambient     mgl32.Vec3
	diffuse     mgl32.Vec3
	specular    mgl32.Vec3
	constant    float32
	linear      float32
	quadratic   float32
	spot        bool
	cutOff      float32
	outerCutOff float32
}

// LitStage lights every vertex with the Phong model over the directional light and every slot of the pointLights
// array. The output color's RGB is the light falling on the diffuse map and its alpha the specular intensity the
// fragment shader applies to the specular map.
type LitStage struct {
	transform
	normalMatrix mgl32.Mat3
	viewPos      mgl32.Vec3
	shininess    float32
	specularTint float32

	sun      lightscene.DirectionalLightUniforms
	slots    []lightscene.SpotLightUniforms
	lights   []stageLight
	hasSun   bool
	sunLight stageLight
}

// NewLitStage returns a LitStage reading maxLights slots of the pointLights array. Uniform names for every slot are
// formatted once here.
func NewLitStage(maxLights int) *LitStage {
	if maxLights <= 0 {
		maxLights = lightscene.DefaultMaxLights
	}
	s := &LitStage{
		sun:   lightscene.DirectionalLightUniformNames(),
		slots: make([]lightscene.SpotLightUniforms, maxLights),
	}
	for i := range s.slots {
		s.slots[i] = lightscene.SpotLightUniformNames(i)
	}
	return s
}

func (s *LitStage) Name() string { return lightscene.ShaderNameLit }
func (s *LitStage) Attributes() []string {
	return []string{lightscene.AttribPosition, lightscene.AttribNormal, lightscene.AttribTexCoords}
}
func (s *LitStage) Samplers() int { return 2 }

// MaxLights returns the number of pointLights slots the stage reads.
func (s *LitStage) MaxLights() int { return len(s.slots) }

func (s *LitStage) Begin(u Uniforms) {

	s.transform.begin(u)
	s.normalMatrix = s.model.Mat3().Inv().Transpose()
	s.viewPos = u.Vec3(lightscene.UniformViewPos)

	s.shininess = u.Float(lightscene.UniformMaterialShininess)
	if s.shininess <= 0 {
		s.shininess = lightscene.DefaultMaterialShininess
	}
	tint := u.Vec3(lightscene.UniformMaterialSpecularColor)
	s.specularTint = (tint[0] + tint[1] + tint[2]) / 3

	s.sunLight = stageLight{
		direction: u.Vec3(s.sun.Direction),
		ambient:   u.Vec3(s.sun.Ambient),
		diffuse:   u.Vec3(s.sun.Diffuse),
		specular:  u.Vec3(s.sun.Specular),
	}
	s.hasSun = s.sunLight.direction.Len() > 0 && !s.sunLight.dark()

	s.lights = s.lights[:0]
	for _, names := range s.slots {
		l := stageLight{
			position:    u.Vec3(names.Position),
			ambient:     u.Vec3(names.Ambient),
			diffuse:     u.Vec3(names.Diffuse),
			specular:    u.Vec3(names.Specular),
			constant:    u.Float(names.Constant),
			linear:      u.Float(names.Linear),
			quadratic:   u.Float(names.Quadratic),
			spot:        u.Int(names.IsSpotLight) != 0,
			direction:   u.Vec3(names.Direction),
			cutOff:      u.Float(names.CutOff),
			outerCutOff: u.Float(names.OuterCutOff),
		}
		// Unused slots are all zero.
		if l.dark() {
			continue
		}
		s.lights = append(s.lights, l)
	}

}

func (l stageLight) dark() bool {
	return l.ambient == mgl32.Vec3{} && l.diffuse == mgl32.Vec3{} && l.specular == mgl32.Vec3{}
}

func (s *LitStage) Vertex(in VertexInput) VertexOutput {

	world := s.model.Mul4x1(in.Position.Vec4(1)).Vec3()

	normal := s.normalMatrix.Mul3x1(in.Normal)
	if normal.Len() > 0 {
		normal = normal.Normalize()
	}

	toView := s.viewPos.Sub(world)
	if toView.Len() > 0 {
		toView = toView.Normalize()
	}

	var light, specular mgl32.Vec3

	if s.hasSun {
		l, sp := s.shade(s.sunLight, s.sunLight.direction.Mul(-1).Normalize(), 1, normal, toView)
		light = light.Add(s.sunLight.ambient).Add(l)
		specular = specular.Add(sp)
	}

	for _, pl := range s.lights {

		toLight := pl.position.Sub(world)
		distance := toLight.Len()
		if distance > 0 {
			toLight = toLight.Mul(1 / distance)
		}

		attenuation := float32(1)
		if denom := pl.constant + pl.linear*distance + pl.quadratic*distance*distance; denom > 0 {
			attenuation = 1 / denom
		}

		intensity := float32(1)
		if pl.spot {
			intensity = spotIntensity(toLight, pl.direction, pl.cutOff, pl.outerCutOff)
		}

		ambient := pl.ambient.Mul(attenuation)
		l, sp := s.shade(pl, toLight, attenuation*intensity, normal, toView)
		light = light.Add(ambient).Add(l)
		specular = specular.Add(sp)

	}

	spec := (specular[0] + specular[1] + specular[2]) / 3 * s.specularTint

	return VertexOutput{
		Clip: s.clip(in.Position),
		Color: mgl32.Vec4{
			clamp01(light[0]),
			clamp01(light[1]),
			clamp01(light[2]),
			clamp01(spec),
		},
		TexCoords: in.TexCoords,
	}

}

// shade returns the diffuse light and the specular light a light casts on a vertex, both scaled by factor.
func (s *LitStage) shade(l stageLight, toLight mgl32.Vec3, factor float32, normal, toView mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {

	diff := normal.Dot(toLight)
	if diff <= 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}

	reflected := reflect(toLight.Mul(-1), normal)
	spec := math32.Pow(max(toView.Dot(reflected), 0), s.shininess)

	return l.diffuse.Mul(diff * factor), l.specular.Mul(spec * factor)

}

// spotIntensity returns how much of a spot light's cone reaches a point: 1 inside the inner cone, 0 outside the outer
// one, and a linear fade between the two. Cut-offs are cosines.
func spotIntensity(toLight, direction mgl32.Vec3, cutOff, outerCutOff float32) float32 {
	if direction.Len() == 0 {
		return 0
	}
	theta := toLight.Dot(direction.Normalize().Mul(-1))
	epsilon := cutOff - outerCutOff
	if epsilon <= 0 {
		if theta >= cutOff {
			return 1
		}
		return 0
	}
	return clamp01((theta - outerCutOff) / epsilon)
}

func reflect(incident, normal mgl32.Vec3) mgl32.Vec3 {
	return incident.Sub(normal.Mul(2 * normal.Dot(incident)))
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
