package lightscene

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// LightKind tells the light variants apart.
type LightKind int

const (
	LightDirectional LightKind = iota // LightDirectional is a sun-like light with a direction and no position
	LightPoint                        // LightPoint is an omnidirectional light with distance attenuation
	LightSpot                         // LightSpot is a point light restricted to a cone
)

func (kind LightKind) String() string {
	switch kind {
	case LightDirectional:
		return "Directional"
	case LightPoint:
		return "Point"
	case LightSpot:
		return "Spot"
	}
	return fmt.Sprintf("LightKind(%d)", int(kind))
}

// Light is implemented by every light variant. Lights are data-only scene objects: a lit shader asks each light in the
// scene to write its parameters into the program through BindUniforms.
type Light interface {
	INode
	// LightKind returns the light's variant.
	LightKind() LightKind
	// LightID returns the light's slot in the shader's light array, or -1 for lights that don't use one.
	LightID() int
	// IsOn returns whether the light contributes to the scene.
	IsOn() bool
	// BindUniforms writes the light's parameters to the program using the light's cached uniform names.
	BindUniforms(program Program)
}

// Default light parameters.
var (
	DefaultLightAmbient  = mgl32.Vec3{0.05, 0.05, 0.05}
	DefaultLightDiffuse  = mgl32.Vec3{0.8, 0.8, 0.8}
	DefaultLightSpecular = mgl32.Vec3{1, 1, 1}

	DefaultSunDirection = mgl32.Vec3{0.2, -1, -0.3}
	DefaultSunAmbient   = mgl32.Vec3{0.05, 0.05, 0.05}
	DefaultSunDiffuse   = mgl32.Vec3{0.4, 0.4, 0.4}
	DefaultSunSpecular  = mgl32.Vec3{0.5, 0.5, 0.5}
)

const (
	DefaultLightConstant  = 1.0
	DefaultLightLinear    = 0.09
	DefaultLightQuadratic = 0.032

	DefaultSpotCutOffDegrees      = 12.5
	DefaultSpotOuterCutOffDegrees = 17.5
)

// PointLightUniforms holds the uniform names of one slot of the pointLights array. Spot lights share the array.
type PointLightUniforms struct {
	Position    string
	Ambient     string
	Diffuse     string
	Specular    string
	Constant    string
	Linear      string
	Quadratic   string
	IsSpotLight string
}

// PointLightUniformNames formats the uniform names for slot id of the pointLights array.
func PointLightUniformNames(id int) PointLightUniforms {
	prefix := fmt.Sprintf("pointLights[%d].", id)
	return PointLightUniforms{
		Position:    prefix + "position",
		Ambient:     prefix + "ambient",
		Diffuse:     prefix + "diffuse",
		Specular:    prefix + "specular",
		Constant:    prefix + "constant",
		Linear:      prefix + "linear",
		Quadratic:   prefix + "quadratic",
		IsSpotLight: prefix + "isSpotLight",
	}
}

// SpotLightUniforms extends a pointLights slot with the spot cone parameters.
type SpotLightUniforms struct {
	PointLightUniforms
	Direction   string
	CutOff      string
	OuterCutOff string
}

// SpotLightUniformNames formats the uniform names for a spot light in slot id of the pointLights array.
func SpotLightUniformNames(id int) SpotLightUniforms {
	prefix := fmt.Sprintf("pointLights[%d].", id)
	return SpotLightUniforms{
		PointLightUniforms: PointLightUniformNames(id),
		Direction:          prefix + "direction",
		CutOff:             prefix + "cutOff",
		OuterCutOff:        prefix + "outerCutOff",
	}
}

// DirectionalLightUniforms holds the uniform names of the single directionalLight block.
type DirectionalLightUniforms struct {
	Direction string
	Ambient   string
	Diffuse   string
	Specular  string
}

// DirectionalLightUniformNames returns the uniform names of the directionalLight block.
func DirectionalLightUniformNames() DirectionalLightUniforms {
	return DirectionalLightUniforms{
		Direction: "directionalLight.direction",
		Ambient:   "directionalLight.ambient",
		Diffuse:   "directionalLight.diffuse",
		Specular:  "directionalLight.specular",
	}
}

// lightColors returns the colors a light should bind; a light that's off binds black.
func lightColors(on bool, ambient, diffuse, specular mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3, mgl32.Vec3) {
	if !on {
		return mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{}
	}
	return ambient, diffuse, specular
}

//---------------//

// DirectionalLight represents a sun-like light that shines in one direction everywhere in the scene. A scene can
// hold at most one.
type DirectionalLight struct {
	*Node
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	On        bool // If the light is on and contributing to the scene.
	uniforms  DirectionalLightUniforms
}

// NewDirectionalLight returns a new DirectionalLight with the default direction and colors.
func NewDirectionalLight() *DirectionalLight {
	sun := &DirectionalLight{
		Node:      newNode("DirectionalLight", NodeKindLight),
		Direction: DefaultSunDirection,
		Ambient:   DefaultSunAmbient,
		Diffuse:   DefaultSunDiffuse,
		Specular:  DefaultSunSpecular,
		On:        true,
		uniforms:  DirectionalLightUniformNames(),
	}
	sun.Node.outer = sun
	return sun
}

func (sun *DirectionalLight) LightKind() LightKind { return LightDirectional }

// LightID returns -1, as the directional light has a fixed uniform block rather than an array slot.
func (sun *DirectionalLight) LightID() int { return -1 }

func (sun *DirectionalLight) IsOn() bool { return sun.On }

// Uniforms returns the light's uniform names.
func (sun *DirectionalLight) Uniforms() DirectionalLightUniforms {
	return sun.uniforms
}

// BindUniforms writes the light's direction and colors.
func (sun *DirectionalLight) BindUniforms(program Program) {
	ambient, diffuse, specular := lightColors(sun.On, sun.Ambient, sun.Diffuse, sun.Specular)
	program.SetVec3(sun.uniforms.Direction, sun.Direction)
	program.SetVec3(sun.uniforms.Ambient, ambient)
	program.SetVec3(sun.uniforms.Diffuse, diffuse)
	program.SetVec3(sun.uniforms.Specular, specular)
}

//---------------//

// PointLight represents a light radiating from its world position in every direction, falling off with distance as
// 1 / (Constant + Linear*d + Quadratic*d²).
type PointLight struct {
	*Node
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
	On        bool // If the light is on and contributing to the scene.
	id        int
	uniforms  PointLightUniforms
}

// NewPointLight returns a new PointLight bound to slot id of the shader's light array, at the given position.
func NewPointLight(id int, position mgl32.Vec3) *PointLight {
	point := newPointLight(fmt.Sprintf("PointLight%d", id), id, position)
	point.Node.outer = point
	return point
}

func newPointLight(name string, id int, position mgl32.Vec3) *PointLight {
	point := &PointLight{
		Node:      newNode(name, NodeKindLight),
		Ambient:   DefaultLightAmbient,
		Diffuse:   DefaultLightDiffuse,
		Specular:  DefaultLightSpecular,
		Constant:  DefaultLightConstant,
		Linear:    DefaultLightLinear,
		Quadratic: DefaultLightQuadratic,
		On:        true,
		id:        id,
		uniforms:  PointLightUniformNames(id),
	}
	point.position = position
	return point
}

func (point *PointLight) LightKind() LightKind { return LightPoint }

// LightID returns the light's slot in the pointLights array.
func (point *PointLight) LightID() int { return point.id }

func (point *PointLight) IsOn() bool { return point.On }

// Uniforms returns the light's cached uniform names.
func (point *PointLight) Uniforms() PointLightUniforms {
	return point.uniforms
}

// BindUniforms writes the light's position, colors and attenuation to its slot, and clears the slot's spot flag.
func (point *PointLight) BindUniforms(program Program) {
	point.bindPoint(program, false)
}

func (point *PointLight) bindPoint(program Program, isSpot bool) {
	u := point.uniforms
	ambient, diffuse, specular := lightColors(point.On, point.Ambient, point.Diffuse, point.Specular)
	program.SetVec3(u.Position, point.outer.WorldPosition())
	program.SetVec3(u.Ambient, ambient)
	program.SetVec3(u.Diffuse, diffuse)
	program.SetVec3(u.Specular, specular)
	program.SetFloat(u.Constant, point.Constant)
	program.SetFloat(u.Linear, point.Linear)
	program.SetFloat(u.Quadratic, point.Quadratic)
	if isSpot {
		program.SetInt(u.IsSpotLight, 1)
	} else {
		program.SetInt(u.IsSpotLight, 0)
	}
}

//---------------//

// SpotLight is a point light whose light is restricted to a cone around Direction. CutOff and OuterCutOff are the
// cosines of the cone's inner and outer half-angles; light fades out between the two.
//
// When a SpotLight is parented to anything other than the scene root, it rigidly follows its parent: it takes on the
// parent's world transform as-is (its own local position and rotation are overwritten), and Direction becomes the
// parent's forward axis. Parented to the camera, that makes it a flashlight.
type SpotLight struct {
	*PointLight
	Direction   mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	// IsSpotLight toggles the cone. When false the light is bound as a plain point light.
	IsSpotLight bool
	spot        SpotLightUniforms
}

// NewSpotLight returns a new SpotLight bound to slot id of the shader's light array, at the given position, pointing
// down -Z.
func NewSpotLight(id int, position mgl32.Vec3) *SpotLight {
	spot := &SpotLight{
		PointLight:  newPointLight(fmt.Sprintf("SpotLight%d", id), id, position),
		Direction:   mgl32.Vec3{0, 0, -1},
		CutOff:      math32.Cos(ToRadians(DefaultSpotCutOffDegrees)),
		OuterCutOff: math32.Cos(ToRadians(DefaultSpotOuterCutOffDegrees)),
		IsSpotLight: true,
		spot:        SpotLightUniformNames(id),
	}
	spot.Node.outer = spot
	return spot
}

func (spot *SpotLight) LightKind() LightKind { return LightSpot }

// Uniforms returns the light's cached uniform names.
func (spot *SpotLight) Uniforms() SpotLightUniforms {
	return spot.spot
}

// BindUniforms writes the point light parameters of the light's slot followed by its cone.
func (spot *SpotLight) BindUniforms(program Program) {
	spot.bindPoint(program, spot.IsSpotLight)
	program.SetVec3(spot.spot.Direction, spot.Direction)
	program.SetFloat(spot.spot.CutOff, spot.CutOff)
	program.SetFloat(spot.spot.OuterCutOff, spot.OuterCutOff)
}

// following returns the node the spot light rigidly follows, or nil if it stands on its own.
func (spot *SpotLight) following() INode {
	parent := spot.Parent()
	if parent == nil || parent.Kind() == NodeKindScene {
		return nil
	}
	return parent
}

// composeModelMatrix copies the followed parent's world transform instead of multiplying it with a local one, and
// updates the light's position and direction to match.
func (spot *SpotLight) composeModelMatrix() mgl32.Mat4 {
	parent := spot.following()
	if parent == nil {
		return LocalMatrix(spot.position, spot.rotation)
	}
	world := parent.ModelMatrix()
	spot.position = parent.WorldPosition()
	spot.Direction = forwardOf(world)
	return world
}
