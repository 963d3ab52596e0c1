package lightscene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultMaxLights is the default size of the pointLights array lit shaders are written against.
const DefaultMaxLights = 16

// Scene is the root of a scene graph. It owns every node that joins it (nodes are addressed by NodeID handles into
// the scene's node table), the camera, an optional skybox, the lights and the shader registry. Nothing is ever
// removed from a scene.
type Scene struct {
	root    *Node
	nodes   []INode
	backend Backend

	camera      *Camera
	skybox      *Skybox
	lights      []Light
	directional *DirectionalLight
	maxLights   int

	shaders     map[string]Shader
	shaderOrder []string
}

// NewScene returns a new Scene drawing through backend and viewed through camera. maxLights caps the number of
// lights the scene accepts; 0 or less means DefaultMaxLights.
func NewScene(backend Backend, camera *Camera, maxLights int) (*Scene, error) {

	if isNil(backend) {
		return nil, fmt.Errorf("new scene: %w", ErrNilBackend)
	}

	if camera == nil {
		return nil, fmt.Errorf("new scene: %w", ErrNilCamera)
	}

	if camera.scene != nil {
		return nil, fmt.Errorf("new scene: camera: %w", ErrForeignScene)
	}

	if maxLights <= 0 {
		maxLights = DefaultMaxLights
	}

	scene := &Scene{
		backend:   backend,
		camera:    camera,
		maxLights: maxLights,
		shaders:   map[string]Shader{},
	}

	scene.root = newNode("Root", NodeKindScene)
	scene.root.outer = scene.root
	scene.register(scene.root)

	scene.register(camera)
	camera.parent = scene.root.id
	camera.markDirty()

	return scene, nil

}

func (scene *Scene) initialized() bool {
	return scene != nil && scene.root != nil
}

// register adds node to the scene's node table, unless it's already there.
func (scene *Scene) register(node INode) {
	b := node.base()
	if b.scene == scene && b.id != NoNode {
		return
	}
	scene.nodes = append(scene.nodes, node)
	b.id = NodeID(len(scene.nodes))
	b.scene = scene
}

func (scene *Scene) nodeByID(id NodeID) INode {
	return scene.nodes[id-1]
}

// Node returns the node with the given ID, or nil if there's no such node in the scene.
func (scene *Scene) Node(id NodeID) INode {
	if !scene.initialized() || id == NoNode || int(id) > len(scene.nodes) {
		return nil
	}
	return scene.nodeByID(id)
}

// NodeCount returns the number of nodes that have joined the scene, including the root and the camera.
func (scene *Scene) NodeCount() int {
	return len(scene.nodes)
}

// Root returns the scene's root node. Top-level objects are its children.
func (scene *Scene) Root() INode {
	if !scene.initialized() {
		return nil
	}
	return scene.root
}

// Backend returns the graphics backend the scene draws through.
func (scene *Scene) Backend() Backend {
	return scene.backend
}

// Camera returns the scene's camera, or nil if the scene wasn't created with NewScene.
func (scene *Scene) Camera() *Camera {
	if !scene.initialized() {
		return nil
	}
	return scene.camera
}

// AddChild adds child as a top-level object of the scene.
func (scene *Scene) AddChild(child INode) error {
	if !scene.initialized() {
		return ErrNotInitialized
	}
	return scene.root.AddChild(child)
}

// Skybox returns the scene's skybox, or nil if it has none.
func (scene *Scene) Skybox() *Skybox {
	if !scene.initialized() {
		return nil
	}
	return scene.skybox
}

// AddSkybox sets the scene's skybox, replacing the previous one if there was one.
func (scene *Scene) AddSkybox(skybox *Skybox) error {

	if !scene.initialized() {
		return ErrNotInitialized
	}

	if skybox == nil {
		return fmt.Errorf("add skybox: %w", ErrNilNode)
	}

	if skybox == scene.skybox {
		return nil
	}

	if skybox.scene != nil && skybox.scene != scene {
		return fmt.Errorf("add skybox: %w", ErrForeignScene)
	}

	if skybox.parent != NoNode {
		return fmt.Errorf("add skybox: %w", ErrAlreadyParented)
	}

	if scene.skybox != nil {
		scene.skybox.parent = NoNode
	}

	scene.register(skybox)
	skybox.parent = scene.root.id
	skybox.markDirty()
	scene.skybox = skybox

	return nil

}

// MaxLights returns the number of lights the scene accepts.
func (scene *Scene) MaxLights() int {
	return scene.maxLights
}

// Lights returns the scene's lights in the order they were added.
func (scene *Scene) Lights() []Light {
	return append([]Light(nil), scene.lights...)
}

// DirectionalLight returns the scene's directional light, or nil if it has none.
func (scene *Scene) DirectionalLight() *DirectionalLight {
	return scene.directional
}

// AddLight adds a light to the scene. It fails once the scene holds MaxLights lights, when the light was already
// added, when a point or spot light's slot id is out of range or already in use, and when a second directional light
// is added. A light that isn't parented to anything is updated by the scene on its own; one that's been added as a
// child of another node is updated along with it.
func (scene *Scene) AddLight(light Light) error {

	if !scene.initialized() {
		return ErrNotInitialized
	}

	if isNil(light) {
		return fmt.Errorf("add light: %w", ErrNilNode)
	}

	for _, l := range scene.lights {
		if l == light {
			return fmt.Errorf("add light %q: %w", light.Name(), ErrDuplicateLight)
		}
	}

	if len(scene.lights) >= scene.maxLights {
		return fmt.Errorf("add light %q: %d lights: %w", light.Name(), scene.maxLights, ErrTooManyLights)
	}

	if b := light.base(); b.scene != nil && b.scene != scene {
		return fmt.Errorf("add light %q: %w", light.Name(), ErrForeignScene)
	}

	var sun *DirectionalLight

	switch light.LightKind() {

	case LightDirectional:
		if scene.directional != nil {
			return fmt.Errorf("add light %q: %w", light.Name(), ErrDirectionalLightSet)
		}
		sun, _ = light.(*DirectionalLight)

	default:
		id := light.LightID()
		if id < 0 || id >= scene.maxLights {
			return fmt.Errorf("add light %q: slot %d of %d: %w", light.Name(), id, scene.maxLights, ErrLightSlotRange)
		}
		if scene.slotTaken(id) {
			return fmt.Errorf("add light %q: slot %d: %w", light.Name(), id, ErrLightSlotTaken)
		}

	}

	scene.register(light)
	scene.lights = append(scene.lights, light)
	if sun != nil {
		scene.directional = sun
	}

	return nil

}

func (scene *Scene) slotTaken(id int) bool {
	for _, l := range scene.lights {
		if l.LightKind() != LightDirectional && l.LightID() == id {
			return true
		}
	}
	return false
}

// nextLightSlot returns the lowest free pointLights slot, or -1 if there is none.
func (scene *Scene) nextLightSlot() int {
	for id := 0; id < scene.maxLights; id++ {
		if !scene.slotTaken(id) {
			return id
		}
	}
	return -1
}

// CreatePointLight creates a PointLight in the next free slot at the given position and adds it to the scene.
func (scene *Scene) CreatePointLight(position mgl32.Vec3) (*PointLight, error) {
	if !scene.initialized() {
		return nil, ErrNotInitialized
	}
	id := scene.nextLightSlot()
	if id < 0 {
		return nil, fmt.Errorf("create point light: %w", ErrTooManyLights)
	}
	light := NewPointLight(id, position)
	if err := scene.AddLight(light); err != nil {
		return nil, err
	}
	return light, nil
}

// CreateSpotLight creates a SpotLight in the next free slot at the given position and adds it to the scene.
func (scene *Scene) CreateSpotLight(position mgl32.Vec3) (*SpotLight, error) {
	if !scene.initialized() {
		return nil, ErrNotInitialized
	}
	id := scene.nextLightSlot()
	if id < 0 {
		return nil, fmt.Errorf("create spot light: %w", ErrTooManyLights)
	}
	light := NewSpotLight(id, position)
	if err := scene.AddLight(light); err != nil {
		return nil, err
	}
	return light, nil
}

// CreateDirectionalLight creates the scene's DirectionalLight with default settings and adds it to the scene.
func (scene *Scene) CreateDirectionalLight() (*DirectionalLight, error) {
	light := NewDirectionalLight()
	if err := scene.AddLight(light); err != nil {
		return nil, err
	}
	return light, nil
}

// AddShader registers a shader under its name. Names are unique within a scene.
func (scene *Scene) AddShader(shader Shader) error {
	if !scene.initialized() {
		return ErrNotInitialized
	}
	if isNil(shader) {
		return fmt.Errorf("add shader: %w", ErrNilShader)
	}
	name := shader.Name()
	if _, exists := scene.shaders[name]; exists {
		return fmt.Errorf("add shader %q: %w", name, ErrDuplicateShader)
	}
	scene.shaders[name] = shader
	scene.shaderOrder = append(scene.shaderOrder, name)
	return nil
}

// Shader returns the shader registered under name.
func (scene *Scene) Shader(name string) (Shader, bool) {
	if !scene.initialized() {
		return nil, false
	}
	shader, ok := scene.shaders[name]
	return shader, ok
}

// Shaders returns the registered shaders in registration order.
func (scene *Scene) Shaders() []Shader {
	shaders := make([]Shader, 0, len(scene.shaderOrder))
	for _, name := range scene.shaderOrder {
		shaders = append(shaders, scene.shaders[name])
	}
	return shaders
}

// Update advances the scene by dt seconds: the scene graph top-down, then the camera and anything parented to it,
// the skybox, and finally the lights that aren't part of the graph.
func (scene *Scene) Update(dt float32) error {

	if !scene.initialized() {
		return ErrNotInitialized
	}

	scene.root.Update(dt)
	scene.camera.Update(dt)

	if scene.skybox != nil {
		scene.skybox.Update(dt)
	}

	for _, light := range scene.lights {
		if light.base().parent == NoNode {
			light.Update(dt)
		}
	}

	return nil

}

// Render draws the scene. The skybox goes first with depth testing disabled, so it ends up behind everything; then
// depth testing is switched back on and the graph is drawn depth-first, parents before children, followed by anything
// parented to a light that isn't part of the graph. Nodes that aren't Renderable draw nothing, but their children are
// still visited.
func (scene *Scene) Render() error {

	if !scene.initialized() {
		return ErrNotInitialized
	}

	if scene.skybox != nil {
		scene.backend.SetDepthTest(false)
		scene.skybox.Render(scene)
		scene.backend.SetDepthTest(true)
		scene.renderChildren(scene.skybox.Node)
	} else {
		scene.backend.SetDepthTest(true)
	}

	scene.renderChildren(scene.root)

	for _, light := range scene.lights {
		if b := light.base(); b.parent == NoNode {
			scene.renderChildren(b)
		}
	}

	return nil

}

func (scene *Scene) renderChildren(node *Node) {
	for _, id := range node.children {
		scene.renderTree(scene.nodeByID(id))
	}
}

func (scene *Scene) renderTree(node INode) {
	if r, ok := node.(Renderable); ok {
		r.Render(scene)
	}
	scene.renderChildren(node.base())
}
