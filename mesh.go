package lightscene

import (
	"fmt"
)

// Renderable is implemented by nodes that draw geometry. Render draws only the node itself; the scene's traversal
// takes care of its children.
type Renderable interface {
	INode
	Render(scene *Scene)
}

// Mesh is a node drawing a triangle list of interleaved vertices with its material. Cubes are Meshes built from
// CubeVertices.
type Mesh struct {
	*Node
	scale    float32
	vertices []float32
	layout   VertexLayout
	backend  Backend
	buffer   VertexBuffer
	array    VertexArray
}

// NewCube returns a new unit cube drawn with material.
func NewCube(backend Backend, material Material) (*Mesh, error) {
	mesh, err := newMesh("Cube", NodeKindCube, backend, CubeVertices, LayoutPosNormTex, material)
	if err != nil {
		return nil, err
	}
	mesh.Node.outer = mesh
	return mesh, nil
}

// NewMesh returns a new Mesh drawing vertices, which must be in the LayoutPosNormTex format (see LoadGLTFVertices).
func NewMesh(name string, backend Backend, vertices []float32, material Material) (*Mesh, error) {
	if len(vertices)%LayoutPosNormTex.Stride != 0 {
		return nil, fmt.Errorf("mesh %q: %d floats is not a whole number of vertices", name, len(vertices))
	}
	mesh, err := newMesh(name, NodeKindMesh, backend, vertices, LayoutPosNormTex, material)
	if err != nil {
		return nil, err
	}
	mesh.Node.outer = mesh
	return mesh, nil
}

func newMesh(name string, kind NodeKind, backend Backend, vertices []float32, layout VertexLayout, material Material) (*Mesh, error) {

	if isNil(backend) {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNilBackend)
	}

	if isNil(material) {
		return nil, fmt.Errorf("%s %q: %w", kind, name, ErrNilMaterial)
	}

	buffer, err := backend.NewVertexBuffer(vertices)
	if err != nil {
		return nil, fmt.Errorf("%s %q: uploading vertices: %w", kind, name, err)
	}

	mesh := &Mesh{
		Node:     newNode(name, kind),
		scale:    1,
		vertices: vertices,
		layout:   layout,
		backend:  backend,
		buffer:   buffer,
	}

	if err := mesh.SetMaterial(material); err != nil {
		return nil, err
	}

	return mesh, nil

}

// SetMaterial sets the material the mesh draws with. The vertex array is rebuilt against the new shader's program,
// since attribute locations differ between programs.
func (mesh *Mesh) SetMaterial(material Material) error {
	if isNil(material) {
		return fmt.Errorf("%s %q: %w", mesh.kind, mesh.name, ErrNilMaterial)
	}
	array, err := mesh.backend.NewVertexArray(mesh.buffer, mesh.layout, material.Shader().Program())
	if err != nil {
		return fmt.Errorf("%s %q: building vertex array: %w", mesh.kind, mesh.name, err)
	}
	mesh.material = material
	mesh.array = array
	return nil
}

// Scale returns the uniform scale the mesh is drawn at.
func (mesh *Mesh) Scale() float32 {
	return mesh.scale
}

// SetScale sets the uniform scale the mesh is drawn at. It only affects how the mesh itself is drawn; children are
// positioned as if the scale were 1.
func (mesh *Mesh) SetScale(scale float32) {
	mesh.scale = scale
}

// Vertices returns the mesh's interleaved vertex data.
func (mesh *Mesh) Vertices() []float32 {
	return mesh.vertices
}

// Layout returns the mesh's vertex layout.
func (mesh *Mesh) Layout() VertexLayout {
	return mesh.layout
}

// VertexCount returns the number of vertices the mesh draws.
func (mesh *Mesh) VertexCount() int {
	return len(mesh.vertices) / mesh.layout.Stride
}

// Render uses the mesh's material, lets its shader write the per-object uniforms, and draws the mesh. Meshes with
// the null material draw nothing.
func (mesh *Mesh) Render(scene *Scene) {
	material := mesh.material
	if _, isNull := material.Shader().(NullShader); isNull {
		return
	}
	material.Use()
	material.Shader().Use(scene, mesh.outer)
	mesh.array.Draw(0, mesh.VertexCount())
}

//---------------//

// Skybox is a unit cube that follows the camera around and is drawn first, behind everything else, with depth
// testing off. A scene has at most one.
type Skybox struct {
	*Mesh
}

// NewSkybox returns a new Skybox drawn with material, usually a TextureMaterial holding a cross-layout skybox image.
func NewSkybox(backend Backend, material Material) (*Skybox, error) {
	mesh, err := newMesh("Skybox", NodeKindSkybox, backend, SkyboxVertices, LayoutPosTex, material)
	if err != nil {
		return nil, err
	}
	skybox := &Skybox{Mesh: mesh}
	skybox.Node.outer = skybox
	return skybox, nil
}

// Update centers the skybox on the camera before running the usual node update.
func (skybox *Skybox) Update(dt float32) {
	if scene := skybox.scene; scene != nil && scene.camera != nil {
		if pos := scene.camera.WorldPosition(); pos != skybox.position {
			skybox.SetPosition(pos)
		}
	}
	skybox.Node.Update(dt)
}
