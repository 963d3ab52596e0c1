package lightscene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// NodeID is a handle to a Node inside the node table of the Scene it belongs to. IDs are assigned when a node
// joins a scene and are never reused, as nodes are never removed.
type NodeID uint32

// NoNode is the zero NodeID, meaning "no node" (for example, the parent of the scene root).
const NoNode NodeID = 0

// NodeKind tags what sort of object a Node is.
type NodeKind int

const (
	NodeKindGeneric NodeKind = iota // NodeKindGeneric is a plain grouping node
	NodeKindScene                   // NodeKindScene is the root node of a Scene
	NodeKindCube                    // NodeKindCube is a unit cube mesh
	NodeKindMesh                    // NodeKindMesh is a mesh built from arbitrary vertex data
	NodeKindSkybox                  // NodeKindSkybox is the scene's skybox
	NodeKindCamera                  // NodeKindCamera is the scene's camera
	NodeKindLight                   // NodeKindLight is any light; see LightKind for the variant
)

func (kind NodeKind) String() string {
	switch kind {
	case NodeKindGeneric:
		return "Node"
	case NodeKindScene:
		return "Scene"
	case NodeKindCube:
		return "Cube"
	case NodeKindMesh:
		return "Mesh"
	case NodeKindSkybox:
		return "Skybox"
	case NodeKindCamera:
		return "Camera"
	case NodeKindLight:
		return "Light"
	}
	return fmt.Sprintf("NodeKind(%d)", int(kind))
}

// INode represents an object that exists in the scene graph. It has a position and rotation relative to its parent,
// and a cached model matrix that places it in world space. Cubes, meshes, the skybox, the camera and lights all
// implement INode by embedding *Node.
type INode interface {
	// ID returns the node's handle within its scene, or NoNode if it hasn't joined one yet.
	ID() NodeID
	// Name returns the node's name.
	Name() string
	// SetName sets the node's name.
	SetName(name string)
	// Kind returns the node's kind.
	Kind() NodeKind
	// Scene returns the scene the node belongs to, or nil if it hasn't been added to one.
	Scene() *Scene

	// Parent returns the node's parent, or nil if it has none.
	Parent() INode
	// Children returns the node's children in insertion order, which is also update and render order.
	Children() []INode
	// AddChild parents child to this node. See Node.AddChild for the rules.
	AddChild(child INode) error

	// Position returns the node's position relative to its parent.
	Position() mgl32.Vec3
	// SetPosition sets the node's local position and marks it and its descendants dirty.
	SetPosition(position mgl32.Vec3)
	// Move offsets the node's local position.
	Move(offset mgl32.Vec3)
	// Rotation returns the node's local Euler rotation in radians.
	Rotation() mgl32.Vec3
	// SetRotation sets the node's local Euler rotation (in radians) and marks it and its descendants dirty.
	SetRotation(rotation mgl32.Vec3)
	// Rotate adds to the node's local Euler rotation.
	Rotate(delta mgl32.Vec3)

	// ModelMatrix returns the node's cached world transform. It is only current after Update has run for a clean node.
	ModelMatrix() mgl32.Mat4
	// WorldPosition returns the translation part of the node's model matrix.
	WorldPosition() mgl32.Vec3
	// IsDirty returns true if the node's model matrix needs to be recomputed.
	IsDirty() bool

	// Material returns the node's material; nodes that draw nothing return the null material.
	Material() Material

	// Update runs the node's update hook, recomputes its model matrix if dirty, and then updates its children.
	Update(dt float32)

	base() *Node
}

// transformer is implemented by nodes that compute their model matrix themselves instead of multiplying the
// parent's world transform with their local transform.
type transformer interface {
	composeModelMatrix() mgl32.Mat4
}

// Node is the minimal struct implementing INode. Every object in the scene graph embeds it.
type Node struct {
	id       NodeID
	name     string
	kind     NodeKind
	outer    INode // The INode that embeds this Node
	scene    *Scene
	parent   NodeID
	children []NodeID

	position    mgl32.Vec3
	rotation    mgl32.Vec3
	modelMatrix mgl32.Mat4
	dirty       bool

	material Material

	// OnUpdate, if set, is called at the start of each Update of the node, before its model matrix is recomputed.
	// It's the place for per-node animation; changes it makes to the transform take effect in the same frame.
	OnUpdate func(node INode, dt float32)
}

// NewNode returns a new generic Node. Generic nodes draw nothing, but can group other nodes under a shared transform.
func NewNode(name string) *Node {
	node := newNode(name, NodeKindGeneric)
	node.outer = node
	return node
}

func newNode(name string, kind NodeKind) *Node {
	return &Node{
		name:        name,
		kind:        kind,
		modelMatrix: mgl32.Ident4(),
		dirty:       true,
		material:    nullMaterial,
	}
}

func (node *Node) base() *Node {
	return node
}

// ID returns the node's handle within its scene, or NoNode if it hasn't joined one yet.
func (node *Node) ID() NodeID {
	return node.id
}

// Name returns the node's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the node's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Kind returns the node's kind.
func (node *Node) Kind() NodeKind {
	return node.kind
}

// Scene returns the scene the node belongs to, or nil if it hasn't been added to one.
func (node *Node) Scene() *Scene {
	return node.scene
}

// Parent returns the node's parent, or nil if it has none.
func (node *Node) Parent() INode {
	if node.scene == nil || node.parent == NoNode {
		return nil
	}
	return node.scene.nodeByID(node.parent)
}

// Children returns the node's children in insertion order.
func (node *Node) Children() []INode {
	children := make([]INode, 0, len(node.children))
	for _, id := range node.children {
		children = append(children, node.scene.nodeByID(id))
	}
	return children
}

func (node *Node) hasChild(id NodeID) bool {
	for _, c := range node.children {
		if c == id {
			return true
		}
	}
	return false
}

// AddChild parents child to the node. The node must already belong to a scene; the child joins the same scene if it
// wasn't part of one. Reparenting isn't supported, so a child that already has a parent is rejected, as are nil
// nodes, the scene root, nodes from another scene, and anything that would form a cycle. On error, the node's
// children are left unchanged.
func (node *Node) AddChild(child INode) error {

	if node == nil || isNil(child) {
		return ErrNilNode
	}

	c := child.base()

	if c.kind == NodeKindScene {
		return ErrSceneParent
	}

	if node.scene == nil {
		return fmt.Errorf("adding %q to %q: %w", c.name, node.name, ErrDetachedParent)
	}

	if c.scene == node.scene && c.id != NoNode && node.hasChild(c.id) {
		return fmt.Errorf("adding %q to %q: %w", c.name, node.name, ErrDuplicateChild)
	}

	if c.parent != NoNode {
		return fmt.Errorf("adding %q to %q: %w", c.name, node.name, ErrAlreadyParented)
	}

	if c.scene != nil && c.scene != node.scene {
		return fmt.Errorf("adding %q to %q: %w", c.name, node.name, ErrForeignScene)
	}

	for n := INode(node.outer); !isNil(n); n = n.Parent() {
		if n.base() == c {
			return fmt.Errorf("adding %q to %q: %w", c.name, node.name, ErrCycle)
		}
	}

	node.scene.register(child)
	c.parent = node.id
	node.children = append(node.children, c.id)
	c.markDirty()

	return nil

}

// Position returns the node's position relative to its parent.
func (node *Node) Position() mgl32.Vec3 {
	return node.position
}

// SetPosition sets the node's local position and marks it and its descendants dirty.
func (node *Node) SetPosition(position mgl32.Vec3) {
	node.position = position
	node.markDirty()
}

// Move offsets the node's local position.
func (node *Node) Move(offset mgl32.Vec3) {
	node.SetPosition(node.position.Add(offset))
}

// Rotation returns the node's local Euler rotation in radians.
func (node *Node) Rotation() mgl32.Vec3 {
	return node.rotation
}

// SetRotation sets the node's local Euler rotation (in radians) and marks it and its descendants dirty.
func (node *Node) SetRotation(rotation mgl32.Vec3) {
	node.rotation = rotation
	node.markDirty()
}

// Rotate adds delta (in radians) to the node's local Euler rotation.
func (node *Node) Rotate(delta mgl32.Vec3) {
	node.SetRotation(node.rotation.Add(delta))
}

// ModelMatrix returns the node's cached world transform.
func (node *Node) ModelMatrix() mgl32.Mat4 {
	return node.modelMatrix
}

// WorldPosition returns the translation part of the node's model matrix.
func (node *Node) WorldPosition() mgl32.Vec3 {
	return node.modelMatrix.Col(3).Vec3()
}

// IsDirty returns true if the node's model matrix needs to be recomputed.
func (node *Node) IsDirty() bool {
	return node.dirty
}

// Material returns the node's material.
func (node *Node) Material() Material {
	return node.material
}

// markDirty flags the node and all of its recursive children as needing a new model matrix.
func (node *Node) markDirty() {
	node.dirty = true
	for _, id := range node.children {
		node.scene.nodeByID(id).base().markDirty()
	}
}

// Update runs the node's OnUpdate hook, recomputes its model matrix if it's dirty, and then updates every child,
// dirty or not, so that their own hooks run too.
func (node *Node) Update(dt float32) {

	if node.OnUpdate != nil {
		node.OnUpdate(node.outer, dt)
	}

	if node.dirty {
		node.modelMatrix = node.composeWorld()
		node.dirty = false
	}

	for _, id := range node.children {
		node.scene.nodeByID(id).Update(dt)
	}

}

func (node *Node) composeWorld() mgl32.Mat4 {

	if node.kind == NodeKindScene {
		return mgl32.Ident4()
	}

	if t, ok := node.outer.(transformer); ok {
		return t.composeModelMatrix()
	}

	local := LocalMatrix(node.position, node.rotation)

	if parent := node.Parent(); parent != nil {
		return parent.ModelMatrix().Mul4(local)
	}

	return local

}

// LocalMatrix returns the local transform for a position and Euler rotation (in radians):
// T(position) · Rz(rotation.Z) · Rx(rotation.X) · Ry(rotation.Y).
func LocalMatrix(position, rotation mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(mgl32.HomogRotate3DZ(rotation.Z())).
		Mul4(mgl32.HomogRotate3DX(rotation.X())).
		Mul4(mgl32.HomogRotate3DY(rotation.Y()))
}

// forwardOf returns the -Z axis of a world transform, which is the direction a node faces.
func forwardOf(transform mgl32.Mat4) mgl32.Vec3 {
	forward := transform.Col(2).Vec3().Mul(-1)
	if forward.Len() == 0 {
		return mgl32.Vec3{0, 0, -1}
	}
	return forward.Normalize()
}
