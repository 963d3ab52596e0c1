package lightscene

import "errors"

// Scene assembly errors. They are returned at the offending call and are wrapped with context, so compare with errors.Is.
var (
	ErrNilNode         = errors.New("node is nil")
	ErrDuplicateChild  = errors.New("node is already a child of this parent")
	ErrAlreadyParented = errors.New("node already has a parent")
	ErrSceneParent     = errors.New("the scene root cannot be parented")
	ErrDetachedParent  = errors.New("parent is not part of a scene")
	ErrForeignScene    = errors.New("node belongs to a different scene")
	ErrCycle           = errors.New("parenting would create a cycle")

	ErrTooManyLights       = errors.New("scene light capacity reached")
	ErrDuplicateLight      = errors.New("light was already added")
	ErrLightSlotTaken      = errors.New("light slot id is already in use")
	ErrLightSlotRange      = errors.New("light slot id is out of range")
	ErrDirectionalLightSet = errors.New("scene already has a directional light")

	ErrNilShader       = errors.New("shader is nil")
	ErrDuplicateShader = errors.New("a shader with this name is already registered")
	ErrNilTexture      = errors.New("texture is nil")
	ErrNilMaterial     = errors.New("material is nil")
	ErrNilCamera       = errors.New("camera is nil")
	ErrNilBackend      = errors.New("graphics backend is nil")

	// ErrNotInitialized is returned when a scene (or something holding one) is used before it was constructed.
	ErrNotInitialized = errors.New("scene is not initialized")
)
