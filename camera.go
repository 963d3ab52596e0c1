package lightscene

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultCameraYaw   = -90 // DefaultCameraYaw makes a fresh camera look down -Z
	DefaultCameraFOV   = 45  // DefaultCameraFOV is the vertical field of view in degrees
	DefaultCameraNear  = 0.01
	DefaultCameraFar   = 100
	MinCameraFOV       = 1
	MaxCameraFOV       = 90
	MaxCameraPitch     = 89 // MaxCameraPitch keeps the camera from flipping over at the poles
	DefaultAspectRatio = 4.0 / 3.0
)

// Camera is a first-person perspective camera steered by yaw and pitch angles. The scene owns exactly one. It's a
// Node so that other nodes (the flashlight spot light, for example) can be parented to it, but it isn't visited by
// the render traversal. Its basis vectors and matrices are derived from its angles every time they're asked for.
type Camera struct {
	*Node
	yaw         float32 // Degrees
	pitch       float32 // Degrees
	fieldOfView float32 // Degrees
	aspectRatio float32
	near, far   float32
}

// NewCamera returns a new Camera at the given position, looking down -Z, with the given aspect ratio (width / height).
// A non-positive aspect ratio falls back to DefaultAspectRatio.
func NewCamera(position mgl32.Vec3, aspectRatio float32) *Camera {
	camera := &Camera{
		Node:        newNode("Camera", NodeKindCamera),
		yaw:         DefaultCameraYaw,
		fieldOfView: DefaultCameraFOV,
		near:        DefaultCameraNear,
		far:         DefaultCameraFar,
	}
	camera.Node.outer = camera
	camera.position = position
	camera.SetAspectRatio(aspectRatio)
	return camera
}

// NewCameraWithAngles returns a new Camera at position facing the given yaw and pitch, in degrees. The pitch is
// clamped to ±MaxCameraPitch.
func NewCameraWithAngles(position mgl32.Vec3, yaw, pitch, aspectRatio float32) *Camera {
	camera := NewCamera(position, aspectRatio)
	camera.SetYaw(yaw)
	camera.SetPitch(pitch)
	return camera
}

// Yaw returns the camera's yaw in degrees.
func (camera *Camera) Yaw() float32 {
	return camera.yaw
}

// SetYaw sets the camera's yaw in degrees.
func (camera *Camera) SetYaw(degrees float32) {
	camera.yaw = degrees
	camera.markDirty()
}

// Pitch returns the camera's pitch in degrees.
func (camera *Camera) Pitch() float32 {
	return camera.pitch
}

// SetPitch sets the camera's pitch in degrees, clamped to [-MaxCameraPitch, MaxCameraPitch].
func (camera *Camera) SetPitch(degrees float32) {
	camera.pitch = clamp(degrees, -MaxCameraPitch, MaxCameraPitch)
	camera.markDirty()
}

// FieldOfView returns the vertical field of view in degrees.
func (camera *Camera) FieldOfView() float32 {
	return camera.fieldOfView
}

// SetFieldOfView sets the vertical field of view in degrees, clamped to [MinCameraFOV, MaxCameraFOV].
func (camera *Camera) SetFieldOfView(degrees float32) {
	camera.fieldOfView = clamp(degrees, MinCameraFOV, MaxCameraFOV)
}

// AspectRatio returns the camera's aspect ratio (width / height).
func (camera *Camera) AspectRatio() float32 {
	return camera.aspectRatio
}

// SetAspectRatio sets the camera's aspect ratio (width / height); call it when the window is resized.
func (camera *Camera) SetAspectRatio(aspectRatio float32) {
	if aspectRatio <= 0 || math32.IsNaN(aspectRatio) || math32.IsInf(aspectRatio, 0) {
		aspectRatio = DefaultAspectRatio
	}
	camera.aspectRatio = aspectRatio
}

// Resize sets the aspect ratio from a viewport size in pixels. Zero-sized viewports (a minimized window) are ignored.
func (camera *Camera) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	camera.SetAspectRatio(float32(w) / float32(h))
}

// Near returns the near plane distance.
func (camera *Camera) Near() float32 {
	return camera.near
}

// Far returns the far plane distance.
func (camera *Camera) Far() float32 {
	return camera.far
}

// SetClipPlanes sets the near and far plane distances. Invalid pairs (non-positive near, or far not beyond near) are ignored.
func (camera *Camera) SetClipPlanes(near, far float32) {
	if near <= 0 || far <= near {
		return
	}
	camera.near = near
	camera.far = far
}

// Front returns the unit direction the camera looks in.
func (camera *Camera) Front() mgl32.Vec3 {
	yaw := ToRadians(camera.yaw)
	pitch := ToRadians(camera.pitch)
	return mgl32.Vec3{
		math32.Cos(pitch) * math32.Cos(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Sin(yaw),
	}.Normalize()
}

// Right returns the unit vector pointing to the camera's right.
func (camera *Camera) Right() mgl32.Vec3 {
	return camera.Front().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

// Up returns the camera's unit up vector.
func (camera *Camera) Up() mgl32.Vec3 {
	return camera.Right().Cross(camera.Front()).Normalize()
}

// ViewMatrix returns the matrix transforming world space into the camera's view space.
func (camera *Camera) ViewMatrix() mgl32.Mat4 {
	position := camera.WorldPosition()
	return mgl32.LookAtV(position, position.Add(camera.Front()), camera.Up())
}

// Projection returns the camera's perspective projection matrix.
func (camera *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(ToRadians(camera.fieldOfView), camera.aspectRatio, camera.near, camera.far)
}

// WorldPosition returns the camera's position. The camera is always a direct child of the scene root, so it's the same
// as its local position.
func (camera *Camera) WorldPosition() mgl32.Vec3 {
	return camera.position
}

// composeModelMatrix places the camera in the world; it's the inverse of the view matrix, so children see the
// camera's -Z axis as Front.
func (camera *Camera) composeModelMatrix() mgl32.Mat4 {
	return camera.ViewMatrix().Inv()
}
