package game_object

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/go-gl/mathgl/mgl32"
)

type gameObject struct {
	id      uint64
	name    string
	enabled atomic.Bool

	position      mgl32.Vec3
	rotation      mgl32.Vec3
	scale         mgl32.Vec3
	rotationSpeed mgl32.Vec3 // radians per second about each axis
}

// GameObject defines the interface for a decorative scene prop such as a spinning model.
// A GameObject carries a transform and a constant angular velocity integrated by Update.
// It is owned by the frame loop and is not safe for concurrent mutation.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the object's name, e.g. the node name inside the scene model.
	//
	// Returns:
	//   - string: the object name
	Name() string

	// Enabled returns whether this object is updated and published.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// Position returns the world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Rotation returns the Euler rotation in radians, each axis wrapped to (-2π, 2π).
	//
	// Returns:
	//   - mgl32.Vec3: rotation angles
	Rotation() mgl32.Vec3

	// RotationSpeed returns the angular velocity in radians per second.
	//
	// Returns:
	//   - mgl32.Vec3: rotation speed about X, Y and Z
	RotationSpeed() mgl32.Vec3

	// Scale returns the scale factors.
	//
	// Returns:
	//   - mgl32.Vec3: scale along X, Y and Z
	Scale() mgl32.Vec3

	// ModelMatrix builds the object's model matrix from its current transform.
	//
	// Returns:
	//   - mgl32.Mat4: translate * rotate(Y, X, Z) * scale
	ModelMatrix() mgl32.Mat4

	// Update integrates the rotation speed over dt seconds. Disabled objects do not move.
	//
	// Parameters:
	//   - dt: elapsed seconds; negative values are ignored
	Update(dt float32)

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the object is updated and published.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetPosition sets the world-space position.
	//
	// Parameters:
	//   - x, y, z: new position components
	SetPosition(x, y, z float32)

	// SetRotation sets the Euler rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation angles
	SetRotation(rx, ry, rz float32)

	// SetRotationSpeed sets the angular velocity in radians per second.
	//
	// Parameters:
	//   - rx, ry, rz: new rotation speed values
	SetRotationSpeed(rx, ry, rz float32)

	// SetScale sets the scale factors.
	//
	// Parameters:
	//   - sx, sy, sz: new scale factors
	SetScale(sx, sy, sz float32)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject with unit scale, configured with the given options.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		scale: mgl32.Vec3{1, 1, 1},
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	return obj
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) Position() mgl32.Vec3 {
	return g.position
}

func (g *gameObject) Rotation() mgl32.Vec3 {
	return g.rotation
}

func (g *gameObject) RotationSpeed() mgl32.Vec3 {
	return g.rotationSpeed
}

func (g *gameObject) Scale() mgl32.Vec3 {
	return g.scale
}

func (g *gameObject) ModelMatrix() mgl32.Mat4 {
	return common.BuildModelMatrix(g.position, g.rotation, g.scale)
}

func (g *gameObject) Update(dt float32) {
	if dt <= 0 || !g.enabled.Load() {
		return
	}
	for i := 0; i < 3; i++ {
		g.rotation[i] = wrapAngle(g.rotation[i] + g.rotationSpeed[i]*dt)
	}
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.position = mgl32.Vec3{x, y, z}
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.rotation = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetRotationSpeed(rx, ry, rz float32) {
	g.rotationSpeed = mgl32.Vec3{rx, ry, rz}
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.scale = mgl32.Vec3{sx, sy, sz}
}

// wrapAngle keeps an accumulating angle from losing float32 precision over long sessions.
func wrapAngle(a float32) float32 {
	return float32(math.Mod(float64(a), 2*math.Pi))
}
