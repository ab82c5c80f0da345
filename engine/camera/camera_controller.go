package camera

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/target"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode tags whether the camera is free to orbit or framed on a target.
type Mode int

const (
	// ModeFree is the default orbit mode.
	ModeFree Mode = iota
	// ModeFocused means the camera is flying to, or framed on, a registered target.
	ModeFocused
)

func (m Mode) String() string {
	switch m {
	case ModeFree:
		return "free"
	case ModeFocused:
		return "focused"
	default:
		return "unknown"
	}
}

// Permissions are the interaction flags an external orbit/pan/zoom input handler must respect.
type Permissions struct {
	Rotate bool `json:"rotate"`
	Pan    bool `json:"pan"`
	Zoom   bool `json:"zoom"`
}

// Bounds constrain the camera's distance from the world origin. 0 < Min < Max.
type Bounds struct {
	Min float32 `json:"min"`
	Max float32 `json:"max"`
}

// Valid reports whether 0 < Min < Max.
func (b Bounds) Valid() bool {
	return b.Min > 0 && b.Min < b.Max
}

// CameraController defines the union interface for the camera framing and interaction controller.
// The controller owns camera position and look-at. It is not safe for concurrent use: every call
// must come from the frame loop, with input-triggered calls (FocusOn, Reset, Orbit, Zoom, Pan)
// made before that frame's Tick and EnforceBounds.
type CameraController interface {
	interactionController
	orbitController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space look-at position
	Target() mgl32.Vec3

	// SetPosition sets the camera's world-space position directly.
	// An active position transition will overwrite it on the next Tick.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p mgl32.Vec3)

	// SetTarget sets the look-at point directly.
	// An active look-at transition will overwrite it on the next Tick.
	//
	// Parameters:
	//   - p: world-space look-at position
	SetTarget(p mgl32.Vec3)

	// Mode returns the current mode.
	//
	// Returns:
	//   - Mode: ModeFree or ModeFocused
	Mode() Mode

	// FocusedID returns the ID of the focused target, or "" in ModeFree.
	//
	// Returns:
	//   - string: the focused target ID
	FocusedID() string

	// Permissions returns the current rotate/pan/zoom flags.
	//
	// Returns:
	//   - Permissions: the interaction flags
	Permissions() Permissions

	// Bounds returns the distance bounds enforced around the origin.
	//
	// Returns:
	//   - Bounds: min and max distance
	Bounds() Bounds

	// SetBounds replaces the distance bounds. The new bounds apply on the next EnforceBounds.
	//
	// Parameters:
	//   - b: the new bounds
	//
	// Returns:
	//   - error: ErrInvalidBounds if 0 < Min < Max does not hold
	SetBounds(b Bounds) error

	// SetTransitionDuration sets the duration in seconds of transitions started afterwards.
	//
	// Parameters:
	//   - seconds: the new duration (values <= 0 make transitions complete on the next Tick)
	SetTransitionDuration(seconds float32)

	// Transitioning reports whether any position or look-at transition is active.
	//
	// Returns:
	//   - bool: true while a transition is in flight
	Transitioning() bool
}

// interactionController defines the click-to-focus command surface.
type interactionController interface {
	// RegisterTarget adds a target to the pickable set. Registration order decides click priority.
	// Panics if the target is nil or its ID is already registered.
	//
	// Parameters:
	//   - t: the target to register
	RegisterTarget(t target.Target)

	// Targets returns the registered targets in registration order.
	//
	// Returns:
	//   - []target.Target: a copy of the registered set
	Targets() []target.Target

	// LookupTarget finds a registered target by ID.
	//
	// Parameters:
	//   - id: the target ID
	//
	// Returns:
	//   - target.Target: the target, or nil
	//   - bool: true if registered
	LookupTarget(id string) (target.Target, bool)

	// ResolveClick returns the first registered target, in registration order, whose collider
	// the ray intersects. This is first-hit, not nearest-hit.
	//
	// Parameters:
	//   - origin: world-space ray origin
	//   - direction: world-space ray direction (any length)
	//
	// Returns:
	//   - target.Target: the hit target, or nil
	//   - bool: true if a target was hit
	ResolveClick(origin, direction mgl32.Vec3) (target.Target, bool)

	// FocusOn switches to ModeFocused on t, locks rotation and panning, keeps zoom, and starts
	// position and look-at transitions toward the framing pose in front of t.
	// Panics if t is not registered.
	//
	// Parameters:
	//   - t: a registered target
	FocusOn(t target.Target)

	// Reset switches to ModeFree, re-enables all interaction flags, and starts transitions
	// back to the default pose.
	Reset()

	// Tick advances active transitions by dt seconds. Completed transitions are cleared.
	//
	// Parameters:
	//   - dt: elapsed seconds since the last frame; negative values are treated as 0
	Tick(dt float32)

	// EnforceBounds rescales the camera position onto the nearest distance bound when it lies
	// outside [Min, Max], preserving its direction from the origin.
	EnforceBounds()
}

// orbitController defines permission-gated orbit, dolly and pan input.
type orbitController interface {
	// Orbit rotates the camera around the look-at point. No-op while rotation is disabled.
	//
	// Parameters:
	//   - dAzimuth: horizontal angle delta in radians
	//   - dElevation: vertical angle delta in radians (positive moves up)
	Orbit(dAzimuth, dElevation float32)

	// Zoom dollies toward (positive delta) or away from the look-at point, keeping the
	// distance to it inside the bounds. No-op while zoom is disabled.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// Pan translates position and look-at along the camera's local right and up axes.
	// No-op while panning is disabled.
	//
	// Parameters:
	//   - dx: movement along the local right axis, scaled by the pan speed
	//   - dy: movement along the local up axis, scaled by the pan speed
	Pan(dx, dy float32)
}
