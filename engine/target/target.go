package target

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/go-gl/mathgl/mgl32"
)

type target struct {
	id       string
	name     string
	position mgl32.Vec3
	yaw      float32
	collider Collider
}

// Target is a clickable object the camera can fly to.
// A Target is immutable once built; controllers keep read-only references to it.
type Target interface {
	// ID returns the unique identifier used for registration and focus.
	//
	// Returns:
	//   - string: the target ID
	ID() string

	// Name returns a human-readable label. Defaults to the ID.
	//
	// Returns:
	//   - string: the display name
	Name() string

	// Position returns the target's world-space centre.
	//
	// Returns:
	//   - mgl32.Vec3: world position
	Position() mgl32.Vec3

	// Yaw returns the rotation about the Y axis in radians. A yaw of 0 faces +Z.
	//
	// Returns:
	//   - float32: yaw in radians
	Yaw() float32

	// Collider returns the pickable shape.
	//
	// Returns:
	//   - Collider: the collision shape
	Collider() Collider

	// Intersect tests a world-space ray against the target's collider.
	//
	// Parameters:
	//   - ray: the pick ray
	//
	// Returns:
	//   - float32: distance along the ray to the hit
	//   - bool: true if the target is hit
	Intersect(ray common.Ray) (float32, bool)
}

var _ Target = &target{}

// NewTarget creates a Target with the given ID. The default collider is a 1x1 Quad,
// matching a unit plane placeholder.
// Panics if id is empty.
//
// Parameters:
//   - id: unique identifier
//   - options: functional options to configure the target
//
// Returns:
//   - Target: the newly created target
func NewTarget(id string, options ...TargetBuilderOption) Target {
	if id == "" {
		panic("target: NewTarget requires a non-empty id")
	}
	t := &target{
		id:       id,
		name:     id,
		collider: NewQuad(1, 1),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *target) ID() string {
	return t.id
}

func (t *target) Name() string {
	return t.name
}

func (t *target) Position() mgl32.Vec3 {
	return t.position
}

func (t *target) Yaw() float32 {
	return t.yaw
}

func (t *target) Collider() Collider {
	return t.collider
}

func (t *target) Intersect(ray common.Ray) (float32, bool) {
	if t.collider == nil {
		return 0, false
	}
	return t.collider.Intersect(ray, t.position, t.yaw)
}
