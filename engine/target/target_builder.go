package target

import "github.com/go-gl/mathgl/mgl32"

// TargetBuilderOption is a functional option for configuring a Target.
type TargetBuilderOption func(*target)

// WithName sets the display name.
//
// Parameters:
//   - name: human-readable label
//
// Returns:
//   - TargetBuilderOption: option function to apply
func WithName(name string) TargetBuilderOption {
	return func(t *target) {
		t.name = name
	}
}

// WithPosition sets the world-space centre.
//
// Parameters:
//   - x, y, z: world coordinates
//
// Returns:
//   - TargetBuilderOption: option function to apply
func WithPosition(x, y, z float32) TargetBuilderOption {
	return func(t *target) {
		t.position = mgl32.Vec3{x, y, z}
	}
}

// WithYaw sets the rotation about Y in radians.
//
// Parameters:
//   - yaw: rotation in radians (0 faces +Z)
//
// Returns:
//   - TargetBuilderOption: option function to apply
func WithYaw(yaw float32) TargetBuilderOption {
	return func(t *target) {
		t.yaw = yaw
	}
}

// WithCollider replaces the default 1x1 Quad collider.
//
// Parameters:
//   - c: the collision shape
//
// Returns:
//   - TargetBuilderOption: option function to apply
func WithCollider(c Collider) TargetBuilderOption {
	return func(t *target) {
		t.collider = c
	}
}
