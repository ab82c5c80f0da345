package target

import (
	"math"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Collider is a pickable shape expressed in a target's local frame.
// The owning Target supplies its world position and yaw at test time.
type Collider interface {
	// Intersect tests a world-space ray against the shape placed at position and rotated by yaw about Y.
	//
	// Parameters:
	//   - ray: the world-space pick ray
	//   - position: the owning target's world position (shape centre)
	//   - yaw: the owning target's rotation about Y in radians
	//
	// Returns:
	//   - float32: distance along the ray to the hit
	//   - bool: true if the shape is hit
	Intersect(ray common.Ray, position mgl32.Vec3, yaw float32) (float32, bool)
}

// Quad is a flat two-sided rectangle facing +Z before rotation, centred on the target.
type Quad struct {
	Width  float32
	Height float32
}

var _ Collider = Quad{}

// NewQuad creates a Quad collider.
//
// Parameters:
//   - width: extent along the local X axis
//   - height: extent along the local Y axis
//
// Returns:
//   - Quad: the collider
func NewQuad(width, height float32) Quad {
	return Quad{Width: width, Height: height}
}

func (q Quad) Intersect(ray common.Ray, position mgl32.Vec3, yaw float32) (float32, bool) {
	s, c := math.Sincos(float64(yaw))
	normal := mgl32.Vec3{float32(s), 0, float32(c)}
	right := mgl32.Vec3{float32(c), 0, float32(-s)}
	up := mgl32.Vec3{0, 1, 0}

	t, ok := ray.IntersectPlane(position, normal)
	if !ok {
		return 0, false
	}
	local := ray.At(t).Sub(position)
	if abs(local.Dot(right)) > q.Width/2 || abs(local.Dot(up)) > q.Height/2 {
		return 0, false
	}
	return t, true
}

// Sphere is a ball of the given radius around the target. Yaw is irrelevant.
type Sphere struct {
	Radius float32
}

var _ Collider = Sphere{}

func (s Sphere) Intersect(ray common.Ray, position mgl32.Vec3, _ float32) (float32, bool) {
	return ray.IntersectSphere(position, s.Radius)
}

// Box is an axis-aligned box with the given half extents around the target. Yaw is ignored.
type Box struct {
	HalfExtents mgl32.Vec3
}

var _ Collider = Box{}

func (b Box) Intersect(ray common.Ray, position mgl32.Vec3, _ float32) (float32, bool) {
	return ray.IntersectAABB(position.Sub(b.HalfExtents), position.Add(b.HalfExtents))
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
