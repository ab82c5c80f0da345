package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line in world space. Direction is kept normalized by NewRay.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay creates a Ray from an origin and a direction. The direction is normalized;
// a zero direction yields a degenerate ray that intersects nothing.
//
// Parameters:
//   - origin: world-space start point
//   - direction: world-space direction, any length
//
// Returns:
//   - Ray: the constructed ray
func NewRay(origin, direction mgl32.Vec3) Ray {
	if direction.Len() < Epsilon {
		return Ray{Origin: origin}
	}
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// Degenerate reports whether the ray has no usable direction.
func (r Ray) Degenerate() bool {
	return r.Direction.Len() < Epsilon
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectPlane tests the ray against an infinite two-sided plane.
//
// Parameters:
//   - point: any point on the plane
//   - normal: the plane normal (need not be normalized)
//
// Returns:
//   - float32: distance along the ray to the hit
//   - bool: true if the plane is hit in front of the origin
func (r Ray) IntersectPlane(point, normal mgl32.Vec3) (float32, bool) {
	if r.Degenerate() {
		return 0, false
	}
	denom := normal.Dot(r.Direction)
	if float32(math.Abs(float64(denom))) < Epsilon {
		return 0, false
	}
	t := point.Sub(r.Origin).Dot(normal) / denom
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectSphere tests the ray against a sphere. An origin inside the sphere hits at the exit point.
//
// Parameters:
//   - center: sphere centre
//   - radius: sphere radius
//
// Returns:
//   - float32: distance along the ray to the nearest hit in front of the origin
//   - bool: true if the sphere is hit
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (float32, bool) {
	if r.Degenerate() || radius <= 0 {
		return 0, false
	}
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// IntersectAABB tests the ray against an axis-aligned box using the slab method.
//
// Parameters:
//   - minCorner: the box corner with the smallest coordinates
//   - maxCorner: the box corner with the largest coordinates
//
// Returns:
//   - float32: distance along the ray to the entry point (0 when the origin is inside)
//   - bool: true if the box is hit
func (r Ray) IntersectAABB(minCorner, maxCorner mgl32.Vec3) (float32, bool) {
	if r.Degenerate() {
		return 0, false
	}
	tMin := float32(0)
	tMax := float32(math.MaxFloat32)
	for i := 0; i < 3; i++ {
		if float32(math.Abs(float64(r.Direction[i]))) < Epsilon {
			// parallel to the slab: must already be inside it
			if r.Origin[i] < minCorner[i] || r.Origin[i] > maxCorner[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Direction[i]
		t0 := (minCorner[i] - r.Origin[i]) * inv
		t1 := (maxCorner[i] - r.Origin[i]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
