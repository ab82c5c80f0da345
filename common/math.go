package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance below which a vector length is treated as zero.
const Epsilon = 1e-6

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: lower bound
//   - hi: upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp3 linearly interpolates between a and b by t. t is not clamped.
//
// Parameters:
//   - a: the value at t = 0
//   - b: the value at t = 1
//   - t: interpolation factor
//
// Returns:
//   - mgl32.Vec3: a + (b - a) * t
func Lerp3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// SetLength rescales v so its length equals length while keeping its direction.
// A zero-length v has no direction and is returned unchanged with ok = false.
//
// Parameters:
//   - v: the vector to rescale
//   - length: the desired length
//
// Returns:
//   - mgl32.Vec3: the rescaled vector
//   - bool: false if v was too short to carry a direction
func SetLength(v mgl32.Vec3, length float32) (mgl32.Vec3, bool) {
	l := v.Len()
	if l < Epsilon {
		return v, false
	}
	return v.Mul(length / l), true
}

// YawOffset returns the horizontal offset of the given length along the facing direction
// of an object rotated by yaw radians about the Y axis. A yaw of 0 faces +Z.
//
// Parameters:
//   - yaw: rotation about Y in radians
//   - length: horizontal distance
//
// Returns:
//   - mgl32.Vec3: (sin(yaw) * length, 0, cos(yaw) * length)
func YawOffset(yaw, length float32) mgl32.Vec3 {
	s, c := math.Sincos(float64(yaw))
	return mgl32.Vec3{float32(s) * length, 0, float32(c) * length}
}

// BuildModelMatrix constructs a model matrix from position, Euler rotation, and scale.
// The rotation order is Y * X * Z (yaw-pitch-roll).
//
// Parameters:
//   - pos: translation in world space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	r := mgl32.HomogRotate3DY(rot[1]).Mul4(mgl32.HomogRotate3DX(rot[0])).Mul4(mgl32.HomogRotate3DZ(rot[2]))
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(r).Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}
