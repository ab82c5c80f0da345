package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(1), Clamp(0, 1, 2))
	assert.Equal(t, float32(2), Clamp(5, 1, 2))
	assert.Equal(t, float32(1.5), Clamp(1.5, 1, 2))
}

func TestSetLength(t *testing.T) {
	v, ok := SetLength(mgl32.Vec3{3, 0, 4}, 10)
	assert.True(t, ok)
	assert.InDelta(t, 10.0, v.Len(), 1e-5)
	assert.InDelta(t, 6.0, v[0], 1e-5)
	assert.InDelta(t, 8.0, v[2], 1e-5)

	v, ok = SetLength(mgl32.Vec3{}, 3)
	assert.False(t, ok)
	assert.Equal(t, mgl32.Vec3{}, v)
}

func TestYawOffset(t *testing.T) {
	v := YawOffset(0, 2)
	assert.InDelta(t, 0.0, v[0], 1e-6)
	assert.InDelta(t, 2.0, v[2], 1e-6)

	v = YawOffset(-math.Pi/2, 0.8)
	assert.InDelta(t, -0.8, v[0], 1e-6)
	assert.InDelta(t, 0.0, v[1], 1e-6)
	assert.InDelta(t, 0.0, v[2], 1e-6)
}

func TestLerp3(t *testing.T) {
	v := Lerp3(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 4, 6}, 0.5)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, v)
}

func TestBuildModelMatrixTranslatesAndScales(t *testing.T) {
	m := BuildModelMatrix(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	p := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1})
	assert.InDelta(t, 3.0, p[0], 1e-6)
	assert.InDelta(t, 2.0, p[1], 1e-6)
	assert.InDelta(t, 3.0, p[2], 1e-6)
}

func TestCoalesce(t *testing.T) {
	assert.Equal(t, "b", Coalesce("", "b", "c"))
	assert.Equal(t, 0, Coalesce(0, 0))
}
