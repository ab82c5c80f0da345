package target

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const halfPi = float32(math.Pi / 2)

func TestNewTargetDefaults(t *testing.T) {
	tg := NewTarget("project-1")

	assert.Equal(t, "project-1", tg.ID())
	assert.Equal(t, "project-1", tg.Name())
	assert.Equal(t, mgl32.Vec3{}, tg.Position())
	assert.Equal(t, NewQuad(1, 1), tg.Collider())
}

func TestNewTargetOptions(t *testing.T) {
	tg := NewTarget("screen",
		WithName("Screen"),
		WithPosition(-1.15, 0.9, 1.64),
		WithYaw(0.5),
		WithCollider(Sphere{Radius: 2}),
	)

	assert.Equal(t, "Screen", tg.Name())
	assert.Equal(t, mgl32.Vec3{-1.15, 0.9, 1.64}, tg.Position())
	assert.Equal(t, float32(0.5), tg.Yaw())
	assert.Equal(t, Sphere{Radius: 2}, tg.Collider())
}

func TestNewTargetPanicsOnEmptyID(t *testing.T) {
	assert.Panics(t, func() { NewTarget("") })
}

func TestQuadFacesAlongYaw(t *testing.T) {
	tg := NewTarget("project-1", WithPosition(-1.5, 2, 0), WithYaw(-halfPi))

	dist, hit := tg.Intersect(common.NewRay(mgl32.Vec3{0, 2, 0}, mgl32.Vec3{-1, 0, 0}))
	assert.True(t, hit)
	assert.InDelta(t, 1.5, dist, 1e-5)

	// double-sided
	dist, hit = tg.Intersect(common.NewRay(mgl32.Vec3{-3, 2, 0}, mgl32.Vec3{1, 0, 0}))
	assert.True(t, hit)
	assert.InDelta(t, 1.5, dist, 1e-5)
}

func TestQuadMisses(t *testing.T) {
	tg := NewTarget("project-1", WithPosition(-1.5, 2, 0), WithYaw(-halfPi))

	tests := []struct {
		name   string
		origin mgl32.Vec3
		dir    mgl32.Vec3
	}{
		{"outside width", mgl32.Vec3{0, 2, 0.6}, mgl32.Vec3{-1, 0, 0}},
		{"outside height", mgl32.Vec3{0, 2.6, 0}, mgl32.Vec3{-1, 0, 0}},
		{"parallel", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 0, 1}},
		{"behind origin", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{1, 0, 0}},
		{"degenerate", mgl32.Vec3{0, 2, 0}, mgl32.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, hit := tg.Intersect(common.NewRay(tt.origin, tt.dir))
			assert.False(t, hit)
		})
	}
}

func TestSphereAndBoxColliders(t *testing.T) {
	ray := common.NewRay(mgl32.Vec3{}, mgl32.Vec3{0, 0, 1})

	sphere := NewTarget("sphere", WithPosition(0, 0, 5), WithCollider(Sphere{Radius: 1}))
	dist, hit := sphere.Intersect(ray)
	assert.True(t, hit)
	assert.InDelta(t, 4, dist, 1e-5)

	box := NewTarget("box", WithPosition(0, 0, 5), WithCollider(Box{HalfExtents: mgl32.Vec3{1, 1, 1}}))
	dist, hit = box.Intersect(ray)
	assert.True(t, hit)
	assert.InDelta(t, 4, dist, 1e-5)

	_, hit = box.Intersect(common.NewRay(mgl32.Vec3{3, 0, 0}, mgl32.Vec3{0, 0, 1}))
	assert.False(t, hit)
}

func TestNilColliderNeverHits(t *testing.T) {
	tg := NewTarget("ghost", WithCollider(nil))
	_, hit := tg.Intersect(common.NewRay(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1}))
	assert.False(t, hit)
}
