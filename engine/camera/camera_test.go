package camera

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/engine/target"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickRayThroughCentreLooksAtTarget(t *testing.T) {
	ctrl := NewCameraController()
	cam := NewCamera(WithController(ctrl), WithAspect(16.0/9.0))

	ray := cam.PickRay(640, 360, 1280, 720)
	require.False(t, ray.Degenerate())

	assertVec3(t, ctrl.Position(), ray.Origin)
	expected := ctrl.Target().Sub(ctrl.Position()).Normalize()
	assertVec3(t, expected, ray.Direction)
}

func TestPickRayFollowsControllerMovedSinceUpdate(t *testing.T) {
	ctrl := NewCameraController()
	cam := NewCamera(WithController(ctrl), WithAspect(16.0/9.0))
	cam.Update()

	ctrl.Orbit(1.0, 0)
	ctrl.Zoom(2)

	ray := cam.PickRay(640, 360, 1280, 720)
	assertVec3(t, ctrl.Position(), ray.Origin)
	expected := ctrl.Target().Sub(ctrl.Position()).Normalize()
	assertVec3(t, expected, ray.Direction)
}

func TestPickRayOffCentreBendsTowardPointer(t *testing.T) {
	ctrl := NewCameraController(WithDefaultPose(mgl32.Vec3{0, 0, 4}, mgl32.Vec3{}))
	cam := NewCamera(WithController(ctrl))

	right := cam.PickRay(90, 50, 100, 100)
	assert.Greater(t, right.Direction[0], float32(0))

	top := cam.PickRay(50, 10, 100, 100)
	assert.Greater(t, top.Direction[1], float32(0))
}

func TestPickRayHitsFramedTarget(t *testing.T) {
	ctrl := NewCameraController()
	tgt := projectTarget()
	ctrl.RegisterTarget(tgt)
	ctrl.FocusOn(tgt)
	ctrl.Tick(DefaultTransitionDuration)

	cam := NewCamera(WithController(ctrl))
	ray := cam.PickRay(400, 300, 800, 600)

	hit, ok := ctrl.ResolveClick(ray.Origin, ray.Direction)
	require.True(t, ok)
	assert.Equal(t, tgt.ID(), hit.ID())
}

func TestPickRayWithoutControllerIsDegenerate(t *testing.T) {
	cam := NewCamera()
	assert.True(t, cam.PickRay(1, 1, 10, 10).Degenerate())

	cam.SetController(NewCameraController())
	assert.True(t, cam.PickRay(1, 1, 0, 10).Degenerate())
}

func TestCameraFollowsControllerOnUpdate(t *testing.T) {
	ctrl := NewCameraController()
	cam := NewCamera(WithController(ctrl))
	before := cam.ViewMatrix()

	ctrl.SetPosition(mgl32.Vec3{3, 1, 0})
	assert.Equal(t, before, cam.ViewMatrix())
	cam.Update()
	assert.NotEqual(t, before, cam.ViewMatrix())

	cam.SetAspect(-1)
	assert.Equal(t, float32(1), cam.Aspect())
	cam.SetAspect(2)
	assert.Equal(t, float32(2), cam.Aspect())
}

func TestQuadColliderFacesYaw(t *testing.T) {
	tgt := target.NewTarget("screen",
		target.WithPosition(0, 0, 0),
		target.WithYaw(0),
		target.WithCollider(target.NewQuad(0.46, 0.6)),
	)
	cam := NewCamera(WithController(NewCameraController(WithDefaultPose(mgl32.Vec3{0, 0, 2}, mgl32.Vec3{}))))
	ray := cam.PickRay(50, 50, 100, 100)
	_, hit := tgt.Intersect(ray)
	assert.True(t, hit)

	ray = cam.PickRay(99, 50, 100, 100)
	_, hit = tgt.Intersect(ray)
	assert.False(t, hit)
}
