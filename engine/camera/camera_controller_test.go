package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/target"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func assertVec3(t *testing.T, expected, actual mgl32.Vec3, msgAndArgs ...any) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], tolerance, msgAndArgs...)
	}
}

func projectTarget() target.Target {
	return target.NewTarget("project-1",
		target.WithPosition(-1.5, 2, 0),
		target.WithYaw(-math.Pi/2),
		target.WithCollider(target.NewQuad(0.5, 0.5)),
	)
}

func TestNewCameraControllerDefaults(t *testing.T) {
	cc := NewCameraController()

	assert.Equal(t, ModeFree, cc.Mode())
	assert.Empty(t, cc.FocusedID())
	assert.Equal(t, Permissions{Rotate: true, Pan: false, Zoom: true}, cc.Permissions())
	assert.Equal(t, Bounds{Min: DefaultMinDistance, Max: DefaultMaxDistance}, cc.Bounds())
	assertVec3(t, mgl32.Vec3{0, 2, 4}, cc.Position())
	assertVec3(t, mgl32.Vec3{}, cc.Target())
	assert.False(t, cc.Transitioning())
}

func TestNewCameraControllerPanicsOnInvalidBounds(t *testing.T) {
	assert.Panics(t, func() { NewCameraController(WithBounds(0, 1)) })
	assert.Panics(t, func() { NewCameraController(WithBounds(3, 2)) })
	assert.Panics(t, func() { NewCameraController(WithBounds(2, 2)) })
}

func TestSetBoundsRejectsInvalid(t *testing.T) {
	cc := NewCameraController()
	err := cc.SetBounds(Bounds{Min: 5, Max: 1})
	assert.ErrorIs(t, err, ErrInvalidBounds)
	assert.Equal(t, Bounds{Min: DefaultMinDistance, Max: DefaultMaxDistance}, cc.Bounds())

	require.NoError(t, cc.SetBounds(Bounds{Min: 1, Max: 2}))
	assert.Equal(t, Bounds{Min: 1, Max: 2}, cc.Bounds())
}

func TestEnforceBoundsClampsFarPosition(t *testing.T) {
	cc := NewCameraController(WithBounds(0.5, 4.5))
	dir := mgl32.Vec3{1, 1, 1}.Normalize()
	cc.SetPosition(dir.Mul(10))

	cc.EnforceBounds()

	assert.InDelta(t, 4.5, cc.Position().Len(), tolerance)
	assertVec3(t, dir, cc.Position().Normalize())
}

func TestEnforceBoundsClampsNearPosition(t *testing.T) {
	cc := NewCameraController(WithBounds(0.5, 4.5))
	cc.SetPosition(mgl32.Vec3{0, 0.1, 0})

	cc.EnforceBounds()

	assertVec3(t, mgl32.Vec3{0, 0.5, 0}, cc.Position())
}

func TestEnforceBoundsAtOriginFallsBackToDefaultDirection(t *testing.T) {
	cc := NewCameraController()
	cc.SetPosition(mgl32.Vec3{})

	cc.EnforceBounds()

	assert.InDelta(t, DefaultMinDistance, cc.Position().Len(), tolerance)
	assertVec3(t, mgl32.Vec3{0, 2, 4}.Normalize(), cc.Position().Normalize())
}

func TestEnforceBoundsLeavesInsidePositionAlone(t *testing.T) {
	cc := NewCameraController()
	cc.SetPosition(mgl32.Vec3{1, 1, 1})
	cc.EnforceBounds()
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, cc.Position())
}

func TestEnforceBoundsProperty(t *testing.T) {
	positions := []mgl32.Vec3{
		{10, 0, 0}, {0, -20, 0}, {0.01, 0.01, 0.01}, {3, 3, 3},
		{-0.2, 0, 0.1}, {1, 2, 2}, {100, -50, 25}, {0, 0, 0.49},
	}
	for _, p := range positions {
		cc := NewCameraController()
		cc.SetPosition(p)
		cc.EnforceBounds()

		d := cc.Position().Len()
		assert.GreaterOrEqual(t, d, DefaultMinDistance-tolerance, "position %v", p)
		assert.LessOrEqual(t, d, DefaultMaxDistance+tolerance, "position %v", p)
		assertVec3(t, p.Normalize(), cc.Position().Normalize(), "position %v", p)
	}
}

func TestEnforceBoundsIsIdempotent(t *testing.T) {
	cc := NewCameraController()
	cc.SetPosition(mgl32.Vec3{7, -3, 2})

	cc.EnforceBounds()
	once := cc.Position()
	cc.EnforceBounds()

	assertVec3(t, once, cc.Position())
}

func TestRegisterTargetRejectsDuplicates(t *testing.T) {
	cc := NewCameraController()
	cc.RegisterTarget(projectTarget())

	assert.Panics(t, func() { cc.RegisterTarget(projectTarget()) })
	assert.Panics(t, func() { cc.RegisterTarget(nil) })
	assert.Len(t, cc.Targets(), 1)

	found, ok := cc.LookupTarget("project-1")
	require.True(t, ok)
	assert.Equal(t, "project-1", found.ID())

	_, ok = cc.LookupTarget("missing")
	assert.False(t, ok)
}

func TestResolveClickHitsOnlyIntersectedTarget(t *testing.T) {
	cc := NewCameraController()
	a := target.NewTarget("a", target.WithPosition(0, 0, 0))
	b := target.NewTarget("b", target.WithPosition(5, 0, 0))
	cc.RegisterTarget(a)
	cc.RegisterTarget(b)

	hit, ok := cc.ResolveClick(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.Equal(t, "a", hit.ID())

	hit, ok = cc.ResolveClick(mgl32.Vec3{0, 10, 5}, mgl32.Vec3{0, 0, -1})
	assert.False(t, ok)
	assert.Nil(t, hit)
}

func TestResolveClickUsesRegistrationOrder(t *testing.T) {
	cc := NewCameraController()
	far := target.NewTarget("far", target.WithPosition(0, 0, -2))
	near := target.NewTarget("near", target.WithPosition(0, 0, 0))
	cc.RegisterTarget(far)
	cc.RegisterTarget(near)

	hit, ok := cc.ResolveClick(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{0, 0, -1})
	require.True(t, ok)
	assert.Equal(t, "far", hit.ID(), "first registered target wins even when it is further away")
}

func TestResolveClickWithZeroDirectionMisses(t *testing.T) {
	cc := NewCameraController()
	cc.RegisterTarget(target.NewTarget("a"))
	_, ok := cc.ResolveClick(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{})
	assert.False(t, ok)
}

func TestFocusOnComputesFramingPose(t *testing.T) {
	cc := NewCameraController()
	tgt := projectTarget()
	cc.RegisterTarget(tgt)

	cc.FocusOn(tgt)

	assert.Equal(t, ModeFocused, cc.Mode())
	assert.Equal(t, "project-1", cc.FocusedID())
	assert.Equal(t, Permissions{Rotate: false, Pan: false, Zoom: true}, cc.Permissions())
	assert.True(t, cc.Transitioning())

	cc.Tick(DefaultTransitionDuration)
	cc.EnforceBounds()

	assertVec3(t, mgl32.Vec3{-2.3, 2.3, 0}, cc.Position())
	assertVec3(t, mgl32.Vec3{-1.5, 2, 0}, cc.Target())
	assert.False(t, cc.Transitioning())
	assert.Equal(t, ModeFocused, cc.Mode())
	assert.Equal(t, "project-1", cc.FocusedID())
}

func TestFocusOnInterpolatesWithEasing(t *testing.T) {
	cc := NewCameraController()
	tgt := projectTarget()
	cc.RegisterTarget(tgt)
	start := cc.Position()

	cc.FocusOn(tgt)
	cc.Tick(DefaultTransitionDuration / 2)

	// ease-in-out is exactly halfway at half time
	mid := start.Add(mgl32.Vec3{-2.3, 2.3, 0}).Mul(0.5)
	assertVec3(t, mid, cc.Position())
	assert.True(t, cc.Transitioning())
}

func TestFocusOnUnregisteredTargetPanics(t *testing.T) {
	cc := NewCameraController()
	assert.Panics(t, func() { cc.FocusOn(projectTarget()) })
	assert.Panics(t, func() { cc.FocusOn(nil) })
}

func TestFocusOnIsRepeatable(t *testing.T) {
	cc := NewCameraController()
	tgt := projectTarget()
	cc.RegisterTarget(tgt)

	cc.FocusOn(tgt)
	cc.Tick(0.5)
	cc.FocusOn(tgt)
	cc.Tick(DefaultTransitionDuration)

	assertVec3(t, mgl32.Vec3{-2.3, 2.3, 0}, cc.Position())
	assert.Equal(t, "project-1", cc.FocusedID())
}

func TestFocusThenResetBeforeTick(t *testing.T) {
	cc := NewCameraController()
	tgt := projectTarget()
	cc.RegisterTarget(tgt)

	cc.FocusOn(tgt)
	cc.Reset()

	assert.Equal(t, ModeFree, cc.Mode())
	assert.Empty(t, cc.FocusedID())
	assert.Equal(t, Permissions{Rotate: true, Pan: true, Zoom: true}, cc.Permissions())

	for i := 0; i < 100; i++ {
		cc.Tick(1.0 / 60)
		cc.EnforceBounds()
	}
	assert.False(t, cc.Transitioning())
	assertVec3(t, mgl32.Vec3{0, 2, 4}, cc.Position())
	assertVec3(t, mgl32.Vec3{}, cc.Target())
}

func TestResetPreemptsFocusMidFlight(t *testing.T) {
	cc := NewCameraController()
	tgt := projectTarget()
	cc.RegisterTarget(tgt)

	cc.FocusOn(tgt)
	cc.Tick(0.75)
	cc.Reset()
	cc.Tick(DefaultTransitionDuration)

	assertVec3(t, mgl32.Vec3{0, 2, 4}, cc.Position())
	assert.Equal(t, ModeFree, cc.Mode())
}

func TestTickIgnoresNegativeDelta(t *testing.T) {
	cc := NewCameraController()
	tgt := projectTarget()
	cc.RegisterTarget(tgt)
	cc.FocusOn(tgt)

	cc.Tick(0.5)
	before := cc.Position()
	cc.Tick(-10)
	assertVec3(t, before, cc.Position())
	assert.True(t, cc.Transitioning())
}

func TestZeroDurationCompletesOnNextTick(t *testing.T) {
	cc := NewCameraController(WithTransitionDuration(0))
	tgt := projectTarget()
	cc.RegisterTarget(tgt)
	cc.FocusOn(tgt)
	cc.Tick(0)

	assertVec3(t, mgl32.Vec3{-2.3, 2.3, 0}, cc.Position())
	assert.False(t, cc.Transitioning())
}

func TestOrbitRespectsPermission(t *testing.T) {
	cc := NewCameraController()
	start := cc.Position()

	cc.Orbit(math.Pi/2, 0)
	assert.InDelta(t, start.Len(), cc.Position().Len(), tolerance, "orbit keeps the radius")
	assert.NotEqual(t, start, cc.Position())

	tgt := projectTarget()
	cc.RegisterTarget(tgt)
	cc.FocusOn(tgt)
	cc.Tick(DefaultTransitionDuration)
	framed := cc.Position()
	cc.Orbit(1, 1)
	assert.Equal(t, framed, cc.Position())
}

func TestOrbitClampsPolarAngle(t *testing.T) {
	cc := NewCameraController()
	cc.Orbit(0, 10)
	offset := cc.Position().Sub(cc.Target())
	polar := math.Acos(float64(offset[1] / offset.Len()))
	assert.InDelta(t, 0.05, polar, 1e-3)
}

func TestZoomClampsToBounds(t *testing.T) {
	cc := NewCameraController()
	cc.Zoom(1000)
	assert.InDelta(t, DefaultMinDistance, cc.Position().Sub(cc.Target()).Len(), tolerance)
	cc.Zoom(-1000)
	assert.InDelta(t, DefaultMaxDistance, cc.Position().Sub(cc.Target()).Len(), tolerance)
}

func TestPanDisabledInitially(t *testing.T) {
	cc := NewCameraController()
	start := cc.Position()
	cc.Pan(10, 10)
	assert.Equal(t, start, cc.Position())

	cc.Reset()
	cc.Tick(DefaultTransitionDuration)
	cc.Pan(100, 0)
	assert.NotEqual(t, start, cc.Position())
	assertVec3(t, cc.Position().Sub(cc.Target()), start, "pan moves position and look-at together")
}

func TestTransitionAdvance(t *testing.T) {
	tr := NewTransition(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0}, 2, nil)

	p, done := tr.Advance(1)
	assert.False(t, done)
	assertVec3(t, mgl32.Vec3{5, 0, 0}, p)

	p, done = tr.Advance(5)
	assert.True(t, done)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, p)
}

func TestTransitionCompletesAfterFrameSizedSteps(t *testing.T) {
	tr := NewTransition(mgl32.Vec3{}, mgl32.Vec3{10, 0, 0}, 1.5, common.EaseInOutQuad)

	done := false
	var p mgl32.Vec3
	for i := 0; i < 90; i++ {
		p, done = tr.Advance(1.0 / 60)
	}
	assert.True(t, done)
	assert.Equal(t, mgl32.Vec3{10, 0, 0}, p)
}

func TestFocusFinishesOnTheLastFrame(t *testing.T) {
	cc := NewCameraController()
	tgt := projectTarget()
	cc.RegisterTarget(tgt)
	cc.FocusOn(tgt)

	// 1.5 seconds at 60 Hz
	for i := 0; i < 90; i++ {
		cc.Tick(1.0 / 60)
	}
	assert.False(t, cc.Transitioning())
	assertVec3(t, mgl32.Vec3{-2.3, 2.3, 0}, cc.Position())
	assertVec3(t, mgl32.Vec3{-1.5, 2, 0}, cc.Target())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "free", ModeFree.String())
	assert.Equal(t, "focused", ModeFocused.String())
	assert.Equal(t, "unknown", Mode(7).String())
}
