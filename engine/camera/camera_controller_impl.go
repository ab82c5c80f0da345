package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/target"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// ErrInvalidBounds is returned when distance bounds violate 0 < Min < Max.
var ErrInvalidBounds = errors.New("camera: bounds must satisfy 0 < min < max")

// Framing defaults reproduce the portfolio scene's fly-to behaviour.
const (
	DefaultStandoff           float32 = 0.8
	DefaultLift               float32 = 0.3
	DefaultTransitionDuration float32 = 1.5
	DefaultMinDistance        float32 = 0.5
	DefaultMaxDistance        float32 = 4.5
)

// cameraControllerImpl is the single implementation of CameraController.
// It carries no lock; the frame loop is its only caller.
type cameraControllerImpl struct {
	position mgl32.Vec3
	target   mgl32.Vec3

	mode      Mode
	focusedID string
	perms     Permissions
	bounds    Bounds

	targets     []target.Target
	targetIndex map[string]int

	// at most one in-flight transition per property; starting a new one replaces it
	positionTransition *Transition
	targetTransition   *Transition

	defaultPosition mgl32.Vec3
	defaultTarget   mgl32.Vec3

	standoff float32
	lift     float32
	duration float32
	easing   common.EasingFunc

	// polar angle limits for Orbit, measured from +Y
	minPolar float32
	maxPolar float32

	zoomSpeed float32
	panSpeed  float32

	log zerolog.Logger
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new camera controller starting at the default pose in ModeFree
// with rotation and zoom enabled and panning disabled.
// Panics if the configured bounds violate 0 < Min < Max.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		targetIndex:     make(map[string]int),
		mode:            ModeFree,
		perms:           Permissions{Rotate: true, Pan: false, Zoom: true},
		bounds:          Bounds{Min: DefaultMinDistance, Max: DefaultMaxDistance},
		defaultPosition: mgl32.Vec3{0, 2, 4},
		defaultTarget:   mgl32.Vec3{0, 0, 0},
		standoff:        DefaultStandoff,
		lift:            DefaultLift,
		duration:        DefaultTransitionDuration,
		easing:          common.EaseInOutQuad,
		minPolar:        0.05,
		maxPolar:        math.Pi - 0.05,
		zoomSpeed:       0.25,
		panSpeed:        0.01,
		log:             zerolog.Nop(),
	}
	cc.position = cc.defaultPosition
	cc.target = cc.defaultTarget

	for _, option := range options {
		option(cc)
	}

	if !cc.bounds.Valid() {
		panic(fmt.Sprintf("camera: NewCameraController: %v (got min=%v max=%v)", ErrInvalidBounds, cc.bounds.Min, cc.bounds.Max))
	}
	return cc
}

// --- internal helpers ---

// startTransitions replaces any in-flight transitions with new ones toward the given pose.
func (cc *cameraControllerImpl) startTransitions(position, lookAt mgl32.Vec3) {
	cc.positionTransition = NewTransition(cc.position, position, cc.duration, cc.easing)
	cc.targetTransition = NewTransition(cc.target, lookAt, cc.duration, cc.easing)
}

// framingPose computes the camera pose that frames t from in front of its facing direction.
func (cc *cameraControllerImpl) framingPose(t target.Target) (position, lookAt mgl32.Vec3) {
	p := t.Position()
	position = p.Add(common.YawOffset(t.Yaw(), cc.standoff)).Add(mgl32.Vec3{0, cc.lift, 0})
	return position, p
}

// localAxes returns the camera's right and up axes consistent with a LookAt view using world up +Y.
// Both are zero when position and target coincide or the view is vertical.
func (cc *cameraControllerImpl) localAxes() (right, up mgl32.Vec3) {
	forward := cc.target.Sub(cc.position)
	if forward.Len() < common.Epsilon {
		return
	}
	forward = forward.Normalize()
	right = forward.Cross(mgl32.Vec3{0, 1, 0})
	if right.Len() < common.Epsilon {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() mgl32.Vec3 {
	return cc.position
}

func (cc *cameraControllerImpl) Target() mgl32.Vec3 {
	return cc.target
}

func (cc *cameraControllerImpl) SetPosition(p mgl32.Vec3) {
	cc.position = p
}

func (cc *cameraControllerImpl) SetTarget(p mgl32.Vec3) {
	cc.target = p
}

func (cc *cameraControllerImpl) Mode() Mode {
	return cc.mode
}

func (cc *cameraControllerImpl) FocusedID() string {
	return cc.focusedID
}

func (cc *cameraControllerImpl) Permissions() Permissions {
	return cc.perms
}

func (cc *cameraControllerImpl) Bounds() Bounds {
	return cc.bounds
}

func (cc *cameraControllerImpl) SetBounds(b Bounds) error {
	if !b.Valid() {
		return fmt.Errorf("set bounds min=%v max=%v: %w", b.Min, b.Max, ErrInvalidBounds)
	}
	cc.bounds = b
	return nil
}

func (cc *cameraControllerImpl) SetTransitionDuration(seconds float32) {
	cc.duration = seconds
}

func (cc *cameraControllerImpl) Transitioning() bool {
	return cc.positionTransition != nil || cc.targetTransition != nil
}

// --- interactionController implementation ---

func (cc *cameraControllerImpl) RegisterTarget(t target.Target) {
	if t == nil {
		panic("camera: RegisterTarget requires a non-nil target")
	}
	if _, exists := cc.targetIndex[t.ID()]; exists {
		panic(fmt.Sprintf("camera: target %q is already registered", t.ID()))
	}
	cc.targetIndex[t.ID()] = len(cc.targets)
	cc.targets = append(cc.targets, t)
	cc.log.Debug().Str("target", t.ID()).Int("count", len(cc.targets)).Msg("target registered")
}

func (cc *cameraControllerImpl) Targets() []target.Target {
	out := make([]target.Target, len(cc.targets))
	copy(out, cc.targets)
	return out
}

func (cc *cameraControllerImpl) LookupTarget(id string) (target.Target, bool) {
	i, ok := cc.targetIndex[id]
	if !ok {
		return nil, false
	}
	return cc.targets[i], true
}

func (cc *cameraControllerImpl) ResolveClick(origin, direction mgl32.Vec3) (target.Target, bool) {
	ray := common.NewRay(origin, direction)
	for _, t := range cc.targets {
		if _, hit := t.Intersect(ray); hit {
			return t, true
		}
	}
	return nil, false
}

func (cc *cameraControllerImpl) FocusOn(t target.Target) {
	if t == nil {
		panic("camera: FocusOn requires a non-nil target")
	}
	registered, ok := cc.LookupTarget(t.ID())
	if !ok {
		panic(fmt.Sprintf("camera: FocusOn target %q is not registered", t.ID()))
	}

	cc.mode = ModeFocused
	cc.focusedID = registered.ID()
	cc.perms = Permissions{Rotate: false, Pan: false, Zoom: true}

	position, lookAt := cc.framingPose(registered)
	cc.startTransitions(position, lookAt)

	cc.log.Debug().
		Str("target", registered.ID()).
		Floats32("destination", position[:]).
		Float32("duration", cc.duration).
		Msg("focus transition started")
}

func (cc *cameraControllerImpl) Reset() {
	cc.mode = ModeFree
	cc.focusedID = ""
	cc.perms = Permissions{Rotate: true, Pan: true, Zoom: true}
	cc.startTransitions(cc.defaultPosition, cc.defaultTarget)

	cc.log.Debug().Float32("duration", cc.duration).Msg("reset transition started")
}

func (cc *cameraControllerImpl) Tick(dt float32) {
	if cc.positionTransition != nil {
		p, done := cc.positionTransition.Advance(dt)
		cc.position = p
		if done {
			cc.positionTransition = nil
		}
	}
	if cc.targetTransition != nil {
		p, done := cc.targetTransition.Advance(dt)
		cc.target = p
		if done {
			cc.targetTransition = nil
		}
	}
}

func (cc *cameraControllerImpl) EnforceBounds() {
	d := cc.position.Len()
	switch {
	case d < cc.bounds.Min:
		if p, ok := common.SetLength(cc.position, cc.bounds.Min); ok {
			cc.position = p
			return
		}
		// the origin has no direction; fall back to the default pose direction
		dir := cc.defaultPosition
		if dir.Len() < common.Epsilon {
			dir = mgl32.Vec3{0, 0, 1}
		}
		cc.position, _ = common.SetLength(dir, cc.bounds.Min)
	case d > cc.bounds.Max:
		cc.position, _ = common.SetLength(cc.position, cc.bounds.Max)
	}
}

// --- orbitController implementation ---

func (cc *cameraControllerImpl) Orbit(dAzimuth, dElevation float32) {
	if !cc.perms.Rotate {
		return
	}
	offset := cc.position.Sub(cc.target)
	radius := offset.Len()
	if radius < common.Epsilon {
		return
	}

	azimuth := math.Atan2(float64(offset[0]), float64(offset[2]))
	polar := math.Acos(float64(common.Clamp(offset[1]/radius, -1, 1)))

	azimuth += float64(dAzimuth)
	polar = float64(common.Clamp(float32(polar)-dElevation, cc.minPolar, cc.maxPolar))

	sinPolar := math.Sin(polar)
	cc.position = cc.target.Add(mgl32.Vec3{
		float32(sinPolar * math.Sin(azimuth)),
		float32(math.Cos(polar)),
		float32(sinPolar * math.Cos(azimuth)),
	}.Mul(radius))
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	if !cc.perms.Zoom {
		return
	}
	offset := cc.position.Sub(cc.target)
	radius := offset.Len()
	if radius < common.Epsilon {
		return
	}
	radius = common.Clamp(radius-delta*cc.zoomSpeed, cc.bounds.Min, cc.bounds.Max)
	cc.position = cc.target.Add(offset.Normalize().Mul(radius))
}

func (cc *cameraControllerImpl) Pan(dx, dy float32) {
	if !cc.perms.Pan {
		return
	}
	right, up := cc.localAxes()
	offset := right.Mul(dx * cc.panSpeed).Add(up.Mul(dy * cc.panSpeed))
	cc.position = cc.position.Add(offset)
	cc.target = cc.target.Add(offset)
}
