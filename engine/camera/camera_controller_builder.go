package camera

import (
	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithBounds sets the minimum and maximum camera distance from the origin.
// NewCameraController panics if 0 < min < max does not hold.
//
// Parameters:
//   - min: minimum distance (zoom in)
//   - max: maximum distance (zoom out)
//
// Returns:
//   - CameraControllerOption: functional option to set distance bounds
func WithBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bounds = Bounds{Min: min, Max: max}
	}
}

// WithDefaultPose sets the pose Reset flies back to. The controller also starts at this pose
// unless WithPosition or WithTarget override the starting values.
//
// Parameters:
//   - position: default camera position
//   - lookAt: default look-at point
//
// Returns:
//   - CameraControllerOption: functional option to set the default pose
func WithDefaultPose(position, lookAt mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.defaultPosition = position
		cc.defaultTarget = lookAt
		cc.position = position
		cc.target = lookAt
	}
}

// WithPosition sets the starting camera position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the starting position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the starting look-at point.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: functional option to set the starting look-at
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = mgl32.Vec3{x, y, z}
	}
}

// WithStandoff sets the framing offset used by FocusOn.
//
// Parameters:
//   - horizontal: distance in front of the target along its facing direction
//   - vertical: height above the target
//
// Returns:
//   - CameraControllerOption: functional option to set the framing offset
func WithStandoff(horizontal, vertical float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.standoff = horizontal
		cc.lift = vertical
	}
}

// WithTransitionDuration sets the length of focus and reset transitions.
//
// Parameters:
//   - seconds: transition duration
//
// Returns:
//   - CameraControllerOption: functional option to set the duration
func WithTransitionDuration(seconds float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.duration = seconds
	}
}

// WithEasing sets the easing curve of focus and reset transitions. Nil is ignored.
//
// Parameters:
//   - easing: the easing curve
//
// Returns:
//   - CameraControllerOption: functional option to set the easing
func WithEasing(easing common.EasingFunc) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if easing != nil {
			cc.easing = easing
		}
	}
}

// WithPermissions sets the starting interaction flags.
//
// Parameters:
//   - p: the flags
//
// Returns:
//   - CameraControllerOption: functional option to set the flags
func WithPermissions(p Permissions) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.perms = p
	}
}

// WithPolarBounds sets the orbit polar angle limits measured from +Y.
//
// Parameters:
//   - min: smallest polar angle in radians
//   - max: largest polar angle in radians
//
// Returns:
//   - CameraControllerOption: functional option to set polar limits
func WithPolarBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minPolar = min
		cc.maxPolar = max
	}
}

// WithZoomSpeed sets the zoom speed multiplier.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the pan speed multiplier.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// WithLogger attaches a logger for transition and registration events.
//
// Parameters:
//   - log: the logger
//
// Returns:
//   - CameraControllerOption: functional option to set the logger
func WithLogger(log zerolog.Logger) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.log = log.With().Str("component", "camera_controller").Logger()
	}
}
