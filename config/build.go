package config

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/screen"
	"github.com/Carmen-Shannon/oxy-folio/engine/target"
	"github.com/rs/zerolog"
)

// SceneName is the name of the portfolio scene built by BuildScene.
const SceneName = "portfolio"

// Collider converts the config into a target collider. An empty shape means a quad.
func (cc ColliderConfig) Collider() (target.Collider, error) {
	if err := cc.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	switch cc.Shape {
	case "sphere":
		return target.Sphere{Radius: cc.Radius}, nil
	case "box":
		return target.Box{HalfExtents: cc.HalfExtents.Vec()}, nil
	default:
		return target.NewQuad(cc.Width, cc.Height), nil
	}
}

// Target builds the clickable target described by tc.
//
// Returns:
//   - target.Target: the target
//   - error: an ErrInvalid error for a missing ID or a bad collider
func (tc TargetConfig) Target() (target.Target, error) {
	if tc.ID == "" {
		return nil, fmt.Errorf("%w: target id is required", ErrInvalid)
	}
	collider, err := tc.Collider.Collider()
	if err != nil {
		return nil, fmt.Errorf("target %s: %w", tc.ID, err)
	}
	return target.NewTarget(tc.ID,
		target.WithName(common.Coalesce(tc.Name, tc.ID)),
		target.WithPosition(tc.Position[0], tc.Position[1], tc.Position[2]),
		target.WithYaw(tc.Yaw),
		target.WithCollider(collider),
	), nil
}

// Target builds the pickable quad covering the floating screen.
func (sc ScreenConfig) Target() (target.Target, error) {
	return TargetConfig{
		ID:       sc.ID,
		Name:     common.Coalesce(sc.Name, sc.ID),
		Position: sc.Position,
		Yaw:      sc.Yaw,
		Collider: ColliderConfig{Shape: "quad", Width: sc.Width, Height: sc.Height},
	}.Target()
}

// ControllerOptions turns the camera section into controller options.
//
// Parameters:
//   - log: logger for transition events
//
// Returns:
//   - []camera.CameraControllerOption: the options, ready for camera.NewCameraController
func (cc CameraConfig) ControllerOptions(log zerolog.Logger) []camera.CameraControllerOption {
	easing, _ := common.EasingByName(common.Coalesce(cc.Easing, "power1.inOut"))
	start := cc.StartPosition
	if start == (Vec3{}) {
		start = cc.DefaultPosition
	}
	return []camera.CameraControllerOption{
		camera.WithBounds(cc.MinDistance, cc.MaxDistance),
		camera.WithDefaultPose(cc.DefaultPosition.Vec(), cc.DefaultLookAt.Vec()),
		camera.WithPosition(start[0], start[1], start[2]),
		camera.WithStandoff(cc.Standoff, cc.Lift),
		camera.WithTransitionDuration(cc.TransitionDuration),
		camera.WithEasing(easing),
		camera.WithPermissions(camera.Permissions{
			Rotate: cc.Permissions.Rotate,
			Pan:    cc.Permissions.Pan,
			Zoom:   cc.Permissions.Zoom,
		}),
		camera.WithZoomSpeed(cc.ZoomSpeed),
		camera.WithPanSpeed(cc.PanSpeed),
		camera.WithLogger(log),
	}
}

// Apply pushes the settings that may change at runtime onto a live controller:
// the distance bounds and the transition duration. Must run on the frame loop.
//
// Parameters:
//   - ctrl: the controller to update
//
// Returns:
//   - error: camera.ErrInvalidBounds if the bounds are unusable
func (cc CameraConfig) Apply(ctrl camera.CameraController) error {
	if err := ctrl.SetBounds(camera.Bounds{Min: cc.MinDistance, Max: cc.MaxDistance}); err != nil {
		return err
	}
	ctrl.SetTransitionDuration(cc.TransitionDuration)
	return nil
}

// Prop builds the spinning prop described by pc.
func (pc PropConfig) Prop() game_object.GameObject {
	scale := pc.Scale
	if scale == (Vec3{}) {
		scale = Vec3{1, 1, 1}
	}
	return game_object.NewGameObject(
		game_object.WithName(pc.Name),
		game_object.WithPosition(pc.Position[0], pc.Position[1], pc.Position[2]),
		game_object.WithRotation(pc.Rotation[0], pc.Rotation[1], pc.Rotation[2]),
		game_object.WithScale(scale[0], scale[1], scale[2]),
		game_object.WithRotationSpeed(pc.RotationSpeed[0], pc.RotationSpeed[1], pc.RotationSpeed[2]),
	)
}

// BuildScene assembles the portfolio scene: controller, targets (the screen first, then the
// projects in file order), camera, floating screen and props.
//
// Parameters:
//   - log: parent logger handed to the controller and scene
//
// Returns:
//   - scene.Scene: the active scene
//   - error: an ErrInvalid error if the configuration does not validate
func (c *Config) BuildScene(log zerolog.Logger) (scene.Scene, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ctrl := camera.NewCameraController(c.Camera.ControllerOptions(log)...)

	var sceneOptions []scene.SceneBuilderOption
	if c.Screen.Enabled {
		t, err := c.Screen.Target()
		if err != nil {
			return nil, err
		}
		ctrl.RegisterTarget(t)
		if len(c.Screen.Frames) > 0 {
			screenLog := log.With().Str("component", "screen").Logger()
			fc := screen.NewFrameCycler(c.Screen.Frames,
				screen.WithInterval(c.Screen.Interval),
				screen.WithOnChange(func(index int, frame string) {
					screenLog.Debug().Int("index", index).Str("frame", frame).Msg("screen frame advanced")
				}),
			)
			sceneOptions = append(sceneOptions, scene.WithScreen(fc, t.ID()))
		}
	}
	for _, p := range c.Projects {
		t, err := p.Target()
		if err != nil {
			return nil, err
		}
		ctrl.RegisterTarget(t)
	}

	props := make([]game_object.GameObject, 0, len(c.Props))
	for _, p := range c.Props {
		props = append(props, p.Prop())
	}

	aspect := float32(1)
	if c.Window.Height > 0 {
		aspect = float32(c.Window.Width) / float32(c.Window.Height)
	}
	cam := camera.NewCamera(
		camera.WithFov(c.Camera.Fov*math.Pi/180),
		camera.WithAspect(aspect),
		camera.WithClipPlanes(c.Camera.Near, c.Camera.Far),
		camera.WithController(ctrl),
	)

	sceneOptions = append(sceneOptions,
		scene.WithActive(true),
		scene.WithProps(props...),
		scene.WithLogger(log),
	)
	return scene.NewScene(SceneName, cam, sceneOptions...), nil
}
