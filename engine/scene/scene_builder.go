package scene

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/screen"
	"github.com/rs/zerolog"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is updated by the engine.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithProps adds initial props to the scene.
// Props without IDs will be assigned new IDs.
//
// Parameters:
//   - objects: the props to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProps(objects ...game_object.GameObject) SceneBuilderOption {
	return func(s *scene) {
		for _, obj := range objects {
			s.AddProp(obj)
		}
	}
}

// WithScreen attaches a floating screen. Clicking or focusing targetID stops the cycler.
// targetID must already be registered on the camera's controller.
//
// Parameters:
//   - fc: the screen's frame cycler
//   - targetID: the target representing the screen
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithScreen(fc screen.FrameCycler, targetID string) SceneBuilderOption {
	return func(s *scene) {
		s.screen = fc
		s.screenTargetID = targetID
	}
}

// WithLogger sets the logger used for click and focus events.
//
// Parameters:
//   - log: the parent logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(log zerolog.Logger) SceneBuilderOption {
	return func(s *scene) {
		s.log = log.With().Str("component", "scene").Logger()
	}
}
