package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/game_object"
	"github.com/Carmen-Shannon/oxy-folio/engine/screen"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
)

// ErrUnknownTarget is returned by Focus when no target with the given ID is registered.
var ErrUnknownTarget = errors.New("scene: unknown target")

// Scene ties a camera and its interaction controller to the props and floating screen of one view.
// Update, Click, ClickPixel, Back, Focus and the prop registry belong to the frame loop goroutine.
// Name, Active and Snapshot are safe to call from any goroutine.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is updated by the engine.
	Active() bool

	// SetActive sets whether this scene is updated by the engine.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the camera's interaction controller.
	Controller() camera.CameraController

	// Screen returns the floating screen's frame cycler, or nil.
	Screen() screen.FrameCycler

	// ScreenTargetID returns the ID of the target that represents the floating screen, or "".
	ScreenTargetID() string

	// AddProp adds a prop to the scene. A prop with ID 0 is assigned the next free ID.
	//
	// Parameters:
	//   - obj: the prop to add
	//
	// Returns:
	//   - uint64: the prop's ID
	AddProp(obj game_object.GameObject) uint64

	// Get retrieves a prop by ID. Returns nil if not found.
	//
	// Parameters:
	//   - id: the prop ID
	//
	// Returns:
	//   - game_object.GameObject: the prop or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a prop by ID.
	//
	// Parameters:
	//   - id: the prop ID
	Remove(id uint64)

	// Count returns the number of props.
	Count() int

	// Update advances one frame: props, the screen, controller transitions, bounds enforcement and
	// camera matrices, in that order, then publishes a Snapshot.
	//
	// Parameters:
	//   - deltaTime: elapsed seconds since the last frame
	Update(deltaTime float32)

	// Click resolves a world-space ray against the registered targets and focuses the first hit.
	// Clicking the screen target also stops its frame cycler.
	//
	// Parameters:
	//   - origin: ray origin
	//   - direction: ray direction, any length
	//
	// Returns:
	//   - string: the hit target's ID
	//   - bool: true if a target was hit
	Click(origin, direction mgl32.Vec3) (string, bool)

	// ClickPixel converts a pointer position to a pick ray through the camera and calls Click.
	//
	// Parameters:
	//   - x, y: pointer position in pixels, origin top-left
	//   - width, height: viewport size in pixels
	//
	// Returns:
	//   - string: the hit target's ID
	//   - bool: true if a target was hit
	ClickPixel(x, y float32, width, height int) (string, bool)

	// Back returns the camera to the default pose and unlocks all interaction.
	Back()

	// Focus flies the camera to the target with the given ID.
	//
	// Parameters:
	//   - id: a registered target ID
	//
	// Returns:
	//   - error: ErrUnknownTarget if the ID is not registered
	Focus(id string) error

	// Resize updates the camera aspect ratio for a new viewport. Zero sizes are ignored.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	Resize(width, height int)

	// Layout describes the scene's bounds and targets.
	Layout() Layout

	// Snapshot returns the state published by the most recent Update.
	Snapshot() Snapshot
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	cam  camera.Camera
	ctrl camera.CameraController

	screen         screen.FrameCycler
	screenTargetID string

	props  []game_object.GameObject
	nextID uint64

	frame    uint64
	snapshot Snapshot

	log zerolog.Logger
}

var _ Scene = &scene{}

// NewScene creates a new Scene around a camera. The camera must have a controller attached;
// the targets it already knows are the scene's pickable set.
// Panics if cam or its controller is nil, or if a screen target ID is given that the controller
// does not know.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil and must carry a controller)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}
	ctrl := cam.Controller()
	if ctrl == nil {
		panic("scene: NewScene requires a Camera with a controller attached")
	}

	s := &scene{
		mu:     &sync.RWMutex{},
		name:   name,
		cam:    cam,
		ctrl:   ctrl,
		nextID: 1,
		log:    zerolog.Nop(),
	}
	for _, option := range options {
		option(s)
	}

	if s.screenTargetID != "" {
		if _, ok := ctrl.LookupTarget(s.screenTargetID); !ok {
			panic(fmt.Sprintf("scene: screen target %q is not registered", s.screenTargetID))
		}
	}

	s.publish()
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Controller() camera.CameraController {
	return s.ctrl
}

func (s *scene) Screen() screen.FrameCycler {
	return s.screen
}

func (s *scene) ScreenTargetID() string {
	return s.screenTargetID
}

func (s *scene) AddProp(obj game_object.GameObject) uint64 {
	if obj == nil {
		panic("scene: AddProp requires a non-nil GameObject")
	}
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
	}
	if obj.ID() >= s.nextID {
		s.nextID = obj.ID() + 1
	}
	s.props = append(s.props, obj)
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	for _, p := range s.props {
		if p.ID() == id {
			return p
		}
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	for i, p := range s.props {
		if p.ID() == id {
			s.props = append(s.props[:i], s.props[i+1:]...)
			return
		}
	}
}

func (s *scene) Count() int {
	return len(s.props)
}

func (s *scene) Update(deltaTime float32) {
	for _, p := range s.props {
		p.Update(deltaTime)
	}
	if s.screen != nil {
		s.screen.Tick(deltaTime)
	}

	s.ctrl.Tick(deltaTime)
	s.ctrl.EnforceBounds()
	s.cam.Update()

	s.frame++
	s.publish()
}

func (s *scene) Click(origin, direction mgl32.Vec3) (string, bool) {
	hit, ok := s.ctrl.ResolveClick(origin, direction)
	if !ok {
		s.log.Debug().Msg("click missed")
		return "", false
	}

	if hit.ID() == s.screenTargetID && s.screen != nil && !s.screen.Stopped() {
		s.screen.Stop()
		s.log.Debug().Str("target", hit.ID()).Msg("screen frames stopped")
	}

	s.ctrl.FocusOn(hit)
	s.log.Info().Str("target", hit.ID()).Msg("focus")
	return hit.ID(), true
}

func (s *scene) ClickPixel(x, y float32, width, height int) (string, bool) {
	ray := s.cam.PickRay(x, y, width, height)
	if ray.Degenerate() {
		return "", false
	}
	return s.Click(ray.Origin, ray.Direction)
}

func (s *scene) Back() {
	s.ctrl.Reset()
	s.log.Info().Msg("back to overview")
}

func (s *scene) Focus(id string) error {
	t, ok := s.ctrl.LookupTarget(id)
	if !ok {
		return fmt.Errorf("focus %q: %w", id, ErrUnknownTarget)
	}
	if id == s.screenTargetID && s.screen != nil {
		s.screen.Stop()
	}
	s.ctrl.FocusOn(t)
	s.log.Info().Str("target", id).Msg("focus")
	return nil
}

func (s *scene) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.cam.SetAspect(float32(width) / float32(height))
}

func (s *scene) Layout() Layout {
	targets := s.ctrl.Targets()
	l := Layout{
		Scene:   s.Name(),
		Bounds:  s.ctrl.Bounds(),
		Targets: make([]TargetInfo, 0, len(targets)),
	}
	for _, t := range targets {
		l.Targets = append(l.Targets, TargetInfo{
			ID:       t.ID(),
			Name:     t.Name(),
			Position: t.Position(),
			Yaw:      t.Yaw(),
		})
	}
	return l
}

func (s *scene) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := s.snapshot
	if snap.Screen != nil {
		sc := *snap.Screen
		snap.Screen = &sc
	}
	snap.Props = append([]PropState(nil), snap.Props...)
	return snap
}

// publish captures the loop-owned state into a fresh Snapshot.
func (s *scene) publish() {
	snap := Snapshot{
		Frame:         s.frame,
		Position:      s.ctrl.Position(),
		LookAt:        s.ctrl.Target(),
		Mode:          s.ctrl.Mode().String(),
		FocusedID:     s.ctrl.FocusedID(),
		Permissions:   s.ctrl.Permissions(),
		Transitioning: s.ctrl.Transitioning(),
	}
	if s.screen != nil {
		idx, frame := s.screen.Current()
		snap.Screen = &ScreenState{
			TargetID: s.screenTargetID,
			Index:    idx,
			Frame:    frame,
			Stopped:  s.screen.Stopped(),
		}
	}
	for _, p := range s.props {
		if !p.Enabled() {
			continue
		}
		snap.Props = append(snap.Props, PropState{
			ID:       p.ID(),
			Name:     p.Name(),
			Position: p.Position(),
			Rotation: p.Rotation(),
			Matrix:   p.ModelMatrix(),
		})
	}

	s.mu.Lock()
	snap.Scene = s.name
	s.snapshot = snap
	s.mu.Unlock()
}
