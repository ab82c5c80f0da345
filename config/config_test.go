package config

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/camera"
	"github.com/Carmen-Shannon/oxy-folio/engine/target"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oxy-folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, float32(0.5), cfg.Camera.MinDistance)
	assert.Equal(t, float32(4.5), cfg.Camera.MaxDistance)
	assert.Equal(t, Vec3{0, 2, 4}, cfg.Camera.DefaultPosition)
	assert.Len(t, cfg.Projects, 4)
	assert.Equal(t, "project-1", cfg.Projects[0].ID)
	assert.Equal(t, "./assets/project4.png", cfg.Projects[3].Image)
	assert.InDelta(t, -math.Pi/2, cfg.Projects[2].Yaw, 1e-6)
	assert.Len(t, cfg.Screen.Frames, 5)
	assert.Equal(t, "./assets/frame5.png", cfg.Screen.Frames[4])
}

func TestAssetPaths(t *testing.T) {
	cfg := DefaultConfig()
	paths := cfg.AssetPaths()
	require.Len(t, paths, 9)
	assert.Equal(t, "./assets/project1.png", paths[0])
	assert.Equal(t, "./assets/frame1.png", paths[4])

	cfg.Screen.Enabled = false
	assert.Len(t, cfg.AssetPaths(), 4)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
camera:
  min_distance: 1
  max_distance: 6
  easing: linear
projects:
  - id: about
    position: [1, 2, 3]
    collider:
      shape: sphere
      radius: 0.5
server:
  addr: "127.0.0.1:9000"
  write_timeout: 250ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, float32(1), cfg.Camera.MinDistance)
	assert.Equal(t, float32(6), cfg.Camera.MaxDistance)
	assert.Equal(t, "linear", cfg.Camera.Easing)
	// untouched keys keep their defaults
	assert.Equal(t, float32(0.8), cfg.Camera.Standoff)
	assert.Len(t, cfg.Screen.Frames, 5)

	require.Len(t, cfg.Projects, 1, "a projects list replaces the default list")
	assert.Equal(t, "about", cfg.Projects[0].ID)
	assert.Equal(t, Vec3{1, 2, 3}, cfg.Projects[0].Position)
	assert.Equal(t, "sphere", cfg.Projects[0].Collider.Shape)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.WriteTimeout)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":7000\"\n")
	t.Setenv("OXYFOLIO_SERVER_ADDR", ":9999")
	t.Setenv("OXYFOLIO_ENGINE_TICK_RATE", "30")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, float64(30), cfg.Engine.TickRate)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidBounds(t *testing.T) {
	path := writeConfig(t, "camera:\n  min_distance: 5\n  max_distance: 1\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
	assert.Contains(t, err.Error(), "0 < min < max")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.Easing = "bouncy"
	cfg.Projects = append(cfg.Projects,
		TargetConfig{ID: "project-1", Collider: ColliderConfig{Shape: "quad", Width: 1, Height: 1}},
		TargetConfig{ID: "odd", Collider: ColliderConfig{Shape: "cone"}},
		TargetConfig{ID: "screen", Collider: ColliderConfig{Shape: "sphere", Radius: 1}},
	)
	cfg.Server.Workers = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	msg := err.Error()
	assert.Contains(t, msg, `camera.easing "bouncy"`)
	assert.Contains(t, msg, `"project-1" is duplicated`)
	assert.Contains(t, msg, `"screen" is duplicated`)
	assert.Contains(t, msg, `shape "cone"`)
	assert.Contains(t, msg, "server.workers")
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, DefaultConfig()))
	assert.Contains(t, buf.String(), "min_distance: 0.5")
	assert.Contains(t, buf.String(), "write_timeout: 5s")

	path := writeConfig(t, buf.String())
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestColliderShapes(t *testing.T) {
	c, err := ColliderConfig{Width: 2, Height: 1}.Collider()
	require.NoError(t, err)
	assert.Equal(t, target.NewQuad(2, 1), c)

	c, err = ColliderConfig{Shape: "sphere", Radius: 0.3}.Collider()
	require.NoError(t, err)
	assert.Equal(t, target.Sphere{Radius: 0.3}, c)

	c, err = ColliderConfig{Shape: "box", HalfExtents: Vec3{1, 2, 3}}.Collider()
	require.NoError(t, err)
	assert.Equal(t, target.Box{HalfExtents: mgl32.Vec3{1, 2, 3}}, c)

	_, err = ColliderConfig{Shape: "box", HalfExtents: Vec3{1, 0, 3}}.Collider()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestTargetDefaultsNameToID(t *testing.T) {
	tgt, err := TargetConfig{ID: "p", Collider: ColliderConfig{Width: 1, Height: 1}}.Target()
	require.NoError(t, err)
	assert.Equal(t, "p", tgt.Name())

	_, err = TargetConfig{}.Target()
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestBuildSceneFromDefaults(t *testing.T) {
	s, err := DefaultConfig().BuildScene(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, SceneName, s.Name())
	assert.True(t, s.Active())
	assert.Equal(t, "screen", s.ScreenTargetID())
	assert.Equal(t, 1, s.Count())

	ids := []string{}
	for _, tgt := range s.Controller().Targets() {
		ids = append(ids, tgt.ID())
	}
	assert.Equal(t, []string{"screen", "project-1", "project-2", "project-3", "project-4"}, ids)

	// the camera starts far outside the bounds and is pulled in on the first frame
	s.Update(0)
	snap := s.Snapshot()
	assert.InDelta(t, 4.5, snap.Position.Len(), 1e-4)
	assert.InDelta(t, snap.Position[0], snap.Position[1], 1e-4)
	assert.InDelta(t, snap.Position[1], snap.Position[2], 1e-4)

	require.NoError(t, s.Focus("project-1"))
	for i := 0; i < 120; i++ {
		s.Update(1.0 / 60)
	}
	snap = s.Snapshot()
	assert.InDelta(t, -2.3, snap.Position[0], 1e-3)
	assert.InDelta(t, 2.3, snap.Position[1], 1e-3)
	assert.InDelta(t, 0, snap.Position[2], 1e-3)
}

func TestBuildSceneLogsScreenFrames(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	s, err := DefaultConfig().BuildScene(log)
	require.NoError(t, err)

	s.Update(1.0)
	assert.Contains(t, buf.String(), `"component":"screen"`)
	assert.Contains(t, buf.String(), `"frame":"./assets/frame2.png"`)
	assert.Contains(t, buf.String(), "screen frame advanced")
}

func TestBuildSceneWithoutScreen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Screen.Enabled = false

	s, err := cfg.BuildScene(zerolog.Nop())
	require.NoError(t, err)
	assert.Nil(t, s.Screen())
	assert.Len(t, s.Controller().Targets(), 4)
}

func TestBuildSceneRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Camera.MaxDistance = 0.1

	_, err := cfg.BuildScene(zerolog.Nop())
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestApplyUpdatesLiveController(t *testing.T) {
	ctrl := camera.NewCameraController()
	cam := DefaultConfig().Camera
	cam.MinDistance = 1
	cam.MaxDistance = 3
	cam.TransitionDuration = 0

	require.NoError(t, cam.Apply(ctrl))
	assert.Equal(t, camera.Bounds{Min: 1, Max: 3}, ctrl.Bounds())

	cam.MinDistance = 4
	assert.ErrorIs(t, cam.Apply(ctrl), camera.ErrInvalidBounds)
	assert.Equal(t, camera.Bounds{Min: 1, Max: 3}, ctrl.Bounds())
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, "camera:\n  max_distance: 5\n")
	loader := NewLoader(path)
	_, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, path, loader.ConfigFileUsed())

	changes := make(chan *Config, 16)
	loader.Watch(func(cfg *Config, err error) {
		if err == nil {
			changes <- cfg
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("camera:\n  max_distance: 7\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Camera.MaxDistance == 7 {
				return
			}
		case <-deadline:
			t.Fatal("config change was not observed")
		}
	}
}
