package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-folio/common"
	"github.com/Carmen-Shannon/oxy-folio/config"
	"github.com/Carmen-Shannon/oxy-folio/engine"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCommandPrintsEffectiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("camera:\n  max_distance: 6\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "--config", path, "--log-level", "warn"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "max_distance: 6")
	assert.Contains(t, out.String(), "level: warn")
}

func TestConfigCommandRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oxy-folio.yaml")
	require.NoError(t, os.WriteFile(path, []byte("camera:\n  min_distance: 9\n"), 0o644))

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "--config", path})
	err := cmd.Execute()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

// inputWindow records the callbacks bindInput installs.
type inputWindow struct {
	onScroll  func(delta float32)
	onKeyDown func(keyCode uint32)
	onClick   func(x, y float32)
	onDrag    func(button window.MouseButton, dx, dy float32)
}

var _ window.Window = &inputWindow{}

func (w *inputWindow) SetUpdateCallback(func()) {}
func (w *inputWindow) SetResizeCallback(func(width, height int)) {}
func (w *inputWindow) SetScrollCallback(cb func(delta float32)) { w.onScroll = cb }
func (w *inputWindow) SetKeyDownCallback(cb func(keyCode uint32)) { w.onKeyDown = cb }
func (w *inputWindow) SetKeyUpCallback(func(keyCode uint32)) {}
func (w *inputWindow) SetClickCallback(cb func(x, y float32)) { w.onClick = cb }
func (w *inputWindow) SetMouseMoveCallback(func(x, y float32)) {}
func (w *inputWindow) IsRunning() bool { return true }
func (w *inputWindow) Close() error { return nil }
func (w *inputWindow) ProcessMessages() {}
func (w *inputWindow) Width() int { return 1280 }
func (w *inputWindow) Height() int { return 720 }
func (w *inputWindow) SetDragCallback(cb func(button window.MouseButton, dx, dy float32)) {
	w.onDrag = cb
}

func newInputStack(t *testing.T) (*stack, *inputWindow) {
	t.Helper()
	a := &app{cfg: config.DefaultConfig(), log: zerolog.Nop()}
	a.cfg.Camera.StartPosition = a.cfg.Camera.DefaultPosition

	sc, err := a.cfg.BuildScene(a.log)
	require.NoError(t, err)
	st := &stack{eng: engine.NewEngine(engine.WithScene(sceneKey, sc)), scene: sc}

	win := &inputWindow{}
	a.bindInput(st, win)
	return st, win
}

func TestDigitKeyFocusesTargetByIndex(t *testing.T) {
	st, win := newInputStack(t)

	win.onKeyDown(common.Key1 + 1)
	st.eng.Step(2)

	snap := st.scene.Snapshot()
	assert.Equal(t, "focused", snap.Mode)
	assert.Equal(t, "project-1", snap.FocusedID)

	win.onKeyDown(common.KeyBack)
	st.eng.Step(2)
	assert.Equal(t, "free", st.scene.Snapshot().Mode)

	// out of range digits are ignored
	win.onKeyDown(common.Key9)
	st.eng.Step(0)
	assert.Equal(t, "free", st.scene.Snapshot().Mode)
}

func TestScrollAndDragMoveCamera(t *testing.T) {
	st, win := newInputStack(t)
	st.eng.Step(0)
	start := st.scene.Snapshot().Position

	win.onScroll(2)
	st.eng.Step(0)
	zoomed := st.scene.Snapshot().Position
	assert.Less(t, zoomed.Len(), start.Len())

	win.onDrag(window.MouseLeft, 40, 0)
	st.eng.Step(0)
	orbited := st.scene.Snapshot().Position
	assert.InDelta(t, zoomed.Len(), orbited.Len(), 1e-3)
	assert.NotEqual(t, zoomed, orbited)

	// panning starts disabled
	win.onDrag(window.MouseRight, 40, 0)
	st.eng.Step(0)
	assert.Equal(t, orbited, st.scene.Snapshot().Position)
}

func TestEscapeQuits(t *testing.T) {
	st, win := newInputStack(t)

	win.onKeyDown(common.KeyEsc)
	select {
	case <-st.eng.Done():
	default:
		t.Fatal("engine did not quit")
	}
}

func TestClickOutsideTargetsKeepsFreeMode(t *testing.T) {
	st, win := newInputStack(t)
	st.eng.Step(0)

	// the top-left corner looks above every target
	win.onClick(0, 0)
	st.eng.Step(0)
	assert.Equal(t, "free", st.scene.Snapshot().Mode)
}
