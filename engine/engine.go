package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-folio/engine/profiler"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/rs/zerolog"
)

// ErrStopped is returned when work is submitted to an engine that has quit.
var ErrStopped = errors.New("engine: stopped")

// task is one unit of queued work; done is nil for fire-and-forget submissions.
type task struct {
	fn   func()
	done chan error
}

// engine implements the Engine interface.
// One loop goroutine owns every scene; other goroutines reach scenes through Submit and Call.
type engine struct {
	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates
	taskChannel     chan task

	running atomic.Bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	engineTickRate atomic.Int64 // ticker period in nanoseconds
	tickCallback   func(deltaTime float32)
	queueSize      int

	scenesMu *sync.RWMutex
	scenes   map[int]scene.Scene

	frame atomic.Uint64
	log   zerolog.Logger
}

// Engine drives the frame loop: queued input first, then every active scene's Update, once per tick.
type Engine interface {
	// Window returns the attached window, or nil when running headless.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables periodic frame statistics in the log.
	EnableProfiler()

	// DisableProfiler disables periodic frame statistics.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called after scenes update each tick.
	// It runs on the loop goroutine.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// AddScene registers a scene at the given z-index key.
	// Scenes are updated in ascending key order.
	//
	// Parameters:
	//   - key: the z-index determining update order (lower runs first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Submit queues fn to run on the loop goroutine before the next scene update.
	//
	// Parameters:
	//   - ctx: bounds how long to wait for queue space
	//   - fn: the work to run
	//
	// Returns:
	//   - error: ErrStopped after Quit, or ctx.Err() if the context ends first
	Submit(ctx context.Context, fn func()) error

	// Call queues fn like Submit and waits until it has run.
	// A panic inside fn is recovered and returned as an error.
	//
	// Parameters:
	//   - ctx: bounds the whole wait
	//   - fn: the work to run
	//
	// Returns:
	//   - error: ErrStopped, ctx.Err(), or the recovered panic
	Call(ctx context.Context, fn func()) error

	// Step runs one frame synchronously: queued work, scene updates, the tick callback and the profiler.
	// Only the loop goroutine may call Step while the engine is running; tests call it directly instead of Run.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous frame
	Step(deltaTime float32)

	// Frame returns the number of completed steps.
	Frame() uint64

	// Run starts the loop. With a window attached it pumps window messages on the calling
	// thread until the window closes; otherwise it blocks until Quit.
	Run()

	// Quit stops the loop. Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done returns a channel closed once Quit has been called.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		scenesMu:        &sync.RWMutex{},
		scenes:          make(map[int]scene.Scene),
		queueSize:       256,
		log:             zerolog.Nop(),
	}
	e.engineTickRate.Store(int64(time.Second / 60))

	for _, opt := range options {
		opt(e)
	}

	e.taskChannel = make(chan task, e.queueSize)
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(e.log)
	}

	if e.window != nil {
		// the window is closed from its own message pump once Quit is called
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				if e.window.IsRunning() {
					_ = e.window.Close()
				}
			default:
			}
		})
		e.window.SetResizeCallback(func(width, height int) {
			_ = e.Submit(context.Background(), func() {
				for _, s := range e.orderedScenes() {
					s.Resize(width, height)
				}
			})
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Run() {
	if !e.running.CompareAndSwap(false, true) {
		return
	}
	e.log.Info().Dur("tick", e.tickRate()).Bool("windowed", e.window != nil).Msg("engine started")

	e.wg.Add(1)
	go e.handleEngine()

	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	} else {
		<-e.quitChannel
	}

	e.wg.Wait()
	e.running.Store(false)
	e.log.Info().Uint64("frames", e.frame.Load()).Msg("engine stopped")
}

// Quit signals the loop goroutine to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// handleEngine runs the fixed-rate tick loop in its own goroutine.
// Listens for dynamic rate changes via tickRateChannel and exits when the quit channel is closed.
// A panic escaping a scene update is logged and stops the engine.
func (e *engine) handleEngine() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Interface("panic", r).Msg("engine loop recovered from panic")
			e.signalQuit()
		}
	}()

	ticker := time.NewTicker(e.tickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Step(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
		}
	}
}

func (e *engine) Step(deltaTime float32) {
	e.drainTasks()

	for _, s := range e.orderedScenes() {
		if s.Active() {
			s.Update(deltaTime)
		}
	}

	if e.tickCallback != nil {
		e.tickCallback(deltaTime)
	}

	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
	e.frame.Add(1)
}

func (e *engine) Frame() uint64 {
	return e.frame.Load()
}

// drainTasks runs every task queued before the call. Tasks queued by a running task wait for the next frame.
func (e *engine) drainTasks() {
	for n := len(e.taskChannel); n > 0; n-- {
		t := <-e.taskChannel
		err := e.runTask(t.fn)
		if t.done != nil {
			t.done <- err
		}
	}
}

// runTask runs fn, converting a panic into an error so one bad command cannot stop the loop.
func (e *engine) runTask(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("engine: task panicked: %v", r)
			e.log.Error().Err(err).Msg("queued task failed")
		}
	}()
	fn()
	return nil
}

func (e *engine) Submit(ctx context.Context, fn func()) error {
	return e.enqueue(ctx, task{fn: fn})
}

func (e *engine) Call(ctx context.Context, fn func()) error {
	done := make(chan error, 1)
	if err := e.enqueue(ctx, task{fn: fn, done: done}); err != nil {
		return err
	}
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-e.quitChannel:
		return ErrStopped
	}
}

func (e *engine) enqueue(ctx context.Context, t task) error {
	if t.fn == nil {
		panic("engine: cannot queue a nil func")
	}
	select {
	case <-e.quitChannel:
		return ErrStopped
	default:
	}
	select {
	case e.taskChannel <- t:
		return nil
	case <-e.quitChannel:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// orderedScenes returns the registered scenes in ascending z-index order.
func (e *engine) orderedScenes() []scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	out := make([]scene.Scene, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.scenes[k])
	}
	return out
}

// EnableProfiler enables periodic frame statistics in the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

// DisableProfiler disables periodic frame statistics.
func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

// SetTickRate sets the engine tick rate in frames per second.
// The rate is stored before the running check, so a loop starting concurrently picks it up
// either from the stored value or from the channel.
func (e *engine) SetTickRate(fps float64) {
	newRate := tickInterval(fps)
	e.engineTickRate.Store(int64(newRate))

	if !e.running.Load() {
		return
	}

	// Non-blocking send; a pending update is replaced by the newer one
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		select {
		case e.tickRateChannel <- newRate:
		default:
		}
	}
}

// tickRate returns the current ticker period.
func (e *engine) tickRate() time.Duration {
	return time.Duration(e.engineTickRate.Load())
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	e.scenesMu.Lock()
	defer e.scenesMu.Unlock()
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	e.scenesMu.RLock()
	defer e.scenesMu.RUnlock()
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a rate in frames per second to a ticker period, defaulting to 60 Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}
