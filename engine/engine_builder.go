package engine

import (
	"github.com/Carmen-Shannon/oxy-folio/engine/profiler"
	"github.com/Carmen-Shannon/oxy-folio/engine/scene"
	"github.com/Carmen-Shannon/oxy-folio/engine/window"
	"github.com/rs/zerolog"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables periodic frame statistics.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled.Store(enabled)
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate.Store(int64(tickInterval(fps)))
	}
}

// WithWindow attaches a window whose message pump Run drives on the calling thread.
// Resize events are forwarded to every scene through the task queue.
//
// Parameters:
//   - w: a created Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
//
// Parameters:
//   - key: the z-index determining update order (lower runs first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithQueueSize sets how many submitted tasks may wait for the next frame before Submit blocks.
//
// Parameters:
//   - n: queue capacity (minimum 1)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithQueueSize(n int) EngineBuilderOption {
	return func(e *engine) {
		if n < 1 {
			n = 1
		}
		e.queueSize = n
	}
}

// WithLogger sets the engine logger. The profiler reports through it too.
//
// Parameters:
//   - log: the parent logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(log zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.log = log.With().Str("component", "engine").Logger()
		e.profiler = profiler.NewProfiler(log)
	}
}
