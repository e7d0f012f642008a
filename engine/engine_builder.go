package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
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

// WithProfiler sets the profiler ticked each frame while profiling is enabled.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithFPS sets the frame rate of the default ticker frame source.
// Values <= 0 will be treated as the default (60Hz). Ignored when WithFrameSource is used.
//
// Parameters:
//   - fps: target frames per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFPS(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60
		}
		e.fps = fps
	}
}

// WithFrameSource replaces the ticker that paces the loop, for example with a ManualFrameSource.
//
// Parameters:
//   - fs: the frame source
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameSource(fs FrameSource) EngineBuilderOption {
	return func(e *engine) {
		e.frames = fs
	}
}

// WithFrameCallback registers the function called at the end of each frame.
//
// Parameters:
//   - callback: receives the frame delta time in seconds
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameCallback(callback func(deltaTime float32)) EngineBuilderOption {
	return func(e *engine) {
		e.frameCallback = callback
	}
}

// WithLogger sets the engine's logger.
//
// Parameters:
//   - logger: the structured logger
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *slog.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
