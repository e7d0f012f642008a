package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/profiler"
	"github.com/Carmen-Shannon/oxy-sandbox/engine/scene"
)

// ErrAlreadyRunning is returned by Run when the loop has already been started.
var ErrAlreadyRunning = errors.New("engine: render loop already started")

// LoopState is the lifecycle state of the render loop.
type LoopState int32

const (
	LoopIdle LoopState = iota
	LoopRunning
	LoopStopped
)

func (s LoopState) String() string {
	switch s {
	case LoopIdle:
		return "idle"
	case LoopRunning:
		return "running"
	case LoopStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Renderer draws a scene to a surface.
type Renderer interface {
	// Resize reconfigures the drawing surface.
	Resize(width, height int)

	// Render draws one frame of the scene.
	Render(s scene.Scene) error
}

// engine implements the Engine interface.
// One goroutine runs the loop and owns every scene mutation; other goroutines hand work over through Post.
type engine struct {
	state atomic.Int32

	scene    scene.Scene
	renderer Renderer
	frames   FrameSource
	fps      float64

	queueMu sync.Mutex
	queue   []func()

	quitChannel chan struct{}
	quitOnce    sync.Once

	frameCallback func(deltaTime float32)

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	logger       *slog.Logger
	frameCount   atomic.Uint64
	renderErrors atomic.Uint64
}

// Engine runs the per-frame render loop over a single scene.
type Engine interface {
	// Scene returns the scene the loop draws.
	Scene() scene.Scene

	// State returns the loop's lifecycle state.
	State() LoopState

	// Run drives the render loop until ctx is cancelled or Quit is called. It blocks, so callers that need the
	// main thread for window events run it on its own goroutine.
	// Each frame drains posted work, applies loaded textures, advances the camera controller, refreshes the
	// camera and draws the scene, then calls the frame callback.
	//
	// Parameters:
	//   - ctx: cancelling the context stops the loop
	//
	// Returns:
	//   - error: ErrAlreadyRunning if the loop was started before, or an error wrapping a recovered panic
	Run(ctx context.Context) error

	// Quit stops the loop after the current frame.
	// Safe to call multiple times and from any goroutine.
	Quit()

	// Post queues fn to run on the loop goroutine at the start of the next frame.
	// Functions run in the order they were posted. Safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the work to run; nil is ignored
	Post(fn func())

	// Resize queues a surface resize. The renderer surface, the camera aspect ratio and the controller's
	// viewport height are updated at the start of the next frame; nothing else changes.
	// Zero or negative sizes, as reported for a minimised window, are ignored.
	//
	// Parameters:
	//   - width: the new surface width in pixels
	//   - height: the new surface height in pixels
	Resize(width, height int)

	// SetFrameCallback registers the function called at the end of each frame.
	//
	// Parameters:
	//   - callback: receives the frame delta time in seconds
	SetFrameCallback(callback func(deltaTime float32))

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Frames returns the number of frames completed.
	Frames() uint64

	// RenderErrors returns the number of frames whose draw failed.
	RenderErrors() uint64
}

var _ Engine = &engine{}

// NewEngine creates a new Engine drawing s through r.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - s: the scene to draw
//   - r: the renderer; nil runs the loop without drawing
//   - options: functional options for engine configuration (profiling, frame source, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(s scene.Scene, r Renderer, options ...EngineBuilderOption) Engine {
	e := &engine{
		scene:       s,
		renderer:    r,
		fps:         60,
		quitChannel: make(chan struct{}),
		logger:      slog.Default(),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}
	return e
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) State() LoopState {
	return LoopState(e.state.Load())
}

func (e *engine) Run(ctx context.Context) (err error) {
	if !e.state.CompareAndSwap(int32(LoopIdle), int32(LoopRunning)) {
		return ErrAlreadyRunning
	}
	if e.frames == nil {
		e.frames = NewTickerFrameSource(e.fps)
	}
	defer func() {
		e.frames.Stop()
		e.state.Store(int32(LoopStopped))
		e.logger.Info("render loop stopped", "frames", e.frameCount.Load(), "render_errors", e.renderErrors.Load())
	}()
	// Recover from panics inside the loop so a bad frame tears down cleanly instead of crashing the process.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render loop recovered from panic", "panic", r, "stack", string(debug.Stack()))
			err = fmt.Errorf("engine: render loop panic: %v", r)
		}
	}()

	e.logger.Info("render loop started")
	var last time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.quitChannel:
			return nil
		case now, ok := <-e.frames.C():
			if !ok {
				return nil
			}
			var dt float32
			if !last.IsZero() {
				dt = float32(now.Sub(last).Seconds())
			}
			last = now
			e.frame(dt)
		}
	}
}

// frame runs one iteration of the loop. Order matters: posted work first so that everything queued before
// the frame signal is visible in what gets drawn.
func (e *engine) frame(dt float32) {
	e.drain()

	if n := e.scene.ApplyTextures(); n > 0 {
		e.logger.Debug("textures applied", "count", n)
	}

	if cam := e.scene.Camera(); cam != nil {
		if ctrl := cam.Controller(); ctrl != nil {
			ctrl.Update()
		}
		cam.Update()
	}

	if e.renderer != nil {
		if err := e.renderer.Render(e.scene); err != nil {
			e.renderErrors.Add(1)
			e.logger.Warn("frame render failed", "frame", e.frameCount.Load(), "error", err)
		}
	}

	if e.frameCallback != nil {
		e.frameCallback(dt)
	}
	if e.profilingEnabled.Load() {
		e.profiler.Tick()
	}
	e.frameCount.Add(1)
}

// drain runs queued work. Work posted while draining waits for the next frame.
func (e *engine) drain() {
	e.queueMu.Lock()
	work := e.queue
	e.queue = nil
	e.queueMu.Unlock()
	for _, fn := range work {
		fn()
	}
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.queueMu.Lock()
	e.queue = append(e.queue, fn)
	e.queueMu.Unlock()
}

func (e *engine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		e.logger.Debug("resize ignored", "width", width, "height", height)
		return
	}
	e.Post(func() {
		if e.renderer != nil {
			e.renderer.Resize(width, height)
		}
		if cam := e.scene.Camera(); cam != nil {
			cam.SetAspect(float32(width) / float32(height))
			if ctrl := cam.Controller(); ctrl != nil {
				ctrl.SetViewportHeight(float32(height))
			}
		}
	})
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32)) {
	e.Post(func() {
		e.frameCallback = callback
	})
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled.Store(true)
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled.Store(false)
}

func (e *engine) Frames() uint64 {
	return e.frameCount.Load()
}

func (e *engine) RenderErrors() uint64 {
	return e.renderErrors.Load()
}
