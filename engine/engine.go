package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-scene/engine/renderer"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/window"
)

// maxTicksPerFrame bounds catch-up ticks after a long frame.
const maxTicksPerFrame = 5

// engine implements the Engine interface.
// Game logic ticks and the begin/draw/end frame sequence run on the same goroutine, so scene
// mutations made in the tick callback always complete before the update pass reads them.
type engine struct {
	running     atomic.Bool
	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window   window.Window
	renderer renderer.Renderer
	viewport renderer.Viewport
	mu       *sync.Mutex
	scene    scene.Scene

	profilingEnabled bool

	engineTickRate atomic.Int64 // time.Duration between ticks
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
	maxFrames        int           // headless frame budget; 0 = until Quit

	frames      int
	accumulator time.Duration
	lastFrame   time.Time
}

// Engine is the main entry point for the engine.
// It owns the outer game loop: each frame runs the pending logic ticks, then drives the
// renderer through BeginFrame, DrawFrame and EndFrame exactly once each.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance, or nil when running headless
	Window() window.Window

	// Renderer returns the frame orchestrator.
	//
	// Returns:
	//   - renderer.Renderer: the renderer, or nil if none was configured
	Renderer() renderer.Renderer

	// Viewport returns the viewport the active camera is fed into.
	//
	// Returns:
	//   - renderer.Viewport: the viewport
	Viewport() renderer.Viewport

	// Scene returns the scene rendered each frame.
	//
	// Returns:
	//   - scene.Scene: the current scene, or nil
	Scene() scene.Scene

	// SetScene replaces the scene rendered each frame. Takes effect on the next frame.
	//
	// Parameters:
	//   - s: the Scene to render
	SetScene(s scene.Scene)

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic, physics, input processing, and scene mutation.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the tick length in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the frame delta in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Frames returns how many frames the loop has run.
	//
	// Returns:
	//   - int: the frame count
	Frames() int

	// Run starts the main loop on the calling goroutine. With a window it blocks until the
	// window closes; headless it blocks until Quit or the frame budget is spent.
	Run()

	// Quit signals the loop to stop after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// A viewport matching the window size (or 800x600 headless) is created when none is given.
//
// Parameters:
//   - options: functional options for engine configuration (renderer, scene, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		mu:          &sync.Mutex{},
	}
	e.engineTickRate.Store(int64(time.Second / 60))

	for _, opt := range options {
		opt(e)
	}

	if e.viewport == nil {
		width, height := 800, 600
		if e.window != nil {
			width, height = e.window.Width(), e.window.Height()
		}
		e.viewport = renderer.NewViewport(width, height)
	}
	if e.renderer != nil {
		e.renderer.Profiler().SetLogging(e.profilingEnabled)
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			e.viewport.Resize(width, height)
			if e.renderer != nil {
				e.renderer.Backend().Resize(width, height)
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Viewport() renderer.Viewport {
	return e.viewport
}

func (e *engine) Scene() scene.Scene {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.scene
}

func (e *engine) SetScene(s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scene = s
}

func (e *engine) Run() {
	e.running.Store(true)
	e.lastFrame = time.Now()
	// the first frame always ticks so game logic can place objects before they are drawn
	e.accumulator = time.Duration(e.engineTickRate.Load())

	if e.window != nil {
		e.window.SetUpdateCallback(func() {
			if !e.frame() {
				e.window.Close()
			}
		})
		e.window.ProcessMessages()
		e.signalQuit()
		return
	}

	for e.frame() {
	}
}

// Quit signals the loop to stop after the current frame.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal the loop to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running.Store(false)
		close(e.quitChannel)
	})
}

// frame runs the due logic ticks and one render frame.
//
// Returns:
//   - bool: false once the loop should stop
func (e *engine) frame() bool {
	select {
	case <-e.quitChannel:
		return false
	default:
	}

	now := time.Now()
	dt := now.Sub(e.lastFrame)
	e.lastFrame = now

	tickRate := time.Duration(e.engineTickRate.Load())
	e.accumulator += dt
	for ticks := 0; e.accumulator >= tickRate; ticks++ {
		if ticks == maxTicksPerFrame {
			e.accumulator = 0
			break
		}
		if e.tickCallback != nil {
			e.tickCallback(float32(tickRate.Seconds()))
		}
		e.accumulator -= tickRate
	}

	e.render()
	e.frames++

	if e.renderCallback != nil {
		e.renderCallback(float32(dt.Seconds()))
	}

	// Frame rate limiting
	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - time.Since(now); remaining > 0 {
			time.Sleep(remaining)
		}
	}

	if e.maxFrames > 0 && e.frames >= e.maxFrames {
		e.signalQuit()
	}
	return e.running.Load()
}

// render drives one begin/draw/end sequence. Errors are logged and the frame skipped.
func (e *engine) render() {
	s := e.Scene()
	if e.renderer == nil || s == nil {
		return
	}

	if err := e.renderer.BeginFrame(e.viewport, s); err != nil {
		log.Printf("[Engine] frame %d skipped: %v", e.frames, err)
		return
	}
	if err := e.renderer.DrawFrame(e.viewport, s); err != nil {
		log.Printf("[Engine] frame %d skipped: %v", e.frames, err)
		return
	}
	if err := e.renderer.EndFrame(e.viewport); err != nil {
		log.Printf("[Engine] frame %d: %v", e.frames, err)
	}
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
	if e.renderer != nil {
		e.renderer.Profiler().SetLogging(true)
	}
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
	if e.renderer != nil {
		e.renderer.Profiler().SetLogging(false)
	}
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect on the next frame.
func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate.Store(int64(tickInterval(fps)))
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

func (e *engine) Frames() int {
	return e.frames
}

func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
