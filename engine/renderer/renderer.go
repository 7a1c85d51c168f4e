package renderer

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/engine/game_object"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scene/engine/scene"
	"github.com/Carmen-Shannon/oxy-scene/engine/transform"
)

// ErrFrameOrder is returned when BeginFrame, DrawFrame and EndFrame are not called in sequence.
var ErrFrameOrder = errors.New("frame calls out of order")

// DefaultMaxLights is the number of directional lights published per frame when not overridden.
const DefaultMaxLights = light.MaxGPULights

type framePhase int

const (
	phaseIdle framePhase = iota
	phaseBegun
	phaseDrawn
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend   Backend
	validator transform.Validator
	profiler  *profiler.Profiler

	overlay      Overlay
	debugOverlay DebugOverlay

	slotCount int
	maxLights int

	updateWorkers int
	updatePool    worker.DynamicWorkerPool

	// Frame state. frameIdx is the active frame-buffer slot.
	phase    framePhase
	frameIdx int
	scene    scene.Scene
	stats    FrameStats
}

// Renderer is the per-frame orchestrator. An outer loop calls BeginFrame, DrawFrame and
// EndFrame once each, in that order, every frame.
//
// BeginFrame feeds the active camera into the viewport. DrawFrame advances the frame-buffer
// slot, refreshes dirty objects, then draws the visible ones that pass the frustum test.
// EndFrame runs the optional overlays and presents.
type Renderer interface {
	// BeginFrame pulls fov, near, far, eye, target and up from the scene's active camera into
	// the viewport and marks the scene as in-frame.
	//
	// Parameters:
	//   - vp: the viewport receiving the projection and view
	//   - s: the scene to render
	//
	// Returns:
	//   - error: ErrFrameOrder if a frame is already in progress, or a wrapped
	//     scene.ErrNoCamera if the scene has no camera
	BeginFrame(vp Viewport, s scene.Scene) error

	// DrawFrame advances the slot index, runs the update pass over every live object, clears
	// the target, publishes lighting and executes the draw commands of every candidate in
	// scene order with its active-slot matrix bound.
	//
	// Parameters:
	//   - vp: the viewport supplying the view-projection and frustum
	//   - s: the scene passed to BeginFrame
	//
	// Returns:
	//   - error: ErrFrameOrder if BeginFrame was not called, or the backend error if the
	//     target could not be acquired, in which case the frame is abandoned
	DrawFrame(vp Viewport, s scene.Scene) error

	// EndFrame draws the debug overlay and the HUD, then submits and presents the frame.
	//
	// Parameters:
	//   - vp: the viewport passed to the overlays
	//
	// Returns:
	//   - error: ErrFrameOrder if DrawFrame was not called, or a wrapped backend error
	EndFrame(vp Viewport) error

	// FrameIndex returns the active frame-buffer slot index.
	//
	// Returns:
	//   - int: a value in [0, SlotCount())
	FrameIndex() int

	// SlotCount returns the number of frame-buffer slots in flight.
	//
	// Returns:
	//   - int: the slot count
	SlotCount() int

	// Stats returns the counters of the last drawn frame.
	//
	// Returns:
	//   - FrameStats: frame index, visible and total object counts, and FPS
	Stats() FrameStats

	// Profiler returns the frame profiler fed by EndFrame.
	//
	// Returns:
	//   - *profiler.Profiler: the profiler
	Profiler() *profiler.Profiler

	// Backend returns the backend the renderer drives.
	//
	// Returns:
	//   - Backend: the backend
	Backend() Backend
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer driving the given backend.
//
// Parameters:
//   - backend: the Backend that executes draws and presents frames
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the newly created renderer
func NewRenderer(backend Backend, options ...RendererBuilderOption) Renderer {
	if backend == nil {
		panic("renderer: NewRenderer requires a non-nil Backend")
	}

	r := &renderer{
		mu:        &sync.Mutex{},
		backend:   backend,
		validator: transform.DefaultValidator(),
		profiler:  profiler.NewProfiler(false),
		slotCount: game_object.DefaultSlotCount,
		maxLights: DefaultMaxLights,
	}
	for _, option := range options {
		option(r)
	}

	if r.updateWorkers > 1 {
		r.updatePool = worker.NewDynamicWorkerPool(r.updateWorkers, 256, 1*time.Second)
	}
	return r
}

func (r *renderer) BeginFrame(vp Viewport, s scene.Scene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != phaseIdle {
		return fmt.Errorf("begin frame: %w", ErrFrameOrder)
	}

	cam, err := s.ActiveCamera()
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	cam.Update()
	vp.SetProjection(cam.Fov(), cam.Near(), cam.Far())
	vp.LookAt(cam.Eye(), cam.Target(), cam.Up())

	s.EnterFrame()
	r.scene = s
	r.phase = phaseBegun
	return nil
}

func (r *renderer) DrawFrame(vp Viewport, s scene.Scene) error {
	r.mu.Lock()
	if r.phase != phaseBegun {
		r.mu.Unlock()
		return fmt.Errorf("draw frame: %w", ErrFrameOrder)
	}
	if s != r.scene {
		r.mu.Unlock()
		r.abortFrame()
		return fmt.Errorf("draw frame: scene differs from BeginFrame: %w", ErrFrameOrder)
	}
	r.frameIdx = (r.frameIdx + 1) % r.slotCount
	frameIdx := r.frameIdx
	r.mu.Unlock()

	objects := s.Objects()
	r.updateObjects(objects, frameIdx)

	world := s.World()
	if err := r.backend.BeginFrame(world.ClearColor); err != nil {
		r.abortFrame()
		return fmt.Errorf("draw frame: %w", err)
	}
	r.backend.SetViewProjection(vp.ViewProjection())
	r.backend.SetLighting(light.PackLighting(world.Ambient, s.Lights(), r.maxLights))

	frustum := vp.Frustum()
	visible, total := 0, 0
	for _, obj := range objects {
		total++
		if obj.Removed() {
			continue
		}
		if !obj.Visible() {
			continue
		}
		m := obj.DrawCommands()
		if m == nil {
			continue
		}
		if !frustum.IntersectsAABB(obj.WorldAABB()) {
			continue
		}
		visible++
		r.backend.BindMatrix(obj.ActiveMatrix(frameIdx))
		r.backend.Execute(m)
	}

	r.mu.Lock()
	r.stats.FrameIndex = frameIdx
	r.stats.Visible = visible
	r.stats.Total = total
	r.phase = phaseDrawn
	r.mu.Unlock()
	return nil
}

func (r *renderer) EndFrame(vp Viewport) error {
	r.mu.Lock()
	if r.phase != phaseDrawn {
		r.mu.Unlock()
		return fmt.Errorf("end frame: %w", ErrFrameOrder)
	}
	r.mu.Unlock()
	defer r.abortFrame()

	if r.debugOverlay != nil {
		r.debugOverlay.DrawDebug(vp)
	}

	r.mu.Lock()
	r.profiler.Observe(r.stats.Visible, r.stats.Total)
	r.profiler.Tick()
	r.stats.FPS = r.profiler.FPS()
	stats := r.stats
	r.mu.Unlock()

	if r.overlay != nil {
		r.overlay.DrawHUD(vp, stats)
	}

	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	if err := r.backend.Present(); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (r *renderer) FrameIndex() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameIdx
}

func (r *renderer) SlotCount() int {
	return r.slotCount
}

func (r *renderer) Stats() FrameStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) Profiler() *profiler.Profiler {
	return r.profiler
}

func (r *renderer) Backend() Backend {
	return r.backend
}

// abortFrame releases the scene and returns the renderer to the idle phase.
func (r *renderer) abortFrame() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.scene != nil {
		r.scene.ExitFrame()
		r.scene = nil
	}
	r.phase = phaseIdle
}

// updateObjects runs the per-object update over every live object, serially or split into
// contiguous chunks across the update pool.
func (r *renderer) updateObjects(objects []game_object.GameObject, frameIdx int) {
	if r.updatePool == nil || len(objects) < 2*r.updateWorkers {
		r.updateRange(objects, frameIdx)
		return
	}

	// pool.Wait() blocks until workers idle-exit, so each frame uses its own barrier
	var wg sync.WaitGroup
	chunk := (len(objects) + r.updateWorkers - 1) / r.updateWorkers
	for id, start := 0, 0; start < len(objects); id, start = id+1, start+chunk {
		part := objects[start:min(start+chunk, len(objects))]
		wg.Add(1)
		r.updatePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				r.updateRange(part, frameIdx)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

func (r *renderer) updateRange(objects []game_object.GameObject, frameIdx int) {
	for _, obj := range objects {
		if obj.Removed() {
			continue
		}
		obj.EnsureSlots(r.slotCount)
		wasVisible := obj.Visible()
		if _, safe := obj.Update(frameIdx, r.validator); !safe && wasVisible {
			log.Printf("[Renderer] object %d (%s) hidden: unsafe transform", obj.ID(), obj.Name())
		}
	}
}
