package renderer

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/profiler"
	"github.com/Carmen-Shannon/oxy-scene/engine/transform"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithSlotCount sets the number of frame-buffer slots in flight. Values below 1 are raised to 1.
//
// Parameters:
//   - n: the slot count
//
// Returns:
//   - RendererBuilderOption: a function that applies the slot count option to a renderer
func WithSlotCount(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.slotCount = max(n, 1)
	}
}

// WithValidator replaces the default transform validator. A nil validator is ignored.
//
// Parameters:
//   - v: the Validator applied during the update pass
//
// Returns:
//   - RendererBuilderOption: a function that applies the validator option to a renderer
func WithValidator(v transform.Validator) RendererBuilderOption {
	return func(r *renderer) {
		if v != nil {
			r.validator = v
		}
	}
}

// WithOverlay sets the diagnostics HUD drawn at the end of every frame. Nil disables it.
//
// Parameters:
//   - o: the Overlay
//
// Returns:
//   - RendererBuilderOption: a function that applies the overlay option to a renderer
func WithOverlay(o Overlay) RendererBuilderOption {
	return func(r *renderer) {
		r.overlay = o
	}
}

// WithDebugOverlay sets the debug geometry overlay drawn at the end of every frame. Nil disables it.
//
// Parameters:
//   - o: the DebugOverlay
//
// Returns:
//   - RendererBuilderOption: a function that applies the debug overlay option to a renderer
func WithDebugOverlay(o DebugOverlay) RendererBuilderOption {
	return func(r *renderer) {
		r.debugOverlay = o
	}
}

// WithUpdateWorkers runs the update pass across n pooled workers when n > 1.
// Each object is updated by exactly one worker, so results match the serial pass.
//
// Parameters:
//   - n: the number of update workers
//
// Returns:
//   - RendererBuilderOption: a function that applies the update workers option to a renderer
func WithUpdateWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.updateWorkers = n
	}
}

// WithMaxLights caps the number of directional lights published per frame.
//
// Parameters:
//   - n: the light cap, clamped to [0, light.MaxGPULights]
//
// Returns:
//   - RendererBuilderOption: a function that applies the max lights option to a renderer
func WithMaxLights(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.maxLights = max(0, min(n, DefaultMaxLights))
	}
}

// WithProfiler replaces the renderer's frame profiler. A nil profiler is ignored.
//
// Parameters:
//   - p: the Profiler ticked by EndFrame
//
// Returns:
//   - RendererBuilderOption: a function that applies the profiler option to a renderer
func WithProfiler(p *profiler.Profiler) RendererBuilderOption {
	return func(r *renderer) {
		if p != nil {
			r.profiler = p
		}
	}
}
