package renderer

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// Only specific power-of-two values are valid for GPU hardware. WebGPU guarantees support for
// 1 (off) and 4; higher values are adapter-dependent.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Backend executes the hardware side of a frame on behalf of the Renderer.
//
// Calls arrive in a fixed order per frame: BeginFrame, SetViewProjection, SetLighting, then any
// number of BindMatrix/Execute pairs, then EndFrame and Present. Implementations need not be
// safe for concurrent use; the Renderer drives them from a single goroutine.
type Backend interface {
	// BeginFrame acquires the render target and clears color and depth.
	//
	// Parameters:
	//   - clear: the RGBA clear color
	//
	// Returns:
	//   - error: an error if the render target could not be acquired
	BeginFrame(clear mgl32.Vec4) error

	// SetViewProjection publishes the combined projection * view matrix for the frame.
	//
	// Parameters:
	//   - viewProj: the view-projection matrix in OpenGL clip conventions
	SetViewProjection(viewProj mgl32.Mat4)

	// SetLighting publishes the ambient color and directional lights for the frame.
	//
	// Parameters:
	//   - block: the packed lighting state
	SetLighting(block light.LightingBlock)

	// BindMatrix binds the model matrix used by the next Execute call.
	//
	// Parameters:
	//   - m: the object's active-slot model matrix
	BindMatrix(m mgl32.Mat4)

	// Execute runs the model's precompiled draw commands against the bound matrix.
	// A model whose commands were compiled by a different backend is a no-op.
	//
	// Parameters:
	//   - m: the model to draw
	Execute(m model.Model)

	// EndFrame finishes recording and submits the frame's commands.
	//
	// Returns:
	//   - error: an error if submission failed
	EndFrame() error

	// Present hands the completed frame to the display. May block until a buffer is free.
	//
	// Returns:
	//   - error: an error if presentation failed
	Present() error

	// Resize reconfigures the render target for a new surface size.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)
}

// Viewport is the projection/view setter fed by the active camera each frame.
type Viewport interface {
	// SetProjection sets a perspective projection. Degenerate input (non-positive fov or near,
	// far <= near) is ignored and the previous projection kept.
	//
	// Parameters:
	//   - fovDeg: the vertical field of view in degrees
	//   - near: the near plane distance
	//   - far: the far plane distance
	SetProjection(fovDeg, near, far float32)

	// LookAt sets the view matrix. Degenerate input (eye == target, or up parallel to the view
	// direction) is ignored and the previous view kept.
	//
	// Parameters:
	//   - eye: the camera position
	//   - target: the point looked at
	//   - up: the up vector
	LookAt(eye, target, up mgl32.Vec3)

	// ViewProjection returns projection * view.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjection() mgl32.Mat4

	// Frustum returns the six planes of the current view-projection.
	//
	// Returns:
	//   - common.Frustum: the normalized frustum planes
	Frustum() common.Frustum

	// Size returns the viewport dimensions in pixels.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Size() (int, int)

	// Resize changes the viewport dimensions, which changes the projection aspect ratio.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)
}

// FrameStats are the diagnostics counters of the last drawn frame.
// Total counts every arena slot, removed ones included, until the scene is compacted.
type FrameStats struct {
	FrameIndex int
	Visible    int
	Total      int
	FPS        float64
}

// Overlay draws a diagnostics HUD at the end of a frame. It is purely observational.
type Overlay interface {
	DrawHUD(vp Viewport, stats FrameStats)
}

// DebugOverlay draws debug geometry (e.g. physics wireframes) at the end of a frame while the
// render target is still bound. It is purely observational.
type DebugOverlay interface {
	DrawDebug(vp Viewport)
}

// OverlayFunc adapts a plain function to the Overlay interface.
type OverlayFunc func(vp Viewport, stats FrameStats)

// DrawHUD calls f(vp, stats).
func (f OverlayFunc) DrawHUD(vp Viewport, stats FrameStats) {
	f(vp, stats)
}

// DebugOverlayFunc adapts a plain function to the DebugOverlay interface.
type DebugOverlayFunc func(vp Viewport)

// DrawDebug calls f(vp).
func (f DebugOverlayFunc) DrawDebug(vp Viewport) {
	f(vp)
}
