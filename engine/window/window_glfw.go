package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow binds a GLFW window to the engine window that owns its callbacks.
type glfwWindow struct {
	owner  *engineWindow
	handle *glfw.Window
}

// newPlatformWindow opens a GLFW window without a client API (WebGPU owns the surface),
// routes its input to the engine window and records the framebuffer size in pixels.
func newPlatformWindow(w *engineWindow) error {
	// GLFW calls must stay on the thread that initialized it.
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	handle, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("glfw create window %q: %w", w.title, err)
	}
	handle.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{owner: w, handle: handle}
	handle.SetKeyCallback(gw.handleKey)
	handle.SetScrollCallback(gw.handleScroll)
	// Framebuffer size, not window size: the two differ on high-DPI displays and the
	// surface is configured in pixels.
	handle.SetFramebufferSizeCallback(gw.handleFramebufferSize)

	w.width, w.height = handle.GetFramebufferSize()
	w.internalWindow = gw
	return nil
}

// handleKey closes the window on Escape and forwards every other key to the owner.
func (gw *glfwWindow) handleKey(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		gw.handle.SetShouldClose(true)
		return
	}
	code := uint32(key)
	switch {
	case action == glfw.Release && gw.owner.onKeyUp != nil:
		gw.owner.onKeyUp(code)
	case action != glfw.Release && gw.owner.onKeyDown != nil:
		gw.owner.onKeyDown(code)
	}
}

// handleScroll forwards the vertical wheel delta, which drives the orbit zoom.
func (gw *glfwWindow) handleScroll(_ *glfw.Window, _, yoff float64) {
	if gw.owner.onScroll != nil {
		gw.owner.onScroll(float32(yoff))
	}
}

func (gw *glfwWindow) handleFramebufferSize(_ *glfw.Window, width, height int) {
	gw.owner.width, gw.owner.height = width, height
	if gw.owner.onResize != nil {
		gw.owner.onResize(width, height)
	}
}

// platformWindow returns the GLFW state of w, or nil before it is opened or after it is closed.
func platformWindow(w *engineWindow) *glfwWindow {
	gw, _ := w.internalWindow.(*glfwWindow)
	return gw
}

// platformGetSurfaceDescriptor returns the WebGPU surface descriptor for the current platform
// (Windows, X11, Wayland or macOS), or nil when there is no open window.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw := platformWindow(w)
	if gw == nil {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.handle)
}

func platformSetTitle(w *engineWindow, title string) {
	if gw := platformWindow(w); gw != nil {
		gw.handle.SetTitle(title)
	}
}

// platformIsRunningCheck reports whether the window is open and no close was requested.
func platformIsRunningCheck(w *engineWindow) bool {
	gw := platformWindow(w)
	return gw != nil && !gw.handle.ShouldClose()
}

// platformCloseWindow destroys the window and shuts GLFW down.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: if the window was never opened or is already closed
func platformCloseWindow(w *engineWindow) error {
	gw := platformWindow(w)
	if gw == nil {
		return fmt.Errorf("close window %q: not open", w.title)
	}
	gw.handle.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages drains pending GLFW events without blocking.
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
