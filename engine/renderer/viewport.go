package renderer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// viewport is the implementation of the Viewport interface.
type viewport struct {
	mu *sync.Mutex

	width, height  int
	fov, near, far float32
	view, proj     mgl32.Mat4
	viewProj       mgl32.Mat4
	frustum        common.Frustum
}

var _ Viewport = &viewport{}

// NewViewport creates a Viewport of the given pixel size with a 70 degree projection looking
// down -Z from (0,0,10).
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - Viewport: the newly created viewport
func NewViewport(width, height int) Viewport {
	v := &viewport{
		mu:     &sync.Mutex{},
		width:  width,
		height: height,
		fov:    70,
		near:   1,
		far:    1000,
		view:   mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}),
	}
	v.rebuildProjection()
	return v
}

func (v *viewport) SetProjection(fovDeg, near, far float32) {
	if !common.IsFinite(fovDeg) || !common.IsFinite(near) || !common.IsFinite(far) {
		return
	}
	if fovDeg <= 0 || fovDeg >= 180 || near <= 0 || far <= near {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.fov, v.near, v.far = fovDeg, near, far
	v.rebuildProjection()
}

func (v *viewport) LookAt(eye, target, up mgl32.Vec3) {
	if !common.IsFiniteVec3(eye) || !common.IsFiniteVec3(target) || !common.IsFiniteVec3(up) {
		return
	}
	forward := target.Sub(eye)
	if forward.Len() < 1e-6 || forward.Cross(up).Len() < 1e-6 {
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.view = mgl32.LookAtV(eye, target, up)
	v.rebuild()
}

func (v *viewport) ViewProjection() mgl32.Mat4 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.viewProj
}

func (v *viewport) Frustum() common.Frustum {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frustum
}

func (v *viewport) Size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

func (v *viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width, v.height = width, height
	v.rebuildProjection()
}

// rebuildProjection recomputes the projection from fov, near, far and the current aspect.
// Callers must hold mu.
func (v *viewport) rebuildProjection() {
	aspect := float32(1)
	if v.width > 0 && v.height > 0 {
		aspect = float32(v.width) / float32(v.height)
	}
	v.proj = mgl32.Perspective(mgl32.DegToRad(v.fov), aspect, v.near, v.far)
	v.rebuild()
}

// rebuild refreshes the combined matrix and the frustum. Callers must hold mu.
func (v *viewport) rebuild() {
	v.viewProj = v.proj.Mul4(v.view)
	v.frustum = common.ExtractFrustum(v.viewProj)
}
