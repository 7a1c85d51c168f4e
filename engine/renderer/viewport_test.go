package renderer

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestViewportRejectsDegenerateProjection(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name           string
		fov, near, far float32
	}{
		{name: "zero near", fov: 60, near: 0, far: 100},
		{name: "negative near", fov: 60, near: -1, far: 100},
		{name: "far equals near", fov: 60, near: 5, far: 5},
		{name: "far before near", fov: 60, near: 10, far: 1},
		{name: "zero fov", fov: 0, near: 1, far: 100},
		{name: "straight angle fov", fov: 180, near: 1, far: 100},
		{name: "nan far", fov: 60, near: 1, far: nan},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(800, 600)
			vp.SetProjection(60, 0.5, 200)
			before := vp.ViewProjection()

			vp.SetProjection(tt.fov, tt.near, tt.far)

			if vp.ViewProjection() != before {
				t.Errorf("SetProjection(%v, %v, %v) changed the projection", tt.fov, tt.near, tt.far)
			}
		})
	}
}

func TestViewportRejectsDegenerateView(t *testing.T) {
	tests := []struct {
		name            string
		eye, target, up mgl32.Vec3
	}{
		{name: "eye on target", eye: mgl32.Vec3{1, 1, 1}, target: mgl32.Vec3{1, 1, 1}, up: mgl32.Vec3{0, 1, 0}},
		{name: "up along view", eye: mgl32.Vec3{0, 10, 0}, target: mgl32.Vec3{}, up: mgl32.Vec3{0, 1, 0}},
		{name: "zero up", eye: mgl32.Vec3{0, 0, 10}, target: mgl32.Vec3{}, up: mgl32.Vec3{}},
		{name: "infinite eye", eye: mgl32.Vec3{float32(math.Inf(1)), 0, 0}, target: mgl32.Vec3{}, up: mgl32.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := NewViewport(800, 600)
			before := vp.ViewProjection()

			vp.LookAt(tt.eye, tt.target, tt.up)

			if vp.ViewProjection() != before {
				t.Errorf("LookAt(%v, %v, %v) changed the view", tt.eye, tt.target, tt.up)
			}
		})
	}
}

func TestViewportResizeChangesAspect(t *testing.T) {
	vp := NewViewport(800, 600)
	before := vp.ViewProjection()

	vp.Resize(1920, 1080)

	if w, h := vp.Size(); w != 1920 || h != 1080 {
		t.Errorf("Size() = %dx%d, want 1920x1080", w, h)
	}
	want := mgl32.Perspective(mgl32.DegToRad(70), 1920.0/1080.0, 1, 1000).
		Mul4(mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
	if !vp.ViewProjection().ApproxEqual(want) {
		t.Errorf("ViewProjection() = %v, want %v", vp.ViewProjection(), want)
	}
	if vp.ViewProjection() == before {
		t.Errorf("Resize did not change the projection")
	}

	// zero height falls back to a square aspect instead of dividing by zero
	vp.Resize(640, 0)
	for _, f := range vp.ViewProjection() {
		if !common.IsFinite(f) {
			t.Fatalf("ViewProjection() has non-finite entry after zero-height resize")
		}
	}
}

func TestViewportFrustumTracksView(t *testing.T) {
	vp := NewViewport(800, 600)
	box := common.AABB{Min: mgl32.Vec3{-1, -1, -1}, Max: mgl32.Vec3{1, 1, 1}}

	f := vp.Frustum()
	if !f.IntersectsAABB(box) {
		t.Fatalf("default view does not see the origin")
	}

	// turn around: the origin is now behind the camera
	vp.LookAt(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 1, 0})
	f = vp.Frustum()
	if f.IntersectsAABB(box) {
		t.Errorf("origin still visible after looking away")
	}
}
