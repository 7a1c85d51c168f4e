package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 100)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return ExtractFrustum(proj.Mul4(view))
}

func box(center mgl32.Vec3, half float32) AABB {
	h := mgl32.Vec3{half, half, half}
	return AABB{Min: center.Sub(h), Max: center.Add(h)}
}

func TestFrustumIntersectsAABB(t *testing.T) {
	f := testFrustum()

	tests := []struct {
		name string
		box  AABB
		want bool
	}{
		{name: "box at target", box: box(mgl32.Vec3{}, 1), want: true},
		{name: "box behind camera", box: box(mgl32.Vec3{0, 0, 20}, 1), want: false},
		{name: "box far to the right", box: box(mgl32.Vec3{1000, 0, 0}, 1), want: false},
		{name: "box far above", box: box(mgl32.Vec3{0, 500, 0}, 1), want: false},
		{name: "box beyond far plane", box: box(mgl32.Vec3{0, 0, -200}, 1), want: false},
		{name: "box straddling left edge", box: box(mgl32.Vec3{-6.5, 0, 0}, 1), want: true},
		{name: "box enclosing camera", box: box(mgl32.Vec3{0, 0, 10}, 50), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectsAABB(tt.box); got != tt.want {
				t.Errorf("IntersectsAABB(%v) = %v, want %v", tt.box, got, tt.want)
			}
		})
	}
}

func TestExtractFrustumNormalizesPlanes(t *testing.T) {
	f := testFrustum()
	for i, p := range f.Planes {
		if l := p.Normal.Len(); !mgl32.FloatEqualThreshold(l, 1, epsilon) {
			t.Errorf("plane %d normal length = %v, want 1", i, l)
		}
	}
}

func TestExtractFrustumNearFarDistances(t *testing.T) {
	f := testFrustum()

	// Camera at z=10 looking down -Z: the near plane sits at z=9.9 and the far plane at z=-90.
	if d := f.Planes[FrustumNear].SignedDistance(mgl32.Vec3{0, 0, 9.9}); !mgl32.FloatEqualThreshold(d, 0, 1e-3) {
		t.Errorf("near plane distance at z=9.9 = %v, want 0", d)
	}
	if d := f.Planes[FrustumFar].SignedDistance(mgl32.Vec3{0, 0, -90}); !mgl32.FloatEqualThreshold(d, 0, 5e-2) {
		t.Errorf("far plane distance at z=-90 = %v, want 0", d)
	}
}
