package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func approxVec3(a, b mgl32.Vec3) bool {
	for i := range a {
		if mgl32.Abs(a[i]-b[i]) > 1e-5 {
			return false
		}
	}
	return true
}

func TestCameraFollowsController(t *testing.T) {
	ctrl := NewOrbitController(WithRadius(10), WithElevation(0), WithAzimuth(0), WithOrbitTarget(mgl32.Vec3{1, 2, 3}))
	cam := NewCamera(WithController(ctrl))

	if got, want := cam.Eye(), (mgl32.Vec3{1, 2, 13}); !approxVec3(got, want) {
		t.Errorf("Eye() = %v, want %v", got, want)
	}
	if got := cam.Target(); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("Target() = %v, want [1 2 3]", got)
	}

	ctrl.SetTarget(mgl32.Vec3{})
	cam.Update()
	if got, want := cam.Eye(), (mgl32.Vec3{0, 0, 10}); !approxVec3(got, want) {
		t.Errorf("Eye() after Update = %v, want %v", got, want)
	}
}

func TestCameraWithoutControllerKeepsPlacement(t *testing.T) {
	cam := NewCamera(WithEye(mgl32.Vec3{4, 5, 6}), WithTarget(mgl32.Vec3{1, 1, 1}))
	cam.Update()
	if cam.Eye() != (mgl32.Vec3{4, 5, 6}) || cam.Target() != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("placement changed: eye %v target %v", cam.Eye(), cam.Target())
	}
}

func TestOrbitControllerClamps(t *testing.T) {
	tests := []struct {
		name   string
		steps  func(CameraController)
		check  func(CameraController) bool
		reason string
	}{
		{
			name: "zoom in clamps to min radius",
			steps: func(c CameraController) {
				for i := 0; i < 100; i++ {
					c.Zoom(10)
				}
			},
			check:  func(c CameraController) bool { return c.Radius() == 2 },
			reason: "radius should stop at 2",
		},
		{
			name: "zoom out clamps to max radius",
			steps: func(c CameraController) {
				for i := 0; i < 1000; i++ {
					c.Zoom(-10)
				}
			},
			check:  func(c CameraController) bool { return c.Radius() == 500 },
			reason: "radius should stop at 500",
		},
		{
			name: "orbit up clamps elevation",
			steps: func(c CameraController) {
				for i := 0; i < 500; i++ {
					c.OrbitUp()
				}
			},
			check:  func(c CameraController) bool { return c.Elevation() < 1.571 },
			reason: "elevation should stay below straight up",
		},
		{
			name:   "orbit left then right returns",
			steps:  func(c CameraController) { c.OrbitLeft(); c.OrbitRight() },
			check:  func(c CameraController) bool { return mgl32.FloatEqualThreshold(c.Azimuth(), 0, 1e-6) },
			reason: "azimuth should return to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrbitController()
			tt.steps(c)
			if !tt.check(c) {
				t.Errorf("%s (radius=%v elevation=%v azimuth=%v)", tt.reason, c.Radius(), c.Elevation(), c.Azimuth())
			}
		})
	}
}
