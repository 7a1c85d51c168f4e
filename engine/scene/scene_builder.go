package scene

import (
	"github.com/Carmen-Shannon/oxy-scene/engine/camera"
	"github.com/Carmen-Shannon/oxy-scene/engine/light"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithCapacity sets the size of the object arena. Values below 1 are ignored.
//
// Parameters:
//   - n: the maximum number of object slots
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCapacity(n int) SceneBuilderOption {
	return func(s *scene) {
		if n >= 1 {
			s.capacity = n
		}
	}
}

// WithWorld sets the initial scene-wide render parameters.
//
// Parameters:
//   - w: the world parameters
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithWorld(w World) SceneBuilderOption {
	return func(s *scene) {
		s.world = w
	}
}

// WithCamera adds a camera. The first camera added is active.
//
// Parameters:
//   - c: the camera to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(c camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cameras = append(s.cameras, c)
	}
}

// WithLight adds a light.
//
// Parameters:
//   - l: the light to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.lights = append(s.lights, l)
	}
}
