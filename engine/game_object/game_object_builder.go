package game_object

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// GameObjectBuilderOption is a functional option for configuring a GameObject during construction.
type GameObjectBuilderOption func(*gameObject)

// WithID sets the ID of the GameObject.
//
// Parameters:
//   - id: unique identifier for the GameObject
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the ID
func WithID(id uint64) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.id = id
	}
}

// WithName sets the display name of the GameObject.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the name
func WithName(name string) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.name = name
	}
}

// WithLocation sets the initial world location.
//
// Parameters:
//   - loc: the initial location
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial location
func WithLocation(loc mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Location = loc
	}
}

// WithRotation sets the initial rotation. The quaternion is normalized.
//
// Parameters:
//   - rot: the initial rotation
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial rotation
func WithRotation(rot mgl32.Quat) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Rotation = rot.Normalize()
	}
}

// WithScale sets the initial per-axis scale.
//
// Parameters:
//   - scale: the initial scale
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the initial scale
func WithScale(scale mgl32.Vec3) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.transform.Scale = scale
	}
}

// WithBounds sets the local-space bounds, overriding any bounds carried by the Model.
//
// Parameters:
//   - bounds: the local bounds, corners in any order
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the bounds
func WithBounds(bounds common.AABB) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.bounds = common.NewAABB(bounds.Min, bounds.Max)
		obj.boundsSet = true
	}
}

// WithStatic marks the GameObject as static so it keeps a single shared matrix slot.
//
// Parameters:
//   - static: true for a static object
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the static flag
func WithStatic(static bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.static = static
	}
}

// WithVisible sets the initial display flag.
//
// Parameters:
//   - visible: true to allow drawing
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Visible state
func WithVisible(visible bool) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.visible.Store(visible)
	}
}

// WithModel sets the Model for this GameObject.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the Model
func WithModel(m model.Model) GameObjectBuilderOption {
	return func(obj *gameObject) {
		obj.mdl = m
	}
}

// WithSlotCount sets the number of frame-buffer slots the object refreshes on each change.
// Values below 1 are ignored.
//
// Parameters:
//   - n: the slot count
//
// Returns:
//   - GameObjectBuilderOption: functional option to set the slot count
func WithSlotCount(n int) GameObjectBuilderOption {
	return func(obj *gameObject) {
		if n >= 1 {
			obj.slotCount = n
		}
	}
}
