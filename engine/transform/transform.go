package transform

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform is the placement of an object in the world together with its refresh counter.
//
// Dirty counts how many more frames must recompute the object's matrix and world bounds.
// Zero means the cached values are trusted as they are.
type Transform struct {
	Location mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Dirty    int
}

// Identity returns a transform at the origin with no rotation and unit scale.
func Identity() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// MarkDirty raises the dirty counter to at least n. It never lowers a pending count.
//
// Parameters:
//   - n: the minimum number of refreshes still required, normally the slot count
func (t *Transform) MarkDirty(n int) {
	if t.Dirty < n {
		t.Dirty = n
	}
}

// Consume decrements the dirty counter by exactly one.
// Returns false without changing anything when the transform is already clean.
func (t *Transform) Consume() bool {
	if t.Dirty <= 0 {
		return false
	}
	t.Dirty--
	return true
}
