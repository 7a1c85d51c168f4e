package game_object

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
	"github.com/Carmen-Shannon/oxy-scene/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultSlotCount is the number of frame buffers assumed in flight when none is configured.
const DefaultSlotCount = 3

type gameObject struct {
	id        uint64
	name      string
	visible   atomic.Bool
	removed   atomic.Bool
	static    bool
	mdl       model.Model
	slotCount int

	transform transform.Transform
	bounds    common.AABB
	boundsSet bool
	worldAABB common.AABB
	matrices  MatrixCache
}

// GameObject is one renderable entity in a Scene.
//
// Every transform mutation raises the dirty counter to at least the slot count, so each
// frame-buffer slot is rewritten before the object is treated as clean again. The derived
// state (matrices and world bounds) is only written by Update.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// SetID sets the object's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// Name returns the object's display name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Transform returns a copy of the current transform including the dirty counter.
	//
	// Returns:
	//   - transform.Transform: the transform
	Transform() transform.Transform

	// SetLocation sets the world location and marks the object dirty.
	//
	// Parameters:
	//   - loc: the new location
	SetLocation(loc mgl32.Vec3)

	// SetRotation sets the rotation, normalizing the quaternion, and marks the object dirty.
	//
	// Parameters:
	//   - rot: the new rotation
	SetRotation(rot mgl32.Quat)

	// SetScale sets the per-axis scale and marks the object dirty.
	//
	// Parameters:
	//   - scale: the new scale
	SetScale(scale mgl32.Vec3)

	// SetTransform replaces location, rotation and scale in one write and marks the object dirty.
	//
	// Parameters:
	//   - loc: the new location
	//   - rot: the new rotation
	//   - scale: the new scale
	SetTransform(loc mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3)

	// MarkDirty forces a refresh of every slot without changing the transform.
	MarkDirty()

	// Dirty returns the number of refreshes still pending.
	//
	// Returns:
	//   - int: the dirty counter
	Dirty() int

	// Bounds returns the local-space bounds.
	//
	// Returns:
	//   - common.AABB: the authored bounds
	Bounds() common.AABB

	// WorldAABB returns the world-space bounds computed by the last Update.
	//
	// Returns:
	//   - common.AABB: the cached world bounds
	WorldAABB() common.AABB

	// Static reports whether the object keeps a single shared matrix slot.
	//
	// Returns:
	//   - bool: true for static objects
	Static() bool

	// Visible reports the display flag.
	//
	// Returns:
	//   - bool: true if the object may be drawn
	Visible() bool

	// SetVisible sets the display flag.
	//
	// Parameters:
	//   - visible: true to allow drawing
	SetVisible(visible bool)

	// Removed reports whether the object has been logically deleted from its scene.
	//
	// Returns:
	//   - bool: true if removed
	Removed() bool

	// SetRemoved sets the logical deletion flag. Called by the owning scene.
	//
	// Parameters:
	//   - removed: true to mark removed
	SetRemoved(removed bool)

	// Model returns the associated Model, or nil if none is set.
	//
	// Returns:
	//   - model.Model: the model or nil
	Model() model.Model

	// SetModel assigns a Model. When no bounds were configured the model's bounds are
	// adopted and the object is marked dirty.
	//
	// Parameters:
	//   - m: the Model to associate
	SetModel(m model.Model)

	// DrawCommands returns the Model only if its draw-command block has been compiled.
	//
	// Returns:
	//   - model.Model: the drawable model or nil
	DrawCommands() model.Model

	// Matrices returns the object's matrix cache.
	//
	// Returns:
	//   - MatrixCache: the static or dynamic cache
	Matrices() MatrixCache

	// ActiveMatrix returns the matrix bound when drawing during frame frameIdx.
	//
	// Parameters:
	//   - frameIdx: the renderer's current frame-buffer slot index
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix for that frame
	ActiveMatrix(frameIdx int) mgl32.Mat4

	// SlotCount returns the number of frame-buffer slots the object refreshes on each change.
	//
	// Returns:
	//   - int: the slot count
	SlotCount() int

	// EnsureSlots adapts the object to a renderer running n frame-buffer slots. A change
	// reallocates dynamic storage and marks the object dirty.
	//
	// Parameters:
	//   - n: the renderer's slot count
	EnsureSlots(n int)

	// Update recomputes the model matrix for the active slot and the world bounds when the
	// object is dirty, then decrements the dirty counter by one. Unsafe transforms have their
	// location reset to the origin and the object hidden before composition.
	//
	// Parameters:
	//   - frameIdx: the renderer's current frame-buffer slot index
	//   - v: the transform validator
	//
	// Returns:
	//   - recomputed: true if derived state was rewritten
	//   - safe: false if the transform had to be sanitized
	Update(frameIdx int, v transform.Validator) (recomputed, safe bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new GameObject configured with the given options.
// The object starts visible with an identity transform and enough pending refreshes to
// populate every slot before it can be culled or drawn.
//
// Parameters:
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	obj := &gameObject{
		transform: transform.Identity(),
		slotCount: DefaultSlotCount,
	}
	obj.visible.Store(true)

	for _, option := range options {
		option(obj)
	}

	if !obj.boundsSet && obj.mdl != nil {
		obj.bounds = obj.mdl.Bounds()
	}
	obj.matrices = obj.newCache()
	obj.transform.MarkDirty(obj.slotCount)
	return obj
}

func (g *gameObject) newCache() MatrixCache {
	if g.static {
		return NewStaticCache()
	}
	return NewDynamicCache(g.slotCount)
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) SetID(id uint64) {
	g.id = id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Transform() transform.Transform {
	return g.transform
}

func (g *gameObject) SetLocation(loc mgl32.Vec3) {
	g.transform.Location = loc
	g.transform.MarkDirty(g.slotCount)
}

func (g *gameObject) SetRotation(rot mgl32.Quat) {
	g.transform.Rotation = rot.Normalize()
	g.transform.MarkDirty(g.slotCount)
}

func (g *gameObject) SetScale(scale mgl32.Vec3) {
	g.transform.Scale = scale
	g.transform.MarkDirty(g.slotCount)
}

func (g *gameObject) SetTransform(loc mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) {
	g.transform.Location = loc
	g.transform.Rotation = rot.Normalize()
	g.transform.Scale = scale
	g.transform.MarkDirty(g.slotCount)
}

func (g *gameObject) MarkDirty() {
	g.transform.MarkDirty(g.slotCount)
}

func (g *gameObject) Dirty() int {
	return g.transform.Dirty
}

func (g *gameObject) Bounds() common.AABB {
	return g.bounds
}

func (g *gameObject) WorldAABB() common.AABB {
	return g.worldAABB
}

func (g *gameObject) Static() bool {
	return g.static
}

func (g *gameObject) Visible() bool {
	return g.visible.Load()
}

func (g *gameObject) SetVisible(visible bool) {
	g.visible.Store(visible)
}

func (g *gameObject) Removed() bool {
	return g.removed.Load()
}

func (g *gameObject) SetRemoved(removed bool) {
	g.removed.Store(removed)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) SetModel(m model.Model) {
	g.mdl = m
	if !g.boundsSet && m != nil {
		g.bounds = m.Bounds()
		g.transform.MarkDirty(g.slotCount)
	}
}

func (g *gameObject) DrawCommands() model.Model {
	if g.mdl == nil || !g.mdl.Compiled() {
		return nil
	}
	return g.mdl
}

func (g *gameObject) Matrices() MatrixCache {
	return g.matrices
}

func (g *gameObject) ActiveMatrix(frameIdx int) mgl32.Mat4 {
	return g.matrices.Load(frameIdx)
}

func (g *gameObject) SlotCount() int {
	return g.slotCount
}

func (g *gameObject) EnsureSlots(n int) {
	n = max(n, 1)
	if n == g.slotCount {
		return
	}
	g.slotCount = n
	if !g.static {
		g.matrices = NewDynamicCache(n)
	}
	g.transform.MarkDirty(n)
}

func (g *gameObject) Update(frameIdx int, v transform.Validator) (recomputed, safe bool) {
	if g.transform.Dirty <= 0 {
		return false, true
	}

	safe = v.Sanitize(&g.transform)
	if !safe {
		g.visible.Store(false)
	}

	t := &g.transform
	g.matrices.Store(frameIdx, common.ComposeSRT(t.Scale, t.Rotation, t.Location))
	g.worldAABB = common.WorldAABB(g.bounds, t.Rotation, t.Location)
	t.Consume()
	return true, safe
}
