package game_object

import (
	"github.com/go-gl/mathgl/mgl32"
)

// MatrixCache stores an object's composed model matrices, one per frame-buffer slot the
// object can be read from. The two implementations differ only in how a frame index maps
// to a slot, which keeps static/dynamic branching out of the update and draw paths.
type MatrixCache interface {
	// Slots returns how many matrices the cache holds.
	//
	// Returns:
	//   - int: 1 for a static cache, the slot count for a dynamic cache
	Slots() int

	// SlotFor maps a frame index to the slot that frame reads and writes.
	//
	// Parameters:
	//   - frameIdx: the renderer's current frame-buffer slot index
	//
	// Returns:
	//   - int: the slot index within this cache
	SlotFor(frameIdx int) int

	// Store writes m into the slot for frameIdx.
	//
	// Parameters:
	//   - frameIdx: the renderer's current frame-buffer slot index
	//   - m: the composed model matrix
	Store(frameIdx int, m mgl32.Mat4)

	// Load returns the matrix in the slot for frameIdx.
	//
	// Parameters:
	//   - frameIdx: the renderer's current frame-buffer slot index
	//
	// Returns:
	//   - mgl32.Mat4: the cached model matrix
	Load(frameIdx int) mgl32.Mat4
}

// staticCache holds a single matrix shared by every frame.
type staticCache struct {
	mat mgl32.Mat4
}

// dynamicCache holds one matrix per in-flight frame-buffer slot.
type dynamicCache struct {
	mats []mgl32.Mat4
}

var (
	_ MatrixCache = &staticCache{}
	_ MatrixCache = &dynamicCache{}
)

// NewStaticCache creates a MatrixCache that always reads and writes slot 0.
//
// Returns:
//   - MatrixCache: the single-slot cache
func NewStaticCache() MatrixCache {
	return &staticCache{mat: mgl32.Ident4()}
}

// NewDynamicCache creates a MatrixCache with one slot per frame buffer.
// Slot counts below 1 are treated as 1.
//
// Parameters:
//   - slots: number of frame-buffer slots in flight
//
// Returns:
//   - MatrixCache: the multi-slot cache
func NewDynamicCache(slots int) MatrixCache {
	slots = max(slots, 1)
	c := &dynamicCache{mats: make([]mgl32.Mat4, slots)}
	for i := range c.mats {
		c.mats[i] = mgl32.Ident4()
	}
	return c
}

func (c *staticCache) Slots() int {
	return 1
}

func (c *staticCache) SlotFor(int) int {
	return 0
}

func (c *staticCache) Store(_ int, m mgl32.Mat4) {
	c.mat = m
}

func (c *staticCache) Load(int) mgl32.Mat4 {
	return c.mat
}

func (c *dynamicCache) Slots() int {
	return len(c.mats)
}

func (c *dynamicCache) SlotFor(frameIdx int) int {
	n := len(c.mats)
	return ((frameIdx % n) + n) % n
}

func (c *dynamicCache) Store(frameIdx int, m mgl32.Mat4) {
	c.mats[c.SlotFor(frameIdx)] = m
}

func (c *dynamicCache) Load(frameIdx int) mgl32.Mat4 {
	return c.mats[c.SlotFor(frameIdx)]
}
