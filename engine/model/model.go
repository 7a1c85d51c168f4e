package model

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-scene/common"
)

// model is the implementation of the Model interface.
type model struct {
	name                  string
	bounds                common.AABB
	vertexData, indexData []byte
	indexCount            int
	commands              atomic.Value
}

// Model is a renderable asset: the mesh it was built from, its authored local bounds,
// and the precompiled draw-command block a Backend executes.
//
// Commands are opaque to everything except the Backend that compiled them. A Model whose
// commands are not yet compiled is treated as absent and never drawn.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Bounds returns the authored local-space bounds, pre-scaled to world units.
	//
	// Returns:
	//   - common.AABB: the local bounds
	Bounds() common.AABB

	// VertexData retrieves the raw interleaved vertex bytes used for draw-list compilation.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData retrieves the raw uint32 index bytes used for draw-list compilation.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in IndexData.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// Commands returns the compiled draw-command block, or nil if none has been compiled.
	//
	// Returns:
	//   - any: the backend-specific command block
	Commands() any

	// SetCommands stores a compiled draw-command block. Safe to call from a loader goroutine
	// while the render loop reads Commands.
	//
	// Parameters:
	//   - commands: the backend-specific command block
	SetCommands(commands any)

	// Compiled reports whether a draw-command block is present.
	//
	// Returns:
	//   - bool: true if Commands is non-nil
	Compiled() bool
}

var _ Model = &model{}

// commandsBox wraps the stored value so atomic.Value always sees one concrete type.
type commandsBox struct {
	v any
}

// NewModel creates a new Model with the provided options.
//
// Parameters:
//   - options: functional options to configure the Model
//
// Returns:
//   - Model: the newly created Model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{}
	m.commands.Store(commandsBox{})
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Bounds() common.AABB {
	return m.bounds
}

func (m *model) VertexData() []byte {
	return m.vertexData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) Commands() any {
	return m.commands.Load().(commandsBox).v
}

func (m *model) SetCommands(commands any) {
	m.commands.Store(commandsBox{v: commands})
}

func (m *model) Compiled() bool {
	return m.Commands() != nil
}
