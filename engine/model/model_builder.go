package model

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithBounds sets the authored local-space bounds of the Model.
// The corners may be given in any order.
//
// Parameters:
//   - bounds: the local bounds, pre-scaled to world units
//
// Returns:
//   - ModelBuilderOption: a function that applies the bounds option to a model
func WithBounds(bounds common.AABB) ModelBuilderOption {
	return func(m *model) {
		m.bounds = common.NewAABB(bounds.Min, bounds.Max)
	}
}

// WithMesh sets the raw mesh data the Model's draw list is compiled from.
//
// Parameters:
//   - vertexData: interleaved vertex bytes
//   - indexData: uint32 index bytes
//   - indexCount: number of indices
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(vertexData, indexData []byte, indexCount int) ModelBuilderOption {
	return func(m *model) {
		m.vertexData = vertexData
		m.indexData = indexData
		m.indexCount = indexCount
	}
}

// WithCommands sets an already compiled draw-command block.
//
// Parameters:
//   - commands: the backend-specific command block
//
// Returns:
//   - ModelBuilderOption: a function that applies the commands option to a model
func WithCommands(commands any) ModelBuilderOption {
	return func(m *model) {
		m.commands.Store(commandsBox{v: commands})
	}
}
