package loader

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithCompiler is an option builder that compiles every imported model before it is cached.
//
// Parameters:
//   - compile: the compile function, typically a WGPUBackend's CompileDrawList
//
// Returns:
//   - LoaderBuilderOption: a function that applies the compiler option to a loader
func WithCompiler(compile CompileFunc) LoaderBuilderOption {
	return func(l *loader) {
		l.compile = compile
	}
}

// WithScale is an option builder that bakes a uniform scale into imported positions and bounds.
// Non-finite or non-positive values are ignored.
//
// Parameters:
//   - scale: the import scale
//
// Returns:
//   - LoaderBuilderOption: a function that applies the scale option to a loader
func WithScale(scale float32) LoaderBuilderOption {
	return func(l *loader) {
		if common.IsFinite(scale) && scale > 0 {
			l.scale = scale
		}
	}
}

// WithWorkers is an option builder that sets how many goroutines serve LoadAsync.
//
// Parameters:
//   - n: the worker count, minimum 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the workers option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		l.workers = max(n, 1)
	}
}

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}
