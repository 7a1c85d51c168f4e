package loader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/Carmen-Shannon/oxy-scene/engine/model"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// DefaultLoadWorkers is the number of goroutines serving LoadAsync.
const DefaultLoadWorkers = 2

// CompileFunc turns an imported Model's mesh into backend draw commands, normally
// WGPUBackend.CompileDrawList.
type CompileFunc func(m model.Model) error

// LoadResult is delivered once per LoadAsync call.
type LoadResult struct {
	Model model.Model
	Err   error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model

	backend  loaderBackend
	compile  CompileFunc
	scale    float32
	workers  int
	pool     worker.DynamicWorkerPool
	poolOnce sync.Once
	taskID   atomic.Int64
}

// Loader imports mesh files into Models and caches them by path or name.
//
// Imported models carry pre-scaled local bounds taken from their vertex positions. When a
// CompileFunc is configured each model is compiled right after import; otherwise the caller
// compiles it, and until then the renderer treats it as a missing draw asset.
type Loader interface {
	// Load imports a model file and caches the result by path. A cached model is returned as is.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading or compiling fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key and model name
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading or compiling fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// LoadAsync runs Load on a worker goroutine. The returned channel receives exactly one
	// result and is then closed, so a game loop can poll it with a non-blocking select.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - <-chan LoadResult: the pending result
	LoadAsync(path string) <-chan LoadResult

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a snapshot of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]model.Model),
		scale:      1,
		workers:    DefaultLoadWorkers,
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	default:
		panic(fmt.Sprintf("unknown loader backend type %d", backendType))
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path, l.scale)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	if imported.name == "" {
		imported.name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l.store(path, imported)
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}
	imported, err := l.backend.LoadReader(r, isGLB, l.scale)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	imported.name = name
	return l.store(name, imported)
}

func (l *loader) LoadAsync(path string) <-chan LoadResult {
	out := make(chan LoadResult, 1)
	l.poolOnce.Do(func() {
		l.pool = worker.NewDynamicWorkerPool(max(l.workers, 1), 256, 1*time.Second)
	})
	l.pool.SubmitTask(worker.Task{
		ID: int(l.taskID.Add(1)),
		Do: func() (any, error) {
			defer close(out)
			m, err := l.Load(path)
			out <- LoadResult{Model: m, Err: err}
			return m, err
		},
	})
	return out
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		out[k] = v
	}
	return out
}

// resolveBackend selects an appropriate loader backend based on the file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("unsupported model format: %s", filepath.Ext(path))
	}
}

// store builds the Model, compiles it when a compiler is set, and caches it. If another
// load of the same key won the race, that model is returned instead.
func (l *loader) store(key string, imported *importedMesh) (model.Model, error) {
	if !common.IsFiniteVec3(imported.bounds.Min) || !common.IsFiniteVec3(imported.bounds.Max) {
		return nil, fmt.Errorf("model %s has non-finite vertex positions", key)
	}

	m := model.NewModel(
		model.WithName(imported.name),
		model.WithMesh(common.SliceToBytes(imported.vertices), common.SliceToBytes(imported.indices), len(imported.indices)),
		model.WithBounds(imported.bounds),
	)
	if l.compile != nil {
		if err := l.compile(m); err != nil {
			return nil, fmt.Errorf("failed to compile %s: %w", key, err)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[key]; ok {
		return cached, nil
	}
	l.modelCache[key] = m
	return m, nil
}
