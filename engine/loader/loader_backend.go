package loader

import "io"

// loaderBackend imports a mesh file format into a single merged importedMesh.
// Concrete implementations (e.g., gltfLoaderBackend) handle format-specific details.
type loaderBackend interface {
	// Load imports the mesh stored at path.
	//
	// Parameters:
	//   - path: the file path to load
	//   - scale: uniform factor baked into positions and bounds
	//
	// Returns:
	//   - *importedMesh: the merged mesh
	//   - error: error if loading fails
	Load(path string, scale float32) (*importedMesh, error)

	// LoadReader imports a mesh from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//   - isBinary: true if the reader provides a binary container (GLB)
	//   - scale: uniform factor baked into positions and bounds
	//
	// Returns:
	//   - *importedMesh: the merged mesh
	//   - error: error if loading fails
	LoadReader(r io.Reader, isBinary bool, scale float32) (*importedMesh, error)
}
