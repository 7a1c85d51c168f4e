package loader

import (
	"fmt"
	"io"
)

// gltfLoaderBackendImpl is the implementation of gltfLoaderBackend.
type gltfLoaderBackendImpl struct{}

// gltfLoaderBackend is a loaderBackend implementation for glTF/GLB files.
type gltfLoaderBackend interface {
	loaderBackend
}

var _ gltfLoaderBackend = &gltfLoaderBackendImpl{}

// newGLTFLoaderBackend creates a new glTF loader backend.
//
// Returns:
//   - gltfLoaderBackend: the loader backend for glTF/GLB files
func newGLTFLoaderBackend() gltfLoaderBackend {
	return &gltfLoaderBackendImpl{}
}

// Each call gets its own parser so concurrent loads never share document state.
func (b *gltfLoaderBackendImpl) Load(path string, scale float32) (*importedMesh, error) {
	p := newGLTFParser()
	if err := p.Parse(path); err != nil {
		return nil, err
	}
	return b.extract(p, scale)
}

func (b *gltfLoaderBackendImpl) LoadReader(r io.Reader, isBinary bool, scale float32) (*importedMesh, error) {
	p := newGLTFParser()
	if err := p.ParseReader(r, isBinary); err != nil {
		return nil, err
	}
	return b.extract(p, scale)
}

func (b *gltfLoaderBackendImpl) extract(p gltfParser, scale float32) (*importedMesh, error) {
	mesh, err := newGLTFMeshExtractor(p).Extract(scale)
	if err != nil {
		return nil, fmt.Errorf("failed to extract mesh: %w", err)
	}
	return mesh, nil
}
