package loader

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

var errNoTriangles = errors.New("document contains no triangle primitives")

// importedMesh is a single merged triangle list ready to become a model.Model.
type importedMesh struct {
	name     string
	vertices []float32 // position then normal, model.VertexStride bytes per vertex
	indices  []uint32
	bounds   common.AABB
}

// gltfMeshExtractorImpl is the implementation of the gltfMeshExtractor interface.
type gltfMeshExtractorImpl struct {
	parser gltfParser
}

// gltfMeshExtractor flattens the triangle primitives of a parsed document into one mesh.
type gltfMeshExtractor interface {
	// Extract walks the default scene (or every root node when there is none), bakes each
	// node's world transform into its mesh primitives and merges them. A document with
	// meshes but no nodes is merged untransformed.
	//
	// Parameters:
	//   - scale: uniform factor applied to positions after node transforms
	//
	// Returns:
	//   - *importedMesh: the merged mesh
	//   - error: error if extraction fails
	Extract(scale float32) (*importedMesh, error)
}

var _ gltfMeshExtractor = &gltfMeshExtractorImpl{}

// newGLTFMeshExtractor creates a new mesh extractor for a parsed document.
//
// Parameters:
//   - parser: the parser containing a loaded document
//
// Returns:
//   - gltfMeshExtractor: the mesh extractor
func newGLTFMeshExtractor(parser gltfParser) gltfMeshExtractor {
	return &gltfMeshExtractorImpl{parser: parser}
}

func (e *gltfMeshExtractorImpl) Extract(scale float32) (*importedMesh, error) {
	doc := e.parser.Document()
	if doc == nil {
		return nil, errors.New("no document loaded")
	}

	out := &importedMesh{}
	root := mgl32.Scale3D(scale, scale, scale)

	if len(doc.Nodes) == 0 {
		for i := range doc.Meshes {
			if err := e.appendMesh(out, i, root); err != nil {
				return nil, err
			}
		}
	} else {
		for _, n := range e.rootNodes(doc) {
			if err := e.walk(out, n, root, 0); err != nil {
				return nil, err
			}
		}
	}

	if len(out.indices) == 0 {
		return nil, errNoTriangles
	}

	lo := mgl32.Vec3{out.vertices[0], out.vertices[1], out.vertices[2]}
	hi := lo
	for v := 0; v < len(out.vertices); v += 6 {
		for c := 0; c < 3; c++ {
			lo[c] = min(lo[c], out.vertices[v+c])
			hi[c] = max(hi[c], out.vertices[v+c])
		}
	}
	out.bounds = common.NewAABB(lo, hi)
	return out, nil
}

// rootNodes returns the default scene's roots, or every node no other node lists as a child.
func (e *gltfMeshExtractorImpl) rootNodes(doc *gltfDocument) []int {
	if len(doc.Scenes) > 0 {
		s := 0
		if doc.Scene != nil && *doc.Scene >= 0 && *doc.Scene < len(doc.Scenes) {
			s = *doc.Scene
		}
		return doc.Scenes[s].Nodes
	}

	isChild := make([]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			if c >= 0 && c < len(isChild) {
				isChild[c] = true
			}
		}
	}
	var roots []int
	for i, child := range isChild {
		if !child {
			roots = append(roots, i)
		}
	}
	return roots
}

func (e *gltfMeshExtractorImpl) walk(out *importedMesh, nodeIndex int, parent mgl32.Mat4, depth int) error {
	doc := e.parser.Document()
	if nodeIndex < 0 || nodeIndex >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", nodeIndex)
	}
	if depth > len(doc.Nodes) {
		return errors.New("node hierarchy contains a cycle")
	}

	node := &doc.Nodes[nodeIndex]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil {
		if out.name == "" {
			out.name = node.Name
		}
		if err := e.appendMesh(out, *node.Mesh, world); err != nil {
			return fmt.Errorf("node %d: %w", nodeIndex, err)
		}
	}
	for _, c := range node.Children {
		if err := e.walk(out, c, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// nodeMatrix returns the node's local transform. glTF stores matrices column-major like mgl32.
func nodeMatrix(n *gltfNode) mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}

	t := mgl32.Vec3{}
	if n.Translation != nil {
		t = mgl32.Vec3(*n.Translation)
	}
	r := mgl32.QuatIdent()
	if n.Rotation != nil {
		r = mgl32.Quat{W: n.Rotation[3], V: mgl32.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]}}
	}
	s := mgl32.Vec3{1, 1, 1}
	if n.Scale != nil {
		s = mgl32.Vec3(*n.Scale)
	}
	return common.ComposeSRT(s, r, t)
}

func (e *gltfMeshExtractorImpl) appendMesh(out *importedMesh, meshIndex int, world mgl32.Mat4) error {
	doc := e.parser.Document()
	if meshIndex < 0 || meshIndex >= len(doc.Meshes) {
		return fmt.Errorf("mesh index %d out of range", meshIndex)
	}

	mesh := &doc.Meshes[meshIndex]
	if out.name == "" {
		out.name = mesh.Name
	}

	normalMatrix := world.Mat3().Inv().Transpose()
	for primIdx := range mesh.Primitives {
		prim := &mesh.Primitives[primIdx]
		if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
			continue
		}
		if err := e.appendPrimitive(out, prim, world, normalMatrix); err != nil {
			return fmt.Errorf("mesh %d primitive %d: %w", meshIndex, primIdx, err)
		}
	}
	return nil
}

func (e *gltfMeshExtractorImpl) appendPrimitive(out *importedMesh, prim *gltfPrimitive, world mgl32.Mat4, normalMatrix mgl32.Mat3) error {
	posIdx, ok := prim.Attributes[gltfAttributePosition]
	if !ok {
		return errors.New("primitive missing POSITION attribute")
	}
	positions, err := e.parser.ReadVec3Accessor(posIdx)
	if err != nil {
		return fmt.Errorf("failed to read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		indices, err = e.parser.ReadIndicesAccessor(*prim.Indices)
		if err != nil {
			return fmt.Errorf("failed to read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	indices = indices[:len(indices)-len(indices)%3]
	for _, idx := range indices {
		if int(idx) >= len(positions) {
			return fmt.Errorf("index %d out of range for %d vertices", idx, len(positions))
		}
	}

	var normals [][3]float32
	if nIdx, ok := prim.Attributes[gltfAttributeNormal]; ok {
		normals, err = e.parser.ReadVec3Accessor(nIdx)
		if err != nil {
			return fmt.Errorf("failed to read normals: %w", err)
		}
		if len(normals) != len(positions) {
			return fmt.Errorf("normal count %d does not match position count %d", len(normals), len(positions))
		}
	} else {
		normals = smoothNormals(positions, indices)
	}

	base := uint32(len(out.vertices) / 6)
	for i, p := range positions {
		wp := world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()
		wn := normalMatrix.Mul3x1(mgl32.Vec3(normals[i]))
		if l := wn.Len(); l > 0 {
			wn = wn.Mul(1 / l)
		}
		out.vertices = append(out.vertices, wp[0], wp[1], wp[2], wn[0], wn[1], wn[2])
	}
	for _, idx := range indices {
		out.indices = append(out.indices, base+idx)
	}
	return nil
}

// smoothNormals averages area-weighted face normals at each vertex.
func smoothNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	acc := make([]mgl32.Vec3, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		a := mgl32.Vec3(positions[indices[t]])
		b := mgl32.Vec3(positions[indices[t+1]])
		c := mgl32.Vec3(positions[indices[t+2]])
		n := b.Sub(a).Cross(c.Sub(a))
		acc[indices[t]] = acc[indices[t]].Add(n)
		acc[indices[t+1]] = acc[indices[t+1]].Add(n)
		acc[indices[t+2]] = acc[indices[t+2]].Add(n)
	}

	out := make([][3]float32, len(positions))
	for i, n := range acc {
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		} else {
			n = mgl32.Vec3{0, 1, 0}
		}
		out[i] = n
	}
	return out
}
