package model

import (
	"github.com/Carmen-Shannon/oxy-scene/common"
	"github.com/go-gl/mathgl/mgl32"
)

// VertexStride is the byte size of one vertex in meshes built by this package:
// position (3 x float32) followed by normal (3 x float32).
const VertexStride = 24

// cubeFaces lists each face's outward normal and two in-plane axes with u x v = normal,
// so the corner order (-u,-v) (+u,-v) (+u,+v) (-u,+v) winds counter-clockwise from outside.
var cubeFaces = [6][3]mgl32.Vec3{
	{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
}

// CubeMesh builds an axis-aligned cube centered on the origin with flat per-face normals.
//
// Parameters:
//   - size: the edge length
//
// Returns:
//   - []byte: vertex data, VertexStride bytes per vertex
//   - []byte: uint32 index data
//   - int: the index count
func CubeMesh(size float32) ([]byte, []byte, int) {
	h := size / 2
	vertices := make([]float32, 0, 6*4*6)
	indices := make([]uint32, 0, 6*6)

	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for f, face := range cubeFaces {
		n, u, v := face[0], face[1], face[2]
		for _, c := range corners {
			p := n.Mul(h).Add(u.Mul(c[0] * h)).Add(v.Mul(c[1] * h))
			vertices = append(vertices, p[0], p[1], p[2], n[0], n[1], n[2])
		}
		base := uint32(f * 4)
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return common.SliceToBytes(vertices), common.SliceToBytes(indices), len(indices)
}

// NewCube creates a cube Model with matching bounds. Its draw commands still need compiling
// by a Backend before it can be drawn.
//
// Parameters:
//   - name: the model name
//   - size: the edge length
//
// Returns:
//   - Model: the cube model
func NewCube(name string, size float32) Model {
	vertexData, indexData, indexCount := CubeMesh(size)
	h := size / 2
	return NewModel(
		WithName(name),
		WithMesh(vertexData, indexData, indexCount),
		WithBounds(common.NewAABB(mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, h, h})),
	)
}
