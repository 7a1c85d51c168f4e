package common

import "github.com/go-gl/mathgl/mgl32"

// AABB is an axis-aligned bounding box defined by its minimum and maximum corners.
type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABB returns an AABB whose corners are resolved per axis, so callers may pass the
// corners in any order.
func NewAABB(a, b mgl32.Vec3) AABB {
	var box AABB
	for i := 0; i < 3; i++ {
		box.Min[i] = min(a[i], b[i])
		box.Max[i] = max(a[i], b[i])
	}
	return box
}

// Center returns the midpoint of the box.
func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

// Extents returns the full size of the box along each axis.
func (a AABB) Extents() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

// ContainsPoint reports whether p lies inside or on the boundary of the box.
func (a AABB) ContainsPoint(p mgl32.Vec3) bool {
	return p[0] >= a.Min[0] && p[0] <= a.Max[0] &&
		p[1] >= a.Min[1] && p[1] <= a.Max[1] &&
		p[2] >= a.Min[2] && p[2] <= a.Max[2]
}

// RotationRows returns the 3x3 rotation matrix of a unit quaternion, indexed [row][col].
func RotationRows(q mgl32.Quat) [3][3]float32 {
	x, y, z, w := q.V[0], q.V[1], q.V[2], q.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return [3][3]float32{
		{1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy)},
		{2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx)},
		{2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy)},
	}
}

// WorldAABB transforms a local-space box by a rotation and a translation and returns the
// tightest axis-aligned box containing the result (Arvo's method).
//
// Each world axis starts at the translation. For every rotation element the two candidate
// products against the local min and max are formed, and the smaller goes to the world min,
// the larger to the world max. Local bounds are expected to be pre-scaled.
//
// Parameters:
//   - local: the local-space bounds
//   - rot: unit quaternion rotation
//   - loc: world translation
//
// Returns:
//   - AABB: the world-space bounds
func WorldAABB(local AABB, rot mgl32.Quat, loc mgl32.Vec3) AABB {
	m := RotationRows(rot)

	out := AABB{Min: loc, Max: loc}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a := m[i][j] * local.Min[j]
			b := m[i][j] * local.Max[j]
			if a < b {
				out.Min[i] += a
				out.Max[i] += b
			} else {
				out.Min[i] += b
				out.Max[i] += a
			}
		}
	}
	return out
}
