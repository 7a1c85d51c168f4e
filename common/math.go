package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// clipDepthFixup remaps OpenGL clip depth [-w, w] to the WebGPU range [0, w].
var clipDepthFixup = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
//
// Parameters:
//   - v: pointer to the struct to reinterpret
//
// Returns:
//   - []byte: byte slice view of the struct's memory
func StructToBytes[T any](v *T) []byte {
	size := unsafe.Sizeof(*v)
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), int(size))
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	f64 := float64(f)
	return !math.IsNaN(f64) && !math.IsInf(f64, 0)
}

// IsFiniteVec3 reports whether every component of v is finite.
func IsFiniteVec3(v mgl32.Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

// ComposeSRT builds the model matrix T * R * S from a scale, a unit quaternion rotation,
// and a translation. The result is column-major.
//
// Parameters:
//   - scale: per-axis scale
//   - rot: unit quaternion rotation
//   - loc: world translation
//
// Returns:
//   - mgl32.Mat4: the composed model matrix
func ComposeSRT(scale mgl32.Vec3, rot mgl32.Quat, loc mgl32.Vec3) mgl32.Mat4 {
	m := rot.Mat4()
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			m[col*4+row] *= scale[col]
		}
	}
	m[12], m[13], m[14] = loc[0], loc[1], loc[2]
	return m
}

// WebGPUClip converts an OpenGL-convention view-projection matrix into one whose clip depth
// lands in the [0, 1] range WebGPU expects. Frustum extraction keeps using the original matrix.
func WebGPUClip(viewProj mgl32.Mat4) mgl32.Mat4 {
	return clipDepthFixup.Mul4(viewProj)
}
