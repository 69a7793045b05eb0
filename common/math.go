package common

import (
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

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
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// StructToBytes reinterprets a pointer to a struct as a raw byte slice using unsafe.
// The returned slice has length equal to the struct's size in memory.
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

// Perspective creates a perspective projection matrix mapping view-space depth to the
// WebGPU clip range [0, 1]. mgl32.Perspective targets the OpenGL [-1, 1] range, so the
// depth row is rebuilt here.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1.0 / float32(math.Tan(float64(fovY)/2.0))

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	return out
}

// EulerXYZ builds a rotation matrix from Euler angles applied in X, then Y, then Z
// intrinsic order (R = Rx * Ry * Rz), which is the convention scene nodes use.
//
// Parameters:
//   - rot: rotation angles in radians around X, Y and Z
//
// Returns:
//   - mgl32.Mat4: the rotation matrix
func EulerXYZ(rot mgl32.Vec3) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(rot[0]).
		Mul4(mgl32.HomogRotate3DY(rot[1])).
		Mul4(mgl32.HomogRotate3DZ(rot[2]))
}

// ComposeTRS constructs a model matrix from translation, Euler XYZ rotation and scale.
// Result: T * R * S.
//
// Parameters:
//   - pos: translation in parent space
//   - rot: rotation angles in radians around each axis
//   - scale: scale factors along each axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ComposeTRS(pos, rot, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(EulerXYZ(rot)).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}

// NormalMatrix returns the inverse transpose of the upper 3x3 of m, used to carry
// normals into world space under non-uniform scale.
//
// Parameters:
//   - m: the model matrix
//
// Returns:
//   - mgl32.Mat3: the normal matrix, or the plain upper 3x3 if m is singular
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	upper := m.Mat3()
	if upper.Det() == 0 {
		return upper
	}
	return upper.Inv().Transpose()
}

// IsFinite reports whether every component is neither NaN nor infinite.
//
// Parameters:
//   - values: the components to check
//
// Returns:
//   - bool: true if all components are finite
func IsFinite(values ...float32) bool {
	for _, v := range values {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Clamp restricts v to the closed range [lo, hi].
func Clamp[T ~float32 | ~float64 | ~int](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
