package material

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUMaterialParams is the material part of the per-draw uniform, matching the color and
// params fields of the WGSL Item struct.
// Size: 32 bytes (two vec4<f32>, std140 aligned).
type GPUMaterialParams struct {
	Color  [4]float32 // offset  0: RGBA color with opacity in alpha (16 bytes)
	Params [4]float32 // offset 16: x = lit flag, yzw reserved (16 bytes)
}

// Params returns the GPU uniform representation of a material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - GPUMaterialParams: the uniform data
func Params(m Material) GPUMaterialParams {
	var lit float32
	if m.Lit() {
		lit = 1
	}
	return GPUMaterialParams{
		Color:  m.Color(),
		Params: [4]float32{lit, 0, 0, 0},
	}
}

// Size returns the size of the GPUMaterialParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUMaterialParams) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUMaterialParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 32-byte buffer ready for GPU upload.
func (g *GPUMaterialParams) Marshal() []byte {
	buf := make([]byte, 32)
	for i, v := range g.Color {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range g.Params {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(v))
	}
	return buf
}
