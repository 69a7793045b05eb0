package renderer

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// GPUItem is the per-draw uniform bound at group 1 binding 0, matching the WGSL Item struct.
// Size: 160 bytes (std140 aligned).
type GPUItem struct {
	Model    [16]float32                // offset   0: world matrix
	Normal   [16]float32                // offset  64: normal matrix widened to mat4
	Material material.GPUMaterialParams // offset 128: color and flags
}

// NewGPUItem packs a render item into its uniform representation.
//
// Parameters:
//   - item: the render item
//
// Returns:
//   - GPUItem: the uniform data
func NewGPUItem(item scene.RenderItem) GPUItem {
	return GPUItem{
		Model:    item.World,
		Normal:   item.Normal.Mat4(),
		Material: material.Params(item.Mesh.Material()),
	}
}

// Size returns the size of the GPUItem struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUItem) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUItem struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 160-byte buffer ready for GPU upload.
func (g *GPUItem) Marshal() []byte {
	buf := make([]byte, 0, 160)
	for _, v := range g.Model {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	for _, v := range g.Normal {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return append(buf, g.Material.Marshal()...)
}

// frameLayoutDescriptor describes group 0: the frame uniform.
func frameLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 240,
				},
			},
		},
	}
}

// itemLayoutDescriptor describes group 1: the item uniform, its texture and sampler.
func itemLayoutDescriptor() wgpu.BindGroupLayoutDescriptor {
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Item Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    itemUniformBinding,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: 160,
				},
			},
			{
				Binding:    itemTextureBinding,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    itemSamplerBinding,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

// meshVertexLayout is the vertex buffer layout of model.GPUVertex.
func meshVertexLayout() wgpu.VertexBufferLayout {
	var v model.GPUVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(v.Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}
