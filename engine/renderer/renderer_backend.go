package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4x multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// ParseMSAA maps a sample count from configuration to a supported MSAASampleCount.
// Anything above 1 selects MSAA4x.
//
// Parameters:
//   - samples: the requested sample count
//
// Returns:
//   - MSAASampleCount: MSAAOff or MSAA4x
func ParseMSAA(samples int) MSAASampleCount {
	if samples > 1 {
		return MSAA4x
	}
	return MSAAOff
}

// DepthStencilFormat is the format of the depth attachment. The 8 stencil bits hold the
// portal ids written by mask quads.
const DepthStencilFormat = wgpu.TextureFormatDepth24PlusStencil8

// Bind group indices of the mesh shader.
const (
	frameGroup = 0
	itemGroup  = 1
)

// Bindings inside the item group.
const (
	itemUniformBinding = 0
	itemTextureBinding = 1
	itemSamplerBinding = 2
)

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}
