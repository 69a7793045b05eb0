package pipeline

import "github.com/cogentcore/webgpu/wgpu"

// WGPU converts the comparison to its WebGPU equivalent.
func (c CompareFunc) WGPU() wgpu.CompareFunction {
	switch c {
	case CompareNever:
		return wgpu.CompareFunctionNever
	case CompareLess:
		return wgpu.CompareFunctionLess
	case CompareEqual:
		return wgpu.CompareFunctionEqual
	case CompareLessEqual:
		return wgpu.CompareFunctionLessEqual
	case CompareGreater:
		return wgpu.CompareFunctionGreater
	case CompareNotEqual:
		return wgpu.CompareFunctionNotEqual
	case CompareGreaterEqual:
		return wgpu.CompareFunctionGreaterEqual
	default:
		return wgpu.CompareFunctionAlways
	}
}

// WGPU converts the stencil operation to its WebGPU equivalent.
func (o StencilOp) WGPU() wgpu.StencilOperation {
	switch o {
	case StencilZero:
		return wgpu.StencilOperationZero
	case StencilReplace:
		return wgpu.StencilOperationReplace
	case StencilInvert:
		return wgpu.StencilOperationInvert
	case StencilIncrementClamp:
		return wgpu.StencilOperationIncrementClamp
	case StencilDecrementClamp:
		return wgpu.StencilOperationDecrementClamp
	case StencilIncrementWrap:
		return wgpu.StencilOperationIncrementWrap
	case StencilDecrementWrap:
		return wgpu.StencilOperationDecrementWrap
	default:
		return wgpu.StencilOperationKeep
	}
}

// WGPU converts the cull mode to its WebGPU equivalent.
func (c CullMode) WGPU() wgpu.CullMode {
	switch c {
	case CullFront:
		return wgpu.CullModeFront
	case CullBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

// FaceState builds the per-face stencil state. A disabled stencil state maps to an
// always-pass, keep-everything face.
//
// Returns:
//   - wgpu.StencilFaceState: the face state for both StencilFront and StencilBack
func (s StencilState) FaceState() wgpu.StencilFaceState {
	if !s.Enabled {
		return wgpu.StencilFaceState{
			Compare:     wgpu.CompareFunctionAlways,
			FailOp:      wgpu.StencilOperationKeep,
			DepthFailOp: wgpu.StencilOperationKeep,
			PassOp:      wgpu.StencilOperationKeep,
		}
	}
	return wgpu.StencilFaceState{
		Compare:     s.Compare.WGPU(),
		FailOp:      s.FailOp.WGPU(),
		DepthFailOp: s.DepthFailOp.WGPU(),
		PassOp:      s.PassOp.WGPU(),
	}
}

// ColorWriteMask returns the color target write mask for this state.
func (s RasterState) ColorWriteMask() wgpu.ColorWriteMask {
	if s.ColorWrite {
		return wgpu.ColorWriteMaskAll
	}
	return wgpu.ColorWriteMaskNone
}

// DepthStencilState builds the WebGPU depth-stencil state for this raster state.
// The stencil reference is not part of it and must be set on the render pass per draw.
//
// Parameters:
//   - format: the depth-stencil attachment format
//   - bias: constant depth bias
//   - slopeScale: slope scaled depth bias
//
// Returns:
//   - *wgpu.DepthStencilState: the state to place on the render pipeline descriptor
func (s RasterState) DepthStencilState(format wgpu.TextureFormat, bias int32, slopeScale float32) *wgpu.DepthStencilState {
	depthCompare := s.DepthCompare.WGPU()
	if !s.DepthTest {
		depthCompare = wgpu.CompareFunctionAlways
	}
	face := s.Stencil.FaceState()
	readMask, writeMask := uint32(s.Stencil.ReadMask), uint32(s.Stencil.WriteMask)
	if !s.Stencil.Enabled {
		writeMask = 0
	}
	return &wgpu.DepthStencilState{
		Format:              format,
		DepthWriteEnabled:   s.DepthWrite,
		DepthCompare:        depthCompare,
		DepthBias:           bias,
		DepthBiasSlopeScale: slopeScale,
		StencilFront:        face,
		StencilBack:         face,
		StencilReadMask:     readMask,
		StencilWriteMask:    writeMask,
	}
}
