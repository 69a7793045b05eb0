package pipeline

import "fmt"

// CullMode selects which triangle faces are discarded before rasterization.
type CullMode uint8

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

func (c CullMode) String() string {
	switch c {
	case CullFront:
		return "front"
	case CullBack:
		return "back"
	default:
		return "none"
	}
}

// RasterState is the fixed-function state of a draw: which buffers it may write, how it is
// depth and stencil tested, and which faces are culled. Two draws with equal Key values can
// share one GPU render pipeline.
type RasterState struct {
	ColorWrite   bool
	DepthTest    bool
	DepthWrite   bool
	DepthCompare CompareFunc
	Blend        bool
	Cull         CullMode
	Stencil      StencilState
}

// DefaultRasterState returns the state of an ordinary opaque draw: color and depth written,
// depth tested with less-or-equal, back faces culled and stencil ignored.
func DefaultRasterState() RasterState {
	return RasterState{
		ColorWrite:   true,
		DepthTest:    true,
		DepthWrite:   true,
		DepthCompare: CompareLessEqual,
		Cull:         CullBack,
		Stencil:      DisabledStencil(),
	}
}

// DepthPasses evaluates the depth test for a fragment.
//
// Parameters:
//   - fragment: the incoming fragment depth
//   - stored: the depth buffer value
//
// Returns:
//   - bool: true if the fragment passes
func (s RasterState) DepthPasses(fragment, stored float32) bool {
	if !s.DepthTest {
		return true
	}
	return Eval(s.DepthCompare, fragment, stored)
}

// Key returns a string identifying this state for pipeline caching.
func (s RasterState) Key() string {
	depth := "d:off"
	if s.DepthTest || s.DepthWrite {
		depth = fmt.Sprintf("d:%t/%t/%s", s.DepthTest, s.DepthWrite, s.DepthCompare)
	}
	return fmt.Sprintf("c:%t|b:%t|cull:%s|%s|%s", s.ColorWrite, s.Blend, s.Cull, depth, s.Stencil.key())
}
