package portal

import "github.com/Carmen-Shannon/impossible-box/common"

// CompositorBuilderOption is a functional option for configuring a Compositor.
type CompositorBuilderOption func(*compositor)

// WithApertureSize sets the mask quad extents. Non-positive values keep the default.
//
// Parameters:
//   - width: extent along the quad's X axis
//   - height: extent along the quad's Y axis
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithApertureSize(width, height float32) CompositorBuilderOption {
	return func(c *compositor) {
		if width > 0 {
			c.width = width
		}
		if height > 0 {
			c.height = height
		}
	}
}

// WithMaskColor sets the color the mask material carries. It is only visible when color writes
// are switched back on for debugging.
//
// Parameters:
//   - hex: the packed 0xRRGGBB color
//
// Returns:
//   - CompositorBuilderOption: option function to apply
func WithMaskColor(hex uint32) CompositorBuilderOption {
	return func(c *compositor) {
		c.maskColor = common.HexColor(hex)
	}
}
