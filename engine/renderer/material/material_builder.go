package material

import (
	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
)

// MaterialBuilderOption is a functional option used to configure a Material during construction.
type MaterialBuilderOption func(*material)

// WithName sets the material identifier.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that sets the name
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithColor sets the RGB color. The alpha channel is ignored, use WithOpacity instead.
//
// Parameters:
//   - rgba: the color
//
// Returns:
//   - MaterialBuilderOption: a function that sets the color
func WithColor(rgba [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.color = [4]float32{rgba[0], rgba[1], rgba[2], 1}
	}
}

// WithHexColor sets the RGB color from a packed 0xRRGGBB value.
//
// Parameters:
//   - hex: the packed color
//
// Returns:
//   - MaterialBuilderOption: a function that sets the color
func WithHexColor(hex uint32) MaterialBuilderOption {
	return WithColor(common.HexColor(hex))
}

// WithOpacity marks the material transparent with the given opacity.
//
// Parameters:
//   - opacity: opacity in [0, 1]
//
// Returns:
//   - MaterialBuilderOption: a function that sets opacity and transparency
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = common.Clamp(opacity, 0, 1)
		m.transparent = true
	}
}

// WithTransparent toggles alpha blending without changing opacity, for textures carrying their own alpha.
//
// Parameters:
//   - transparent: whether the material is blended
//
// Returns:
//   - MaterialBuilderOption: a function that sets transparency
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = transparent
	}
}

// WithSide sets which faces are drawn.
//
// Parameters:
//   - side: SideFront, SideBack or SideDouble
//
// Returns:
//   - MaterialBuilderOption: a function that sets the side
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithFlatShading enables per-face normals.
//
// Parameters:
//   - flat: whether shading is faceted
//
// Returns:
//   - MaterialBuilderOption: a function that sets flat shading
func WithFlatShading(flat bool) MaterialBuilderOption {
	return func(m *material) {
		m.flatShading = flat
	}
}

// WithLit sets whether the material responds to lights. Unlit materials output their color as is.
//
// Parameters:
//   - lit: whether lights apply
//
// Returns:
//   - MaterialBuilderOption: a function that sets lighting
func WithLit(lit bool) MaterialBuilderOption {
	return func(m *material) {
		m.lit = lit
	}
}

// WithTexture sets the base color texture.
//
// Parameters:
//   - tex: RGBA texture data
//
// Returns:
//   - MaterialBuilderOption: a function that sets the texture
func WithTexture(tex *common.TextureStagingData) MaterialBuilderOption {
	return func(m *material) {
		m.texture = tex
	}
}

// WithColorWrite sets whether color is written.
//
// Parameters:
//   - enabled: whether color is written
//
// Returns:
//   - MaterialBuilderOption: a function that sets color writes
func WithColorWrite(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.colorWrite = enabled
	}
}

// WithDepthWrite sets whether depth is written.
//
// Parameters:
//   - enabled: whether depth is written
//
// Returns:
//   - MaterialBuilderOption: a function that sets depth writes
func WithDepthWrite(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthWrite = enabled
	}
}

// WithDepthTest sets whether fragments are depth tested.
//
// Parameters:
//   - enabled: whether the depth test runs
//
// Returns:
//   - MaterialBuilderOption: a function that sets the depth test
func WithDepthTest(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthTest = enabled
	}
}

// WithStencil sets the stencil test and update state.
//
// Parameters:
//   - s: the stencil state
//
// Returns:
//   - MaterialBuilderOption: a function that sets the stencil state
func WithStencil(s pipeline.StencilState) MaterialBuilderOption {
	return func(m *material) {
		m.stencil = s
	}
}
