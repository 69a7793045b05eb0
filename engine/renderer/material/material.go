package material

import (
	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
)

// Side selects which faces of a surface are drawn.
type Side uint8

const (
	// SideFront draws counter-clockwise faces only.
	SideFront Side = iota
	// SideBack draws clockwise faces only, used for shells viewed from inside.
	SideBack
	// SideDouble draws both faces.
	SideDouble
)

// CullMode returns the cull mode that draws this side.
func (s Side) CullMode() pipeline.CullMode {
	switch s {
	case SideBack:
		return pipeline.CullFront
	case SideDouble:
		return pipeline.CullNone
	default:
		return pipeline.CullBack
	}
}

// material is the implementation of the Material interface.
type material struct {
	name        string
	color       [4]float32
	opacity     float32
	transparent bool
	side        Side
	flatShading bool
	lit         bool
	texture     *common.TextureStagingData

	colorWrite bool
	depthTest  bool
	depthWrite bool
	stencil    pipeline.StencilState
}

// Material defines the interface for a render material. It pairs surface properties (color, side,
// shading, texture) with the fixed-function raster state a draw is submitted with.
//
// Surface properties are set at construction. Raster state is mutable so that composition code
// (such as stencil portals) can patch an existing material after it was authored.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Color retrieves the RGBA color of the material. Alpha is multiplied by Opacity.
	//
	// Returns:
	//   - [4]float32: the color as RGBA values
	Color() [4]float32

	// SetColor sets the RGB color, keeping the current opacity.
	//
	// Parameters:
	//   - rgba: the color; its alpha channel is ignored
	SetColor(rgba [4]float32)

	// Opacity retrieves the opacity used when the material is transparent.
	//
	// Returns:
	//   - float32: opacity in [0, 1]
	Opacity() float32

	// Transparent reports whether the material is alpha blended and sorted back to front.
	//
	// Returns:
	//   - bool: true if transparent
	Transparent() bool

	// Side retrieves which faces are drawn.
	//
	// Returns:
	//   - Side: the drawn side
	Side() Side

	// FlatShading reports whether geometry should use per-face normals.
	//
	// Returns:
	//   - bool: true for faceted shading
	FlatShading() bool

	// Lit reports whether the material responds to scene lights.
	//
	// Returns:
	//   - bool: true if lit
	Lit() bool

	// Texture retrieves the base color texture, or nil if none is set.
	//
	// Returns:
	//   - *common.TextureStagingData: the texture, or nil
	Texture() *common.TextureStagingData

	// ColorWrite reports whether draws with this material write to the color target.
	//
	// Returns:
	//   - bool: true if color is written
	ColorWrite() bool

	// SetColorWrite enables or disables color output.
	//
	// Parameters:
	//   - enabled: whether color is written
	SetColorWrite(enabled bool)

	// DepthTest reports whether fragments are depth tested.
	//
	// Returns:
	//   - bool: true if depth tested
	DepthTest() bool

	// SetDepthTest enables or disables the depth test.
	//
	// Parameters:
	//   - enabled: whether fragments are depth tested
	SetDepthTest(enabled bool)

	// DepthWrite reports whether passing fragments write the depth buffer.
	//
	// Returns:
	//   - bool: true if depth is written
	DepthWrite() bool

	// SetDepthWrite enables or disables depth writes.
	//
	// Parameters:
	//   - enabled: whether depth is written
	SetDepthWrite(enabled bool)

	// Stencil retrieves the stencil test and update state.
	//
	// Returns:
	//   - pipeline.StencilState: the stencil state
	Stencil() pipeline.StencilState

	// SetStencil replaces the stencil test and update state.
	//
	// Parameters:
	//   - s: the stencil state
	SetStencil(s pipeline.StencilState)

	// RasterState assembles the full raster state of a draw using this material.
	//
	// Returns:
	//   - pipeline.RasterState: the raster state
	RasterState() pipeline.RasterState

	// Clone returns an independent copy of the material. The texture is shared.
	//
	// Returns:
	//   - Material: the copy
	Clone() Material
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults to an opaque, lit, front-sided white material with color and depth writes on and the
// stencil test off.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		color:      [4]float32{1, 1, 1, 1},
		opacity:    1,
		side:       SideFront,
		lit:        true,
		colorWrite: true,
		depthTest:  true,
		depthWrite: true,
		stencil:    pipeline.DisabledStencil(),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Color() [4]float32 {
	c := m.color
	c[3] = m.opacity
	return c
}

func (m *material) SetColor(rgba [4]float32) {
	m.color = [4]float32{rgba[0], rgba[1], rgba[2], 1}
}

func (m *material) Opacity() float32 {
	return m.opacity
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) FlatShading() bool {
	return m.flatShading
}

func (m *material) Lit() bool {
	return m.lit
}

func (m *material) Texture() *common.TextureStagingData {
	return m.texture
}

func (m *material) ColorWrite() bool {
	return m.colorWrite
}

func (m *material) SetColorWrite(enabled bool) {
	m.colorWrite = enabled
}

func (m *material) DepthTest() bool {
	return m.depthTest
}

func (m *material) SetDepthTest(enabled bool) {
	m.depthTest = enabled
}

func (m *material) DepthWrite() bool {
	return m.depthWrite
}

func (m *material) SetDepthWrite(enabled bool) {
	m.depthWrite = enabled
}

func (m *material) Stencil() pipeline.StencilState {
	return m.stencil
}

func (m *material) SetStencil(s pipeline.StencilState) {
	m.stencil = s
}

func (m *material) RasterState() pipeline.RasterState {
	return pipeline.RasterState{
		ColorWrite:   m.colorWrite,
		DepthTest:    m.depthTest,
		DepthWrite:   m.depthWrite,
		DepthCompare: pipeline.CompareLessEqual,
		Blend:        m.transparent,
		Cull:         m.side.CullMode(),
		Stencil:      m.stencil,
	}
}

func (m *material) Clone() Material {
	c := *m
	return &c
}
