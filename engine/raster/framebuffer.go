package raster

import (
	"image"

	"github.com/Carmen-Shannon/impossible-box/common"
)

// Framebuffer holds the color, depth and stencil planes of the CPU pipeline. All planes are
// row-major with the origin at the top left.
type Framebuffer struct {
	Width   int
	Height  int
	Color   []uint8 // RGBA8, 4 bytes per pixel
	Depth   []float32
	Stencil []uint8
}

// NewFramebuffer allocates a framebuffer. Non-positive sizes are raised to 1.
//
// Parameters:
//   - width: width in pixels
//   - height: height in pixels
//
// Returns:
//   - *Framebuffer: the framebuffer, cleared to zero
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 1), max(height, 1)
	n := width * height
	return &Framebuffer{
		Width:   width,
		Height:  height,
		Color:   make([]uint8, n*4),
		Depth:   make([]float32, n),
		Stencil: make([]uint8, n),
	}
}

// Clear resets every pixel of all three planes.
//
// Parameters:
//   - color: RGBA clear color
//   - depth: depth clear value, normally 1
//   - stencil: stencil clear value, normally 0
func (f *Framebuffer) Clear(color [4]float32, depth float32, stencil uint8) {
	c := common.ToRGBA8(color)
	for i := 0; i < len(f.Depth); i++ {
		copy(f.Color[i*4:i*4+4], c[:])
		f.Depth[i] = depth
		f.Stencil[i] = stencil
	}
}

func (f *Framebuffer) index(x, y int) int {
	return y*f.Width + x
}

// StencilAt returns the stencil value of a pixel.
//
// Parameters:
//   - x, y: pixel coordinates
//
// Returns:
//   - uint8: the stencil value
func (f *Framebuffer) StencilAt(x, y int) uint8 {
	return f.Stencil[f.index(x, y)]
}

// DepthAt returns the depth value of a pixel.
//
// Parameters:
//   - x, y: pixel coordinates
//
// Returns:
//   - float32: the depth in [0, 1]
func (f *Framebuffer) DepthAt(x, y int) float32 {
	return f.Depth[f.index(x, y)]
}

// ColorAt returns the color of a pixel.
//
// Parameters:
//   - x, y: pixel coordinates
//
// Returns:
//   - [4]uint8: RGBA8 color
func (f *Framebuffer) ColorAt(x, y int) [4]uint8 {
	i := f.index(x, y) * 4
	return [4]uint8{f.Color[i], f.Color[i+1], f.Color[i+2], f.Color[i+3]}
}

// Snapshot copies the color plane into an image.
//
// Returns:
//   - *image.RGBA: the color plane
func (f *Framebuffer) Snapshot() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	copy(img.Pix, f.Color)
	return img
}

// StencilSnapshot renders the stencil plane as a grayscale image. Each id is scaled by step so
// neighbouring ids stay distinguishable; 0 stays black.
//
// Parameters:
//   - step: gray levels per stencil id
//
// Returns:
//   - *image.Gray: the visualization
func (f *Framebuffer) StencilSnapshot(step uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, f.Width, f.Height))
	for i, v := range f.Stencil {
		img.Pix[i] = v * step
	}
	return img
}
