// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload or CPU sampling.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It should be in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// Sample returns the texel nearest to the UV coordinate, wrapping coordinates outside [0, 1].
// The V axis points up, so v=0 addresses the last row.
//
// Parameters:
//   - u, v: texture coordinates
//
// Returns:
//   - [4]float32: the RGBA texel in [0, 1], or opaque white when the texture is empty
func (t *TextureStagingData) Sample(u, v float32) [4]float32 {
	if t == nil || t.Width == 0 || t.Height == 0 || len(t.Pixels) < int(t.Width*t.Height*4) {
		return [4]float32{1, 1, 1, 1}
	}
	u -= float32(int(u))
	if u < 0 {
		u++
	}
	v -= float32(int(v))
	if v < 0 {
		v++
	}
	x := min(int(u*float32(t.Width)), int(t.Width)-1)
	y := min(int((1-v)*float32(t.Height)), int(t.Height)-1)
	i := (y*int(t.Width) + x) * 4
	return [4]float32{
		float32(t.Pixels[i]) / 255,
		float32(t.Pixels[i+1]) / 255,
		float32(t.Pixels[i+2]) / 255,
		float32(t.Pixels[i+3]) / 255,
	}
}
