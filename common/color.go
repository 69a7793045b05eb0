package common

// HexColor converts a 0xRRGGBB value into a linear RGBA color with full opacity.
//
// Parameters:
//   - hex: the packed 24-bit color
//
// Returns:
//   - [4]float32: RGBA components in [0, 1]
func HexColor(hex uint32) [4]float32 {
	return [4]float32{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
		1,
	}
}

// ToRGBA8 quantizes a floating point RGBA color into 8-bit channels, clamping out of range input.
//
// Parameters:
//   - c: RGBA components, nominally in [0, 1]
//
// Returns:
//   - [4]uint8: the quantized color
func ToRGBA8(c [4]float32) [4]uint8 {
	var out [4]uint8
	for i, v := range c {
		out[i] = uint8(Clamp(v, 0, 1)*255 + 0.5)
	}
	return out
}
