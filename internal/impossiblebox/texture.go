package impossiblebox

import "github.com/Carmen-Shannon/impossible-box/common"

// FrameTexture generates the box edge texture: an opaque light border around a fully
// transparent center, so only the cube's edges show.
//
// Parameters:
//   - size: texture width and height in pixels
//   - border: border thickness in pixels
//
// Returns:
//   - *common.TextureStagingData: RGBA8 pixels
func FrameTexture(size, border int) *common.TextureStagingData {
	edge := common.ToRGBA8(common.HexColor(0xf2f2f2))
	pixels := make([]byte, size*size*4)
	for y := range size {
		for x := range size {
			if x >= border && x < size-border && y >= border && y < size-border {
				continue
			}
			i := (y*size + x) * 4
			copy(pixels[i:i+4], edge[:])
		}
	}
	return &common.TextureStagingData{
		Pixels: pixels,
		Width:  uint32(size),
		Height: uint32(size),
	}
}
