package light

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxGPULights is the number of point lights the mesh shader evaluates per frame.
// Extra point lights are ignored by the GPU pipeline.
const MaxGPULights = 4

// GPUPointLight is the GPU-aligned representation of a single point light.
// Matches the WGSL PointLight struct layout exactly.
// Size: 32 bytes (std140 aligned).
type GPUPointLight struct {
	Position [3]float32 // offset  0: world-space position
	Range    float32    // offset 12: falloff distance, 0 = unbounded
	Color    [3]float32 // offset 16: RGB color multiplied by intensity
	Decay    float32    // offset 28: falloff exponent
}

// GPUFrame is the per-frame uniform bound at group 0, matching the WGSL Frame struct.
// Size: 240 bytes (std140 aligned).
type GPUFrame struct {
	ViewProj   [16]float32                 // offset   0: camera view-projection matrix
	CameraPos  [4]float32                  // offset  64: camera world position (w unused)
	Ambient    [4]float32                  // offset  80: ambient light (w unused)
	LightCount [4]uint32                   // offset  96: x = number of valid lights
	Lights     [MaxGPULights]GPUPointLight // offset 112: point lights
}

// NewGPUFrame packs the camera and scene lights into the frame uniform.
//
// Parameters:
//   - viewProj: the camera view-projection matrix
//   - cameraPos: the camera world position
//   - lights: the scene lights
//
// Returns:
//   - GPUFrame: the frame uniform
func NewGPUFrame(viewProj mgl32.Mat4, cameraPos mgl32.Vec3, lights []Light) GPUFrame {
	ambient := Ambient(lights)
	f := GPUFrame{
		ViewProj:  viewProj,
		CameraPos: [4]float32{cameraPos[0], cameraPos[1], cameraPos[2], 1},
		Ambient:   [4]float32{ambient[0], ambient[1], ambient[2], 1},
	}
	n := 0
	for _, l := range lights {
		if n == MaxGPULights {
			break
		}
		if !l.Enabled() || l.Type() != LightTypePoint {
			continue
		}
		f.Lights[n] = GPUPointLight{
			Position: l.Position(),
			Range:    l.Range(),
			Color:    l.Radiance(),
			Decay:    l.Decay(),
		}
		n++
	}
	f.LightCount[0] = uint32(n)
	return f
}

// Size returns the size of the GPUFrame struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (240)
func (g *GPUFrame) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUFrame struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 240-byte buffer ready for GPU upload
func (g *GPUFrame) Marshal() []byte {
	buf := make([]byte, 240)
	off := 0
	putF := func(vs ...float32) {
		for _, v := range vs {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	putF(g.ViewProj[:]...)
	putF(g.CameraPos[:]...)
	putF(g.Ambient[:]...)
	for _, c := range g.LightCount {
		binary.LittleEndian.PutUint32(buf[off:], c)
		off += 4
	}
	for _, l := range g.Lights {
		putF(l.Position[:]...)
		putF(l.Range)
		putF(l.Color[:]...)
		putF(l.Decay)
	}
	return buf
}
