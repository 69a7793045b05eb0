package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ambient sums the radiance of all enabled ambient lights.
//
// Parameters:
//   - lights: the scene lights
//
// Returns:
//   - mgl32.Vec3: the ambient term
func Ambient(lights []Light) mgl32.Vec3 {
	var total mgl32.Vec3
	for _, l := range lights {
		if l.Enabled() && l.Type() == LightTypeAmbient {
			total = total.Add(l.Radiance())
		}
	}
	return total
}

// Illuminate evaluates the lambert lighting model at a surface point. It mirrors the mesh shader
// so the CPU and GPU pipelines agree.
//
// Parameters:
//   - lights: the scene lights
//   - pos: world-space surface position
//   - normal: unit world-space surface normal
//
// Returns:
//   - mgl32.Vec3: the light multiplier to apply to the base color
func Illuminate(lights []Light, pos, normal mgl32.Vec3) mgl32.Vec3 {
	total := Ambient(lights)
	for _, l := range lights {
		if !l.Enabled() || l.Type() != LightTypePoint {
			continue
		}
		toLight := mgl32.Vec3(l.Position()).Sub(pos)
		dist := toLight.Len()
		ndotl := max(normal.Dot(toLight.Mul(1/max(dist, 1e-4))), 0)
		atten := float32(1)
		if r := l.Range(); r > 0 {
			falloff := min(max(1-dist/r, 0), 1)
			atten = float32(math.Pow(float64(falloff), float64(l.Decay())))
		}
		total = total.Add(mgl32.Vec3(l.Radiance()).Mul(ndotl * atten))
	}
	return total
}
