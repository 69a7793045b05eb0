package light

import (
	"encoding/binary"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestAmbientOnly(t *testing.T) {
	lights := []Light{NewLight(LightTypeAmbient, WithIntensity(0.1))}
	got := Illuminate(lights, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	require.InDeltaSlice(t, []float32{0.1, 0.1, 0.1}, got[:], 1e-6)
}

func TestPointLightLambert(t *testing.T) {
	p := NewLight(LightTypePoint, WithPosition(0, 10, 0), WithIntensity(1), WithRange(0))
	facing := Illuminate([]Light{p}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	require.InDelta(t, 1, facing[0], 1e-6)

	away := Illuminate([]Light{p}, mgl32.Vec3{}, mgl32.Vec3{0, -1, 0})
	require.Zero(t, away[0])
}

func TestPointLightFalloff(t *testing.T) {
	p := NewLight(LightTypePoint, WithPosition(0, 5, 0), WithRange(10), WithDecay(1))
	got := Illuminate([]Light{p}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	require.InDelta(t, 0.5, got[1], 1e-5)

	beyond := Illuminate([]Light{p}, mgl32.Vec3{0, -20, 0}, mgl32.Vec3{0, 1, 0})
	require.Zero(t, beyond[1])
}

func TestDisabledLightIgnored(t *testing.T) {
	p := NewLight(LightTypePoint, WithPosition(0, 1, 0), WithEnabled(false))
	got := Illuminate([]Light{p}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	require.Equal(t, mgl32.Vec3{}, got)
}

func TestGPUFrameMarshal(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithIntensity(0.1)),
		NewLight(LightTypePoint, WithPosition(-5, 12, 10), WithIntensity(0.65), WithRange(50), WithDecay(0.7)),
		NewLight(LightTypePoint, WithPosition(4, 9, 4), WithIntensity(0.35), WithRange(50), WithDecay(0.7)),
	}
	f := NewGPUFrame(mgl32.Ident4(), mgl32.Vec3{0, 0, 20}, lights)
	require.Equal(t, uint32(2), f.LightCount[0])
	require.Equal(t, float32(50), f.Lights[0].Range)

	buf := f.Marshal()
	require.Len(t, buf, 240)
	require.Equal(t, 240, f.Size())
	require.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf[96:]))
}
