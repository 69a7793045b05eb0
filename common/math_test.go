package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestComposeTRSTranslatesOrigin(t *testing.T) {
	m := ComposeTRS(mgl32.Vec3{4, -2, 1}, mgl32.Vec3{0, math.Pi / 2, 0}, mgl32.Vec3{1, 1, 1})
	p := m.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	require.InDelta(t, 4, p[0], 1e-5)
	require.InDelta(t, -2, p[1], 1e-5)
	require.InDelta(t, 1, p[2], 1e-5)
}

func TestEulerXYZYawTurnsPlusZIntoPlusX(t *testing.T) {
	// A quarter turn about +Y maps the +Z facing normal of a plane onto +X.
	n := EulerXYZ(mgl32.Vec3{0, math.Pi / 2, 0}).Mul4x1(mgl32.Vec4{0, 0, 1, 0})
	require.InDelta(t, 1, n[0], 1e-5)
	require.InDelta(t, 0, n[2], 1e-5)
}

func TestEulerXYZNegativePitchTurnsPlusZIntoPlusY(t *testing.T) {
	n := EulerXYZ(mgl32.Vec3{-math.Pi / 2, 0, 0}).Mul4x1(mgl32.Vec4{0, 0, 1, 0})
	require.InDelta(t, 1, n[1], 1e-5)
	require.InDelta(t, 0, n[2], 1e-5)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(50), 1, 0.5, 100)

	near := proj.Mul4x1(mgl32.Vec4{0, 0, -0.5, 1})
	far := proj.Mul4x1(mgl32.Vec4{0, 0, -100, 1})
	require.InDelta(t, 0, near[2]/near[3], 1e-5)
	require.InDelta(t, 1, far[2]/far[3], 1e-4)
}

func TestIsFinite(t *testing.T) {
	require.True(t, IsFinite(0, 1, -3.5))
	require.False(t, IsFinite(0, float32(math.NaN())))
	require.False(t, IsFinite(float32(math.Inf(-1))))
	require.True(t, IsFinite())
}

func TestHexColor(t *testing.T) {
	c := HexColor(0xff003c)
	require.Equal(t, float32(1), c[0])
	require.Equal(t, float32(0), c[1])
	require.InDelta(t, 60.0/255.0, c[2], 1e-6)
	require.Equal(t, float32(1), c[3])
	require.Equal(t, [4]uint8{0xff, 0x00, 0x3c, 0xff}, ToRGBA8(c))
}

func TestCoalesce(t *testing.T) {
	require.Equal(t, 3, Coalesce(0, 3, 4))
	require.Equal(t, "", Coalesce("", ""))
}

func TestTextureSampleWraps(t *testing.T) {
	tex := &TextureStagingData{
		Width:  2,
		Height: 1,
		Pixels: []byte{255, 0, 0, 255, 0, 0, 255, 128},
	}
	require.Equal(t, [4]float32{1, 0, 0, 1}, tex.Sample(0.1, 0.5))
	require.InDelta(t, 128.0/255.0, tex.Sample(1.9, 0.5)[3], 1e-6)

	var empty *TextureStagingData
	require.Equal(t, [4]float32{1, 1, 1, 1}, empty.Sample(0, 0))
}
