package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func maskWriter(id uint8) StencilState {
	return StencilState{
		Enabled:     true,
		Compare:     CompareAlways,
		FailOp:      StencilKeep,
		DepthFailOp: StencilKeep,
		PassOp:      StencilReplace,
		ReadMask:    0xFF,
		WriteMask:   0xFF,
		Reference:   id,
	}
}

func TestStencilDisabledAlwaysPassesAndKeeps(t *testing.T) {
	s := DisabledStencil()
	for _, stored := range []uint8{0, 1, 200, 255} {
		require.True(t, s.Test(stored))
		require.Equal(t, stored, s.Update(stored, true, true))
	}
}

func TestStencilReplaceOnPass(t *testing.T) {
	s := maskWriter(5)
	require.True(t, s.Test(0))
	require.Equal(t, uint8(5), s.Update(0, true, true))
	require.Equal(t, uint8(3), s.Update(3, true, false), "depth fail keeps")
	require.Equal(t, uint8(3), s.Update(3, false, true), "stencil fail keeps")
}

func TestStencilEqualGatesOnReference(t *testing.T) {
	s := maskWriter(5)
	s.Compare = CompareEqual
	require.True(t, s.Test(5))
	require.False(t, s.Test(4))
	require.False(t, s.Test(0))
}

func TestStencilMasks(t *testing.T) {
	s := maskWriter(0x0F)
	s.Compare = CompareEqual
	s.ReadMask = 0x0F
	require.True(t, s.Test(0xAF), "bits outside the read mask are ignored")

	s.WriteMask = 0x0F
	require.Equal(t, uint8(0xAF), s.Update(0xA0, true, true), "bits outside the write mask survive")
}

func TestStencilOps(t *testing.T) {
	cases := []struct {
		op     StencilOp
		stored uint8
		want   uint8
	}{
		{StencilKeep, 7, 7},
		{StencilZero, 7, 0},
		{StencilReplace, 7, 9},
		{StencilInvert, 0x0F, 0xF0},
		{StencilIncrementClamp, 255, 255},
		{StencilIncrementClamp, 3, 4},
		{StencilDecrementClamp, 0, 0},
		{StencilIncrementWrap, 255, 0},
		{StencilDecrementWrap, 0, 255},
	}
	for _, c := range cases {
		t.Run(c.op.String(), func(t *testing.T) {
			s := maskWriter(9)
			s.PassOp = c.op
			require.Equal(t, c.want, s.Update(c.stored, true, true))
		})
	}
}

func TestCompareEval(t *testing.T) {
	require.True(t, Eval(CompareLess, uint8(1), uint8(2)))
	require.False(t, Eval(CompareLess, uint8(2), uint8(2)))
	require.True(t, Eval(CompareLessEqual, float32(0.5), float32(0.5)))
	require.True(t, Eval(CompareNotEqual, uint8(1), uint8(2)))
	require.False(t, Eval(CompareNever, uint8(1), uint8(1)))
	require.True(t, Eval(CompareAlways, float32(2), float32(1)))
	require.True(t, Eval(CompareGreaterEqual, uint8(3), uint8(3)))
}

func TestRasterStateKeyIgnoresReference(t *testing.T) {
	a := DefaultRasterState()
	a.Stencil = maskWriter(1)
	b := a
	b.Stencil.Reference = 200
	require.Equal(t, a.Key(), b.Key())

	c := a
	c.ColorWrite = false
	require.NotEqual(t, a.Key(), c.Key())

	d := a
	d.Stencil.Compare = CompareEqual
	require.NotEqual(t, a.Key(), d.Key())
}

func TestDepthPasses(t *testing.T) {
	s := DefaultRasterState()
	require.True(t, s.DepthPasses(0.4, 0.5))
	require.True(t, s.DepthPasses(0.5, 0.5))
	require.False(t, s.DepthPasses(0.6, 0.5))

	s.DepthTest = false
	require.True(t, s.DepthPasses(0.9, 0.1))
}
