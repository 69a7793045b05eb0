package portal

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func rot(x, y, z float32) *[3]float32 {
	return &[3]float32{x, y, z}
}

var facePlacements = []Placement{
	{Position: [3]float32{0, 0, 4}},
	{Position: [3]float32{4, 0, 0}, Rotation: rot(0, math.Pi/2, 0)},
	{Position: [3]float32{-4, 0, 0}, Rotation: rot(0, -math.Pi/2, 0)},
	{Position: [3]float32{0, 0, -4}, Rotation: rot(0, math.Pi, 0)},
	{Position: [3]float32{0, 4, 0}, Rotation: rot(-math.Pi/2, 0, 0)},
	{Position: [3]float32{0, -4, 0}, Rotation: rot(math.Pi/2, 0, 0)},
}

func shellAndObject() (*scene.Mesh, *scene.Mesh) {
	shell := scene.NewMesh(model.NewSphere(12, 12, 12),
		material.NewMaterial(material.WithHexColor(0xf5fa6e), material.WithSide(material.SideBack), material.WithFlatShading(true)))
	obj := scene.NewMesh(model.NewBox(3, 3, 3), material.NewMaterial(material.WithHexColor(0xff003c)))
	return shell, obj
}

func requireUnitConsistent(t *testing.T, u *Unit) {
	t.Helper()
	mask := u.Mask().Material()
	require.False(t, mask.ColorWrite())
	require.False(t, mask.DepthWrite())
	require.Equal(t, StencilStateFor(u.StencilID(), RoleWriter), mask.Stencil())
	require.Equal(t, pipeline.CompareAlways, mask.Stencil().Compare)
	require.Equal(t, pipeline.StencilReplace, mask.Stencil().PassOp)
	require.Equal(t, pipeline.StencilKeep, mask.Stencil().FailOp)
	require.Equal(t, pipeline.StencilKeep, mask.Stencil().DepthFailOp)
	require.Equal(t, uint8(0xFF), mask.Stencil().WriteMask)
	require.Equal(t, 0, u.Mask().RenderOrder())

	for _, c := range u.Content().Children() {
		m := c.(*scene.Mesh).Material()
		require.Equal(t, mask.Stencil().Reference, m.Stencil().Reference)
		require.Equal(t, pipeline.CompareEqual, m.Stencil().Compare)
		require.Equal(t, mask.Stencil().PassOp, m.Stencil().PassOp)
		require.Equal(t, mask.Stencil().WriteMask, m.Stencil().WriteMask)
	}
	require.Equal(t, u.DrawOrder(), u.Content().RenderOrder())
	require.Equal(t, []scene.Node{u.Content(), u.Mask()}, u.Root().Children())
}

func TestBuildSixFaces(t *testing.T) {
	c := NewCompositor(NewStencilAllocator())

	var prev *Unit
	for i, p := range facePlacements {
		shell, obj := shellAndObject()
		u, err := c.Build(p, shell, obj)
		require.NoError(t, err)
		require.Equal(t, StencilID(i+1), u.StencilID())
		require.Len(t, u.Content().Children(), 2)
		require.Equal(t, scene.Node(shell), u.Content().Children()[0])
		requireUnitConsistent(t, u)

		x, y, z := u.Mask().Position()
		require.Equal(t, p.Position, [3]float32{x, y, z})
		if prev != nil {
			require.Greater(t, u.DrawOrder(), prev.DrawOrder())
		}
		prev = u
	}
}

func TestBuildPreSeeded(t *testing.T) {
	c := NewCompositor(NewStencilAllocator(WithStart(40)))
	for i, p := range facePlacements {
		shell, obj := shellAndObject()
		u, err := c.Build(p, shell, obj)
		require.NoError(t, err)
		require.Equal(t, StencilID(41+i), u.StencilID())
	}
}

func TestBuildEmptyContent(t *testing.T) {
	a := NewStencilAllocator()
	c := NewCompositor(a)

	u, err := c.Build(Placement{Position: [3]float32{0, 0, 4}})
	require.NoError(t, err)
	require.Equal(t, StencilID(1), u.StencilID())
	require.Empty(t, u.Content().Children())
	requireUnitConsistent(t, u)

	u2, err := c.Build(Placement{})
	require.NoError(t, err)
	require.NotEqual(t, u.StencilID(), u2.StencilID())
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	c := NewCompositor(NewStencilAllocator())
	shell, obj := shellAndObject()
	content := []*scene.Mesh{shell, obj}
	r := rot(0, 1, 0)
	p := Placement{Position: [3]float32{4, 0, 0}, Rotation: r}

	_, err := c.Build(p, content...)
	require.NoError(t, err)
	require.Equal(t, [3]float32{4, 0, 0}, p.Position)
	require.Equal(t, [3]float32{0, 1, 0}, *r)
	require.Equal(t, []*scene.Mesh{shell, obj}, content)

	require.Equal(t, material.SideBack, shell.Material().Side())
	require.True(t, shell.Material().ColorWrite())
	require.True(t, shell.Material().DepthWrite())
	require.Equal(t, 0, shell.RenderOrder())
	x, y, z := shell.Position()
	require.Equal(t, [3]float32{}, [3]float32{x, y, z})
}

func TestBuildMaskFollowsRotation(t *testing.T) {
	c := NewCompositor(NewStencilAllocator(), WithApertureSize(4, 2))
	u, err := c.Build(Placement{Position: [3]float32{4, 0, 0}, Rotation: rot(0, math.Pi/2, 0)})
	require.NoError(t, err)

	_, ry, _ := u.Mask().Rotation()
	require.InDelta(t, math.Pi/2, ry, 1e-6)
	require.InDelta(t, math.Hypot(2, 1), u.Mask().Geometry().BoundingRadius(), 1e-5)
	w, h := c.ApertureSize()
	require.Equal(t, float32(4), w)
	require.Equal(t, float32(2), h)
}

func TestBuildValidation(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	parented, _ := shellAndObject()
	scene.NewGroup().Add(parented)

	bound, _ := shellAndObject()
	ApplyMaskState(bound.Material(), 9, RoleReader)

	dup, _ := shellAndObject()

	tests := []struct {
		name      string
		placement Placement
		content   []*scene.Mesh
		errType   string
	}{
		{name: "nan position", placement: Placement{Position: [3]float32{nan, 0, 0}}, errType: ErrTypeInvalidPlacement},
		{name: "inf rotation", placement: Placement{Rotation: rot(0, inf, 0)}, errType: ErrTypeInvalidPlacement},
		{name: "nil mesh", content: []*scene.Mesh{nil}, errType: ErrTypeInvalidContent},
		{name: "nil material", content: []*scene.Mesh{scene.NewMesh(model.NewBox(1, 1, 1), nil)}, errType: ErrTypeInvalidContent},
		{name: "duplicate", content: []*scene.Mesh{dup, dup}, errType: ErrTypeInvalidContent},
		{name: "already parented", content: []*scene.Mesh{parented}, errType: ErrTypeInvalidContent},
		{name: "bound to another portal", content: []*scene.Mesh{bound}, errType: ErrTypeInvalidContent},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			a := NewStencilAllocator()
			c := NewCompositor(a)

			u, err := c.Build(test.placement, test.content...)
			require.Nil(t, u)
			require.Error(t, err)
			require.True(t, errors.IsType(err, test.errType))
			require.Equal(t, NoStencil, a.Peek())
		})
	}
}

func TestBuildExhausted(t *testing.T) {
	a := NewStencilAllocator(WithBits(1))
	c := NewCompositor(a)

	_, err := c.Build(Placement{})
	require.NoError(t, err)

	shell, obj := shellAndObject()
	u, err := c.Build(Placement{}, shell, obj)
	require.Nil(t, u)
	require.True(t, errors.IsType(err, ErrTypeResourceExhausted))
	require.False(t, shell.Material().Stencil().Enabled)
	require.Nil(t, shell.Parent())
}

func TestCompositorsShareAllocator(t *testing.T) {
	a := NewStencilAllocator()
	big := NewCompositor(a)
	small := NewCompositor(a, WithApertureSize(2, 2), WithMaskColor(0x00ff00))

	u1, err := big.Build(Placement{})
	require.NoError(t, err)
	u2, err := small.Build(Placement{})
	require.NoError(t, err)
	require.Equal(t, StencilID(1), u1.StencilID())
	require.Equal(t, StencilID(2), u2.StencilID())
	require.Equal(t, [4]float32{0, 1, 0, 1}, u2.Mask().Material().Color())
}

func TestApplyMaskStateKeepsSurface(t *testing.T) {
	m := material.NewMaterial(material.WithHexColor(0x426bff), material.WithFlatShading(true))
	ApplyMaskState(m, 4, RoleReader)
	require.True(t, m.ColorWrite())
	require.True(t, m.DepthWrite())
	require.True(t, m.FlatShading())
	require.Equal(t, uint8(4), m.Stencil().Reference)

	ApplyMaskState(m, 4, RoleWriter)
	require.False(t, m.ColorWrite())
	require.False(t, m.DepthWrite())
	require.Equal(t, "writer", RoleWriter.String())
}
