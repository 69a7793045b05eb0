package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/light"
	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func testMesh(options ...material.MaterialBuilderOption) *Mesh {
	return NewMesh(model.NewBox(1, 1, 1), material.NewMaterial(options...))
}

func testViewProj() mgl32.Mat4 {
	proj := common.Perspective(mgl32.DegToRad(50), 1, 0.01, 200)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func TestAddReparents(t *testing.T) {
	a := NewGroup()
	b := NewGroup()
	m := testMesh()

	a.Add(m)
	require.Equal(t, Node(a), m.Parent())
	b.Add(m)
	require.Equal(t, Node(b), m.Parent())
	require.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)

	b.Remove(m)
	require.Nil(t, m.Parent())
}

func TestWorldMatrixComposesParents(t *testing.T) {
	parent := NewGroup(WithPosition(0, 0, 4), WithRotation(0, float32(math.Pi/2), 0))
	child := testMesh()
	child.SetPosition(1, 0, 0)
	parent.Add(child)

	origin := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	require.InDelta(t, 0, origin[0], 1e-5)
	require.InDelta(t, 3, origin[2], 1e-5)
}

func TestRotateAccumulates(t *testing.T) {
	n := NewGroup()
	n.Rotate(0, 0.5, -0.1)
	n.Rotate(0, 0.5, -0.1)
	rx, ry, rz := n.Rotation()
	require.Zero(t, rx)
	require.InDelta(t, 1, ry, 1e-6)
	require.InDelta(t, -0.2, rz, 1e-6)
}

func TestTraverseSkipsSubtree(t *testing.T) {
	root := NewGroup()
	hidden := NewGroup()
	hidden.Add(testMesh())
	root.Add(hidden, testMesh())

	seen := 0
	root.Traverse(func(n Node) bool {
		seen++
		return n != Node(hidden)
	})
	require.Equal(t, 3, seen)
}

func TestRenderListGroupOrderFirst(t *testing.T) {
	s := NewScene("order")

	unit := NewGroup()
	content := NewGroup(WithRenderOrder(1))
	near := testMesh()
	near.SetPosition(0, 0, 5)
	near.SetRenderOrder(1)
	content.Add(near)
	mask := testMesh()
	mask.SetPosition(0, 0, -5)
	unit.Add(content, mask)
	s.Add(unit)

	items := s.RenderList(testViewProj())
	require.Len(t, items, 2)
	require.Equal(t, mask, items[0].Mesh)
	require.Equal(t, 0, items[0].GroupOrder)
	require.Equal(t, near, items[1].Mesh)
	require.Equal(t, 1, items[1].GroupOrder)
}

func TestRenderListDepthAndTransparency(t *testing.T) {
	s := NewScene("depth")
	far := testMesh()
	far.SetPosition(0, 0, -10)
	near := testMesh()
	near.SetPosition(0, 0, 10)
	glassFar := testMesh(material.WithOpacity(0.5))
	glassFar.SetPosition(0, 0, -10)
	glassNear := testMesh(material.WithOpacity(0.5))
	glassNear.SetPosition(0, 0, 10)
	s.Add(glassNear, far, glassFar, near)

	items := s.RenderList(testViewProj())
	require.Len(t, items, 4)
	require.Equal(t, near, items[0].Mesh)
	require.Equal(t, far, items[1].Mesh)
	require.Equal(t, glassFar, items[2].Mesh)
	require.Equal(t, glassNear, items[3].Mesh)
}

func TestRenderListIDTieBreak(t *testing.T) {
	s := NewScene("ties")
	first := testMesh()
	second := testMesh()
	s.Add(second, first)

	items := s.RenderList(testViewProj())
	require.Less(t, first.ID(), second.ID())
	require.Equal(t, first, items[0].Mesh)
}

func TestRenderListSkipsHiddenAndIncomplete(t *testing.T) {
	s := NewScene("skip")
	hidden := testMesh()
	hidden.SetVisible(false)
	s.Add(hidden, NewMesh(nil, material.NewMaterial()), NewMesh(model.NewBox(1, 1, 1), nil), testMesh())

	require.Len(t, s.RenderList(testViewProj()), 1)
	require.Equal(t, 4, s.Count())
}

func TestFlatShadingConvertsGeometry(t *testing.T) {
	geo := model.NewSphere(1, 6, 6)
	m := NewMesh(geo, material.NewMaterial(material.WithFlatShading(true)))
	require.Equal(t, len(m.Geometry().Vertices()), m.Geometry().IndexCount())
}

func TestSceneOptions(t *testing.T) {
	s := NewScene("opts", WithBackground(0xff0000), WithLights(light.NewLight(light.LightTypeAmbient)))
	require.Equal(t, [4]float32{1, 0, 0, 1}, s.Background())
	require.Len(t, s.Lights(), 1)
}
