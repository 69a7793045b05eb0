package raster

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/portal"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

const (
	testWidth  = 64
	testHeight = 48
)

// testViewProj looks down -Z from z=10 with a 90 degree vertical field of view, so the plane z=0
// spans y in [-10, 10].
func testViewProj() mgl32.Mat4 {
	proj := common.Perspective(mgl32.DegToRad(90), float32(testWidth)/testHeight, 0.01, 200)
	view := mgl32.LookAtV(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	return proj.Mul4(view)
}

func unlit(hex uint32, options ...material.MaterialBuilderOption) material.Material {
	return material.NewMaterial(append([]material.MaterialBuilderOption{material.WithHexColor(hex), material.WithLit(false)}, options...)...)
}

func backdrop(hex uint32, z float32) *scene.Mesh {
	return scene.NewMesh(model.NewPlane(100, 100), unlit(hex), scene.WithPosition(0, 0, z))
}

func newTestRasterizer(t *testing.T, options ...RasterizerBuilderOption) Rasterizer {
	r := NewRasterizer(testWidth, testHeight, options...)
	t.Cleanup(r.Close)
	return r
}

func TestClearAndSnapshot(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	fb.Clear([4]float32{1, 0, 0, 1}, 1, 7)
	require.Equal(t, [4]uint8{255, 0, 0, 255}, fb.ColorAt(3, 1))
	require.Equal(t, uint8(7), fb.StencilAt(0, 0))
	require.Equal(t, float32(1), fb.DepthAt(2, 1))

	img := fb.Snapshot()
	require.Equal(t, 4, img.Bounds().Dx())
	require.Equal(t, uint8(255), img.Pix[0])

	gray := fb.StencilSnapshot(10)
	require.Equal(t, uint8(70), gray.Pix[0])
}

func TestPlaneCoversScreen(t *testing.T) {
	s := scene.NewScene("plane")
	s.Add(backdrop(0x00ff00, 0))

	r := newTestRasterizer(t)
	stats := r.Render(s, testViewProj())
	require.Equal(t, 1, stats.Items)
	require.Equal(t, 2, stats.Triangles)
	require.Equal(t, int64(testWidth*testHeight), stats.Fragments)

	fb := r.Framebuffer()
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			require.Equal(t, [4]uint8{0, 255, 0, 255}, fb.ColorAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestBackFaceCulled(t *testing.T) {
	s := scene.NewScene("cull")
	s.Add(scene.NewMesh(model.NewPlane(100, 100), unlit(0x00ff00), scene.WithRotation(0, math.Pi, 0)))

	r := newTestRasterizer(t)
	r.Render(s, testViewProj())
	require.Equal(t, [4]uint8{0, 0, 0, 255}, r.Framebuffer().ColorAt(testWidth/2, testHeight/2))

	s2 := scene.NewScene("cull-back")
	s2.Add(scene.NewMesh(model.NewPlane(100, 100), unlit(0x00ff00, material.WithSide(material.SideBack)), scene.WithRotation(0, math.Pi, 0)))
	r.Render(s2, testViewProj())
	require.Equal(t, [4]uint8{0, 255, 0, 255}, r.Framebuffer().ColorAt(testWidth/2, testHeight/2))
}

func TestDepthTestKeepsNearest(t *testing.T) {
	s := scene.NewScene("depth")
	near := backdrop(0xff0000, 2)
	far := backdrop(0x0000ff, -2)
	far.SetRenderOrder(1)
	s.Add(near, far)

	r := newTestRasterizer(t)
	r.Render(s, testViewProj())
	fb := r.Framebuffer()
	require.Equal(t, [4]uint8{255, 0, 0, 255}, fb.ColorAt(10, 10))
	require.Less(t, fb.DepthAt(10, 10), float32(1))
}

func TestTransparentBlends(t *testing.T) {
	s := scene.NewScene("blend", scene.WithBackground(0x000000))
	s.Add(scene.NewMesh(model.NewPlane(100, 100), unlit(0xffffff, material.WithOpacity(0.5))))

	r := newTestRasterizer(t)
	r.Render(s, testViewProj())
	c := r.Framebuffer().ColorAt(5, 5)
	require.InDelta(t, 128, int(c[0]), 1)
}

func TestNearPlaneClipping(t *testing.T) {
	s := scene.NewScene("floor")
	s.Add(scene.NewMesh(model.NewPlane(100, 100), unlit(0x3d3b3b), scene.WithPosition(0, -7, 0), scene.WithRotation(-math.Pi/2, 0, 0)))

	r := newTestRasterizer(t)
	r.Render(s, testViewProj())
	fb := r.Framebuffer()
	require.Equal(t, common.ToRGBA8(common.HexColor(0x3d3b3b)), fb.ColorAt(testWidth/2, testHeight-1))
	require.Equal(t, [4]uint8{0, 0, 0, 255}, fb.ColorAt(testWidth/2, 0))
}

// buildSideBySide builds two portals whose masks split the view down the middle, each showing a
// full screen backdrop of its own color.
func buildSideBySide(t *testing.T, alloc portal.StencilAllocator) (scene.Scene, *portal.Unit, *portal.Unit) {
	t.Helper()
	c := portal.NewCompositor(alloc, portal.WithApertureSize(10, 10))

	left, err := c.Build(portal.Placement{Position: [3]float32{-5, 0, 0}}, backdrop(0xff0000, -5))
	require.NoError(t, err)
	right, err := c.Build(portal.Placement{Position: [3]float32{5, 0, 0}}, backdrop(0x0000ff, -5))
	require.NoError(t, err)

	s := scene.NewScene("portals")
	s.Add(left.Root(), right.Root())
	return s, left, right
}

func TestContentOnlyWhereStencilMatches(t *testing.T) {
	s, left, right := buildSideBySide(t, portal.NewStencilAllocator(portal.WithStart(4)))
	require.Equal(t, portal.StencilID(5), left.StencilID())
	require.Equal(t, portal.StencilID(6), right.StencilID())

	r := newTestRasterizer(t)
	r.Render(s, testViewProj())
	fb := r.Framebuffer()

	red := [4]uint8{255, 0, 0, 255}
	blue := [4]uint8{0, 0, 255, 255}
	counts := map[uint8]int{}
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			st := fb.StencilAt(x, y)
			counts[st]++
			c := fb.ColorAt(x, y)
			require.Equal(t, st == 5, c == red, "pixel %d,%d stencil %d", x, y, st)
			require.Equal(t, st == 6, c == blue, "pixel %d,%d stencil %d", x, y, st)
			if st == 0 {
				require.Equal(t, [4]uint8{0, 0, 0, 255}, c)
			}
		}
	}
	require.NotZero(t, counts[5])
	require.NotZero(t, counts[6])
	require.NotZero(t, counts[0])

	require.Equal(t, uint8(5), fb.StencilAt(testWidth/4, testHeight/2))
	require.Equal(t, uint8(6), fb.StencilAt(3*testWidth/4, testHeight/2))
	require.Equal(t, uint8(0), fb.StencilAt(testWidth/2, 0))
}

func TestMaskDoesNotWriteColorOrDepth(t *testing.T) {
	c := portal.NewCompositor(portal.NewStencilAllocator())
	u, err := c.Build(portal.Placement{})
	require.NoError(t, err)
	s := scene.NewScene("mask-only")
	s.Add(u.Root())

	r := newTestRasterizer(t)
	r.Render(s, testViewProj())
	fb := r.Framebuffer()
	require.Equal(t, uint8(1), fb.StencilAt(testWidth/2, testHeight/2))
	require.Equal(t, float32(1), fb.DepthAt(testWidth/2, testHeight/2))
	require.Equal(t, [4]uint8{0, 0, 0, 255}, fb.ColorAt(testWidth/2, testHeight/2))
}

func TestMaskBehindOccluderDoesNotStamp(t *testing.T) {
	c := portal.NewCompositor(portal.NewStencilAllocator())
	u, err := c.Build(portal.Placement{Position: [3]float32{0, 0, -1}})
	require.NoError(t, err)

	occluder := backdrop(0x00ff00, 1)
	occluder.SetRenderOrder(-1)
	s := scene.NewScene("occluded")
	s.Add(occluder, u.Root())

	r := newTestRasterizer(t)
	r.Render(s, testViewProj())
	require.Equal(t, uint8(0), r.Framebuffer().StencilAt(testWidth/2, testHeight/2))
}

func TestBandsMatchSingleWorker(t *testing.T) {
	s, _, _ := buildSideBySide(t, portal.NewStencilAllocator())
	vp := testViewProj()

	single := newTestRasterizer(t, WithWorkers(1), WithBandHeight(testHeight))
	single.Render(s, vp)
	banded := newTestRasterizer(t, WithWorkers(4), WithBandHeight(3))
	banded.Render(s, vp)

	require.Equal(t, single.Framebuffer().Color, banded.Framebuffer().Color)
	require.Equal(t, single.Framebuffer().Stencil, banded.Framebuffer().Stencil)
}

func TestResize(t *testing.T) {
	r := newTestRasterizer(t)
	r.Resize(8, 4)
	require.Equal(t, 8, r.Framebuffer().Width)
	require.Len(t, r.Framebuffer().Stencil, 32)
}
