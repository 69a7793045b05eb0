package impossiblebox

import (
	"testing"

	"github.com/Carmen-Shannon/impossible-box/engine/camera"
	"github.com/Carmen-Shannon/impossible-box/engine/portal"
	"github.com/Carmen-Shannon/impossible-box/engine/raster"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestBuildSixPortals(t *testing.T) {
	s := scene.NewScene("box")
	b, err := Build(s, portal.NewStencilAllocator())
	require.NoError(t, err)

	require.Len(t, b.Units(), 6)
	require.Len(t, b.Objects(), 6)
	for i, u := range b.Units() {
		require.Equal(t, portal.StencilID(i+1), u.StencilID())
		require.Len(t, u.Content().Children(), 2)

		ref := u.Mask().Material().Stencil().Reference
		require.Equal(t, uint8(u.StencilID()), uint8(ref))
		for _, child := range u.Content().Children() {
			mesh := child.(*scene.Mesh)
			require.Equal(t, pipeline.CompareEqual, mesh.Material().Stencil().Compare)
			require.Equal(t, ref, mesh.Material().Stencil().Reference)
		}
	}
	require.Len(t, s.Lights(), 3)
	require.Equal(t, [4]float32{0, 0, 0, 1}, s.Background())
}

func TestBuildExhaustedAllocator(t *testing.T) {
	s := scene.NewScene("box")
	_, err := Build(s, portal.NewStencilAllocator(portal.WithStart(252)))
	require.Error(t, err)
	require.True(t, errors.IsType(err, portal.ErrTypeResourceExhausted))
	require.Empty(t, s.Root().Children())
}

func TestUpdateTurnsBoxAndObjects(t *testing.T) {
	b, err := Build(scene.NewScene("box"), portal.NewStencilAllocator())
	require.NoError(t, err)

	b.Update(2)
	_, yaw, _ := b.Group().Rotation()
	require.InDelta(t, 0.3, yaw, 1e-6)

	_, objYaw, objRoll := b.Objects()[2].Rotation()
	require.InDelta(t, 0.3, objYaw, 1e-6)
	require.InDelta(t, -0.6, objRoll, 1e-6)
}

func TestUpdateWithoutSpin(t *testing.T) {
	b, err := Build(scene.NewScene("box"), portal.NewStencilAllocator(), WithSpin(false))
	require.NoError(t, err)

	require.False(t, b.Spinning())
	b.Update(1)
	_, yaw, _ := b.Group().Rotation()
	require.InDelta(t, 0.15, yaw, 1e-6)
	for _, o := range b.Objects() {
		rx, ry, rz := o.Rotation()
		require.Zero(t, rx)
		require.Zero(t, ry)
		require.Zero(t, rz)
	}
}

func TestToggleSpin(t *testing.T) {
	b, err := Build(scene.NewScene("box"), portal.NewStencilAllocator())
	require.NoError(t, err)
	require.True(t, b.Spinning())
	b.ToggleSpin()
	require.False(t, b.Spinning())
	b.SetSpin(true)
	require.True(t, b.Spinning())
}

func TestFrameTexture(t *testing.T) {
	tex := FrameTexture(8, 1)
	require.Len(t, tex.Pixels, 8*8*4)
	require.Equal(t, byte(255), tex.Pixels[3], "corner is opaque")
	center := (4*8 + 4) * 4
	require.Equal(t, byte(0), tex.Pixels[center+3], "center is transparent")
}

func TestFrontPortalShowsItsPocket(t *testing.T) {
	s := scene.NewScene("box")
	_, err := Build(s, portal.NewStencilAllocator())
	require.NoError(t, err)

	cam := camera.NewCamera(camera.WithController(camera.NewOrbitController()))
	cam.Update()

	r := raster.NewRasterizer(64, 64, raster.WithWorkers(2))
	defer r.Close()
	r.Render(s, cam.ViewProjectionMatrix())
	fb := r.Framebuffer()

	require.Equal(t, uint8(1), fb.StencilAt(32, 32), "front mask stamped the center")
	c := fb.ColorAt(32, 32)
	require.Greater(t, c[0], c[1], "red cube of the front pocket")
	require.Greater(t, c[0], c[2])

	require.Equal(t, uint8(0), fb.StencilAt(2, 32))
	require.Equal(t, [4]uint8{0, 0, 0, 255}, fb.ColorAt(2, 32))
}
