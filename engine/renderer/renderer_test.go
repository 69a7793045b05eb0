package renderer

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/light"
	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestGPUItemLayout(t *testing.T) {
	mesh := scene.NewMesh(model.NewPlane(1, 1), material.NewMaterial(
		material.WithHexColor(0xff0000),
		material.WithLit(false),
	))
	world := mgl32.Translate3D(1, 2, 3)
	item := NewGPUItem(scene.RenderItem{
		Mesh:   mesh,
		World:  world,
		Normal: mgl32.Ident3(),
	})

	require.Equal(t, 160, item.Size())
	buf := item.Marshal()
	require.Len(t, buf, 160)

	f := func(offset int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
	}
	require.Equal(t, float32(1), f(12*4))
	require.Equal(t, float32(2), f(13*4))
	require.Equal(t, float32(3), f(14*4))
	require.Equal(t, float32(1), f(64), "normal matrix starts with identity")
	require.Equal(t, float32(1), f(64+15*4), "widened normal matrix keeps w")
	require.Equal(t, float32(1), f(128), "color red")
	require.Equal(t, float32(0), f(144), "unlit flag")
}

func TestLayoutsMatchUniformSizes(t *testing.T) {
	var frame light.GPUFrame
	var item GPUItem

	frameLayout := frameLayoutDescriptor()
	require.Len(t, frameLayout.Entries, 1)
	require.Equal(t, uint64(frame.Size()), frameLayout.Entries[0].Buffer.MinBindingSize)

	itemLayout := itemLayoutDescriptor()
	require.Len(t, itemLayout.Entries, 3)
	require.Equal(t, uint64(item.Size()), itemLayout.Entries[itemUniformBinding].Buffer.MinBindingSize)
}

func TestMeshVertexLayout(t *testing.T) {
	var v model.GPUVertex
	layout := meshVertexLayout()
	require.Equal(t, uint64(v.Size()), layout.ArrayStride)
	require.Len(t, layout.Attributes, 3)
	for i, attr := range layout.Attributes {
		require.Equal(t, uint32(i), attr.ShaderLocation)
	}
}

func TestParseMSAA(t *testing.T) {
	require.Equal(t, MSAAOff, ParseMSAA(0))
	require.Equal(t, MSAAOff, ParseMSAA(1))
	require.Equal(t, MSAA4x, ParseMSAA(4))
	require.Equal(t, MSAA4x, ParseMSAA(8))
}

// flakyBackend fails its first `failures` InitBindGroup calls. Every other backend method is
// left to the nil embedded interface and must not be reached.
type flakyBackend struct {
	RendererBackend
	failures    int
	calls       int
	initialized []bind_group_provider.BindGroupProvider
}

func (b *flakyBackend) InitBindGroup(provider bind_group_provider.BindGroupProvider) error {
	b.calls++
	if b.calls <= b.failures {
		return errors.New("out of memory").WithType(ErrTypeResource)
	}
	b.initialized = append(b.initialized, provider)
	return nil
}

func TestItemForRetriesAfterFailedBindGroup(t *testing.T) {
	backend := &flakyBackend{failures: 1}
	r := &renderer{
		mu:       &sync.Mutex{},
		backend:  backend,
		items:    make(map[uint64]*itemResources),
		textures: make(map[*common.TextureStagingData]*wgpu.TextureView),
	}
	mesh := scene.NewMesh(model.NewPlane(1, 1), material.NewMaterial())

	_, err := r.itemFor(mesh)
	require.Error(t, err)
	require.Empty(t, r.items, "failed item must not be cached")

	provider, err := r.itemFor(mesh)
	require.NoError(t, err)
	require.Equal(t, 2, backend.calls, "second frame rebuilds the bind group")
	require.Len(t, backend.initialized, 1)
	require.Same(t, backend.initialized[0], provider)
	require.Contains(t, r.items, mesh.ID())

	again, err := r.itemFor(mesh)
	require.NoError(t, err)
	require.Same(t, provider, again)
	require.Equal(t, 2, backend.calls)
}

func TestItemLabel(t *testing.T) {
	unnamed := scene.NewMesh(model.NewPlane(1, 1), material.NewMaterial())
	require.Equal(t, fmt.Sprintf("item mesh#%d", unnamed.ID()), itemLabel(unnamed))

	named := scene.NewMesh(model.NewPlane(1, 1), material.NewMaterial(), scene.WithName("frame"))
	require.Equal(t, fmt.Sprintf("item frame#%d", named.ID()), itemLabel(named))
}
