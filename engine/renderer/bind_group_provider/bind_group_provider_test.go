package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBindGroupProviderDefaults(t *testing.T) {
	p := NewBindGroupProvider("frame")
	require.Equal(t, "frame", p.Label())
	require.Equal(t, -1, p.Group())
	require.Nil(t, p.BindGroup())
	require.Nil(t, p.Buffer(0))
	require.Nil(t, p.TextureView(1))
	require.Nil(t, p.Sampler(2))
	require.Zero(t, p.IndexCount())
}

func TestWithGroup(t *testing.T) {
	p := NewBindGroupProvider("item", WithGroup(1))
	require.Equal(t, 1, p.Group())
}

func TestReleaseClearsState(t *testing.T) {
	p := NewBindGroupProvider("mesh")
	p.SetMesh(nil, nil, 36)
	p.SetBuffer(0, nil)
	p.SetTextureView(1, nil)
	require.Equal(t, 36, p.IndexCount())

	p.Release()
	require.Zero(t, p.IndexCount())
	require.Nil(t, p.VertexBuffer())
	require.Nil(t, p.IndexBuffer())
}
