package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMeshSourceDeclaresEntryPoints(t *testing.T) {
	s := NewShader("mesh", MeshSource)
	require.Equal(t, "mesh", s.Key())
	require.True(t, strings.Contains(s.Source(), "fn "+s.VertexEntryPoint()+"("))
	require.True(t, strings.Contains(s.Source(), "fn "+s.FragmentEntryPoint()+"("))
	require.Equal(t, MeshSource, s.Module().WGSLDescriptor.Code)
}

func TestNewShaderOptions(t *testing.T) {
	s := NewShader("custom", "@vertex fn a() {}", WithEntryPoints("a", "b"))
	require.Equal(t, "a", s.VertexEntryPoint())
	require.Equal(t, "b", s.FragmentEntryPoint())
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	require.Panics(t, func() { NewShader("empty", "") })
}
