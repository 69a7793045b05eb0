package model

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func requireOutward(t *testing.T, g *Geometry) {
	t.Helper()
	checked := 0
	for i := 0; i < g.TriangleCount(); i++ {
		tri := g.Triangle(i)
		n := mgl32.Vec3(faceNormal(tri[0].Position, tri[1].Position, tri[2].Position))
		if n.Len() == 0 {
			continue
		}
		centroid := mgl32.Vec3(tri[0].Position).Add(tri[1].Position).Add(tri[2].Position).Mul(1.0 / 3)
		require.Greater(t, n.Dot(centroid), float32(0), "%s triangle %d faces inward", g.Name(), i)
		checked++
	}
	require.NotZero(t, checked)
}

func TestGPUVertexMarshal(t *testing.T) {
	v := GPUVertex{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0.5, 1}}
	buf := v.Marshal()
	require.Len(t, buf, 32)
	require.Equal(t, 32, v.Size())
}

func TestPlaneFacesPositiveZ(t *testing.T) {
	g := NewPlane(8, 4)
	require.Equal(t, 2, g.TriangleCount())
	for i := 0; i < g.TriangleCount(); i++ {
		tri := g.Triangle(i)
		n := faceNormal(tri[0].Position, tri[1].Position, tri[2].Position)
		require.InDelta(t, 1, n[2], 1e-6)
	}
	require.InDelta(t, mgl32.Vec2{4, 2}.Len(), g.BoundingRadius(), 1e-5)
}

func TestBoxLayout(t *testing.T) {
	g := NewBox(3, 3, 3)
	require.Len(t, g.Vertices(), 24)
	require.Equal(t, 36, g.IndexCount())
	requireOutward(t, g)
}

func TestPrimitivesFaceOutward(t *testing.T) {
	for _, g := range []*Geometry{
		NewBox(2, 4, 6),
		NewSphere(2, 6, 6),
		NewSphere(12, 12, 12),
		NewOctahedron(2),
		NewDodecahedron(2),
		NewCapsule(1, 2.5, 1, 6),
		NewCapsule(1, 2.5, 4, 12),
	} {
		requireOutward(t, g)
	}
}

func TestSphereRadius(t *testing.T) {
	g := NewSphere(12, 12, 12)
	require.InDelta(t, 12, g.BoundingRadius(), 1e-4)
	require.Len(t, g.Vertices(), 13*13)
}

func TestPolyhedraCounts(t *testing.T) {
	require.Equal(t, 8, NewOctahedron(2).TriangleCount())
	require.Equal(t, 36, NewDodecahedron(2).TriangleCount())
	require.InDelta(t, 2, NewDodecahedron(2).BoundingRadius(), 1e-5)
}

func TestTorusCounts(t *testing.T) {
	g := NewTorus(1.5, 1, 6, 6)
	require.Len(t, g.Vertices(), 7*7)
	require.Equal(t, 6*6*2, g.TriangleCount())
	require.InDelta(t, 2.5, g.BoundingRadius(), 1e-5)
}

func TestFlatUsesFaceNormals(t *testing.T) {
	g := NewSphere(1, 8, 6).Flat()
	require.Equal(t, len(g.Vertices()), g.IndexCount())
	for i := 0; i < g.TriangleCount(); i++ {
		tri := g.Triangle(i)
		require.Equal(t, tri[0].Normal, tri[1].Normal)
		require.Equal(t, tri[1].Normal, tri[2].Normal)
	}
}

func TestBufferData(t *testing.T) {
	g := NewBox(1, 1, 1)
	require.Len(t, g.VertexData(), 24*32)
	data := g.IndexData()
	require.Len(t, data, 36*4)
	require.Equal(t, byte(g.Indices()[1]), data[4])
}
