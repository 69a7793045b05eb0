package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry holds the vertex and index data of a triangle mesh in model space.
// Triangles are wound counter-clockwise when seen from the front.
//
// A Geometry is immutable after construction and may be shared between meshes.
type Geometry struct {
	name     string
	vertices []GPUVertex
	indices  []uint32
	radius   float32
}

// NewGeometry creates a new Geometry configured with the provided options.
// If no indices are supplied the vertices are treated as a triangle list.
//
// Parameters:
//   - options: variadic list of GeometryBuilderOption functions
//
// Returns:
//   - *Geometry: the geometry
func NewGeometry(options ...GeometryBuilderOption) *Geometry {
	g := &Geometry{}
	for _, opt := range options {
		opt(g)
	}
	if g.indices == nil {
		g.indices = make([]uint32, len(g.vertices))
		for i := range g.indices {
			g.indices[i] = uint32(i)
		}
	}
	for _, v := range g.vertices {
		if l := mgl32.Vec3(v.Position).Len(); l > g.radius {
			g.radius = l
		}
	}
	return g
}

// Name retrieves the geometry identifier.
func (g *Geometry) Name() string {
	return g.name
}

// Vertices returns the vertex list. Callers must not modify it.
func (g *Geometry) Vertices() []GPUVertex {
	return g.vertices
}

// Indices returns the index list. Callers must not modify it.
func (g *Geometry) Indices() []uint32 {
	return g.indices
}

// IndexCount returns the number of indices in the mesh.
func (g *Geometry) IndexCount() int {
	return len(g.indices)
}

// TriangleCount returns the number of triangles in the mesh.
func (g *Geometry) TriangleCount() int {
	return len(g.indices) / 3
}

// Triangle returns the three vertices of triangle i.
//
// Parameters:
//   - i: the triangle index in [0, TriangleCount())
//
// Returns:
//   - [3]GPUVertex: the triangle corners in winding order
func (g *Geometry) Triangle(i int) [3]GPUVertex {
	return [3]GPUVertex{
		g.vertices[g.indices[i*3]],
		g.vertices[g.indices[i*3+1]],
		g.vertices[g.indices[i*3+2]],
	}
}

// BoundingRadius returns the maximum vertex distance from the model origin.
func (g *Geometry) BoundingRadius() float32 {
	return g.radius
}

// VertexData serializes all vertices for a GPU vertex buffer.
//
// Returns:
//   - []byte: packed vertex data, 32 bytes per vertex
func (g *Geometry) VertexData() []byte {
	buf := make([]byte, 0, len(g.vertices)*32)
	for i := range g.vertices {
		buf = append(buf, g.vertices[i].Marshal()...)
	}
	return buf
}

// IndexData serializes the index list for a uint32 GPU index buffer.
//
// Returns:
//   - []byte: packed index data, 4 bytes per index
func (g *Geometry) IndexData() []byte {
	buf := make([]byte, len(g.indices)*4)
	for i, idx := range g.indices {
		buf[i*4] = byte(idx)
		buf[i*4+1] = byte(idx >> 8)
		buf[i*4+2] = byte(idx >> 16)
		buf[i*4+3] = byte(idx >> 24)
	}
	return buf
}

// Flat returns a non-indexed copy of the geometry where every triangle carries its own face
// normal, giving faceted shading.
//
// Returns:
//   - *Geometry: the flat shaded geometry
func (g *Geometry) Flat() *Geometry {
	verts := make([]GPUVertex, 0, len(g.indices))
	for i := 0; i < g.TriangleCount(); i++ {
		tri := g.Triangle(i)
		n := faceNormal(tri[0].Position, tri[1].Position, tri[2].Position)
		for _, v := range tri {
			v.Normal = n
			verts = append(verts, v)
		}
	}
	return NewGeometry(WithName(g.name+"-flat"), WithVertices(verts))
}

// faceNormal returns the unit normal of a counter-clockwise triangle, or zero for degenerate ones.
func faceNormal(a, b, c [3]float32) [3]float32 {
	va, vb, vc := mgl32.Vec3(a), mgl32.Vec3(b), mgl32.Vec3(c)
	n := vb.Sub(va).Cross(vc.Sub(va))
	if n.Len() == 0 {
		return [3]float32{}
	}
	return n.Normalize()
}
