package model

// GeometryBuilderOption is a functional option for configuring a Geometry via NewGeometry.
type GeometryBuilderOption func(*Geometry)

// WithName is an option builder that sets the name of the Geometry.
//
// Parameters:
//   - name: the geometry identifier
//
// Returns:
//   - GeometryBuilderOption: a function that applies the name option
func WithName(name string) GeometryBuilderOption {
	return func(g *Geometry) {
		g.name = name
	}
}

// WithVertices is an option builder that sets the vertex list.
//
// Parameters:
//   - vertices: the vertices
//
// Returns:
//   - GeometryBuilderOption: a function that applies the vertices option
func WithVertices(vertices []GPUVertex) GeometryBuilderOption {
	return func(g *Geometry) {
		g.vertices = vertices
	}
}

// WithIndices is an option builder that sets the triangle index list.
//
// Parameters:
//   - indices: three indices per triangle
//
// Returns:
//   - GeometryBuilderOption: a function that applies the indices option
func WithIndices(indices []uint32) GeometryBuilderOption {
	return func(g *Geometry) {
		g.indices = indices
	}
}
