package scene

import (
	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
)

// Group is a transform-only node. Its render order becomes the group order of every mesh below it
// until a nested group overrides it.
type Group struct {
	*node
}

// NewGroup creates an empty group.
//
// Parameters:
//   - options: variadic list of NodeBuilderOption functions
//
// Returns:
//   - *Group: the group
func NewGroup(options ...NodeBuilderOption) *Group {
	g := &Group{}
	g.node = newNode(g, options...)
	return g
}

// Mesh is a drawable node pairing a geometry with a material.
type Mesh struct {
	*node
	geometry *model.Geometry
	material material.Material
}

// NewMesh creates a drawable node. When the material asks for flat shading the geometry is
// converted to per-face normals once here.
// A nil geometry or material is accepted; such meshes are never drawn.
//
// Parameters:
//   - geometry: the triangle mesh
//   - mat: the material
//   - options: variadic list of NodeBuilderOption functions
//
// Returns:
//   - *Mesh: the mesh
func NewMesh(geometry *model.Geometry, mat material.Material, options ...NodeBuilderOption) *Mesh {
	if geometry != nil && mat != nil && mat.FlatShading() {
		geometry = geometry.Flat()
	}
	m := &Mesh{geometry: geometry, material: mat}
	m.node = newNode(m, options...)
	return m
}

// Geometry returns the mesh geometry.
func (m *Mesh) Geometry() *model.Geometry {
	return m.geometry
}

// Material returns the mesh material.
func (m *Mesh) Material() material.Material {
	return m.material
}

// Drawable reports whether the mesh has both geometry and a material.
func (m *Mesh) Drawable() bool {
	return m.geometry != nil && m.material != nil
}
