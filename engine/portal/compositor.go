package portal

import (
	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Placement locates a portal's mask quad relative to the parent the unit is added to.
type Placement struct {
	// Position is the quad center.
	Position [3]float32
	// Rotation is an optional Euler XYZ rotation in radians. Nil leaves the quad facing +Z.
	Rotation *[3]float32
}

// Unit is one built portal: a root group holding the masked content group and the mask quad.
// Units are siblings; none is nested in another.
type Unit struct {
	id        StencilID
	drawOrder int
	root      *scene.Group
	content   *scene.Group
	mask      *scene.Mesh
}

// StencilID returns the id the mask writes and every content mesh tests against.
func (u *Unit) StencilID() StencilID {
	return u.id
}

// DrawOrder returns the render order of the content group. It increases with allocation order,
// so a later unit's content never draws before an earlier unit's.
func (u *Unit) DrawOrder() int {
	return u.drawOrder
}

// Root returns the group to add to the scene.
func (u *Unit) Root() *scene.Group {
	return u.root
}

// Content returns the group holding the masked meshes.
func (u *Unit) Content() *scene.Group {
	return u.content
}

// Mask returns the stencil-writing quad.
func (u *Unit) Mask() *scene.Mesh {
	return u.mask
}

// compositor is the implementation of the Compositor interface.
type compositor struct {
	alloc     StencilAllocator
	width     float32
	height    float32
	maskColor [4]float32
	aperture  *model.Geometry
}

// Compositor builds portal units: an invisible quad that stamps a stencil id, plus content that
// only draws where that id was stamped. All units of one scene must come from compositors sharing
// one StencilAllocator.
type Compositor interface {
	// Build validates the inputs, allocates a stencil id and assembles a unit. The content meshes
	// are reparented into the unit's content group in the given order and their materials are
	// patched to read the id. Nothing is allocated or modified when validation fails.
	//
	// Parameters:
	//   - placement: where the mask quad sits
	//   - content: the meshes visible through the portal, in draw order; may be empty
	//
	// Returns:
	//   - *Unit: the built unit
	//   - error: ErrTypeInvalidPlacement, ErrTypeInvalidContent or ErrTypeResourceExhausted
	Build(placement Placement, content ...*scene.Mesh) (*Unit, error)

	// Allocator returns the allocator ids are drawn from.
	//
	// Returns:
	//   - StencilAllocator: the allocator
	Allocator() StencilAllocator

	// ApertureSize returns the mask quad size.
	//
	// Returns:
	//   - width, height: the quad extents
	ApertureSize() (width, height float32)
}

var _ Compositor = &compositor{}

// NewCompositor creates a compositor drawing ids from alloc. The aperture defaults to 8x8, which
// matches the faces of an edge-8 box.
//
// Parameters:
//   - alloc: the scene's stencil allocator
//   - options: variadic list of CompositorBuilderOption functions
//
// Returns:
//   - Compositor: the compositor
func NewCompositor(alloc StencilAllocator, options ...CompositorBuilderOption) Compositor {
	if alloc == nil {
		panic("portal: NewCompositor requires a non-nil StencilAllocator")
	}
	c := &compositor{
		alloc:     alloc,
		width:     8,
		height:    8,
		maskColor: common.HexColor(0xff0000),
	}
	for _, opt := range options {
		opt(c)
	}
	c.aperture = model.NewPlane(c.width, c.height)
	return c
}

func (c *compositor) Allocator() StencilAllocator {
	return c.alloc
}

func (c *compositor) ApertureSize() (width, height float32) {
	return c.width, c.height
}

func (c *compositor) Build(placement Placement, content ...*scene.Mesh) (*Unit, error) {
	if err := validatePlacement(placement); err != nil {
		instrumentBuildError(err)
		return nil, err
	}
	if err := validateContent(content); err != nil {
		instrumentBuildError(err)
		return nil, err
	}

	id, err := c.alloc.Next()
	if err != nil {
		err = errors.New("allocating portal stencil id failed").
			WithType(ErrTypeResourceExhausted).
			Wrap(err)
		instrumentBuildError(err)
		return nil, err
	}

	mask := c.newMask(placement, id)

	order := int(id)
	group := scene.NewGroup(scene.WithName("portal-content"), scene.WithRenderOrder(order))
	for _, m := range content {
		ApplyMaskState(m.Material(), id, RoleReader)
		group.Add(m)
	}

	root := scene.NewGroup(scene.WithName("portal"))
	root.Add(group, mask)

	logs.WithTag("stencil_id", id).
		WithTag("content", len(content)).
		Debug("portal unit built")
	instrumentUnitBuilt()

	return &Unit{
		id:        id,
		drawOrder: order,
		root:      root,
		content:   group,
		mask:      mask,
	}, nil
}

// newMask builds the stencil-writing quad for a placement.
func (c *compositor) newMask(placement Placement, id StencilID) *scene.Mesh {
	mat := material.NewMaterial(
		material.WithName("portal-mask"),
		material.WithColor(c.maskColor),
		material.WithSide(material.SideFront),
		material.WithLit(false),
	)
	ApplyMaskState(mat, id, RoleWriter)

	p := placement.Position
	opts := []scene.NodeBuilderOption{
		scene.WithName("portal-mask"),
		scene.WithPosition(p[0], p[1], p[2]),
	}
	if r := placement.Rotation; r != nil {
		opts = append(opts, scene.WithRotation(r[0], r[1], r[2]))
	}
	return scene.NewMesh(c.aperture, mat, opts...)
}

func validatePlacement(p Placement) error {
	if !common.IsFinite(p.Position[:]...) {
		return errors.New("portal position is not finite").
			WithType(ErrTypeInvalidPlacement).
			WithTag("position", p.Position)
	}
	if p.Rotation != nil && !common.IsFinite(p.Rotation[:]...) {
		return errors.New("portal rotation is not finite").
			WithType(ErrTypeInvalidPlacement).
			WithTag("rotation", *p.Rotation)
	}
	return nil
}

func validateContent(content []*scene.Mesh) error {
	seen := make(map[*scene.Mesh]struct{}, len(content))
	for i, m := range content {
		if m == nil {
			return errors.New("portal content mesh is nil").
				WithType(ErrTypeInvalidContent).
				WithTag("index", i)
		}
		if m.Material() == nil {
			return errors.New("portal content mesh has no material").
				WithType(ErrTypeInvalidContent).
				WithTag("index", i).
				WithTag("mesh", m.Name())
		}
		if _, dup := seen[m]; dup {
			return errors.New("portal content mesh listed twice").
				WithType(ErrTypeInvalidContent).
				WithTag("index", i).
				WithTag("mesh", m.Name())
		}
		seen[m] = struct{}{}
		if m.Parent() != nil {
			return errors.New("portal content mesh already has a parent").
				WithType(ErrTypeInvalidContent).
				WithTag("index", i).
				WithTag("mesh", m.Name())
		}
		if s := m.Material().Stencil(); s.Enabled && s.Reference != uint8(NoStencil) {
			return errors.New("portal content material is bound to another stencil id").
				WithType(ErrTypeInvalidContent).
				WithTag("index", i).
				WithTag("mesh", m.Name()).
				WithTag("stencil_id", s.Reference)
		}
	}
	return nil
}
