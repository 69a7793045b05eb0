// Package impossiblebox assembles the impossible box: a rotating edge-8 cube whose six faces are
// portals into six pocket scenes, plus the floor and lights around it.
package impossiblebox

import (
	"math"
	"sync/atomic"

	"github.com/Carmen-Shannon/impossible-box/engine/light"
	"github.com/Carmen-Shannon/impossible-box/engine/model"
	"github.com/Carmen-Shannon/impossible-box/engine/portal"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer/material"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

const (
	// EdgeLength is the box edge and the portal aperture size.
	EdgeLength = 8

	boxYawSpeed    = 0.15
	objectYawSpeed = 0.05
	objectRollRate = 0.1
)

// face describes one pocket scene: where its portal sits and what is visible through it.
type face struct {
	name        string
	shellColor  uint32
	objectColor uint32
	objectFlat  bool
	object      func() *model.Geometry
	placement   portal.Placement
}

func rotation(rx, ry, rz float32) *[3]float32 {
	return &[3]float32{rx, ry, rz}
}

var faces = []face{
	{
		name:        "front",
		shellColor:  0xf5fa6e,
		objectColor: 0xff003c,
		object:      func() *model.Geometry { return model.NewBox(3, 3, 3) },
		placement:   portal.Placement{Position: [3]float32{0, 0, 4}},
	},
	{
		name:        "right",
		shellColor:  0x8ff2bf,
		objectColor: 0xfc68f7,
		objectFlat:  true,
		object:      func() *model.Geometry { return model.NewTorus(1.5, 1, 6, 6) },
		placement:   portal.Placement{Position: [3]float32{4, 0, 0}, Rotation: rotation(0, math.Pi/2, 0)},
	},
	{
		name:        "left",
		shellColor:  0xff003c,
		objectColor: 0xf5fa6e,
		object:      func() *model.Geometry { return model.NewDodecahedron(2) },
		placement:   portal.Placement{Position: [3]float32{-4, 0, 0}, Rotation: rotation(0, -math.Pi/2, 0)},
	},
	{
		name:        "back",
		shellColor:  0xf06748,
		objectColor: 0x426bff,
		objectFlat:  true,
		object:      func() *model.Geometry { return model.NewOctahedron(2) },
		placement:   portal.Placement{Position: [3]float32{0, 0, -4}, Rotation: rotation(0, math.Pi, 0)},
	},
	{
		name:        "top",
		shellColor:  0x426bff,
		objectColor: 0xf06748,
		objectFlat:  true,
		object:      func() *model.Geometry { return model.NewSphere(2, 6, 6) },
		placement:   portal.Placement{Position: [3]float32{0, 4, 0}, Rotation: rotation(-math.Pi/2, 0, 0)},
	},
	{
		name:        "bottom",
		shellColor:  0xfc68f7,
		objectColor: 0x8ff2bf,
		objectFlat:  true,
		object:      func() *model.Geometry { return model.NewCapsule(1, 2.5, 1, 6) },
		placement:   portal.Placement{Position: [3]float32{0, -4, 0}, Rotation: rotation(math.Pi/2, 0, 0)},
	},
}

// Box is the assembled impossible box.
type Box struct {
	spin atomic.Bool

	group   *scene.Group
	edges   *scene.Mesh
	floor   *scene.Mesh
	units   []*portal.Unit
	objects []*scene.Mesh
}

// Build adds the box, floor and lights to s. Portal ids are drawn from alloc, which must be the
// scene's only allocator. Nothing is added to the scene when a portal fails to build.
//
// Parameters:
//   - s: the scene to populate
//   - alloc: the scene's stencil allocator
//   - options: variadic list of BoxBuilderOption functions
//
// Returns:
//   - *Box: the box
//   - error: the wrapped portal build error
func Build(s scene.Scene, alloc portal.StencilAllocator, options ...BoxBuilderOption) (*Box, error) {
	b := &Box{
		group: scene.NewGroup(scene.WithName("impossible-box")),
	}
	b.spin.Store(true)
	for _, opt := range options {
		opt(b)
	}

	b.edges = scene.NewMesh(
		model.NewBox(EdgeLength, EdgeLength, EdgeLength),
		material.NewMaterial(
			material.WithName("box-edges"),
			material.WithTexture(FrameTexture(32, 2)),
			material.WithTransparent(true),
			material.WithSide(material.SideDouble),
			material.WithLit(false),
		),
		scene.WithName("box-edges"),
	)
	b.group.Add(b.edges)

	comp := portal.NewCompositor(alloc, portal.WithApertureSize(EdgeLength, EdgeLength))
	shell := model.NewSphere(12, 12, 12)
	for i, f := range faces {
		shellMesh := scene.NewMesh(shell, material.NewMaterial(
			material.WithName(f.name+"-shell"),
			material.WithHexColor(f.shellColor),
			material.WithFlatShading(true),
			material.WithSide(material.SideBack),
		), scene.WithName(f.name+"-shell"))

		object := scene.NewMesh(f.object(), material.NewMaterial(
			material.WithName(f.name+"-object"),
			material.WithHexColor(f.objectColor),
			material.WithFlatShading(f.objectFlat),
		), scene.WithName(f.name+"-object"))

		unit, err := comp.Build(f.placement, shellMesh, object)
		if err != nil {
			return nil, errors.New("building portal failed").
				WithTag("face", f.name).
				WithTag("index", i).
				Wrap(err)
		}
		b.units = append(b.units, unit)
		b.objects = append(b.objects, object)
	}
	for _, u := range b.units {
		b.group.Add(u.Root())
	}

	b.floor = scene.NewMesh(
		model.NewPlane(100, 100),
		material.NewMaterial(
			material.WithName("floor"),
			material.WithHexColor(0x3d3b3b),
			material.WithDepthWrite(false),
		),
		scene.WithName("floor"),
		scene.WithPosition(0, -7, 0),
		scene.WithRotation(-math.Pi/2, 0, 0),
	)

	s.Add(b.group, b.floor)
	for _, l := range Lights() {
		s.AddLight(l)
	}
	s.SetBackground([4]float32{0, 0, 0, 1})

	logs.WithTag("portals", len(b.units)).
		WithTag("first_stencil_id", b.units[0].StencilID()).
		WithTag("spin", b.Spinning()).
		Debug("impossible box built")
	return b, nil
}

// Lights returns the ambient fill and the two point lights above the box.
//
// Returns:
//   - []light.Light: the lights
func Lights() []light.Light {
	return []light.Light{
		light.NewLight(light.LightTypeAmbient,
			light.WithHexColor(0xffffff),
			light.WithIntensity(0.1),
		),
		light.NewLight(light.LightTypePoint,
			light.WithHexColor(0xffffff),
			light.WithIntensity(0.65),
			light.WithRange(50),
			light.WithDecay(0.7),
			light.WithPosition(-5, 12, 10),
		),
		light.NewLight(light.LightTypePoint,
			light.WithHexColor(0xffffff),
			light.WithIntensity(0.35),
			light.WithRange(50),
			light.WithDecay(0.7),
			light.WithPosition(4, 9, 4),
		),
	}
}

// Update advances the animation by dt seconds: the box turns about Y and, while spinning, each
// object turns a little faster than the one before it.
//
// Parameters:
//   - dt: elapsed time in seconds
func (b *Box) Update(dt float32) {
	b.group.Rotate(0, dt*boxYawSpeed, 0)
	if !b.spin.Load() {
		return
	}
	for i, o := range b.objects {
		k := float32(i + 1)
		o.Rotate(0, dt*objectYawSpeed*k, -dt*objectRollRate*k)
	}
}

// Spinning reports whether the pocket objects rotate. The box itself always turns.
func (b *Box) Spinning() bool {
	return b.spin.Load()
}

// SetSpin turns the pocket object rotation on or off. Safe to call while Update runs.
func (b *Box) SetSpin(spin bool) {
	b.spin.Store(spin)
}

// ToggleSpin flips the pocket object rotation.
func (b *Box) ToggleSpin() {
	for {
		old := b.spin.Load()
		if b.spin.CompareAndSwap(old, !old) {
			return
		}
	}
}

// Group returns the rotating group holding the edges and every portal.
func (b *Box) Group() *scene.Group {
	return b.group
}

// Units returns the six portal units in face order.
func (b *Box) Units() []*portal.Unit {
	return b.units
}

// Objects returns the foreground object of each pocket in face order.
func (b *Box) Objects() []*scene.Mesh {
	return b.objects
}

// Floor returns the floor plane.
func (b *Box) Floor() *scene.Mesh {
	return b.floor
}
