package scene

import (
	"sync"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/Carmen-Shannon/impossible-box/engine/light"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene defines the interface for the root of a scene graph. It owns the top level group, the
// lights and the clear color, and produces ordered render lists for the renderers.
type Scene interface {
	// Name returns the scene name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Root returns the top level group.
	//
	// Returns:
	//   - *Group: the root group
	Root() *Group

	// Add attaches nodes to the root group.
	//
	// Parameters:
	//   - nodes: the nodes to attach
	Add(nodes ...Node)

	// Remove detaches a node from the root group.
	//
	// Parameters:
	//   - n: the node to detach
	Remove(n Node)

	// AddLight registers a light.
	//
	// Parameters:
	//   - l: the light
	AddLight(l light.Light)

	// Lights returns a copy of the registered lights.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// Background returns the clear color.
	//
	// Returns:
	//   - [4]float32: RGBA clear color
	Background() [4]float32

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - rgba: the clear color
	SetBackground(rgba [4]float32)

	// Count returns the number of meshes in the graph.
	//
	// Returns:
	//   - int: the mesh count
	Count() int

	// RenderList walks the graph once and returns every visible drawable mesh in submission
	// order: opaque items first, then transparent ones. See RenderItem for the ordering keys.
	//
	// Parameters:
	//   - viewProj: the camera view-projection matrix, used for depth keys
	//
	// Returns:
	//   - []RenderItem: the ordered items
	RenderList(viewProj mgl32.Mat4) []RenderItem
}

type scene struct {
	mu *sync.RWMutex

	name       string
	root       *Group
	lights     []light.Light
	background [4]float32
}

var _ Scene = &scene{}

// NewScene creates an empty scene with a black background.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.RWMutex{},
		name:       name,
		root:       NewGroup(WithName(name + "-root")),
		background: [4]float32{0, 0, 0, 1},
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Root() *Group {
	return s.root
}

func (s *scene) Add(nodes ...Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Add(nodes...)
}

func (s *scene) Remove(n Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root.Remove(n)
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Background() [4]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *scene) SetBackground(rgba [4]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.background = rgba
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	s.root.Traverse(func(n Node) bool {
		if _, ok := n.(*Mesh); ok {
			count++
		}
		return true
	})
	return count
}

func (s *scene) RenderList(viewProj mgl32.Mat4) []RenderItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var opaque, transparent []RenderItem
	var walk func(n Node, parentWorld mgl32.Mat4, groupOrder int)
	walk = func(n Node, parentWorld mgl32.Mat4, groupOrder int) {
		if !n.Visible() {
			return
		}
		world := parentWorld.Mul4(n.LocalMatrix())
		switch v := n.(type) {
		case *Group:
			groupOrder = v.RenderOrder()
		case *Mesh:
			if v.Drawable() {
				item := RenderItem{
					Mesh:        v,
					World:       world,
					Normal:      common.NormalMatrix(world),
					GroupOrder:  groupOrder,
					RenderOrder: v.RenderOrder(),
					Z:           depthKey(viewProj, world),
					ID:          v.ID(),
				}
				if v.Material().Transparent() {
					transparent = append(transparent, item)
				} else {
					opaque = append(opaque, item)
				}
			}
		}
		for _, c := range n.Children() {
			walk(c, world, groupOrder)
		}
	}
	walk(s.root, mgl32.Ident4(), 0)

	sortOpaque(opaque)
	sortTransparent(transparent)
	return append(opaque, transparent...)
}

// depthKey projects the node origin and returns its normalized device depth.
func depthKey(viewProj, world mgl32.Mat4) float32 {
	clip := viewProj.Mul4x1(world.Col(3))
	if clip[3] == 0 {
		return clip[2]
	}
	return clip[2] / clip[3]
}
