package scene

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/go-gl/mathgl/mgl32"
)

// nextNodeID is the source of node identifiers. IDs increase with creation order and are used as
// the final tie-breaker when sorting render lists.
var nextNodeID atomic.Uint64

// node is the shared implementation behind Group and Mesh.
type node struct {
	mu *sync.RWMutex

	id      uint64
	name    string
	self    Node
	visible atomic.Bool

	parent   Node
	children []Node

	position    [3]float32
	rotation    [3]float32
	scale       [3]float32
	renderOrder int
}

// Node defines the interface shared by every element of the scene graph.
//
// A node owns a local transform (translation, Euler XYZ rotation in radians, scale) relative to
// its parent and an ordered list of children. Transforms are guarded per node so an animation
// tick may update them while a frame is being built.
type Node interface {
	// ID returns the node's unique identifier.
	//
	// Returns:
	//   - uint64: the node ID
	ID() uint64

	// Name returns the node's debug name.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Parent returns the node this node is attached to, or nil.
	//
	// Returns:
	//   - Node: the parent or nil
	Parent() Node

	// Children returns a copy of the child list in insertion order.
	//
	// Returns:
	//   - []Node: the children
	Children() []Node

	// Add attaches children to this node, detaching each from any previous parent first.
	// Adding a node to itself is ignored.
	//
	// Parameters:
	//   - children: the nodes to attach
	Add(children ...Node)

	// Remove detaches a child. Unknown nodes are ignored.
	//
	// Parameters:
	//   - child: the node to detach
	Remove(child Node)

	// Position returns the local translation.
	//
	// Returns:
	//   - x, y, z: position components
	Position() (x, y, z float32)

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// Rotation returns the local Euler XYZ rotation in radians.
	//
	// Returns:
	//   - rx, ry, rz: rotation angles
	Rotation() (rx, ry, rz float32)

	// SetRotation sets the local Euler XYZ rotation in radians.
	//
	// Parameters:
	//   - rx, ry, rz: rotation angles
	SetRotation(rx, ry, rz float32)

	// Rotate adds to the local rotation.
	//
	// Parameters:
	//   - dx, dy, dz: rotation deltas in radians
	Rotate(dx, dy, dz float32)

	// Scale returns the local scale.
	//
	// Returns:
	//   - sx, sy, sz: scale components
	Scale() (sx, sy, sz float32)

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - sx, sy, sz: scale components
	SetScale(sx, sy, sz float32)

	// RenderOrder returns the draw order tag. For a group it becomes the group order of every
	// mesh below it; for a mesh it orders draws within the same group order.
	//
	// Returns:
	//   - int: the render order
	RenderOrder() int

	// SetRenderOrder sets the draw order tag.
	//
	// Parameters:
	//   - order: the render order
	SetRenderOrder(order int)

	// Visible reports whether the node and its subtree are rendered.
	//
	// Returns:
	//   - bool: true if visible
	Visible() bool

	// SetVisible shows or hides the node and its subtree.
	//
	// Parameters:
	//   - visible: whether the subtree renders
	SetVisible(visible bool)

	// LocalMatrix returns T * R * S of the local transform.
	//
	// Returns:
	//   - mgl32.Mat4: the local matrix
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the product of all ancestor local matrices and this node's.
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// Traverse calls fn for this node and then depth first for every descendant in child order.
	// Returning false from fn skips that node's subtree.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(Node) bool)

	base() *node
}

var _ Node = &node{}

// newNode creates the shared node state. self is the outer value (Group or Mesh) handed to
// children as their parent.
func newNode(self Node, options ...NodeBuilderOption) *node {
	n := &node{
		mu:    &sync.RWMutex{},
		id:    nextNodeID.Add(1),
		self:  self,
		scale: [3]float32{1, 1, 1},
	}
	n.visible.Store(true)
	for _, opt := range options {
		opt(n)
	}
	return n
}

func (n *node) base() *node {
	return n
}

func (n *node) ID() uint64 {
	return n.id
}

func (n *node) Name() string {
	return n.name
}

func (n *node) Parent() Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.parent
}

func (n *node) Children() []Node {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Node, len(n.children))
	copy(out, n.children)
	return out
}

func (n *node) Add(children ...Node) {
	for _, c := range children {
		if c == nil || c.base() == n {
			continue
		}
		if p := c.Parent(); p != nil {
			p.Remove(c)
		}
		cb := c.base()
		cb.mu.Lock()
		cb.parent = n.self
		cb.mu.Unlock()

		n.mu.Lock()
		n.children = append(n.children, c)
		n.mu.Unlock()
	}
}

func (n *node) Remove(child Node) {
	if child == nil {
		return
	}
	n.mu.Lock()
	removed := false
	for i, c := range n.children {
		if c.base() == child.base() {
			n.children = append(n.children[:i], n.children[i+1:]...)
			removed = true
			break
		}
	}
	n.mu.Unlock()
	if removed {
		cb := child.base()
		cb.mu.Lock()
		cb.parent = nil
		cb.mu.Unlock()
	}
}

func (n *node) Position() (x, y, z float32) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position[0], n.position[1], n.position[2]
}

func (n *node) SetPosition(x, y, z float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.position = [3]float32{x, y, z}
}

func (n *node) Rotation() (rx, ry, rz float32) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rotation[0], n.rotation[1], n.rotation[2]
}

func (n *node) SetRotation(rx, ry, rz float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation = [3]float32{rx, ry, rz}
}

func (n *node) Rotate(dx, dy, dz float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.rotation[0] += dx
	n.rotation[1] += dy
	n.rotation[2] += dz
}

func (n *node) Scale() (sx, sy, sz float32) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale[0], n.scale[1], n.scale[2]
}

func (n *node) SetScale(sx, sy, sz float32) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = [3]float32{sx, sy, sz}
}

func (n *node) RenderOrder() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.renderOrder
}

func (n *node) SetRenderOrder(order int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.renderOrder = order
}

func (n *node) Visible() bool {
	return n.visible.Load()
}

func (n *node) SetVisible(visible bool) {
	n.visible.Store(visible)
}

func (n *node) LocalMatrix() mgl32.Mat4 {
	n.mu.RLock()
	pos, rot, scale := n.position, n.rotation, n.scale
	n.mu.RUnlock()
	return common.ComposeTRS(pos, rot, scale)
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	local := n.LocalMatrix()
	p := n.Parent()
	if p == nil {
		return local
	}
	return p.WorldMatrix().Mul4(local)
}

func (n *node) Traverse(fn func(Node) bool) {
	if !fn(n.self) {
		return
	}
	for _, c := range n.Children() {
		c.Traverse(fn)
	}
}
