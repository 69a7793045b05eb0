package scene

// NodeBuilderOption is a functional option for configuring a Group or Mesh during construction.
type NodeBuilderOption func(*node)

// WithName sets the node's debug name.
//
// Parameters:
//   - name: the name
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(n *node) {
		n.name = name
	}
}

// WithPosition sets the initial local translation.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(x, y, z float32) NodeBuilderOption {
	return func(n *node) {
		n.position = [3]float32{x, y, z}
	}
}

// WithRotation sets the initial local Euler XYZ rotation in radians.
//
// Parameters:
//   - rx, ry, rz: rotation angles
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(rx, ry, rz float32) NodeBuilderOption {
	return func(n *node) {
		n.rotation = [3]float32{rx, ry, rz}
	}
}

// WithScale sets the initial local scale.
//
// Parameters:
//   - sx, sy, sz: scale components
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(sx, sy, sz float32) NodeBuilderOption {
	return func(n *node) {
		n.scale = [3]float32{sx, sy, sz}
	}
}

// WithRenderOrder sets the initial draw order tag.
//
// Parameters:
//   - order: the render order
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRenderOrder(order int) NodeBuilderOption {
	return func(n *node) {
		n.renderOrder = order
	}
}

// WithVisible sets the initial visibility.
//
// Parameters:
//   - visible: whether the subtree renders
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithVisible(visible bool) NodeBuilderOption {
	return func(n *node) {
		n.visible.Store(visible)
	}
}
