package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*orbitController)

// WithPosition places the eye. The orbit radius and angles are derived from its offset to the target.
//
// Parameters:
//   - x, y, z: world-space eye position
//
// Returns:
//   - CameraControllerOption: functional option to set the start position
func WithPosition(x, y, z float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.start = &[3]float32{x, y, z}
	}
}

// WithTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: coordinates of the target
//
// Returns:
//   - CameraControllerOption: functional option to set the target position
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.target = [3]float32{x, y, z}
	}
}

// WithDamping enables inertia. Each Update applies factor of the pending rotation and keeps the rest.
//
// Parameters:
//   - factor: damping factor in (0, 1]; 0 disables damping
//
// Returns:
//   - CameraControllerOption: functional option to set damping
func WithDamping(factor float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.damping = factor
	}
}

// WithRotateSpeed sets the drag rotation multiplier.
func WithRotateSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the wheel zoom multiplier.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.zoomSpeed = speed
	}
}

// WithDistanceLimits bounds the orbit radius.
//
// Parameters:
//   - minDistance: smallest distance from target
//   - maxDistance: largest distance from target
//
// Returns:
//   - CameraControllerOption: functional option to set distance limits
func WithDistanceLimits(minDistance, maxDistance float32) CameraControllerOption {
	return func(oc *orbitController) {
		oc.minRadius = minDistance
		oc.maxRadius = maxDistance
	}
}
