package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController owns the eye position and the orbit target. Input handlers feed it
// rotate and zoom deltas; Update applies them once per frame.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space eye position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space pivot
	Target() mgl32.Vec3

	// Radius returns the current distance from target.
	Radius() float32

	// Azimuth returns the current horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Polar returns the current angle from the +Y axis in radians.
	Polar() float32

	// Rotate queues a pointer drag. The drag is converted to angles relative to the
	// viewport height, so a drag of the full height turns by 2*pi*RotateSpeed.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - viewportHeight: height of the viewport in pixels
	Rotate(dx, dy float32, viewportHeight int)

	// Zoom scales the orbit radius. Positive delta moves toward the target.
	//
	// Parameters:
	//   - delta: wheel steps
	Zoom(delta float32)

	// Update applies pending rotation (damped when enabled) and recomputes the position.
	Update()
}
