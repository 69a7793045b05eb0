package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/impossible-box/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// polarEpsilon keeps the eye off the poles where the look-at basis degenerates.
	polarEpsilon = 1e-6
	// settleEpsilon is the pending rotation below which damping stops.
	settleEpsilon = 1e-6
	// zoomBase is the radius scale of one wheel step at zoom speed 1.
	zoomBase = 0.95
)

// orbitController is the single implementation of CameraController.
// State is kept in spherical coordinates around the target:
// azimuth around +Y measured from +Z, polar measured from +Y.
type orbitController struct {
	mu *sync.Mutex

	start    *[3]float32
	target   [3]float32
	position mgl32.Vec3

	radius  float32
	azimuth float32
	polar   float32

	// pending rotation not yet applied
	deltaAzimuth float32
	deltaPolar   float32

	minRadius   float32
	maxRadius   float32
	damping     float32
	rotateSpeed float32
	zoomSpeed   float32
}

var _ CameraController = &orbitController{}

// NewOrbitController creates a new orbit controller. Defaults match the impossible box
// viewer: eye at (0, 0, 20), damping 0.03, rotate speed 0.35, zoom speed 0.7 and a
// maximum distance of 50.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewOrbitController(options ...CameraControllerOption) CameraController {
	oc := &orbitController{
		mu:          &sync.Mutex{},
		minRadius:   0,
		maxRadius:   50,
		damping:     0.03,
		rotateSpeed: 0.35,
		zoomSpeed:   0.7,
	}
	for _, option := range options {
		option(oc)
	}

	start := mgl32.Vec3{0, 0, 20}
	if oc.start != nil {
		start = mgl32.Vec3(*oc.start)
	}
	offset := start.Sub(mgl32.Vec3(oc.target))
	oc.radius = offset.Len()
	if oc.radius > 0 {
		oc.azimuth = float32(math.Atan2(float64(offset[0]), float64(offset[2])))
		oc.polar = float32(math.Acos(float64(common.Clamp(offset[1]/oc.radius, -1, 1))))
	} else {
		oc.polar = math.Pi / 2
	}
	oc.clampRadius()
	oc.updatePosition()
	return oc
}

func (oc *orbitController) Position() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.position
}

func (oc *orbitController) Target() mgl32.Vec3 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return mgl32.Vec3(oc.target)
}

func (oc *orbitController) Radius() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.radius
}

func (oc *orbitController) Azimuth() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.azimuth
}

func (oc *orbitController) Polar() float32 {
	oc.mu.Lock()
	defer oc.mu.Unlock()
	return oc.polar
}

func (oc *orbitController) Rotate(dx, dy float32, viewportHeight int) {
	if viewportHeight <= 0 || !common.IsFinite(dx, dy) {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	h := float32(viewportHeight)
	// Dragging right swings the eye left around the target.
	oc.deltaAzimuth -= 2 * math.Pi * dx / h * oc.rotateSpeed
	oc.deltaPolar -= 2 * math.Pi * dy / h * oc.rotateSpeed
}

func (oc *orbitController) Zoom(delta float32) {
	if delta == 0 || !common.IsFinite(delta) {
		return
	}
	oc.mu.Lock()
	defer oc.mu.Unlock()
	scale := float32(math.Pow(zoomBase, float64(oc.zoomSpeed*delta)))
	oc.radius *= scale
	oc.clampRadius()
	oc.updatePosition()
}

func (oc *orbitController) Update() {
	oc.mu.Lock()
	defer oc.mu.Unlock()

	if oc.damping > 0 {
		oc.azimuth += oc.deltaAzimuth * oc.damping
		oc.polar += oc.deltaPolar * oc.damping
		oc.deltaAzimuth *= 1 - oc.damping
		oc.deltaPolar *= 1 - oc.damping
		if abs(oc.deltaAzimuth) < settleEpsilon {
			oc.deltaAzimuth = 0
		}
		if abs(oc.deltaPolar) < settleEpsilon {
			oc.deltaPolar = 0
		}
	} else {
		oc.azimuth += oc.deltaAzimuth
		oc.polar += oc.deltaPolar
		oc.deltaAzimuth, oc.deltaPolar = 0, 0
	}
	oc.polar = common.Clamp(oc.polar, polarEpsilon, math.Pi-polarEpsilon)
	oc.updatePosition()
}

// clampRadius keeps the radius inside the distance limits.
// Caller must hold the mutex.
func (oc *orbitController) clampRadius() {
	oc.radius = common.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
}

// updatePosition recomputes the eye from spherical coordinates.
// Caller must hold the mutex.
func (oc *orbitController) updatePosition() {
	sinPolar := float32(math.Sin(float64(oc.polar)))
	oc.position = mgl32.Vec3{
		oc.target[0] + oc.radius*sinPolar*float32(math.Sin(float64(oc.azimuth))),
		oc.target[1] + oc.radius*float32(math.Cos(float64(oc.polar))),
		oc.target[2] + oc.radius*sinPolar*float32(math.Cos(float64(oc.azimuth))),
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
