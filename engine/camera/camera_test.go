package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestOrbitControllerDefaults(t *testing.T) {
	oc := NewOrbitController()
	require.InDelta(t, 20, oc.Radius(), 1e-5)
	require.True(t, oc.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 20}, 1e-4))
	require.InDelta(t, math.Pi/2, oc.Polar(), 1e-5)
}

func TestZoomClampsToMaxDistance(t *testing.T) {
	oc := NewOrbitController()
	for range 100 {
		oc.Zoom(-1)
	}
	require.InDelta(t, 50, oc.Radius(), 1e-4)

	oc.Zoom(1)
	require.Less(t, oc.Radius(), float32(50))
}

func TestRotateIsDamped(t *testing.T) {
	oc := NewOrbitController()
	oc.Rotate(100, 0, 720)

	oc.Update()
	first := oc.Azimuth()
	require.Less(t, first, float32(0), "dragging right swings the eye left")

	target := -2 * math.Pi * 100 / 720 * 0.35
	require.InDelta(t, target*0.03, first, 1e-5)

	for range 2000 {
		oc.Update()
	}
	require.InDelta(t, target, oc.Azimuth(), 1e-3)
}

func TestPolarIsClamped(t *testing.T) {
	oc := NewOrbitController(WithDamping(0))
	oc.Rotate(0, 100000, 100)
	oc.Update()
	require.Greater(t, oc.Polar(), float32(0))
	require.InDelta(t, 20, oc.Position().Len(), 1e-3)
}

func TestCameraLooksAtTarget(t *testing.T) {
	cam := NewCamera(WithAspect(16.0/9.0), WithController(NewOrbitController()))
	cam.Update()

	clip := cam.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	require.InDelta(t, 0, clip[0]/clip[3], 1e-5)
	require.InDelta(t, 0, clip[1]/clip[3], 1e-5)
	ndcZ := clip[2] / clip[3]
	require.True(t, ndcZ > 0 && ndcZ < 1)
	require.True(t, cam.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 20}, 1e-4))
}

func TestSetAspectIgnoresInvalid(t *testing.T) {
	cam := NewCamera()
	cam.SetAspect(0)
	require.Equal(t, float32(1), cam.Aspect())
	cam.SetAspect(2)
	require.Equal(t, float32(2), cam.Aspect())
}
