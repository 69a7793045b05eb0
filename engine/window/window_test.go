package window

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWindowOptions(t *testing.T) {
	w := &engineWindow{width: 1280, height: 720}
	WithTitle("box")(w)
	WithSize(800, 0)(w)
	WithSizeLimits(100, 100, 1000, 900)(w)

	require.Equal(t, "box", w.title)
	require.Equal(t, 800, w.Width())
	require.Equal(t, 720, w.Height())
}

func TestEmptyTitleKeepsDefault(t *testing.T) {
	w := &engineWindow{title: "Impossible Box"}
	WithTitle("")(w)
	require.Equal(t, "Impossible Box", w.title)
}

func TestClampSize(t *testing.T) {
	w := &engineWindow{}
	WithSizeLimits(320, 240, 1920, 1080)(w)

	width, height := w.clampSize(100, 5000)
	require.Equal(t, 320, width)
	require.Equal(t, 1080, height)
}

func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{}
	require.False(t, w.IsRunning())
	require.Nil(t, w.SurfaceDescriptor())
	w.RequestClose()
	require.Error(t, w.Close())
}
