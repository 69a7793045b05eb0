package profiler

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestTickEmitsAfterInterval(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	p := NewProfiler()
	p.lastTime = start
	p.now = func() time.Time { return now }

	for range 9 {
		now = now.Add(100 * time.Millisecond)
		require.False(t, p.Tick(4))
	}
	now = now.Add(100 * time.Millisecond)
	require.True(t, p.Tick(4))

	require.InDelta(t, 10, testutil.ToFloat64(framesPerSecond), 1e-9)
	require.InDelta(t, 4, testutil.ToFloat64(itemsPerFrame), 1e-9)
	require.Equal(t, 0, p.frameCount)
}

func TestInstrumentFrameError(t *testing.T) {
	before := testutil.ToFloat64(frameErrors)
	InstrumentFrameError()
	require.Equal(t, before+1, testutil.ToFloat64(frameErrors))
}
