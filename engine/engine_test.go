package engine

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/impossible-box/engine/renderer"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	frames atomic.Int32
	err    error
	panic  bool
}

func (f *fakeRenderer) Render(s scene.Scene, viewProj mgl32.Mat4, eye mgl32.Vec3) (renderer.FrameStats, error) {
	f.frames.Add(1)
	if f.panic {
		panic("device lost")
	}
	return renderer.FrameStats{Items: 3}, f.err
}

func (f *fakeRenderer) Resize(width, height int) error {
	return nil
}

func TestRenderFrameSkipsErrors(t *testing.T) {
	r := &fakeRenderer{err: errors.New("surface lost")}
	var rendered int
	e := NewEngine(WithRenderer(r), WithScene(scene.NewScene("test"))).(*engine)
	e.SetRenderCallback(func(float32) { rendered++ })

	e.renderFrame(0.016)
	e.renderFrame(0.016)

	require.Equal(t, int32(2), r.frames.Load())
	require.Equal(t, 2, rendered)
}

func TestRunStopsOnQuit(t *testing.T) {
	r := &fakeRenderer{}
	var ticks atomic.Int32
	e := NewEngine(
		WithRenderer(r),
		WithScene(scene.NewScene("test")),
		WithTickRate(500),
		WithRenderFrameLimit(500),
		WithTickCallback(func(dt float32) { ticks.Add(1) }),
	)

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return ticks.Load() > 2 && r.frames.Load() > 2
	}, 2*time.Second, 5*time.Millisecond)

	e.Quit()
	e.Quit()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRenderPanicStopsEngine(t *testing.T) {
	e := NewEngine(WithRenderer(&fakeRenderer{panic: true}), WithScene(scene.NewScene("test")))

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop after render panic")
	}
}

func TestSetTickRate(t *testing.T) {
	e := NewEngine().(*engine)
	e.SetTickRate(0)
	require.Equal(t, time.Second/60, e.engineTickRate)
	e.SetTickRate(120)
	require.Equal(t, time.Second/120, e.engineTickRate)
}

func TestSetTickRateAfterQuitReturns(t *testing.T) {
	e := NewEngine().(*engine)
	// Nothing drains the rate channel once the tick loop has exited; an unbuffered channel
	// forces the fallback send as if another caller refilled the slot first.
	e.tickRateChannel = make(chan time.Duration)
	e.running = true
	close(e.quitChannel)

	done := make(chan struct{})
	go func() {
		e.SetTickRate(30)
		close(done)
	}()
	require.Eventually(t, func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
