package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/impossible-box/engine/camera"
	"github.com/Carmen-Shannon/impossible-box/engine/profiler"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/Carmen-Shannon/impossible-box/engine/window"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameRenderer draws a scene into the window surface. renderer.Renderer satisfies it.
type FrameRenderer interface {
	Render(s scene.Scene, viewProj mgl32.Mat4, eye mgl32.Vec3) (renderer.FrameStats, error)
	Resize(width, height int) error
}

// engine implements the Engine interface.
// Coordinates the tick, render, and window threads.
type engine struct {
	tickRateChannel chan time.Duration

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	window   window.Window
	renderer FrameRenderer
	camera   camera.Camera
	scene    scene.Scene

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the viewer.
// It runs a fixed-rate tick loop for animation, a render loop drawing the scene through the
// camera, and the window message loop feeding pointer input to the camera controller.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	Window() window.Window

	// Camera returns the camera used to render.
	Camera() camera.Camera

	// Scene returns the rendered scene.
	Scene() scene.Scene

	// EnableProfiler enables periodic frame statistics.
	EnableProfiler()

	// DisableProfiler disables periodic frame statistics.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in ticks per second.
	//
	// Parameters:
	//   - fps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for animation updates.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each rendered frame.
	//
	// Parameters:
	//   - callback: function receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// Run starts the engine and blocks until the window closes or Quit is called.
	Run()

	// Quit signals all engine goroutines to stop and asks the window to close.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// NewEngine creates a new Engine instance with the provided options.
// When a window is set its resize, drag, and scroll input is wired to the renderer and camera.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		profiler:        profiler.NewProfiler(),
		engineTickRate:  time.Second / 60,
	}
	for _, opt := range options {
		opt(e)
	}
	if e.camera == nil {
		e.camera = camera.NewCamera(camera.WithController(camera.NewOrbitController()))
	}
	if e.window != nil {
		e.bindWindow()
	}
	return e
}

// bindWindow routes window input to the renderer and camera.
func (e *engine) bindWindow() {
	if h := e.window.Height(); h > 0 {
		e.camera.SetAspect(float32(e.window.Width()) / float32(h))
	}
	e.window.SetResizeCallback(func(width, height int) {
		if width <= 0 || height <= 0 {
			return
		}
		if e.renderer != nil {
			if err := e.renderer.Resize(width, height); err != nil {
				logs.Warn(errors.New("resizing surface failed").
					WithTag("width", width).
					WithTag("height", height).
					Wrap(err))
			}
		}
		e.camera.SetAspect(float32(width) / float32(height))
	})
	e.window.SetDragCallback(func(dx, dy float32) {
		if ctrl := e.camera.Controller(); ctrl != nil {
			ctrl.Rotate(dx, dy, e.window.Height())
		}
	})
	e.window.SetScrollCallback(func(delta float32) {
		if ctrl := e.camera.Controller(); ctrl != nil {
			ctrl.Zoom(delta)
		}
	})
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Camera() camera.Camera {
	return e.camera
}

func (e *engine) Scene() scene.Scene {
	return e.scene
}

func (e *engine) Run() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()

	e.handle()
	if e.window != nil {
		e.window.ProcessMessages()
		e.signalQuit()
	}
	e.wg.Wait()
}

func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
		if e.window != nil {
			e.window.RequestClose()
		}
	})
}

// handle launches the tick and render goroutines.
func (e *engine) handle() {
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate tick loop. Listens for rate changes on tickRateChannel.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			if e.tickCallback != nil {
				e.tickCallback(dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the render loop until quit, optionally capped by renderFrameLimit.
// A panic inside a frame is recovered, logged, and stops the engine.
func (e *engine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logs.Warn(errors.Newf("render loop recovered from panic: %v", r))
			e.signalQuit()
		}
	}()

	lastRender := time.Now()
	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		e.renderFrame(dt)

		if e.renderFrameLimit > 0 {
			if remaining := e.renderFrameLimit - time.Since(lastRender); remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

// renderFrame steps the camera and draws one frame. Frame errors are logged and the
// frame is skipped.
func (e *engine) renderFrame(dt float32) {
	e.camera.Update()

	var stats renderer.FrameStats
	if e.renderer != nil && e.scene != nil {
		var err error
		stats, err = e.renderer.Render(e.scene, e.camera.ViewProjectionMatrix(), e.camera.Position())
		if err != nil {
			profiler.InstrumentFrameError()
			logs.Warn(errors.New("rendering frame failed").Wrap(err))
		}
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(stats.Items)
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in ticks per second.
// If the engine is running, the change takes effect on the next tick.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.Lock()
	running := e.running
	e.mu.Unlock()
	if !running {
		e.engineTickRate = newRate
		return
	}

	// Replace any pending update.
	select {
	case e.tickRateChannel <- newRate:
	default:
		select {
		case <-e.tickRateChannel:
		default:
		}
		select {
		case e.tickRateChannel <- newRate:
		case <-e.quitChannel:
		}
	}
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}
