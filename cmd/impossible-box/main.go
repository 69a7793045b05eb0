package main

import (
	"context"
	"os"
	"syscall"

	"github.com/Carmen-Shannon/impossible-box/engine"
	"github.com/Carmen-Shannon/impossible-box/engine/portal"
	"github.com/Carmen-Shannon/impossible-box/engine/profiler"
	"github.com/Carmen-Shannon/impossible-box/engine/renderer"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/Carmen-Shannon/impossible-box/engine/window"
	"github.com/Carmen-Shannon/impossible-box/internal/config"
	"github.com/Carmen-Shannon/impossible-box/internal/impossiblebox"
	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

func main() {
	conf := config.DefaultViewer()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Opens a window rendering the impossible box. Drag to orbit, scroll to zoom, space toggles object spin.").
		Options(&conf)
	cli.Load()

	config.SetupLogs(conf.LogLevel, conf.LogIndent)
	if err := conf.Validate(); err != nil {
		logs.Fatal(err)
	}

	win, err := window.NewWindow(
		window.WithTitle(conf.Title),
		window.WithSize(conf.Width, conf.Height),
	)
	if err != nil {
		logs.Fatal(err)
	}
	defer func() {
		if err := win.Close(); err != nil {
			logs.Warn(errors.New("closing window failed").Wrap(err))
		}
	}()

	presentMode := renderer.PresentModeUncapped
	if conf.VSync {
		presentMode = renderer.PresentModeVSync
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(renderer.ParseMSAA(conf.MSAA)),
	)
	if err != nil {
		logs.Fatal(errors.New("creating renderer failed").Wrap(err))
	}
	defer r.Release()

	s := scene.NewScene("impossible-box")
	box, err := impossiblebox.Build(s, portal.NewStencilAllocator(),
		impossiblebox.WithSpin(conf.Spin),
	)
	if err != nil {
		logs.Fatal(err)
	}

	win.SetKeyDownCallback(func(key uint32) {
		if key == window.KeySpace {
			box.ToggleSpin()
			logs.WithTag("spin", box.Spinning()).Info("object spin toggled")
		}
	})

	e := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRenderer(r),
		engine.WithScene(s),
		engine.WithProfiling(conf.Profile),
		engine.WithTickCallback(box.Update),
	)

	if conf.MetricsAddr != "" {
		go profiler.ServeMetrics(ctx, conf.MetricsAddr)
	}
	go func() {
		<-ctx.Done()
		e.Quit()
	}()

	logs.WithTag("width", conf.Width).
		WithTag("height", conf.Height).
		WithTag("msaa", conf.MSAA).
		WithTag("vsync", conf.VSync).
		WithTag("log_level", conf.LogLevel).
		Info("starting impossible box")

	e.Run()
	cancel()
	logs.WithTag("title", conf.Title).Info("impossible box stopped")
}
