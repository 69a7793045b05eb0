package main

import (
	"context"
	"image"
	"image/png"
	"os"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/impossible-box/engine/camera"
	"github.com/Carmen-Shannon/impossible-box/engine/portal"
	"github.com/Carmen-Shannon/impossible-box/engine/raster"
	"github.com/Carmen-Shannon/impossible-box/engine/scene"
	"github.com/Carmen-Shannon/impossible-box/internal/config"
	"github.com/Carmen-Shannon/impossible-box/internal/impossiblebox"
	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

func main() {
	conf := config.DefaultSnapshot()

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Renders the impossible box on the CPU and writes a PNG.").
		Options(&conf)
	cli.Load()

	config.SetupLogs(conf.LogLevel, conf.LogIndent)
	if err := conf.Validate(); err != nil {
		logs.Fatal(err)
	}

	if err := run(ctx, conf); err != nil {
		logs.Fatal(err)
	}
}

func run(ctx context.Context, conf config.Snapshot) error {
	s := scene.NewScene("impossible-box")
	box, err := impossiblebox.Build(s, portal.NewStencilAllocator(),
		impossiblebox.WithSpin(conf.Spin),
	)
	if err != nil {
		return err
	}

	cam := camera.NewCamera(
		camera.WithAspect(float32(conf.Width)/float32(conf.Height)),
		camera.WithController(camera.NewOrbitController()),
	)

	var opts []raster.RasterizerBuilderOption
	if conf.Workers > 0 {
		opts = append(opts, raster.WithWorkers(conf.Workers))
	}
	r := raster.NewRasterizer(conf.Width, conf.Height, opts...)
	defer r.Close()

	for i := 0; i < conf.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return errors.New("snapshot interrupted").WithTag("frame", i).Wrap(err)
		}
		box.Update(float32(conf.DT))
	}

	cam.Update()
	start := time.Now()
	stats := r.Render(s, cam.ViewProjectionMatrix())
	logs.WithTag("items", stats.Items).
		WithTag("triangles", stats.Triangles).
		WithTag("fragments", stats.Fragments).
		WithTag("duration", time.Since(start).String()).
		Info("frame rasterized")

	fb := r.Framebuffer()
	if err := writePNG(conf.Out, fb.Snapshot()); err != nil {
		return err
	}
	if conf.Stencil != "" {
		if err := writePNG(conf.Stencil, fb.StencilSnapshot(40)); err != nil {
			return err
		}
	}

	logs.WithTag("out", conf.Out).
		WithTag("width", conf.Width).
		WithTag("height", conf.Height).
		WithTag("frames", conf.Frames).
		Info("snapshot written")
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.New("creating output file failed").WithTag("path", path).Wrap(err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.New("encoding png failed").WithTag("path", path).Wrap(err)
	}
	if err := f.Close(); err != nil {
		return errors.New("closing output file failed").WithTag("path", path).Wrap(err)
	}
	return nil
}
