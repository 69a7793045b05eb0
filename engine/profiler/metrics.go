package profiler

import (
	"context"
	"net/http"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	framesPerSecond = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "impossible_box_fps",
		Help: "Rendered frames per second over the last profiler interval.",
	})

	itemsPerFrame = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "impossible_box_items_per_frame",
		Help: "Average number of render items drawn per frame.",
	})

	memoryBytes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "impossible_box_memory_megabytes",
		Help: "Process memory in megabytes.",
	}, []string{"kind"})

	frameErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "impossible_box_frame_errors",
		Help: "Frames dropped because rendering failed.",
	})
)

func instrumentFrameStats(fps, items, heapMB, sysMB float64) {
	framesPerSecond.Set(fps)
	itemsPerFrame.Set(items)
	memoryBytes.With(prometheus.Labels{"kind": "heap"}).Set(heapMB)
	memoryBytes.With(prometheus.Labels{"kind": "sys"}).Set(sysMB)
}

// InstrumentFrameError counts a dropped frame.
func InstrumentFrameError() {
	frameErrors.Inc()
}

// ServeMetrics exposes the Prometheus registry on addr under /metrics until ctx is done.
// Blocks while the server runs.
//
// Parameters:
//   - ctx: cancelling it shuts the server down
//   - addr: listening address such as ":9090"
func ServeMetrics(ctx context.Context, addr string) {
	var mux http.ServeMux
	mux.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              addr,
		Handler:           &mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		if err := s.Shutdown(context.Background()); err != nil {
			logs.Warn(errors.Newf("shutting down the metrics server failed").
				WithTag("addr", addr).
				Wrap(err))
		}
	}()

	logs.WithTag("addr", addr).Info("starting metrics server")
	switch err := s.ListenAndServe(); err {
	case nil, http.ErrServerClosed:
		logs.WithTag("addr", addr).Info("stopping metrics server")
	default:
		logs.Warn(errors.Newf("metrics server stopped").
			WithTag("addr", addr).
			Wrap(err))
	}
}
