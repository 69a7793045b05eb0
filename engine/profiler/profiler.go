package profiler

import (
	"runtime"
	"time"

	"github.com/aukilabs/go-tooling/pkg/logs"
)

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Logs a summary and refreshes the exported gauges at a fixed interval.
type Profiler struct {
	frameCount     int
	drawnItems     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	now            func() time.Time
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		now:            time.Now,
	}
}

// Tick should be called once per rendered frame.
// Emits performance statistics when the update interval has elapsed: FPS, heap usage,
// allocation rate, GC count and pause times, total memory, and draws per frame.
//
// Parameters:
//   - items: number of render items drawn this frame
//
// Returns:
//   - bool: true if stats were emitted this tick, false otherwise
func (p *Profiler) Tick(items int) bool {
	p.frameCount++
	p.drawnItems += items
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()
	itemsPerFrame := float64(p.drawnItems) / float64(p.frameCount)

	runtime.ReadMemStats(&p.memStats)
	heapMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024
	allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()

	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 pauses.
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000
		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	instrumentFrameStats(fps, itemsPerFrame, heapMB, sysMB)

	logs.WithTag("fps", fps).
		WithTag("items_per_frame", itemsPerFrame).
		WithTag("heap_mb", heapMB).
		WithTag("alloc_rate_mb", allocRateMB).
		WithTag("gc_count", gcCount).
		WithTag("gc_last_pause_us", lastPauseUs).
		WithTag("gc_max_pause_us", maxPauseUs).
		WithTag("sys_mb", sysMB).
		Debug("frame stats")

	p.frameCount = 0
	p.drawnItems = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
