package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate and frame-time statistics for the render loop.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	lastFrameTime  time.Time
	frameSum       time.Duration
	frameMax       time.Duration
	updateInterval time.Duration
	memStats       runtime.MemStats
}

// Stats is one logged window of frame statistics.
type Stats struct {
	FPS        float64
	AvgFrameMs float64
	MaxFrameMs float64
	HeapMB     float64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	now := time.Now()
	return &Profiler{
		lastTime:       now,
		lastFrameTime:  now,
		updateInterval: time.Second,
	}
}

// Tick should be called once per frame. It accumulates the frame time and,
// when the update interval has elapsed, logs FPS, average/worst frame time,
// and heap usage for the window and resets the counters.
//
// Returns:
//   - *Stats: the logged stats, or nil when the interval has not elapsed
func (p *Profiler) Tick() *Stats {
	currentTime := time.Now()
	frame := currentTime.Sub(p.lastFrameTime)
	p.lastFrameTime = currentTime
	p.frameCount++
	p.frameSum += frame
	if frame > p.frameMax {
		p.frameMax = frame
	}

	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return nil
	}

	stats := &Stats{
		FPS:        float64(p.frameCount) / elapsed.Seconds(),
		AvgFrameMs: p.frameSum.Seconds() * 1000 / float64(p.frameCount),
		MaxFrameMs: p.frameMax.Seconds() * 1000,
	}

	// Alloc: bytes of allocated heap objects (live memory)
	runtime.ReadMemStats(&p.memStats)
	stats.HeapMB = float64(p.memStats.Alloc) / 1024 / 1024

	log.Printf("[Profiler] FPS: %.2f | Frame: %.2f ms avg, %.2f ms max | Heap: %.2f MB",
		stats.FPS, stats.AvgFrameMs, stats.MaxFrameMs, stats.HeapMB)

	p.frameCount = 0
	p.frameSum = 0
	p.frameMax = 0
	p.lastTime = currentTime
	return stats
}
