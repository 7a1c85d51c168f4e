package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks frame rate, object counts and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval when logging is enabled.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	logging bool
	fps     float64
	visible int
	total   int
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - logging: if true, statistics are written to the log every interval
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logging bool) *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		logging:        logging,
	}
}

// SetLogging enables or disables periodic log output. FPS is measured either way.
//
// Parameters:
//   - enabled: true to log statistics
func (p *Profiler) SetLogging(enabled bool) {
	p.logging = enabled
}

// SetInterval changes how often FPS is recomputed and logged. Non-positive values are ignored.
//
// Parameters:
//   - d: the measurement interval
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// Observe records the latest visible/total object counts for the next log line.
//
// Parameters:
//   - visible: objects drawn this frame
//   - total: live objects in the scene
func (p *Profiler) Observe(visible, total int) {
	p.visible = visible
	p.total = total
}

// FPS returns the frame rate measured over the last completed interval.
//
// Returns:
//   - float64: frames per second, 0 before the first interval completes
func (p *Profiler) FPS() float64 {
	return p.fps
}

// Tick should be called once per frame to track frame timing.
// Recomputes FPS when the update interval has elapsed and, if logging is enabled, logs
// FPS, object counts, heap usage, allocation rate, and GC count/pause times.
//
// Returns:
//   - bool: true if the interval elapsed this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed < p.updateInterval {
		return false
	}

	p.fps = float64(p.frameCount) / elapsed.Seconds()
	p.frameCount = 0
	p.lastTime = currentTime

	if !p.logging {
		return true
	}

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Obj: %d/%d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		p.fps, p.visible, p.total, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
