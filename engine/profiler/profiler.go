package profiler

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Stats is one reporting window of frame and memory statistics.
type Stats struct {
	FPS         float64 `json:"fps"`
	HeapMB      float64 `json:"heap_mb"`
	AllocRateMB float64 `json:"alloc_rate_mb"`
	NumGC       uint32  `json:"num_gc"`
	LastPauseUs uint64  `json:"last_pause_us"`
	MaxPauseUs  uint64  `json:"max_pause_us"`
	SysMB       float64 `json:"sys_mb"`
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Reports a Stats entry through its logger once per update interval.
type Profiler struct {
	log zerolog.Logger
	now func() time.Time

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
}

// NewProfiler creates a new Profiler reporting at debug level once per second.
//
// Parameters:
//   - log: destination for the periodic report
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(log zerolog.Logger) *Profiler {
	return &Profiler{
		log:            log.With().Str("component", "profiler").Logger(),
		now:            time.Now,
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// Tick should be called once per frame to track frame timing.
// Logs statistics when the update interval has elapsed.
//
// Returns:
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	s := Stats{
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:       p.memStats.NumGC,
	}

	if s.NumGC > 0 {
		// PauseNs is a circular buffer of the last 256 pauses
		s.LastPauseUs = p.memStats.PauseNs[(s.NumGC-1)%256] / 1000
		start := p.lastGCCount
		if s.NumGC-start > 256 {
			start = s.NumGC - 256
		}
		for i := start; i < s.NumGC; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.log.Debug().
		Float64("fps", s.FPS).
		Float64("heap_mb", s.HeapMB).
		Float64("alloc_rate_mb", s.AllocRateMB).
		Uint32("gc", s.NumGC).
		Uint64("gc_last_us", s.LastPauseUs).
		Uint64("gc_max_us", s.MaxPauseUs).
		Float64("sys_mb", s.SysMB).
		Msg("frame stats")

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = s.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = s
	return true
}

// Last returns the most recently reported Stats.
func (p *Profiler) Last() Stats {
	return p.last
}
