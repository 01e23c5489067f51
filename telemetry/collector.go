package telemetry

import "github.com/pthm-cable/starfield/systems"

// Collector accumulates frame events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int32
	windowStartSec   float64
	simTimeSec       float64

	// Counters for current window
	frames       int
	streakFrames int
	spawns       int
	despawns     int

	// Field counters seen at the previous frame
	lastSpawns   int
	lastDespawns int

	alphas []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 10
	}
	return &Collector{windowDurationSec: windowDurationSec}
}

// RecordFrame records one advanced frame of the field.
func (c *Collector) RecordFrame(elapsed float64, field *systems.StarField) {
	if elapsed > 0 {
		c.simTimeSec += elapsed
	}
	c.frames++

	c.spawns += field.Spawns() - c.lastSpawns
	c.despawns += field.Despawns() - c.lastDespawns
	c.lastSpawns = field.Spawns()
	c.lastDespawns = field.Despawns()

	if _, ok := field.Streak(); ok {
		c.streakFrames++
	}
}

// Rebind resets the per-field counters after the host swaps in a new field.
func (c *Collector) Rebind(field *systems.StarField) {
	c.lastSpawns = field.Spawns()
	c.lastDespawns = field.Despawns()
}

// ShouldFlush returns true once the current window has covered its duration.
func (c *Collector) ShouldFlush() bool {
	return c.simTimeSec-c.windowStartSec >= c.windowDurationSec
}

// Flush produces a WindowStats from the counters and the current snapshot,
// then resets counters for the next window.
func (c *Collector) Flush(currentFrame int32, snap *systems.Snapshot) WindowStats {
	c.alphas = c.alphas[:0]
	for _, p := range snap.Points {
		c.alphas = append(c.alphas, p.Alpha)
	}
	mean, std, p10, p50, p90 := ComputeAlphaStats(c.alphas)

	var aliveFrac float64
	if c.frames > 0 {
		aliveFrac = float64(c.streakFrames) / float64(c.frames)
	}

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		SimTimeSec:       c.simTimeSec,
		Frames:           c.frames,
		Spawns:           c.spawns,
		Despawns:         c.despawns,
		StreakAliveFrac:  aliveFrac,
		VisibleStars:     len(snap.Points),
		AlphaMean:        mean,
		AlphaStd:         std,
		AlphaP10:         p10,
		AlphaP50:         p50,
		AlphaP90:         p90,
	}

	// Reset for next window
	c.windowStartFrame = currentFrame
	c.windowStartSec = c.simTimeSec
	c.frames = 0
	c.streakFrames = 0
	c.spawns = 0
	c.despawns = 0

	return stats
}

// SimTimeSec returns the total simulated time recorded.
func (c *Collector) SimTimeSec() float64 {
	return c.simTimeSec
}
