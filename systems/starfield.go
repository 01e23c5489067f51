package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Default star field parameters.
const (
	DefaultPointCount      = 120
	DefaultPhaseRate       = 2.0
	DefaultRadiusMin       = 0.5
	DefaultRadiusMax       = 2.0
	DefaultTwinkleSpeedMin = 0.5
	DefaultTwinkleSpeedMax = 1.0
)

// maxCountdownStepMs bounds how far a single Advance can move the spawn
// countdown so that huge clock jumps cannot overflow it.
const maxCountdownStepMs = math.MaxInt32

// RandSource is the random source the star field draws from.
// *math/rand.Rand and *math/rand/v2.Rand both satisfy it.
type RandSource interface {
	Float64() float64
}

// Placement records whether a star has been given a viewport position yet.
type Placement uint8

const (
	Unplaced Placement = iota
	Placed
)

// Star is a twinkling background point. Only Placement, X and Y change after
// construction, and only once.
type Star struct {
	X, Y         float64
	Radius       float64
	TwinkleSpeed float64
	TwinklePhase float64
	Placement    Placement
}

// Alpha returns the star's brightness in [0, 1] for the given animation phase.
func (s *Star) Alpha(phase float64) float64 {
	return 0.5 + 0.5*math.Sin(phase*s.TwinkleSpeed+s.TwinklePhase)
}

// StarFieldParams configures a StarField.
type StarFieldParams struct {
	PointCount      int
	RadiusMin       float64
	RadiusMax       float64
	TwinkleSpeedMin float64
	TwinkleSpeedMax float64
	PhaseRate       float64 // animation phase units per second
	Streak          StreakParams
}

// DefaultStarFieldParams returns the stock sky: 120 stars and a shooting star
// every 3-7 seconds.
func DefaultStarFieldParams() StarFieldParams {
	return StarFieldParams{
		PointCount:      DefaultPointCount,
		RadiusMin:       DefaultRadiusMin,
		RadiusMax:       DefaultRadiusMax,
		TwinkleSpeedMin: DefaultTwinkleSpeedMin,
		TwinkleSpeedMax: DefaultTwinkleSpeedMax,
		PhaseRate:       DefaultPhaseRate,
		Streak:          DefaultStreakParams(),
	}
}

// StarField is the animated background: a fixed set of twinkling stars and at
// most one shooting star. It is not safe for concurrent use; the host drives it
// from its frame loop.
type StarField struct {
	params StarFieldParams
	rng    RandSource

	stars  []Star
	streak *Streak

	phase       float64
	countdownMs int64

	width, height float64

	spawns   int
	despawns int
}

// NewStarField allocates params.PointCount unplaced stars with randomized
// radius, twinkle speed and twinkle phase. No shooting star is alive and the
// spawn countdown starts expired.
func NewStarField(params StarFieldParams, rng RandSource) *StarField {
	n := max(params.PointCount, 0)

	f := &StarField{
		params: params,
		rng:    rng,
		stars:  make([]Star, n),
	}

	for i := range f.stars {
		f.stars[i] = Star{
			Radius:       lerp(params.RadiusMin, params.RadiusMax, rng.Float64()),
			TwinkleSpeed: lerp(params.TwinkleSpeedMin, params.TwinkleSpeedMax, rng.Float64()),
			TwinklePhase: rng.Float64() * 2 * math.Pi,
			Placement:    Unplaced,
		}
	}

	return f
}

// SetViewportSize records the drawable surface size. Non-positive dimensions
// are ignored. The first valid size places every unplaced star uniformly within
// it; placed stars never move, even if a later resize leaves them off-screen.
func (f *StarField) SetViewportSize(width, height float64) {
	if !(width > 0) || !(height > 0) || math.IsInf(width, 1) || math.IsInf(height, 1) {
		return
	}
	f.width = width
	f.height = height

	for i := range f.stars {
		s := &f.stars[i]
		if s.Placement == Placed {
			continue
		}
		s.X = f.rng.Float64() * width
		s.Y = f.rng.Float64() * height
		s.Placement = Placed
	}
}

// Advance moves the field forward by elapsed seconds. Negative and non-finite
// deltas are treated as zero. A single call spawns and clears at most one
// shooting star, however large the delta.
func (f *StarField) Advance(elapsed float64) {
	if !(elapsed > 0) || math.IsInf(elapsed, 1) {
		return
	}

	f.phase += elapsed * f.params.PhaseRate

	stepMs := elapsed * 1000
	if stepMs > maxCountdownStepMs {
		stepMs = maxCountdownStepMs
	}
	f.countdownMs -= int64(stepMs)
	if f.countdownMs < -maxCountdownStepMs {
		f.countdownMs = -maxCountdownStepMs
	}

	if f.streak == nil && f.countdownMs <= 0 && f.ViewportKnown() {
		f.spawnStreak()
	}

	if f.streak != nil {
		f.streak.step(elapsed)
		if f.streak.outside(f.width, f.height) {
			f.streak = nil
			f.despawns++
		}
	}
}

func (f *StarField) spawnStreak() {
	p := f.params.Streak
	f.streak = &Streak{
		Pos: r2.Vec{
			X: f.rng.Float64() * f.width,
			Y: f.rng.Float64() * f.height * p.Band,
		},
		Dir:    r2.Vec{X: p.DirX, Y: p.DirY},
		Length: p.Length,
		Speed:  lerp(p.SpeedMin, p.SpeedMax, f.rng.Float64()),
	}
	f.countdownMs = p.SpawnMinMs + int64(f.rng.Float64()*float64(p.SpawnMaxMs-p.SpawnMinMs))
	f.spawns++
}

// ForceSpawn expires the spawn countdown so the next positive Advance spawns a
// shooting star if none is alive.
func (f *StarField) ForceSpawn() {
	f.countdownMs = 0
}

// Snapshot returns the drawable state for the current frame.
func (f *StarField) Snapshot() Snapshot {
	var snap Snapshot
	f.SnapshotInto(&snap)
	return snap
}

// SnapshotInto fills dst, reusing its point slice.
func (f *StarField) SnapshotInto(dst *Snapshot) {
	dst.Points = dst.Points[:0]
	for i := range f.stars {
		s := &f.stars[i]
		if s.Placement != Placed {
			continue
		}
		dst.Points = append(dst.Points, PointSnapshot{
			X:      s.X,
			Y:      s.Y,
			Radius: s.Radius,
			Alpha:  s.Alpha(f.phase),
		})
	}

	dst.Streak = nil
	if f.streak != nil {
		tail := f.streak.Tail()
		dst.Streak = &StreakSnapshot{
			HeadX: f.streak.Pos.X,
			HeadY: f.streak.Pos.Y,
			TailX: tail.X,
			TailY: tail.Y,
		}
	}
}

// Phase returns the shared animation phase.
func (f *StarField) Phase() float64 { return f.phase }

// SpawnCountdownMs returns milliseconds until a shooting star may spawn.
func (f *StarField) SpawnCountdownMs() int64 { return f.countdownMs }

// ViewportKnown reports whether a valid viewport size has been set.
func (f *StarField) ViewportKnown() bool { return f.width > 0 && f.height > 0 }

// Viewport returns the last valid viewport size.
func (f *StarField) Viewport() (width, height float64) { return f.width, f.height }

// StarCount returns the fixed number of stars.
func (f *StarField) StarCount() int { return len(f.stars) }

// Stars returns a copy of the stars.
func (f *StarField) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// Streak returns a copy of the live shooting star, if any.
func (f *StarField) Streak() (Streak, bool) {
	if f.streak == nil {
		return Streak{}, false
	}
	return *f.streak, true
}

// Spawns returns the number of shooting stars spawned so far.
func (f *StarField) Spawns() int { return f.spawns }

// Despawns returns the number of shooting stars that have left the viewport.
func (f *StarField) Despawns() int { return f.despawns }
