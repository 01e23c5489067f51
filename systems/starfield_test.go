package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"
)

// constSource returns the same value for every draw.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

const eps = 1e-9

func TestNewStarField(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(1)))

	if f.StarCount() != DefaultPointCount {
		t.Fatalf("expected %d stars, got %d", DefaultPointCount, f.StarCount())
	}

	for i, s := range f.Stars() {
		if s.Placement != Unplaced {
			t.Errorf("star %d: expected unplaced", i)
		}
		if s.Radius < 0.5 || s.Radius > 2.0 {
			t.Errorf("star %d: radius %f out of [0.5, 2.0]", i, s.Radius)
		}
		if s.TwinkleSpeed < 0.5 || s.TwinkleSpeed > 1.0 {
			t.Errorf("star %d: twinkle speed %f out of [0.5, 1.0]", i, s.TwinkleSpeed)
		}
		if s.TwinklePhase < 0 || s.TwinklePhase >= 2*math.Pi {
			t.Errorf("star %d: twinkle phase %f out of [0, 2pi)", i, s.TwinklePhase)
		}
	}

	if _, ok := f.Streak(); ok {
		t.Error("expected no streak at construction")
	}
	if f.SpawnCountdownMs() != 0 {
		t.Errorf("expected countdown 0, got %d", f.SpawnCountdownMs())
	}
	if f.ViewportKnown() {
		t.Error("expected viewport unknown")
	}

	snap := f.Snapshot()
	if len(snap.Points) != 0 {
		t.Errorf("expected no drawable points before placement, got %d", len(snap.Points))
	}
}

func TestNewStarFieldNegativeCount(t *testing.T) {
	params := DefaultStarFieldParams()
	params.PointCount = -5
	f := NewStarField(params, constSource(0.5))
	if f.StarCount() != 0 {
		t.Errorf("expected 0 stars, got %d", f.StarCount())
	}
}

func TestSetViewportSizePlacesOnce(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(7)))

	f.SetViewportSize(800, 600)
	first := f.Stars()
	for i, s := range first {
		if s.Placement != Placed {
			t.Fatalf("star %d not placed", i)
		}
		if s.X < 0 || s.X >= 800 || s.Y < 0 || s.Y >= 600 {
			t.Errorf("star %d at (%f, %f) outside 800x600", i, s.X, s.Y)
		}
	}

	f.SetViewportSize(200, 100)
	if diff := cmp.Diff(first, f.Stars()); diff != "" {
		t.Errorf("stars moved on resize (-before +after):\n%s", diff)
	}

	w, h := f.Viewport()
	if w != 200 || h != 100 {
		t.Errorf("expected viewport 200x100, got %fx%f", w, h)
	}

	// Off-screen stars are still drawn.
	if n := len(f.Snapshot().Points); n != DefaultPointCount {
		t.Errorf("expected %d points after shrink, got %d", DefaultPointCount, n)
	}
}

func TestSetViewportSizeIgnoresInvalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
	}{
		{"zero width", 0, 600},
		{"zero height", 800, 0},
		{"negative", -1, -1},
		{"NaN", math.NaN(), 600},
		{"Inf", math.Inf(1), 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewStarField(DefaultStarFieldParams(), constSource(0.5))
			f.SetViewportSize(tt.width, tt.height)

			if f.ViewportKnown() {
				t.Error("expected viewport to remain unknown")
			}
			for i, s := range f.Stars() {
				if s.Placement != Unplaced {
					t.Fatalf("star %d placed by invalid viewport", i)
				}
			}
		})
	}
}

func TestAdvanceZeroIsNoop(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(3)))
	f.SetViewportSize(800, 600)

	for i := 0; i < 100; i++ {
		f.Advance(0)
	}

	if f.Phase() != 0 {
		t.Errorf("expected phase 0, got %f", f.Phase())
	}
	if _, ok := f.Streak(); ok {
		t.Error("Advance(0) spawned a streak")
	}
	if f.Spawns() != 0 {
		t.Errorf("expected 0 spawns, got %d", f.Spawns())
	}
}

func TestAdvanceClampsBadDeltas(t *testing.T) {
	for _, dt := range []float64{-1, -1e9, math.NaN(), math.Inf(1), math.Inf(-1)} {
		f := NewStarField(DefaultStarFieldParams(), constSource(0.5))
		f.SetViewportSize(800, 600)
		f.Advance(dt)

		if f.Phase() != 0 {
			t.Errorf("dt=%v: expected phase 0, got %f", dt, f.Phase())
		}
		if f.SpawnCountdownMs() != 0 {
			t.Errorf("dt=%v: expected countdown untouched, got %d", dt, f.SpawnCountdownMs())
		}
		if f.Spawns() != 0 {
			t.Errorf("dt=%v: expected no spawn", dt)
		}
	}
}

func TestPhaseIsAdditive(t *testing.T) {
	coarse := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(5)))
	fine := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(5)))
	coarse.SetViewportSize(640, 480)
	fine.SetViewportSize(640, 480)

	coarse.Advance(0.25)
	coarse.Advance(0.75)
	for i := 0; i < 4; i++ {
		fine.Advance(0.25)
	}

	if math.Abs(coarse.Phase()-2.0) > eps {
		t.Errorf("coarse phase = %f, want 2.0", coarse.Phase())
	}
	if math.Abs(fine.Phase()-2.0) > eps {
		t.Errorf("fine phase = %f, want 2.0", fine.Phase())
	}
}

func TestAtMostOneStreak(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(11)))
	f.SetViewportSize(800, 600)

	ticks := rand.New(rand.NewSource(12))
	for i := 0; i < 5000; i++ {
		dt := ticks.Float64() / 30
		if i%97 == 0 {
			dt = 25 // stalled clock
		}

		spawnsBefore, despawnsBefore := f.Spawns(), f.Despawns()
		f.Advance(dt)

		if f.Spawns()-spawnsBefore > 1 {
			t.Fatalf("tick %d: more than one spawn in a single advance", i)
		}
		if f.Despawns()-despawnsBefore > 1 {
			t.Fatalf("tick %d: more than one despawn in a single advance", i)
		}
		if alive := f.Spawns() - f.Despawns(); alive < 0 || alive > 1 {
			t.Fatalf("tick %d: %d streaks alive", i, alive)
		}
		_, ok := f.Streak()
		if ok != (f.Spawns()-f.Despawns() == 1) {
			t.Fatalf("tick %d: streak presence disagrees with counters", i)
		}
	}

	if f.Spawns() == 0 {
		t.Error("expected at least one spawn over 5000 ticks")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(99)))
	b := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(99)))

	ticks := []float64{0, 0.016, 0.016, 0.5, 3.2, 0.016, 7.5, 0.033, 0.016, 12}
	for i := 0; i < 20; i++ {
		if i == 2 {
			a.SetViewportSize(1280, 720)
			b.SetViewportSize(1280, 720)
		}
		dt := ticks[i%len(ticks)]
		a.Advance(dt)
		b.Advance(dt)

		if diff := cmp.Diff(a.Snapshot(), b.Snapshot()); diff != "" {
			t.Fatalf("tick %d: snapshots diverged (-a +b):\n%s", i, diff)
		}
	}
}

func TestStreakSpawnAndDespawn(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), constSource(0.5))
	f.SetViewportSize(800, 600)
	f.ForceSpawn()

	f.Advance(0.01)

	s, ok := f.Streak()
	if !ok {
		t.Fatal("expected a streak after forced spawn")
	}
	// Spawned at (400, 60) with speed 500, then moved 0.01s along (1, 0.4).
	want := r2.Vec{X: 405, Y: 62}
	if math.Abs(s.Pos.X-want.X) > eps || math.Abs(s.Pos.Y-want.Y) > eps {
		t.Errorf("streak at %v, want %v", s.Pos, want)
	}
	if s.Speed != 500 || s.Length != 80 {
		t.Errorf("unexpected streak speed/length: %f/%f", s.Speed, s.Length)
	}
	if f.SpawnCountdownMs() != 5000 {
		t.Errorf("expected countdown reset to 5000, got %d", f.SpawnCountdownMs())
	}

	snap := f.Snapshot()
	if snap.Streak == nil {
		t.Fatal("expected streak in snapshot")
	}
	if math.Abs(snap.Streak.TailX-325) > eps || math.Abs(snap.Streak.TailY-30) > eps {
		t.Errorf("tail at (%f, %f), want (325, 30)", snap.Streak.TailX, snap.Streak.TailY)
	}

	// speed * elapsed > 800 puts it off the right edge.
	f.Advance(2)
	if f.Snapshot().Streak != nil {
		t.Error("expected streak to despawn after leaving the viewport")
	}
	if f.Despawns() != 1 {
		t.Errorf("expected 1 despawn, got %d", f.Despawns())
	}
}

func TestSpawnWaitsForViewport(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), constSource(0.5))

	f.Advance(10)
	if _, ok := f.Streak(); ok {
		t.Fatal("spawned without a viewport")
	}
	if f.SpawnCountdownMs() >= 0 {
		t.Errorf("expected countdown to keep running, got %d", f.SpawnCountdownMs())
	}

	f.SetViewportSize(800, 600)
	f.Advance(0.001)
	if _, ok := f.Streak(); !ok {
		t.Error("expected spawn once viewport became known")
	}
}

func TestLargeElapsedSingleTransition(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(21)))
	f.SetViewportSize(800, 600)

	f.Advance(1e12)

	if f.Spawns() != 1 || f.Despawns() != 1 {
		t.Errorf("expected one spawn and one despawn, got %d/%d", f.Spawns(), f.Despawns())
	}
	if math.IsNaN(f.Phase()) || math.IsInf(f.Phase(), 0) {
		t.Errorf("phase not finite: %f", f.Phase())
	}
	for _, p := range f.Snapshot().Points {
		if p.Alpha < 0 || p.Alpha > 1 || math.IsNaN(p.Alpha) {
			t.Fatalf("alpha %f out of range", p.Alpha)
		}
	}
}

func TestAlphaAtQuarterTurn(t *testing.T) {
	params := DefaultStarFieldParams()
	params.PointCount = 1
	params.TwinkleSpeedMin = 1
	params.TwinkleSpeedMax = 1

	// Every draw is 0: twinkle phase 0 and the star lands on the origin.
	f := NewStarField(params, constSource(0))
	f.SetViewportSize(100, 100)
	f.Advance(math.Pi / 4)

	if math.Abs(f.Phase()-math.Pi/2) > eps {
		t.Errorf("phase = %f, want pi/2", f.Phase())
	}

	snap := f.Snapshot()
	if len(snap.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(snap.Points))
	}
	p := snap.Points[0]
	if p.X != 0 || p.Y != 0 {
		t.Errorf("expected star at origin, got (%f, %f)", p.X, p.Y)
	}
	if math.Abs(p.Alpha-1.0) > eps {
		t.Errorf("alpha = %f, want 1.0", p.Alpha)
	}
}

func TestSnapshotIsPure(t *testing.T) {
	f := NewStarField(DefaultStarFieldParams(), rand.New(rand.NewSource(4)))
	f.SetViewportSize(800, 600)
	f.Advance(0.5)

	first := f.Snapshot()
	for i := 0; i < 3; i++ {
		if diff := cmp.Diff(first, f.Snapshot()); diff != "" {
			t.Fatalf("snapshot changed between calls:\n%s", diff)
		}
	}

	var reused Snapshot
	f.SnapshotInto(&reused)
	f.SnapshotInto(&reused)
	if diff := cmp.Diff(first, reused); diff != "" {
		t.Errorf("SnapshotInto differs from Snapshot:\n%s", diff)
	}
}

func TestStreakTail(t *testing.T) {
	tests := []struct {
		name string
		dir  r2.Vec
		want r2.Vec
	}{
		{"default diagonal", r2.Vec{X: 1, Y: 0.4}, r2.Vec{X: 20, Y: 68}},
		{"horizontal", r2.Vec{X: 1, Y: 0}, r2.Vec{X: 20, Y: 100}},
		{"leftward", r2.Vec{X: -1, Y: 0.4}, r2.Vec{X: 180, Y: 68}},
		{"vertical", r2.Vec{X: 0, Y: 2}, r2.Vec{X: 100, Y: 20}},
		{"still", r2.Vec{}, r2.Vec{X: 100, Y: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Streak{Pos: r2.Vec{X: 100, Y: 100}, Dir: tt.dir, Length: 80}
			got := s.Tail()
			if math.Abs(got.X-tt.want.X) > eps || math.Abs(got.Y-tt.want.Y) > eps {
				t.Errorf("Tail() = %v, want %v", got, tt.want)
			}
		})
	}
}
