// Package game hosts the star field: it owns the single engine instance,
// feeds it frame time and viewport changes, and draws its snapshots.
package game

import (
	"log/slog"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/systems"
	"github.com/pthm-cable/starfield/telemetry"
	"github.com/pthm-cable/starfield/ui"
)

// DT is the fixed frame time used in headless mode.
const DT = 1.0 / 60.0

// Time scale bounds and keyboard step.
const (
	MinTimeScale  = ui.MinTimeScale
	MaxTimeScale  = ui.MaxTimeScale
	timeScaleStep = 0.25
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	Headless       bool
	Term           bool    // Render braille frames instead of a window
	FixedDT        float64 // Headless frame time; 0 uses DT
}

// Game holds the complete host state.
type Game struct {
	field *systems.StarField
	seeds *rand.Rand
	seed  int64
	snap  systems.Snapshot

	// Rendering
	backgroundRenderer *renderer.BackgroundRenderer
	starRenderer       *renderer.StarFieldRenderer
	brailleRenderer    *renderer.BrailleRenderer
	hud                *ui.HUD
	controls           *ui.ControlsPanel

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// State
	frame     int32
	paused    bool
	timeScale float32
	fixedDT   float64
	headless  bool

	// Streak counters seen at the previous frame, for event logging
	lastSpawns   int
	lastDespawns int

	screenWidth, screenHeight int32
}

// NewGameWithOptions creates a new game with the given options.
// config.Init must have been called.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	fixedDT := opts.FixedDT
	if fixedDT <= 0 {
		fixedDT = DT
	}

	g := &Game{
		seeds:         rand.New(rand.NewSource(opts.Seed)),
		seed:          opts.Seed,
		collector:     telemetry.NewCollector(statsWindow),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		timeScale:     1,
		fixedDT:       fixedDT,
		headless:      opts.Headless || opts.Term,
		screenWidth:   int32(cfg.Screen.Width),
		screenHeight:  int32(cfg.Screen.Height),
	}

	g.field = g.newField(g.seed)
	g.collector.Rebind(g.field)

	if opts.Term {
		g.brailleRenderer = renderer.NewBrailleRenderer(cfg.Render.TermColumns, cfg.Render.TermRows)
	}
	if !g.headless {
		bg := cfg.Render.Background
		g.backgroundRenderer = renderer.NewBackgroundRenderer(g.screenWidth, g.screenHeight, bg.R, bg.G, bg.B)
		g.starRenderer = renderer.NewStarFieldRenderer(cfg.Render.StreakWidth)
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlsPanel(220)
	}

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	slog.Info("star field created",
		"seed", g.seed,
		"stars", g.field.StarCount(),
		"width", g.screenWidth,
		"height", g.screenHeight,
		"headless", g.headless,
	)

	return g
}

// newField builds an engine seeded with seed and sized to the current screen.
func (g *Game) newField(seed int64) *systems.StarField {
	cfg := config.Cfg()
	field := systems.NewStarField(cfg.StarFieldParams(), rand.New(rand.NewSource(seed)))
	field.SetViewportSize(float64(g.screenWidth), float64(g.screenHeight))
	return field
}

// Reset replaces the field with a freshly seeded one. Stars are re-placed and
// any shooting star is discarded.
func (g *Game) Reset() {
	g.seed = g.seeds.Int63()
	g.field = g.newField(g.seed)
	g.collector.Rebind(g.field)
	g.lastSpawns = 0
	g.lastDespawns = 0
	slog.Info("star field reset", "seed", g.seed)
}

// Shoot requests a shooting star on the next running frame.
func (g *Game) Shoot() {
	g.field.ForceSpawn()
}

// SetPaused freezes or resumes the field.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// SetTimeScale sets the simulation speed multiplier, clamped to
// [MinTimeScale, MaxTimeScale].
func (g *Game) SetTimeScale(scale float32) {
	g.timeScale = min(max(scale, MinTimeScale), MaxTimeScale)
}

// SetStatsCallback registers a function invoked with every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Resize propagates a new surface size to the field and renderers.
func (g *Game) Resize(width, height int32) {
	if width == g.screenWidth && height == g.screenHeight {
		return
	}
	g.screenWidth = width
	g.screenHeight = height
	g.field.SetViewportSize(float64(width), float64(height))
	if g.backgroundRenderer != nil {
		g.backgroundRenderer.Resize(width, height)
	}
	slog.Debug("viewport resized", "width", width, "height", height)
}

// Update advances one graphical frame using raylib's frame time.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.step(g.scaledElapsed(float64(rl.GetFrameTime())))
}

// UpdateHeadless advances one frame with the fixed frame time.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()
	g.step(g.scaledElapsed(g.fixedDT))
	g.perfCollector.EndFrame()
}

// scaledElapsed applies pause and time scale to a raw frame time.
func (g *Game) scaledElapsed(dt float64) float64 {
	if g.paused {
		return 0
	}
	return dt * float64(g.timeScale)
}

// step advances the field, refreshes the snapshot and records telemetry.
func (g *Game) step(elapsed float64) {
	g.perfCollector.StartPhase(telemetry.PhaseAdvance)
	g.field.Advance(elapsed)

	g.perfCollector.StartPhase(telemetry.PhaseSnapshot)
	g.field.SnapshotInto(&g.snap)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.frame++
	g.collector.RecordFrame(elapsed, g.field)
	g.logStreakEvents()
	g.flushTelemetry()
}

// logStreakEvents reports shooting star transitions at debug level.
func (g *Game) logStreakEvents() {
	if n := g.field.Spawns(); n != g.lastSpawns {
		g.lastSpawns = n
		if s, ok := g.field.Streak(); ok {
			slog.Debug("streak spawned", "frame", g.frame, "x", s.Pos.X, "y", s.Pos.Y, "speed", s.Speed)
		}
	}
	if n := g.field.Despawns(); n != g.lastDespawns {
		g.lastDespawns = n
		slog.Debug("streak despawned", "frame", g.frame)
	}
}

// Field returns the engine.
func (g *Game) Field() *systems.StarField {
	return g.field
}

// Snapshot returns the snapshot taken at the end of the last frame.
func (g *Game) Snapshot() *systems.Snapshot {
	return &g.snap
}

// Frame returns the number of frames run.
func (g *Game) Frame() int32 {
	return g.frame
}

// SimTimeSec returns the scaled simulated time run so far, across resets.
func (g *Game) SimTimeSec() float64 {
	return g.collector.SimTimeSec()
}

// Seed returns the seed of the current field.
func (g *Game) Seed() int64 {
	return g.seed
}

// Paused reports whether the field is frozen.
func (g *Game) Paused() bool {
	return g.paused
}

// TimeScale returns the simulation speed multiplier.
func (g *Game) TimeScale() float32 {
	return g.timeScale
}

// Unload releases resources and closes telemetry output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
