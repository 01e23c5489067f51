package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/game"
	"github.com/pthm-cable/starfield/term"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	termMode := flag.Bool("term", false, "Render braille frames to the terminal instead of a window")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	verbose := flag.Bool("v", false, "Log shooting star events at debug level")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging). The terminal preview
	// owns the TTY, so logs go to a file under -output-dir or nowhere.
	logOut, closeLog, err := logWriter(*termMode, *outputDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Build game options
	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Term:           *termMode,
	}

	switch {
	case *termMode:
		runTerm(opts, *maxFrames)
	case *headless:
		// Headless mode - pure CPU simulation, no raylib needed
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"max_frames", *maxFrames,
		)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame())
				return
			}
		}
	default:
		// Graphical mode
		if cfg.Screen.Resizable {
			rl.SetConfigFlags(rl.FlagWindowResizable)
		}
		rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Star Field")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		for !rl.WindowShouldClose() {
			g.Update()
			g.Draw()

			if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
				break
			}
		}
	}
}

// logWriter picks the slog destination. Terminal mode never writes to the
// screen's TTY: it logs to starfield.log in outputDir, or discards.
func logWriter(termMode bool, outputDir string) (io.Writer, func() error, error) {
	nop := func() error { return nil }
	if !termMode {
		return os.Stdout, nop, nil
	}
	if outputDir == "" {
		return io.Discard, nop, nil
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(outputDir, "starfield.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, f.Close, nil
}

// runTerm animates the field as braille text in the terminal.
func runTerm(opts game.Options, maxFrames int) {
	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create terminal screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to initialize terminal screen", "error", err)
		os.Exit(1)
	}
	defer screen.Fini()

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	slog.Info("starting terminal preview", "seed", opts.Seed, "max_frames", maxFrames)

	term.NewPreview(screen, g).Run(config.Cfg().Derived.FrameInterval, maxFrames)
}
