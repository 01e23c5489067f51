// Frame dump tool - renders the star field at a given time to a PNG file.
//
// Usage: go run ./cmd/framedump -seed 42 -at 3.5 -out frame.png
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/systems"
)

// frameCount returns how many whole dt steps fit in at seconds.
func frameCount(at, dt float64) int {
	if at <= 0 || dt <= 0 {
		return 0
	}
	return int(math.Floor(at/dt + 1e-9))
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	seed := flag.Int64("seed", 1, "RNG seed")
	at := flag.Float64("at", 1.0, "Simulated seconds to advance before capturing")
	shoot := flag.Bool("shoot", false, "Force a shooting star before the final frame")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	width, height := int32(cfg.Screen.Width), int32(cfg.Screen.Height)

	// Advance the field at 60fps up to the capture time
	field := systems.NewStarField(cfg.StarFieldParams(), rand.New(rand.NewSource(*seed)))
	field.SetViewportSize(float64(width), float64(height))
	const dt = 1.0 / 60.0
	for i, n := 0, frameCount(*at, dt); i < n; i++ {
		field.Advance(dt)
	}
	if *shoot {
		field.ForceSpawn()
		field.Advance(dt)
	}
	snap := field.Snapshot()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(width, height, "Frame Dump")
	defer rl.CloseWindow()

	bg := cfg.Render.Background
	background := renderer.NewBackgroundRenderer(width, height, bg.R, bg.G, bg.B)
	stars := renderer.NewStarFieldRenderer(cfg.Render.StreakWidth)

	// Create render texture
	target := rl.LoadRenderTexture(width, height)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	background.Draw()
	stars.Draw(&snap)
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	// Export to PNG
	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame rendered to: %s (%dx%d, %d stars, streak=%t)\n",
			*outPath, width, height, len(snap.Points), snap.Streak != nil)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
