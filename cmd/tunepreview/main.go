// Star field tuning tool - live preview with sliders for twinkle and
// shooting star parameters.
//
// Usage: go run ./cmd/tunepreview
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/starfield/config"
	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/systems"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewW     = 640
	previewH     = 400
	panelWidth   = windowWidth - previewW - 30
)

// tunedParams is the subset of config written to the clipboard.
type tunedParams struct {
	StarField config.StarFieldConfig `yaml:"starfield"`
	Streak    config.StreakConfig    `yaml:"streak"`
}

// slider draws a labelled slider and reports whether the value changed.
func slider(x float32, y *float32, label string, value *float32, lo, hi float32, format string) bool {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		*value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 28
	if next != *value {
		*value = next
		return true
	}
	return false
}

func main() {
	if err := config.Init(""); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	defaults := *config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Star Field Tuning")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	cfg := defaults
	seed := int64(12345)

	// Slider state mirrors cfg as float32
	pointCount := float32(cfg.StarField.PointCount)
	phaseRate := float32(cfg.StarField.PhaseRate)
	speedMin := float32(cfg.Streak.SpeedMin)
	speedMax := float32(cfg.Streak.SpeedMax)
	spawnMin := float32(cfg.Streak.SpawnMinMs)
	spawnMax := float32(cfg.Streak.SpawnMaxMs)
	length := float32(cfg.Streak.Length)
	dirY := float32(cfg.Streak.DirY)

	build := func() *systems.StarField {
		f := systems.NewStarField(cfg.StarFieldParams(), rand.New(rand.NewSource(seed)))
		f.SetViewportSize(previewW, previewH)
		return f
	}
	field := build()

	bg := cfg.Render.Background
	background := renderer.NewBackgroundRenderer(previewW, previewH, bg.R, bg.G, bg.B)
	stars := renderer.NewStarFieldRenderer(cfg.Render.StreakWidth)
	cam := rl.Camera2D{Offset: rl.Vector2{X: 10, Y: 10}, Zoom: 1}

	for !rl.WindowShouldClose() {
		field.Advance(float64(rl.GetFrameTime()))
		snap := field.Snapshot()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Draw preview
		rl.BeginScissorMode(10, 10, previewW, previewH)
		rl.BeginMode2D(cam)
		background.Draw()
		stars.Draw(&snap)
		rl.EndMode2D()
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewW, previewH, rl.DarkGray)

		statsY := int32(previewH + 25)
		rl.DrawText(fmt.Sprintf("Phase: %.2f  Spawns: %d  Next in: %dms", field.Phase(), field.Spawns(), max(field.SpawnCountdownMs(), 0)), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Seed: %d", seed), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewW + 20)
		panelY := float32(10)

		rl.DrawText("Star Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rebuild := false
		rebuild = slider(panelX, &panelY, "Star count", &pointCount, 0, 400, "%.0f") || rebuild
		rebuild = slider(panelX, &panelY, "Phase rate (per second)", &phaseRate, 0.1, 8, "%.2f") || rebuild
		rebuild = slider(panelX, &panelY, "Streak speed min (px/s)", &speedMin, 50, 1500, "%.0f") || rebuild
		rebuild = slider(panelX, &panelY, "Streak speed max (px/s)", &speedMax, 50, 1500, "%.0f") || rebuild
		rebuild = slider(panelX, &panelY, "Spawn interval min (ms)", &spawnMin, 0, 15000, "%.0f") || rebuild
		rebuild = slider(panelX, &panelY, "Spawn interval max (ms)", &spawnMax, 0, 15000, "%.0f") || rebuild
		rebuild = slider(panelX, &panelY, "Streak length (px)", &length, 10, 300, "%.0f") || rebuild
		rebuild = slider(panelX, &panelY, "Streak slope (dy per dx)", &dirY, 0, 2, "%.2f") || rebuild

		// Keep ranges ordered
		speedMax = max(speedMax, speedMin)
		spawnMax = max(spawnMax, spawnMin)

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Shoot") {
			field.ForceSpawn()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			seed = int64(rl.GetRandomValue(0, 99999))
			rebuild = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 260, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg = defaults
			pointCount = float32(cfg.StarField.PointCount)
			phaseRate = float32(cfg.StarField.PhaseRate)
			speedMin = float32(cfg.Streak.SpeedMin)
			speedMax = float32(cfg.Streak.SpeedMax)
			spawnMin = float32(cfg.Streak.SpawnMinMs)
			spawnMax = float32(cfg.Streak.SpawnMaxMs)
			length = float32(cfg.Streak.Length)
			dirY = float32(cfg.Streak.DirY)
			rebuild = true
		}
		panelY += 45

		if rebuild {
			cfg.StarField.PointCount = int(pointCount)
			cfg.StarField.PhaseRate = float64(phaseRate)
			cfg.Streak.SpeedMin = float64(speedMin)
			cfg.Streak.SpeedMax = float64(speedMax)
			cfg.Streak.SpawnMinMs = int64(spawnMin)
			cfg.Streak.SpawnMaxMs = int64(spawnMax)
			cfg.Streak.Length = float64(length)
			cfg.Streak.DirY = float64(dirY)
			field = build()
		}

		// Output YAML
		out, err := yaml.Marshal(tunedParams{StarField: cfg.StarField, Streak: cfg.Streak})
		if err != nil {
			out = []byte(err.Error())
		}
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
			rl.DrawText(line, int32(panelX), int32(panelY), 12, rl.Gray)
			panelY += 14
		}

		// Instructions
		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(string(out))
		}

		rl.EndDrawing()
	}
}
