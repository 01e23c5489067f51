package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/renderer"
	"github.com/pthm-cable/starfield/telemetry"
	"github.com/pthm-cable/starfield/ui"
)

const controlsLegend = "[Space] Pause  [S] Shoot  [R] Reset  [<>] Speed  [Tab] Panel  [F11] Fullscreen"

// Draw renders the current frame.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	g.backgroundRenderer.Draw()
	g.starRenderer.Draw(&g.snap)
	g.drawUI()
	rl.EndDrawing()

	g.perfCollector.EndFrame()
}

// drawUI renders the HUD and applies controls panel input.
func (g *Game) drawUI() {
	_, streakAlive := g.field.Streak()
	g.hud.Draw(ui.HUDData{
		Title:        "Star Field",
		StarCount:    g.field.StarCount(),
		StreakAlive:  streakAlive,
		Spawns:       g.field.Spawns(),
		CountdownMs:  g.field.SpawnCountdownMs(),
		Phase:        g.field.Phase(),
		SimTimeSec:   g.SimTimeSec(),
		TimeScale:    g.timeScale,
		FPS:          rl.GetFPS(),
		Paused:       g.paused,
		ScreenWidth:  g.screenWidth,
		ScreenHeight: g.screenHeight,
	})
	g.hud.DrawControls(g.screenHeight, controlsLegend)

	if !g.controls.IsVisible() {
		return
	}
	action := g.controls.Draw(g.screenWidth, ui.ControlsState{
		TimeScale: g.timeScale,
		Paused:    g.paused,
	})
	g.applyControls(action)
}

// applyControls applies panel input. Changes take effect on the next frame.
func (g *Game) applyControls(action ui.ControlsAction) {
	if action.TimeScale != g.timeScale {
		g.SetTimeScale(action.TimeScale)
	}
	if action.TogglePause {
		g.paused = !g.paused
	}
	if action.Shoot {
		g.Shoot()
	}
	if action.Reset {
		g.Reset()
	}
}

// SetTermSize resizes the braille output to cols x rows characters. It has no
// effect unless the game was created in terminal mode.
func (g *Game) SetTermSize(cols, rows int) {
	if g.brailleRenderer == nil {
		return
	}
	g.brailleRenderer = renderer.NewBrailleRenderer(cols, rows)
}

// RenderTerm returns the current frame as braille text. It returns an empty
// string unless the game was created in terminal mode.
func (g *Game) RenderTerm() string {
	if g.brailleRenderer == nil {
		return ""
	}
	w, h := g.field.Viewport()
	return g.brailleRenderer.Render(&g.snap, w, h)
}
