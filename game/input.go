package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.Shoot()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset()
	}

	// Time scale control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) {
		g.SetTimeScale(g.timeScale - timeScaleStep)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		g.SetTimeScale(g.timeScale + timeScaleStep)
	}

	if rl.IsKeyPressed(rl.KeyTab) && g.controls != nil {
		g.controls.Toggle()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.Resize(int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight()))
}
