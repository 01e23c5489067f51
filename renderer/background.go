package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// BackgroundRenderer fills the screen behind the stars.
type BackgroundRenderer struct {
	color            rl.Color
	screenW, screenH int32
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(screenW, screenH int32, r, g, b uint8) *BackgroundRenderer {
	return &BackgroundRenderer{
		color:   rl.Color{R: r, G: g, B: b, A: 255},
		screenW: screenW,
		screenH: screenH,
	}
}

// Resize updates the fill area after a window resize.
func (b *BackgroundRenderer) Resize(screenW, screenH int32) {
	b.screenW = screenW
	b.screenH = screenH
}

// Draw clears the frame and paints the backdrop.
func (b *BackgroundRenderer) Draw() {
	rl.ClearBackground(b.color)
	rl.DrawRectangle(0, 0, b.screenW, b.screenH, b.color)
}
