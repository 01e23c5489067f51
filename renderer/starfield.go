package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/starfield/systems"
)

// minStarRadius keeps the faintest stars at least one pixel wide.
const minStarRadius = 0.5

// StarFieldRenderer draws a star field snapshot with raylib.
type StarFieldRenderer struct {
	streakWidth float32
}

// NewStarFieldRenderer creates a star field renderer.
func NewStarFieldRenderer(streakWidth float32) *StarFieldRenderer {
	if streakWidth <= 0 {
		streakWidth = 2
	}
	return &StarFieldRenderer{streakWidth: streakWidth}
}

// Draw renders the stars as alpha-blended white circles and the shooting
// star, if any, as a line from head to tail.
func (r *StarFieldRenderer) Draw(snap *systems.Snapshot) {
	for i := range snap.Points {
		p := &snap.Points[i]

		radius := float32(p.Radius)
		if radius < minStarRadius {
			radius = minStarRadius
		}
		rl.DrawCircleV(
			rl.Vector2{X: float32(p.X), Y: float32(p.Y)},
			radius,
			whiteAlpha(p.Alpha),
		)
	}

	if s := snap.Streak; s != nil {
		rl.DrawLineEx(
			rl.Vector2{X: float32(s.HeadX), Y: float32(s.HeadY)},
			rl.Vector2{X: float32(s.TailX), Y: float32(s.TailY)},
			r.streakWidth,
			rl.White,
		)
	}
}

// whiteAlpha returns white at the given opacity in [0, 1].
func whiteAlpha(alpha float64) rl.Color {
	return rl.Color{R: 255, G: 255, B: 255, A: alphaByte(alpha)}
}

// alphaByte converts an opacity to a color channel, clamping to [0, 1].
func alphaByte(alpha float64) uint8 {
	if !(alpha > 0) {
		return 0
	}
	if alpha >= 1 {
		return 255
	}
	return uint8(alpha*255 + 0.5)
}
