package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	StarCount    int
	StreakAlive  bool
	Spawns       int
	CountdownMs  int64
	Phase        float64
	SimTimeSec   float64
	TimeScale    float32
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// hudRow is one label/value line of the HUD panel.
type hudRow struct {
	label string
	value string
}

// hudRows formats the field readouts shown under the title.
func hudRows(data HUDData) []hudRow {
	return []hudRow{
		{"Stars", fmt.Sprintf("%d", data.StarCount)},
		{"Streak", streakLabel(data.StreakAlive, data.CountdownMs)},
		{"Spawns", fmt.Sprintf("%d", data.Spawns)},
		{"Phase", fmt.Sprintf("%.1f", data.Phase)},
		{"Sim time", fmt.Sprintf("%.1fs", data.SimTimeSec)},
		{"Speed", fmt.Sprintf("%.2fx", data.TimeScale)},
		{"FPS", fmt.Sprintf("%d", data.FPS)},
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	theme := h.renderer.Theme
	rows := hudRows(data)

	x := int32(10)
	y := int32(10)
	height := theme.Padding*2 + theme.LineHeight*int32(len(rows)+1)
	if data.Paused {
		height += theme.LineHeight
	}
	h.renderer.DrawPanel(x, y, 200, height)

	x += theme.Padding
	y = h.renderer.DrawSectionHeader(x, y+theme.Padding, data.Title)
	for _, row := range rows {
		y = h.renderer.DrawLabelValue(x, y, row.label, row.value)
	}

	if data.Paused {
		rl.DrawText("PAUSED", x, y, theme.FontSize, theme.StatusColor)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// streakLabel describes the streak state for the HUD.
func streakLabel(alive bool, countdownMs int64) string {
	if alive {
		return "alive"
	}
	if countdownMs <= 0 {
		return "due"
	}
	return fmt.Sprintf("in %.1fs", float64(countdownMs)/1000)
}
