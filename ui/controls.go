package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Time scale slider bounds.
const (
	MinTimeScale = 0.1
	MaxTimeScale = 4.0
)

// ControlsState is the host state shown by the controls panel.
type ControlsState struct {
	TimeScale float32
	Paused    bool
}

// ControlsAction reports what the user changed this frame.
type ControlsAction struct {
	TimeScale   float32
	TogglePause bool
	Shoot       bool
	Reset       bool
}

// ControlsPanel renders the right-side panel with simulation controls.
type ControlsPanel struct {
	renderer *Renderer
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Draw renders the panel anchored to the top-right corner of a screen of the
// given width and returns the user's input. A hidden panel returns the
// current state unchanged.
func (c *ControlsPanel) Draw(screenWidth int32, state ControlsState) ControlsAction {
	action := ControlsAction{TimeScale: state.TimeScale}
	if !c.visible {
		return action
	}

	r := c.renderer
	padding := r.Theme.Padding
	x := screenWidth - c.width - padding
	y := padding
	r.DrawPanel(x, y, c.width, 140)

	panelX := float32(x + padding)
	panelY := y + padding
	inner := float32(c.width - padding*2)

	panelY = r.DrawSectionHeader(int32(panelX), panelY, "Controls")

	r.DrawLabel(int32(panelX), panelY, fmt.Sprintf("Time scale %.2fx", state.TimeScale))
	panelY += r.Theme.LineHeight
	newScale := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: float32(panelY), Width: inner - 60, Height: 16},
		"", fmt.Sprintf("%.1f", MaxTimeScale),
		state.TimeScale, MinTimeScale, MaxTimeScale,
	)
	if newScale != state.TimeScale {
		action.TimeScale = newScale
	}
	panelY += 28

	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: panelX, Y: float32(panelY), Width: half, Height: 24}, toggleText(state.Paused, "Resume", "Pause")) {
		action.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: panelX + half + 10, Y: float32(panelY), Width: half, Height: 24}, "Shoot") {
		action.Shoot = true
	}
	panelY += 32

	if gui.Button(rl.Rectangle{X: panelX, Y: float32(panelY), Width: inner, Height: 24}, "Reset (new seed)") {
		action.Reset = true
	}

	return action
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
