// Package term runs the star field as a braille animation in a terminal.
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/starfield/game"
)

const legend = "[space] pause  [s] shoot  [r] reset  [<>] speed  [q] quit"

// Preview draws a game's braille frames onto a tcell screen and maps keys to
// game controls. The game must have been created in terminal mode.
type Preview struct {
	screen tcell.Screen
	game   *game.Game

	starStyle   tcell.Style
	statusStyle tcell.Style
}

// NewPreview binds g to an initialized screen and sizes the braille output to
// fill it above the status line.
func NewPreview(screen tcell.Screen, g *game.Game) *Preview {
	p := &Preview{
		screen:      screen,
		game:        g,
		starStyle:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		statusStyle: tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlack),
	}
	p.fit()
	return p
}

// fit matches the braille grid to the screen, keeping the last row for status.
func (p *Preview) fit() {
	cols, rows := p.screen.Size()
	p.game.SetTermSize(cols, max(rows-1, 1))
}

// Draw renders the latest frame and status line, then shows the screen.
func (p *Preview) Draw() {
	p.screen.Clear()

	for y, line := range strings.Split(p.game.RenderTerm(), "\n") {
		x := 0
		for _, r := range line {
			p.screen.SetContent(x, y, r, nil, p.starStyle)
			x++
		}
	}

	_, rows := p.screen.Size()
	x := 0
	for _, r := range p.status() {
		p.screen.SetContent(x, rows-1, r, nil, p.statusStyle)
		x++
	}

	p.screen.Show()
}

// status describes the field state for the bottom line.
func (p *Preview) status() string {
	f := p.game.Field()
	streak := "-"
	if s, ok := f.Streak(); ok {
		streak = fmt.Sprintf("(%.0f,%.0f)", s.Pos.X, s.Pos.Y)
	}
	state := ""
	if p.game.Paused() {
		state = " PAUSED"
	}
	return fmt.Sprintf("stars %d  streak %s  spawns %d  t %.1fs  %.2fx%s  %s",
		f.StarCount(), streak, f.Spawns(), p.game.SimTimeSec(), p.game.TimeScale(), state, legend)
}

// HandleEvent applies a terminal event. It returns false when the user quits.
func (p *Preview) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			p.game.SetPaused(!p.game.Paused())
		case 's':
			p.game.Shoot()
		case 'r':
			p.game.Reset()
		case '<', ',':
			p.game.SetTimeScale(p.game.TimeScale() - 0.25)
		case '>', '.':
			p.game.SetTimeScale(p.game.TimeScale() + 0.25)
		}

	case *tcell.EventResize:
		p.screen.Sync()
		p.fit()
	}

	return true
}

// Run advances and draws the game at frameInterval until the user quits or
// maxFrames frames have run (0 = unlimited).
func (p *Preview) Run(frameInterval time.Duration, maxFrames int) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case ev := <-events:
			if !p.HandleEvent(ev) {
				return
			}

		case <-ticker.C:
			p.game.UpdateHeadless()
			p.Draw()

			if maxFrames > 0 && int(p.game.Frame()) >= maxFrames {
				return
			}
		}
	}
}
