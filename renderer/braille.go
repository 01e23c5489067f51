package renderer

import (
	"math"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"github.com/pthm-cable/starfield/systems"
)

// Braille cells are 2 dots wide and 4 dots tall.
const (
	brailleCellW = 2
	brailleCellH = 4
)

// DefaultTwinkleThreshold is the alpha above which a star is lit in braille
// output. Braille has no brightness, so twinkle shows up as blinking.
const DefaultTwinkleThreshold = 0.35

// BrailleRenderer rasterizes a star field snapshot into braille text for
// terminal previews.
type BrailleRenderer struct {
	cols, rows int
	threshold  float64
	canvas     drawille.Canvas
}

// NewBrailleRenderer creates a renderer producing cols x rows characters.
func NewBrailleRenderer(cols, rows int) *BrailleRenderer {
	return &BrailleRenderer{
		cols:      max(cols, 1),
		rows:      max(rows, 1),
		threshold: DefaultTwinkleThreshold,
		canvas:    drawille.NewCanvas(),
	}
}

// DotSize returns the canvas size in braille dots.
func (b *BrailleRenderer) DotSize() (w, h int) {
	return b.cols * brailleCellW, b.rows * brailleCellH
}

// Render draws snap, whose coordinates span viewW x viewH pixels, scaled to
// fit the character grid. Lines are exactly cols runes wide.
func (b *BrailleRenderer) Render(snap *systems.Snapshot, viewW, viewH float64) string {
	b.canvas.Clear()

	dotsW, dotsH := b.DotSize()
	if viewW <= 0 || viewH <= 0 {
		return b.frame(dotsW, dotsH)
	}
	sx := float64(dotsW) / viewW
	sy := float64(dotsH) / viewH

	for i := range snap.Points {
		p := &snap.Points[i]
		if p.Alpha < b.threshold {
			continue
		}
		b.plot(int(p.X*sx), int(p.Y*sy), dotsW, dotsH)
		// Larger stars light a second dot to the right
		if p.Radius*sx >= 1 {
			b.plot(int(p.X*sx)+1, int(p.Y*sy), dotsW, dotsH)
		}
	}

	if s := snap.Streak; s != nil {
		b.line(s.HeadX*sx, s.HeadY*sy, s.TailX*sx, s.TailY*sy, dotsW, dotsH)
	}

	return b.frame(dotsW, dotsH)
}

// plot sets a dot if it lies on the canvas.
func (b *BrailleRenderer) plot(x, y, dotsW, dotsH int) {
	if x < 0 || y < 0 || x >= dotsW || y >= dotsH {
		return
	}
	b.canvas.Set(x, y)
}

// line draws a segment with Bresenham's algorithm, clipping per dot. Dots
// outside dotsW x dotsH never reach the canvas, so a streak entering or leaving
// the view cannot grow the frame.
func (b *BrailleRenderer) line(x0f, y0f, x1f, y1f float64, dotsW, dotsH int) {
	x0, y0 := int(math.Round(x0f)), int(math.Round(y0f))
	x1, y1 := int(math.Round(x1f)), int(math.Round(y1f))

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	stepX, stepY := 1, 1
	if x0 > x1 {
		stepX = -1
	}
	if y0 > y1 {
		stepY = -1
	}

	errAcc := dx + dy
	for {
		b.plot(x0, y0, dotsW, dotsH)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += stepX
		}
		if e2 <= dx {
			errAcc += dx
			y0 += stepY
		}
	}
}

// frame extracts the canvas with consistent dimensions.
func (b *BrailleRenderer) frame(dotsW, dotsH int) string {
	rows := b.canvas.Rows(0, 0, dotsW, dotsH)

	lines := make([]string, b.rows)
	for i := 0; i < b.rows; i++ {
		var line string
		if i < len(rows) {
			line = rows[i]
		}
		runes := []rune(line)
		if len(runes) > b.cols {
			runes = runes[:b.cols]
		}
		if len(runes) < b.cols {
			line = string(runes) + strings.Repeat(" ", b.cols-len(runes))
		} else {
			line = string(runes)
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
