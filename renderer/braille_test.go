package renderer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pthm-cable/starfield/systems"
)

// litCells counts characters with at least one dot set.
func litCells(frame string) int {
	n := 0
	for _, r := range frame {
		if r > '⠀' && r <= '⣿' {
			n++
		}
	}
	return n
}

func TestBrailleRenderDimensions(t *testing.T) {
	b := NewBrailleRenderer(20, 5)

	frames := map[string]string{
		"empty":       b.Render(&systems.Snapshot{}, 200, 100),
		"no viewport": b.Render(&systems.Snapshot{}, 0, 0),
		"star": b.Render(&systems.Snapshot{
			Points: []systems.PointSnapshot{{X: 100, Y: 50, Radius: 1, Alpha: 1}},
		}, 200, 100),
	}

	for name, frame := range frames {
		lines := strings.Split(frame, "\n")
		if len(lines) != 5 {
			t.Errorf("%s: got %d lines, want 5", name, len(lines))
		}
		for i, line := range lines {
			if n := len([]rune(line)); n != 20 {
				t.Errorf("%s: line %d has %d runes, want 20", name, i, n)
			}
		}
	}
}

func TestBrailleRenderTwinkleThreshold(t *testing.T) {
	b := NewBrailleRenderer(20, 5)

	tests := []struct {
		name  string
		alpha float64
		want  int
	}{
		{"bright", 0.9, 1},
		{"at threshold", DefaultTwinkleThreshold, 1},
		{"dim", 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &systems.Snapshot{
				Points: []systems.PointSnapshot{{X: 10, Y: 10, Radius: 0.5, Alpha: tt.alpha}},
			}
			if got := litCells(b.Render(snap, 200, 100)); got != tt.want {
				t.Errorf("lit cells = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBrailleRenderClipsOffscreen(t *testing.T) {
	b := NewBrailleRenderer(10, 3)
	snap := &systems.Snapshot{
		Points: []systems.PointSnapshot{
			{X: -50, Y: 10, Radius: 1, Alpha: 1},
			{X: 10, Y: 500, Radius: 1, Alpha: 1},
		},
	}
	if got := litCells(b.Render(snap, 100, 100)); got != 0 {
		t.Errorf("expected off-screen stars to be clipped, got %d lit cells", got)
	}
}

func TestBrailleRenderStreak(t *testing.T) {
	b := NewBrailleRenderer(40, 10)
	snap := &systems.Snapshot{
		Streak: &systems.StreakSnapshot{HeadX: 390, HeadY: 50, TailX: 10, TailY: 50},
	}

	frame := b.Render(snap, 400, 100)
	// A horizontal line across the canvas lights every cell in its row.
	if got := litCells(frame); got < 35 {
		t.Errorf("expected streak across most of a row, got %d lit cells", got)
	}

	// Clearing between frames
	if got := litCells(b.Render(&systems.Snapshot{}, 400, 100)); got != 0 {
		t.Errorf("expected blank frame after clear, got %d lit cells", got)
	}
}

func TestBrailleRenderStreakEnteringView(t *testing.T) {
	b := NewBrailleRenderer(40, 10)
	// Only the head end lies inside the 400x100 view; the tail is far off the left edge.
	snap := &systems.Snapshot{
		Streak: &systems.StreakSnapshot{HeadX: 50, HeadY: 50, TailX: -150, TailY: 50},
	}

	lines := strings.Split(b.Render(snap, 400, 100), "\n")
	if len(lines) != 10 {
		t.Fatalf("got %d lines, want 10", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 40 {
			t.Errorf("line %d has %d runes, want 40", i, n)
		}
	}

	row := []rune(lines[5])
	if litCells(string(row[:1])) != 1 {
		t.Errorf("streak should start at the left edge, row is %q", string(row))
	}
	if got := litCells(lines[5]); got > 6 {
		t.Errorf("off-screen part of the streak was drawn: %d lit cells", got)
	}
}

func TestBrailleRenderDeterministic(t *testing.T) {
	snap := &systems.Snapshot{
		Points: []systems.PointSnapshot{
			{X: 20, Y: 20, Radius: 2, Alpha: 1},
			{X: 150, Y: 80, Radius: 0.5, Alpha: 0.8},
		},
		Streak: &systems.StreakSnapshot{HeadX: 120, HeadY: 40, TailX: 40, TailY: 8},
	}

	a := NewBrailleRenderer(30, 8).Render(snap, 200, 100)
	b := NewBrailleRenderer(30, 8).Render(snap, 200, 100)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("renders differ:\n%s", diff)
	}
}

func TestAlphaByte(t *testing.T) {
	tests := []struct {
		alpha float64
		want  uint8
	}{
		{-1, 0},
		{0, 0},
		{0.5, 128},
		{1, 255},
		{2, 255},
	}
	for _, tt := range tests {
		if got := alphaByte(tt.alpha); got != tt.want {
			t.Errorf("alphaByte(%v) = %d, want %d", tt.alpha, got, tt.want)
		}
	}
}
