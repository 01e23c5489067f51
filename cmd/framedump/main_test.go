package main

import "testing"

func TestFrameCount(t *testing.T) {
	const dt = 1.0 / 60.0

	tests := []struct {
		name string
		at   float64
		want int
	}{
		{"one second", 1.0, 60},
		{"fractional", 3.5, 210},
		{"long run", 100, 6000},
		{"partial frame", 0.5 * dt, 0},
		{"zero", 0, 0},
		{"negative", -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := frameCount(tt.at, dt); got != tt.want {
				t.Errorf("frameCount(%v) = %d, want %d", tt.at, got, tt.want)
			}
		})
	}
}
