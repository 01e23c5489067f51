package systems

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Default shooting star parameters.
const (
	DefaultStreakDirX      = 1.0
	DefaultStreakDirY      = 0.4
	DefaultStreakLength    = 80.0
	DefaultStreakSpeedMin  = 300.0
	DefaultStreakSpeedMax  = 700.0
	DefaultSpawnMinMs      = 3000
	DefaultSpawnMaxMs      = 7000
	DefaultStreakSpawnBand = 0.2 // top fraction of the viewport
)

// StreakParams configures shooting star spawning and motion.
type StreakParams struct {
	DirX, DirY float64
	Length     float64
	SpeedMin   float64 // pixels per second
	SpeedMax   float64
	SpawnMinMs int64
	SpawnMaxMs int64
	Band       float64
}

// DefaultStreakParams returns the stock shooting star settings.
func DefaultStreakParams() StreakParams {
	return StreakParams{
		DirX:       DefaultStreakDirX,
		DirY:       DefaultStreakDirY,
		Length:     DefaultStreakLength,
		SpeedMin:   DefaultStreakSpeedMin,
		SpeedMax:   DefaultStreakSpeedMax,
		SpawnMinMs: DefaultSpawnMinMs,
		SpawnMaxMs: DefaultSpawnMaxMs,
		Band:       DefaultStreakSpawnBand,
	}
}

// Streak is a shooting star. Only Pos changes after spawn.
type Streak struct {
	Pos    r2.Vec
	Dir    r2.Vec
	Length float64
	Speed  float64
}

func (s *Streak) step(dt float64) {
	s.Pos = r2.Add(s.Pos, r2.Scale(s.Speed*dt, s.Dir))
}

func (s *Streak) outside(width, height float64) bool {
	return s.Pos.X < 0 || s.Pos.Y < 0 || s.Pos.X > width || s.Pos.Y > height
}

// Tail returns the trailing end of the streak. The trail spans Length
// horizontally behind the head and follows the direction's slope; a vertical
// direction falls back to Length along the unit direction.
func (s *Streak) Tail() r2.Vec {
	if s.Dir.X == 0 {
		if s.Dir.Y == 0 {
			return s.Pos
		}
		return r2.Sub(s.Pos, r2.Scale(s.Length, r2.Unit(s.Dir)))
	}
	back := s.Length
	if s.Dir.X < 0 {
		back = -back
	}
	return r2.Vec{
		X: s.Pos.X - back,
		Y: s.Pos.Y - back*(s.Dir.Y/s.Dir.X),
	}
}

// Snapshot is the drawable state of a StarField at one instant.
type Snapshot struct {
	Points []PointSnapshot
	Streak *StreakSnapshot
}

// PointSnapshot is a star ready to draw as a filled white circle.
type PointSnapshot struct {
	X, Y   float64
	Radius float64
	Alpha  float64
}

// StreakSnapshot is a shooting star ready to draw as a line from head to tail.
type StreakSnapshot struct {
	HeadX, HeadY float64
	TailX, TailY float64
}
