package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated star field statistics for a time window.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	Frames int `csv:"frames"`

	// Shooting stars during window
	Spawns          int     `csv:"spawns"`
	Despawns        int     `csv:"despawns"`
	StreakAliveFrac float64 `csv:"streak_alive_frac"` // Fraction of frames with a streak on screen

	// Twinkle distribution (sampled at window end)
	VisibleStars int     `csv:"visible_stars"`
	AlphaMean    float64 `csv:"alpha_mean"`
	AlphaStd     float64 `csv:"alpha_std"`
	AlphaP10     float64 `csv:"alpha_p10"`
	AlphaP50     float64 `csv:"alpha_p50"`
	AlphaP90     float64 `csv:"alpha_p90"`
}

// ComputeAlphaStats calculates mean, std, and percentiles of star alphas.
// Returns zeros for an empty slice; std is 0 for a single value.
func ComputeAlphaStats(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	if len(values) == 1 {
		mean = values[0]
	} else {
		mean, std = stat.MeanStdDev(values, nil)
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogStats logs the window through slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"spawns", s.Spawns,
		"despawns", s.Despawns,
		"streak_alive_frac", s.StreakAliveFrac,
		"visible_stars", s.VisibleStars,
		"alpha_mean", s.AlphaMean,
		"alpha_std", s.AlphaStd,
	)
}
