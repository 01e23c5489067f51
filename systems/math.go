package systems

// lerp maps t in [0, 1) onto [a, b).
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
