package engine

import "math"

const (
	// EpsilonDecay is the per-episode multiplicative decay of exploration.
	EpsilonDecay = 0.98
	// EpsilonFloor is the lowest exploration rate the schedule decays to.
	EpsilonFloor = 0.01
)

// EpsilonAt returns the exploration rate of the i-th episode (from 0) of a
// session that started at epsilon0. The floor never lifts a session above
// its own epsilon0, so a greedy session (epsilon0 = 0) stays greedy.
func EpsilonAt(epsilon0 float64, i int) float64 {
	floor := math.Min(EpsilonFloor, epsilon0)
	return math.Max(floor, epsilon0*math.Pow(EpsilonDecay, float64(i)))
}
