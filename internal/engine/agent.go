package engine

import "math/rand"

// SelectAction is the epsilon-greedy policy. It only ever picks among the
// maze's valid actions at pos: with probability epsilon uniformly, otherwise
// the table's best action with ties to the first in enumeration order.
// ok is false when pos has no valid action.
func SelectAction(pos Position, epsilon float64, table *QTable, m *Maze, rng *rand.Rand) (Action, bool) {
	candidates := m.ValidActions(pos)
	if len(candidates) == 0 {
		return 0, false
	}
	if epsilon > 0 && rng.Float64() < epsilon {
		return candidates[rng.Intn(len(candidates))], true
	}
	action, _, _ := table.BestAction(pos, candidates)
	return action, true
}
