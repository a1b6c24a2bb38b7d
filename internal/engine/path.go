package engine

// DefaultPathMaxSteps caps a greedy rollout.
const DefaultPathMaxSteps = 50

// PathStatus tells why a greedy rollout ended.
type PathStatus string

const (
	PathReached   PathStatus = "reached"
	PathStuck     PathStatus = "stuck"
	PathCycle     PathStatus = "cycle"
	PathStepLimit PathStatus = "step_limit"
)

// Path is the route produced by a greedy rollout. It always starts at the
// maze start; it ends at the goal only when Status is PathReached.
type Path struct {
	Positions []Position `json:"positions"`
	Status    PathStatus `json:"status"`
}

// Reached reports whether the rollout arrived at the goal.
func (p Path) Reached() bool {
	return p.Status == PathReached
}

// Len is the number of positions, start included.
func (p Path) Len() int {
	return len(p.Positions)
}

// Last returns the final position of the path.
func (p Path) Last() Position {
	return p.Positions[len(p.Positions)-1]
}

// Contains reports whether pos is on the path.
func (p Path) Contains(pos Position) bool {
	for _, q := range p.Positions {
		if q == pos {
			return true
		}
	}
	return false
}

// ExtractPath follows the table greedily from start for at most maxSteps
// moves. It stops early at the goal, at a cell without valid actions, or
// when the next cell was already visited. A non-positive maxSteps uses
// DefaultPathMaxSteps.
func ExtractPath(table *QTable, m *Maze, maxSteps int) Path {
	if maxSteps <= 0 {
		maxSteps = DefaultPathMaxSteps
	}
	pos := m.Start()
	path := Path{Positions: []Position{pos}, Status: PathStepLimit}
	visited := map[Position]bool{pos: true}
	if pos == m.Goal() {
		path.Status = PathReached
		return path
	}
	for i := 0; i < maxSteps; i++ {
		action, _, ok := table.BestAction(pos, m.ValidActions(pos))
		if !ok {
			path.Status = PathStuck
			return path
		}
		next := pos.move(action)
		if visited[next] {
			path.Status = PathCycle
			return path
		}
		path.Positions = append(path.Positions, next)
		visited[next] = true
		pos = next
		if pos == m.Goal() {
			path.Status = PathReached
			return path
		}
	}
	return path
}
