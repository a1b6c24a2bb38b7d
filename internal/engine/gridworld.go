package engine

import (
	"fmt"
	"strings"
)

// MaxMazeSize bounds each maze dimension.
const MaxMazeSize = 64

const (
	DefaultGoalReward  = 10.0
	DefaultStepPenalty = -0.1
)

// CellKind is the content of a maze cell.
type CellKind uint8

const (
	CellFree CellKind = iota
	CellWall
)

// Rewards configures the step reward of the environment.
type Rewards struct {
	GoalReward  float64 `json:"goalReward"`
	StepPenalty float64 `json:"stepPenalty"`
}

// DefaultRewards returns +10 for entering the goal and -0.1 for any other step.
func DefaultRewards() Rewards {
	return Rewards{GoalReward: DefaultGoalReward, StepPenalty: DefaultStepPenalty}
}

// Maze is an editable rows x cols grid with a fixed start in the top-left
// corner and the goal in the bottom-right corner. Start and goal are always free.
type Maze struct {
	rows    int
	cols    int
	cells   []CellKind
	start   Position
	goal    Position
	rewards Rewards
}

// NewMaze allocates a maze of free cells.
func NewMaze(rows, cols int, rewards Rewards) (*Maze, error) {
	if err := checkSize(rows, cols); err != nil {
		return nil, err
	}
	m := &Maze{rewards: rewards}
	m.alloc(rows, cols)
	return m, nil
}

func checkSize(rows, cols int) error {
	if rows < 1 || cols < 1 || rows*cols < 2 || rows > MaxMazeSize || cols > MaxMazeSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, rows, cols)
	}
	return nil
}

func (m *Maze) alloc(rows, cols int) {
	m.rows = rows
	m.cols = cols
	m.cells = make([]CellKind, rows*cols)
	m.start = Position{Row: 0, Col: 0}
	m.goal = Position{Row: rows - 1, Col: cols - 1}
}

func (m *Maze) Rows() int { return m.rows }

func (m *Maze) Cols() int { return m.cols }

func (m *Maze) Start() Position { return m.start }

func (m *Maze) Goal() Position { return m.goal }

func (m *Maze) Rewards() Rewards { return m.rewards }

// InBounds reports whether pos lies inside the grid.
func (m *Maze) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < m.rows && pos.Col >= 0 && pos.Col < m.cols
}

// Cell returns the kind of the cell at pos. Out-of-bounds positions read as walls.
func (m *Maze) Cell(pos Position) CellKind {
	if !m.InBounds(pos) {
		return CellWall
	}
	return m.cells[pos.Row*m.cols+pos.Col]
}

// IsValid reports whether pos is in bounds and free.
func (m *Maze) IsValid(pos Position) bool {
	return m.Cell(pos) == CellFree
}

// ValidActions returns, in enumeration order, the actions whose destination
// is valid. An enclosed cell yields an empty slice.
func (m *Maze) ValidActions(pos Position) []Action {
	actions := make([]Action, 0, NumActions)
	for _, a := range Actions {
		if m.IsValid(pos.move(a)) {
			actions = append(actions, a)
		}
	}
	return actions
}

// Step applies action at pos. A move into a wall or off the grid leaves the
// position unchanged. Entering the goal pays GoalReward, anything else StepPenalty.
func (m *Maze) Step(pos Position, action Action) (Position, float64) {
	next := pos.move(action)
	if !m.IsValid(next) {
		next = pos
	}
	if next == m.goal {
		return next, m.rewards.GoalReward
	}
	return next, m.rewards.StepPenalty
}

// ToggleWall flips the cell at pos between free and wall. It reports false,
// leaving the maze untouched, for the start, the goal and out-of-bounds cells.
func (m *Maze) ToggleWall(pos Position) bool {
	if !m.InBounds(pos) || pos == m.start || pos == m.goal {
		return false
	}
	idx := pos.Row*m.cols + pos.Col
	if m.cells[idx] == CellWall {
		m.cells[idx] = CellFree
	} else {
		m.cells[idx] = CellWall
	}
	return true
}

// Resize replaces the grid with a rows x cols one, keeping the overlapping
// top-left region and resetting start and goal to the corners.
func (m *Maze) Resize(rows, cols int) error {
	if err := checkSize(rows, cols); err != nil {
		return err
	}
	oldRows, oldCols, old := m.rows, m.cols, m.cells
	m.alloc(rows, cols)
	for r := 0; r < min(oldRows, rows); r++ {
		for c := 0; c < min(oldCols, cols); c++ {
			m.cells[r*cols+c] = old[r*oldCols+c]
		}
	}
	m.cells[m.start.Row*cols+m.start.Col] = CellFree
	m.cells[m.goal.Row*cols+m.goal.Col] = CellFree
	return nil
}

// Clear removes every wall and restores the default start and goal.
func (m *Maze) Clear() {
	m.alloc(m.rows, m.cols)
}

// Walls lists wall positions in row-major order.
func (m *Maze) Walls() []Position {
	var walls []Position
	for i, kind := range m.cells {
		if kind == CellWall {
			walls = append(walls, Position{Row: i / m.cols, Col: i % m.cols})
		}
	}
	return walls
}

// Grid returns a copy of the cells as rows of booleans, true meaning wall.
func (m *Maze) Grid() [][]bool {
	grid := make([][]bool, m.rows)
	for r := range grid {
		grid[r] = make([]bool, m.cols)
		for c := range grid[r] {
			grid[r][c] = m.cells[r*m.cols+c] == CellWall
		}
	}
	return grid
}

// Clone returns a deep copy.
func (m *Maze) Clone() *Maze {
	cells := make([]CellKind, len(m.cells))
	copy(cells, m.cells)
	return &Maze{
		rows:    m.rows,
		cols:    m.cols,
		cells:   cells,
		start:   m.start,
		goal:    m.goal,
		rewards: m.rewards,
	}
}

// String renders the maze as text: S start, G goal, # wall, . free.
func (m *Maze) String() string {
	var b strings.Builder
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			pos := Position{Row: r, Col: c}
			switch {
			case pos == m.start:
				b.WriteByte('S')
			case pos == m.goal:
				b.WriteByte('G')
			case m.Cell(pos) == CellWall:
				b.WriteByte('#')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
