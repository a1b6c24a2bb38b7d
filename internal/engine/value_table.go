package engine

import (
	"fmt"
	"io"
)

// StateValues projects the Q-table onto the maze as one value per cell, the
// best value over the cell's valid actions. Walls, the goal and enclosed
// cells read 0. This is the heatmap view of the table.
func (q *QTable) StateValues(m *Maze) [][]float64 {
	values := make([][]float64, q.rows)
	for r := 0; r < q.rows; r++ {
		values[r] = make([]float64, q.cols)
		for c := 0; c < q.cols; c++ {
			pos := Position{Row: r, Col: c}
			if !m.IsValid(pos) {
				continue
			}
			values[r][c] = q.MaxValue(pos, m.Goal(), m.ValidActions(pos))
		}
	}
	return values
}

// WriteStateValues prints the heatmap view as a fixed-width table.
func WriteStateValues(w io.Writer, values [][]float64) {
	fmt.Fprintln(w, "value table:")
	for _, row := range values {
		for _, v := range row {
			fmt.Fprintf(w, "%6.2f ", v)
		}
		fmt.Fprintln(w)
	}
}
