package engine

// QTable stores one value per (cell, action) pair as a dense rows x cols x 4 array.
type QTable struct {
	rows int
	cols int
	data [][][NumActions]float64
}

// NewQTable allocates a zeroed table.
func NewQTable(rows, cols int) *QTable {
	return &QTable{rows: rows, cols: cols, data: newQData(rows, cols)}
}

func newQData(rows, cols int) [][][NumActions]float64 {
	data := make([][][NumActions]float64, rows)
	for r := 0; r < rows; r++ {
		data[r] = make([][NumActions]float64, cols)
	}
	return data
}

func (q *QTable) Rows() int { return q.rows }

func (q *QTable) Cols() int { return q.cols }

func (q *QTable) Get(pos Position, action Action) float64 {
	return q.data[pos.Row][pos.Col][action]
}

func (q *QTable) Set(pos Position, action Action, value float64) {
	q.data[pos.Row][pos.Col][action] = value
}

// BestAction returns the highest valued action among candidates. Ties go to
// the earliest candidate. ok is false when candidates is empty.
func (q *QTable) BestAction(pos Position, candidates []Action) (action Action, value float64, ok bool) {
	if len(candidates) == 0 {
		return 0, 0, false
	}
	action = candidates[0]
	value = q.Get(pos, action)
	for _, a := range candidates[1:] {
		if v := q.Get(pos, a); v > value {
			action, value = a, v
		}
	}
	return action, value, true
}

// MaxValue is the bootstrap term of the Bellman target. The goal is terminal
// and always worth 0, as is a cell with no candidate actions.
func (q *QTable) MaxValue(pos, goal Position, candidates []Action) float64 {
	if pos == goal {
		return 0
	}
	_, value, ok := q.BestAction(pos, candidates)
	if !ok {
		return 0
	}
	return value
}

// Resize reallocates the table, copying the overlapping region and zeroing the rest.
func (q *QTable) Resize(rows, cols int) {
	data := newQData(rows, cols)
	for r := 0; r < min(q.rows, rows); r++ {
		copy(data[r], q.data[r][:min(q.cols, cols)])
	}
	q.rows, q.cols, q.data = rows, cols, data
}

// Reset zeroes every entry.
func (q *QTable) Reset() {
	q.data = newQData(q.rows, q.cols)
}

// Values returns a deep copy of the table.
func (q *QTable) Values() [][][NumActions]float64 {
	values := newQData(q.rows, q.cols)
	for r := range q.data {
		copy(values[r], q.data[r])
	}
	return values
}

// Clone returns a deep copy.
func (q *QTable) Clone() *QTable {
	return &QTable{rows: q.rows, cols: q.cols, data: q.Values()}
}
