package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBestActionRestrictedToCandidates(t *testing.T) {
	q := NewQTable(2, 2)
	pos := Position{Row: 0, Col: 0}
	q.Set(pos, ActionUp, 100)
	q.Set(pos, ActionDown, 1)
	q.Set(pos, ActionRight, 2)

	action, value, ok := q.BestAction(pos, []Action{ActionDown, ActionRight})
	assert.True(t, ok)
	assert.Equal(t, ActionRight, action)
	assert.Equal(t, 2.0, value)
}

func TestBestActionTieBreak(t *testing.T) {
	q := NewQTable(2, 2)
	pos := Position{Row: 0, Col: 1}
	action, _, ok := q.BestAction(pos, []Action{ActionDown, ActionLeft})
	assert.True(t, ok)
	assert.Equal(t, ActionDown, action)

	q.Set(pos, ActionDown, -1)
	q.Set(pos, ActionLeft, -1)
	action, _, _ = q.BestAction(pos, []Action{ActionDown, ActionLeft})
	assert.Equal(t, ActionDown, action)
}

func TestBestActionEmpty(t *testing.T) {
	q := NewQTable(2, 2)
	_, _, ok := q.BestAction(Position{}, nil)
	assert.False(t, ok)
}

func TestMaxValueGoalIsZero(t *testing.T) {
	q := NewQTable(3, 3)
	goal := Position{Row: 2, Col: 2}
	for _, a := range Actions {
		q.Set(goal, a, 42)
	}
	assert.Zero(t, q.MaxValue(goal, goal, Actions[:]))
	assert.Zero(t, q.MaxValue(goal, goal, nil))

	other := Position{Row: 1, Col: 1}
	q.Set(other, ActionLeft, -3)
	q.Set(other, ActionUp, -5)
	assert.Equal(t, -3.0, q.MaxValue(other, goal, []Action{ActionUp, ActionLeft}))
	assert.Zero(t, q.MaxValue(other, goal, nil))
}

func TestQTableResize(t *testing.T) {
	q := NewQTable(3, 3)
	q.Set(Position{Row: 1, Col: 1}, ActionRight, 7)
	q.Set(Position{Row: 2, Col: 2}, ActionUp, 9)

	q.Resize(4, 5)
	assert.Equal(t, 4, q.Rows())
	assert.Equal(t, 5, q.Cols())
	assert.Equal(t, 7.0, q.Get(Position{Row: 1, Col: 1}, ActionRight))
	assert.Equal(t, 9.0, q.Get(Position{Row: 2, Col: 2}, ActionUp))
	assert.Zero(t, q.Get(Position{Row: 3, Col: 4}, ActionDown))

	q.Resize(2, 2)
	assert.Len(t, q.Values(), 2)
	assert.Equal(t, 7.0, q.Get(Position{Row: 1, Col: 1}, ActionRight))
}

func TestQTableResetAndClone(t *testing.T) {
	q := NewQTable(2, 2)
	q.Set(Position{Row: 0, Col: 1}, ActionDown, 3)
	c := q.Clone()
	q.Reset()
	assert.Zero(t, q.Get(Position{Row: 0, Col: 1}, ActionDown))
	assert.Equal(t, 3.0, c.Get(Position{Row: 0, Col: 1}, ActionDown))
}

func TestStateValues(t *testing.T) {
	m, err := NewMaze(2, 2, DefaultRewards())
	assert.NoError(t, err)
	m.ToggleWall(Position{Row: 1, Col: 0})
	q := NewQTable(2, 2)
	q.Set(Position{Row: 0, Col: 0}, ActionRight, 4)
	q.Set(Position{Row: 0, Col: 0}, ActionDown, 8)
	q.Set(Position{Row: 1, Col: 0}, ActionRight, 5)

	values := q.StateValues(m)
	assert.Equal(t, [][]float64{{4, 0}, {0, 0}}, values)
}
