package engine

import "fmt"

// Position addresses a maze cell by row and column.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func (p Position) move(a Action) Position {
	d := actionDeltas[a]
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Action is one of the four cardinal moves.
type Action int

const (
	ActionUp Action = iota
	ActionDown
	ActionLeft
	ActionRight
)

// NumActions is the size of the action space.
const NumActions = 4

// Actions lists every action in the fixed enumeration order used for tie-breaks.
var Actions = [NumActions]Action{ActionUp, ActionDown, ActionLeft, ActionRight}

var actionDeltas = [NumActions]Position{
	ActionUp:    {Row: -1, Col: 0},
	ActionDown:  {Row: 1, Col: 0},
	ActionLeft:  {Row: 0, Col: -1},
	ActionRight: {Row: 0, Col: 1},
}

var actionNames = [NumActions]string{"up", "down", "left", "right"}

func (a Action) String() string {
	if a < 0 || int(a) >= NumActions {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Delta returns the unit row/col offset of the action.
func (a Action) Delta() Position {
	return actionDeltas[a]
}
