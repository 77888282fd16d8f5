package agent

// Action is a movement on the grid. Its value is the index of the matching
// entry in the network's output row.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
)

// NumActions is the width of the output row the agent expects.
const NumActions = 4

func (a Action) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "?"
	}
}

// SelectAction returns the action whose value is strictly greater than all
// other entries of row. Ties, including an all-equal row, fall back to Up.
// row must hold NumActions values.
func SelectAction(row []float64) Action {
	for i := 0; i < NumActions; i++ {
		best := true
		for j := 0; j < NumActions; j++ {
			if j != i && !(row[i] > row[j]) {
				best = false
				break
			}
		}
		if best {
			return Action(i)
		}
	}
	return Up
}
