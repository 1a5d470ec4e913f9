package rules

// Transition names the rule that decided a cell's next state
type Transition int

const (
	Underpopulation Transition = iota + 1
	Survival
	Overpopulation
	Reproduction
	Unchanged
)

var transitionNames = map[Transition]string{
	Underpopulation: "underpopulation",
	Survival:        "survival",
	Overpopulation:  "overpopulation",
	Reproduction:    "reproduction",
	Unchanged:       "unchanged",
}

func (t Transition) String() string {
	if name, ok := transitionNames[t]; ok {
		return name
	}
	return "unknown"
}

// Alive reports whether the cell is alive after the transition
func (t Transition) Alive() bool {
	return t == Survival || t == Reproduction
}

/*
Classify returns which of Conway's rules (B3/S23) applies to a cell.

The rules are checked in order and the first match wins:
 1. alive with fewer than two neighbors dies (underpopulation)
 2. alive with two or three neighbors lives on
 3. alive with more than three neighbors dies (overpopulation)
 4. dead with exactly three neighbors becomes alive (reproduction)
 5. every other dead cell stays dead
*/
func Classify(neighbors int, alive bool) Transition {
	switch {
	case alive && neighbors < 2:
		return Underpopulation
	case alive && (neighbors == 2 || neighbors == 3):
		return Survival
	case alive && neighbors > 3:
		return Overpopulation
	case !alive && neighbors == 3:
		return Reproduction
	default:
		return Unchanged
	}
}

// ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.
func ApplyConwayRules(neighbors int, alive bool) bool {
	return Classify(neighbors, alive).Alive()
}
