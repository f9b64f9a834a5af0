package mines

import (
	"fmt"
	"strconv"
	"strings"
)

// CellState is what the player gets to see of a cell.
type CellState int8

const (
	Hidden           CellState = -2
	Flagged          CellState = -1
	CorrectlyFlagged CellState = 64
	ExplodedMine     CellState = 65
	FalselyFlagged   CellState = 66
	UnflaggedMine    CellState = 67
	/*
	 * Values 0 to 8 mean the cell is open and show the number of
	 * mined neighbours.
	 *
	 * The values from 64 up only appear once the game is over:
	 *
	 * 	- 64 is a mine the player had flagged.
	 *
	 * 	- 65 is the mine the player stepped on.
	 *
	 * 	- 66 is a flag on a cell that holds no mine.
	 *
	 * 	- 67 is a mine nobody flagged.
	 */
)

func (s CellState) Revealed() bool {
	return 0 <= s && s <= 8 || s == ExplodedMine || s == UnflaggedMine
}

func (s CellState) String() string {
	switch {
	case s == Hidden:
		return "#"
	case s == Flagged || s == CorrectlyFlagged:
		return "F"
	case s == 0:
		return "."
	case 1 <= s && s <= 8:
		return strconv.Itoa(int(s))
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	case s == UnflaggedMine:
		return "*"
	default:
		return "!"
	}
}

// Grid is the player's view of a board, row-major.
type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
