package mines

import (
	"errors"
	"fmt"
)

const (
	MaxRows = 64
	MaxCols = 64
)

// safeZone is the number of cells of the 3x3 block around the first click.
const safeZone = 9

var (
	ErrBadDimensions = errors.New("board dimensions out of range")
	ErrTooManyMines  = errors.New("mine count leaves no room around the first click")
)

type GameParams struct {
	Rows      int `json:"rows" yaml:"rows"`
	Cols      int `json:"cols" yaml:"cols"`
	MineCount int `json:"mine_count" yaml:"mines"`
}

func (p GameParams) Unpack() (rows, cols, mineCount int) {
	return p.Rows, p.Cols, p.MineCount
}

func (p GameParams) String() string {
	return fmt.Sprintf("%dx%d/%d", p.Rows, p.Cols, p.MineCount)
}

// Validate reports whether a board with these params can always be generated.
// Mine placement never gives up, so infeasible params must be rejected here.
func (p GameParams) Validate() error {
	if p.Rows <= 0 || p.Rows > MaxRows || p.Cols <= 0 || p.Cols > MaxCols {
		return fmt.Errorf("%w: %dx%d", ErrBadDimensions, p.Rows, p.Cols)
	}
	if p.MineCount < 0 || p.MineCount >= p.Rows*p.Cols-safeZone {
		return fmt.Errorf(
			"%w: %d mines on %dx%d", ErrTooManyMines, p.MineCount, p.Rows, p.Cols,
		)
	}
	return nil
}

func (p GameParams) PointInBounds(pt Point) bool {
	return 0 <= pt.Row && pt.Row < p.Rows && 0 <= pt.Col && pt.Col < p.Cols
}
