package mines

import (
	"fmt"
	"iter"
)

// Mine marks a mined cell in [Board.Cells]; any other value is the number of
// mined neighbours.
const Mine int8 = -1

type Point struct {
	Row int `json:"row" schema:"row,required"`
	Col int `json:"col" schema:"col,required"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}

// Board is the hidden layout of a game. Cells are stored row-major.
type Board struct {
	GameParams
	Cells []int8
}

func newBoard(p GameParams) *Board {
	return &Board{
		GameParams: p,
		Cells:      make([]int8, p.Rows*p.Cols),
	}
}

func (b *Board) index(p Point) int {
	return p.Row*b.Cols + p.Col
}

func (b *Board) point(i int) Point {
	return Point{Row: i / b.Cols, Col: i % b.Cols}
}

// At returns the value of the cell at p. p must be in bounds.
func (b *Board) At(p Point) int8 {
	return b.Cells[b.index(p)]
}

func (b *Board) IsMine(p Point) bool {
	return b.At(p) == Mine
}

// Neighbors yields the in-bounds cells at Chebyshev distance 1 from p.
func (b *Board) Neighbors(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				q := Point{Row: p.Row + dr, Col: p.Col + dc}
				if !b.PointInBounds(q) {
					continue
				}
				if !yield(q) {
					return
				}
			}
		}
	}
}

// Mines yields every mined cell in row-major order.
func (b *Board) Mines() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for i, v := range b.Cells {
			if v == Mine && !yield(b.point(i)) {
				return
			}
		}
	}
}

func (b *Board) String() string {
	grid := make(Grid, len(b.Cells))
	for i, v := range b.Cells {
		if v == Mine {
			grid[i] = UnflaggedMine
		} else {
			grid[i] = CellState(v)
		}
	}
	return grid.ToString(b.Cols)
}
