package mines

import (
	"log/slog"
	"math/rand/v2"

	"github.com/zyedidia/generic/mapset"
)

var Log *slog.Logger = slog.Default()

// GameState is one game from the first click to a win or a loss. It is not
// safe for concurrent use; callers serialise moves on a single game.
type GameState struct {
	params   GameParams
	board    *Board /* nil until the first click */
	revealed mapset.Set[Point]
	flagged  mapset.Set[Point]
	phase    Phase
	exploded *Point
	clock    Clock
	rnd      *rand.Rand
}

// NewGame validates params and returns a Pending game. The board is only
// generated on the first [GameState.Reveal]. clock may be nil.
func NewGame(params GameParams, r *rand.Rand, clock Clock) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = nopClock{}
	}
	g := &GameState{
		params:   params,
		revealed: mapset.New[Point](),
		flagged:  mapset.New[Point](),
		phase:    Pending,
		clock:    clock,
		rnd:      r,
	}
	return g, nil
}

func (g *GameState) Params() GameParams { return g.params }
func (g *GameState) Phase() Phase       { return g.phase }

// Board is nil while the game is Pending.
func (g *GameState) Board() *Board { return g.board }

func (g *GameState) IsRevealed(p Point) bool { return g.revealed.Has(p) }
func (g *GameState) IsFlagged(p Point) bool  { return g.flagged.Has(p) }

// RemainingMines is the mine count minus the number of flags. It goes
// negative when the player places more flags than there are mines.
func (g *GameState) RemainingMines() int {
	return g.params.MineCount - g.flagged.Size()
}

// Reveal is the primary action on p. It returns the cells it opened.
func (g *GameState) Reveal(p Point) []Point {
	if g.phase.Over() || !g.params.PointInBounds(p) ||
		g.flagged.Has(p) || g.revealed.Has(p) {
		return nil
	}

	if g.phase == Pending {
		g.board = Generate(g.params, p, g.rnd)
		g.phase = Active
		g.clock.Start()
	}

	if g.board.IsMine(p) {
		return g.explode(p)
	}

	opened := Reveal(g.board, g.revealed, g.flagged, p)
	if g.cleared() {
		g.finish(Won)
	}
	return opened
}

// explode ends the game on the mine at p and opens every mine that is not
// under a flag.
func (g *GameState) explode(p Point) []Point {
	g.exploded = &p
	opened := make([]Point, 0, g.params.MineCount)
	for m := range g.board.Mines() {
		if g.flagged.Has(m) {
			continue
		}
		g.revealed.Put(m)
		opened = append(opened, m)
	}
	g.finish(Lost)
	return opened
}

func (g *GameState) finish(phase Phase) {
	g.phase = phase
	g.clock.Stop()
	Log.Debug("game over", "phase", phase.String(), "params", g.params.String())
}

// cleared reports whether every safe cell has been revealed.
func (g *GameState) cleared() bool {
	for i, v := range g.board.Cells {
		if v != Mine && !g.revealed.Has(g.board.point(i)) {
			return false
		}
	}
	return true
}

// ToggleFlag is the secondary action on p. Flags can be placed before the
// first click but not on revealed cells or after the game is over.
func (g *GameState) ToggleFlag(p Point) {
	if g.phase.Over() || !g.params.PointInBounds(p) || g.revealed.Has(p) {
		return
	}
	if g.flagged.Has(p) {
		g.flagged.Remove(p)
	} else {
		g.flagged.Put(p)
	}
}

// Cell returns the player's view of p.
func (g *GameState) Cell(p Point) CellState {
	switch {
	case g.revealed.Has(p):
		if g.board.IsMine(p) {
			if g.exploded != nil && *g.exploded == p {
				return ExplodedMine
			}
			return UnflaggedMine
		}
		return CellState(g.board.At(p))
	case g.flagged.Has(p):
		if g.phase == Lost {
			if g.board.IsMine(p) {
				return CorrectlyFlagged
			}
			return FalselyFlagged
		}
		return Flagged
	case g.phase == Won && g.board.IsMine(p):
		/* a won board shows its mines as flagged */
		return Flagged
	default:
		return Hidden
	}
}

func (g *GameState) Grid() Grid {
	grid := make(Grid, g.params.Rows*g.params.Cols)
	for i := range grid {
		grid[i] = g.Cell(Point{Row: i / g.params.Cols, Col: i % g.params.Cols})
	}
	return grid
}
