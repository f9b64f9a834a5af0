package mines

import "math/rand/v2"

// Generate lays out params.MineCount mines so that none of them lies in the
// 3x3 block centred on safe, then fills in the neighbour counts.
//
// Coordinates are drawn uniformly and redrawn while they hit a mine or the
// safe block. The loop has no attempt cap: params must pass
// [GameParams.Validate] and safe must be in bounds.
func Generate(params GameParams, safe Point, r *rand.Rand) *Board {
	b := newBoard(params)

	placed := 0
	for placed < params.MineCount {
		p := Point{Row: r.IntN(params.Rows), Col: r.IntN(params.Cols)}
		i := b.index(p)
		if b.Cells[i] == Mine || chebyshev(p, safe) <= 1 {
			continue
		}
		b.Cells[i] = Mine
		placed++
	}

	b.countNeighbors()

	Log.Debug("generated board",
		"params", params.String(), "safe", safe.String(),
	)

	return b
}

// countNeighbors writes the number of mined neighbours into every safe cell.
func (b *Board) countNeighbors() {
	for i := range b.Cells {
		if b.Cells[i] == Mine {
			continue
		}
		var n int8
		for q := range b.Neighbors(b.point(i)) {
			if b.IsMine(q) {
				n++
			}
		}
		b.Cells[i] = n
	}
}
