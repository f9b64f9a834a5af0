package mines

import (
	"github.com/gammazero/deque"
	"github.com/zyedidia/generic/mapset"
)

// Reveal opens origin and, if it has no mined neighbours, the whole connected
// zero region around it together with the numbered cells bordering that
// region. revealed is updated in place and the newly opened cells are
// returned in visit order.
//
// Out-of-bounds, revealed and flagged targets are left alone, so calling
// Reveal again with the same arguments opens nothing. origin must not be a
// mine.
func Reveal(b *Board, revealed, flagged mapset.Set[Point], origin Point) []Point {
	var (
		opened []Point
		todo   deque.Deque[Point]
	)

	todo.PushBack(origin)
	for todo.Len() > 0 {
		p := todo.PopBack()
		if !b.PointInBounds(p) || revealed.Has(p) || flagged.Has(p) {
			continue
		}

		revealed.Put(p)
		opened = append(opened, p)

		if b.At(p) != 0 {
			continue
		}
		for q := range b.Neighbors(p) {
			if !revealed.Has(q) && !flagged.Has(q) {
				todo.PushBack(q)
			}
		}
	}

	return opened
}
