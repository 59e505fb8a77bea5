package cmap

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// collectCells computes the distinct cell ids of every used dart. Ids are
// deduplicated through a roaring bitmap and returned ascending.
func collectCells[ID ~uint32](nDarts int, unused *unusedTable, idOf func(DartID) uint32) []ID {
	bm := roaring.New()
	for d := DartID(1); int(d) <= nDarts; d++ {
		if unused.isUnusedAtomic(d) {
			continue
		}
		bm.Add(idOf(d))
	}
	out := make([]ID, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, ID(it.Next()))
	}
	return out
}
