package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// unusedTable tracks which dart slots are unused. false means the dart is
// live; released or pre-allocated-but-unclaimed slots hold true.
type unusedTable struct {
	flags []*stm.Var[bool]
}

// newUnusedTable creates flags for darts 0..nDarts, all marked used. Slot 0
// is the null dart and is never handed out.
func newUnusedTable(nDarts int) *unusedTable {
	u := &unusedTable{}
	u.extend(nDarts+1, false)
	return u
}

func (u *unusedTable) extend(n int, unused bool) {
	for i := 0; i < n; i++ {
		u.flags = append(u.flags, stm.NewVar(unused))
	}
}

func (u *unusedTable) len() int {
	return len(u.flags)
}

func (u *unusedTable) isUnused(tx *stm.Tx, d DartID) (bool, error) {
	return u.flags[d].Read(tx)
}

func (u *unusedTable) isUnusedAtomic(d DartID) bool {
	return u.flags[d].ReadAtomic()
}

func (u *unusedTable) setUsed(tx *stm.Tx, d DartID) error {
	return u.flags[d].Write(tx, false)
}

func (u *unusedTable) setUnused(tx *stm.Tx, d DartID) error {
	return u.flags[d].Write(tx, true)
}

// countUnused counts unused live slots, ignoring the null dart.
func (u *unusedTable) countUnused() int {
	n := 0
	for _, f := range u.flags[1:] {
		if f.ReadAtomic() {
			n++
		}
	}
	return n
}
