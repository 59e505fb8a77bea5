package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// DartPool is the view of a map the block reservation types need. Both
// CMap2 and CMap3 implement it.
type DartPool interface {
	NDarts() int
	IsUnused(tx *stm.Tx, d DartID) (bool, error)
	SetUsed(tx *stm.Tx, d DartID) error
}

// CompactDartBlock is a contiguous run of darts reserved from a map's
// unused slots. Reservation is transactional; once reserved, the owning
// goroutine hands out sub-ranges through TakeN without further
// synchronization.
type CompactDartBlock struct {
	start  DartID
	size   int
	cursor int
}

// ReserveCompactBlock scans for the lowest contiguous run of size unused
// darts and marks the whole run used in one transaction. Returns an
// AllocError when no qualifying run exists; that failure is permanent
// until storage grows.
func ReserveCompactBlock(pool DartPool, size int) (*CompactDartBlock, error) {
	if size <= 0 {
		return nil, &AllocError{Want: size, Reason: "block size must be positive"}
	}
	for d := 1; d+size-1 <= pool.NDarts(); d++ {
		var found bool
		err := stm.Atomically(func(tx *stm.Tx) error {
			found = false
			for db := d; db < d+size; db++ {
				unused, err := pool.IsUnused(tx, DartID(db))
				if err != nil {
					return err
				}
				if !unused {
					return nil
				}
			}
			for db := d; db < d+size; db++ {
				if err := pool.SetUsed(tx, DartID(db)); err != nil {
					return err
				}
			}
			found = true
			return nil
		})
		if err != nil {
			return nil, err
		}
		if found {
			return &CompactDartBlock{start: DartID(d), size: size}, nil
		}
	}
	return nil, &AllocError{Want: size, Reason: "no contiguous unused block found"}
}

// TakeN hands out the next n darts of the block as a contiguous range
// starting at the returned id. Returns ok=false when fewer than n darts
// remain; the block is left untouched in that case.
func (b *CompactDartBlock) TakeN(n int) (DartID, bool) {
	if n <= 0 || b.cursor+n > b.size {
		return NullDart, false
	}
	first := b.start + DartID(b.cursor)
	b.cursor += n
	return first, true
}

// TakeRemaining hands out whatever the block still holds, as a start id
// and a count. The block is empty afterwards.
func (b *CompactDartBlock) TakeRemaining() (DartID, int) {
	first := b.start + DartID(b.cursor)
	n := b.size - b.cursor
	b.cursor = b.size
	return first, n
}

// SparseDartBlock is a set of arbitrary (not necessarily contiguous)
// darts reserved from a map's unused slots in one transaction.
type SparseDartBlock struct {
	darts  []DartID
	cursor int
}

// ReserveSparseBlock collects size unused darts scanning ids upward and
// marks them used in one transaction. Returns an AllocError when the map
// holds fewer unused darts.
func ReserveSparseBlock(pool DartPool, size int) (*SparseDartBlock, error) {
	if size <= 0 {
		return nil, &AllocError{Want: size, Reason: "block size must be positive"}
	}
	var darts []DartID
	err := stm.Atomically(func(tx *stm.Tx) error {
		darts = darts[:0]
		for d := DartID(1); int(d) <= pool.NDarts(); d++ {
			unused, err := pool.IsUnused(tx, d)
			if err != nil {
				return err
			}
			if unused {
				if err := pool.SetUsed(tx, d); err != nil {
					return err
				}
				darts = append(darts, d)
				if len(darts) == size {
					return nil
				}
			}
		}
		return stm.Abort(&AllocError{Want: size, Reason: "not enough unused darts to build sparse block"})
	})
	if err != nil {
		return nil, err
	}
	return &SparseDartBlock{darts: darts}, nil
}

// TakeN hands out the next n darts of the block. Returns ok=false when
// fewer than n remain.
func (b *SparseDartBlock) TakeN(n int) ([]DartID, bool) {
	if n <= 0 || b.cursor+n > len(b.darts) {
		return nil, false
	}
	c := b.cursor
	b.cursor += n
	return b.darts[c:b.cursor], true
}

// TakeRemaining hands out whatever the block still holds.
func (b *SparseDartBlock) TakeRemaining() []DartID {
	c := b.cursor
	b.cursor = len(b.darts)
	return b.darts[c:]
}
