package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// betaStorage holds the beta adjacency functions of a map: one
// transactional cell per (dimension, dart) pair. Row 0 belongs to the null
// dart and keeps every beta image null, so beta chains through the null
// dart stay at the null dart.
type betaStorage struct {
	dims int
	rows [][]stm.Var[DartID]
}

// newBetaStorage creates storage for darts 1..nDarts across dims beta
// functions (3 for 2-maps, 4 for 3-maps).
func newBetaStorage(dims, nDarts int) *betaStorage {
	b := &betaStorage{dims: dims}
	b.extend(nDarts + 1)
	return b
}

// extend appends n dart rows. Rows are allocated once and never moved, so
// cell pointers taken before an extension stay valid; only the outer slice
// header changes, which requires exclusive access.
func (b *betaStorage) extend(n int) {
	for i := 0; i < n; i++ {
		b.rows = append(b.rows, make([]stm.Var[DartID], b.dims))
	}
}

// len returns the number of dart rows, null dart included.
func (b *betaStorage) len() int {
	return len(b.rows)
}

func (b *betaStorage) cell(i int, d DartID) *stm.Var[DartID] {
	return &b.rows[d][i]
}

func (b *betaStorage) read(tx *stm.Tx, i int, d DartID) (DartID, error) {
	return b.rows[d][i].Read(tx)
}

func (b *betaStorage) write(tx *stm.Tx, i int, d, image DartID) error {
	return b.rows[d][i].Write(tx, image)
}

func (b *betaStorage) readAtomic(i int, d DartID) DartID {
	return b.rows[d][i].ReadAtomic()
}

// oneLink writes beta1(lhs) = rhs and maintains beta0 as its inverse. Both
// slots must be free; a populated slot aborts with a LinkError.
func (b *betaStorage) oneLink(tx *stm.Tx, lhs, rhs DartID) error {
	img, err := b.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	if img != NullDart {
		return stm.Abort(&LinkError{Dim: 1, Lhs: lhs, Rhs: rhs, Err: ErrNonFreeBase})
	}
	inv, err := b.read(tx, 0, rhs)
	if err != nil {
		return err
	}
	if inv != NullDart {
		return stm.Abort(&LinkError{Dim: 1, Lhs: lhs, Rhs: rhs, Err: ErrNonFreeImage})
	}
	if err := b.write(tx, 1, lhs, rhs); err != nil {
		return err
	}
	return b.write(tx, 0, rhs, lhs)
}

// oneUnlink clears beta1(lhs) and the matching beta0 entry. Aborts with a
// LinkError if lhs is already 1-free.
func (b *betaStorage) oneUnlink(tx *stm.Tx, lhs DartID) error {
	rhs, err := b.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	if rhs == NullDart {
		return stm.Abort(&LinkError{Dim: 1, Lhs: lhs, Err: ErrAlreadyFree})
	}
	if err := b.write(tx, 1, lhs, NullDart); err != nil {
		return err
	}
	return b.write(tx, 0, rhs, NullDart)
}

// twoLink writes the symmetric beta2 images of lhs and rhs. Both darts
// must be 2-free.
func (b *betaStorage) twoLink(tx *stm.Tx, lhs, rhs DartID) error {
	img, err := b.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	if img != NullDart {
		return stm.Abort(&LinkError{Dim: 2, Lhs: lhs, Rhs: rhs, Err: ErrNonFreeBase})
	}
	inv, err := b.read(tx, 2, rhs)
	if err != nil {
		return err
	}
	if inv != NullDart {
		return stm.Abort(&LinkError{Dim: 2, Lhs: lhs, Rhs: rhs, Err: ErrNonFreeImage})
	}
	if err := b.write(tx, 2, lhs, rhs); err != nil {
		return err
	}
	return b.write(tx, 2, rhs, lhs)
}

// twoUnlink clears the symmetric beta2 images of lhs and its current
// image. Aborts with a LinkError if lhs is already 2-free.
func (b *betaStorage) twoUnlink(tx *stm.Tx, lhs DartID) error {
	rhs, err := b.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	if rhs == NullDart {
		return stm.Abort(&LinkError{Dim: 2, Lhs: lhs, Err: ErrAlreadyFree})
	}
	if err := b.write(tx, 2, lhs, NullDart); err != nil {
		return err
	}
	return b.write(tx, 2, rhs, NullDart)
}

// threeLinkCore writes the symmetric beta3 images of a single dart pair.
// Walking the paired face loops is the caller's job.
func (b *betaStorage) threeLinkCore(tx *stm.Tx, lhs, rhs DartID) error {
	img, err := b.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	if img != NullDart {
		return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrNonFreeBase})
	}
	inv, err := b.read(tx, 3, rhs)
	if err != nil {
		return err
	}
	if inv != NullDart {
		return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Rhs: rhs, Err: ErrNonFreeImage})
	}
	if err := b.write(tx, 3, lhs, rhs); err != nil {
		return err
	}
	return b.write(tx, 3, rhs, lhs)
}

// threeUnlinkCore clears the symmetric beta3 images of a single dart pair.
func (b *betaStorage) threeUnlinkCore(tx *stm.Tx, lhs DartID) error {
	rhs, err := b.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	if rhs == NullDart {
		return stm.Abort(&LinkError{Dim: 3, Lhs: lhs, Err: ErrAlreadyFree})
	}
	if err := b.write(tx, 3, lhs, NullDart); err != nil {
		return err
	}
	return b.write(tx, 3, rhs, NullDart)
}
