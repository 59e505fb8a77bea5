package stm

import "sync/atomic"

// Var is a transactional memory cell holding a value of type T.
//
// The zero value is ready to use and holds the zero value of T. A Var must
// not be copied after first use.
type Var[T any] struct {
	// state is the version word: even values are committed versions, the
	// low bit doubles as the commit lock.
	state atomic.Uint64
	val   atomic.Pointer[T]
}

// NewVar creates a Var holding val.
func NewVar[T any](val T) *Var[T] {
	v := &Var[T]{}
	v.val.Store(&val)
	return v
}

// cell is the type-erased view of a Var used by the transaction log.
type cell interface {
	sample() (any, uint64, bool)
	tryLock(expect uint64) bool
	currentVersion() (uint64, bool)
	unlock(restore uint64)
	publish(val any, version uint64)
}

// sample returns a consistent (value, version) snapshot, or ok=false if the
// cell is locked by a committing transaction.
func (v *Var[T]) sample() (any, uint64, bool) {
	ver := v.state.Load()
	if ver&lockBit != 0 {
		return nil, 0, false
	}
	p := v.val.Load()
	if v.state.Load() != ver {
		return nil, 0, false
	}
	if p == nil {
		var zero T
		return zero, ver, true
	}
	return *p, ver, true
}

func (v *Var[T]) tryLock(expect uint64) bool {
	return v.state.CompareAndSwap(expect, expect|lockBit)
}

func (v *Var[T]) currentVersion() (uint64, bool) {
	ver := v.state.Load()
	return ver, ver&lockBit == 0
}

func (v *Var[T]) unlock(restore uint64) {
	v.state.Store(restore)
}

// publish stores val and releases the lock by installing the new version.
// Only called while the cell lock is held.
func (v *Var[T]) publish(val any, version uint64) {
	tv := val.(T)
	v.val.Store(&tv)
	v.state.Store(version)
}

// Read returns the value of v as seen by tx. The first read records the
// committed version for commit-time validation; subsequent reads and writes
// within the same transaction observe the transaction-local value.
func (v *Var[T]) Read(tx *Tx) (T, error) {
	if e, ok := tx.log[cell(v)]; ok {
		return e.local.(T), nil
	}
	val, ver, ok := v.sample()
	if !ok || ver > tx.rv {
		var zero T
		return zero, ErrConflict
	}
	tx.record(v, &entry{readVersion: ver, read: true, local: val})
	return val.(T), nil
}

// Write buffers val as the transaction-local value of v. The write becomes
// visible to other transactions only if tx commits.
func (v *Var[T]) Write(tx *Tx, val T) error {
	if e, ok := tx.log[cell(v)]; ok {
		e.written = true
		e.local = val
		return nil
	}
	tx.record(v, &entry{written: true, local: val})
	return nil
}

// Replace writes val and returns the value it replaced, all within tx.
func (v *Var[T]) Replace(tx *Tx, val T) (T, error) {
	old, err := v.Read(tx)
	if err != nil {
		return old, err
	}
	if err := v.Write(tx, val); err != nil {
		return old, err
	}
	return old, nil
}

// ReadAtomic returns the committed value of v without a transaction.
func (v *Var[T]) ReadAtomic() T {
	for {
		val, _, ok := v.sample()
		if ok {
			return val.(T)
		}
	}
}

// WriteAtomic commits val to v in a single-cell transaction.
func (v *Var[T]) WriteAtomic(val T) {
	_ = Atomically(func(tx *Tx) error {
		return v.Write(tx, val)
	})
}
