package attributes

import (
	"log/slog"
	"reflect"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// slot is an optional attribute value. The zero slot is empty.
type slot[A any] struct {
	val A
	set bool
}

// SparseVec stores one optional value of A per owning cell id. Access is
// indexed by cell id; slots are transactional so attribute updates commit
// or roll back together with the topological updates that caused them.
type SparseVec[A Attribute[A]] struct {
	data   []*stm.Var[slot[A]]
	logger *slog.Logger
}

// NewSparseVec creates a storage with capacity for cell ids [0, length).
func NewSparseVec[A Attribute[A]](length int) *SparseVec[A] {
	sv := &SparseVec[A]{logger: slog.Default()}
	sv.Extend(length)
	return sv
}

// WithLogger sets the logger used by the lenient Merge/Split paths and
// returns the storage.
func (sv *SparseVec[A]) WithLogger(logger *slog.Logger) *SparseVec[A] {
	sv.logger = logger
	return sv
}

// Kind returns the cell kind A binds to.
func (sv *SparseVec[A]) Kind() CellKind {
	var zero A
	return zero.BindsTo()
}

func (sv *SparseVec[A]) typeOf() reflect.Type {
	var zero A
	return reflect.TypeOf(zero)
}

// Extend grows the storage by n empty slots. The caller must hold exclusive
// access to the map, like any bulk dart extension.
func (sv *SparseVec[A]) Extend(n int) {
	for i := 0; i < n; i++ {
		sv.data = append(sv.data, stm.NewVar(slot[A]{}))
	}
}

// Len returns the number of slots, populated or not.
func (sv *SparseVec[A]) Len() int {
	return len(sv.data)
}

// Count returns the number of populated slots. The count is computed from
// atomic snapshots and is only approximate under concurrent commits.
func (sv *SparseVec[A]) Count() int {
	n := 0
	for _, v := range sv.data {
		if v.ReadAtomic().set {
			n++
		}
	}
	return n
}

// Read returns the value bound to id, or ok=false if the slot is empty.
func (sv *SparseVec[A]) Read(tx *stm.Tx, id uint32) (A, bool, error) {
	s, err := sv.data[id].Read(tx)
	if err != nil {
		var zero A
		return zero, false, err
	}
	return s.val, s.set, nil
}

// Write binds val to id, returning the previous value if the slot was
// populated.
func (sv *SparseVec[A]) Write(tx *stm.Tx, id uint32, val A) (A, bool, error) {
	old, err := sv.data[id].Replace(tx, slot[A]{val: val, set: true})
	if err != nil {
		var zero A
		return zero, false, err
	}
	return old.val, old.set, nil
}

// Remove clears the slot of id, returning the removed value if any.
func (sv *SparseVec[A]) Remove(tx *stm.Tx, id uint32) (A, bool, error) {
	old, err := sv.data[id].Replace(tx, slot[A]{})
	if err != nil {
		var zero A
		return zero, false, err
	}
	return old.val, old.set, nil
}

// ForceRead is the non-transactional form of Read.
func (sv *SparseVec[A]) ForceRead(id uint32) (A, bool) {
	s := sv.data[id].ReadAtomic()
	return s.val, s.set
}

// ForceWrite is the non-transactional form of Write.
func (sv *SparseVec[A]) ForceWrite(id uint32, val A) (A, bool) {
	var old slot[A]
	_ = stm.Atomically(func(tx *stm.Tx) error {
		var err error
		old, err = sv.data[id].Replace(tx, slot[A]{val: val, set: true})
		return err
	})
	return old.val, old.set
}

// ForceRemove is the non-transactional form of Remove.
func (sv *SparseVec[A]) ForceRemove(id uint32) (A, bool) {
	var old slot[A]
	_ = stm.Atomically(func(tx *stm.Tx) error {
		var err error
		old, err = sv.data[id].Replace(tx, slot[A]{})
		return err
	})
	return old.val, old.set
}

// mergeValue resolves the merged value of the two input slots through the
// behavior and its fallbacks.
func (sv *SparseVec[A]) mergeValue(lhs, rhs slot[A]) (A, error) {
	switch {
	case lhs.set && rhs.set:
		return lhs.val.Merge(rhs.val)
	case lhs.set:
		return mergeIncomplete(lhs.val)
	case rhs.set:
		return mergeIncomplete(rhs.val)
	default:
		return mergeFromNone[A]()
	}
}

// splitValue resolves the two values a populated-or-empty input slot splits
// into.
func (sv *SparseVec[A]) splitValue(in slot[A]) (A, A, error) {
	if in.set {
		return in.val.Split()
	}
	return splitFromNone[A]()
}

// Merge combines the values bound to lhs and rhs into a single value bound
// to out, clearing both inputs. A behavior failure is lenient: the output
// slot is cleared and a warning is logged, but the transaction proceeds.
func (sv *SparseVec[A]) Merge(tx *stm.Tx, out, lhs, rhs uint32) error {
	lv, err := sv.data[lhs].Read(tx)
	if err != nil {
		return err
	}
	rv, err := sv.data[rhs].Read(tx)
	if err != nil {
		return err
	}
	merged, mergeErr := sv.mergeValue(lv, rv)
	if mergeErr != nil {
		sv.logger.Warn("attribute merge failed, clearing output slot",
			slog.String("attr", sv.typeOf().String()),
			slog.Uint64("out", uint64(out)),
			slog.Any("error", mergeErr))
	}
	if err := sv.data[rhs].Write(tx, slot[A]{}); err != nil {
		return err
	}
	if err := sv.data[lhs].Write(tx, slot[A]{}); err != nil {
		return err
	}
	return sv.data[out].Write(tx, slot[A]{val: merged, set: mergeErr == nil})
}

// TryMerge is the strict form of Merge: a behavior failure aborts the
// enclosing transaction with an UpdateError.
func (sv *SparseVec[A]) TryMerge(tx *stm.Tx, out, lhs, rhs uint32) error {
	lv, err := sv.data[lhs].Read(tx)
	if err != nil {
		return err
	}
	rv, err := sv.data[rhs].Read(tx)
	if err != nil {
		return err
	}
	merged, mergeErr := sv.mergeValue(lv, rv)
	if mergeErr != nil {
		return stm.Abort(&UpdateError{Op: "merge", Attr: sv.typeOf().String(), Err: mergeErr})
	}
	if err := sv.data[rhs].Write(tx, slot[A]{}); err != nil {
		return err
	}
	if err := sv.data[lhs].Write(tx, slot[A]{}); err != nil {
		return err
	}
	return sv.data[out].Write(tx, slot[A]{val: merged, set: true})
}

// Split divides the value bound to in between lhsOut and rhsOut, clearing
// the input. A behavior failure is lenient: both outputs are cleared and a
// warning is logged.
func (sv *SparseVec[A]) Split(tx *stm.Tx, lhsOut, rhsOut, in uint32) error {
	iv, err := sv.data[in].Read(tx)
	if err != nil {
		return err
	}
	lv, rv, splitErr := sv.splitValue(iv)
	if splitErr != nil {
		sv.logger.Warn("attribute split failed, clearing output slots",
			slog.String("attr", sv.typeOf().String()),
			slog.Uint64("in", uint64(in)),
			slog.Any("error", splitErr))
		if err := sv.data[lhsOut].Write(tx, slot[A]{}); err != nil {
			return err
		}
		return sv.data[rhsOut].Write(tx, slot[A]{})
	}
	if err := sv.data[in].Write(tx, slot[A]{}); err != nil {
		return err
	}
	if err := sv.data[lhsOut].Write(tx, slot[A]{val: lv, set: true}); err != nil {
		return err
	}
	return sv.data[rhsOut].Write(tx, slot[A]{val: rv, set: true})
}

// TrySplit is the strict form of Split: a behavior failure aborts the
// enclosing transaction with an UpdateError.
func (sv *SparseVec[A]) TrySplit(tx *stm.Tx, lhsOut, rhsOut, in uint32) error {
	iv, err := sv.data[in].Read(tx)
	if err != nil {
		return err
	}
	lv, rv, splitErr := sv.splitValue(iv)
	if splitErr != nil {
		return stm.Abort(&UpdateError{Op: "split", Attr: sv.typeOf().String(), Err: splitErr})
	}
	if err := sv.data[in].Write(tx, slot[A]{}); err != nil {
		return err
	}
	if err := sv.data[lhsOut].Write(tx, slot[A]{val: lv, set: true}); err != nil {
		return err
	}
	return sv.data[rhsOut].Write(tx, slot[A]{val: rv, set: true})
}
