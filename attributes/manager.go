package attributes

import (
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// Storage is the type-erased view of an attribute collection. Map-level
// operators use it to propagate merges and splits across every attribute of
// a cell kind without knowing the value types.
type Storage interface {
	Kind() CellKind
	Extend(n int)
	Count() int

	Merge(tx *stm.Tx, out, lhs, rhs uint32) error
	TryMerge(tx *stm.Tx, out, lhs, rhs uint32) error
	Split(tx *stm.Tx, lhsOut, rhsOut, in uint32) error
	TrySplit(tx *stm.Tx, lhsOut, rhsOut, in uint32) error
}

// Manager is the registry of attribute storages of one map, keyed by the
// attribute's runtime type and grouped by the cell kind it binds to.
// Registration and lookup are safe for concurrent use; the merge/split
// loops iterate storages in registration order.
type Manager struct {
	logger   *slog.Logger
	storages *xsync.MapOf[reflect.Type, Storage]

	mu     sync.Mutex
	byKind [numCellKinds][]Storage
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		logger:   slog.Default(),
		storages: xsync.NewMapOf[reflect.Type, Storage](),
	}
}

// WithLogger sets the logger handed to newly registered storages and
// returns the manager.
func (m *Manager) WithLogger(logger *slog.Logger) *Manager {
	m.logger = logger
	return m
}

// add registers st under typ. Registering the same type twice is a
// programming error.
func (m *Manager) add(typ reflect.Type, st Storage) {
	if _, loaded := m.storages.LoadOrStore(typ, st); loaded {
		panic(fmt.Sprintf("attributes: %s registered twice", typ))
	}
	m.mu.Lock()
	m.byKind[st.Kind()] = append(m.byKind[st.Kind()], st)
	m.mu.Unlock()
}

// ByKind returns the storages bound to kind, in registration order.
func (m *Manager) ByKind(kind CellKind) []Storage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byKind[kind]
}

// Extend grows every registered storage by n slots. The caller must hold
// exclusive access to the map.
func (m *Manager) Extend(n int) {
	m.storages.Range(func(_ reflect.Type, st Storage) bool {
		st.Extend(n)
		return true
	})
}

// MergeAttributes merges, for every storage bound to kind, the values of
// cells lhs and rhs into out. Behavior failures are lenient.
func (m *Manager) MergeAttributes(tx *stm.Tx, kind CellKind, out, lhs, rhs uint32) error {
	for _, st := range m.ByKind(kind) {
		if err := st.Merge(tx, out, lhs, rhs); err != nil {
			return err
		}
	}
	return nil
}

// TryMergeAttributes is the strict form of MergeAttributes: any behavior
// failure aborts the enclosing transaction.
func (m *Manager) TryMergeAttributes(tx *stm.Tx, kind CellKind, out, lhs, rhs uint32) error {
	for _, st := range m.ByKind(kind) {
		if err := st.TryMerge(tx, out, lhs, rhs); err != nil {
			return err
		}
	}
	return nil
}

// SplitAttributes splits, for every storage bound to kind, the value of
// cell in between lhsOut and rhsOut. Behavior failures are lenient.
func (m *Manager) SplitAttributes(tx *stm.Tx, kind CellKind, lhsOut, rhsOut, in uint32) error {
	for _, st := range m.ByKind(kind) {
		if err := st.Split(tx, lhsOut, rhsOut, in); err != nil {
			return err
		}
	}
	return nil
}

// TrySplitAttributes is the strict form of SplitAttributes: any behavior
// failure aborts the enclosing transaction.
func (m *Manager) TrySplitAttributes(tx *stm.Tx, kind CellKind, lhsOut, rhsOut, in uint32) error {
	for _, st := range m.ByKind(kind) {
		if err := st.TrySplit(tx, lhsOut, rhsOut, in); err != nil {
			return err
		}
	}
	return nil
}

// Register creates a SparseVec for A with the given initial length and adds
// it to the manager. It returns the storage for direct typed access.
func Register[A Attribute[A]](m *Manager, length int) *SparseVec[A] {
	sv := NewSparseVec[A](length).WithLogger(m.logger)
	m.add(sv.typeOf(), sv)
	return sv
}

// Get returns the storage registered for A, or ok=false if A was never
// registered.
func Get[A Attribute[A]](m *Manager) (*SparseVec[A], bool) {
	var zero A
	st, ok := m.storages.Load(reflect.TypeOf(zero))
	if !ok {
		return nil, false
	}
	sv, ok := st.(*SparseVec[A])
	return sv, ok
}

// mustGet panics when A is not registered; used by the typed accessors
// where a missing registration is a programming error.
func mustGet[A Attribute[A]](m *Manager) *SparseVec[A] {
	sv, ok := Get[A](m)
	if !ok {
		var zero A
		panic(fmt.Sprintf("attributes: %T not registered", zero))
	}
	return sv
}

// Read returns the value of A bound to cell id.
func Read[A Attribute[A]](m *Manager, tx *stm.Tx, id uint32) (A, bool, error) {
	return mustGet[A](m).Read(tx, id)
}

// Write binds val to cell id, returning the replaced value if any.
func Write[A Attribute[A]](m *Manager, tx *stm.Tx, id uint32, val A) (A, bool, error) {
	return mustGet[A](m).Write(tx, id, val)
}

// Remove clears the value of A bound to cell id.
func Remove[A Attribute[A]](m *Manager, tx *stm.Tx, id uint32) (A, bool, error) {
	return mustGet[A](m).Remove(tx, id)
}

// ForceRead is the non-transactional form of Read.
func ForceRead[A Attribute[A]](m *Manager, id uint32) (A, bool) {
	return mustGet[A](m).ForceRead(id)
}

// ForceWrite is the non-transactional form of Write.
func ForceWrite[A Attribute[A]](m *Manager, id uint32, val A) (A, bool) {
	return mustGet[A](m).ForceWrite(id, val)
}

// ForceRemove is the non-transactional form of Remove.
func ForceRemove[A Attribute[A]](m *Manager, id uint32) (A, bool) {
	return mustGet[A](m).ForceRemove(id)
}
