package cmap

import (
	"log/slog"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/attributes"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// CMap3 is a 3D combinatorial map: darts connected by beta0 through beta3,
// with vertex positions and user attributes embedded per cell.
//
// The transactional discipline matches CMap2: *stm.Tx methods compose,
// Force* variants auto-retry, and storage growth requires exclusive
// access.
type CMap3 struct {
	nDarts   int
	betas    *betaStorage
	unused   *unusedTable
	vertices *attributes.SparseVec[geometry.Vertex3]
	attrs    *attributes.Manager
	logger   *slog.Logger
}

// NewCMap3 creates a 3-map with nDarts usable darts, ids 1..nDarts, all
// marked used and fully free.
func NewCMap3(nDarts int, opts ...Option) *CMap3 {
	c := newConfig(opts)
	m := &CMap3{
		nDarts:   nDarts,
		betas:    newBetaStorage(4, nDarts),
		unused:   newUnusedTable(nDarts),
		vertices: attributes.NewSparseVec[geometry.Vertex3](nDarts + 1).WithLogger(c.logger),
		attrs:    c.attrs,
		logger:   c.logger,
	}
	m.attrs.Extend(nDarts + 1)
	return m
}

// NDarts returns the number of dart slots, used or not, excluding the null
// dart.
func (m *CMap3) NDarts() int {
	return m.nDarts
}

// NUnusedDarts returns the number of slots currently marked unused.
func (m *CMap3) NUnusedDarts() int {
	return m.unused.countUnused()
}

// AttributeManager returns the map's attribute registry.
func (m *CMap3) AttributeManager() *attributes.Manager {
	return m.attrs
}

func (m *CMap3) extendStorages(n int, unused bool) DartID {
	first := DartID(m.nDarts + 1)
	m.nDarts += n
	m.betas.extend(n)
	m.unused.extend(n, unused)
	m.vertices.Extend(n)
	m.attrs.Extend(n)
	return first
}

// AddFreeDart appends one used, fully free dart and returns its id.
// Requires exclusive access.
func (m *CMap3) AddFreeDart() DartID {
	return m.extendStorages(1, false)
}

// AddFreeDarts appends n used, fully free darts and returns the first new
// id; the allocated range is contiguous. Requires exclusive access.
func (m *CMap3) AddFreeDarts(n int) DartID {
	return m.extendStorages(n, false)
}

// AllocateUsedDarts extends storage by n darts marked used. Requires
// exclusive access.
func (m *CMap3) AllocateUsedDarts(n int) DartID {
	return m.extendStorages(n, false)
}

// AllocateUnusedDarts extends storage by n darts marked unused, to be
// claimed later through ReserveDarts or the block reservation types.
// Requires exclusive access.
func (m *CMap3) AllocateUnusedDarts(n int) DartID {
	return m.extendStorages(n, true)
}

// InsertFreeDart reuses the lowest unused slot, or appends a new dart if
// none exists. Requires exclusive access.
func (m *CMap3) InsertFreeDart() DartID {
	for d := DartID(1); int(d) <= m.nDarts; d++ {
		if m.unused.isUnusedAtomic(d) {
			_ = stm.Atomically(func(tx *stm.Tx) error {
				return m.unused.setUsed(tx, d)
			})
			return d
		}
	}
	return m.AddFreeDart()
}

// IsUnused reports whether dart d is currently an unused slot.
func (m *CMap3) IsUnused(tx *stm.Tx, d DartID) (bool, error) {
	return m.unused.isUnused(tx, d)
}

// IsUnusedAtomic is the non-transactional form of IsUnused.
func (m *CMap3) IsUnusedAtomic(d DartID) bool {
	return m.unused.isUnusedAtomic(d)
}

// SetUsed marks dart d as used.
func (m *CMap3) SetUsed(tx *stm.Tx, d DartID) error {
	return m.unused.setUsed(tx, d)
}

// ReleaseDart marks dart d unused so its slot can be reclaimed. The dart
// must be fully free; releasing a linked dart aborts. Returns whether the
// dart was used before the call.
func (m *CMap3) ReleaseDart(tx *stm.Tx, d DartID) (bool, error) {
	free, err := m.IsFreeTx(tx, d)
	if err != nil {
		return false, err
	}
	if !free {
		return false, stm.Abort(&LinkError{Dim: 0, Lhs: d, Err: ErrReleaseLinked})
	}
	wasUnused, err := m.unused.isUnused(tx, d)
	if err != nil {
		return false, err
	}
	if err := m.unused.setUnused(tx, d); err != nil {
		return false, err
	}
	return !wasUnused, nil
}

// ForceReleaseDart is the auto-retried form of ReleaseDart.
func (m *CMap3) ForceReleaseDart(d DartID) (bool, error) {
	var wasUsed bool
	err := stm.Atomically(func(tx *stm.Tx) error {
		var err error
		wasUsed, err = m.ReleaseDart(tx, d)
		return err
	})
	return wasUsed, err
}

// ReserveDartsTx collects n unused darts, marking them used, scanning ids
// upward. Aborts with an AllocError when fewer than n unused slots exist;
// this failure is permanent and must not be retried blindly.
func (m *CMap3) ReserveDartsTx(tx *stm.Tx, n int) ([]DartID, error) {
	out := make([]DartID, 0, n)
	for d := DartID(1); int(d) <= m.nDarts && len(out) < n; d++ {
		unused, err := m.unused.isUnused(tx, d)
		if err != nil {
			return nil, err
		}
		if unused {
			if err := m.unused.setUsed(tx, d); err != nil {
				return nil, err
			}
			out = append(out, d)
		}
	}
	if len(out) < n {
		return nil, stm.Abort(&AllocError{Want: n, Reason: "not enough unused darts"})
	}
	return out, nil
}

// ReserveDarts is the auto-retried form of ReserveDartsTx.
func (m *CMap3) ReserveDarts(n int) ([]DartID, error) {
	var out []DartID
	err := stm.Atomically(func(tx *stm.Tx) error {
		var err error
		out, err = m.ReserveDartsTx(tx, n)
		return err
	})
	return out, err
}

// SetBeta writes the beta-i image of dart d directly, without freeness
// checks or attribute propagation. Construction-time primitive for
// builders filling a fresh map; requires exclusive access.
func (m *CMap3) SetBeta(i int, d, image DartID) {
	if i < 0 || i > 3 {
		panic("cmap: beta index out of range for a 3-map")
	}
	m.betas.cell(i, d).WriteAtomic(image)
}

// SetBetas writes all four beta images of dart d at once. Same contract
// as SetBeta.
func (m *CMap3) SetBetas(d DartID, images [4]DartID) {
	for i, img := range images {
		m.betas.cell(i, d).WriteAtomic(img)
	}
}

// Beta returns the committed beta-i image of dart d. i must be in [0, 3].
func (m *CMap3) Beta(i int, d DartID) DartID {
	if i < 0 || i > 3 {
		panic("cmap: beta index out of range for a 3-map")
	}
	return m.betas.readAtomic(i, d)
}

// BetaTx is the transactional form of Beta.
func (m *CMap3) BetaTx(tx *stm.Tx, i int, d DartID) (DartID, error) {
	if i < 0 || i > 3 {
		panic("cmap: beta index out of range for a 3-map")
	}
	return m.betas.read(tx, i, d)
}

// IsIFree reports whether dart d has no beta-i image.
func (m *CMap3) IsIFree(i int, d DartID) bool {
	return m.Beta(i, d) == NullDart
}

// IsFree reports whether dart d has no beta image in any dimension.
func (m *CMap3) IsFree(d DartID) bool {
	return m.Beta(0, d) == NullDart && m.Beta(1, d) == NullDart &&
		m.Beta(2, d) == NullDart && m.Beta(3, d) == NullDart
}

// IsFreeTx is the transactional form of IsFree.
func (m *CMap3) IsFreeTx(tx *stm.Tx, d DartID) (bool, error) {
	for i := 0; i < 4; i++ {
		img, err := m.betas.read(tx, i, d)
		if err != nil {
			return false, err
		}
		if img != NullDart {
			return false, nil
		}
	}
	return true, nil
}
