package cmap

import (
	"iter"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/internal/visited"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// orbitNeighbors2 applies the policy's neighbor functions to d, in policy
// order, over committed beta values.
func (m *CMap2) orbitNeighbors2(p OrbitPolicy, d DartID, emit func(DartID)) {
	switch p.kind {
	case orbitVertex:
		emit(m.Beta(1, m.Beta(2, d)))
		emit(m.Beta(2, m.Beta(0, d)))
	case orbitVertexLinear:
		emit(m.Beta(1, m.Beta(2, d)))
	case orbitEdge:
		emit(m.Beta(2, d))
	case orbitFace:
		emit(m.Beta(1, d))
		emit(m.Beta(0, d))
	case orbitFaceLinear:
		emit(m.Beta(1, d))
	case orbitCustom:
		for _, i := range p.betas {
			emit(m.Beta(i, d))
		}
	default:
		panic("cmap: orbit policy not supported by 2-maps: " + p.String())
	}
}

// orbitNeighborsTx2 is the transactional form of orbitNeighbors2.
func (m *CMap2) orbitNeighborsTx2(tx *stm.Tx, p OrbitPolicy, d DartID, emit func(DartID)) error {
	composed := func(i, j int) (DartID, error) {
		inner, err := m.betas.read(tx, j, d)
		if err != nil {
			return NullDart, err
		}
		return m.betas.read(tx, i, inner)
	}
	switch p.kind {
	case orbitVertex:
		img, err := composed(1, 2)
		if err != nil {
			return err
		}
		emit(img)
		if img, err = composed(2, 0); err != nil {
			return err
		}
		emit(img)
	case orbitVertexLinear:
		img, err := composed(1, 2)
		if err != nil {
			return err
		}
		emit(img)
	case orbitEdge:
		img, err := m.betas.read(tx, 2, d)
		if err != nil {
			return err
		}
		emit(img)
	case orbitFace:
		img, err := m.betas.read(tx, 1, d)
		if err != nil {
			return err
		}
		emit(img)
		if img, err = m.betas.read(tx, 0, d); err != nil {
			return err
		}
		emit(img)
	case orbitFaceLinear:
		img, err := m.betas.read(tx, 1, d)
		if err != nil {
			return err
		}
		emit(img)
	case orbitCustom:
		for _, i := range p.betas {
			img, err := m.betas.read(tx, i, d)
			if err != nil {
				return err
			}
			emit(img)
		}
	default:
		panic("cmap: orbit policy not supported by 2-maps: " + p.String())
	}
	return nil
}

// Orbit returns the darts reachable from seed through the policy's
// neighbor functions, as a lazy breadth-first sequence over committed
// state. The null dart is never yielded; for a fixed map state the order
// is reproducible.
func (m *CMap2) Orbit(p OrbitPolicy, seed DartID) iter.Seq[DartID] {
	return func(yield func(DartID) bool) {
		marked := visited.New(m.nDarts + 1)
		marked.Mark(uint32(seed))
		queue := []DartID{seed}
		for len(queue) > 0 {
			d := queue[0]
			queue = queue[1:]
			if !yield(d) {
				return
			}
			m.orbitNeighbors2(p, d, func(n DartID) {
				if marked.Mark(uint32(n)) {
					queue = append(queue, n)
				}
			})
		}
	}
}

// OrbitTx is the transactional form of Orbit: dart reads go through tx, so
// a conflicting concurrent commit surfaces as an error pair and the
// enclosing transaction retries.
func (m *CMap2) OrbitTx(tx *stm.Tx, p OrbitPolicy, seed DartID) iter.Seq2[DartID, error] {
	return func(yield func(DartID, error) bool) {
		marked := visited.New(m.nDarts + 1)
		marked.Mark(uint32(seed))
		queue := []DartID{seed}
		for len(queue) > 0 {
			d := queue[0]
			queue = queue[1:]
			if !yield(d, nil) {
				return
			}
			err := m.orbitNeighborsTx2(tx, p, d, func(n DartID) {
				if marked.Mark(uint32(n)) {
					queue = append(queue, n)
				}
			})
			if err != nil {
				yield(NullDart, err)
				return
			}
		}
	}
}

// ICell returns the orbit of the i-cell of dart d: its vertex (i=0), edge
// (i=1) or face (i=2).
func (m *CMap2) ICell(i int, d DartID) iter.Seq[DartID] {
	switch i {
	case 0:
		return m.Orbit(VertexOrbit, d)
	case 1:
		return m.Orbit(EdgeOrbit, d)
	case 2:
		return m.Orbit(FaceOrbit, d)
	default:
		panic("cmap: cell dimension out of range for a 2-map")
	}
}

func (m *CMap2) orbitMin(p OrbitPolicy, d DartID) DartID {
	min := d
	for o := range m.Orbit(p, d) {
		if o < min {
			min = o
		}
	}
	return min
}

func (m *CMap2) orbitMinTx(tx *stm.Tx, p OrbitPolicy, d DartID) (DartID, error) {
	min := d
	for o, err := range m.OrbitTx(tx, p, d) {
		if err != nil {
			return NullDart, err
		}
		if o < min {
			min = o
		}
	}
	return min, nil
}

// VertexID returns the id of the 0-cell of dart d: the minimum dart id of
// its vertex orbit.
func (m *CMap2) VertexID(d DartID) VertexID {
	return VertexID(m.orbitMin(VertexOrbit, d))
}

// VertexIDTx is the transactional form of VertexID.
func (m *CMap2) VertexIDTx(tx *stm.Tx, d DartID) (VertexID, error) {
	min, err := m.orbitMinTx(tx, VertexOrbit, d)
	return VertexID(min), err
}

// EdgeID returns the id of the 1-cell of dart d.
func (m *CMap2) EdgeID(d DartID) EdgeID {
	b2 := m.Beta(2, d)
	if b2 == NullDart {
		return EdgeID(d)
	}
	return EdgeID(minDart(d, b2))
}

// EdgeIDTx is the transactional form of EdgeID.
func (m *CMap2) EdgeIDTx(tx *stm.Tx, d DartID) (EdgeID, error) {
	b2, err := m.betas.read(tx, 2, d)
	if err != nil {
		return NullEdge, err
	}
	if b2 == NullDart {
		return EdgeID(d), nil
	}
	return EdgeID(minDart(d, b2)), nil
}

// FaceID returns the id of the 2-cell of dart d.
func (m *CMap2) FaceID(d DartID) FaceID {
	return FaceID(m.orbitMin(FaceOrbit, d))
}

// FaceIDTx is the transactional form of FaceID.
func (m *CMap2) FaceIDTx(tx *stm.Tx, d DartID) (FaceID, error) {
	min, err := m.orbitMinTx(tx, FaceOrbit, d)
	return FaceID(min), err
}

// Vertices returns the distinct vertex ids of all used darts, ascending.
func (m *CMap2) Vertices() []VertexID {
	return collectCells[VertexID](m.nDarts, m.unused, func(d DartID) uint32 {
		return uint32(m.VertexID(d))
	})
}

// Edges returns the distinct edge ids of all used darts, ascending.
func (m *CMap2) Edges() []EdgeID {
	return collectCells[EdgeID](m.nDarts, m.unused, func(d DartID) uint32 {
		return uint32(m.EdgeID(d))
	})
}

// Faces returns the distinct face ids of all used darts, ascending.
func (m *CMap2) Faces() []FaceID {
	return collectCells[FaceID](m.nDarts, m.unused, func(d DartID) uint32 {
		return uint32(m.FaceID(d))
	})
}
