package cmap

import (
	"iter"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/internal/visited"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// orbitNeighbors3 applies the policy's neighbor functions to d, in policy
// order, over committed beta values.
func (m *CMap3) orbitNeighbors3(p OrbitPolicy, d DartID, emit func(DartID)) {
	switch p.kind {
	case orbitVertex:
		emit(m.Beta(3, m.Beta(2, d)))
		emit(m.Beta(1, m.Beta(3, d)))
		emit(m.Beta(1, m.Beta(2, d)))
		emit(m.Beta(3, m.Beta(0, d)))
		emit(m.Beta(2, m.Beta(0, d)))
	case orbitVertexLinear:
		emit(m.Beta(3, m.Beta(2, d)))
		emit(m.Beta(1, m.Beta(3, d)))
		emit(m.Beta(1, m.Beta(2, d)))
	case orbitEdge:
		emit(m.Beta(2, d))
		emit(m.Beta(3, d))
	case orbitFace:
		emit(m.Beta(1, d))
		emit(m.Beta(0, d))
		emit(m.Beta(3, d))
	case orbitFaceLinear:
		emit(m.Beta(1, d))
		emit(m.Beta(3, d))
	case orbitVolume:
		emit(m.Beta(1, d))
		emit(m.Beta(0, d))
		emit(m.Beta(2, d))
	case orbitVolumeLinear:
		emit(m.Beta(1, d))
		emit(m.Beta(2, d))
	case orbitCustom:
		for _, i := range p.betas {
			emit(m.Beta(i, d))
		}
	default:
		panic("cmap: orbit policy not supported by 3-maps: " + p.String())
	}
}

// orbitNeighborsTx3 is the transactional form of orbitNeighbors3.
func (m *CMap3) orbitNeighborsTx3(tx *stm.Tx, p OrbitPolicy, d DartID, emit func(DartID)) error {
	composed := func(i, j int) (DartID, error) {
		inner, err := m.betas.read(tx, j, d)
		if err != nil {
			return NullDart, err
		}
		return m.betas.read(tx, i, inner)
	}
	single := func(betas ...int) error {
		for _, i := range betas {
			img, err := m.betas.read(tx, i, d)
			if err != nil {
				return err
			}
			emit(img)
		}
		return nil
	}
	pairs := func(ij ...[2]int) error {
		for _, p := range ij {
			img, err := composed(p[0], p[1])
			if err != nil {
				return err
			}
			emit(img)
		}
		return nil
	}
	switch p.kind {
	case orbitVertex:
		return pairs([2]int{3, 2}, [2]int{1, 3}, [2]int{1, 2}, [2]int{3, 0}, [2]int{2, 0})
	case orbitVertexLinear:
		return pairs([2]int{3, 2}, [2]int{1, 3}, [2]int{1, 2})
	case orbitEdge:
		return single(2, 3)
	case orbitFace:
		return single(1, 0, 3)
	case orbitFaceLinear:
		return single(1, 3)
	case orbitVolume:
		return single(1, 0, 2)
	case orbitVolumeLinear:
		return single(1, 2)
	case orbitCustom:
		return single(p.betas...)
	default:
		panic("cmap: orbit policy not supported by 3-maps: " + p.String())
	}
}

// Orbit returns the darts reachable from seed through the policy's
// neighbor functions, as a lazy breadth-first sequence over committed
// state. The null dart is never yielded; for a fixed map state the order
// is reproducible.
func (m *CMap3) Orbit(p OrbitPolicy, seed DartID) iter.Seq[DartID] {
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
			m.orbitNeighbors3(p, d, func(n DartID) {
				if marked.Mark(uint32(n)) {
					queue = append(queue, n)
				}
			})
		}
	}
}

// OrbitTx is the transactional form of Orbit.
func (m *CMap3) OrbitTx(tx *stm.Tx, p OrbitPolicy, seed DartID) iter.Seq2[DartID, error] {
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
			err := m.orbitNeighborsTx3(tx, p, d, func(n DartID) {
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
// (i=1), face (i=2) or volume (i=3).
func (m *CMap3) ICell(i int, d DartID) iter.Seq[DartID] {
	switch i {
	case 0:
		return m.Orbit(VertexOrbit, d)
	case 1:
		return m.Orbit(EdgeOrbit, d)
	case 2:
		return m.Orbit(FaceOrbit, d)
	case 3:
		return m.Orbit(VolumeOrbit, d)
	default:
		panic("cmap: cell dimension out of range for a 3-map")
	}
}

func (m *CMap3) orbitMin(p OrbitPolicy, d DartID) DartID {
	min := d
	for o := range m.Orbit(p, d) {
		if o < min {
			min = o
		}
	}
	return min
}

func (m *CMap3) orbitMinTx(tx *stm.Tx, p OrbitPolicy, d DartID) (DartID, error) {
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
func (m *CMap3) VertexID(d DartID) VertexID {
	return VertexID(m.orbitMin(VertexOrbit, d))
}

// VertexIDTx is the transactional form of VertexID.
func (m *CMap3) VertexIDTx(tx *stm.Tx, d DartID) (VertexID, error) {
	min, err := m.orbitMinTx(tx, VertexOrbit, d)
	return VertexID(min), err
}

// EdgeID returns the id of the 1-cell of dart d.
func (m *CMap3) EdgeID(d DartID) EdgeID {
	return EdgeID(m.orbitMin(EdgeOrbit, d))
}

// EdgeIDTx is the transactional form of EdgeID.
func (m *CMap3) EdgeIDTx(tx *stm.Tx, d DartID) (EdgeID, error) {
	min, err := m.orbitMinTx(tx, EdgeOrbit, d)
	return EdgeID(min), err
}

// FaceID returns the id of the 2-cell of dart d.
func (m *CMap3) FaceID(d DartID) FaceID {
	return FaceID(m.orbitMin(FaceOrbit, d))
}

// FaceIDTx is the transactional form of FaceID.
func (m *CMap3) FaceIDTx(tx *stm.Tx, d DartID) (FaceID, error) {
	min, err := m.orbitMinTx(tx, FaceOrbit, d)
	return FaceID(min), err
}

// VolumeID returns the id of the 3-cell of dart d.
func (m *CMap3) VolumeID(d DartID) VolumeID {
	return VolumeID(m.orbitMin(VolumeOrbit, d))
}

// VolumeIDTx is the transactional form of VolumeID.
func (m *CMap3) VolumeIDTx(tx *stm.Tx, d DartID) (VolumeID, error) {
	min, err := m.orbitMinTx(tx, VolumeOrbit, d)
	return VolumeID(min), err
}

// Vertices returns the distinct vertex ids of all used darts, ascending.
func (m *CMap3) Vertices() []VertexID {
	return collectCells[VertexID](m.nDarts, m.unused, func(d DartID) uint32 {
		return uint32(m.VertexID(d))
	})
}

// Edges returns the distinct edge ids of all used darts, ascending.
func (m *CMap3) Edges() []EdgeID {
	return collectCells[EdgeID](m.nDarts, m.unused, func(d DartID) uint32 {
		return uint32(m.EdgeID(d))
	})
}

// Faces returns the distinct face ids of all used darts, ascending.
func (m *CMap3) Faces() []FaceID {
	return collectCells[FaceID](m.nDarts, m.unused, func(d DartID) uint32 {
		return uint32(m.FaceID(d))
	})
}

// Volumes returns the distinct volume ids of all used darts, ascending.
func (m *CMap3) Volumes() []VolumeID {
	return collectCells[VolumeID](m.nDarts, m.unused, func(d DartID) uint32 {
		return uint32(m.VolumeID(d))
	})
}
