package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/attributes"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

func (m *CMap3) mergeVertexCells(tx *stm.Tx, strict bool, out, lhs, rhs VertexID) error {
	if strict {
		if err := m.vertices.TryMerge(tx, uint32(out), uint32(lhs), uint32(rhs)); err != nil {
			return err
		}
		return m.attrs.TryMergeAttributes(tx, attributes.VertexCell, uint32(out), uint32(lhs), uint32(rhs))
	}
	if err := m.vertices.Merge(tx, uint32(out), uint32(lhs), uint32(rhs)); err != nil {
		return err
	}
	return m.attrs.MergeAttributes(tx, attributes.VertexCell, uint32(out), uint32(lhs), uint32(rhs))
}

func (m *CMap3) splitVertexCells(tx *stm.Tx, strict bool, lhsOut, rhsOut, in VertexID) error {
	if strict {
		if err := m.vertices.TrySplit(tx, uint32(lhsOut), uint32(rhsOut), uint32(in)); err != nil {
			return err
		}
		return m.attrs.TrySplitAttributes(tx, attributes.VertexCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
	}
	if err := m.vertices.Split(tx, uint32(lhsOut), uint32(rhsOut), uint32(in)); err != nil {
		return err
	}
	return m.attrs.SplitAttributes(tx, attributes.VertexCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
}

func (m *CMap3) mergeEdgeCells(tx *stm.Tx, strict bool, out, lhs, rhs EdgeID) error {
	if strict {
		return m.attrs.TryMergeAttributes(tx, attributes.EdgeCell, uint32(out), uint32(lhs), uint32(rhs))
	}
	return m.attrs.MergeAttributes(tx, attributes.EdgeCell, uint32(out), uint32(lhs), uint32(rhs))
}

func (m *CMap3) splitEdgeCells(tx *stm.Tx, strict bool, lhsOut, rhsOut, in EdgeID) error {
	if strict {
		return m.attrs.TrySplitAttributes(tx, attributes.EdgeCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
	}
	return m.attrs.SplitAttributes(tx, attributes.EdgeCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
}

func (m *CMap3) mergeFaceCells(tx *stm.Tx, strict bool, out, lhs, rhs FaceID) error {
	if strict {
		return m.attrs.TryMergeAttributes(tx, attributes.FaceCell, uint32(out), uint32(lhs), uint32(rhs))
	}
	return m.attrs.MergeAttributes(tx, attributes.FaceCell, uint32(out), uint32(lhs), uint32(rhs))
}

func (m *CMap3) splitFaceCells(tx *stm.Tx, strict bool, lhsOut, rhsOut, in FaceID) error {
	if strict {
		return m.attrs.TrySplitAttributes(tx, attributes.FaceCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
	}
	return m.attrs.SplitAttributes(tx, attributes.FaceCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
}

// oneSew coherently links lhs to rhs through beta1. In a 3-map the vertex
// of lhs's end can already be defined through beta3 or beta2; when it is,
// its cell merges with rhs's vertex cell after the link.
func (m *CMap3) oneSew(tx *stm.Tx, lhs, rhs DartID, strict bool) error {
	b3lhs, err := m.betas.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	b2lhs, err := m.betas.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	lhsVidOld := NullVertex
	switch {
	case b3lhs != NullDart:
		if lhsVidOld, err = m.VertexIDTx(tx, b3lhs); err != nil {
			return err
		}
	case b2lhs != NullDart:
		if lhsVidOld, err = m.VertexIDTx(tx, b2lhs); err != nil {
			return err
		}
	}
	rhsVidOld, err := m.VertexIDTx(tx, rhs)
	if err != nil {
		return err
	}
	if err := m.OneLink(tx, lhs, rhs); err != nil {
		return coerceSew(1, lhs, rhs, err)
	}
	if lhsVidOld == NullVertex {
		return nil
	}
	newVid := lhsVidOld
	if rhsVidOld < newVid {
		newVid = rhsVidOld
	}
	return coerceSew(1, lhs, rhs, m.mergeVertexCells(tx, strict, newVid, lhsVidOld, rhsVidOld))
}

// oneUnsew coherently separates lhs from its beta1 image, splitting the
// shared vertex when lhs's end stays defined through beta2 or beta3.
func (m *CMap3) oneUnsew(tx *stm.Tx, lhs DartID, strict bool) error {
	rhs, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	if err := m.OneUnlink(tx, lhs); err != nil {
		return coerceSew(1, lhs, NullDart, err)
	}
	b2lhs, err := m.betas.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	b3lhs, err := m.betas.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	seed := b2lhs
	if seed == NullDart {
		seed = b3lhs
	}
	if seed == NullDart {
		return nil
	}
	lhsVidNew, err := m.VertexIDTx(tx, seed)
	if err != nil {
		return err
	}
	rhsVidNew, err := m.VertexIDTx(tx, rhs)
	if err != nil {
		return err
	}
	if lhsVidNew == rhsVidNew {
		return nil
	}
	in := lhsVidNew
	if rhsVidNew < in {
		in = rhsVidNew
	}
	return coerceSew(1, lhs, NullDart, m.splitVertexCells(tx, strict, lhsVidNew, rhsVidNew, in))
}

// checkSewOrientation aborts when both dart pairs carry defined vertices
// whose direction vectors point the same way. Undefined vertices skip the
// check.
func (m *CMap3) checkSewOrientation(tx *stm.Tx, dim int, lhs, rhs DartID, lVid, b1rVid, b1lVid, rVid VertexID) error {
	lVertex, lOk, err := m.vertices.Read(tx, uint32(lVid))
	if err != nil {
		return err
	}
	b1rVertex, b1rOk, err := m.vertices.Read(tx, uint32(b1rVid))
	if err != nil {
		return err
	}
	b1lVertex, b1lOk, err := m.vertices.Read(tx, uint32(b1lVid))
	if err != nil {
		return err
	}
	rVertex, rOk, err := m.vertices.Read(tx, uint32(rVid))
	if err != nil {
		return err
	}
	if lOk && b1rOk && b1lOk && rOk {
		lhsVector := b1lVertex.Sub(lVertex)
		rhsVector := b1rVertex.Sub(rVertex)
		// dot product must be negative for opposite dart directions
		if lhsVector.Dot(rhsVector) >= 0 {
			return stm.Abort(&SewError{Dim: dim, Lhs: lhs, Rhs: rhs, Err: ErrBadOrientation})
		}
	}
	return nil
}

// twoSew coherently links lhs and rhs through beta2. The four combinations
// of (lhs 1-free, rhs 1-free) decide which vertex cells the link unifies;
// edge attributes always merge.
func (m *CMap3) twoSew(tx *stm.Tx, lhs, rhs DartID, strict bool) error {
	b1lhs, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	b1rhs, err := m.betas.read(tx, 1, rhs)
	if err != nil {
		return err
	}
	switch {
	case b1lhs == NullDart && b1rhs == NullDart:
		lhsEidOld, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		rhsEidOld, err := m.EdgeIDTx(tx, rhs)
		if err != nil {
			return err
		}
		if err := m.betas.twoLink(tx, lhs, rhs); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		eidNew, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		return coerceSew(2, lhs, rhs, m.mergeEdgeCells(tx, strict, eidNew, lhsEidOld, rhsEidOld))

	case b1lhs == NullDart:
		lhsEidOld, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		rhsEidOld, err := m.EdgeIDTx(tx, rhs)
		if err != nil {
			return err
		}
		lhsVidOld, err := m.VertexIDTx(tx, lhs)
		if err != nil {
			return err
		}
		b1rhsVidOld, err := m.VertexIDTx(tx, b1rhs)
		if err != nil {
			return err
		}
		if err := m.betas.twoLink(tx, lhs, rhs); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		lhsVidNew, err := m.VertexIDTx(tx, lhs)
		if err != nil {
			return err
		}
		eidNew, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		if err := m.mergeVertexCells(tx, strict, lhsVidNew, lhsVidOld, b1rhsVidOld); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		return coerceSew(2, lhs, rhs, m.mergeEdgeCells(tx, strict, eidNew, lhsEidOld, rhsEidOld))

	case b1rhs == NullDart:
		lhsEidOld, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		rhsEidOld, err := m.EdgeIDTx(tx, rhs)
		if err != nil {
			return err
		}
		b1lhsVidOld, err := m.VertexIDTx(tx, b1lhs)
		if err != nil {
			return err
		}
		rhsVidOld, err := m.VertexIDTx(tx, rhs)
		if err != nil {
			return err
		}
		if err := m.betas.twoLink(tx, lhs, rhs); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		rhsVidNew, err := m.VertexIDTx(tx, rhs)
		if err != nil {
			return err
		}
		eidNew, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		if err := m.mergeVertexCells(tx, strict, rhsVidNew, b1lhsVidOld, rhsVidOld); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		return coerceSew(2, lhs, rhs, m.mergeEdgeCells(tx, strict, eidNew, lhsEidOld, rhsEidOld))

	default:
		lhsEidOld, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		rhsEidOld, err := m.EdgeIDTx(tx, rhs)
		if err != nil {
			return err
		}
		lhsVidOld, err := m.VertexIDTx(tx, lhs)
		if err != nil {
			return err
		}
		b1rhsVidOld, err := m.VertexIDTx(tx, b1rhs)
		if err != nil {
			return err
		}
		b1lhsVidOld, err := m.VertexIDTx(tx, b1lhs)
		if err != nil {
			return err
		}
		rhsVidOld, err := m.VertexIDTx(tx, rhs)
		if err != nil {
			return err
		}
		if err := m.checkSewOrientation(tx, 2, lhs, rhs, lhsVidOld, b1rhsVidOld, b1lhsVidOld, rhsVidOld); err != nil {
			return err
		}
		if err := m.betas.twoLink(tx, lhs, rhs); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		lhsVidNew, err := m.VertexIDTx(tx, lhs)
		if err != nil {
			return err
		}
		rhsVidNew, err := m.VertexIDTx(tx, rhs)
		if err != nil {
			return err
		}
		eidNew, err := m.EdgeIDTx(tx, lhs)
		if err != nil {
			return err
		}
		if err := m.mergeVertexCells(tx, strict, lhsVidNew, lhsVidOld, b1rhsVidOld); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		if err := m.mergeVertexCells(tx, strict, rhsVidNew, b1lhsVidOld, rhsVidOld); err != nil {
			return coerceSew(2, lhs, rhs, err)
		}
		return coerceSew(2, lhs, rhs, m.mergeEdgeCells(tx, strict, eidNew, lhsEidOld, rhsEidOld))
	}
}

// twoUnsew coherently separates lhs from its beta2 image, mirroring
// twoSew.
func (m *CMap3) twoUnsew(tx *stm.Tx, lhs DartID, strict bool) error {
	rhs, err := m.betas.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	if rhs == NullDart {
		return stm.Abort(&LinkError{Dim: 2, Lhs: lhs, Err: ErrAlreadyFree})
	}
	b1lhs, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	b1rhs, err := m.betas.read(tx, 1, rhs)
	if err != nil {
		return err
	}
	eidOld, err := m.EdgeIDTx(tx, lhs)
	if err != nil {
		return err
	}

	var lhsVidOld, rhsVidOld VertexID
	if b1rhs != NullDart {
		if lhsVidOld, err = m.VertexIDTx(tx, lhs); err != nil {
			return err
		}
	}
	if b1lhs != NullDart {
		if rhsVidOld, err = m.VertexIDTx(tx, rhs); err != nil {
			return err
		}
	}

	if err := m.betas.twoUnlink(tx, lhs); err != nil {
		return coerceSew(2, lhs, NullDart, err)
	}
	if err := m.splitEdgeCells(tx, strict, EdgeID(lhs), EdgeID(rhs), eidOld); err != nil {
		return coerceSew(2, lhs, NullDart, err)
	}

	if b1rhs != NullDart {
		newLvLhs, err := m.VertexIDTx(tx, lhs)
		if err != nil {
			return err
		}
		newLvRhs, err := m.VertexIDTx(tx, b1rhs)
		if err != nil {
			return err
		}
		if err := m.splitVertexCells(tx, strict, newLvLhs, newLvRhs, lhsVidOld); err != nil {
			return coerceSew(2, lhs, NullDart, err)
		}
	}
	if b1lhs != NullDart {
		newRvLhs, err := m.VertexIDTx(tx, b1lhs)
		if err != nil {
			return err
		}
		newRvRhs, err := m.VertexIDTx(tx, rhs)
		if err != nil {
			return err
		}
		if err := m.splitVertexCells(tx, strict, newRvLhs, newRvRhs, rhsVidOld); err != nil {
			return coerceSew(2, lhs, NullDart, err)
		}
	}
	return nil
}

// orbitCollectTx gathers the orbit of seed and its minimum dart id.
func (m *CMap3) orbitCollectTx(tx *stm.Tx, p OrbitPolicy, seed DartID) ([]DartID, DartID, error) {
	min := seed
	darts := make([]DartID, 0, 16)
	for d, err := range m.OrbitTx(tx, p, seed) {
		if err != nil {
			return nil, NullDart, err
		}
		darts = append(darts, d)
		if d < min {
			min = d
		}
	}
	return darts, min, nil
}

// vertexPair captures the two vertex cell ids a 3-sew unifies, or a
// 3-unsew separates, at one position along the paired face loops.
type vertexPair struct {
	lhs, rhs VertexID
}

// collectFaceVertexPairs walks the zipped face loop sides and records the
// vertex cell pairs joined across them, plus the edge cell pairs. Both
// sides traverse their face in opposite directions so index i of each side
// lands on the same geometric edge.
func (m *CMap3) collectFaceVertexPairs(tx *stm.Tx, lSide, rSide []DartID) ([][2]EdgeID, []vertexPair, error) {
	n := len(lSide)
	if len(rSide) < n {
		n = len(rSide)
	}
	edges := make([][2]EdgeID, 0, n)
	verts := make([]vertexPair, 0, n+1)
	for i := 0; i < n; i++ {
		l, r := lSide[i], rSide[i]
		lEid, err := m.EdgeIDTx(tx, l)
		if err != nil {
			return nil, nil, err
		}
		rEid, err := m.EdgeIDTx(tx, r)
		if err != nil {
			return nil, nil, err
		}
		edges = append(edges, [2]EdgeID{lEid, rEid})

		b1l, err := m.betas.read(tx, 1, l)
		if err != nil {
			return nil, nil, err
		}
		b2l, err := m.betas.read(tx, 2, l)
		if err != nil {
			return nil, nil, err
		}
		lVid, err := m.VertexIDTx(tx, maxDart(b1l, b2l))
		if err != nil {
			return nil, nil, err
		}
		rVid, err := m.VertexIDTx(tx, r)
		if err != nil {
			return nil, nil, err
		}
		verts = append(verts, vertexPair{lhs: lVid, rhs: rVid})

		// open face: the loop start carries an extra unpaired vertex
		b0l, err := m.betas.read(tx, 0, l)
		if err != nil {
			return nil, nil, err
		}
		if b0l == NullDart {
			b1r, err := m.betas.read(tx, 1, r)
			if err != nil {
				return nil, nil, err
			}
			b2r, err := m.betas.read(tx, 2, r)
			if err != nil {
				return nil, nil, err
			}
			exLVid, err := m.VertexIDTx(tx, l)
			if err != nil {
				return nil, nil, err
			}
			exRVid, err := m.VertexIDTx(tx, maxDart(b1r, b2r))
			if err != nil {
				return nil, nil, err
			}
			verts = append(verts, vertexPair{lhs: exLVid, rhs: exRVid})
		}
	}
	return edges, verts, nil
}

// threeSew coherently 3-links the faces of lhs and rhs and merges every
// cell the pairing unifies: the two face cells, an edge cell per loop
// position and the vertex cells at the loop corners.
func (m *CMap3) threeSew(tx *stm.Tx, lhs, rhs DartID, strict bool) error {
	lSide, lFaceMin, err := m.orbitCollectTx(tx, CustomOrbit(1, 0), lhs)
	if err != nil {
		return err
	}
	rSide, rFaceMin, err := m.orbitCollectTx(tx, CustomOrbit(0, 1), rhs)
	if err != nil {
		return err
	}
	lFace, rFace := FaceID(lFaceMin), FaceID(rFaceMin)

	edges, verts, err := m.collectFaceVertexPairs(tx, lSide, rSide)
	if err != nil {
		return err
	}

	b1lhs, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	b2lhs, err := m.betas.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	b1rhs, err := m.betas.read(tx, 1, rhs)
	if err != nil {
		return err
	}
	b2rhs, err := m.betas.read(tx, 2, rhs)
	if err != nil {
		return err
	}
	lhsNext := b1lhs
	if lhsNext == NullDart {
		lhsNext = b2lhs
	}
	rhsNext := b1rhs
	if rhsNext == NullDart {
		rhsNext = b2rhs
	}
	lVid, err := m.VertexIDTx(tx, lhs)
	if err != nil {
		return err
	}
	rVid, err := m.VertexIDTx(tx, rhs)
	if err != nil {
		return err
	}
	b1lVid, err := m.VertexIDTx(tx, lhsNext)
	if err != nil {
		return err
	}
	b1rVid, err := m.VertexIDTx(tx, rhsNext)
	if err != nil {
		return err
	}
	if err := m.checkSewOrientation(tx, 3, lhs, rhs, lVid, b1rVid, b1lVid, rVid); err != nil {
		return err
	}

	if err := m.ThreeLink(tx, lhs, rhs); err != nil {
		return coerceSew(3, lhs, rhs, err)
	}

	outFace := lFace
	if rFace < outFace {
		outFace = rFace
	}
	if err := m.mergeFaceCells(tx, strict, outFace, lFace, rFace); err != nil {
		return coerceSew(3, lhs, rhs, err)
	}
	for _, e := range edges {
		if e[0] == e[1] || e[0] == NullEdge || e[1] == NullEdge {
			continue
		}
		out := e[0]
		if e[1] < out {
			out = e[1]
		}
		if err := m.mergeEdgeCells(tx, strict, out, e[0], e[1]); err != nil {
			return coerceSew(3, lhs, rhs, err)
		}
	}
	for _, v := range verts {
		if v.lhs == v.rhs || v.lhs == NullVertex || v.rhs == NullVertex {
			continue
		}
		out := v.lhs
		if v.rhs < out {
			out = v.rhs
		}
		if err := m.mergeVertexCells(tx, strict, out, v.lhs, v.rhs); err != nil {
			return coerceSew(3, lhs, rhs, err)
		}
	}
	return nil
}

// threeUnsew coherently 3-unlinks the face of lhs and splits the cells
// the pairing had unified.
func (m *CMap3) threeUnsew(tx *stm.Tx, lhs DartID, strict bool) error {
	rhs, err := m.betas.read(tx, 3, lhs)
	if err != nil {
		return err
	}
	if err := m.ThreeUnlink(tx, lhs); err != nil {
		return coerceSew(3, lhs, NullDart, err)
	}

	lSide, lFaceMin, err := m.orbitCollectTx(tx, CustomOrbit(1, 0), lhs)
	if err != nil {
		return err
	}
	rSide, rFaceMin, err := m.orbitCollectTx(tx, CustomOrbit(0, 1), rhs)
	if err != nil {
		return err
	}
	lFace, rFace := FaceID(lFaceMin), FaceID(rFaceMin)
	inFace := lFace
	if rFace < inFace {
		inFace = rFace
	}
	if err := m.splitFaceCells(tx, strict, lFace, rFace, inFace); err != nil {
		return coerceSew(3, lhs, NullDart, err)
	}

	edges, verts, err := m.collectFaceVertexPairs(tx, lSide, rSide)
	if err != nil {
		return err
	}
	for _, e := range edges {
		if e[0] == e[1] || e[0] == NullEdge || e[1] == NullEdge {
			continue
		}
		in := e[0]
		if e[1] < in {
			in = e[1]
		}
		if err := m.splitEdgeCells(tx, strict, e[0], e[1], in); err != nil {
			return coerceSew(3, lhs, NullDart, err)
		}
	}
	for _, v := range verts {
		if v.lhs == v.rhs || v.lhs == NullVertex || v.rhs == NullVertex {
			continue
		}
		in := v.lhs
		if v.rhs < in {
			in = v.rhs
		}
		if err := m.splitVertexCells(tx, strict, v.lhs, v.rhs, in); err != nil {
			return coerceSew(3, lhs, NullDart, err)
		}
	}
	return nil
}

// OneSew coherently 1-links lhs to rhs, merging the unified vertex's
// position and attributes leniently.
func (m *CMap3) OneSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.oneSew(tx, lhs, rhs, false)
}

// TryOneSew is the strict form of OneSew: a failed attribute merge aborts
// the transaction.
func (m *CMap3) TryOneSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.oneSew(tx, lhs, rhs, true)
}

// ForceOneSew is the auto-retried form of OneSew.
func (m *CMap3) ForceOneSew(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.oneSew(tx, lhs, rhs, false)
	})
}

// OneUnsew coherently 1-unlinks lhs, splitting the separated vertex.
func (m *CMap3) OneUnsew(tx *stm.Tx, lhs DartID) error {
	return m.oneUnsew(tx, lhs, false)
}

// TryOneUnsew is the strict form of OneUnsew.
func (m *CMap3) TryOneUnsew(tx *stm.Tx, lhs DartID) error {
	return m.oneUnsew(tx, lhs, true)
}

// ForceOneUnsew is the auto-retried form of OneUnsew.
func (m *CMap3) ForceOneUnsew(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.oneUnsew(tx, lhs, false)
	})
}

// TwoSew coherently 2-links lhs and rhs, merging the unified vertex and
// edge cells leniently.
func (m *CMap3) TwoSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.twoSew(tx, lhs, rhs, false)
}

// TryTwoSew is the strict form of TwoSew.
func (m *CMap3) TryTwoSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.twoSew(tx, lhs, rhs, true)
}

// ForceTwoSew is the auto-retried form of TwoSew.
func (m *CMap3) ForceTwoSew(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.twoSew(tx, lhs, rhs, false)
	})
}

// TwoUnsew coherently 2-unlinks lhs, splitting the separated cells.
func (m *CMap3) TwoUnsew(tx *stm.Tx, lhs DartID) error {
	return m.twoUnsew(tx, lhs, false)
}

// TryTwoUnsew is the strict form of TwoUnsew.
func (m *CMap3) TryTwoUnsew(tx *stm.Tx, lhs DartID) error {
	return m.twoUnsew(tx, lhs, true)
}

// ForceTwoUnsew is the auto-retried form of TwoUnsew.
func (m *CMap3) ForceTwoUnsew(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.twoUnsew(tx, lhs, false)
	})
}

// ThreeSew coherently 3-links the faces of lhs and rhs, merging the
// unified face, edge and vertex cells leniently.
func (m *CMap3) ThreeSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.threeSew(tx, lhs, rhs, false)
}

// TryThreeSew is the strict form of ThreeSew.
func (m *CMap3) TryThreeSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.threeSew(tx, lhs, rhs, true)
}

// ForceThreeSew is the auto-retried form of ThreeSew.
func (m *CMap3) ForceThreeSew(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.threeSew(tx, lhs, rhs, false)
	})
}

// ThreeUnsew coherently 3-unlinks the face of lhs, splitting the
// separated cells.
func (m *CMap3) ThreeUnsew(tx *stm.Tx, lhs DartID) error {
	return m.threeUnsew(tx, lhs, false)
}

// TryThreeUnsew is the strict form of ThreeUnsew.
func (m *CMap3) TryThreeUnsew(tx *stm.Tx, lhs DartID) error {
	return m.threeUnsew(tx, lhs, true)
}

// ForceThreeUnsew is the auto-retried form of ThreeUnsew.
func (m *CMap3) ForceThreeUnsew(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.threeUnsew(tx, lhs, false)
	})
}
