package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/attributes"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// mergeVertexCells merges vertex position and vertex attributes from lhs
// and rhs into out. strict merges abort on behavior failure, lenient ones
// clear the output and proceed.
func (m *CMap2) mergeVertexCells(tx *stm.Tx, strict bool, out, lhs, rhs VertexID) error {
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

// splitVertexCells splits the vertex position and vertex attributes of in
// between lhsOut and rhsOut.
func (m *CMap2) splitVertexCells(tx *stm.Tx, strict bool, lhsOut, rhsOut, in VertexID) error {
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

func (m *CMap2) mergeEdgeCells(tx *stm.Tx, strict bool, out, lhs, rhs EdgeID) error {
	if strict {
		return m.attrs.TryMergeAttributes(tx, attributes.EdgeCell, uint32(out), uint32(lhs), uint32(rhs))
	}
	return m.attrs.MergeAttributes(tx, attributes.EdgeCell, uint32(out), uint32(lhs), uint32(rhs))
}

func (m *CMap2) splitEdgeCells(tx *stm.Tx, strict bool, lhsOut, rhsOut DartID, in EdgeID) error {
	if strict {
		return m.attrs.TrySplitAttributes(tx, attributes.EdgeCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
	}
	return m.attrs.SplitAttributes(tx, attributes.EdgeCell, uint32(lhsOut), uint32(rhsOut), uint32(in))
}

// oneSew coherently links lhs to rhs through beta1. If lhs has a beta2
// image, linking unifies that image's vertex with rhs's vertex, so both
// vertex cells are captured before the link and merged into the post-link
// id. A 2-free lhs makes the sew a pure link.
func (m *CMap2) oneSew(tx *stm.Tx, lhs, rhs DartID, strict bool) error {
	b2lhs, err := m.betas.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	if b2lhs == NullDart {
		return coerceSew(1, lhs, rhs, m.betas.oneLink(tx, lhs, rhs))
	}
	b2lhsVidOld, err := m.VertexIDTx(tx, b2lhs)
	if err != nil {
		return err
	}
	rhsVidOld, err := m.VertexIDTx(tx, rhs)
	if err != nil {
		return err
	}
	if err := m.betas.oneLink(tx, lhs, rhs); err != nil {
		return coerceSew(1, lhs, rhs, err)
	}
	newVid, err := m.VertexIDTx(tx, rhs)
	if err != nil {
		return err
	}
	return coerceSew(1, lhs, rhs, m.mergeVertexCells(tx, strict, newVid, b2lhsVidOld, rhsVidOld))
}

// oneUnsew coherently separates lhs from its beta1 image, splitting the
// shared vertex when lhs has a beta2 image.
func (m *CMap2) oneUnsew(tx *stm.Tx, lhs DartID, strict bool) error {
	b2lhs, err := m.betas.read(tx, 2, lhs)
	if err != nil {
		return err
	}
	if b2lhs == NullDart {
		return coerceSew(1, lhs, NullDart, m.betas.oneUnlink(tx, lhs))
	}
	rhs, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	vidOld, err := m.VertexIDTx(tx, rhs)
	if err != nil {
		return err
	}
	if err := m.betas.oneUnlink(tx, lhs); err != nil {
		return coerceSew(1, lhs, NullDart, err)
	}
	newLhs, err := m.VertexIDTx(tx, b2lhs)
	if err != nil {
		return err
	}
	newRhs, err := m.VertexIDTx(tx, rhs)
	if err != nil {
		return err
	}
	return coerceSew(1, lhs, NullDart, m.splitVertexCells(tx, strict, newLhs, newRhs, vidOld))
}

// checkSewOrientation aborts when both dart pairs carry defined vertices
// whose direction vectors point the same way: 2-sewing them would fold the
// surface. Undefined vertices skip the check.
func (m *CMap2) checkSewOrientation(tx *stm.Tx, lhs, rhs DartID, lVid, b1rVid, b1lVid, rVid VertexID) error {
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
			return stm.Abort(&SewError{Dim: 2, Lhs: lhs, Rhs: rhs, Err: ErrBadOrientation})
		}
	}
	return nil
}

// twoSew coherently links lhs and rhs through beta2. The four combinations
// of (lhs 1-free, rhs 1-free) decide which vertex cells the link unifies;
// edge attributes always merge.
func (m *CMap2) twoSew(tx *stm.Tx, lhs, rhs DartID, strict bool) error {
	b1lhs, err := m.betas.read(tx, 1, lhs)
	if err != nil {
		return err
	}
	b1rhs, err := m.betas.read(tx, 1, rhs)
	if err != nil {
		return err
	}
	switch {
	// both 1-free: no vertex gets unified, plain link plus edge merge
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

	// rhs 1-linked: the link unifies the (lhs, beta1(rhs)) vertex
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

	// lhs 1-linked: the link unifies the (beta1(lhs), rhs) vertex
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

	// both 1-linked: both edge endpoints get unified
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
		if err := m.checkSewOrientation(tx, lhs, rhs, lhsVidOld, b1rhsVidOld, b1lhsVidOld, rhsVidOld); err != nil {
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

// twoUnsew coherently separates lhs from its beta2 image. Edge attributes
// always split; vertex cells split per the (lhs 1-free, rhs 1-free)
// combination, mirroring twoSew.
func (m *CMap2) twoUnsew(tx *stm.Tx, lhs DartID, strict bool) error {
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
	if err := m.splitEdgeCells(tx, strict, lhs, rhs, eidOld); err != nil {
		return coerceSew(2, lhs, NullDart, err)
	}

	// split the (lhs, beta1(rhs)) vertex when it existed
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
	// split the (beta1(lhs), rhs) vertex when it existed
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

// OneSew coherently 1-links lhs to rhs, merging the unified vertex's
// position and attributes leniently.
func (m *CMap2) OneSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.oneSew(tx, lhs, rhs, false)
}

// TryOneSew is the strict form of OneSew: a failed attribute merge aborts
// the transaction.
func (m *CMap2) TryOneSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.oneSew(tx, lhs, rhs, true)
}

// ForceOneSew is the auto-retried form of OneSew.
func (m *CMap2) ForceOneSew(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.oneSew(tx, lhs, rhs, false)
	})
}

// OneUnsew coherently 1-unlinks lhs, splitting the separated vertex.
func (m *CMap2) OneUnsew(tx *stm.Tx, lhs DartID) error {
	return m.oneUnsew(tx, lhs, false)
}

// TryOneUnsew is the strict form of OneUnsew.
func (m *CMap2) TryOneUnsew(tx *stm.Tx, lhs DartID) error {
	return m.oneUnsew(tx, lhs, true)
}

// ForceOneUnsew is the auto-retried form of OneUnsew.
func (m *CMap2) ForceOneUnsew(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.oneUnsew(tx, lhs, false)
	})
}

// TwoSew coherently 2-links lhs and rhs, merging the unified vertex and
// edge cells leniently.
func (m *CMap2) TwoSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.twoSew(tx, lhs, rhs, false)
}

// TryTwoSew is the strict form of TwoSew.
func (m *CMap2) TryTwoSew(tx *stm.Tx, lhs, rhs DartID) error {
	return m.twoSew(tx, lhs, rhs, true)
}

// ForceTwoSew is the auto-retried form of TwoSew.
func (m *CMap2) ForceTwoSew(lhs, rhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.twoSew(tx, lhs, rhs, false)
	})
}

// TwoUnsew coherently 2-unlinks lhs, splitting the separated cells.
func (m *CMap2) TwoUnsew(tx *stm.Tx, lhs DartID) error {
	return m.twoUnsew(tx, lhs, false)
}

// TryTwoUnsew is the strict form of TwoUnsew.
func (m *CMap2) TryTwoUnsew(tx *stm.Tx, lhs DartID) error {
	return m.twoUnsew(tx, lhs, true)
}

// ForceTwoUnsew is the auto-retried form of TwoUnsew.
func (m *CMap2) ForceTwoUnsew(lhs DartID) error {
	return stm.Atomically(func(tx *stm.Tx) error {
		return m.twoUnsew(tx, lhs, false)
	})
}
