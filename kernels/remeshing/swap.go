package remeshing

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/attributes"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// SwapEdge tips an edge shared by two triangles in the clockwise
// direction: vertices that were shared become exclusive to each new
// triangle and vice versa.
//
//	      +                   +
//	     / \                 /|\
//	    /   \               / | \
//	   /     \             /  |  \
//	  /       \           /   |   \
//	 /         \         /    |    \
//	+-----------+  -->  +     |     +
//	 \    e    /         \    |    /
//	  \       /           \   |   /
//	   \     /             \  |  /
//	    \   /               \ | /
//	     \ /                 \|/
//	      +                   +
//
// When the map carries FaceAnchor attributes the swap is refused across
// two distinct surfaces. All failures abort, leaving the map untouched.
func SwapEdge(tx *stm.Tx, m *cmap.CMap2, e cmap.EdgeID) error {
	if e == cmap.NullEdge {
		return stm.Abort(&EdgeSwapError{Edge: e, Err: ErrNullEdge})
	}
	l := cmap.DartID(e)
	r, err := m.BetaTx(tx, 2, l)
	if err != nil {
		return err
	}
	if r == cmap.NullDart {
		return stm.Abort(&EdgeSwapError{Edge: e, Err: ErrIncompleteEdge})
	}

	faceAnchors, hasFaceAnchors := attributes.Get[FaceAnchor](m.AttributeManager())
	var lAnchor, rAnchor FaceAnchor
	var anchored bool
	if hasFaceAnchors {
		lFid, err := m.FaceIDTx(tx, l)
		if err != nil {
			return err
		}
		rFid, err := m.FaceIDTx(tx, r)
		if err != nil {
			return err
		}
		var lOK, rOK bool
		if lAnchor, lOK, err = faceAnchors.Remove(tx, uint32(lFid)); err != nil {
			return err
		}
		if rAnchor, rOK, err = faceAnchors.Remove(tx, uint32(rFid)); err != nil {
			return err
		}
		if lOK != rOK || (lOK && lAnchor != rAnchor) {
			return stm.Abort(&EdgeSwapError{Edge: e, Err: &NotSwappableError{
				Reason: "edge separates two distinct surfaces",
			}})
		}
		anchored = lOK
	}

	b1l, err := m.BetaTx(tx, 1, l)
	if err != nil {
		return err
	}
	b1r, err := m.BetaTx(tx, 1, r)
	if err != nil {
		return err
	}
	b0l, err := m.BetaTx(tx, 0, l)
	if err != nil {
		return err
	}
	b0r, err := m.BetaTx(tx, 0, r)
	if err != nil {
		return err
	}
	b1b1l, err := m.BetaTx(tx, 1, b1l)
	if err != nil {
		return err
	}
	b1b1r, err := m.BetaTx(tx, 1, b1r)
	if err != nil {
		return err
	}
	if b1b1l != b0l || b1b1r != b0r {
		return stm.Abort(&EdgeSwapError{Edge: e, Err: ErrBadTopology})
	}

	for _, d := range []cmap.DartID{l, r, b0l, b0r, b1l, b1r} {
		if err := m.TryOneUnsew(tx, d); err != nil {
			return err
		}
	}

	// drop the endpoints' attributes so the rebuild does not average or
	// merge anything
	lVid, err := m.VertexIDTx(tx, l)
	if err != nil {
		return err
	}
	rVid, err := m.VertexIDTx(tx, r)
	if err != nil {
		return err
	}
	if _, _, err := m.RemoveVertex(tx, lVid); err != nil {
		return err
	}
	if _, _, err := m.RemoveVertex(tx, rVid); err != nil {
		return err
	}
	if vertexAnchors, ok := attributes.Get[VertexAnchor](m.AttributeManager()); ok {
		if _, _, err := vertexAnchors.Remove(tx, uint32(lVid)); err != nil {
			return err
		}
		if _, _, err := vertexAnchors.Remove(tx, uint32(rVid)); err != nil {
			return err
		}
	}

	for _, pair := range [][2]cmap.DartID{
		{l, b0r}, {b0r, b1l}, {b1l, l},
		{r, b0l}, {b0l, b1r}, {b1r, r},
	} {
		if err := m.TryOneSew(tx, pair[0], pair[1]); err != nil {
			return err
		}
	}

	if anchored {
		lFid, err := m.FaceIDTx(tx, l)
		if err != nil {
			return err
		}
		rFid, err := m.FaceIDTx(tx, r)
		if err != nil {
			return err
		}
		if _, _, err := faceAnchors.Write(tx, uint32(lFid), lAnchor); err != nil {
			return err
		}
		if _, _, err := faceAnchors.Write(tx, uint32(rFid), rAnchor); err != nil {
			return err
		}
	}
	return nil
}
