package remeshing

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// CutOuterEdge halves a boundary edge of a triangular mesh and rebuilds
// two triangles from the midpoint:
//
//	      +                   +
//	     / \                 /|\
//	    /   \               / | \
//	   /     \     -->     /  |  \
//	  /       \           /   |   \
//	 /         \         /    |    \
//	+-----------+       +-----+-----+
//	      e
//
// nd must hold three reserved free darts for the new edges. The edge's
// endpoints need coordinates; an undefined endpoint retries the
// transaction. Sew failures abort with their own typed errors.
func CutOuterEdge(tx *stm.Tx, m *cmap.CMap2, e cmap.EdgeID, nd [3]cmap.DartID) error {
	if err := m.TwoLink(tx, nd[0], nd[1]); err != nil {
		return err
	}
	if err := m.OneLink(tx, nd[1], nd[2]); err != nil {
		return err
	}

	ld := cmap.DartID(e)
	b0ld, err := m.BetaTx(tx, 0, ld)
	if err != nil {
		return err
	}
	b1ld, err := m.BetaTx(tx, 1, ld)
	if err != nil {
		return err
	}

	mid, err := edgeMidpoint(tx, m, ld, b1ld)
	if err != nil {
		return err
	}
	if _, _, err := m.WriteVertex(tx, cmap.VertexID(nd[0]), mid); err != nil {
		return err
	}

	if err := m.TryOneUnsew(tx, ld); err != nil {
		return err
	}
	if err := m.TryOneUnsew(tx, b1ld); err != nil {
		return err
	}

	for _, pair := range [][2]cmap.DartID{
		{ld, nd[0]}, {nd[0], b0ld}, {nd[2], b1ld}, {b1ld, nd[1]},
	} {
		if err := m.TryOneSew(tx, pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// CutInnerEdge halves an interior edge of a triangular mesh and rebuilds
// the four surrounding triangles from the midpoint. nd must hold six
// reserved free darts, three per side of the edge.
func CutInnerEdge(tx *stm.Tx, m *cmap.CMap2, e cmap.EdgeID, nd [6]cmap.DartID) error {
	if err := m.TwoLink(tx, nd[0], nd[1]); err != nil {
		return err
	}
	if err := m.OneLink(tx, nd[1], nd[2]); err != nil {
		return err
	}
	if err := m.TwoLink(tx, nd[3], nd[4]); err != nil {
		return err
	}
	if err := m.OneLink(tx, nd[4], nd[5]); err != nil {
		return err
	}

	ld := cmap.DartID(e)
	rd, err := m.BetaTx(tx, 2, ld)
	if err != nil {
		return err
	}
	b0ld, err := m.BetaTx(tx, 0, ld)
	if err != nil {
		return err
	}
	b1ld, err := m.BetaTx(tx, 1, ld)
	if err != nil {
		return err
	}
	b0rd, err := m.BetaTx(tx, 0, rd)
	if err != nil {
		return err
	}
	b1rd, err := m.BetaTx(tx, 1, rd)
	if err != nil {
		return err
	}

	mid, err := edgeMidpoint(tx, m, ld, b1ld)
	if err != nil {
		return err
	}
	if _, _, err := m.WriteVertex(tx, cmap.VertexID(nd[0]), mid); err != nil {
		return err
	}

	if err := m.TryTwoUnsew(tx, ld); err != nil {
		return err
	}
	for _, d := range []cmap.DartID{ld, b1ld, rd, b1rd} {
		if err := m.TryOneUnsew(tx, d); err != nil {
			return err
		}
	}

	if err := m.TryTwoSew(tx, ld, nd[5]); err != nil {
		return err
	}
	if err := m.TryTwoSew(tx, rd, nd[2]); err != nil {
		return err
	}
	for _, pair := range [][2]cmap.DartID{
		{ld, nd[0]}, {nd[0], b0ld}, {nd[2], b1ld}, {b1ld, nd[1]},
		{rd, nd[3]}, {nd[3], b0rd}, {nd[5], b1rd}, {b1rd, nd[4]},
	} {
		if err := m.TryOneSew(tx, pair[0], pair[1]); err != nil {
			return err
		}
	}
	return nil
}

// edgeMidpoint averages the positions of the edge's two endpoints,
// retrying the transaction while either is undefined.
func edgeMidpoint(tx *stm.Tx, m *cmap.CMap2, ld, b1ld cmap.DartID) (geometry.Vertex2, error) {
	vid1, err := m.VertexIDTx(tx, ld)
	if err != nil {
		return geometry.Vertex2{}, err
	}
	vid2, err := m.VertexIDTx(tx, b1ld)
	if err != nil {
		return geometry.Vertex2{}, err
	}
	v1, ok1, err := m.ReadVertex(tx, vid1)
	if err != nil {
		return geometry.Vertex2{}, err
	}
	v2, ok2, err := m.ReadVertex(tx, vid2)
	if err != nil {
		return geometry.Vertex2{}, err
	}
	if !ok1 || !ok2 {
		return geometry.Vertex2{}, stm.Retry()
	}
	return geometry.Average2(v1, v2), nil
}
