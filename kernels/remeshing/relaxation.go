package remeshing

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// MoveVertexToAverage relocates vid to the average position of the given
// vertices. An empty neighbor list leaves the vertex in place.
//
// A neighbor without coordinates makes the transaction retry: mid-merge
// states of concurrent sews are treated like any other conflict.
func MoveVertexToAverage(tx *stm.Tx, m *cmap.CMap2, vid cmap.VertexID, others []cmap.VertexID) error {
	if len(others) == 0 {
		return nil
	}
	var sx, sy float64
	for _, nid := range others {
		v, ok, err := m.ReadVertex(tx, nid)
		if err != nil {
			return err
		}
		if !ok {
			return stm.Retry()
		}
		sx += v.X
		sy += v.Y
	}
	n := float64(len(others))
	_, _, err := m.WriteVertex(tx, vid, geometry.NewVertex2(sx/n, sy/n))
	return err
}
