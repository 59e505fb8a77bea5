package cmap

import (
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// ReadVertex returns the position bound to vertex vid, or ok=false if none
// is defined.
func (m *CMap3) ReadVertex(tx *stm.Tx, vid VertexID) (geometry.Vertex3, bool, error) {
	return m.vertices.Read(tx, uint32(vid))
}

// WriteVertex binds a position to vertex vid, returning the previous one
// if it existed.
func (m *CMap3) WriteVertex(tx *stm.Tx, vid VertexID, v geometry.Vertex3) (geometry.Vertex3, bool, error) {
	return m.vertices.Write(tx, uint32(vid), v)
}

// RemoveVertex clears the position bound to vertex vid.
func (m *CMap3) RemoveVertex(tx *stm.Tx, vid VertexID) (geometry.Vertex3, bool, error) {
	return m.vertices.Remove(tx, uint32(vid))
}

// ForceReadVertex is the non-transactional form of ReadVertex.
func (m *CMap3) ForceReadVertex(vid VertexID) (geometry.Vertex3, bool) {
	return m.vertices.ForceRead(uint32(vid))
}

// ForceWriteVertex is the non-transactional form of WriteVertex.
func (m *CMap3) ForceWriteVertex(vid VertexID, v geometry.Vertex3) (geometry.Vertex3, bool) {
	return m.vertices.ForceWrite(uint32(vid), v)
}

// ForceRemoveVertex is the non-transactional form of RemoveVertex.
func (m *CMap3) ForceRemoveVertex(vid VertexID) (geometry.Vertex3, bool) {
	return m.vertices.ForceRemove(uint32(vid))
}
