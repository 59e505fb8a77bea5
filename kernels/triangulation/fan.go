package triangulation

import (
	"math"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
)

// FanCell triangulates a polygonal face by fanning from a vertex that
// sees the whole polygon, if one exists. newDarts must hold exactly
// (n-3)*2 reserved free darts for an n-sided face. On any error the face
// is left unchanged.
func FanCell(m *cmap.CMap2, fid cmap.FaceID, newDarts []cmap.DartID) error {
	darts := faceLoop(m, fid)
	if err := checkRequirements(len(darts), len(newDarts)); err != nil {
		return err
	}
	verts, err := faceVertices(m, darts)
	if err != nil {
		return err
	}

	for i, d := range darts {
		if seesWholePolygon(verts, i) {
			return fanFrom(m, d, newDarts)
		}
	}
	return ErrNotFannable
}

// FanConvexCell triangulates a face by fanning from its first vertex,
// unconditionally. The caller asserts the polygon is convex and fully
// defined; on a non-convex cell the result is topologically valid but
// geometrically inverted.
func FanConvexCell(m *cmap.CMap2, fid cmap.FaceID, newDarts []cmap.DartID) error {
	darts := faceLoop(m, fid)
	if err := checkRequirements(len(darts), len(newDarts)); err != nil {
		return err
	}
	return fanFrom(m, cmap.DartID(fid), newDarts)
}

func faceLoop(m *cmap.CMap2, fid cmap.FaceID) []cmap.DartID {
	var darts []cmap.DartID
	for d := range m.Orbit(cmap.CustomOrbit(1), cmap.DartID(fid)) {
		darts = append(darts, d)
	}
	return darts
}

func checkRequirements(nSides, nAllocated int) error {
	switch nSides {
	case 1, 2:
		return &UndefinedFaceError{Reason: "less than 3 vertices"}
	case 3:
		return ErrAlreadyTriangulated
	}
	if want := (nSides - 3) * 2; nAllocated != want {
		return &DartCountError{Want: want, Got: nAllocated}
	}
	return nil
}

func faceVertices(m *cmap.CMap2, darts []cmap.DartID) ([]geometry.Vertex2, error) {
	verts := make([]geometry.Vertex2, len(darts))
	for i, d := range darts {
		v, ok := m.ForceReadVertex(m.VertexID(d))
		if !ok {
			return nil, &UndefinedFaceError{Reason: "one or more undefined vertices"}
		}
		verts[i] = v
	}
	return verts, nil
}

// seesWholePolygon reports whether vertex id sees every polygon side not
// incident to it under a consistent orientation. Near-zero cross products
// count as blocked sight lines.
func seesWholePolygon(verts []geometry.Vertex2, id int) bool {
	n := len(verts)
	v0 := verts[id]
	sign := 0.0
	for seg := 0; seg < n; seg++ {
		next := (seg + 1) % n
		if seg == id || next == id {
			continue
		}
		cross := crossFromVerts(v0, verts[seg], verts[next])
		if math.Abs(cross) < epsilon {
			return false
		}
		if sign == 0 {
			sign = math.Copysign(1, cross)
		} else if math.Copysign(1, cross) != sign {
			return false
		}
	}
	return sign != 0
}

const epsilon = 1e-12

// crossFromVerts computes the cross product v1v2 x v2v3.
func crossFromVerts(v1, v2, v3 geometry.Vertex2) float64 {
	return (v2.X-v1.X)*(v3.Y-v2.Y) - (v2.Y-v1.Y)*(v3.X-v2.X)
}

// fanFrom cuts the face into triangles around sdart's vertex, consuming
// newDarts two at a time for each new interior edge.
func fanFrom(m *cmap.CMap2, sdart cmap.DartID, newDarts []cmap.DartID) error {
	b0s := m.Beta(0, sdart)
	svid := m.VertexID(sdart)
	v0, ok := m.ForceReadVertex(svid)
	if !ok {
		return &UndefinedFaceError{Reason: "star vertex has no coordinates"}
	}

	if err := m.ForceOneUnsew(b0s); err != nil {
		return err
	}
	d0 := sdart
	for i := 0; i+1 < len(newDarts); i += 2 {
		d1, d2 := newDarts[i], newDarts[i+1]
		b1d0 := m.Beta(1, d0)
		b1b1d0 := m.Beta(1, b1d0)
		if err := m.ForceOneUnsew(b1d0); err != nil {
			return err
		}
		if err := m.ForceTwoLink(d1, d2); err != nil {
			return err
		}
		if err := m.ForceOneLink(d2, b1b1d0); err != nil {
			return err
		}
		if err := m.ForceOneSew(b1d0, d1); err != nil {
			return err
		}
		if err := m.ForceOneSew(d1, d0); err != nil {
			return err
		}
		d0 = d2
	}
	if err := m.ForceOneSew(m.Beta(1, m.Beta(1, d0)), d0); err != nil {
		return err
	}
	m.ForceWriteVertex(m.VertexID(sdart), v0)
	return nil
}
