package vtk

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
)

// Legacy VTK cell type codes.
const (
	cellVertex        = 1
	cellPolyVertex    = 2
	cellLine          = 3
	cellPolyLine      = 4
	cellTriangle      = 5
	cellTriangleStrip = 6
	cellPolygon       = 7
	cellPixel         = 8
	cellQuad          = 9
)

// Write2 serializes the map as a legacy ASCII VTK unstructured grid.
// Each face becomes a Triangle, Quad or Polygon cell, and each boundary
// edge a Line cell. Faces of fewer than three darts are skipped.
func Write2(out io.Writer, m *cmap.CMap2) error {
	vertexIDs := m.Vertices()
	idMap := make(map[cmap.VertexID]int, len(vertexIDs))
	for i, vid := range vertexIDs {
		idMap[vid] = i
	}

	var (
		cells    [][]int
		types    []int
		intCount int
	)
	for _, eid := range m.Edges() {
		if m.Beta(2, cmap.DartID(eid)) != cmap.NullDart {
			continue
		}
		d := cmap.DartID(eid)
		cells = append(cells, []int{idMap[m.VertexID(d)], idMap[m.VertexID(m.Beta(1, d))]})
		types = append(types, cellLine)
		intCount += 3
	}
	for _, fid := range m.Faces() {
		// loop order matters: viewers treat the corner list as a ring
		var corners []int
		for d := range m.Orbit(cmap.FaceLinearOrbit, cmap.DartID(fid)) {
			corners = append(corners, idMap[m.VertexID(d)])
		}
		var ct int
		switch n := len(corners); {
		case n <= 2:
			continue
		case n == 3:
			ct = cellTriangle
		case n == 4:
			ct = cellQuad
		default:
			ct = cellPolygon
		}
		cells = append(cells, corners)
		types = append(types, ct)
		intCount += len(corners) + 1
	}

	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "# vtk DataFile Version 2.0")
	fmt.Fprintln(w, "cmap")
	fmt.Fprintln(w, "ASCII")
	fmt.Fprintln(w, "DATASET UNSTRUCTURED_GRID")

	fmt.Fprintf(w, "POINTS %d double\n", len(vertexIDs))
	for _, vid := range vertexIDs {
		v, ok := m.ForceReadVertex(vid)
		if !ok {
			return badData(fmt.Sprintf("vertex %d has no coordinates", vid))
		}
		fmt.Fprintf(w, "%s %s 0\n", formatCoord(v.X), formatCoord(v.Y))
	}

	fmt.Fprintf(w, "CELLS %d %d\n", len(cells), intCount)
	for _, corners := range cells {
		fmt.Fprint(w, len(corners))
		for _, c := range corners {
			fmt.Fprintf(w, " %d", c)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "CELL_TYPES %d\n", len(types))
	for _, ct := range types {
		fmt.Fprintln(w, ct)
	}
	return w.Flush()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
