package vtk

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
)

// tokenReader walks the body of a legacy ASCII file word by word.
// Legacy VTK does not care about line boundaries past the header.
type tokenReader struct {
	sc *bufio.Scanner
}

func newTokenReader(r io.Reader) *tokenReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 1<<20)
	sc.Split(bufio.ScanWords)
	return &tokenReader{sc: sc}
}

func (t *tokenReader) next() (string, bool) {
	if !t.sc.Scan() {
		return "", false
	}
	return t.sc.Text(), true
}

func (t *tokenReader) nextInt(what string) (int, error) {
	tok, ok := t.next()
	if !ok {
		return 0, badData("truncated " + what)
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, badData(fmt.Sprintf("%s: %q is not an integer", what, tok))
	}
	return n, nil
}

func (t *tokenReader) nextFloat(what string) (float64, error) {
	tok, ok := t.next()
	if !ok {
		return 0, badData("truncated " + what)
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, badData(fmt.Sprintf("%s: %q is not a number", what, tok))
	}
	return v, nil
}

// Read2 builds a 2-map from a legacy ASCII VTK unstructured grid.
//
// Triangle, Quad and Polygon cells become faces; faces sharing an edge
// in opposite orientations are 2-sewn. Vertex and Line cells are
// validated then ignored. Anything else in the file is an error.
func Read2(r io.Reader, opts ...cmap.Option) (*cmap.CMap2, error) {
	br := bufio.NewReader(r)
	if err := readHeader(br); err != nil {
		return nil, err
	}
	tr := newTokenReader(br)

	vertices, err := readPoints(tr)
	if err != nil {
		return nil, err
	}
	components, err := readCells(tr)
	if err != nil {
		return nil, err
	}
	types, err := readCellTypes(tr, len(components))
	if err != nil {
		return nil, err
	}

	m := cmap.NewCMap2(0, opts...)
	sewBuffer := make(map[[2]int]cmap.DartID)
	for i, vids := range components {
		if err := buildCell(m, types[i], vids, vertices, sewBuffer); err != nil {
			return nil, err
		}
	}
	if err := sewSharedEdges(m, sewBuffer); err != nil {
		return nil, err
	}
	return m, nil
}

func readHeader(br *bufio.Reader) error {
	line := func() (string, error) {
		s, err := br.ReadString('\n')
		if err != nil && s == "" {
			return "", badData("truncated header")
		}
		return strings.TrimSpace(s), nil
	}
	version, err := line()
	if err != nil {
		return err
	}
	if !strings.HasPrefix(version, "# vtk DataFile Version") {
		return badData("missing version line")
	}
	if _, err := line(); err != nil { // title, free-form
		return err
	}
	format, err := line()
	if err != nil {
		return err
	}
	if format != "ASCII" {
		return unsupported(format + " encoding")
	}
	dataset, err := line()
	if err != nil {
		return err
	}
	fields := strings.Fields(dataset)
	if len(fields) != 2 || fields[0] != "DATASET" {
		return badData("missing DATASET line")
	}
	if fields[1] != "UNSTRUCTURED_GRID" {
		return unsupported(fields[1] + " dataset")
	}
	return nil
}

func readPoints(tr *tokenReader) ([]geometry.Vertex2, error) {
	kw, ok := tr.next()
	if !ok || kw != "POINTS" {
		return nil, badData("expected POINTS section")
	}
	n, err := tr.nextInt("POINTS count")
	if err != nil {
		return nil, err
	}
	coordType, ok := tr.next()
	if !ok {
		return nil, badData("truncated POINTS header")
	}
	if coordType != "float" && coordType != "double" {
		return nil, unsupported(coordType + " coordinates")
	}
	vertices := make([]geometry.Vertex2, n)
	for i := range vertices {
		x, err := tr.nextFloat("point coordinates")
		if err != nil {
			return nil, err
		}
		y, err := tr.nextFloat("point coordinates")
		if err != nil {
			return nil, err
		}
		// z is read and dropped, 2-maps are planar
		if _, err := tr.nextFloat("point coordinates"); err != nil {
			return nil, err
		}
		vertices[i] = geometry.NewVertex2(x, y)
	}
	return vertices, nil
}

func readCells(tr *tokenReader) ([][]int, error) {
	kw, ok := tr.next()
	if !ok || kw != "CELLS" {
		return nil, badData("expected CELLS section")
	}
	nCells, err := tr.nextInt("CELLS count")
	if err != nil {
		return nil, err
	}
	size, err := tr.nextInt("CELLS size")
	if err != nil {
		return nil, err
	}
	components := make([][]int, 0, nCells)
	for read := 0; read < size; {
		count, err := tr.nextInt("cell vertex count")
		if err != nil {
			return nil, err
		}
		read++
		vids := make([]int, count)
		for i := range vids {
			if vids[i], err = tr.nextInt("cell vertex id"); err != nil {
				return nil, err
			}
			read++
		}
		components = append(components, vids)
	}
	if len(components) != nCells {
		return nil, badData(fmt.Sprintf("CELLS announces %d cells, holds %d", nCells, len(components)))
	}
	return components, nil
}

func readCellTypes(tr *tokenReader, nCells int) ([]int, error) {
	kw, ok := tr.next()
	if !ok || kw != "CELL_TYPES" {
		return nil, badData("expected CELL_TYPES section")
	}
	n, err := tr.nextInt("CELL_TYPES count")
	if err != nil {
		return nil, err
	}
	if n != nCells {
		return nil, badData("different cell counts in CELLS and CELL_TYPES")
	}
	types := make([]int, n)
	for i := range types {
		if types[i], err = tr.nextInt("cell type"); err != nil {
			return nil, err
		}
	}
	return types, nil
}

func buildCell(m *cmap.CMap2, cellType int, vids []int, vertices []geometry.Vertex2, sewBuffer map[[2]int]cmap.DartID) error {
	for _, vid := range vids {
		if vid < 0 || vid >= len(vertices) {
			return badData(fmt.Sprintf("cell references point %d of %d", vid, len(vertices)))
		}
	}
	switch cellType {
	case cellVertex:
		if len(vids) != 1 {
			return badData("Vertex cell with incorrect number of points")
		}
		return nil
	case cellLine:
		if len(vids) != 2 {
			return badData("Line cell with incorrect number of points")
		}
		return nil
	case cellTriangle:
		if len(vids) != 3 {
			return badData("Triangle cell with incorrect number of points")
		}
	case cellQuad:
		if len(vids) != 4 {
			return badData("Quad cell with incorrect number of points")
		}
	case cellPolygon:
		if len(vids) < 3 {
			return badData("Polygon cell with fewer than three points")
		}
	case cellPolyVertex, cellPolyLine, cellTriangleStrip, cellPixel:
		return unsupported(fmt.Sprintf("cell type %d", cellType))
	default:
		return unsupported(fmt.Sprintf("cell type %d in a 2-map", cellType))
	}

	n := len(vids)
	d0 := m.AddFreeDarts(n)
	for i, vid := range vids {
		di := d0 + cmap.DartID(i)
		next := d0
		if i < n-1 {
			next = di + 1
		}
		m.ForceWriteVertex(cmap.VertexID(di), vertices[vid])
		if err := m.ForceOneLink(di, next); err != nil {
			return err
		}
		sewBuffer[[2]int{vid, vids[(i+1)%n]}] = di
	}
	return nil
}

// sewSharedEdges pairs half-edges recorded during cell construction: a
// dart keyed (a, b) and one keyed (b, a) bound the same geometric edge
// from opposite faces.
func sewSharedEdges(m *cmap.CMap2, sewBuffer map[[2]int]cmap.DartID) error {
	keys := make([][2]int, 0, len(sewBuffer))
	for k := range sewBuffer {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
	for _, k := range keys {
		d0, ok := sewBuffer[k]
		if !ok {
			continue
		}
		rev := [2]int{k[1], k[0]}
		d1, ok := sewBuffer[rev]
		if !ok {
			continue
		}
		delete(sewBuffer, k)
		delete(sewBuffer, rev)
		if err := m.ForceTwoSew(d0, d1); err != nil {
			return err
		}
	}
	return nil
}
