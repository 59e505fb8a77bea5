package cmapfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
)

type rawVertex struct {
	id     uint32
	coords []float64
}

type rawFile struct {
	version string
	dim     int
	nDarts  int
	betas   [][]cmap.DartID
	unused  *roaring.Bitmap
	verts   []rawVertex
}

// maxLineSize bounds a single [BETAS] line; 256 MiB covers hundreds of
// millions of darts per row.
const maxLineSize = 256 << 20

func parse(r io.Reader) (*rawFile, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineSize)

	f := &rawFile{unused: roaring.New()}
	section := ""
	betaRows := 0
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			section = line
			continue
		}
		switch section {
		case "[META]":
			fields := strings.Fields(line)
			if len(fields) != 3 {
				return nil, &FormatError{Section: "[META]", Line: lineNo, Reason: "want 3 fields: version, dimension, dart count"}
			}
			f.version = fields[0]
			dim, err := strconv.Atoi(fields[1])
			if err != nil || (dim != 2 && dim != 3) {
				return nil, &FormatError{Section: "[META]", Line: lineNo, Reason: "map dimension must be 2 or 3"}
			}
			f.dim = dim
			nDarts, err := strconv.Atoi(fields[2])
			if err != nil || nDarts < 0 {
				return nil, &FormatError{Section: "[META]", Line: lineNo, Reason: "invalid dart count"}
			}
			f.nDarts = nDarts
		case "[BETAS]":
			if f.dim == 0 {
				return nil, &FormatError{Section: "[BETAS]", Line: lineNo, Reason: "[META] must come first"}
			}
			if betaRows == f.dim+1 {
				return nil, &FormatError{Section: "[BETAS]", Line: lineNo, Reason: "too many beta rows"}
			}
			fields := strings.Fields(line)
			if len(fields) != f.nDarts+1 {
				return nil, &FormatError{Section: "[BETAS]", Line: lineNo,
					Reason: fmt.Sprintf("want %d images per row, got %d", f.nDarts+1, len(fields))}
			}
			row := make([]cmap.DartID, len(fields))
			for i, fd := range fields {
				img, err := strconv.ParseUint(fd, 10, 32)
				if err != nil || int(img) > f.nDarts {
					return nil, &FormatError{Section: "[BETAS]", Line: lineNo, Reason: "dart id out of range: " + fd}
				}
				row[i] = cmap.DartID(img)
			}
			f.betas = append(f.betas, row)
			betaRows++
		case "[UNUSED]":
			for _, fd := range strings.Fields(line) {
				id, err := strconv.ParseUint(fd, 10, 32)
				if err != nil || id == 0 || int(id) > f.nDarts {
					return nil, &FormatError{Section: "[UNUSED]", Line: lineNo, Reason: "dart id out of range: " + fd}
				}
				f.unused.Add(uint32(id))
			}
		case "[VERTICES]":
			fields := strings.Fields(line)
			if len(fields) != f.dim+1 {
				return nil, &FormatError{Section: "[VERTICES]", Line: lineNo,
					Reason: fmt.Sprintf("want id plus %d coordinates", f.dim)}
			}
			id, err := strconv.ParseUint(fields[0], 10, 32)
			if err != nil || id == 0 || int(id) > f.nDarts {
				return nil, &FormatError{Section: "[VERTICES]", Line: lineNo, Reason: "vertex id out of range: " + fields[0]}
			}
			coords := make([]float64, f.dim)
			for i, fd := range fields[1:] {
				c, err := strconv.ParseFloat(fd, 64)
				if err != nil {
					return nil, &FormatError{Section: "[VERTICES]", Line: lineNo, Reason: "bad coordinate: " + fd}
				}
				coords[i] = c
			}
			f.verts = append(f.verts, rawVertex{id: uint32(id), coords: coords})
		default:
			return nil, &FormatError{Section: section, Line: lineNo, Reason: "content outside a known section"}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if f.dim == 0 {
		return nil, fmt.Errorf("%w: [META]", ErrMissingSection)
	}
	if betaRows != f.dim+1 {
		return nil, fmt.Errorf("%w: [BETAS] (want %d rows, got %d)", ErrMissingSection, f.dim+1, betaRows)
	}
	return f, nil
}

func markUnused(view interface {
	ForceReleaseDart(d cmap.DartID) (bool, error)
}, unused *roaring.Bitmap) error {
	var err error
	unused.Iterate(func(id uint32) bool {
		if _, relErr := view.ForceReleaseDart(cmap.DartID(id)); relErr != nil {
			err = &FormatError{Section: "[UNUSED]",
				Reason: fmt.Sprintf("dart %d is marked unused but still linked", id)}
			return false
		}
		return true
	})
	return err
}

// Read2 reads a 2-map from the text format.
func Read2(r io.Reader, opts ...cmap.Option) (*cmap.CMap2, error) {
	f, err := parse(r)
	if err != nil {
		return nil, err
	}
	if f.dim != 2 {
		return nil, fmt.Errorf("%w: file holds a %d-map", ErrDimensionMismatch, f.dim)
	}
	m := cmap.NewCMap2(f.nDarts, opts...)
	for d := cmap.DartID(1); int(d) <= f.nDarts; d++ {
		m.SetBetas(d, [3]cmap.DartID{f.betas[0][d], f.betas[1][d], f.betas[2][d]})
	}
	if err := markUnused(m, f.unused); err != nil {
		return nil, err
	}
	for _, v := range f.verts {
		m.ForceWriteVertex(cmap.VertexID(v.id), geometry.NewVertex2(v.coords[0], v.coords[1]))
	}
	return m, nil
}

// Read3 reads a 3-map from the text format.
func Read3(r io.Reader, opts ...cmap.Option) (*cmap.CMap3, error) {
	f, err := parse(r)
	if err != nil {
		return nil, err
	}
	if f.dim != 3 {
		return nil, fmt.Errorf("%w: file holds a %d-map", ErrDimensionMismatch, f.dim)
	}
	m := cmap.NewCMap3(f.nDarts, opts...)
	for d := cmap.DartID(1); int(d) <= f.nDarts; d++ {
		m.SetBetas(d, [4]cmap.DartID{f.betas[0][d], f.betas[1][d], f.betas[2][d], f.betas[3][d]})
	}
	if err := markUnused(m, f.unused); err != nil {
		return nil, err
	}
	for _, v := range f.verts {
		m.ForceWriteVertex(cmap.VertexID(v.id), geometry.NewVertex3(v.coords[0], v.coords[1], v.coords[2]))
	}
	return m, nil
}
