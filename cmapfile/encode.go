package cmapfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
)

// formatVersion tags written files; readers accept any version for now.
const formatVersion = "1.0.0"

// mapView is the read surface the encoder needs; both map dimensions
// provide it.
type mapView interface {
	NDarts() int
	Beta(i int, d cmap.DartID) cmap.DartID
	IsUnusedAtomic(d cmap.DartID) bool
	Vertices() []cmap.VertexID
}

func writeHeader(w *bufio.Writer, dim, nDarts int) error {
	if _, err := fmt.Fprintf(w, "[META]\n%s %d %d\n\n", formatVersion, dim, nDarts); err != nil {
		return err
	}
	return nil
}

func writeBetas(w *bufio.Writer, m mapView, dims int) error {
	if _, err := fmt.Fprintln(w, "[BETAS]"); err != nil {
		return err
	}
	for i := 0; i < dims; i++ {
		for d := cmap.DartID(0); int(d) <= m.NDarts(); d++ {
			if d > 0 {
				if err := w.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := w.WriteString(strconv.FormatUint(uint64(m.Beta(i, d)), 10)); err != nil {
				return err
			}
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func writeUnused(w *bufio.Writer, m mapView) error {
	if _, err := fmt.Fprintln(w, "[UNUSED]"); err != nil {
		return err
	}
	unused := roaring.New()
	for d := cmap.DartID(1); int(d) <= m.NDarts(); d++ {
		if m.IsUnusedAtomic(d) {
			unused.Add(uint32(d))
		}
	}
	first := true
	var err error
	unused.Iterate(func(id uint32) bool {
		if !first {
			if err = w.WriteByte(' '); err != nil {
				return false
			}
		}
		first = false
		if _, err = w.WriteString(strconv.FormatUint(uint64(id), 10)); err != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.WriteByte('\n')
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Write2 writes a 2-map in the text format.
func Write2(out io.Writer, m *cmap.CMap2) error {
	w := bufio.NewWriter(out)
	if err := writeHeader(w, 2, m.NDarts()); err != nil {
		return err
	}
	if err := writeBetas(w, m, 3); err != nil {
		return err
	}
	if err := writeUnused(w, m); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "[VERTICES]"); err != nil {
		return err
	}
	for _, vid := range m.Vertices() {
		v, ok := m.ForceReadVertex(vid)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d %s %s\n", vid, formatCoord(v.X), formatCoord(v.Y)); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Write3 writes a 3-map in the text format.
func Write3(out io.Writer, m *cmap.CMap3) error {
	w := bufio.NewWriter(out)
	if err := writeHeader(w, 3, m.NDarts()); err != nil {
		return err
	}
	if err := writeBetas(w, m, 4); err != nil {
		return err
	}
	if err := writeUnused(w, m); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "[VERTICES]"); err != nil {
		return err
	}
	for _, vid := range m.Vertices() {
		v, ok := m.ForceReadVertex(vid)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%d %s %s %s\n",
			vid, formatCoord(v.X), formatCoord(v.Y), formatCoord(v.Z)); err != nil {
			return err
		}
	}
	return w.Flush()
}
