package vtk_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/builder"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/vtk"
)

func buildGrid(t *testing.T, nx, ny int, split bool) *cmap.CMap2 {
	t.Helper()
	m, err := builder.New().Grid(builder.GridDescriptor{
		NCells:     [2]int{nx, ny},
		CellLen:    [2]float64{1, 1},
		SplitQuads: split,
	}).Build()
	require.NoError(t, err)
	return m
}

func TestWrite2_Layout(t *testing.T) {
	m := buildGrid(t, 1, 1, false)

	var buf bytes.Buffer
	require.NoError(t, vtk.Write2(&buf, m))
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "# vtk DataFile Version 2.0\n"))
	require.Contains(t, out, "ASCII\n")
	require.Contains(t, out, "DATASET UNSTRUCTURED_GRID\n")
	require.Contains(t, out, "POINTS 4 double\n")
	// four boundary Line cells plus the quad itself
	require.Contains(t, out, "CELLS 5 17\n")
	require.Contains(t, out, "CELL_TYPES 5\n")
	require.Contains(t, out, "4 0 1 2 3\n")
}

func TestRoundTrip_Quad(t *testing.T) {
	m := buildGrid(t, 2, 2, false)

	var buf bytes.Buffer
	require.NoError(t, vtk.Write2(&buf, m))

	got, err := vtk.Read2(&buf)
	require.NoError(t, err)

	require.Equal(t, 16, got.NDarts())
	require.Len(t, got.Faces(), 4)
	require.Len(t, got.Vertices(), 9)
	for _, fid := range got.Faces() {
		var n int
		for range got.Orbit(cmap.FaceOrbit, cmap.DartID(fid)) {
			n++
		}
		require.Equal(t, 4, n)
	}

	// interior edges are sewn back: 4 quads sharing 4 edges
	var sewn int
	for d := cmap.DartID(1); d <= 16; d++ {
		if got.Beta(2, d) != cmap.NullDart {
			sewn++
		}
	}
	require.Equal(t, 8, sewn)

	// geometry survives: the grid center is a shared vertex
	var found bool
	for _, vid := range got.Vertices() {
		if v, ok := got.ForceReadVertex(vid); ok && v == geometry.NewVertex2(1, 1) {
			found = true
		}
	}
	require.True(t, found)
}

func TestRoundTrip_Triangles(t *testing.T) {
	m := buildGrid(t, 2, 2, true)

	var buf bytes.Buffer
	require.NoError(t, vtk.Write2(&buf, m))

	got, err := vtk.Read2(&buf)
	require.NoError(t, err)
	require.Equal(t, 24, got.NDarts())
	require.Len(t, got.Faces(), 8)
	require.Len(t, got.Vertices(), 9)
}

func TestRead2_RejectsUnsupported(t *testing.T) {
	cases := map[string]struct {
		content string
		want    error
	}{
		"binary": {
			content: "# vtk DataFile Version 2.0\nt\nBINARY\nDATASET UNSTRUCTURED_GRID\n",
			want:    vtk.ErrUnsupportedData,
		},
		"polydata": {
			content: "# vtk DataFile Version 2.0\nt\nASCII\nDATASET POLYDATA\n",
			want:    vtk.ErrUnsupportedData,
		},
		"no version": {
			content: "hello\nt\nASCII\nDATASET UNSTRUCTURED_GRID\n",
			want:    vtk.ErrBadData,
		},
		"cell count mismatch": {
			content: "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\n" +
				"POINTS 3 double\n0 0 0 1 0 0 0 1 0\n" +
				"CELLS 1 4\n3 0 1 2\nCELL_TYPES 2\n5\n5\n",
			want: vtk.ErrBadData,
		},
		"triangle strip": {
			content: "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\n" +
				"POINTS 3 double\n0 0 0 1 0 0 0 1 0\n" +
				"CELLS 1 4\n3 0 1 2\nCELL_TYPES 1\n6\n",
			want: vtk.ErrUnsupportedData,
		},
		"point out of range": {
			content: "# vtk DataFile Version 2.0\nt\nASCII\nDATASET UNSTRUCTURED_GRID\n" +
				"POINTS 3 double\n0 0 0 1 0 0 0 1 0\n" +
				"CELLS 1 4\n3 0 1 7\nCELL_TYPES 1\n5\n",
			want: vtk.ErrBadData,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := vtk.Read2(strings.NewReader(tc.content))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSaveLoad2(t *testing.T) {
	m := buildGrid(t, 1, 1, false)
	path := filepath.Join(t.TempDir(), "unit.vtk")

	require.NoError(t, vtk.Save2(path, m))
	got, err := builder.New().FromFile(path).Build()
	require.NoError(t, err)
	require.Equal(t, 4, got.NDarts())
	require.Len(t, got.Faces(), 1)
}
