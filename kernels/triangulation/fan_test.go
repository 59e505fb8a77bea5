package triangulation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
)

// buildPolygon links n darts into a loop and places corner i at verts[i].
func buildPolygon(t *testing.T, verts []geometry.Vertex2) *cmap.CMap2 {
	t.Helper()
	n := len(verts)
	m := cmap.NewCMap2(n)
	for i := 1; i <= n; i++ {
		next := cmap.DartID(i%n + 1)
		require.NoError(t, m.ForceOneLink(cmap.DartID(i), next))
	}
	for i, v := range verts {
		m.ForceWriteVertex(cmap.VertexID(i+1), v)
	}
	return m
}

func reserve(m *cmap.CMap2, n int) []cmap.DartID {
	d0 := m.AddFreeDarts(n)
	out := make([]cmap.DartID, n)
	for i := range out {
		out[i] = d0 + cmap.DartID(i)
	}
	return out
}

func requireAllTriangles(t *testing.T, m *cmap.CMap2, wantFaces int) {
	t.Helper()
	faces := m.Faces()
	require.Len(t, faces, wantFaces)
	for _, fid := range faces {
		var n int
		for range m.Orbit(cmap.FaceOrbit, cmap.DartID(fid)) {
			n++
		}
		require.Equal(t, 3, n, "face %d", fid)
	}
}

func hexagon() []geometry.Vertex2 {
	return []geometry.Vertex2{
		geometry.NewVertex2(1, 0),
		geometry.NewVertex2(2, 0),
		geometry.NewVertex2(2.5, 0.5),
		geometry.NewVertex2(2, 1),
		geometry.NewVertex2(1, 1),
		geometry.NewVertex2(0.5, 0.5),
	}
}

func TestFanConvexCell_Hexagon(t *testing.T) {
	m := buildPolygon(t, hexagon())

	require.NoError(t, FanConvexCell(m, m.FaceID(1), reserve(m, 6)))
	requireAllTriangles(t, m, 4)

	// the fan apex kept its position
	v, ok := m.ForceReadVertex(m.VertexID(1))
	require.True(t, ok)
	require.Equal(t, geometry.NewVertex2(1, 0), v)
}

func TestFanCell_Hexagon(t *testing.T) {
	m := buildPolygon(t, hexagon())

	require.NoError(t, FanCell(m, m.FaceID(1), reserve(m, 6)))
	requireAllTriangles(t, m, 4)
}

func TestFanCell_Square(t *testing.T) {
	m := buildPolygon(t, []geometry.Vertex2{
		geometry.NewVertex2(0, 0),
		geometry.NewVertex2(1, 0),
		geometry.NewVertex2(1, 1),
		geometry.NewVertex2(0, 1),
	})

	require.NoError(t, FanCell(m, m.FaceID(1), reserve(m, 2)))
	requireAllTriangles(t, m, 2)
}

func TestFanCell_ConcavePentagon(t *testing.T) {
	// only the reflex corner (2,1) sees the whole polygon
	m := buildPolygon(t, []geometry.Vertex2{
		geometry.NewVertex2(0, 0),
		geometry.NewVertex2(4, 0),
		geometry.NewVertex2(4, 3),
		geometry.NewVertex2(2, 1),
		geometry.NewVertex2(0, 3),
	})

	require.NoError(t, FanCell(m, m.FaceID(1), reserve(m, 4)))
	requireAllTriangles(t, m, 3)

	// every new edge radiates from the reflex corner
	reflex := m.VertexID(4)
	v, ok := m.ForceReadVertex(reflex)
	require.True(t, ok)
	require.Equal(t, geometry.NewVertex2(2, 1), v)
}

func TestFanCell_NonFannable(t *testing.T) {
	// U-shaped octagon, no corner sees both arms
	m := buildPolygon(t, []geometry.Vertex2{
		geometry.NewVertex2(0, 0),
		geometry.NewVertex2(3, 0),
		geometry.NewVertex2(3, 3),
		geometry.NewVertex2(2, 3),
		geometry.NewVertex2(2, 1),
		geometry.NewVertex2(1, 1),
		geometry.NewVertex2(1, 3),
		geometry.NewVertex2(0, 3),
	})

	err := FanCell(m, m.FaceID(1), reserve(m, 10))
	require.ErrorIs(t, err, ErrNotFannable)

	// the face is untouched
	var n int
	for range m.Orbit(cmap.FaceOrbit, 1) {
		n++
	}
	require.Equal(t, 8, n)
}

func TestFanCell_Requirements(t *testing.T) {
	t.Run("triangle", func(t *testing.T) {
		m := buildPolygon(t, []geometry.Vertex2{
			geometry.NewVertex2(0, 0),
			geometry.NewVertex2(1, 0),
			geometry.NewVertex2(0.5, 1),
		})
		require.ErrorIs(t, FanCell(m, m.FaceID(1), nil), ErrAlreadyTriangulated)
	})

	t.Run("wrong dart count", func(t *testing.T) {
		m := buildPolygon(t, hexagon())
		err := FanCell(m, m.FaceID(1), reserve(m, 4))
		var derr *DartCountError
		require.ErrorAs(t, err, &derr)
		require.Equal(t, 6, derr.Want)
		require.Equal(t, 4, derr.Got)
	})

	t.Run("undefined vertex", func(t *testing.T) {
		m := buildPolygon(t, hexagon())
		m.ForceRemoveVertex(3)
		err := FanCell(m, m.FaceID(1), reserve(m, 6))
		var uerr *UndefinedFaceError
		require.ErrorAs(t, err, &uerr)
	})
}
