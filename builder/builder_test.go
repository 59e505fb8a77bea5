package builder

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
)

func TestBuilder_NoSource(t *testing.T) {
	_, err := New().Build()
	require.ErrorIs(t, err, ErrNoSource)
}

func TestBuilder_NDarts(t *testing.T) {
	m, err := New().NDarts(3).Build()
	require.NoError(t, err)
	require.Equal(t, 3, m.NDarts())
	for d := cmap.DartID(1); d <= 3; d++ {
		require.True(t, m.IsFree(d))
	}
}

func TestGridDescriptor_Resolution(t *testing.T) {
	t.Run("missing parameters", func(t *testing.T) {
		_, err := New().Grid(GridDescriptor{NCells: [2]int{2, 2}}).Build()
		require.ErrorIs(t, err, ErrMissingGridParameters)
	})

	t.Run("negative length", func(t *testing.T) {
		_, err := New().Grid(GridDescriptor{
			NCells:  [2]int{2, 2},
			CellLen: [2]float64{-1, 1},
		}).Build()
		var perr *GridParameterError
		require.ErrorAs(t, err, &perr)
		require.Equal(t, "CellLen", perr.Param)
	})

	t.Run("counts from lengths", func(t *testing.T) {
		m, err := New().Grid(GridDescriptor{
			CellLen: [2]float64{1, 1},
			Lens:    [2]float64{2, 2},
		}).Build()
		require.NoError(t, err)
		require.Equal(t, 16, m.NDarts())
	})

	t.Run("cell length from totals", func(t *testing.T) {
		m, err := New().Grid(GridDescriptor{
			NCells: [2]int{1, 1},
			Lens:   [2]float64{3, 3},
		}).Build()
		require.NoError(t, err)
		v, ok := m.ForceReadVertex(m.VertexID(3))
		require.True(t, ok)
		require.Equal(t, geometry.NewVertex2(3, 3), v)
	})
}

func TestBuilder_UnitGrid(t *testing.T) {
	m, err := New().Grid(GridDescriptor{
		NCells:  [2]int{1, 1},
		CellLen: [2]float64{1, 1},
	}).Build()
	require.NoError(t, err)

	require.Equal(t, 4, m.NDarts())
	for d := cmap.DartID(1); d <= 4; d++ {
		next := d + 1
		if d == 4 {
			next = 1
		}
		require.Equal(t, next, m.Beta(1, d))
		require.Equal(t, cmap.NullDart, m.Beta(2, d))
		require.Equal(t, cmap.FaceID(1), m.FaceID(d))
	}
	require.Equal(t, []cmap.FaceID{1}, m.Faces())
	require.Equal(t, []cmap.VertexID{1, 2, 3, 4}, m.Vertices())

	corners := map[cmap.VertexID]geometry.Vertex2{
		1: geometry.NewVertex2(0, 0),
		2: geometry.NewVertex2(1, 0),
		3: geometry.NewVertex2(1, 1),
		4: geometry.NewVertex2(0, 1),
	}
	for vid, want := range corners {
		v, ok := m.ForceReadVertex(vid)
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestBuilder_GridTopology(t *testing.T) {
	m, err := New().Grid(GridDescriptor{
		Origin:  geometry.NewVertex2(0, 0),
		NCells:  [2]int{2, 2},
		CellLen: [2]float64{1, 1},
	}).Build()
	require.NoError(t, err)

	require.Equal(t, 16, m.NDarts())
	require.Equal(t, []cmap.FaceID{1, 5, 9, 13}, m.Faces())

	// neighboring quads share their edge through beta2
	require.Equal(t, cmap.DartID(8), m.Beta(2, 2))
	require.Equal(t, cmap.DartID(2), m.Beta(2, 8))
	require.Equal(t, cmap.DartID(9), m.Beta(2, 3))
	require.Equal(t, cmap.DartID(3), m.Beta(2, 9))

	// the center vertex is shared by all four quads
	center := m.VertexID(13)
	require.Equal(t, cmap.VertexID(3), center)
	for _, d := range []cmap.DartID{3, 8, 10, 13} {
		require.Equal(t, center, m.VertexID(d))
	}
	v, ok := m.ForceReadVertex(center)
	require.True(t, ok)
	require.Equal(t, geometry.NewVertex2(1, 1), v)

	require.Len(t, m.Vertices(), 9)
}

func TestBuilder_SplitGrid(t *testing.T) {
	m, err := New().Grid(GridDescriptor{
		NCells:     [2]int{2, 2},
		CellLen:    [2]float64{1, 1},
		SplitQuads: true,
	}).Build()
	require.NoError(t, err)

	require.Equal(t, 24, m.NDarts())
	require.Len(t, m.Faces(), 8)
	require.Len(t, m.Vertices(), 9)

	// triangles of one square share the diagonal
	require.Equal(t, cmap.DartID(4), m.Beta(2, 2))
	require.Equal(t, cmap.DartID(2), m.Beta(2, 4))
	// the four inter-square sews hold in both directions
	for d, image := range map[cmap.DartID]cmap.DartID{
		5: 9, 6: 13, 12: 19, 17: 21,
	} {
		require.Equal(t, image, m.Beta(2, d))
		require.Equal(t, d, m.Beta(2, image))
	}
	// beta2 is an involution over the whole map
	for d := cmap.DartID(1); int(d) <= m.NDarts(); d++ {
		if b2 := m.Beta(2, d); b2 != cmap.NullDart {
			require.Equal(t, d, m.Beta(2, b2), "beta2(beta2(%d))", d)
		}
	}

	for _, fid := range m.Faces() {
		var n int
		for range m.Orbit(cmap.FaceOrbit, cmap.DartID(fid)) {
			n++
		}
		require.Equal(t, 3, n)
	}
}
