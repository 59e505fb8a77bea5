package cmap

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

func collect(seq func(func(DartID) bool)) []DartID {
	var out []DartID
	seq(func(d DartID) bool {
		out = append(out, d)
		return true
	})
	return out
}

// buildQuad links darts 1..4 into a single closed face.
func buildQuad(t *testing.T) *CMap2 {
	t.Helper()
	m := NewCMap2(4)
	require.NoError(t, m.ForceOneLink(1, 2))
	require.NoError(t, m.ForceOneLink(2, 3))
	require.NoError(t, m.ForceOneLink(3, 4))
	require.NoError(t, m.ForceOneLink(4, 1))
	return m
}

func TestCMap2_NewMapIsFree(t *testing.T) {
	m := NewCMap2(4)
	assert.Equal(t, 4, m.NDarts())
	assert.Equal(t, 0, m.NUnusedDarts())
	for d := DartID(1); d <= 4; d++ {
		assert.True(t, m.IsFree(d))
		assert.False(t, m.IsUnusedAtomic(d))
	}
	assert.Equal(t, NullDart, m.Beta(1, NullDart))
}

func TestCMap2_QuadTopology(t *testing.T) {
	m := buildQuad(t)

	assert.Equal(t, DartID(2), m.Beta(1, 1))
	assert.Equal(t, DartID(1), m.Beta(0, 2))
	assert.Equal(t, DartID(1), m.Beta(1, 4))

	face := collect(m.ICell(2, 1))
	assert.ElementsMatch(t, []DartID{1, 2, 3, 4}, face)
	for d := DartID(1); d <= 4; d++ {
		assert.Equal(t, FaceID(1), m.FaceID(d))
		// 2-free darts form singleton vertices and edges
		assert.Equal(t, VertexID(d), m.VertexID(d))
		assert.Equal(t, EdgeID(d), m.EdgeID(d))
	}

	assert.Equal(t, []FaceID{1}, m.Faces())
	assert.Equal(t, []VertexID{1, 2, 3, 4}, m.Vertices())
	assert.Equal(t, []EdgeID{1, 2, 3, 4}, m.Edges())
}

func TestCMap2_OrbitDeterminism(t *testing.T) {
	m := buildQuad(t)
	first := collect(m.Orbit(FaceOrbit, 1))
	second := collect(m.Orbit(FaceOrbit, 1))
	assert.Equal(t, first, second)
	// breadth-first from the seed, beta1 before beta0
	assert.Equal(t, []DartID{1, 2, 4, 3}, first)
}

func TestCMap2_LinkFreeness(t *testing.T) {
	m := NewCMap2(3)
	require.NoError(t, m.ForceOneLink(1, 2))

	err := m.ForceOneLink(1, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonFreeBase)
	var linkErr *LinkError
	require.ErrorAs(t, err, &linkErr)
	assert.Equal(t, 1, linkErr.Dim)

	err = m.ForceOneLink(3, 2)
	assert.ErrorIs(t, err, ErrNonFreeImage)

	err = m.ForceOneUnlink(3)
	assert.ErrorIs(t, err, ErrAlreadyFree)

	// the failed links published nothing
	assert.Equal(t, NullDart, m.Beta(1, 3))
	assert.Equal(t, DartID(2), m.Beta(1, 1))
}

func TestCMap2_OneSewMergesVertices(t *testing.T) {
	m := NewCMap2(3)
	require.NoError(t, m.ForceTwoLink(1, 2))
	m.ForceWriteVertex(2, geometry.NewVertex2(1, 1))
	m.ForceWriteVertex(3, geometry.NewVertex2(0, 0))

	require.NoError(t, m.ForceOneSew(1, 3))

	assert.Equal(t, DartID(3), m.Beta(1, 1))
	assert.Equal(t, VertexID(2), m.VertexID(3))
	v, ok := m.ForceReadVertex(2)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex2(0.5, 0.5), v)
	_, ok = m.ForceReadVertex(3)
	assert.False(t, ok)
}

func TestCMap2_OneUnsewSplitsVertex(t *testing.T) {
	m := NewCMap2(3)
	require.NoError(t, m.ForceTwoLink(1, 2))
	m.ForceWriteVertex(2, geometry.NewVertex2(1, 1))
	m.ForceWriteVertex(3, geometry.NewVertex2(0, 0))
	require.NoError(t, m.ForceOneSew(1, 3))

	require.NoError(t, m.ForceOneUnsew(1))

	assert.Equal(t, NullDart, m.Beta(1, 1))
	lv, ok := m.ForceReadVertex(VertexID(m.VertexID(2)))
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex2(0.5, 0.5), lv)
	rv, ok := m.ForceReadVertex(VertexID(m.VertexID(3)))
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex2(0.5, 0.5), rv)
}

func TestCMap2_TwoSewRejectsBadOrientation(t *testing.T) {
	m := NewCMap2(4)
	require.NoError(t, m.ForceOneLink(1, 2))
	require.NoError(t, m.ForceOneLink(3, 4))
	m.ForceWriteVertex(1, geometry.NewVertex2(0, 0))
	m.ForceWriteVertex(2, geometry.NewVertex2(1, 0))
	// same direction as dart 1: sewing would fold the surface
	m.ForceWriteVertex(3, geometry.NewVertex2(0, 1))
	m.ForceWriteVertex(4, geometry.NewVertex2(1, 1))

	err := m.ForceTwoSew(1, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadOrientation)
	var sewErr *SewError
	require.ErrorAs(t, err, &sewErr)
	assert.Equal(t, 2, sewErr.Dim)
	assert.Equal(t, NullDart, m.Beta(2, 1))
}

func TestCMap2_TwoSewMergesEndpoints(t *testing.T) {
	m := NewCMap2(4)
	require.NoError(t, m.ForceOneLink(1, 2))
	require.NoError(t, m.ForceOneLink(3, 4))
	m.ForceWriteVertex(1, geometry.NewVertex2(0, 0))
	m.ForceWriteVertex(2, geometry.NewVertex2(1, 0))
	m.ForceWriteVertex(3, geometry.NewVertex2(1, 1))
	m.ForceWriteVertex(4, geometry.NewVertex2(0, 1))

	require.NoError(t, m.ForceTwoSew(1, 3))

	assert.Equal(t, DartID(3), m.Beta(2, 1))
	assert.Equal(t, VertexID(1), m.VertexID(4))
	assert.Equal(t, VertexID(2), m.VertexID(3))
	lv, ok := m.ForceReadVertex(1)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex2(0, 0.5), lv)
	rv, ok := m.ForceReadVertex(2)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex2(1, 0.5), rv)
}

func TestCMap2_TwoUnsewRestoresVertices(t *testing.T) {
	m := NewCMap2(4)
	require.NoError(t, m.ForceOneLink(1, 2))
	require.NoError(t, m.ForceOneLink(3, 4))
	m.ForceWriteVertex(1, geometry.NewVertex2(0, 0))
	m.ForceWriteVertex(2, geometry.NewVertex2(1, 0))
	m.ForceWriteVertex(3, geometry.NewVertex2(1, 1))
	m.ForceWriteVertex(4, geometry.NewVertex2(0, 1))
	require.NoError(t, m.ForceTwoSew(1, 3))

	require.NoError(t, m.ForceTwoUnsew(1))

	assert.Equal(t, NullDart, m.Beta(2, 1))
	for _, vid := range []VertexID{m.VertexID(1), m.VertexID(4)} {
		v, ok := m.ForceReadVertex(vid)
		require.True(t, ok)
		assert.Equal(t, geometry.NewVertex2(0, 0.5), v)
	}
	for _, vid := range []VertexID{m.VertexID(2), m.VertexID(3)} {
		v, ok := m.ForceReadVertex(vid)
		require.True(t, ok)
		assert.Equal(t, geometry.NewVertex2(1, 0.5), v)
	}
}

func TestCMap2_ReleaseAndReuse(t *testing.T) {
	m := NewCMap2(4)
	require.NoError(t, m.ForceOneLink(1, 2))

	_, err := m.ForceReleaseDart(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReleaseLinked)

	wasUsed, err := m.ForceReleaseDart(3)
	require.NoError(t, err)
	assert.True(t, wasUsed)
	assert.Equal(t, 1, m.NUnusedDarts())

	assert.Equal(t, DartID(3), m.InsertFreeDart())
	assert.Equal(t, 0, m.NUnusedDarts())

	// no unused slot left: storage grows instead
	assert.Equal(t, DartID(5), m.InsertFreeDart())
	assert.Equal(t, 5, m.NDarts())
}

func TestCMap2_ReserveDarts(t *testing.T) {
	m := NewCMap2(2)
	first := m.AllocateUnusedDarts(4)
	assert.Equal(t, DartID(3), first)
	assert.Equal(t, 4, m.NUnusedDarts())

	got, err := m.ReserveDarts(3)
	require.NoError(t, err)
	assert.Equal(t, []DartID{3, 4, 5}, got)
	assert.Equal(t, 1, m.NUnusedDarts())

	_, err = m.ReserveDarts(2)
	require.Error(t, err)
	var allocErr *AllocError
	require.ErrorAs(t, err, &allocErr)
	assert.Equal(t, 2, allocErr.Want)
	// the failed reservation claimed nothing
	assert.Equal(t, 1, m.NUnusedDarts())
}

func TestCMap2_ContendedLinkHasOneWinner(t *testing.T) {
	const workers = 8
	m := NewCMap2(workers + 1)

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			errs[w] = m.ForceOneLink(1, DartID(w+2))
		}(w)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrNonFreeBase)
		}
	}
	assert.Equal(t, 1, wins)
	assert.NotEqual(t, NullDart, m.Beta(1, 1))
}

func TestCMap2_TransactionComposesSews(t *testing.T) {
	m := NewCMap2(4)
	err := stm.Atomically(func(tx *stm.Tx) error {
		if err := m.OneLink(tx, 1, 2); err != nil {
			return err
		}
		if err := m.OneLink(tx, 2, 3); err != nil {
			return err
		}
		return m.OneLink(tx, 3, 4)
	})
	require.NoError(t, err)
	assert.Equal(t, DartID(4), m.Beta(1, 3))

	// an abort mid-transaction publishes none of the writes
	err = stm.Atomically(func(tx *stm.Tx) error {
		if err := m.OneLink(tx, 4, 1); err != nil {
			return err
		}
		return m.OneLink(tx, 4, 2) // base no longer free
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonFreeBase)
	assert.Equal(t, NullDart, m.Beta(1, 4))
}

func TestCMap2_CustomOrbit(t *testing.T) {
	m := buildQuad(t)
	walk := collect(m.Orbit(CustomOrbit(1), 1))
	assert.True(t, slices.Contains(walk, DartID(3)))
	assert.Equal(t, []DartID{1, 2, 3, 4}, walk)

	assert.Panics(t, func() { CustomOrbit() })
	assert.Panics(t, func() { CustomOrbit(5) })
}
