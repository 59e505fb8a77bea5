package cmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// buildTrianglePair builds two closed triangular faces with opposite
// traversal directions over the same corner positions, ready to 3-sew
// through darts 1 and 4.
func buildTrianglePair(t *testing.T) *CMap3 {
	t.Helper()
	m := NewCMap3(6)
	require.NoError(t, m.ForceOneLink(1, 2))
	require.NoError(t, m.ForceOneLink(2, 3))
	require.NoError(t, m.ForceOneLink(3, 1))
	require.NoError(t, m.ForceOneLink(4, 5))
	require.NoError(t, m.ForceOneLink(5, 6))
	require.NoError(t, m.ForceOneLink(6, 4))
	// first face walks P -> Q -> R, second walks Q -> P -> R
	m.ForceWriteVertex(1, geometry.NewVertex3(0, 0, 0))
	m.ForceWriteVertex(2, geometry.NewVertex3(1, 0, 0))
	m.ForceWriteVertex(3, geometry.NewVertex3(0, 1, 0))
	m.ForceWriteVertex(4, geometry.NewVertex3(1, 0, 0))
	m.ForceWriteVertex(5, geometry.NewVertex3(0, 0, 0))
	m.ForceWriteVertex(6, geometry.NewVertex3(0, 1, 0))
	return m
}

func TestCMap3_NewMapIsFree(t *testing.T) {
	m := NewCMap3(4)
	assert.Equal(t, 4, m.NDarts())
	for d := DartID(1); d <= 4; d++ {
		assert.True(t, m.IsFree(d))
	}
	assert.Equal(t, NullDart, m.Beta(3, 1))
	assert.Panics(t, func() { m.Beta(4, 1) })
}

func TestCMap3_OneLinkMirrorsThroughBeta3(t *testing.T) {
	m := NewCMap3(6)
	// single-dart faces: the 3-link walk stops immediately
	require.NoError(t, m.ForceThreeLink(1, 4))
	require.NoError(t, m.ForceThreeLink(2, 5))

	require.NoError(t, m.ForceOneLink(1, 2))
	assert.Equal(t, DartID(2), m.Beta(1, 1))
	assert.Equal(t, DartID(4), m.Beta(1, 5))
	assert.Equal(t, DartID(5), m.Beta(0, 4))

	require.NoError(t, m.ForceOneUnlink(1))
	assert.Equal(t, NullDart, m.Beta(1, 1))
	assert.Equal(t, NullDart, m.Beta(1, 5))
}

func TestCMap3_OneUnlinkDetectsBrokenMirror(t *testing.T) {
	m := NewCMap3(6)
	require.NoError(t, m.ForceThreeLink(1, 4))
	require.NoError(t, m.ForceThreeLink(2, 5))
	require.NoError(t, m.ForceOneLink(1, 2))

	// clear the mirrored link only, through the raw storage core, leaving
	// the faces inconsistent
	require.NoError(t, stm.Atomically(func(tx *stm.Tx) error {
		return m.betas.oneUnlink(tx, 5)
	}))

	err := m.ForceOneUnlink(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAsymmetricalFaces)
	// the abort kept beta1(1) intact
	assert.Equal(t, DartID(2), m.Beta(1, 1))
}

func TestCMap3_ThreeLinkPairsFaceLoops(t *testing.T) {
	m := buildTrianglePair(t)
	require.NoError(t, m.ForceThreeLink(1, 4))

	assert.Equal(t, DartID(4), m.Beta(3, 1))
	assert.Equal(t, DartID(6), m.Beta(3, 2))
	assert.Equal(t, DartID(5), m.Beta(3, 3))

	face := collect(m.ICell(2, 1))
	assert.ElementsMatch(t, []DartID{1, 2, 3, 4, 5, 6}, face)
	assert.Equal(t, FaceID(1), m.FaceID(5))

	// both triangles stay distinct volumes
	assert.Equal(t, VolumeID(1), m.VolumeID(2))
	assert.Equal(t, VolumeID(4), m.VolumeID(6))
	assert.Equal(t, []VolumeID{1, 4}, m.Volumes())

	require.NoError(t, m.ForceThreeUnlink(1))
	for d := DartID(1); d <= 6; d++ {
		assert.Equal(t, NullDart, m.Beta(3, d))
	}
}

func TestCMap3_ThreeLinkAsymmetricalFaces(t *testing.T) {
	m := NewCMap3(3)
	// open two-dart chain against a single free dart
	require.NoError(t, m.ForceOneLink(1, 2))

	err := m.ForceThreeLink(1, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAsymmetricalFaces)
	assert.Equal(t, NullDart, m.Beta(3, 1))
	assert.Equal(t, NullDart, m.Beta(3, 3))
}

func TestCMap3_ThreeSewMergesCells(t *testing.T) {
	m := buildTrianglePair(t)
	require.NoError(t, m.ForceThreeSew(1, 4))

	assert.Equal(t, DartID(4), m.Beta(3, 1))
	assert.Equal(t, FaceID(1), m.FaceID(4))

	// corners merged pairwise: (2,4) at Q, (3,6) at R, (1,5) at P
	assert.Equal(t, VertexID(2), m.VertexID(4))
	assert.Equal(t, VertexID(3), m.VertexID(6))
	assert.Equal(t, VertexID(1), m.VertexID(5))

	p, ok := m.ForceReadVertex(1)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex3(0, 0, 0), p)
	q, ok := m.ForceReadVertex(2)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex3(1, 0, 0), q)
	r, ok := m.ForceReadVertex(3)
	require.True(t, ok)
	assert.Equal(t, geometry.NewVertex3(0, 1, 0), r)
	_, ok = m.ForceReadVertex(4)
	assert.False(t, ok)
	_, ok = m.ForceReadVertex(5)
	assert.False(t, ok)
}

func TestCMap3_ThreeSewRejectsBadOrientation(t *testing.T) {
	m := buildTrianglePair(t)
	// flip the second face's first corner so both walks point the same way
	m.ForceWriteVertex(4, geometry.NewVertex3(0, 0, 0))
	m.ForceWriteVertex(5, geometry.NewVertex3(1, 0, 0))

	err := m.ForceThreeSew(1, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadOrientation)
	assert.Equal(t, NullDart, m.Beta(3, 1))
}

func TestCMap3_ThreeUnsewSplitsCells(t *testing.T) {
	m := buildTrianglePair(t)
	require.NoError(t, m.ForceThreeSew(1, 4))

	require.NoError(t, m.ForceThreeUnsew(1))

	assert.Equal(t, NullDart, m.Beta(3, 1))
	assert.Equal(t, FaceID(4), m.FaceID(4))

	// each face gets its own copy of the corner positions back
	for d, want := range map[DartID]geometry.Vertex3{
		1: geometry.NewVertex3(0, 0, 0),
		4: geometry.NewVertex3(1, 0, 0),
		5: geometry.NewVertex3(0, 0, 0),
		6: geometry.NewVertex3(0, 1, 0),
	} {
		v, ok := m.ForceReadVertex(VertexID(m.VertexID(d)))
		require.Truef(t, ok, "dart %d has no vertex", d)
		assert.Equalf(t, want, v, "dart %d", d)
	}
}

func TestCMap3_EdgeOrbitCrossesBeta3(t *testing.T) {
	m := buildTrianglePair(t)
	require.NoError(t, m.ForceThreeLink(1, 4))

	edge := collect(m.ICell(1, 1))
	assert.ElementsMatch(t, []DartID{1, 4}, edge)
	assert.Equal(t, EdgeID(1), m.EdgeID(4))
	assert.Equal(t, EdgeID(2), m.EdgeID(6))
}
