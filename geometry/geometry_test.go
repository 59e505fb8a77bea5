package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertex2_MergeAverages(t *testing.T) {
	a := NewVertex2(0, 0)
	b := NewVertex2(1, 1)

	m, err := a.Merge(b)
	require.NoError(t, err)
	assert.Equal(t, NewVertex2(0.5, 0.5), m)
}

func TestVertex2_SplitDuplicates(t *testing.T) {
	v := NewVertex2(2, 3)
	l, r, err := v.Split()
	require.NoError(t, err)
	assert.Equal(t, v, l)
	assert.Equal(t, v, r)
}

func TestVertex2_MergeIncompleteKeeps(t *testing.T) {
	v := NewVertex2(4, 5)
	m, err := v.MergeIncomplete()
	require.NoError(t, err)
	assert.Equal(t, v, m)
}

func TestVector2_DotAndNorm(t *testing.T) {
	a := Vector2{X: 3, Y: 4}
	b := Vector2{X: 1, Y: 0}
	assert.InDelta(t, 3.0, a.Dot(b), 1e-12)
	assert.InDelta(t, 5.0, a.Norm(), 1e-12)
}

func TestVertex3_MergeAverages(t *testing.T) {
	a := NewVertex3(0, 0, 0)
	b := NewVertex3(2, 4, 6)

	m, err := a.Merge(b)
	require.NoError(t, err)
	assert.Equal(t, NewVertex3(1, 2, 3), m)
}

func TestVector3_Cross(t *testing.T) {
	x := Vector3{X: 1}
	y := Vector3{Y: 1}
	assert.Equal(t, Vector3{Z: 1}, x.Cross(y))
}

func TestVertexArithmetic(t *testing.T) {
	v := NewVertex2(1, 1)
	d := NewVertex2(3, 5).Sub(v)
	assert.Equal(t, Vector2{X: 2, Y: 4}, d)
	assert.Equal(t, NewVertex2(2, 3), v.Add(d.Scale(0.5)))
}
