package attributes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// Weight is an extensive vertex quantity: merging adds, splitting shares.
type Weight struct {
	Val uint32
}

func (w Weight) Merge(other Weight) (Weight, error) {
	return Weight{Val: w.Val + other.Val}, nil
}

func (w Weight) Split() (Weight, Weight, error) {
	return Weight{Val: w.Val/2 + w.Val%2}, Weight{Val: w.Val / 2}, nil
}

func (w Weight) MergeIncomplete() (Weight, error) {
	return w, nil
}

func (Weight) BindsTo() CellKind { return VertexCell }

// Temperature is an intensive face quantity with no fallbacks: merging two
// defined values averages them, anything else is insufficient data.
type Temperature struct {
	Val float64
}

func (t Temperature) Merge(other Temperature) (Temperature, error) {
	return Temperature{Val: (t.Val + other.Val) / 2}, nil
}

func (t Temperature) Split() (Temperature, Temperature, error) {
	return t, t, nil
}

func (Temperature) BindsTo() CellKind { return FaceCell }

func TestSparseVec_ReadWriteRemove(t *testing.T) {
	sv := NewSparseVec[Weight](8)

	err := stm.Atomically(func(tx *stm.Tx) error {
		_, replaced, err := sv.Write(tx, 3, Weight{Val: 7})
		require.NoError(t, err)
		assert.False(t, replaced)
		return nil
	})
	require.NoError(t, err)

	val, ok := sv.ForceRead(3)
	require.True(t, ok)
	assert.Equal(t, uint32(7), val.Val)
	assert.Equal(t, 1, sv.Count())

	old, ok := sv.ForceRemove(3)
	require.True(t, ok)
	assert.Equal(t, uint32(7), old.Val)
	_, ok = sv.ForceRead(3)
	assert.False(t, ok)
	assert.Equal(t, 0, sv.Count())
}

func TestSparseVec_TryMerge(t *testing.T) {
	sv := NewSparseVec[Weight](8)
	sv.ForceWrite(1, Weight{Val: 4})
	sv.ForceWrite(2, Weight{Val: 6})

	err := stm.Atomically(func(tx *stm.Tx) error {
		return sv.TryMerge(tx, 1, 1, 2)
	})
	require.NoError(t, err)

	merged, ok := sv.ForceRead(1)
	require.True(t, ok)
	assert.Equal(t, uint32(10), merged.Val)
	_, ok = sv.ForceRead(2)
	assert.False(t, ok, "merge input must be cleared")
}

func TestSparseVec_TryMergeIncomplete(t *testing.T) {
	sv := NewSparseVec[Weight](8)
	sv.ForceWrite(2, Weight{Val: 5})

	// Weight defines MergeIncomplete, so a one-sided merge keeps the
	// present value.
	err := stm.Atomically(func(tx *stm.Tx) error {
		return sv.TryMerge(tx, 1, 1, 2)
	})
	require.NoError(t, err)

	merged, ok := sv.ForceRead(1)
	require.True(t, ok)
	assert.Equal(t, uint32(5), merged.Val)
}

func TestSparseVec_TryMergeInsufficientData(t *testing.T) {
	sv := NewSparseVec[Temperature](8)
	sv.ForceWrite(2, Temperature{Val: 273})

	err := stm.Atomically(func(tx *stm.Tx) error {
		return sv.TryMerge(tx, 1, 1, 2)
	})
	var ue *UpdateError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "merge", ue.Op)
	require.ErrorIs(t, err, ErrInsufficientData)

	// Aborted: the present input is untouched.
	val, ok := sv.ForceRead(2)
	require.True(t, ok)
	assert.Equal(t, float64(273), val.Val)
}

func TestSparseVec_LenientMergeClearsOutput(t *testing.T) {
	sv := NewSparseVec[Temperature](8)
	sv.ForceWrite(1, Temperature{Val: 300})

	err := stm.Atomically(func(tx *stm.Tx) error {
		// Neither input populated: lenient merge clears the output
		// instead of failing.
		return sv.Merge(tx, 1, 2, 3)
	})
	require.NoError(t, err)
	_, ok := sv.ForceRead(1)
	assert.False(t, ok)
}

func TestSparseVec_TrySplit(t *testing.T) {
	sv := NewSparseVec[Weight](8)
	sv.ForceWrite(1, Weight{Val: 9})

	err := stm.Atomically(func(tx *stm.Tx) error {
		return sv.TrySplit(tx, 1, 2, 1)
	})
	require.NoError(t, err)

	lhs, ok := sv.ForceRead(1)
	require.True(t, ok)
	rhs, ok := sv.ForceRead(2)
	require.True(t, ok)
	assert.Equal(t, uint32(5), lhs.Val)
	assert.Equal(t, uint32(4), rhs.Val)
}

func TestSparseVec_LenientSplitFromNone(t *testing.T) {
	sv := NewSparseVec[Temperature](8)
	sv.ForceWrite(1, Temperature{Val: 300})
	sv.ForceWrite(2, Temperature{Val: 400})

	err := stm.Atomically(func(tx *stm.Tx) error {
		// Splitting an empty slot clears both outputs.
		return sv.Split(tx, 1, 2, 3)
	})
	require.NoError(t, err)
	_, ok := sv.ForceRead(1)
	assert.False(t, ok)
	_, ok = sv.ForceRead(2)
	assert.False(t, ok)
}

func TestManager_RegisterAndAccess(t *testing.T) {
	m := NewManager()
	Register[Weight](m, 16)
	Register[Temperature](m, 16)

	ForceWrite(m, 4, Weight{Val: 11})
	val, ok := ForceRead[Weight](m, 4)
	require.True(t, ok)
	assert.Equal(t, uint32(11), val.Val)

	sv, ok := Get[Temperature](m)
	require.True(t, ok)
	assert.Equal(t, FaceCell, sv.Kind())

	assert.Len(t, m.ByKind(VertexCell), 1)
	assert.Len(t, m.ByKind(FaceCell), 1)
	assert.Empty(t, m.ByKind(EdgeCell))
}

func TestManager_DoubleRegisterPanics(t *testing.T) {
	m := NewManager()
	Register[Weight](m, 4)
	assert.Panics(t, func() {
		Register[Weight](m, 4)
	})
}

func TestManager_MergeByKind(t *testing.T) {
	m := NewManager()
	sv := Register[Weight](m, 8)
	sv.ForceWrite(1, Weight{Val: 2})
	sv.ForceWrite(2, Weight{Val: 3})

	err := stm.Atomically(func(tx *stm.Tx) error {
		return m.TryMergeAttributes(tx, VertexCell, 1, 1, 2)
	})
	require.NoError(t, err)

	merged, ok := sv.ForceRead(1)
	require.True(t, ok)
	assert.Equal(t, uint32(5), merged.Val)
}

func TestManager_Extend(t *testing.T) {
	m := NewManager()
	sv := Register[Weight](m, 4)
	m.Extend(4)
	assert.Equal(t, 8, sv.Len())
}
