package cmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

func markUsed(t *testing.T, m *CMap2, d DartID) {
	t.Helper()
	require.NoError(t, stm.Atomically(func(tx *stm.Tx) error {
		return m.SetUsed(tx, d)
	}))
}

func TestReserveCompactBlock(t *testing.T) {
	m := NewCMap2(4)
	m.AllocateUnusedDarts(8) // darts 5..12
	markUsed(t, m, 7)

	b, err := ReserveCompactBlock(m, 4)
	require.NoError(t, err)

	// 5..6 is broken by the used slot, so the run starts at 8
	first, ok := b.TakeN(2)
	require.True(t, ok)
	assert.Equal(t, DartID(8), first)

	_, ok = b.TakeN(3)
	assert.False(t, ok)

	rest, n := b.TakeRemaining()
	assert.Equal(t, DartID(10), rest)
	assert.Equal(t, 2, n)

	_, n = b.TakeRemaining()
	assert.Equal(t, 0, n)
}

func TestReserveCompactBlock_NoRun(t *testing.T) {
	m := NewCMap2(4)
	m.AllocateUnusedDarts(3)

	_, err := ReserveCompactBlock(m, 4)
	require.Error(t, err)
	var allocErr *AllocError
	require.ErrorAs(t, err, &allocErr)
	assert.Equal(t, 3, m.NUnusedDarts())
}

func TestReserveSparseBlock(t *testing.T) {
	m := NewCMap2(2)
	m.AllocateUnusedDarts(4) // darts 3..6
	markUsed(t, m, 4)

	b, err := ReserveSparseBlock(m, 3)
	require.NoError(t, err)

	got, ok := b.TakeN(2)
	require.True(t, ok)
	assert.Equal(t, []DartID{3, 5}, got)
	assert.Equal(t, []DartID{6}, b.TakeRemaining())

	_, err = ReserveSparseBlock(m, 1)
	require.Error(t, err)
	var allocErr *AllocError
	require.ErrorAs(t, err, &allocErr)
}

func TestBlocks_ConcurrentSparseNoDoubleAllocation(t *testing.T) {
	const workers = 8
	const perWorker = 8
	m := NewCMap2(0)
	m.AllocateUnusedDarts(workers * perWorker)

	blocks := make([]*SparseDartBlock, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			blocks[w], errs[w] = ReserveSparseBlock(m, perWorker)
		}(w)
	}
	wg.Wait()

	seen := make(map[DartID]int)
	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		darts := blocks[w].TakeRemaining()
		require.Len(t, darts, perWorker)
		for _, d := range darts {
			seen[d]++
		}
	}
	assert.Len(t, seen, workers*perWorker)
	for d, n := range seen {
		assert.Equalf(t, 1, n, "dart %d handed out %d times", d, n)
	}
	assert.Equal(t, 0, m.NUnusedDarts())
}

func TestBlocks_ConcurrentCompactDisjoint(t *testing.T) {
	const workers = 4
	const size = 16
	m := NewCMap2(0)
	m.AllocateUnusedDarts(workers * size)

	blocks := make([]*CompactDartBlock, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			blocks[w], errs[w] = ReserveCompactBlock(m, size)
		}(w)
	}
	wg.Wait()

	seen := make(map[DartID]bool)
	for w := 0; w < workers; w++ {
		require.NoError(t, errs[w])
		first, n := blocks[w].TakeRemaining()
		require.Equal(t, size, n)
		for d := first; d < first+DartID(size); d++ {
			assert.Falsef(t, seen[d], "dart %d handed out twice", d)
			seen[d] = true
		}
	}
	assert.Equal(t, 0, m.NUnusedDarts())
}
