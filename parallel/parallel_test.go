package parallel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

func TestParseBackend(t *testing.T) {
	for _, want := range []Backend{BackendIter, BackendChunks, BackendPool} {
		got, err := ParseBackend(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseBackend("rayon")
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "rayon", be.Name)
}

func TestRunner_Defaults(t *testing.T) {
	r := New()
	defer r.Close()

	assert.Equal(t, BackendIter, r.Backend())
	assert.Positive(t, r.Workers())
}

func TestProcess_EmptyBatch(t *testing.T) {
	r := New()
	defer r.Close()

	retries, err := Process(context.Background(), r, nil, func(tx *stm.Tx, unit int) error {
		t.Fatal("unit function called on empty batch")
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, retries)
}

func TestProcess_AllBackends(t *testing.T) {
	backends := []Backend{BackendIter, BackendChunks, BackendPool}

	for _, backend := range backends {
		t.Run(backend.String(), func(t *testing.T) {
			r := New(WithBackend(backend), WithWorkers(4))
			defer r.Close()

			const nUnits = 200
			units := make([]int, nUnits)
			for i := range units {
				units[i] = i + 1
			}

			total := stm.NewVar(0)
			retries, err := Process(context.Background(), r, units, func(tx *stm.Tx, unit int) error {
				cur, err := total.Read(tx)
				if err != nil {
					return err
				}
				return total.Write(tx, cur+unit)
			})
			require.NoError(t, err)

			// Every unit commits exactly once regardless of how often it
			// was retried.
			assert.Equal(t, nUnits*(nUnits+1)/2, total.ReadAtomic())
			assert.GreaterOrEqual(t, retries, int64(0))
		})
	}
}

func TestProcess_DomainErrorCancelsBatch(t *testing.T) {
	errPoisoned := errors.New("poisoned unit")

	for _, backend := range []Backend{BackendIter, BackendChunks, BackendPool} {
		t.Run(backend.String(), func(t *testing.T) {
			r := New(WithBackend(backend), WithWorkers(2))
			defer r.Close()

			units := make([]int, 64)
			for i := range units {
				units[i] = i
			}

			_, err := Process(context.Background(), r, units, func(tx *stm.Tx, unit int) error {
				if unit == 13 {
					return stm.Abort(errPoisoned)
				}
				return nil
			})
			require.ErrorIs(t, err, errPoisoned)

			var ue *UnitError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, 13, ue.Index)
		})
	}
}

func TestProcess_CountsRetries(t *testing.T) {
	r := New(WithBackend(BackendChunks), WithWorkers(8))
	defer r.Close()

	units := make([]int, 400)
	for i := range units {
		units[i] = 1
	}

	// Every unit touches the same cell, so under 8 workers at least some
	// transactions must conflict and re-execute.
	hot := stm.NewVar(0)
	retries, err := Process(context.Background(), r, units, func(tx *stm.Tx, unit int) error {
		cur, err := hot.Read(tx)
		if err != nil {
			return err
		}
		return hot.Write(tx, cur+unit)
	})
	require.NoError(t, err)
	assert.Equal(t, len(units), hot.ReadAtomic())
	assert.GreaterOrEqual(t, retries, int64(0))
}

func TestProcess_ContextCancelled(t *testing.T) {
	r := New(WithBackend(BackendIter), WithWorkers(1))
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	units := make([]int, 32)
	_, err := Process(ctx, r, units, func(tx *stm.Tx, unit int) error {
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p := NewPool(2, false, nil)
	p.Close()

	err := p.Submit(context.Background(), func() {})
	require.ErrorIs(t, err, ErrPoolClosed)

	// Close is idempotent.
	p.Close()
}

func TestPool_RunsSubmittedTasks(t *testing.T) {
	p := NewPool(4, false, nil)

	done := make(chan struct{}, 16)
	for i := 0; i < 16; i++ {
		require.NoError(t, p.Submit(context.Background(), func() {
			done <- struct{}{}
		}))
	}
	p.Close()

	assert.Len(t, done, 16)
}
