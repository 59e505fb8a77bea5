package stm

import (
	"errors"
	"sync/atomic"
)

const lockBit = 1

// clock is the global commit counter. Committed cell versions are clock
// values shifted left by one so the low bit stays free for the lock.
var clock atomic.Uint64

// entry is a transaction-log record for a single cell.
type entry struct {
	readVersion uint64
	read        bool
	written     bool
	local       any
}

// Tx is the read/write set of one transaction attempt. It is created by
// Atomically or WithControl and threaded by reference through the
// transactional call chain. A Tx must not be shared between goroutines.
type Tx struct {
	rv    uint64
	log   map[cell]*entry
	order []cell
}

func newTx() *Tx {
	return &Tx{
		rv:  clock.Load() << 1,
		log: make(map[cell]*entry, 16),
	}
}

func (tx *Tx) record(c cell, e *entry) {
	tx.log[c] = e
	tx.order = append(tx.order, c)
}

func (tx *Tx) reset() {
	tx.rv = clock.Load() << 1
	clear(tx.log)
	tx.order = tx.order[:0]
}

// commit validates the read set and publishes the write set. It returns
// false if a concurrent commit invalidated the transaction.
func (tx *Tx) commit() bool {
	locked := make([]cell, 0, len(tx.order))
	rollback := make([]uint64, 0, len(tx.order))

	release := func() {
		for i, c := range locked {
			c.unlock(rollback[i])
		}
	}

	// Lock the write set. Cells that were also read must still carry the
	// version recorded at read time.
	for _, c := range tx.order {
		e := tx.log[c]
		if !e.written {
			continue
		}
		expect := e.readVersion
		if !e.read {
			ver, ok := c.currentVersion()
			if !ok {
				release()
				return false
			}
			expect = ver
		}
		if !c.tryLock(expect) {
			release()
			return false
		}
		locked = append(locked, c)
		rollback = append(rollback, expect)
	}

	// Validate the read-only part of the read set.
	for _, c := range tx.order {
		e := tx.log[c]
		if !e.read || e.written {
			continue
		}
		ver, ok := c.currentVersion()
		if !ok || ver != e.readVersion {
			release()
			return false
		}
	}

	wv := clock.Add(1) << 1
	for _, c := range tx.order {
		e := tx.log[c]
		if e.written {
			c.publish(e.local, wv)
		}
	}
	return true
}

// Op is a transaction closure. It may return nil (commit), ErrConflict
// (retry from scratch), or an Abort-wrapped domain error (no retry).
type Op func(tx *Tx) error

// Atomically runs f transactionally, retrying on conflict until the
// transaction commits. A voluntary abort short-circuits the retry loop and
// returns the domain error; nothing is published in that case.
//
// Any non-conflict error returned by f is treated as an abort even if it
// was not wrapped through Abort.
func Atomically(f Op) error {
	tx := newTx()
	for {
		err := f(tx)
		switch {
		case err == nil:
			if tx.commit() {
				stats.commits.Inc()
				return nil
			}
		case errors.Is(err, ErrConflict):
			// fall through to retry
		default:
			stats.aborts.Inc()
			var ab *AbortError
			if errors.As(err, &ab) {
				return ab.Err
			}
			return err
		}
		stats.retries.Inc()
		tx.reset()
	}
}

// Decision is a control policy's verdict after a conflict.
type Decision int

const (
	// DecisionRetry re-executes the closure with a fresh log.
	DecisionRetry Decision = iota
	// DecisionCancel stops retrying and reports the transaction as
	// cancelled.
	DecisionCancel
)

// Control decides, per conflict, whether a transaction is retried. cause is
// ErrConflict for commit-time conflicts and eager read invalidations.
type Control func(cause error) Decision

// Status reports how a controlled transaction ended.
type Status int

const (
	// Validated means the transaction committed.
	Validated Status = iota
	// Cancelled means the control policy gave up, or the closure aborted.
	Cancelled
)

// Validated reports whether the transaction committed.
func (s Status) Validated() bool { return s == Validated }

// WithControl runs f transactionally, consulting ctrl on every conflict
// instead of retrying unconditionally. Voluntary aborts bypass ctrl: they
// cancel the transaction and surface the domain error.
func WithControl(ctrl Control, f Op) (Status, error) {
	tx := newTx()
	for {
		err := f(tx)
		switch {
		case err == nil:
			if tx.commit() {
				stats.commits.Inc()
				return Validated, nil
			}
			err = ErrConflict
		case errors.Is(err, ErrConflict):
			// consult the policy below
		default:
			stats.aborts.Inc()
			var ab *AbortError
			if errors.As(err, &ab) {
				return Cancelled, ab.Err
			}
			return Cancelled, err
		}
		stats.retries.Inc()
		if ctrl(err) == DecisionCancel {
			return Cancelled, ErrConflict
		}
		tx.reset()
	}
}
