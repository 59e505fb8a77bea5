// Package stm provides the software transactional memory substrate used by
// the combinatorial map structures.
//
// Architecture:
//   - Var[T] is a versioned memory cell. Reads outside a transaction are
//     lock-free double-checked snapshots.
//   - Tx buffers reads and writes in a per-transaction log. Nothing is
//     visible to other transactions before commit.
//   - Commit acquires per-cell try-locks on the write set, validates that no
//     cell read by the transaction has been committed to since it was read,
//     then publishes all buffered writes under a fresh global version.
//
// Conflicts are reported as ErrConflict and are normally resolved by
// re-running the closure from scratch (Atomically), or by a caller-supplied
// control policy (WithControl). A closure may also voluntarily abort with a
// domain error via Abort; aborted transactions publish nothing.
//
// Transactions never block on one another: lock acquisition at commit time
// is try-lock only, so contention surfaces as busy retries on the calling
// goroutine rather than OS-level blocking.
package stm
