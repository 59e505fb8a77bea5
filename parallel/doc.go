// Package parallel runs batches of transactional map edits across a pool of
// goroutines.
//
// A batch is a slice of independent work units, each executed as its own
// transaction. Three backends are available: per-unit scheduling, chunked
// scheduling, and a persistent worker pool with optional CPU core binding.
// All three report the total number of transaction retries observed while
// draining the batch, which is the figure of merit when comparing scheduling
// strategies under contention.
package parallel
