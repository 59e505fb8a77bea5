package stm

import "github.com/puzpuzpuz/xsync/v3"

// stats aggregates transaction outcomes process-wide. Counters are striped
// so hot retry loops do not contend on a single cache line.
var stats = struct {
	commits *xsync.Counter
	retries *xsync.Counter
	aborts  *xsync.Counter
}{
	commits: xsync.NewCounter(),
	retries: xsync.NewCounter(),
	aborts:  xsync.NewCounter(),
}

// Stats is a snapshot of the process-wide transaction counters.
type Stats struct {
	Commits int64
	Retries int64
	Aborts  int64
}

// Snapshot returns the current transaction counters. Values are only
// approximately consistent with one another under concurrent load.
func Snapshot() Stats {
	return Stats{
		Commits: stats.commits.Value(),
		Retries: stats.retries.Value(),
		Aborts:  stats.aborts.Value(),
	}
}
