package parallel

import "fmt"

// Backend selects how a batch of work units is mapped onto goroutines.
type Backend int

const (
	// BackendIter schedules every unit individually. Fine-grained, best
	// when unit cost is uneven.
	BackendIter Backend = iota
	// BackendChunks splits the batch into one contiguous chunk per worker.
	// Cheapest scheduling, best when unit cost is uniform.
	BackendChunks
	// BackendPool submits units to a persistent worker pool whose workers
	// can be pinned to CPU cores.
	BackendPool
)

// String returns the flag spelling of the backend.
func (b Backend) String() string {
	switch b {
	case BackendIter:
		return "iter"
	case BackendChunks:
		return "chunks"
	case BackendPool:
		return "pool"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend converts a flag value into a Backend.
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "iter":
		return BackendIter, nil
	case "chunks":
		return BackendChunks, nil
	case "pool":
		return BackendPool, nil
	default:
		return 0, &BackendError{Name: s}
	}
}
