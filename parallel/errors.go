package parallel

import (
	"errors"
	"fmt"
)

// ErrPoolClosed is returned by Pool.Submit after Close has been called.
var ErrPoolClosed = errors.New("parallel: pool closed")

// BackendError reports an unrecognized backend name.
type BackendError struct {
	Name string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("parallel: unknown backend %q (want iter, chunks or pool)", e.Name)
}

// UnitError wraps the first domain error raised while draining a batch,
// tagged with the index of the unit that raised it.
type UnitError struct {
	Index int
	Err   error
}

func (e *UnitError) Error() string {
	return fmt.Sprintf("parallel: unit %d: %v", e.Index, e.Err)
}

func (e *UnitError) Unwrap() error { return e.Err }
