package stm

import "errors"

// ErrConflict signals that a transaction read a cell that was committed to
// concurrently. It is consumed internally by the retry machinery and should
// only surface to callers through a control policy that chose to cancel.
var ErrConflict = errors.New("stm: transaction conflict")

// AbortError wraps a domain error raised by a transaction closure through
// Abort. The transaction's buffered writes are discarded and the wrapped
// error is handed back to the caller without retrying.
type AbortError struct {
	Err error
}

func (e *AbortError) Error() string { return "stm: transaction aborted: " + e.Err.Error() }

func (e *AbortError) Unwrap() error { return e.Err }

// Abort marks err as a voluntary transaction abort. The enclosing
// transaction publishes nothing and err is returned to the caller.
func Abort(err error) error {
	return &AbortError{Err: err}
}

// Retry requests that the whole transaction be re-executed from scratch, as
// if a conflict had been detected. Closures use it when a value they depend
// on is not available yet (e.g. an attribute another transaction is still
// moving).
func Retry() error {
	return ErrConflict
}
