package attributes

import (
	"errors"
	"fmt"
)

// ErrInsufficientData signals that a merge or split had to produce a value
// out of missing inputs and no fallback was defined. It is the default
// outcome of the MergeIncomplete / MergeFromNone / SplitFromNone hooks.
var ErrInsufficientData = errors.New("attributes: insufficient data to complete update")

// UpdateError reports a failed attribute merge or split, identifying the
// operation and the attribute type involved.
type UpdateError struct {
	// Op is "merge" or "split".
	Op string
	// Attr is the attribute's type name.
	Attr string
	// Err is the underlying failure.
	Err error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("attributes: %s of %s failed: %v", e.Op, e.Attr, e.Err)
}

func (e *UpdateError) Unwrap() error {
	return e.Err
}
