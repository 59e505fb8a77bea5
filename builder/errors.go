package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingGridParameters means the descriptor defines fewer than two
	// of cell counts, per-cell lengths and total lengths.
	ErrMissingGridParameters = errors.New("builder: need at least two grid parameters")
	// ErrNoSource means the builder was given nothing to build from.
	ErrNoSource = errors.New("builder: no darts, grid or file specified")
)

// GridParameterError reports a grid descriptor field that cannot produce a
// valid grid.
type GridParameterError struct {
	Param  string
	Reason string
}

func (e *GridParameterError) Error() string {
	return fmt.Sprintf("builder: invalid grid parameter %s: %s", e.Param, e.Reason)
}
