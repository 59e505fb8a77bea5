package remeshing

import (
	"errors"
	"fmt"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/cmap"
)

// Sentinel causes for edge swap failures.
var (
	// ErrNullEdge means the null edge was passed as the swap target.
	ErrNullEdge = errors.New("remeshing: cannot swap the null edge")
	// ErrIncompleteEdge means the edge has a cell on only one side.
	ErrIncompleteEdge = errors.New("remeshing: cannot swap an edge adjacent to a single cell")
	// ErrBadTopology means a cell adjacent to the edge is not a triangle.
	ErrBadTopology = errors.New("remeshing: cannot swap an edge adjacent to a non-triangular cell")
)

// EdgeSwapError reports why an edge could not be swapped. It is raised as a
// transactional abort, so the map is left untouched.
type EdgeSwapError struct {
	Edge cmap.EdgeID
	Err  error
}

func (e *EdgeSwapError) Error() string {
	return fmt.Sprintf("remeshing: swap of edge %d: %v", e.Edge, e.Err)
}

func (e *EdgeSwapError) Unwrap() error { return e.Err }

// NotSwappableError means anchoring constraints forbid the swap even though
// the local topology allows it.
type NotSwappableError struct {
	Reason string
}

func (e *NotSwappableError) Error() string {
	return "remeshing: edge is not swappable: " + e.Reason
}
