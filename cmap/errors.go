package cmap

import (
	"errors"
	"fmt"
)

// Sentinel causes for link failures.
var (
	// ErrNonFreeBase means the first dart already has an image for the
	// linked dimension.
	ErrNonFreeBase = errors.New("cmap: base dart is not free")
	// ErrNonFreeImage means the second dart already has an image for the
	// linked dimension.
	ErrNonFreeImage = errors.New("cmap: image dart is not free")
	// ErrAlreadyFree means an unlink targeted a dart with no image for the
	// unlinked dimension.
	ErrAlreadyFree = errors.New("cmap: dart is already free")
	// ErrAsymmetricalFaces means a 3-link walked two face loops of
	// different lengths.
	ErrAsymmetricalFaces = errors.New("cmap: faces are not symmetrical")
	// ErrBadOrientation means a sew's orientation predicate rejected the
	// dart pair.
	ErrBadOrientation = errors.New("cmap: inconsistent dart orientation")
	// ErrReleaseLinked means a dart release targeted a dart that still has
	// beta images.
	ErrReleaseLinked = errors.New("cmap: cannot release a linked dart")
)

// LinkError reports a failed i-link or i-unlink. Under concurrency it can
// signal a lost race for a dart rather than a logic error; retry-aware
// callers may treat it as conflict-equivalent.
type LinkError struct {
	Dim      int
	Lhs, Rhs DartID
	Err      error
}

func (e *LinkError) Error() string {
	if e.Rhs == NullDart {
		return fmt.Sprintf("cmap: %d-unlink of dart %d: %v", e.Dim, e.Lhs, e.Err)
	}
	return fmt.Sprintf("cmap: %d-link of darts (%d, %d): %v", e.Dim, e.Lhs, e.Rhs, e.Err)
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// SewError reports a failed sew or unsew: either the underlying link failed
// or an attribute merge/split did.
type SewError struct {
	Dim      int
	Lhs, Rhs DartID
	Err      error
}

func (e *SewError) Error() string {
	return fmt.Sprintf("cmap: %d-sew of darts (%d, %d): %v", e.Dim, e.Lhs, e.Rhs, e.Err)
}

func (e *SewError) Unwrap() error {
	return e.Err
}

// AllocError reports a failed dart reservation. It is permanent: the map
// does not hold enough qualifying unused darts, so retrying cannot succeed
// without extending storage first.
type AllocError struct {
	Want   int
	Reason string
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("cmap: failed allocation of %d darts: %s", e.Want, e.Reason)
}
