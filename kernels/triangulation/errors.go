package triangulation

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyTriangulated means the face has exactly three sides.
	ErrAlreadyTriangulated = errors.New("triangulation: face is already a triangle")
	// ErrNotFannable means no vertex of the polygon sees all the others.
	ErrNotFannable = errors.New("triangulation: no star vertex in the polygon")
)

// DartCountError means the reserved dart slice does not match the number
// of darts the triangulation needs: an n-sided polygon takes (n-3)*2.
type DartCountError struct {
	Want, Got int
}

func (e *DartCountError) Error() string {
	return fmt.Sprintf("triangulation: needs %d reserved darts, got %d", e.Want, e.Got)
}

// UndefinedFaceError means the face cannot be triangulated as given, from
// a degenerate side count or missing vertex coordinates.
type UndefinedFaceError struct {
	Reason string
}

func (e *UndefinedFaceError) Error() string {
	return "triangulation: face is not defined correctly: " + e.Reason
}
