package vtk

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedData means the file is valid VTK but uses a feature
	// outside the supported subset (binary encoding, non-unstructured
	// datasets, 3D or strip cell types).
	ErrUnsupportedData = errors.New("vtk: unsupported data")
	// ErrBadData means the file content is internally inconsistent.
	ErrBadData = errors.New("vtk: bad data")
)

// DataError wraps one of the sentinel errors with the offending detail.
type DataError struct {
	Detail string
	Err    error
}

func (e *DataError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Detail)
}

func (e *DataError) Unwrap() error { return e.Err }

func unsupported(detail string) error {
	return &DataError{Detail: detail, Err: ErrUnsupportedData}
}

func badData(detail string) error {
	return &DataError{Detail: detail, Err: ErrBadData}
}
